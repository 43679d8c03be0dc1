package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Confirm displays a warning box and asks a yes/no question on out, reading
// the answer from in. Only "y" or "yes" (any case) confirms; EOF declines.
func (p *Printer) Confirm(in io.Reader, title string, warnings []string, question string) bool {
	width := p.width
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	lines := []string{"", WarningTitleStyle.Render(fmt.Sprintf("   %s  WARNING  ─  %s", WarningMarker, title)), ""}
	bulletStyle := lipgloss.NewStyle().Foreground(TextColor)
	for _, warning := range warnings {
		lines = append(lines, bulletStyle.Render("   • "+warning))
	}
	lines = append(lines, "")

	box := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(WarningColor).
		Width(width-2).
		Padding(0, 2).
		Render(strings.Join(lines, "\n"))

	p.Println(box)
	p.Print(WarningTitleStyle.Render(question + " [y/N]: "))

	input, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && input == "" {
		p.Newline()
		return false
	}

	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return true
	default:
		p.Println(lipgloss.NewStyle().Foreground(MutedColor).Render("  Operation cancelled."))
		return false
	}
}
