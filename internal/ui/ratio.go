package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// RatioBar renders a labelled share, e.g. the fraction of lines that
// decoded, as a static bar.
type RatioBar struct {
	Label string
	Ratio float64 // 0.0 - 1.0
	Width int     // Terminal width
	bar   progress.Model
}

// NewRatioBar creates a ratio bar sized for the current terminal
func NewRatioBar(label string, ratio float64) *RatioBar {
	r := &RatioBar{Label: label, Ratio: clamp(ratio)}
	return r.SetWidth(GetTerminalWidth())
}

// SetWidth sets the terminal width for responsive rendering
func (r *RatioBar) SetWidth(width int) *RatioBar {
	r.Width = width
	barWidth := width - 30 // Leave room for label and percentage
	if barWidth < 20 {
		barWidth = 20
	}
	if barWidth > 50 {
		barWidth = 50
	}
	r.bar = progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	return r
}

// Render returns the styled bar as a string
func (r *RatioBar) Render() string {
	label := lipgloss.NewStyle().Foreground(MutedColor).Width(14).Render(r.Label)
	percent := fmt.Sprintf("%5.1f%%", r.Ratio*100)
	return lipgloss.NewStyle().
		PaddingLeft(2).
		Render(fmt.Sprintf("%s %s  %s", label, r.bar.ViewAs(r.Ratio), percent))
}

// String implements fmt.Stringer
func (r *RatioBar) String() string {
	return r.Render()
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
