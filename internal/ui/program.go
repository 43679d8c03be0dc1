package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muurk/cantrace/internal/trace"
)

// Printer provides methods for printing UI components to a writer.
// This is the primary way commands should output styled content.
type Printer struct {
	out   io.Writer
	width int
}

// NewPrinter creates a new Printer that writes to the given writer.
// If w is nil, os.Stdout is used.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{
		out:   w,
		width: GetTerminalWidth(),
	}
}

// Width returns the current terminal width used by this printer
func (p *Printer) Width() int {
	return p.width
}

// SetWidth overrides the detected terminal width
func (p *Printer) SetWidth(width int) *Printer {
	p.width = width
	return p
}

// Print writes content to the output
func (p *Printer) Print(content string) {
	_, _ = fmt.Fprint(p.out, content)
}

// Println writes content with a newline
func (p *Printer) Println(content string) {
	_, _ = fmt.Fprintln(p.out, content)
}

// Newline prints an empty line
func (p *Printer) Newline() {
	_, _ = fmt.Fprintln(p.out)
}

// PrintHeader prints a command header box
func (p *Printer) PrintHeader(title, command string, params ...Param) {
	p.Println(NewHeader(title, command, params...).SetWidth(p.width).Render())
}

// PrintSuccess prints a success result box
func (p *Printer) PrintSuccess(title string, details ...Param) {
	p.Println(NewSuccessResult(title, details...).SetWidth(p.width).Render())
}

// PrintWarning prints a warning result box
func (p *Printer) PrintWarning(title string, details ...Param) {
	p.Println(NewWarningResult(title, details...).SetWidth(p.width).Render())
}

// PrintError prints an error result box with troubleshooting tips
func (p *Printer) PrintError(title string, err error, troubleshooting []string) {
	p.Println(NewFailureResult(title, err, troubleshooting).SetWidth(p.width).Render())
}

// PrintRatio prints a labelled ratio bar
func (p *Printer) PrintRatio(label string, ratio float64) {
	p.Println(NewRatioBar(label, ratio).SetWidth(p.width).Render())
}

// PrintRejects prints invalid lines as aligned "line  reason  raw" rows
func (p *Printer) PrintRejects(rejects []trace.Reject) {
	for _, r := range rejects {
		reason := "unknown"
		if r.Err != nil {
			reason = r.Err.Reason.String()
		}
		p.Println(strings.Join([]string{
			RejectLineStyle.Render(fmt.Sprintf("%d", r.Line)),
			RejectReasonStyle.Render(reason),
			RejectRawStyle.Render(r.Raw),
		}, "  "))
	}
}
