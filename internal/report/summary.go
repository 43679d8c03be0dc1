package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/muurk/cantrace/internal/trace"
)

// Summary returns the plain-text tally of a classification run.
func Summary(res *trace.Result) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Valid lines:   %d\n", res.Valid))
	b.WriteString(fmt.Sprintf("Invalid lines: %d\n", res.Invalid))
	b.WriteString(fmt.Sprintf("Ignored lines: %d\n", res.Ignored))
	b.WriteString(fmt.Sprintf("Total lines:   %d\n", res.Total()))

	return b.String()
}

// SummaryDetails returns the tally as ordered key/value pairs for result boxes.
func SummaryDetails(res *trace.Result) [][2]string {
	return [][2]string{
		{"Valid", fmt.Sprintf("%d", res.Valid)},
		{"Invalid", fmt.Sprintf("%d", res.Invalid)},
		{"Ignored", fmt.Sprintf("%d", res.Ignored)},
		{"Total", fmt.Sprintf("%d", res.Total())},
		{"Extended IDs", fmt.Sprintf("%d", countExtended(res.Frames))},
	}
}

func countExtended(frames []trace.Frame) int {
	n := 0
	for _, f := range frames {
		if f.Extended() {
			n++
		}
	}
	return n
}

// ValidRatio is the share of non-ignored lines that decoded, 0 when there
// are none.
func ValidRatio(res *trace.Result) float64 {
	considered := res.Valid + res.Invalid
	if considered == 0 {
		return 0
	}
	return float64(res.Valid) / float64(considered)
}

// WriteRejects lists invalid lines, one per line, as
// "line N: reason: raw text".
func WriteRejects(w io.Writer, rejects []trace.Reject) error {
	for _, r := range rejects {
		if _, err := fmt.Fprintln(w, r.String()); err != nil {
			return err
		}
	}
	return nil
}
