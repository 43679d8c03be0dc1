package trace

import (
	"errors"
	"fmt"
	"strings"
)

// Class is the verdict for a single trace line.
type Class int

const (
	Ignored Class = iota // blank or '#' comment
	Invalid              // malformed
	Valid                // decoded into a Frame
)

// String returns the class name
func (c Class) String() string {
	switch c {
	case Ignored:
		return "ignored"
	case Invalid:
		return "invalid"
	case Valid:
		return "valid"
	default:
		return fmt.Sprintf("Class(%d)", int(c))
	}
}

// Outcome is the tagged result of classifying one line. Frame is set only
// for Valid, Err only for Invalid.
type Outcome struct {
	Class Class
	Frame *Frame
	Err   *LineError
}

// Reject records an invalid line together with the reason it failed.
type Reject struct {
	Line int
	Raw  string
	Err  *LineError
}

// String renders the reject for diagnostics
func (r Reject) String() string {
	return fmt.Sprintf("line %d: %v: %s", r.Line, r.Err, r.Raw)
}

// Result accumulates the classification of a whole trace.
type Result struct {
	Valid   int
	Invalid int
	Ignored int
	Frames  []Frame  // valid lines, file order
	Rejects []Reject // invalid lines, file order
}

// Total returns the number of lines seen.
func (r *Result) Total() int {
	return r.Valid + r.Invalid + r.Ignored
}

// add folds one outcome into the result.
func (r *Result) add(line int, raw string, o Outcome) {
	switch o.Class {
	case Ignored:
		r.Ignored++
	case Invalid:
		r.Invalid++
		r.Rejects = append(r.Rejects, Reject{Line: line, Raw: raw, Err: o.Err})
	case Valid:
		r.Valid++
		r.Frames = append(r.Frames, *o.Frame)
	}
}

// merge appends other after r. other must cover lines following r's.
func (r *Result) merge(other *Result) {
	r.Valid += other.Valid
	r.Invalid += other.Invalid
	r.Ignored += other.Ignored
	r.Frames = append(r.Frames, other.Frames...)
	r.Rejects = append(r.Rejects, other.Rejects...)
}

// ClassifyLine classifies a single physical line. lineNo is the 1-based
// position of the line in its source and is copied into the frame.
//
// Expected shape: "[(]timestamp[)] interface id#payload".
func ClassifyLine(line string, lineNo int) Outcome {
	raw := strings.TrimSpace(line)
	if raw == "" || strings.HasPrefix(raw, "#") {
		return Outcome{Class: Ignored}
	}

	tokens := strings.Fields(raw)
	if len(tokens) != 3 {
		return invalid(lineErr(ReasonTokenCount, "", fmt.Errorf("got %d tokens, want 3", len(tokens))))
	}

	ts, err := ParseTimestamp(tokens[0])
	if err != nil {
		return invalid(err)
	}

	iface := tokens[1]

	idPart, payloadPart, ok := strings.Cut(tokens[2], "#")
	if !ok {
		return invalid(lineErr(ReasonMissingSeparator, tokens[2], nil))
	}
	if strings.Contains(payloadPart, "#") {
		return invalid(lineErr(ReasonExtraSeparator, tokens[2], nil))
	}

	id, err := ParseIdentifier(idPart)
	if err != nil {
		return invalid(err)
	}

	data, err := DecodeHexPayload(payloadPart)
	if err != nil {
		return invalid(err)
	}

	return Outcome{
		Class: Valid,
		Frame: &Frame{
			Timestamp: ts,
			Interface: iface,
			ID:        id,
			Data:      data,
			Raw:       raw,
			Line:      lineNo,
		},
	}
}

// invalid wraps a decoder error. Decoders only return *LineError.
func invalid(err error) Outcome {
	var le *LineError
	errors.As(err, &le)
	return Outcome{Class: Invalid, Err: le}
}

// SplitLines splits content into physical lines. A trailing newline does
// not start another line, so "a\nb\n" and "a\nb" both have two lines.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Classify classifies every line of content in file order.
func Classify(content string) *Result {
	return classifyLines(SplitLines(content), 1)
}

// classifyLines classifies lines, numbering them from first.
func classifyLines(lines []string, first int) *Result {
	res := &Result{}
	for i, line := range lines {
		lineNo := first + i
		o := ClassifyLine(line, lineNo)
		res.add(lineNo, strings.TrimSpace(line), o)
	}
	return res
}
