package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/muurk/cantrace/internal/trace"
)

// Format selects how decoded frames are written.
type Format string

const (
	FormatLog   Format = "log"   // candump -l style, one frame per line
	FormatTable Format = "table" // bordered terminal table
	FormatJSON  Format = "json"  // array of frame records
	FormatYAML  Format = "yaml"  // list of frame records
)

// Formats lists every supported format, in help-text order.
var Formats = []Format{FormatLog, FormatTable, FormatJSON, FormatYAML}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return "", fmt.Errorf("unknown format %q (want %s)", s, strings.Join(names, ", "))
}

// FrameRecord is the serialised shape of a frame in JSON and YAML output.
type FrameRecord struct {
	Line      int     `json:"line" yaml:"line"`
	Timestamp float64 `json:"timestamp" yaml:"timestamp"`
	Interface string  `json:"interface" yaml:"interface"`
	ID        string  `json:"id" yaml:"id"`
	Extended  bool    `json:"extended" yaml:"extended"`
	DLC       int     `json:"dlc" yaml:"dlc"`
	Data      string  `json:"data" yaml:"data"`
}

// NewFrameRecord converts a frame for serialisation.
func NewFrameRecord(f trace.Frame) FrameRecord {
	return FrameRecord{
		Line:      f.Line,
		Timestamp: f.Timestamp,
		Interface: f.Interface,
		ID:        fmt.Sprintf("0x%X", f.ID),
		Extended:  f.Extended(),
		DLC:       f.DLC(),
		Data:      f.DataHex(),
	}
}

// Limit returns at most n frames; n <= 0 means all.
func Limit(frames []trace.Frame, n int) []trace.Frame {
	if n <= 0 || n >= len(frames) {
		return frames
	}
	return frames[:n]
}

// WriteFrames writes frames to w in the given format.
func WriteFrames(w io.Writer, frames []trace.Frame, format Format) error {
	switch format {
	case FormatLog:
		for _, f := range frames {
			if _, err := fmt.Fprintln(w, f.String()); err != nil {
				return err
			}
		}
		return nil

	case FormatTable:
		_, err := fmt.Fprintln(w, FrameTable(frames))
		return err

	case FormatJSON:
		records := toRecords(frames)
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err

	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(toRecords(frames)); err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return enc.Close()

	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func toRecords(frames []trace.Frame) []FrameRecord {
	records := make([]FrameRecord, 0, len(frames))
	for _, f := range frames {
		records = append(records, NewFrameRecord(f))
	}
	return records
}

var (
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	tableNumberStyle = tableCellStyle.Align(lipgloss.Right)
)

// FrameTable renders frames as a bordered table.
func FrameTable(frames []trace.Frame) string {
	rows := make([][]string, 0, len(frames))
	for _, f := range frames {
		rows = append(rows, []string{
			fmt.Sprintf("%d", f.Line),
			fmt.Sprintf("%.6f", f.Timestamp),
			f.Interface,
			f.IDString(),
			fmt.Sprintf("%d", f.DLC()),
			SpacedHex(f.Data),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("LINE", "TIMESTAMP", "IFACE", "ID", "DLC", "DATA").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return tableHeaderStyle
			case col == 0 || col == 1 || col == 4:
				return tableNumberStyle
			default:
				return tableCellStyle
			}
		})

	return t.String()
}

// SpacedHex renders bytes as "DE AD BE EF".
func SpacedHex(data []byte) string {
	parts := make([]string, len(data))
	for i, b := range data {
		parts[i] = fmt.Sprintf("%02X", b)
	}
	return strings.Join(parts, " ")
}
