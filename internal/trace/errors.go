package trace

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/muurk/cantrace/internal/urls"
)

// Reason identifies why a trace line was rejected.
type Reason int

const (
	// ReasonTokenCount means the line did not split into exactly three tokens
	ReasonTokenCount Reason = iota
	// ReasonTimestamp means the first token is not a number
	ReasonTimestamp
	// ReasonTimestampNotFinite means the timestamp parsed to NaN or an infinity
	ReasonTimestampNotFinite
	// ReasonMissingSeparator means the frame token has no '#'
	ReasonMissingSeparator
	// ReasonExtraSeparator means the frame token has more than one '#'
	ReasonExtraSeparator
	// ReasonIdentifier means the identifier is not hexadecimal
	ReasonIdentifier
	// ReasonIdentifierRange means the identifier does not fit in 29 bits
	ReasonIdentifierRange
	// ReasonPayloadOddLength means the payload hex cannot pair into bytes
	ReasonPayloadOddLength
	// ReasonPayloadTooLong means the payload exceeds eight bytes
	ReasonPayloadTooLong
	// ReasonPayloadHex means the payload contains a non-hex character
	ReasonPayloadHex
)

// String returns a human-readable name for the reason
func (r Reason) String() string {
	switch r {
	case ReasonTokenCount:
		return "wrong token count"
	case ReasonTimestamp:
		return "invalid timestamp"
	case ReasonTimestampNotFinite:
		return "timestamp not finite"
	case ReasonMissingSeparator:
		return "missing '#' separator"
	case ReasonExtraSeparator:
		return "more than one '#' separator"
	case ReasonIdentifier:
		return "invalid identifier"
	case ReasonIdentifierRange:
		return "identifier exceeds 29 bits"
	case ReasonPayloadOddLength:
		return "hex payload has odd length"
	case ReasonPayloadTooLong:
		return "hex payload too long (max 8 bytes)"
	case ReasonPayloadHex:
		return "invalid hex payload"
	default:
		return fmt.Sprintf("Reason(%d)", int(r))
	}
}

// LineError is a recoverable, per-line decode failure.
type LineError struct {
	Reason Reason // Why the line was rejected
	Token  string // Offending token (may be empty)
	Err    error  // Underlying parse error (if any)
}

// Error implements the error interface
func (e *LineError) Error() string {
	msg := e.Reason.String()
	if e.Token != "" {
		msg = fmt.Sprintf("%s %q", msg, e.Token)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error for error chain inspection
func (e *LineError) Unwrap() error {
	return e.Err
}

func lineErr(reason Reason, token string, err error) *LineError {
	return &LineError{Reason: reason, Token: token, Err: err}
}

// ErrInvalidUTF8 is wrapped by a FileError of KindEncoding.
var ErrInvalidUTF8 = errors.New("content is not valid UTF-8")

// FileErrorKind categorises fatal, whole-file failures.
type FileErrorKind int

const (
	// KindIO is any read failure not covered by a more specific kind
	KindIO FileErrorKind = iota
	// KindNotFound means the path does not exist
	KindNotFound
	// KindPermission means the process may not open the path
	KindPermission
	// KindEncoding means the content is not valid text
	KindEncoding
)

// String returns a human-readable name for the kind
func (k FileErrorKind) String() string {
	switch k {
	case KindIO:
		return "I/O error"
	case KindNotFound:
		return "file not found"
	case KindPermission:
		return "permission denied"
	case KindEncoding:
		return "invalid encoding"
	default:
		return fmt.Sprintf("FileErrorKind(%d)", int(k))
	}
}

// FileError aborts classification of a whole file. No partial result
// accompanies it.
type FileError struct {
	Kind FileErrorKind
	Op   string // "open" or "read"
	Path string
	Err  error
}

// Error implements the error interface
func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Path, e.Kind, e.Err)
}

// Unwrap returns the underlying error for error chain inspection
func (e *FileError) Unwrap() error {
	return e.Err
}

// Troubleshooting returns hints suited to the failure kind.
func (e *FileError) Troubleshooting() []string {
	switch e.Kind {
	case KindNotFound:
		return []string{
			"Check the path for typos",
			"Relative paths are resolved from the current directory",
		}
	case KindPermission:
		return []string{
			"Check the file permissions (ls -l)",
			"Capture files written by root may need chmod or sudo",
		}
	case KindEncoding:
		return []string{
			"The trace must be a text log (candump -l style)",
			"Binary captures (pcap, blf) are not supported",
			"Log format reference: " + urls.CanUtils,
		}
	default:
		return []string{"Retry the command; the file may be on a failing device"}
	}
}

// classifyFileError wraps err with the kind inferred from it.
func classifyFileError(op, path string, err error) *FileError {
	kind := KindIO
	switch {
	case errors.Is(err, fs.ErrNotExist):
		kind = KindNotFound
	case errors.Is(err, fs.ErrPermission):
		kind = KindPermission
	case errors.Is(err, ErrInvalidUTF8):
		kind = KindEncoding
	}
	return &FileError{Kind: kind, Op: op, Path: path, Err: err}
}
