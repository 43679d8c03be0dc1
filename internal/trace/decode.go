package trace

import (
	"encoding/hex"
	"errors"
	"math"
	"strconv"
	"strings"
)

// DecodeHexPayload decodes the text after '#' into payload bytes.
//
// An empty string is a frame without data (e.g. a remote frame) and yields a
// non-nil, zero-length slice. Odd lengths, more than 16 hex characters, and
// any non-hex character are rejected with a *LineError.
func DecodeHexPayload(s string) ([]byte, error) {
	if s == "" {
		return []byte{}, nil
	}

	if len(s)%2 != 0 {
		return nil, lineErr(ReasonPayloadOddLength, s, nil)
	}
	if len(s) > MaxPayloadHex {
		return nil, lineErr(ReasonPayloadTooLong, s, nil)
	}

	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, lineErr(ReasonPayloadHex, s, err)
	}
	return data, nil
}

// ParseTimestamp parses the first token of a trace line. Any '(' or ')'
// characters at either end are removed first, so "(1.5)", "1.5" and "((1.5"
// are equivalent. The result is always finite.
func ParseTimestamp(tok string) (float64, error) {
	s := strings.Trim(tok, "()")

	// strconv accepts hex floats ("0x1p-2"); trace timestamps are decimal
	if strings.ContainsAny(s, "xX") {
		return 0, lineErr(ReasonTimestamp, tok, nil)
	}

	ts, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Overflow parses to ±Inf; report it as non-finite rather than malformed
		if errors.Is(err, strconv.ErrRange) && math.IsInf(ts, 0) {
			return 0, lineErr(ReasonTimestampNotFinite, tok, nil)
		}
		return 0, lineErr(ReasonTimestamp, tok, err)
	}
	if math.IsNaN(ts) || math.IsInf(ts, 0) {
		return 0, lineErr(ReasonTimestampNotFinite, tok, nil)
	}
	return ts, nil
}

// ParseIdentifier parses a hexadecimal CAN identifier. A single lowercase
// "0x" prefix is stripped; "0X" is not recognised as a prefix. One '+' sign
// may follow the prefix ("+7FF", "0x+7FF"); '-' is always rejected.
func ParseIdentifier(s string) (uint32, error) {
	digits := strings.TrimPrefix(s, "0x")
	digits = strings.TrimPrefix(digits, "+")

	id, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, lineErr(ReasonIdentifierRange, s, nil)
		}
		return 0, lineErr(ReasonIdentifier, s, err)
	}
	if id > MaxExtendedID {
		return 0, lineErr(ReasonIdentifierRange, s, nil)
	}
	return uint32(id), nil
}
