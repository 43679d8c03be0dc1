package trace

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Classic CAN limits
const (
	MaxStandardID = 0x7FF      // 11-bit base format
	MaxExtendedID = 0x1FFFFFFF // 29-bit extended format
	MaxDataLen    = 8          // classic CAN payload, bytes
	MaxPayloadHex = MaxDataLen * 2
)

// Frame is one decoded trace line.
type Frame struct {
	Timestamp float64 // seconds, always finite
	Interface string  // e.g. "can0", taken verbatim
	ID        uint32  // <= MaxExtendedID
	Data      []byte  // 0..8 bytes
	Raw       string  // trimmed source line
	Line      int     // 1-based line number in the source
}

// Extended reports whether the identifier needs the 29-bit format.
func (f Frame) Extended() bool {
	return f.ID > MaxStandardID
}

// DLC returns the data length code (payload length for classic CAN).
func (f Frame) DLC() int {
	return len(f.Data)
}

// DataHex returns the payload as uppercase hex, "" for an empty payload.
func (f Frame) DataHex() string {
	return strings.ToUpper(hex.EncodeToString(f.Data))
}

// IDString formats the identifier the way candump does: three digits for
// standard identifiers, eight for extended ones.
func (f Frame) IDString() string {
	if f.Extended() {
		return fmt.Sprintf("%08X", f.ID)
	}
	return fmt.Sprintf("%03X", f.ID)
}

// String renders the frame as a candump log line.
func (f Frame) String() string {
	return fmt.Sprintf("(%.6f) %s %s#%s", f.Timestamp, f.Interface, f.IDString(), f.DataHex())
}
