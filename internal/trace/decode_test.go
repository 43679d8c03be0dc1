package trace

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeHexPayload(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		want       []byte
		wantReason Reason
		wantErr    bool
	}{
		{name: "empty payload", input: "", want: []byte{}},
		{name: "single zero byte", input: "00", want: []byte{0x00}},
		{name: "two bytes uppercase", input: "1A2B", want: []byte{0x1A, 0x2B}},
		{name: "two bytes lowercase", input: "1a2b", want: []byte{0x1A, 0x2B}},
		{name: "mixed case", input: "aBcD", want: []byte{0xAB, 0xCD}},
		{
			name:  "eight bytes",
			input: "1122334455667788",
			want:  []byte{0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88},
		},
		{name: "odd length", input: "1", wantErr: true, wantReason: ReasonPayloadOddLength},
		{name: "odd length with bad char", input: "12G", wantErr: true, wantReason: ReasonPayloadOddLength},
		{name: "nine bytes", input: "112233445566778899", wantErr: true, wantReason: ReasonPayloadTooLong},
		{name: "non-hex char", input: "1G", wantErr: true, wantReason: ReasonPayloadHex},
		{name: "non-hex at end", input: "00112z", wantErr: true, wantReason: ReasonPayloadHex},
		{name: "embedded separator", input: "11#2", wantErr: true, wantReason: ReasonPayloadHex},
		{name: "multibyte rune", input: "é", wantErr: true, wantReason: ReasonPayloadHex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeHexPayload(tt.input)

			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeHexPayload(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}

			if tt.wantErr {
				var le *LineError
				if !errors.As(err, &le) {
					t.Fatalf("error type = %T, want *LineError", err)
				}
				if le.Reason != tt.wantReason {
					t.Errorf("reason = %v, want %v", le.Reason, tt.wantReason)
				}
				if got != nil {
					t.Errorf("got %v on error, want nil", got)
				}
				return
			}

			if got == nil {
				t.Fatal("got nil slice, want non-nil")
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("DecodeHexPayload(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestDecodeHexPayload_NeverPanics(t *testing.T) {
	inputs := []string{
		"\x00", "\xff\xfe", strings.Repeat("f", 17), strings.Repeat("0", 1000),
		" 00", "00 ", "-1", "+1", "0x", "##", "\n\n",
	}
	for _, in := range inputs {
		data, err := DecodeHexPayload(in)
		if err == nil && len(data) > MaxDataLen {
			t.Errorf("DecodeHexPayload(%q) returned %d bytes", in, len(data))
		}
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		want       float64
		wantErr    bool
		wantReason Reason
	}{
		{name: "parenthesised", input: "(1234.5)", want: 1234.5},
		{name: "bare", input: "1234.5", want: 1234.5},
		{name: "integer", input: "42", want: 42},
		{name: "exponent", input: "1e3", want: 1000},
		{name: "negative", input: "-0.5", want: -0.5},
		{name: "leading paren only", input: "(0.001", want: 0.001},
		{name: "trailing paren only", input: "0.002)", want: 0.002},
		{name: "reversed parens", input: ")0.25(", want: 0.25},
		{name: "repeated parens", input: "((7))", want: 7},
		{name: "NaN", input: "NaN", wantErr: true, wantReason: ReasonTimestampNotFinite},
		{name: "inf", input: "inf", wantErr: true, wantReason: ReasonTimestampNotFinite},
		{name: "negative infinity", input: "(-infinity)", wantErr: true, wantReason: ReasonTimestampNotFinite},
		{name: "overflow", input: "1e400", wantErr: true, wantReason: ReasonTimestampNotFinite},
		{name: "text", input: "abc", wantErr: true, wantReason: ReasonTimestamp},
		{name: "empty parens", input: "()", wantErr: true, wantReason: ReasonTimestamp},
		{name: "inner paren", input: "1(2", wantErr: true, wantReason: ReasonTimestamp},
		{name: "hex float", input: "0x1p-2", wantErr: true, wantReason: ReasonTimestamp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.input)

			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTimestamp(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				var le *LineError
				if !errors.As(err, &le) || le.Reason != tt.wantReason {
					t.Errorf("ParseTimestamp(%q) error = %v, want reason %v", tt.input, err, tt.wantReason)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseIdentifier(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		want       uint32
		wantErr    bool
		wantReason Reason
	}{
		{name: "bare hex", input: "123", want: 0x123},
		{name: "prefixed hex", input: "0x123", want: 0x123},
		{name: "lowercase digits", input: "1abcdef", want: 0x1ABCDEF},
		{name: "zero", input: "0", want: 0},
		{name: "29-bit max", input: "1FFFFFFF", want: MaxExtendedID},
		{name: "prefixed 29-bit max", input: "0x1FFFFFFF", want: MaxExtendedID},
		{name: "above 29 bits", input: "20000000", wantErr: true, wantReason: ReasonIdentifierRange},
		{name: "prefixed above 29 bits", input: "0x20000000", wantErr: true, wantReason: ReasonIdentifierRange},
		{name: "above 32 bits", input: "100000000", wantErr: true, wantReason: ReasonIdentifierRange},
		{name: "uppercase prefix", input: "0X123", wantErr: true, wantReason: ReasonIdentifier},
		{name: "prefix only", input: "0x", wantErr: true, wantReason: ReasonIdentifier},
		{name: "empty", input: "", wantErr: true, wantReason: ReasonIdentifier},
		{name: "non-hex", input: "12G", wantErr: true, wantReason: ReasonIdentifier},
		{name: "negative", input: "-1", wantErr: true, wantReason: ReasonIdentifier},
		{name: "plus sign", input: "+123", want: 0x123},
		{name: "plus after prefix", input: "0x+1FFFFFFF", want: MaxExtendedID},
		{name: "plus only", input: "+", wantErr: true, wantReason: ReasonIdentifier},
		{name: "double plus", input: "++1", wantErr: true, wantReason: ReasonIdentifier},
		{name: "plus before prefix", input: "+0x1", wantErr: true, wantReason: ReasonIdentifier},
		{name: "double prefix", input: "0x0x1", wantErr: true, wantReason: ReasonIdentifier},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseIdentifier(tt.input)

			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseIdentifier(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				var le *LineError
				if !errors.As(err, &le) || le.Reason != tt.wantReason {
					t.Errorf("ParseIdentifier(%q) error = %v, want reason %v", tt.input, err, tt.wantReason)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseIdentifier(%q) = 0x%X, want 0x%X", tt.input, got, tt.want)
			}
		})
	}
}
