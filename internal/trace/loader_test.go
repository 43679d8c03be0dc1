package trace

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func writeTrace(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "capture.log")
	if err := os.WriteFile(path, content, 0600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestClassifyFile(t *testing.T) {
	path := writeTrace(t, []byte(scenarioTrace))

	res, err := ClassifyFile(path, 4)
	if err != nil {
		t.Fatalf("ClassifyFile() error = %v", err)
	}
	if res.Valid != 2 || res.Invalid != 1 || res.Ignored != 1 {
		t.Errorf("counts = %d/%d/%d, want 2/1/1", res.Valid, res.Invalid, res.Ignored)
	}
}

func TestReadFile_Errors(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(t *testing.T) string
		wantKind FileErrorKind
		wantIs   error
	}{
		{
			name: "missing file",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "nope.log")
			},
			wantKind: KindNotFound,
			wantIs:   os.ErrNotExist,
		},
		{
			name: "invalid utf-8",
			setup: func(t *testing.T) string {
				return writeTrace(t, []byte("0.1 can0 123#00\n\xff\xfe bad\n"))
			},
			wantKind: KindEncoding,
			wantIs:   ErrInvalidUTF8,
		},
		{
			name: "directory",
			setup: func(t *testing.T) string {
				return t.TempDir()
			},
			wantKind: KindIO,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.setup(t)

			content, err := ReadFile(path)
			if err == nil {
				t.Fatalf("ReadFile(%q) succeeded with %d bytes, want error", path, len(content))
			}

			var fe *FileError
			if !errors.As(err, &fe) {
				t.Fatalf("error type = %T, want *FileError", err)
			}
			if fe.Kind != tt.wantKind {
				t.Errorf("kind = %v, want %v", fe.Kind, tt.wantKind)
			}
			if fe.Path != path {
				t.Errorf("path = %q, want %q", fe.Path, path)
			}
			if tt.wantIs != nil && !errors.Is(err, tt.wantIs) {
				t.Errorf("errors.Is(err, %v) = false", tt.wantIs)
			}
			if !strings.Contains(err.Error(), path) {
				t.Errorf("error %q does not name the file", err.Error())
			}
			if len(fe.Troubleshooting()) == 0 {
				t.Error("no troubleshooting tips")
			}
		})
	}
}

func TestReadFile_PermissionDenied(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced here")
	}

	path := writeTrace(t, []byte(scenarioTrace))
	if err := os.Chmod(path, 0); err != nil {
		t.Fatalf("chmod: %v", err)
	}

	_, err := ClassifyFile(path, 1)
	var fe *FileError
	if !errors.As(err, &fe) || fe.Kind != KindPermission {
		t.Fatalf("error = %v, want permission FileError", err)
	}
	if fe.Op != "open" {
		t.Errorf("op = %q, want open", fe.Op)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }

func TestClassifyReader(t *testing.T) {
	res, err := ClassifyReader(strings.NewReader(scenarioTrace), "stdin", 1)
	if err != nil {
		t.Fatalf("ClassifyReader() error = %v", err)
	}
	if res.Total() != 4 {
		t.Errorf("total = %d, want 4", res.Total())
	}

	res, err = ClassifyReader(failingReader{}, "stdin", 1)
	if res != nil {
		t.Error("partial result returned alongside error")
	}
	var fe *FileError
	if !errors.As(err, &fe) || fe.Kind != KindIO || fe.Op != "read" {
		t.Fatalf("error = %v, want read FileError", err)
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("cause not wrapped")
	}
}
