package trace

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"
)

// ReadFile reads a whole trace file as text. The file is closed on every
// path. Failures are returned as *FileError.
func ReadFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", classifyFileError("open", path, err)
	}
	defer f.Close()

	return ReadAll(f, path)
}

// ReadAll is ReadFile for an already open source such as stdin. path names
// the source in errors.
func ReadAll(r io.Reader, path string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", classifyFileError("read", path, err)
	}
	if !utf8.Valid(data) {
		return "", classifyFileError("read", path, fmt.Errorf("%w (offset %d)", ErrInvalidUTF8, firstInvalidUTF8(data)))
	}
	return string(data), nil
}

// firstInvalidUTF8 returns the byte offset of the first invalid sequence.
func firstInvalidUTF8(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(data)
}

// ClassifyFile reads path and classifies its content. workers > 1 shards
// classification across goroutines. On error no result is returned.
func ClassifyFile(path string, workers int) (*Result, error) {
	content, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ClassifyParallel(content, workers), nil
}

// ClassifyReader classifies everything readable from r. name is used only
// in error messages.
func ClassifyReader(r io.Reader, name string, workers int) (*Result, error) {
	content, err := ReadAll(r, name)
	if err != nil {
		return nil, err
	}
	return ClassifyParallel(content, workers), nil
}
