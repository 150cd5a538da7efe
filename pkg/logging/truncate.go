package logging

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// TruncateFile rewrites path so that only its last maxLines lines remain.
// A missing file is not an error.
func TruncateFile(path string, maxLines int) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error reading log file %s: %w", path, err)
	}

	tail, trimmed := lastLines(data, maxLines)
	if !trimmed {
		return nil
	}

	if err := os.WriteFile(path, tail, 0o644); err != nil {
		return fmt.Errorf("error truncating log file %s: %w", path, err)
	}
	return nil
}

// lastLines returns the final n lines of data and whether anything was cut.
// A trailing newline does not start a new line.
func lastLines(data []byte, n int) ([]byte, bool) {
	if len(data) == 0 {
		return data, false
	}
	if n <= 0 {
		return nil, true
	}

	pos := len(data)
	if data[pos-1] == '\n' {
		pos--
	}
	for i := 0; i < n; i++ {
		idx := bytes.LastIndexByte(data[:pos], '\n')
		if idx < 0 {
			return data, false
		}
		pos = idx
	}
	return data[pos+1:], true
}
