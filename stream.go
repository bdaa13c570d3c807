package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// stdioSentinel selects standard input or output instead of a file.
const stdioSentinel = "-"

// openInput opens the dump to read. The returned closer is always non-nil.
func openInput(path string) (io.ReadCloser, error) {
	if path == stdioSentinel {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	return f, nil
}

// openOutput creates the file the converted script is written to.
func openOutput(path string) (io.WriteCloser, error) {
	if path == stdioSentinel {
		return nopWriteCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}
	return f, nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// countLines returns the number of lines in the file at path, or -1 for
// standard input, which cannot be read twice.
func countLines(path string) (int64, error) {
	if path == stdioSentinel {
		return -1, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("count input lines: %w", err)
	}
	defer f.Close()

	var n int64
	var last byte
	buf := make([]byte, 256*1024)
	for {
		k, err := f.Read(buf)
		if k > 0 {
			n += int64(bytes.Count(buf[:k], []byte{'\n'}))
			last = buf[k-1]
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("count input lines: %w", err)
		}
	}
	if last != 0 && last != '\n' {
		n++
	}
	return n, nil
}
