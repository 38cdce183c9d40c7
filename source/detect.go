package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrNotPDF is returned when a file does not start with a PDF header.
var ErrNotPDF = errors.New("not a PDF file")

// headerWindow is how far into a file the %PDF- marker may appear. Some
// producers prepend junk before the header.
const headerWindow = 1024

// IsPDF reports whether data contains a PDF header within its first
// kilobyte.
func IsPDF(data []byte) bool {
	if len(data) > headerWindow {
		data = data[:headerWindow]
	}
	return bytes.Contains(data, []byte("%PDF-"))
}

// Sniff checks that the file at path looks like a PDF.
func Sniff(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	buf := make([]byte, headerWindow)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if !IsPDF(buf[:n]) {
		return fmt.Errorf("%s: %w", path, ErrNotPDF)
	}
	return nil
}
