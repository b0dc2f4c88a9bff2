package annot

import (
	"bufio"
	"io"
	"strings"
)

// LineSource reads an input file one line at a time and tracks the line
// number of the last line returned.
type LineSource struct {
	r    *bufio.Reader
	file string
	line int
}

// NewLineSource wraps r. The file name is used only in diagnostics.
func NewLineSource(r io.Reader, file string) *LineSource {
	return &LineSource{
		r:    bufio.NewReader(r),
		file: file,
	}
}

// Next returns the next line without its line terminator. At end of input it
// returns io.EOF and the line number moves one past the last line.
func (s *LineSource) Next() (string, error) {
	s.line++
	text, err := s.r.ReadString('\n')
	if err != nil {
		if err != io.EOF || text == "" {
			return "", err
		}
	}
	text = strings.TrimSuffix(text, "\n")
	text = strings.TrimSuffix(text, "\r")
	return text, nil
}

// File returns the file name given to NewLineSource.
func (s *LineSource) File() string {
	return s.file
}

// Line returns the 1-based number of the last line read.
func (s *LineSource) Line() int {
	return s.line
}
