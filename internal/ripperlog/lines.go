package ripperlog

import (
	"bufio"
	"bytes"
	"io"
)

// maxLineBytes bounds a single log line; longer lines end the scan.
const maxLineBytes = 1 << 20

// LineSource is a pull-based iterator over text lines. Next returns the next
// line without its terminator and false once the source is exhausted.
type LineSource interface {
	Next() (string, bool)
}

// ReaderLines adapts an io.Reader into a LineSource.
type ReaderLines struct {
	scanner *bufio.Scanner
}

// NewReaderLines wraps r. Lines may end in "\n", "\r\n" or a lone "\r".
func NewReaderLines(r io.Reader) *ReaderLines {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	scanner.Split(scanAnyLines)
	return &ReaderLines{scanner: scanner}
}

// scanAnyLines is bufio.ScanLines extended to old Mac line endings.
func scanAnyLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		// A "\r" at the end of the buffer may be the first half of "\r\n".
		if i+1 == len(data) && !atEOF {
			return 0, nil, nil
		}
		if i+1 < len(data) && data[i+1] == '\n' {
			return i + 2, data[:i], nil
		}
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// Next implements LineSource.
func (l *ReaderLines) Next() (string, bool) {
	if !l.scanner.Scan() {
		return "", false
	}
	return l.scanner.Text(), true
}

// Err reports the first non-EOF error encountered by the underlying reader.
func (l *ReaderLines) Err() error {
	return l.scanner.Err()
}

// SliceLines is an in-memory LineSource.
type SliceLines struct {
	lines []string
	pos   int
}

// NewSliceLines returns a LineSource over lines.
func NewSliceLines(lines ...string) *SliceLines {
	return &SliceLines{lines: lines}
}

// Next implements LineSource.
func (s *SliceLines) Next() (string, bool) {
	if s.pos >= len(s.lines) {
		return "", false
	}
	line := s.lines[s.pos]
	s.pos++
	return line, true
}
