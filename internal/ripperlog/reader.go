package ripperlog

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// maxLogBytes bounds how much of a file is read; ripper logs are a few KiB.
const maxLogBytes = 16 << 20

// Tool identifies the ripping program that wrote a log.
type Tool int

const (
	ToolUnknown Tool = iota
	ToolEAC
	ToolXLD
)

var signatures = []struct {
	tool   Tool
	prefix string
}{
	{ToolEAC, "Exact Audio Copy"},
	{ToolXLD, "X Lossless Decoder"},
}

func (t Tool) String() string {
	switch t {
	case ToolEAC:
		return "eac"
	case ToolXLD:
		return "xld"
	default:
		return "unknown"
	}
}

// DetectTool classifies a log by its first line.
func DetectTool(firstLine string) Tool {
	line := strings.TrimPrefix(firstLine, "\ufeff")
	for _, sig := range signatures {
		if strings.HasPrefix(line, sig.prefix) {
			return sig.tool
		}
	}
	return ToolUnknown
}

// Log is a recognized ripper log with its recovered table of contents.
type Log struct {
	Path string
	Tool Tool
	TOC  TOC
}

// ReadFile reads, decodes and parses the ripper log at path.
func ReadFile(path string) (Log, error) {
	file, err := os.Open(path)
	if err != nil {
		return Log{}, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxLogBytes+1))
	if err != nil {
		return Log{}, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	if len(data) > maxLogBytes {
		return Log{}, fmt.Errorf("%w: larger than %d bytes", ErrUnreadable, maxLogBytes)
	}

	log, err := Parse(data)
	log.Path = path
	return log, err
}

// Parse decodes raw log bytes and recovers the table of contents.
func Parse(data []byte) (Log, error) {
	text, err := decodeText(data)
	if err != nil {
		return Log{}, err
	}

	lines := NewReaderLines(strings.NewReader(text))
	first, ok := lines.Next()
	if !ok {
		return Log{}, ErrNotRipperLog
	}
	tool := DetectTool(first)
	if tool == ToolUnknown {
		return Log{}, ErrNotRipperLog
	}

	toc, err := ParseTOC(lines)
	if err != nil {
		return Log{Tool: tool}, err
	}
	if err := lines.Err(); err != nil {
		return Log{Tool: tool}, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	return Log{Tool: tool, TOC: toc}, nil
}

// decodeText returns data as UTF-8 text, falling back to UTF-16 (byte order
// taken from the BOM, little endian without one) when data is not valid UTF-8.
func decodeText(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))), nil
	}
	decoded, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("%w: decode utf-16: %w", ErrUnreadable, err)
	}
	if !utf8.Valid(decoded) {
		return "", fmt.Errorf("%w: not valid utf-8 or utf-16 text", ErrUnreadable)
	}
	return string(decoded), nil
}
