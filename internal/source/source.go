// Package source owns the read-only byte range the tokenizer consumes.
// It never reinterprets encoding beyond recognizing a leading UTF-8 BOM
// and the dialect's own ASCII delimiter, quote, and comment bytes.
package source

import (
	"fmt"
	"os"
)

// Source is an immutable view over [begin, end) of an underlying byte
// buffer. Whatever produced the buffer — a plain read, a memory map —
// outlives every Source built from it; Data must stay valid for the
// lifetime of any zero-copy tokens taken from it.
type Source struct {
	Data []byte
}

// New wraps an in-memory byte slice. The caller retains ownership of
// data; Source never mutates it.
func New(data []byte) *Source {
	return &Source{Data: data}
}

// NewString wraps a copy of a string's bytes.
func NewString(s string) *Source {
	return &Source{Data: []byte(s)}
}

var bom = []byte{0xEF, 0xBB, 0xBF}

// StripBOM removes a leading UTF-8 byte-order mark, if present. It is
// idempotent: calling it twice is a no-op the second time.
func (s *Source) StripBOM() {
	if len(s.Data) >= 3 && s.Data[0] == bom[0] && s.Data[1] == bom[1] && s.Data[2] == bom[2] {
		s.Data = s.Data[3:]
	}
}

// SkipLines consumes n physical lines from the front of the range,
// honoring quote so that a quoted newline does not count as a line
// boundary. When skipBlank or skipComment is set, lines that are empty
// or begin with comment (after the n required lines) are also
// consumed, stopping at the first line that is neither.
func (s *Source) SkipLines(quote byte, comment string, n int, skipBlank, skipComment bool) error {
	for n > 0 {
		consumed, err := skipOneLine(s.Data, quote)
		if err != nil {
			return fmt.Errorf("source: %w", err)
		}
		s.Data = s.Data[consumed:]
		n--
	}

	for skipBlank || skipComment {
		line, _ := peekLine(s.Data)
		isBlank := len(line) == 0
		isComment := comment != "" && len(line) >= len(comment) && string(line[:len(comment)]) == comment
		if (isBlank && skipBlank) || (isComment && skipComment) {
			consumed, err := skipOneLine(s.Data, quote)
			if err != nil {
				return fmt.Errorf("source: %w", err)
			}
			if consumed == 0 {
				break
			}
			s.Data = s.Data[consumed:]
			continue
		}
		break
	}
	return nil
}

// peekLine returns the next physical line (no quote awareness), without
// its trailing line terminator.
func peekLine(data []byte) ([]byte, int) {
	for i, b := range data {
		if b == '\n' {
			end := i
			if end > 0 && data[end-1] == '\r' {
				end--
			}
			return data[:end], i + 1
		}
	}
	return data, len(data)
}

// skipOneLine consumes one quote-aware physical line, returning the
// number of bytes consumed including its terminator. A quoted newline
// is swallowed without ending the line.
func skipOneLine(data []byte, quote byte) (int, error) {
	inQuote := false
	i := 0
	for i < len(data) {
		b := data[i]
		switch {
		case b == quote:
			inQuote = !inQuote
			i++
		case b == '\n' && !inQuote:
			return i + 1, nil
		case b == '\r' && !inQuote:
			if i+1 < len(data) && data[i+1] == '\n' {
				return i + 2, nil
			}
			return i + 1, nil
		default:
			i++
		}
	}
	if inQuote {
		return 0, fmt.Errorf("unterminated quote while skipping header lines")
	}
	return i, nil
}

// OpenFile reads a file's full contents via the platform-specific
// mmapFile helper and returns a Source plus a closer the caller must
// invoke once the Source (and every zero-copy token taken from it) is
// no longer needed.
func OpenFile(path string) (*Source, func() error, error) {
	data, closeFn, err := mmapFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("source: open %s: %w", path, err)
	}
	return &Source{Data: data}, closeFn, nil
}

// ReadFile is a convenience for callers that don't need mmap — it reads
// the whole file into memory with no platform-specific behavior.
func ReadFile(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("source: read %s: %w", path, err)
	}
	return &Source{Data: data}, nil
}
