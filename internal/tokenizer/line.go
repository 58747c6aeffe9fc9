package tokenizer

import (
	"github.com/shapestone/shape-tabular/internal/source"
	"github.com/shapestone/shape-tabular/internal/token"
)

// LineTokenizer is the degenerate variant used by the raw line reader:
// no quoting, no delimiters, one KindString token per physical line
// with trailing \r/\n stripped.
type LineTokenizer struct {
	data []byte
	pos  int
	row  int
	eof  bool
}

// NewLine binds a LineTokenizer to src, stripping a leading UTF-8 BOM
// first. src itself is never mutated: NewLine advances a local copy so
// the same *Source can be read more than once.
func NewLine(src *source.Source) *LineTokenizer {
	local := *src
	local.StripBOM()
	return &LineTokenizer{data: local.Data}
}

// Next returns the next line as a KindString token, or KindEOF once
// every line has been consumed.
func (t *LineTokenizer) Next() token.Token {
	if t.eof {
		return token.Token{Kind: token.KindEOF, Row: t.row}
	}
	if t.pos >= len(t.data) {
		t.eof = true
		return token.Token{Kind: token.KindEOF, Row: t.row}
	}

	start := t.pos
	for t.pos < len(t.data) && t.data[t.pos] != '\n' && t.data[t.pos] != '\r' {
		t.pos++
	}
	line := t.data[start:t.pos]

	row := t.row
	t.consumeNewline()
	t.row++
	return token.Token{Kind: token.KindString, Data: line, Row: row}
}

func (t *LineTokenizer) consumeNewline() {
	if t.pos >= len(t.data) {
		return
	}
	if t.data[t.pos] == '\r' {
		t.pos++
		if t.pos < len(t.data) && t.data[t.pos] == '\n' {
			t.pos++
		}
		return
	}
	if t.data[t.pos] == '\n' {
		t.pos++
	}
}

// Progress reports bytes consumed against the total.
func (t *LineTokenizer) Progress() (consumed, total int64) {
	return int64(t.pos), int64(len(t.data))
}
