// Package tokenizer implements the byte-level state machine that turns
// a delimited-text byte range into a stream of Tokens: FIELD_START,
// UNQUOTED, QUOTED, QUOTED_ESCAPE, QUOTED_END, COMMENT and LINE_END are
// the named states the machine moves through per field.
package tokenizer

import (
	"github.com/shapestone/shape-tabular/internal/source"
	"github.com/shapestone/shape-tabular/internal/token"
	"github.com/shapestone/shape-tabular/internal/warnings"
)

// Tokenizer drives a Dialect over a Source, one field at a time. It is
// constructed once per file and driven forward by Next until it
// returns a KindEOF token; it is never rewound.
type Tokenizer struct {
	data    []byte
	pos     int
	row     int
	col     int
	dialect Dialect
	warn    *warnings.Buffer
	scratch []byte
	eof     bool
}

// New binds dialect to src, stripping a leading UTF-8 BOM and
// consuming dialect.Skip header lines (plus, when configured, leading
// blank and comment-only lines) before the first call to Next. src
// itself is never mutated: New advances a local copy of the Source so
// the same *Source can be tokenized more than once (e.g. GuessTypes
// followed by ReadTokens over the same file).
func New(src *source.Source, dialect Dialect, warn *warnings.Buffer) (*Tokenizer, error) {
	local := *src
	local.StripBOM()
	if dialect.Skip > 0 || dialect.SkipEmptyRows || dialect.Comment != "" {
		if err := local.SkipLines(dialect.Quote, dialect.Comment, dialect.Skip, dialect.SkipEmptyRows, dialect.Comment != ""); err != nil {
			return nil, err
		}
	}
	return &Tokenizer{data: local.Data, dialect: dialect, warn: warn}, nil
}

// Progress reports bytes consumed against the total, for periodic
// reporting by the driver loop.
func (t *Tokenizer) Progress() (consumed, total int64) {
	return int64(t.pos), int64(len(t.data))
}

// Next returns the next Token. Once it returns a KindEOF token it
// keeps returning KindEOF on every subsequent call.
func (t *Tokenizer) Next() token.Token {
	for {
		if t.eof {
			return t.eofToken()
		}

		if t.col == 0 && t.atComment() {
			t.skipLine()
			t.row++
			t.col = 0
			continue
		}

		if t.pos >= len(t.data) {
			t.eof = true
			return t.eofToken()
		}

		b := t.data[t.pos]

		if isNewline(b) {
			tok := t.emptyOrSkippedNewline()
			if tok != nil {
				return *tok
			}
			continue
		}

		if b == t.dialect.Delim {
			tok := token.Token{Kind: token.KindEmpty, Row: t.row, Col: t.col}
			t.pos++
			t.col++
			return tok
		}

		if b == t.dialect.Quote {
			return t.scanQuoted()
		}

		return t.scanUnquoted()
	}
}

func (t *Tokenizer) eofToken() token.Token {
	return token.Token{Kind: token.KindEOF, Row: t.row, Col: t.col}
}

func (t *Tokenizer) atComment() bool {
	c := t.dialect.Comment
	if c == "" || t.pos+len(c) > len(t.data) {
		return false
	}
	return string(t.data[t.pos:t.pos+len(c)]) == c
}

// skipLine consumes bytes up to and including the next line terminator
// (or to EOF), used for comment lines, which emit no token.
func (t *Tokenizer) skipLine() {
	for t.pos < len(t.data) {
		b := t.data[t.pos]
		if isNewline(b) {
			t.consumeNewline()
			return
		}
		t.pos++
	}
}

// emptyOrSkippedNewline handles a newline encountered at FIELD_START.
// It returns a non-nil token when an Empty field should be emitted, or
// nil when the row was blank and skip-empty-rows absorbed it silently
// (the caller should loop back to FIELD_START for the next row).
func (t *Tokenizer) emptyOrSkippedNewline() *token.Token {
	if t.col == 0 && t.dialect.SkipEmptyRows {
		t.consumeNewline()
		t.row++
		t.col = 0
		return nil
	}
	tok := token.Token{Kind: token.KindEmpty, Row: t.row, Col: t.col}
	t.consumeNewline()
	t.row++
	t.col = 0
	return &tok
}

func isNewline(b byte) bool {
	return b == '\n' || b == '\r'
}

// consumeNewline advances past \r\n, \r, or \n, whichever is present
// at the current position.
func (t *Tokenizer) consumeNewline() {
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
	t.pos++
}

// scanUnquoted implements the UNQUOTED state: scan until delimiter,
// newline, or EOF.
func (t *Tokenizer) scanUnquoted() token.Token {
	row, col := t.row, t.col
	start := t.pos
	for t.pos < len(t.data) {
		b := t.data[t.pos]
		if b == t.dialect.Delim || isNewline(b) {
			break
		}
		t.pos++
	}
	content := t.data[start:t.pos]
	if t.dialect.TrimWS {
		content = trimSpace(content)
	}

	kind := token.KindString
	if t.dialect.isNA(content) {
		kind = token.KindMissing
	} else if len(content) == 0 {
		kind = token.KindEmpty
	}

	t.consumeTrailing()
	return token.Token{Kind: kind, Data: content, Row: row, Col: col}
}

// scanQuoted implements QUOTED, QUOTED_ESCAPE and QUOTED_END.
func (t *Tokenizer) scanQuoted() token.Token {
	row, col := t.row, t.col
	quote := t.dialect.Quote
	t.pos++ // consume opening quote

	start := t.pos
	owned := false
	t.scratch = t.scratch[:0]

	for {
		if t.pos >= len(t.data) {
			content, owned := t.finishScanned(start, t.pos, owned)
			t.warn.Add(row, col, "closing quote", "EOF")
			return t.finalize(content, owned, row, col)
		}

		b := t.data[t.pos]

		switch {
		case b == quote:
			if t.dialect.EscapeDouble && t.pos+1 < len(t.data) && t.data[t.pos+1] == quote {
				owned = t.appendRaw(owned, start, t.pos)
				t.scratch = append(t.scratch, quote)
				t.pos += 2
				start = t.pos
				continue
			}
			content, owned := t.finishScanned(start, t.pos, owned)
			t.pos++ // consume closing quote
			return t.afterClosingQuote(content, owned, row, col)

		case b == '\\' && t.dialect.EscapeBackslash:
			if t.pos+1 >= len(t.data) {
				owned = t.appendRaw(owned, start, t.pos)
				t.pos++
				start = t.pos
				continue
			}
			owned = t.appendRaw(owned, start, t.pos)
			t.scratch = append(t.scratch, unescapeByte(t.data[t.pos+1], quote))
			t.pos += 2
			start = t.pos

		default:
			t.pos++
		}
	}
}

func unescapeByte(b, quote byte) byte {
	switch b {
	case '\\':
		return '\\'
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 't':
		return '\t'
	case quote:
		return quote
	default:
		return b
	}
}

// appendRaw copies data[start:end) into the scratch buffer: the first
// time unescaping is needed it resets the buffer to that span, and on
// every later call it appends the span after what the buffer already
// holds.
func (t *Tokenizer) appendRaw(owned bool, start, end int) bool {
	if !owned {
		t.scratch = append(t.scratch[:0], t.data[start:end]...)
		return true
	}
	t.scratch = append(t.scratch, t.data[start:end]...)
	return true
}

// finishScanned returns the field content, either a zero-copy slice of
// the source (owned=false) or the materialized scratch buffer
// (owned=true), depending on whether any escape sequence was seen.
func (t *Tokenizer) finishScanned(start, end int, owned bool) ([]byte, bool) {
	if !owned {
		return t.data[start:end], false
	}
	return append(t.scratch, t.data[start:end]...), true
}

// afterClosingQuote implements QUOTED_END: expect delimiter, newline,
// or EOF; anything else is a warning, skipped until one is found.
func (t *Tokenizer) afterClosingQuote(content []byte, owned bool, row, col int) token.Token {
	for t.pos < len(t.data) {
		b := t.data[t.pos]
		if b == t.dialect.Delim || isNewline(b) {
			break
		}
		t.warn.Add(row, col, "delimiter, newline, or EOF after closing quote", string(b))
		t.pos++
	}
	tok := t.finalize(content, owned, row, col)
	t.consumeTrailing()
	return tok
}

func (t *Tokenizer) finalize(content []byte, owned bool, row, col int) token.Token {
	kind := token.KindString
	if t.dialect.QuotedNA && t.dialect.isNA(content) {
		kind = token.KindMissing
	} else if len(content) == 0 {
		kind = token.KindEmpty
	}
	return token.Token{Kind: kind, Data: content, Owned: owned, Row: row, Col: col}
}

// consumeTrailing advances past the delimiter or newline that ends the
// field just emitted, updating row/col bookkeeping. Called after a
// field's content has already been captured; at EOF it is a no-op.
func (t *Tokenizer) consumeTrailing() {
	if t.pos >= len(t.data) {
		return
	}
	b := t.data[t.pos]
	if b == t.dialect.Delim {
		t.pos++
		t.col++
		return
	}
	if isNewline(b) {
		t.consumeNewline()
		t.row++
		t.col = 0
	}
}
