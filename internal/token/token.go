// Package token defines the value type produced by the delimited tokenizer.
package token

// Kind identifies which variant of Token is populated.
type Kind uint8

const (
	// KindString is a field that carries content, zero-copy or unescaped.
	KindString Kind = iota
	// KindMissing is a field that matched one of the dialect's NA markers.
	KindMissing
	// KindEmpty is a zero-length field, distinct from KindMissing.
	KindEmpty
	// KindEOF is the terminal sentinel; exactly one is produced per stream.
	KindEOF
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "String"
	case KindMissing:
		return "Missing"
	case KindEmpty:
		return "Empty"
	case KindEOF:
		return "EOF"
	default:
		return "Unknown"
	}
}

// Token is a tagged variant produced by the tokenizer for each field.
//
// Data holds the field's content for KindString. When Owned is false, Data
// is a slice directly into the source buffer and remains valid for as long
// as that buffer is alive. When Owned is true, Data points into the
// tokenizer's scratch buffer and is only valid until the next call to
// Next on that tokenizer — callers that need to retain it must
// copy it first.
type Token struct {
	Kind  Kind
	Data  []byte
	Owned bool
	Row   int
	Col   int
}

// Bytes returns the token's content. Missing, Empty and EOF tokens always
// return nil.
func (t Token) Bytes() []byte {
	if t.Kind != KindString {
		return nil
	}
	return t.Data
}

// String copies the token's content into a new string. Safe to call
// regardless of ownership; it allocates a copy for every token.
func (t Token) String() string {
	return string(t.Bytes())
}
