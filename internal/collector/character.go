package collector

import (
	"github.com/shapestone/shape-tabular/internal/token"
	"github.com/shapestone/shape-tabular/internal/warnings"
)

// CharacterColumn is the finalized output of a Character collector.
// Valid[i] is false for NA entries; Values[i] is meaningless in that case.
type CharacterColumn struct {
	Values []string
	Valid  []bool
}

// Character copies field content verbatim: KindString becomes the field
// text, KindMissing becomes NA, and KindEmpty becomes an empty string
// (distinct from NA).
type Character struct {
	base
	col CharacterColumn
}

// NewCharacter returns a Character collector that reports failures to warn.
func NewCharacter(warn *warnings.Buffer) *Character {
	return &Character{base: base{warn: warn}}
}

func (c *Character) Resize(n int) {
	c.col.Values = resizeStrings(c.col.Values, n)
	c.col.Valid = resizeBools(c.col.Valid, n, false)
}

func (c *Character) SetValue(row int, tok token.Token) {
	switch tok.Kind {
	case token.KindString:
		c.col.Values[row] = tok.String()
		c.col.Valid[row] = true
	case token.KindEmpty:
		c.col.Values[row] = ""
		c.col.Valid[row] = true
	case token.KindMissing:
		c.col.Values[row] = ""
		c.col.Valid[row] = false
	default:
		c.warn.Add(row, tok.Col, "character", tok.Kind.String())
		c.col.Values[row] = ""
		c.col.Valid[row] = false
	}
}

func (c *Character) Finalize() any {
	col := c.col
	c.col = CharacterColumn{}
	return col
}

func resizeStrings(s []string, n int) []string {
	if n <= len(s) {
		return s[:n]
	}
	out := make([]string, n)
	copy(out, s)
	return out
}

func resizeBools(s []bool, n int, fill bool) []bool {
	if n <= len(s) {
		return s[:n]
	}
	out := make([]bool, n)
	copy(out, s)
	if fill {
		for i := len(s); i < n; i++ {
			out[i] = fill
		}
	}
	return out
}
