package collector

import (
	"github.com/shapestone/shape-tabular/internal/numeric"
	"github.com/shapestone/shape-tabular/internal/token"
	"github.com/shapestone/shape-tabular/internal/warnings"
)

// IntegerColumn is the finalized output of an Integer collector.
type IntegerColumn struct {
	Values []int64
	Valid  []bool
}

// Integer parses each field's byte slice as a signed decimal integer.
// An empty or missing field is stored as NA without a warning, whether
// or not AllowEmpty is set; SetValue does not consult AllowEmpty.
type Integer struct {
	base
	AllowEmpty bool
	col        IntegerColumn
}

// NewInteger returns an Integer collector that reports failures to warn.
func NewInteger(warn *warnings.Buffer) *Integer {
	return &Integer{base: base{warn: warn}}
}

func (c *Integer) Resize(n int) {
	c.col.Values = resizeInt64s(c.col.Values, n)
	c.col.Valid = resizeBools(c.col.Valid, n, false)
}

func (c *Integer) SetValue(row int, tok token.Token) {
	switch tok.Kind {
	case token.KindEmpty, token.KindMissing:
		c.col.Values[row] = 0
		c.col.Valid[row] = false
		return
	case token.KindString:
		if v, ok := numeric.ParseInt(tok.Bytes()); ok {
			c.col.Values[row] = v
			c.col.Valid[row] = true
			return
		}
		c.warn.Add(row, tok.Col, "integer", tok.String())
	default:
		c.warn.Add(row, tok.Col, "integer", tok.Kind.String())
	}
	c.col.Values[row] = 0
	c.col.Valid[row] = false
}

func (c *Integer) Finalize() any {
	col := c.col
	c.col = IntegerColumn{}
	return col
}

func resizeInt64s(s []int64, n int) []int64 {
	if n <= len(s) {
		return s[:n]
	}
	out := make([]int64, n)
	copy(out, s)
	return out
}
