package collector

import (
	"github.com/shapestone/shape-tabular/internal/numeric"
	"github.com/shapestone/shape-tabular/internal/token"
	"github.com/shapestone/shape-tabular/internal/warnings"
)

// DoubleColumn is the finalized output of a Double collector.
type DoubleColumn struct {
	Values []float64
	Valid  []bool
}

// Double parses each field as a floating point number using the
// configured locale decimal mark.
type Double struct {
	base
	DecimalMark byte
	col         DoubleColumn
}

// NewDouble returns a Double collector using decimalMark as the locale's
// decimal separator byte, reporting failures to warn.
func NewDouble(warn *warnings.Buffer, decimalMark byte) *Double {
	return &Double{base: base{warn: warn}, DecimalMark: decimalMark}
}

func (c *Double) Resize(n int) {
	c.col.Values = resizeFloat64s(c.col.Values, n)
	c.col.Valid = resizeBools(c.col.Valid, n, false)
}

func (c *Double) SetValue(row int, tok token.Token) {
	switch tok.Kind {
	case token.KindEmpty, token.KindMissing:
		c.col.Values[row] = 0
		c.col.Valid[row] = false
		return
	case token.KindString:
		if v, ok := numeric.ParseDouble(c.DecimalMark, tok.Bytes()); ok {
			c.col.Values[row] = v
			c.col.Valid[row] = true
			return
		}
		c.warn.Add(row, tok.Col, "double", tok.String())
	default:
		c.warn.Add(row, tok.Col, "double", tok.Kind.String())
	}
	c.col.Values[row] = 0
	c.col.Valid[row] = false
}

func (c *Double) Finalize() any {
	col := c.col
	c.col = DoubleColumn{}
	return col
}

func resizeFloat64s(s []float64, n int) []float64 {
	if n <= len(s) {
		return s[:n]
	}
	out := make([]float64, n)
	copy(out, s)
	return out
}
