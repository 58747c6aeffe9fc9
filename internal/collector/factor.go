package collector

import (
	"github.com/shapestone/shape-tabular/internal/token"
	"github.com/shapestone/shape-tabular/internal/warnings"
)

// FactorColumn is the finalized output of a Factor collector. Codes holds
// a zero-based index into Levels for each valid row; Valid[i] is false
// for NA entries, in which case Codes[i] is meaningless.
type FactorColumn struct {
	Levels []string
	Codes  []int
	Valid  []bool
}

// Factor maps field text onto a fixed or discovered set of levels. When
// the levels given at construction are non-empty, values outside that set
// are NA with a warning. When they are nil or empty, new levels are
// appended in first-seen order as the column is read.
type Factor struct {
	base
	levels []string
	index  map[string]int
	fixed  bool
	codes  []int
	valid  []bool
}

// NewFactor returns a Factor collector. If levels is non-empty, the
// level set is fixed to exactly those values (in that order); otherwise
// levels are discovered from the data.
func NewFactor(warn *warnings.Buffer, levels []string) *Factor {
	f := &Factor{base: base{warn: warn}}
	if len(levels) > 0 {
		f.fixed = true
		f.levels = append([]string(nil), levels...)
	}
	f.index = make(map[string]int, len(f.levels))
	for i, l := range f.levels {
		f.index[l] = i
	}
	return f
}

func (c *Factor) Resize(n int) {
	c.codes = resizeInts(c.codes, n)
	c.valid = resizeBools(c.valid, n, false)
}

func (c *Factor) SetValue(row int, tok token.Token) {
	switch tok.Kind {
	case token.KindEmpty, token.KindMissing:
		c.valid[row] = false
		return
	case token.KindString:
		s := tok.String()
		idx, ok := c.index[s]
		if !ok {
			if c.fixed {
				c.warn.Add(row, tok.Col, "factor level", s)
				c.valid[row] = false
				return
			}
			idx = len(c.levels)
			c.levels = append(c.levels, s)
			c.index[s] = idx
		}
		c.codes[row] = idx
		c.valid[row] = true
		return
	default:
		c.warn.Add(row, tok.Col, "factor", tok.Kind.String())
	}
	c.valid[row] = false
}

func (c *Factor) Finalize() any {
	col := FactorColumn{
		Levels: c.levels,
		Codes:  c.codes,
		Valid:  c.valid,
	}
	c.levels = nil
	c.index = nil
	c.codes = nil
	c.valid = nil
	return col
}

func resizeInts(s []int, n int) []int {
	if n <= len(s) {
		return s[:n]
	}
	out := make([]int, n)
	copy(out, s)
	return out
}
