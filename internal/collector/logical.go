package collector

import (
	"strings"

	"github.com/shapestone/shape-tabular/internal/token"
	"github.com/shapestone/shape-tabular/internal/warnings"
)

// LogicalColumn is the finalized output of a Logical collector.
type LogicalColumn struct {
	Values []bool
	Valid  []bool
}

// Logical accepts T, F, TRUE, FALSE, 1 and 0. The single-letter forms are
// matched case-sensitively by default; set CaseInsensitiveShort to relax
// that. The long forms TRUE/FALSE are always matched case-insensitively.
type Logical struct {
	base
	CaseInsensitiveShort bool
	col                  LogicalColumn
}

// NewLogical returns a Logical collector that reports failures to warn.
func NewLogical(warn *warnings.Buffer) *Logical {
	return &Logical{base: base{warn: warn}}
}

func (c *Logical) Resize(n int) {
	c.col.Values = resizeBools(c.col.Values, n, false)
	c.col.Valid = resizeBools(c.col.Valid, n, false)
}

func (c *Logical) SetValue(row int, tok token.Token) {
	switch tok.Kind {
	case token.KindEmpty, token.KindMissing:
		c.col.Values[row] = false
		c.col.Valid[row] = false
		return
	case token.KindString:
		if v, ok := c.parse(tok.String()); ok {
			c.col.Values[row] = v
			c.col.Valid[row] = true
			return
		}
		c.warn.Add(row, tok.Col, "logical", tok.String())
	default:
		c.warn.Add(row, tok.Col, "logical", tok.Kind.String())
	}
	c.col.Values[row] = false
	c.col.Valid[row] = false
}

func (c *Logical) parse(s string) (bool, bool) {
	switch s {
	case "T":
		return true, true
	case "F":
		return false, true
	}
	if c.CaseInsensitiveShort {
		switch strings.ToUpper(s) {
		case "T":
			return true, true
		case "F":
			return false, true
		}
	}
	switch strings.ToUpper(s) {
	case "TRUE":
		return true, true
	case "FALSE":
		return false, true
	case "1":
		return true, true
	case "0":
		return false, true
	}
	return false, false
}

func (c *Logical) Finalize() any {
	col := c.col
	c.col = LogicalColumn{}
	return col
}
