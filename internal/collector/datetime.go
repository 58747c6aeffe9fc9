package collector

import (
	"time"

	"github.com/shapestone/shape-tabular/internal/datetime"
	"github.com/shapestone/shape-tabular/internal/locale"
	"github.com/shapestone/shape-tabular/internal/token"
	"github.com/shapestone/shape-tabular/internal/warnings"
)

// DateTimeColumn is the finalized output of a DateTime collector.
type DateTimeColumn struct {
	Values []time.Time
	Valid  []bool
}

// DateTime parses each field against Format, falling back from the
// ISO-8601 fast path to the general format-string interpreter.
type DateTime struct {
	base
	Format string
	Locale *locale.Info
	state  *datetime.State
	col    DateTimeColumn
}

// NewDateTime returns a DateTime collector. format is an empty string to
// rely on ISO-8601 only, or a directive string understood by the
// datetime package.
func NewDateTime(warn *warnings.Buffer, loc *locale.Info, format string) *DateTime {
	if loc == nil {
		loc = locale.Default()
	}
	return &DateTime{
		base:   base{warn: warn},
		Format: format,
		Locale: loc,
		state:  datetime.NewState(loc),
	}
}

func (c *DateTime) Resize(n int) {
	c.col.Values = resizeTimes(c.col.Values, n)
	c.col.Valid = resizeBools(c.col.Valid, n, false)
}

func (c *DateTime) SetValue(row int, tok token.Token) {
	switch tok.Kind {
	case token.KindEmpty, token.KindMissing:
		c.col.Valid[row] = false
		return
	case token.KindString:
		c.state.Reset()
		ok := c.state.ParseISO8601(tok.Bytes())
		if !ok && c.Format != "" {
			var err error
			ok, err = c.state.ParseFormat(c.Format, tok.Bytes())
			if err != nil {
				c.warn.Add(row, tok.Col, "datetime format", err.Error())
				c.col.Valid[row] = false
				return
			}
		}
		if ok {
			if r, valid := c.state.MakeDateTime(); valid {
				c.col.Values[row] = r.Time
				c.col.Valid[row] = true
				return
			}
		}
		c.warn.Add(row, tok.Col, "datetime", tok.String())
	default:
		c.warn.Add(row, tok.Col, "datetime", tok.Kind.String())
	}
	c.col.Valid[row] = false
}

func (c *DateTime) Finalize() any {
	col := c.col
	c.col = DateTimeColumn{}
	return col
}
