package collector

import (
	"time"

	"github.com/shapestone/shape-tabular/internal/datetime"
	"github.com/shapestone/shape-tabular/internal/locale"
	"github.com/shapestone/shape-tabular/internal/token"
	"github.com/shapestone/shape-tabular/internal/warnings"
)

// DateColumn is the finalized output of a Date collector. Values holds
// each entry truncated to a calendar day; the time-of-day component is
// always zero.
type DateColumn struct {
	Values []time.Time
	Valid  []bool
}

// Date parses each field against Format using the ISO-8601 fast path
// first, falling back to the general format-string interpreter.
type Date struct {
	base
	Format string
	Locale *locale.Info
	state  *datetime.State
	col    DateColumn
}

// NewDate returns a Date collector. format is an empty string to rely on
// ISO-8601 only, or a directive string understood by the datetime package.
func NewDate(warn *warnings.Buffer, loc *locale.Info, format string) *Date {
	if loc == nil {
		loc = locale.Default()
	}
	return &Date{
		base:   base{warn: warn},
		Format: format,
		Locale: loc,
		state:  datetime.NewState(loc),
	}
}

func (c *Date) Resize(n int) {
	c.col.Values = resizeTimes(c.col.Values, n)
	c.col.Valid = resizeBools(c.col.Valid, n, false)
}

func (c *Date) SetValue(row int, tok token.Token) {
	switch tok.Kind {
	case token.KindEmpty, token.KindMissing:
		c.col.Valid[row] = false
		return
	case token.KindString:
		c.state.Reset()
		// A date column rejects a timestamp with a time-of-day part rather
		// than silently discarding it.
		ok := c.state.ParseISO8601(tok.Bytes()) && !c.state.HasTimePart()
		if !ok && c.Format != "" {
			var err error
			ok, err = c.tryFormat(tok.Bytes())
			if err != nil {
				c.warn.Add(row, tok.Col, "date format", err.Error())
				c.col.Valid[row] = false
				return
			}
		}
		if ok {
			if r, valid := c.state.MakeDate(); valid {
				c.col.Values[row] = r.Time
				c.col.Valid[row] = true
				return
			}
		}
		c.warn.Add(row, tok.Col, "date", tok.String())
	default:
		c.warn.Add(row, tok.Col, "date", tok.Kind.String())
	}
	c.col.Valid[row] = false
}

func (c *Date) tryFormat(data []byte) (bool, error) {
	return c.state.ParseFormat(c.Format, data)
}

func (c *Date) Finalize() any {
	col := c.col
	c.col = DateColumn{}
	return col
}

func resizeTimes(s []time.Time, n int) []time.Time {
	if n <= len(s) {
		return s[:n]
	}
	out := make([]time.Time, n)
	copy(out, s)
	return out
}
