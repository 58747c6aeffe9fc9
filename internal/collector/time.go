package collector

import (
	"time"

	"github.com/shapestone/shape-tabular/internal/datetime"
	"github.com/shapestone/shape-tabular/internal/locale"
	"github.com/shapestone/shape-tabular/internal/token"
	"github.com/shapestone/shape-tabular/internal/warnings"
)

// TimeColumn is the finalized output of a Time collector. Values holds
// each entry as a duration since midnight.
type TimeColumn struct {
	Values []time.Duration
	Valid  []bool
}

// Time parses each field as a time-of-day against Format, with no
// ISO-8601 fast path (ISO-8601 has no bare time-of-day form).
type Time struct {
	base
	Format string
	Locale *locale.Info
	state  *datetime.State
	col    TimeColumn
}

// NewTime returns a Time collector. format defaults to "%H:%M:%S" when
// empty.
func NewTime(warn *warnings.Buffer, loc *locale.Info, format string) *Time {
	if loc == nil {
		loc = locale.Default()
	}
	if format == "" {
		format = "%H:%M:%S"
	}
	return &Time{
		base:   base{warn: warn},
		Format: format,
		Locale: loc,
		state:  datetime.NewState(loc),
	}
}

func (c *Time) Resize(n int) {
	c.col.Values = resizeDurations(c.col.Values, n)
	c.col.Valid = resizeBools(c.col.Valid, n, false)
}

func (c *Time) SetValue(row int, tok token.Token) {
	switch tok.Kind {
	case token.KindEmpty, token.KindMissing:
		c.col.Valid[row] = false
		return
	case token.KindString:
		c.state.Reset()
		ok, err := c.state.ParseFormat(c.Format, tok.Bytes())
		if err != nil {
			c.warn.Add(row, tok.Col, "time format", err.Error())
			c.col.Valid[row] = false
			return
		}
		if ok {
			if r, valid := c.state.MakeTime(); valid {
				c.col.Values[row] = r.SinceMidnight
				c.col.Valid[row] = true
				return
			}
		}
		c.warn.Add(row, tok.Col, "time", tok.String())
	default:
		c.warn.Add(row, tok.Col, "time", tok.Kind.String())
	}
	c.col.Valid[row] = false
}

func (c *Time) Finalize() any {
	col := c.col
	c.col = TimeColumn{}
	return col
}

func resizeDurations(s []time.Duration, n int) []time.Duration {
	if n <= len(s) {
		return s[:n]
	}
	out := make([]time.Duration, n)
	copy(out, s)
	return out
}
