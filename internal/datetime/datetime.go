// Package datetime implements the two date/time entry points described in
// the system's format contract: a strict ISO-8601 fast path, and a
// general format-string interpreter with locale-aware month/AM-PM name
// matching and time-zone offset handling.
//
// Both entry points populate a shared, reusable State. Reset it before
// each field; year, month, day, hour, minute, second, a fractional
// second, an AM/PM flag, a time-zone offset and an optional time-zone
// name are all tracked. Month and day are stored 0-indexed internally
// even though the wire format is 1-indexed.
package datetime

import (
	"fmt"
	"time"

	"github.com/shapestone/shape-tabular/internal/locale"
	"github.com/shapestone/shape-tabular/internal/numeric"
)

// amPM is a tri-state flag: unset leaves State.Hour untouched at
// Make-time, ampmAM and ampmPM trigger the 12-to-24-hour correction.
type amPM int8

const (
	ampmUnset amPM = -1
	ampmAM    amPM = 0
	ampmPM    amPM = 1
)

// State is the mutable scratch space shared by ParseISO8601 and
// ParseFormat. It is safe to reuse across fields — call Reset first.
type State struct {
	Year, Month, Day     int
	Hour, Minute, Second int
	PartialSecond        float64
	TZOffsetHours        int
	TZOffsetMinutes      int
	TZName               string

	amPM         amPM
	hasTimePart  bool

	locale *locale.Info
}

// HasTimePart reports whether the most recent successful ParseISO8601
// call consumed a time-of-day component, as opposed to a bare date.
// The Date collector uses this to reject timestamps that carry a time
// it would otherwise silently discard.
func (s *State) HasTimePart() bool {
	return s.hasTimePart
}

// NewState returns a State bound to the given locale. loc must not be nil.
func NewState(loc *locale.Info) *State {
	s := &State{locale: loc}
	s.Reset()
	return s
}

// Reset clears all fields back to their defaults, ready for the next
// field. Year 0 is the sentinel for "not yet parsed".
func (s *State) Reset() {
	s.Year = 0
	s.Month = 0
	s.Day = 0
	s.Hour = 0
	s.Minute = 0
	s.Second = 0
	s.PartialSecond = 0
	s.TZOffsetHours = 0
	s.TZOffsetMinutes = 0
	s.TZName = s.locale.TZDefault
	s.amPM = ampmUnset
	s.hasTimePart = false
}

// ParseISO8601 accepts the canonical subset
// YYYY[-]MM[-]DD([T ]HH[:MM[:SS[.sss]]])?(Z|±HH[:MM])? and reports success
// only when the entire input is consumed.
func (s *State) ParseISO8601(data []byte) bool {
	s.Reset()
	c := numeric.NewCursor(data)

	year, ok := c.ConsumeInteger(4)
	if !ok {
		return false
	}
	s.Year = year
	c.ConsumeThisByte('-')
	if s.Month, ok = c.ConsumeInteger1(2); !ok {
		return false
	}
	c.ConsumeThisByte('-')
	if s.Day, ok = c.ConsumeInteger1(2); !ok {
		return false
	}

	if c.Done() {
		return true
	}

	next, ok := c.ConsumeByte()
	if !ok || (next != 'T' && next != ' ') {
		return false
	}
	s.hasTimePart = true

	if s.Hour, ok = c.ConsumeInteger(2); !ok {
		return false
	}
	c.ConsumeThisByte(':')
	s.Minute, _ = c.ConsumeInteger(2)
	c.ConsumeThisByte(':')
	s.consumeSeconds(c)

	if c.Done() {
		return true
	}

	s.TZName = "UTC"
	if !s.consumeTZOffset(c) {
		return false
	}
	return c.Done()
}

// ParseFormat walks format directive by directive against data; the
// supported directives are the cases of parseFormat's switch. It returns a non-nil error only for a
// malformed format string (an unsupported or trailing '%' directive) —
// those are caller-fatal. A false, nil result means the input simply
// didn't match; the caller should treat the field as missing.
func (s *State) ParseFormat(format string, data []byte) (bool, error) {
	s.Reset()
	c := numeric.NewCursor(data)
	ok, err := s.parseFormat(format, c)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	return c.Done(), nil
}

// parseFormat runs one pass of the format string against c. Compound
// directives (%D, %F, %R, %T, %X, %x) recurse into this same method and —
// matching the reference implementation this interpreter is ported from —
// the recursive call's own success/failure is not checked by its caller;
// only the outermost ParseFormat's final cursor position decides success.
// A malformed directive is the one failure mode that always propagates,
// since it indicates the format string itself is broken rather than a
// mismatch against this particular input.
func (s *State) parseFormat(format string, c *numeric.Cursor) (bool, error) {
	c.ConsumeWhitespace()

	runes := []byte(format)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]

		if isFormatSpace(ch) {
			c.ConsumeWhitespace()
			continue
		}

		if ch != '%' {
			if !c.ConsumeThisByte(ch) {
				return false, nil
			}
			continue
		}

		i++
		if i >= len(runes) {
			return false, fmt.Errorf("datetime: trailing %%")
		}
		directive := runes[i]

		switch directive {
		case 'Y':
			v, ok := c.ConsumeInteger(4)
			if !ok {
				return false, nil
			}
			s.Year = v
		case 'y':
			v, ok := c.ConsumeInteger(2)
			if !ok {
				return false, nil
			}
			if v < 69 {
				v += 2000
			} else {
				v += 1900
			}
			s.Year = v
		case 'm':
			v, ok := c.ConsumeInteger1(2)
			if !ok {
				return false, nil
			}
			s.Month = v
		case 'b':
			idx, length, ok := s.locale.MatchLongest(s.locale.MonthAbbrev[:], c.Remaining())
			if !ok {
				return false, nil
			}
			s.Month = idx
			c.Pos += length
		case 'B':
			idx, length, ok := s.locale.MatchLongest(s.locale.Month[:], c.Remaining())
			if !ok {
				return false, nil
			}
			s.Month = idx
			c.Pos += length
		case 'd':
			v, ok := c.ConsumeInteger1(2)
			if !ok {
				return false, nil
			}
			s.Day = v
		case 'e':
			v, ok := c.ConsumeInteger1WithSpace(2)
			if !ok {
				return false, nil
			}
			s.Day = v
		case 'H':
			v, ok := c.ConsumeInteger(2)
			if !ok {
				return false, nil
			}
			s.Hour = v
		case 'M':
			v, ok := c.ConsumeInteger(2)
			if !ok {
				return false, nil
			}
			s.Minute = v
		case 'S':
			if !s.consumeSecondsStrict(c, false) {
				return false, nil
			}
		case 'O':
			if i+1 >= len(runes) || runes[i+1] != 'S' {
				return false, fmt.Errorf("datetime: %%O must be followed by %%S")
			}
			i++
			if !s.consumeSecondsStrict(c, true) {
				return false, nil
			}
		case 'p':
			idx, length, ok := s.locale.MatchLongest(s.locale.AMPM[:], c.Remaining())
			if !ok {
				return false, nil
			}
			s.amPM = amPM(idx)
			c.Pos += length
		case 'z':
			s.TZName = "UTC"
			if !s.consumeTZOffset(c) {
				return false, nil
			}
		case 'Z':
			name, ok := s.consumeTZName(c)
			if !ok {
				return false, nil
			}
			s.TZName = name
		case '.':
			if !c.ConsumeNonDigit() {
				return false, nil
			}
		case '*':
			c.ConsumeNonDigits()
		case 'D':
			if _, err := s.parseFormat("%m/%d/%y", c); err != nil {
				return false, err
			}
		case 'F':
			if _, err := s.parseFormat("%Y-%m-%d", c); err != nil {
				return false, err
			}
		case 'R':
			if _, err := s.parseFormat("%H:%M", c); err != nil {
				return false, err
			}
		case 'T', 'X':
			if _, err := s.parseFormat("%H:%M:%S", c); err != nil {
				return false, err
			}
		case 'x':
			if _, err := s.parseFormat("%y/%m/%d", c); err != nil {
				return false, err
			}
		default:
			return false, fmt.Errorf("datetime: unsupported format directive %%%c", directive)
		}
	}

	c.ConsumeWhitespace()
	return true, nil
}

func (s *State) consumeSeconds(c *numeric.Cursor) {
	sec, ok := c.ConsumeDouble(s.locale.DecimalMark)
	if !ok {
		return
	}
	whole := int(sec)
	s.Second = whole
	s.PartialSecond = sec - float64(whole)
}

// consumeSecondsStrict backs %S and %OS: it fails the overall parse if no
// digits are present, unlike the ISO-8601 path's consumeSeconds, which
// treats the seconds component as optional.
func (s *State) consumeSecondsStrict(c *numeric.Cursor, wantFraction bool) bool {
	sec, ok := c.ConsumeDouble(s.locale.DecimalMark)
	if !ok {
		return false
	}
	whole := int(sec)
	s.Second = whole
	if wantFraction {
		s.PartialSecond = sec - float64(whole)
	}
	return true
}

// consumeTZOffset accepts Z, ±HH, ±HH:MM or ±HHMM.
func (s *State) consumeTZOffset(c *numeric.Cursor) bool {
	if c.ConsumeThisByte('Z') {
		return true
	}

	mult := 1
	if b, ok := c.Peek(); ok && (b == '+' || b == '-') {
		if b == '-' {
			mult = -1
		}
		c.Pos++
	}

	hours, ok := c.ConsumeInteger(2)
	if !ok {
		return false
	}
	c.ConsumeThisByte(':')
	minutes, _ := c.ConsumeInteger(2)

	s.TZOffsetHours = hours * mult
	s.TZOffsetMinutes = minutes * mult
	return true
}

func (s *State) consumeTZName(c *numeric.Cursor) (string, bool) {
	start := c.Pos
	for !c.Done() {
		b, _ := c.Peek()
		if isFormatSpace(b) {
			break
		}
		c.Pos++
	}
	if c.Pos == start {
		return "", false
	}
	return string(c.Data[start:c.Pos]), true
}

func isFormatSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}

// hour applies the AM/PM correction described by MakeDateTime/MakeTime:
// PM adds 12 to an hour of 1-11 and leaves 12 alone; AM leaves 1-11 alone
// and zeroes a 12. An hour with no AM/PM directive is assumed to already
// be in 24-hour form and is returned unchanged.
func (s *State) hour() int {
	switch s.amPM {
	case ampmPM:
		if s.Hour == 12 {
			return 12
		}
		return s.Hour + 12
	case ampmAM:
		if s.Hour == 12 {
			return 0
		}
		return s.Hour
	default:
		return s.Hour
	}
}

// Result is a fully composed timestamp: the UTC instant plus the raw
// offset (in seconds) that was applied to arrive at it, and the time zone
// name if one was parsed via %Z.
type Result struct {
	Time          time.Time
	OffsetSeconds int
	TZName        string
	SinceMidnight time.Duration
}

// validCalendarDate reports whether the parsed year/month/day name a
// real calendar date, rejecting what time.Date would otherwise
// silently normalize into a different date (e.g. 2023-02-29, which
// has no February 29th, would normalize to 2023-03-01).
func (s *State) validCalendarDate() bool {
	if s.Month < 0 || s.Month > 11 || s.Day < 0 {
		return false
	}
	t := time.Date(s.Year, time.Month(s.Month+1), s.Day+1, 0, 0, 0, 0, time.UTC)
	y, m, d := t.Date()
	return y == s.Year && int(m) == s.Month+1 && d == s.Day+1
}

// validTimeOfDay reports whether the parsed hour/minute/second are in
// range. The hour's valid range depends on whether an AM/PM directive
// was seen: 1-12 with one, 0-23 without.
func (s *State) validTimeOfDay() bool {
	if s.amPM != ampmUnset {
		if s.Hour < 1 || s.Hour > 12 {
			return false
		}
	} else if s.Hour < 0 || s.Hour > 23 {
		return false
	}
	if s.Minute < 0 || s.Minute > 59 {
		return false
	}
	if s.Second < 0 || s.Second > 60 {
		return false
	}
	return true
}

// MakeDateTime composes every parsed field into a UTC instant. If a
// numeric offset was parsed (via the ISO-8601 path or %z), the instant is
// shifted by the negated offset, matching the convention that the parsed
// wall-clock fields are local to that offset. ok is false when the
// parsed fields don't name a real calendar date or a valid time of
// day; the caller must not use Result in that case.
func (s *State) MakeDateTime() (r Result, ok bool) {
	if !s.validCalendarDate() || !s.validTimeOfDay() {
		return Result{}, false
	}
	offsetSeconds := 0
	t := time.Date(s.Year, time.Month(s.Month+1), s.Day+1, s.hour(), s.Minute, s.Second, partialSecondNanos(s.PartialSecond), time.UTC)
	if s.TZName == "UTC" && (s.TZOffsetHours != 0 || s.TZOffsetMinutes != 0) {
		offset := s.TZOffsetHours*3600 + s.TZOffsetMinutes*60
		offsetSeconds = -offset
		t = t.Add(-time.Duration(offset) * time.Second)
	}
	return Result{Time: t, OffsetSeconds: offsetSeconds, TZName: s.TZName}, true
}

// MakeDate zeroes the time-of-day and forces UTC. ok is false when the
// parsed fields don't name a real calendar date.
func (s *State) MakeDate() (r Result, ok bool) {
	if !s.validCalendarDate() {
		return Result{}, false
	}
	t := time.Date(s.Year, time.Month(s.Month+1), s.Day+1, 0, 0, 0, 0, time.UTC)
	return Result{Time: t, TZName: "UTC"}, true
}

// MakeTime zeroes the date, applies the AM/PM hour correction, and forces
// UTC. The year/month/day fields of the returned Time are meaningless and
// are set to the zero date. ok is false when the parsed hour, minute or
// second is out of range.
func (s *State) MakeTime() (r Result, ok bool) {
	if !s.validTimeOfDay() {
		return Result{}, false
	}
	t := time.Date(0, time.January, 1, s.hour(), s.Minute, s.Second, partialSecondNanos(s.PartialSecond), time.UTC)
	since := time.Duration(s.hour())*time.Hour + time.Duration(s.Minute)*time.Minute +
		time.Duration(s.Second)*time.Second + time.Duration(partialSecondNanos(s.PartialSecond))
	return Result{Time: t, TZName: "UTC", SinceMidnight: since}, true
}

func partialSecondNanos(frac float64) int {
	if frac <= 0 {
		return 0
	}
	return int(frac*1e9 + 0.5)
}
