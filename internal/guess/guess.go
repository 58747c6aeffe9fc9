// Package guess implements the type guesser: given a column of raw
// strings, it picks the narrowest type whose collector parses every
// non-missing entry without a warning.
package guess

import (
	"github.com/shapestone/shape-tabular/internal/collector"
	"github.com/shapestone/shape-tabular/internal/locale"
	"github.com/shapestone/shape-tabular/internal/token"
	"github.com/shapestone/shape-tabular/internal/warnings"
)

// Candidate type names, narrowest first, matching the evaluation order
// Column walks through.
const (
	Logical   = "logical"
	Integer   = "integer"
	Double    = "double"
	Date      = "date"
	DateTime  = "datetime"
	Time      = "time"
	Character = "character"
)

var order = []string{Logical, Integer, Double, Date, DateTime, Time, Character}

// Column classifies values — a column's raw string entries, with na
// marking which entries count as missing — into the narrowest type
// that fully parses. Empty strings and na-listed entries are skipped
// when judging fit; Character always succeeds, so the function never
// returns an empty string.
func Column(values []string, na []string) string {
	naSet := make(map[string]bool, len(na))
	for _, m := range na {
		naSet[m] = true
	}

	for _, candidate := range order {
		if candidate == Character {
			return Character
		}
		if fits(candidate, values, naSet) {
			return candidate
		}
	}
	return Character
}

func fits(candidate string, values []string, naSet map[string]bool) bool {
	warn := warnings.New()
	c := newCollector(candidate, warn)
	c.Resize(len(values))

	nonMissing := 0
	for i, v := range values {
		if v == "" || naSet[v] {
			continue
		}
		nonMissing++
		c.SetValue(i, token.Token{Kind: token.KindString, Data: []byte(v), Row: i})
	}
	return nonMissing == 0 || warn.Count() == 0
}

func newCollector(candidate string, warn *warnings.Buffer) collector.Collector {
	loc := locale.Default()
	switch candidate {
	case Logical:
		return collector.NewLogical(warn)
	case Integer:
		return collector.NewInteger(warn)
	case Double:
		return collector.NewDouble(warn, loc.DecimalMark)
	case Date:
		return collector.NewDate(warn, loc, "")
	case DateTime:
		return collector.NewDateTime(warn, loc, "")
	case Time:
		return collector.NewTime(warn, loc, "")
	default:
		return collector.NewCharacter(warn)
	}
}
