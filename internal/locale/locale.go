// Package locale provides the name tables the date/time format interpreter
// consults for %b, %B and %p, plus the locale's decimal mark and default
// time zone.
package locale

import "golang.org/x/text/cases"

// Info is an immutable set of locale-specific tables. Construct one with
// New and never mutate it afterwards — a *Info is shared across every
// column collector that uses the same locale.
type Info struct {
	// Month holds full month names, January first.
	Month [12]string
	// MonthAbbrev holds abbreviated month names, January first.
	MonthAbbrev [12]string
	// AMPM holds the AM and PM words, in that order.
	AMPM [2]string
	// DecimalMark is the byte used as the decimal separator.
	DecimalMark byte
	// TZDefault is the time zone identifier assumed when a parsed
	// timestamp carries no explicit offset or name.
	TZDefault string

	fold cases.Caser
}

// New constructs a locale from explicit tables. Callers that only need
// English should use Default instead.
func New(month, monthAbbrev [12]string, ampm [2]string, decimalMark byte, tzDefault string) *Info {
	return &Info{
		Month:       month,
		MonthAbbrev: monthAbbrev,
		AMPM:        ampm,
		DecimalMark: decimalMark,
		TZDefault:   tzDefault,
		fold:        cases.Fold(),
	}
}

// Default returns the built-in English locale: full and abbreviated
// month names, "AM"/"PM", a '.' decimal mark, and UTC as the default
// time zone.
func Default() *Info {
	return New(
		[12]string{
			"January", "February", "March", "April", "May", "June",
			"July", "August", "September", "October", "November", "December",
		},
		[12]string{
			"Jan", "Feb", "Mar", "Apr", "May", "Jun",
			"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
		},
		[2]string{"AM", "PM"},
		'.',
		"UTC",
	)
}

// MatchLongest finds the entry in names that is a case-insensitive prefix
// of remaining and whose matched byte length is greatest among all such
// entries. Ties are broken by list order. It returns the winning entry's
// index and the number of bytes it consumed.
//
// Matching longest-first, rather than stopping at the first name in list
// order that matches, avoids the classic locale-ordering trap where e.g.
// "May" would swallow the prefix of a longer name that happens to sort
// after it.
func (info *Info) MatchLongest(names []string, remaining []byte) (index int, length int, ok bool) {
	fold := info.fold

	bestIndex := -1
	bestLen := -1
	for i, name := range names {
		if name == "" || len(name) > len(remaining) {
			continue
		}
		candidate := remaining[:len(name)]
		if fold.String(string(candidate)) != fold.String(name) {
			continue
		}
		if len(name) > bestLen {
			bestLen = len(name)
			bestIndex = i
		}
	}
	if bestIndex == -1 {
		return 0, 0, false
	}
	return bestIndex, bestLen, true
}
