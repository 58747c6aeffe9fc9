// Package tabular is the public entry point: it wires a byte-range
// Source through the tokenizer and collector pipeline and exposes the
// four read operations a host embeds — ReadFile, ReadLines, ReadTokens,
// and GuessTypes.
package tabular

import (
	"fmt"

	"github.com/shapestone/shape-tabular/internal/tokenizer"
)

// Dialect mirrors internal/tokenizer.Dialect at the public boundary, so
// callers configuring a read never need to import an internal package.
type Dialect struct {
	Delim           byte
	Quote           byte
	EscapeBackslash bool
	EscapeDouble    bool
	NA              []string
	Comment         string
	TrimWS          bool
	Skip            int
	SkipEmptyRows   bool
	QuotedNA        bool
}

// DefaultDialect returns the comma-delimited, double-quote-escaped
// dialect most input follows.
func DefaultDialect() Dialect {
	d := tokenizer.DefaultDialect()
	return Dialect{
		Delim:        d.Delim,
		Quote:        d.Quote,
		EscapeDouble: d.EscapeDouble,
		NA:           d.NA,
	}
}

// Validate reports a descriptive error for a Dialect that the
// tokenizer cannot act on, per the "spec errors are fatal" half of the
// error taxonomy.
func (d Dialect) Validate() error {
	if d.Delim == 0 {
		return fmt.Errorf("tabular: Dialect.Delim must be set")
	}
	if d.Quote == 0 {
		return fmt.Errorf("tabular: Dialect.Quote must be set")
	}
	if d.Delim == d.Quote {
		return fmt.Errorf("tabular: Dialect.Delim and Dialect.Quote must differ")
	}
	if d.Skip < 0 {
		return fmt.Errorf("tabular: Dialect.Skip must be non-negative")
	}
	return nil
}

func (d Dialect) toTokenizer() tokenizer.Dialect {
	return tokenizer.Dialect{
		Delim:           d.Delim,
		Quote:           d.Quote,
		EscapeBackslash: d.EscapeBackslash,
		EscapeDouble:    d.EscapeDouble,
		NA:              d.NA,
		Comment:         d.Comment,
		TrimWS:          d.TrimWS,
		Skip:            d.Skip,
		SkipEmptyRows:   d.SkipEmptyRows,
		QuotedNA:        d.QuotedNA,
	}
}
