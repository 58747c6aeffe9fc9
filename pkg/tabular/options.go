package tabular

import (
	"github.com/google/uuid"
	"github.com/shapestone/shape-tabular/internal/locale"
	"github.com/shapestone/shape-tabular/internal/warnings"
)

// Column type names accepted by ColumnSpec.Type. guess.Column never
// returns Factor or Skip: a caller chooses a factor column or opts a
// column out of the output explicitly, neither is inferred.
const (
	TypeLogical   = "logical"
	TypeInteger   = "integer"
	TypeDouble    = "double"
	TypeDate      = "date"
	TypeDateTime  = "datetime"
	TypeTime      = "time"
	TypeCharacter = "character"
	TypeFactor    = "factor"
	TypeSkip      = "skip"
)

// ColumnSpec pins down how one column's collector is built. Format is
// consulted by Date, DateTime and Time; Levels is consulted by Factor
// (a nil Levels discovers levels from the data in first-seen order).
// Locale overrides the read-wide Options.Locale for this column alone;
// a nil Locale falls back to Options.Locale.
type ColumnSpec struct {
	Type   string
	Format string
	Levels []string
	Locale *locale.Info
}

// Options configures a ReadTokens call beyond the dialect itself.
type Options struct {
	// NMax caps the number of data rows read; zero means unlimited.
	NMax int
	// Locale supplies the month/AM-PM name tables and decimal mark
	// used by every column whose ColumnSpec.Locale is nil. A nil
	// Options.Locale falls back to locale.Default().
	Locale *locale.Info
	// Progress, if non-nil, is invoked periodically with bytes
	// consumed against total, at the same cadence the driver polls
	// for cancellation.
	Progress func(consumed, total int64)
}

// DefaultOptions returns an Options with no row cap, the default
// locale, and no progress callback.
func DefaultOptions() Options {
	return Options{Locale: locale.Default()}
}

// Validate reports a descriptive error for an Options the driver
// cannot act on.
func (o Options) Validate() error {
	if o.NMax < 0 {
		return &OptionsError{Field: "NMax", Message: "must be non-negative"}
	}
	return nil
}

func (o Options) locale() *locale.Info {
	if o.Locale != nil {
		return o.Locale
	}
	return locale.Default()
}

// OptionsError reports an invalid Options field.
type OptionsError struct {
	Field   string
	Message string
}

func (e *OptionsError) Error() string {
	return "tabular: invalid " + e.Field + ": " + e.Message
}

// Result bundles the output of a ReadTokens call.
type Result struct {
	// SessionID correlates this call's warnings with logs elsewhere
	// in a larger system; it is generated fresh on every call.
	SessionID uuid.UUID
	// ColumnNames holds the reconciled output column names, one per
	// entry in Columns, in order.
	ColumnNames []string
	// Columns holds one entry per non-skipped ColumnSpec, each the
	// concrete *Column struct type from internal/collector matching
	// that spec's Type (e.g. collector.IntegerColumn for "integer").
	Columns []any
	// Rows is the number of data rows read.
	Rows int
	// Warnings is every non-fatal parse diagnostic recorded during
	// the read, drained from the internal warnings.Buffer.
	Warnings []warnings.Warning
}
