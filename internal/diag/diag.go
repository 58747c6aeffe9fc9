// Package diag defines the sentinel errors the driver returns for the
// fatal half of the error taxonomy: spec errors and I/O errors. Data
// and structural problems never surface here — they go to the
// warnings buffer instead.
package diag

import "errors"

var (
	// ErrColumnCountMismatch is returned when the caller's column
	// names don't reconcile with either the collector count or the
	// output (post-skip) column count. ReadTokens and GuessTypes also
	// wrap an invalid Dialect or Options in it.
	ErrColumnCountMismatch = errors.New("tabular: column name count does not match column spec")
	// ErrBadFormatDirective is returned by ReadTokens when a ColumnSpec
	// names an unknown column type. A date/time format string is not
	// checked up front: an unsupported or trailing '%' directive is
	// recorded by the collector as a warning on each field it meets and
	// that field is stored as NA; no error is returned for it.
	ErrBadFormatDirective = errors.New("tabular: invalid date/time format directive")
	// ErrSource is returned when the configured Source could not be
	// prepared for tokenization (e.g. an unterminated quote in the
	// skipped header prelude), and when ctx is cancelled during a read.
	ErrSource = errors.New("tabular: source error")
)
