// Package collector implements the per-column accumulators that turn a
// token stream into typed output vectors. Each collector owns its output
// column exclusively; the driver transfers that ownership out via
// Finalize once parsing completes.
package collector

import (
	"github.com/shapestone/shape-tabular/internal/token"
	"github.com/shapestone/shape-tabular/internal/warnings"
)

// Collector is the capability every column accumulator implements.
// Resize grows or shrinks the output to length n, preserving existing
// entries up to min(old, n) and initializing any new slots to the type's
// missing sentinel. SetValue parses tok into slot i; a parse failure is
// recorded as a warning and the slot is left (or set) missing. Finalize
// transfers ownership of the output vector to the caller — a collector
// must not be used again afterward. Skip reports whether the driver
// should omit this column from the final output entirely.
type Collector interface {
	Resize(n int)
	SetValue(row int, tok token.Token)
	Finalize() any
	Skip() bool
}

// base holds the fields shared by every concrete collector: where to
// report parse failures, and whether the driver should drop this column.
type base struct {
	warn *warnings.Buffer
	skip bool
}

func (b *base) Skip() bool {
	return b.skip
}
