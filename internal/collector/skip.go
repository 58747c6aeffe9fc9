package collector

import "github.com/shapestone/shape-tabular/internal/token"

// Skip discards every value it is given. It is used for columns the
// caller has asked to omit from the final output, so the driver still
// has somewhere to route tokens without special-casing skipped columns
// in the hot loop.
type Skip struct {
	base
}

// NewSkip returns a Skip collector.
func NewSkip() *Skip {
	return &Skip{base: base{skip: true}}
}

func (c *Skip) Resize(int) {}

func (c *Skip) SetValue(int, token.Token) {}

func (c *Skip) Finalize() any { return nil }
