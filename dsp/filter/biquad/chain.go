package biquad

import (
	"math"
	"math/cmplx"
)

// Chain is an ordered cascade of sections with an overall gain. It is used
// to describe higher-order filters (Butterworth and friends) as the product
// of second-order factors.
type Chain struct {
	sections []Coefficients
	gain     float64
}

// chainConfig holds options for NewChain.
type chainConfig struct {
	gain float64
}

// ChainOption configures a Chain.
type ChainOption func(*chainConfig)

// WithGain sets the overall gain multiplying the cascade. Default is 1.
func WithGain(g float64) ChainOption {
	return func(cfg *chainConfig) { cfg.gain = g }
}

// NewChain creates a cascade from one or more coefficient sets.
// The slice is copied.
func NewChain(coeffs []Coefficients, opts ...ChainOption) *Chain {
	cfg := chainConfig{gain: 1}
	for _, o := range opts {
		o(&cfg)
	}

	return &Chain{
		sections: append([]Coefficients(nil), coeffs...),
		gain:     cfg.gain,
	}
}

// NumSections returns the number of sections.
func (c *Chain) NumSections() int {
	return len(c.sections)
}

// Gain returns the overall gain.
func (c *Chain) Gain() float64 { return c.gain }

// Section returns a copy of the i-th section.
func (c *Chain) Section(i int) Coefficients {
	return c.sections[i]
}

// Response evaluates the cascade at w radians per sample.
func (c *Chain) Response(w float64) complex128 {
	h := complex(c.gain, 0)
	for i := range c.sections {
		h *= c.sections[i].Response(w)
	}
	return h
}

// MagnitudeDB returns 20*log10|H| at w radians per sample.
func (c *Chain) MagnitudeDB(w float64) float64 {
	return 20 * math.Log10(cmplx.Abs(c.Response(w)))
}

// DCGain returns the product of the section DC gains times the overall gain.
func (c *Chain) DCGain() float64 {
	g := c.gain
	for i := range c.sections {
		g *= c.sections[i].DCGain()
	}
	return g
}

// Stable reports whether every section is stable.
func (c *Chain) Stable() bool {
	for i := range c.sections {
		if !c.sections[i].Stable() {
			return false
		}
	}
	return true
}
