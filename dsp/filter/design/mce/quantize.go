package mce

import (
	"fmt"
	"math"
	"strings"
)

// Rounding selects how fractional coefficients become integers.
type Rounding int

const (
	// RoundNearest rounds to the nearest integer, ties to even.
	RoundNearest Rounding = iota
	// RoundTruncate drops the fractional part.
	RoundTruncate
)

func (r Rounding) String() string {
	switch r {
	case RoundNearest:
		return "nearest"
	case RoundTruncate:
		return "truncate"
	default:
		return fmt.Sprintf("Rounding(%d)", int(r))
	}
}

func (r Rounding) apply(x float64) int {
	if r == RoundTruncate {
		return int(math.Trunc(x))
	}
	return int(math.RoundToEven(x))
}

// SectionOrder selects which pole pair the firmware sees as section 1.
type SectionOrder int

const (
	// NearFirst puts the pair nearer the unit circle in section 1.
	NearFirst SectionOrder = iota
	// FarFirst puts the pair farther from the unit circle in section 1.
	FarFirst
)

func (o SectionOrder) String() string {
	switch o {
	case NearFirst:
		return "near-first"
	case FarFirst:
		return "far-first"
	default:
		return fmt.Sprintf("SectionOrder(%d)", int(o))
	}
}

// Convention fixes the two choices on which the historical coefficient
// scripts disagree. The output headroom offset always travels with the near
// pair, so k1+k2 is the same under either order.
type Convention struct {
	Rounding Rounding
	Order    SectionOrder
}

var (
	// ConventionWiki rounds to nearest and puts the near pair first.
	// It is the default.
	ConventionWiki = Convention{Rounding: RoundNearest, Order: NearFirst}

	// ConventionLegacy truncates and puts the far pair first.
	ConventionLegacy = Convention{Rounding: RoundTruncate, Order: FarFirst}
)

func (c Convention) String() string {
	switch c {
	case ConventionWiki:
		return "wiki"
	case ConventionLegacy:
		return "legacy"
	default:
		return c.Rounding.String() + "/" + c.Order.String()
	}
}

// ParseConvention returns the convention named "wiki" or "legacy".
func ParseConvention(name string) (Convention, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "wiki", "":
		return ConventionWiki, nil
	case "legacy":
		return ConventionLegacy, nil
	default:
		return Convention{}, fmt.Errorf("%w: unknown convention %q", ErrInvalidArgument, name)
	}
}

// section is one quantized biquad before it is placed in Params.
type section struct {
	b1, b2 int
	k      int
}

func quantizeSection(pp PolePair, r Rounding, headroom int) section {
	a1, a2 := pp.A1(), pp.A2()
	return section{
		b1: r.apply(math.Abs(a1) * CoeffScale),
		b2: r.apply(a2 * CoeffScale),
		k:  int(math.Floor(math.Log2(pp.DCGain()))) - headroom,
	}
}

// Quantize converts the two pole pairs returned by [DesignPoles] into
// firmware parameters under the given convention.
func Quantize(far, near PolePair, conv Convention) Params {
	n := quantizeSection(near, conv.Rounding, OutputHeadroomBits)
	f := quantizeSection(far, conv.Rounding, 0)

	first, second := n, f
	if conv.Order == FarFirst {
		first, second = f, n
	}

	return Params{
		B11: first.b1,
		B12: first.b2,
		B21: second.b1,
		B22: second.b2,
		K1:  first.k,
		K2:  second.k,
	}
}

// ParamsForWn designs and quantizes the filter at normalized cutoff wn
// without any peaking check.
func ParamsForWn(wn float64, conv Convention) (Params, error) {
	far, near, err := DesignPoles(wn)
	if err != nil {
		return Params{}, err
	}
	return Quantize(far, near, conv), nil
}
