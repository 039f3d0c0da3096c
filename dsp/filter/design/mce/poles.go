package mce

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-mce/dsp/filter/biquad"
)

// numPoles is the prototype order; two biquad sections.
const numPoles = 4

// conjugateTol bounds |p - conj(q)| for two poles to count as a pair.
const conjugateTol = 1e-9

// PolePair is a complex-conjugate pair of z-plane poles.
type PolePair [2]complex128

// A1 returns the first denominator coefficient -(p + p*).
func (pp PolePair) A1() float64 {
	a1, _ := biquad.FromPoles(pp[0], pp[1])
	return a1
}

// A2 returns the second denominator coefficient p * p*.
func (pp PolePair) A2() float64 {
	_, a2 := biquad.FromPoles(pp[0], pp[1])
	return a2
}

// DCGain returns the DC gain of a section with this denominator and a
// (1 + z^-1)^2 numerator: 4 / (1 + a1 + a2).
func (pp PolePair) DCGain() float64 {
	a1, a2 := biquad.FromPoles(pp[0], pp[1])
	return 4 / (1 + a1 + a2)
}

// Radius returns the pole magnitude.
func (pp PolePair) Radius() float64 {
	return cmplx.Abs(pp[0])
}

// Angle returns the absolute pole angle in radians.
func (pp PolePair) Angle() float64 {
	return math.Abs(cmplx.Phase(pp[0]))
}

// DesignPoles returns the z-plane poles of a 4th-order Butterworth low-pass
// with normalized cutoff wn (fraction of Nyquist, 0 < wn < 1).
//
// The analog prototype is pre-warped to wc = 2*tan(pi*wn/2) and mapped with
// z = (2+s)/(2-s). near is the conjugate pair closer to the unit circle (the
// high-Q pair), far the other one. Below wn = 0.5 near is also the pair with
// the larger |arg z|; at 0.5 all four angles coincide and above it the
// angle order flips, so pairs are classified by radius.
//
// Above wn = 0.5 this differs from ordering the poles by |arg z|, which
// would swap the two pairs and place the headroom on the low-Q section.
// For wn = 0.512 the near-first parameters are [893, 7320, 642, 654, -9, 1]
// where angle ordering gives [642, 654, 893, 7320, -9, 1].
func DesignPoles(wn float64) (far, near PolePair, err error) {
	if err := validateWn(wn); err != nil {
		return PolePair{}, PolePair{}, err
	}

	wc := 2 * math.Tan(math.Pi*wn/2)

	var z [numPoles]complex128
	for k := range z {
		theta := math.Pi * float64(2*k+numPoles+1) / (2 * numPoles)
		s := cmplx.Rect(wc, theta)
		z[k] = (2 + s) / (2 - s)
	}

	// Prototype poles k and numPoles-1-k are mirror images across the real
	// axis.
	near = PolePair{z[0], z[3]}
	far = PolePair{z[1], z[2]}
	if far.Radius() > near.Radius() {
		far, near = near, far
	}
	mustConjugate(far)
	mustConjugate(near)

	return far, near, nil
}

func mustConjugate(pp PolePair) {
	tol := conjugateTol * math.Max(1, cmplx.Abs(pp[0]))
	if cmplx.Abs(pp[0]-cmplx.Conj(pp[1])) > tol {
		panic(fmt.Sprintf("mce: poles %v and %v are not a conjugate pair", pp[0], pp[1]))
	}
}
