package mce

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-mce/dsp/filter/biquad"
)

// Params are the six integers loaded into the MCE filter registers.
//
// B11..B22 are magnitudes in 1.14 fixed point; the firmware applies the
// signs, realizing per section
//
//	1 / (1 - b1*z^-1 + b2*z^-2)
//
// K1 and K2 are truncation exponents; the cascade output is divided by
// 2^(K1+K2).
type Params struct {
	B11, B12 int
	B21, B22 int
	K1, K2   int
}

// Array returns the parameters in register order.
func (p Params) Array() [6]int {
	return [6]int{p.B11, p.B12, p.B21, p.B22, p.K1, p.K2}
}

// String formats the parameters as "[b11, b12, b21, b22, k1, k2]".
func (p Params) String() string {
	return fmt.Sprintf("[%d, %d, %d, %d, %d, %d]", p.B11, p.B12, p.B21, p.B22, p.K1, p.K2)
}

// Shift returns K1+K2, the total output shift.
func (p Params) Shift() int {
	return p.K1 + p.K2
}

// Sections returns the dequantized biquads, each with a (1 + z^-1)^2
// numerator.
func (p Params) Sections() []biquad.Coefficients {
	return []biquad.Coefficients{
		dequantize(p.B11, p.B12),
		dequantize(p.B21, p.B22),
	}
}

func dequantize(b1, b2 int) biquad.Coefficients {
	return biquad.Coefficients{
		B0: 1, B1: 2, B2: 1,
		A1: -float64(b1) / CoeffScale,
		A2: float64(b2) / CoeffScale,
	}
}

// Chain returns the dequantized cascade including the output shift.
func (p Params) Chain() *biquad.Chain {
	return biquad.NewChain(p.Sections(), biquad.WithGain(math.Ldexp(1, -p.Shift())))
}

// Response evaluates the quantized filter at w radians per sample:
//
//	H = (1+z)^4 / (1 - b11'z + b12'z^2) / (1 - b21'z + b22'z^2) / 2^(k1+k2)
//
// with z = e^-jw and b' = b/2^14.
func (p Params) Response(w float64) complex128 {
	return p.Chain().Response(w)
}

// DCGain returns H(0) in closed form.
func (p Params) DCGain() float64 {
	d1 := 1 - float64(p.B11)/CoeffScale + float64(p.B12)/CoeffScale
	d2 := 1 - float64(p.B21)/CoeffScale + float64(p.B22)/CoeffScale
	return math.Ldexp(16/d1/d2, -p.Shift())
}

// NormalizedGain returns |H(w)| / |H(0)|.
func (p Params) NormalizedGain(w float64) float64 {
	return cmplx.Abs(p.Response(w)) / math.Abs(p.DCGain())
}

// Stable reports whether both quantized sections keep their poles strictly
// inside the unit circle.
func (p Params) Stable() bool {
	return p.Chain().Stable()
}
