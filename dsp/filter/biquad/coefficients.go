package biquad

import "math/cmplx"

// Coefficients holds the transfer function of one second-order section.
// a0 is normalized to 1 and not stored:
//
//	       B0 + B1*z^-1 + B2*z^-2
//	H(z) = ----------------------
//	        1 + A1*z^-1 + A2*z^-2
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// Numerator returns the feedforward polynomial in ascending powers of z^-1.
func (c *Coefficients) Numerator() [3]float64 {
	return [3]float64{c.B0, c.B1, c.B2}
}

// Denominator returns the feedback polynomial in ascending powers of z^-1,
// including the implicit leading 1.
func (c *Coefficients) Denominator() [3]float64 {
	return [3]float64{1, c.A1, c.A2}
}

// Response evaluates H(e^jw) at the normalized angular frequency w in
// radians per sample (0 = DC, pi = Nyquist).
func (c *Coefficients) Response(w float64) complex128 {
	z := cmplx.Exp(complex(0, -w))
	z2 := z * z

	num := complex(c.B0, 0) + complex(c.B1, 0)*z + complex(c.B2, 0)*z2
	den := 1 + complex(c.A1, 0)*z + complex(c.A2, 0)*z2
	return num / den
}

// DCGain returns H(1), the section gain at zero frequency.
// It is +Inf for a section with a pole at z = 1.
func (c *Coefficients) DCGain() float64 {
	return (c.B0 + c.B1 + c.B2) / (1 + c.A1 + c.A2)
}
