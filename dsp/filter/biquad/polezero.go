package biquad

import "math/cmplx"

// Poles returns the z-plane roots of 1 + A1*z^-1 + A2*z^-2.
func (c *Coefficients) Poles() [2]complex128 {
	return monicRoots(c.A1, c.A2)
}

// Stable reports whether both poles lie strictly inside the unit circle.
func (c *Coefficients) Stable() bool {
	for _, p := range c.Poles() {
		if cmplx.Abs(p) >= 1 {
			return false
		}
	}
	return true
}

// FromPoles builds the monic denominator whose roots are p and q.
// For a conjugate pair the result is real; the imaginary residue of
// p+q and p*q is discarded.
func FromPoles(p, q complex128) (a1, a2 float64) {
	return -real(p + q), real(p * q)
}

// monicRoots returns the roots of z^2 + a1*z + a2.
func monicRoots(a1, a2 float64) [2]complex128 {
	sqrtDisc := cmplx.Sqrt(complex(a1*a1-4*a2, 0))
	return [2]complex128{
		(-complex(a1, 0) + sqrtDisc) / 2,
		(-complex(a1, 0) - sqrtDisc) / 2,
	}
}
