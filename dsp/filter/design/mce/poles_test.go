package mce

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"
)

func TestDesignPoles_InvalidWn(t *testing.T) {
	for _, wn := range []float64{0, 1, -0.1, 1.2, math.NaN(), math.Inf(1)} {
		if _, _, err := DesignPoles(wn); !errors.Is(err, ErrInvalidWn) {
			t.Errorf("wn=%v: err=%v, want ErrInvalidWn", wn, err)
		}
	}
}

func TestDesignPoles_ConjugatePairsInsideUnitCircle(t *testing.T) {
	for _, wn := range []float64{1e-4, 0.01, 0.0528, 0.2, 0.45, 0.5, 0.7, 0.99} {
		far, near, err := DesignPoles(wn)
		if err != nil {
			t.Fatalf("wn=%v: %v", wn, err)
		}
		for name, pp := range map[string]PolePair{"far": far, "near": near} {
			if d := cmplx.Abs(pp[0] - cmplx.Conj(pp[1])); d > 1e-12 {
				t.Errorf("wn=%v %s: %v and %v not conjugate (|diff|=%g)", wn, name, pp[0], pp[1], d)
			}
			if r := pp.Radius(); r >= 1 {
				t.Errorf("wn=%v %s: radius %v outside unit circle", wn, name, r)
			}
			if imag(pp[0]) == 0 {
				t.Errorf("wn=%v %s: unexpected real pole %v", wn, name, pp[0])
			}
		}
	}
}

func TestDesignPoles_NearPairCloserToUnitCircle(t *testing.T) {
	for _, wn := range []float64{0.001, 0.05, 0.3, 0.5, 0.8} {
		far, near, err := DesignPoles(wn)
		if err != nil {
			t.Fatal(err)
		}
		if near.Radius() <= far.Radius() {
			t.Errorf("wn=%v: near radius %v <= far radius %v", wn, near.Radius(), far.Radius())
		}
	}
}

func TestDesignPoles_NearPairHasLargerAngleBelowHalfNyquist(t *testing.T) {
	for _, wn := range []float64{0.001, 0.0528, 0.25, 0.49} {
		far, near, err := DesignPoles(wn)
		if err != nil {
			t.Fatal(err)
		}
		if near.Angle() <= far.Angle() {
			t.Errorf("wn=%v: near angle %v <= far angle %v", wn, near.Angle(), far.Angle())
		}
	}
}

func TestDesignPoles_AngleOrderFlipsAboveHalfNyquist(t *testing.T) {
	for _, wn := range []float64{0.512, 0.7, 0.9} {
		far, near, err := DesignPoles(wn)
		if err != nil {
			t.Fatal(err)
		}
		if near.Angle() >= far.Angle() {
			t.Errorf("wn=%v: near angle %v >= far angle %v", wn, near.Angle(), far.Angle())
		}
		if near.A2() <= far.A2() {
			t.Errorf("wn=%v: near a2 %v <= far a2 %v", wn, near.A2(), far.A2())
		}
	}
}

func TestDesignPoles_HalfNyquistPairsStayConjugate(t *testing.T) {
	// All four poles sit on the imaginary axis here, so |arg z| cannot tell
	// the pairs apart.
	far, near, err := DesignPoles(0.5)
	if err != nil {
		t.Fatal(err)
	}
	for _, pp := range []PolePair{far, near} {
		if pp.A2() <= 0 {
			t.Fatalf("pair %v: a2=%v, want > 0", pp, pp.A2())
		}
		if math.Abs(pp.A1()) > 1e-12 {
			t.Fatalf("pair %v: a1=%v, want 0", pp, pp.A1())
		}
	}
}

func TestDesignPoles_Minus3dBAtCutoff(t *testing.T) {
	for _, wn := range []float64{0.01, 0.0528, 0.2, 0.45} {
		far, near, err := DesignPoles(wn)
		if err != nil {
			t.Fatal(err)
		}

		h := func(w float64) complex128 {
			z := cmplx.Exp(complex(0, -w))
			num := (1 + z) * (1 + z)
			num *= num
			for _, pp := range []PolePair{far, near} {
				num /= 1 + complex(pp.A1(), 0)*z + complex(pp.A2(), 0)*z*z
			}
			return num
		}

		got := cmplx.Abs(h(math.Pi*wn)) / cmplx.Abs(h(0))
		if math.Abs(got-1/math.Sqrt2) > 1e-9 {
			t.Errorf("wn=%v: |H(wc)|/|H(0)|=%.12f, want %.12f", wn, got, 1/math.Sqrt2)
		}
	}
}

func TestPolePair_DCGainMatchesCoefficients(t *testing.T) {
	_, near, err := DesignPoles(0.1)
	if err != nil {
		t.Fatal(err)
	}
	want := 4 / (1 + near.A1() + near.A2())
	if got := near.DCGain(); got != want {
		t.Fatalf("DCGain=%v, want %v", got, want)
	}
	if near.A1() >= 0 {
		t.Fatalf("a1=%v, want negative for a low-pass pair", near.A1())
	}
}
