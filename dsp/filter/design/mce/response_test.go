package mce

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-mce/internal/testutil"
)

var responseCases = []Params{
	{30397, 14437, 28041, 12047, -3, 7},
	{28040, 12046, 30397, 14436, 7, -3},
	{27869, 12919, 24243, 9107, -5, 5},
	{31688, 15407, 30405, 14120, -1, 9},
	{7424, 7640, 5390, 1058, -9, 2},
}

func TestParams_DCRoundTrip(t *testing.T) {
	for _, p := range responseCases {
		h := p.Response(0)
		if got := cmplx.Abs(h) / p.DCGain(); math.Abs(got-1) > 1e-9 {
			t.Errorf("%v: |H(0)|/DCGain=%.15f, want 1", p, got)
		}
		if got := p.NormalizedGain(0); math.Abs(got-1) > 1e-9 {
			t.Errorf("%v: NormalizedGain(0)=%.15f, want 1", p, got)
		}
	}
}

func TestParams_ResponseMatchesClosedForm(t *testing.T) {
	for _, p := range responseCases {
		if n := p.Chain().NumSections(); n != 2 {
			t.Fatalf("chain has %d sections, want 2", n)
		}
		b11, b12 := float64(p.B11)/CoeffScale, float64(p.B12)/CoeffScale
		b21, b22 := float64(p.B21)/CoeffScale, float64(p.B22)/CoeffScale
		for _, w := range []float64{0, 0.01, 0.1, 0.5, 2, 3.1} {
			z := cmplx.Exp(complex(0, -w))
			num := (1 + z) * (1 + z) * (1 + z) * (1 + z)
			d1 := 1 - complex(b11, 0)*z + complex(b12, 0)*z*z
			d2 := 1 - complex(b21, 0)*z + complex(b22, 0)*z*z
			want := num / d1 / d2 * complex(math.Ldexp(1, -p.Shift()), 0)

			got := p.Response(w)
			if cmplx.Abs(got-want) > 1e-9*math.Max(1, cmplx.Abs(want)) {
				t.Errorf("%v w=%v: Response=%v, closed form=%v", p, w, got, want)
			}
		}
		if !testutil.NearlyEqual(p.Chain().DCGain(), p.DCGain(), 1e-12) {
			t.Errorf("%v: chain DC %v, params DC %v", p, p.Chain().DCGain(), p.DCGain())
		}
	}
}

func TestParams_SectionsCarrySigns(t *testing.T) {
	p := Params{B11: 16384, B12: 8192, B21: 8192, B22: 4096}
	s := p.Sections()
	if s[0].A1 != -1 || s[0].A2 != 0.5 || s[1].A1 != -0.5 || s[1].A2 != 0.25 {
		t.Fatalf("unexpected sections %+v", s)
	}
	if s[0].B0 != 1 || s[0].B1 != 2 || s[0].B2 != 1 {
		t.Fatalf("unexpected numerator %+v", s[0])
	}
}

func TestParams_StringAndArray(t *testing.T) {
	p := Params{30397, 14437, 28041, 12047, -3, 7}
	if s := p.String(); s != "[30397, 14437, 28041, 12047, -3, 7]" {
		t.Fatalf("String()=%q", s)
	}
	if a := p.Array(); a != [6]int{30397, 14437, 28041, 12047, -3, 7} {
		t.Fatalf("Array()=%v", a)
	}
	if p.Shift() != 4 {
		t.Fatalf("Shift()=%d, want 4", p.Shift())
	}
}

func TestEvaluator_FFTMatchesDirect(t *testing.T) {
	fft := NewEvaluator(2048)
	direct := NewEvaluator(2048)
	direct.plan = nil

	for _, p := range responseCases {
		got := fft.MagnitudeGrid(p)
		want := direct.MagnitudeGrid(p)
		testutil.RequireFinite(t, got)
		testutil.RequireSliceNearlyEqual(t, got, want, 1e-9)
	}
}

func TestEvaluator_NonPowerOfTwoGrid(t *testing.T) {
	for _, n := range []int{100, 500, 1000, 2000} {
		e := NewEvaluator(n)
		direct := NewEvaluator(n)
		direct.plan = nil

		for _, p := range responseCases {
			grid := e.MagnitudeGrid(p)
			if len(grid) != n-1 {
				t.Fatalf("n=%d: grid length %d, want %d", n, len(grid), n-1)
			}
			testutil.RequireFinite(t, grid)
			testutil.RequireSliceNearlyEqual(t, grid, direct.MagnitudeGrid(p), 1e-9)

			w := e.Frequencies()
			for _, k := range []int{0, n / 20, n / 2, n - 2} {
				if want := p.NormalizedGain(w[k]); !testutil.NearlyEqual(grid[k], want, 1e-9) {
					t.Errorf("n=%d k=%d: grid %v, direct %v", n, k, grid[k], want)
				}
			}
			if got, want := e.PeakGain(p), direct.PeakGain(p); !testutil.NearlyEqual(got, want, 1e-9) {
				t.Errorf("n=%d %v: PeakGain %v, direct %v", n, p, got, want)
			}
		}
	}
}

func TestEvaluator_SmallestGrid(t *testing.T) {
	for _, n := range []int{2, 3} {
		e := NewEvaluator(n)
		if e.GridSize() != n {
			t.Fatalf("GridSize=%d, want %d", e.GridSize(), n)
		}
		p := responseCases[0]
		grid := e.MagnitudeGrid(p)
		if len(grid) != n-1 {
			t.Fatalf("n=%d: grid length %d", n, len(grid))
		}
		w := e.Frequencies()
		for k := range grid {
			if want := p.NormalizedGain(w[k]); !testutil.NearlyEqual(grid[k], want, 1e-9) {
				t.Errorf("n=%d k=%d: grid %v, direct %v", n, k, grid[k], want)
			}
		}
	}
}

func TestEvaluator_PeakingDesignRejectedOnAnyGrid(t *testing.T) {
	// [32737, 16354, 32694, 16311, 9, 19] is stable but peaks at ~7.4.
	p := Params{32737, 16354, 32694, 16311, 9, 19}
	for _, n := range []int{2000, 2048} {
		if peak := NewEvaluator(n).PeakGain(p); !(peak > 7) {
			t.Errorf("n=%d: PeakGain=%v, want > 7", n, peak)
		}
	}
}

func TestEvaluator_PeakIsGridMaximum(t *testing.T) {
	e := NewEvaluator(0)
	if e.GridSize() != defaultGridSize {
		t.Fatalf("GridSize=%d, want default %d", e.GridSize(), defaultGridSize)
	}
	for _, p := range responseCases {
		grid := e.MagnitudeGrid(p)
		peak := 0.0
		for _, v := range grid {
			peak = math.Max(peak, v)
		}
		if got := e.PeakGain(p); got != peak {
			t.Errorf("%v: PeakGain=%v, grid max=%v", p, got, peak)
		}
	}
}

func TestEvaluator_LowpassShape(t *testing.T) {
	e := NewEvaluator(2048)
	grid := e.MagnitudeGrid(responseCases[0])

	if math.Abs(grid[0]-1) > 1e-6 {
		t.Fatalf("first grid point %v, want ~1", grid[0])
	}
	if last := grid[len(grid)-1]; last > 1e-6 {
		t.Fatalf("last grid point %v, want ~0 near Nyquist", last)
	}
}

func TestEvaluator_PeakingParams(t *testing.T) {
	// Wn = 0.0256 for nrow=64, rowlen=100 peaks after quantization.
	e := NewEvaluator(2048)
	if peak := e.PeakGain(Params{31688, 15407, 30405, 14120, -1, 9}); peak <= 1.0005 {
		t.Fatalf("peak %v, want > 1.0005", peak)
	}
	if peak := e.PeakGain(Params{31689, 15408, 30408, 14122, -1, 9}); peak > 1 {
		t.Fatalf("peak %v, want <= 1", peak)
	}
}

func TestEvaluator_PoleAtDCIsInfinitePeak(t *testing.T) {
	p := Params{32750, 16366, 32724, 16340, 10, 20}
	e := NewEvaluator(256)
	if peak := e.PeakGain(p); !math.IsInf(peak, 1) {
		t.Fatalf("PeakGain=%v, want +Inf", peak)
	}
	for i, v := range e.MagnitudeGrid(p) {
		if !math.IsInf(v, 1) {
			t.Fatalf("grid[%d]=%v, want +Inf", i, v)
		}
	}
}

func TestEvaluator_Frequencies(t *testing.T) {
	e := NewEvaluator(4)
	want := []float64{math.Pi / 4, math.Pi / 2, 3 * math.Pi / 4}
	testutil.RequireSliceNearlyEqual(t, e.Frequencies(), want, 1e-15)
}
