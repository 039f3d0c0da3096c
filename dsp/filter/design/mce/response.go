package mce

import (
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-mce/dsp/filter/biquad"
)

// planCheckTol bounds the deviation of a plan's output from direct
// evaluation of a test polynomial.
const planCheckTol = 1e-9

// planCheckTaps is the polynomial used to validate an FFT plan.
var planCheckTaps = [3]float64{1, 2, 1}

// Evaluator samples the magnitude response of quantized parameters on the
// grid w_k = pi*k/n, k = 1..n-1. DC and Nyquist are excluded; the response is
// normalized by the DC gain instead.
//
// The grid is computed as a zero-padded FFT of each section's numerator and
// denominator. A plan is only used if it reproduces direct evaluation of a
// test polynomial on every bin; otherwise, and for any candidate whose FFT
// result is not finite, the cascade is evaluated directly.
//
// An Evaluator reuses its buffers and is not safe for concurrent use.
type Evaluator struct {
	n    int
	plan *algofft.Plan[complex128]

	in  []complex128
	num []complex128
	den []complex128
	acc []complex128

	re, im, mag []float64
}

// NewEvaluator returns an evaluator with gridSize intervals between DC and
// Nyquist. Values below 2 select the default of 2048.
func NewEvaluator(gridSize int) *Evaluator {
	if gridSize < 2 {
		gridSize = defaultGridSize
	}

	e := &Evaluator{
		n:   gridSize,
		acc: make([]complex128, gridSize-1),
		re:  make([]float64, gridSize-1),
		im:  make([]float64, gridSize-1),
		mag: make([]float64, gridSize-1),
	}

	plan, err := algofft.NewPlan64(2 * gridSize)
	if err != nil {
		return e
	}

	e.plan = plan
	e.in = make([]complex128, 2*gridSize)
	e.num = make([]complex128, 2*gridSize)
	e.den = make([]complex128, 2*gridSize)
	if !e.planValid() {
		e.plan = nil
	}

	return e
}

// planValid compares the plan against direct evaluation of planCheckTaps
// on all 2n bins.
func (e *Evaluator) planValid() bool {
	if e.spectrum(e.num, planCheckTaps[:]) != nil {
		return false
	}
	for k, got := range e.num {
		z := cmplx.Exp(complex(0, -math.Pi*float64(k)/float64(e.n)))
		want := (1 + z) * (1 + z)
		if !(cmplx.Abs(got-want) <= planCheckTol) {
			return false
		}
	}
	return true
}

// GridSize returns the number of grid intervals between DC and Nyquist.
func (e *Evaluator) GridSize() int { return e.n }

// Frequencies returns the grid points in radians per sample.
func (e *Evaluator) Frequencies() []float64 {
	w := make([]float64, e.n-1)
	for k := range w {
		w[k] = math.Pi * float64(k+1) / float64(e.n)
	}
	return w
}

// PeakGain returns max |H(w)| / |H(0)| over the grid. A value at or below 1
// means the quantized filter does not peak. It is +Inf when quantization
// left a pole on or beyond z = 1, so that the DC gain is not a finite
// positive number, or when any grid sample is NaN.
func (e *Evaluator) PeakGain(p Params) float64 {
	scale, ok := e.evaluate(p)
	if !ok {
		return math.Inf(1)
	}
	return floats.Max(e.mag) * scale
}

// MagnitudeGrid returns |H(w_k)| / |H(0)| for every grid point. All values
// are +Inf when PeakGain would be +Inf.
func (e *Evaluator) MagnitudeGrid(p Params) []float64 {
	out := make([]float64, len(e.mag))
	scale, ok := e.evaluate(p)
	if !ok {
		for i := range out {
			out[i] = math.Inf(1)
		}
		return out
	}
	floats.ScaleTo(out, scale, e.mag)
	return out
}

// evaluate fills e.mag with the cascade magnitude and returns the factor
// that normalizes it to the DC gain.
func (e *Evaluator) evaluate(p Params) (float64, bool) {
	chain := p.Chain()
	dc := chain.DCGain()
	if !(dc > 0) || math.IsInf(dc, 0) {
		return 0, false
	}

	if e.plan == nil || !e.evaluateFFT(chain) {
		e.evaluateDirect(chain)
	}
	for k, h := range e.acc {
		e.re[k] = real(h)
		e.im[k] = imag(h)
	}
	vecmath.Magnitude(e.mag, e.re, e.im)
	if floats.HasNaN(e.mag) {
		return 0, false
	}

	return 1 / dc, true
}

func (e *Evaluator) evaluateFFT(chain *biquad.Chain) bool {
	g := complex(chain.Gain(), 0)
	for k := range e.acc {
		e.acc[k] = g
	}

	for i := range chain.NumSections() {
		s := chain.Section(i)
		num, den := s.Numerator(), s.Denominator()
		if e.spectrum(e.num, num[:]) != nil || e.spectrum(e.den, den[:]) != nil {
			return false
		}
		for k := range e.acc {
			e.acc[k] *= e.num[k+1] / e.den[k+1]
		}
	}

	for _, h := range e.acc {
		if cmplx.IsNaN(h) || cmplx.IsInf(h) {
			return false
		}
	}
	return true
}

func (e *Evaluator) evaluateDirect(chain *biquad.Chain) {
	for k := range e.acc {
		e.acc[k] = chain.Response(math.Pi * float64(k+1) / float64(e.n))
	}
}

// spectrum writes the 2n-point DFT of the zero-padded taps into dst.
func (e *Evaluator) spectrum(dst []complex128, taps []float64) error {
	if len(taps) > len(e.in) {
		return ErrInvalidArgument
	}
	clear(e.in)
	for i, t := range taps {
		e.in[i] = complex(t, 0)
	}
	return e.plan.Forward(dst, e.in)
}
