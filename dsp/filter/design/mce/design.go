package mce

import (
	"fmt"
	"math"
)

// Result is the outcome of Design.
//
// A searched candidate is accepted only if its Peak is at or below PeakLimit
// and its quantized poles lie strictly inside the unit circle (Stable).
// Exhausted results carry the unchecked design and may be neither.
type Result struct {
	Params Params

	SampleRate      float64 // Hz, ClockHz / (nrow * rowlen)
	RequestedCutoff float64 // Hz, as passed to Design
	Cutoff          float64 // Hz, cutoff the parameters were designed for
	Wn              float64 // 2 * Cutoff / SampleRate

	Convention Convention
	PeakLimit  float64
	Peak       float64 // max |H(w)| / |H(0)| of Params
	Peaking    bool    // Peak > PeakLimit
	Stable     bool    // quantized poles strictly inside the unit circle

	Searched   bool // the search accepted a stable, non-peaking candidate
	Exhausted  bool // the search ran out of candidates and fell back
	Candidates int  // number of candidates evaluated
}

// SampleRate returns the filter sample rate for the given scan geometry.
func SampleRate(nrow, rowlen int) float64 {
	return ClockHz / float64(nrow) / float64(rowlen)
}

// Design computes filter parameters for the scan geometry (nrow, rowlen)
// and the maximum cutoff in Hz.
//
// With the search enabled (default) the normalized cutoff starts at
// Wn = 2*cutoff/f_samp and steps down by 0.1% of that value, never below
// half of it. The first candidate that is stable after quantization and
// whose response stays at or below the peak limit is returned. Peaking is
// not monotonic in Wn once the coefficients are quantized, so the scan is
// linear.
//
// If no candidate qualifies, the unchecked design at the requested cutoff is
// returned with Exhausted and Peaking set; this is not an error.
//
// A cutoff at or above Nyquist yields a *CutoffOutOfRangeError.
func Design(nrow, rowlen int, cutoff float64, opts ...Option) (Result, error) {
	cfg := applyOptions(opts...)

	if nrow <= 0 || rowlen <= 0 {
		return Result{}, fmt.Errorf("%w: nrow=%d rowlen=%d must be > 0", ErrInvalidArgument, nrow, rowlen)
	}
	if !(cutoff > 0) || math.IsInf(cutoff, 0) {
		return Result{}, fmt.Errorf("%w: f_cutoff=%g must be a positive finite frequency", ErrInvalidArgument, cutoff)
	}

	fs := SampleRate(nrow, rowlen)
	wnMax := 2 * cutoff / fs
	if wnMax >= 1 {
		return Result{}, &CutoffOutOfRangeError{Cutoff: cutoff, SampleRate: fs, Wn: wnMax}
	}

	res := Result{
		SampleRate:      fs,
		RequestedCutoff: cutoff,
		Convention:      cfg.convention,
		PeakLimit:       cfg.peakLimit,
	}
	eval := NewEvaluator(cfg.gridSize)

	if cfg.search {
		step := wnMax * searchStepFraction
		floor := wnMax * searchFloorFraction

		for wn := wnMax; wn >= floor; wn -= step {
			p, err := ParamsForWn(wn, cfg.convention)
			if err != nil {
				return Result{}, err
			}
			res.Candidates++

			peak := eval.PeakGain(p)
			if peak <= cfg.peakLimit && p.Stable() {
				res.accept(p, wn, wnMax, peak)
				res.Searched = true
				return res, nil
			}
		}
		res.Exhausted = true
	}

	p, err := ParamsForWn(wnMax, cfg.convention)
	if err != nil {
		return Result{}, err
	}
	res.accept(p, wnMax, wnMax, eval.PeakGain(p))
	return res, nil
}

func (r *Result) accept(p Params, wn, wnMax, peak float64) {
	r.Params = p
	r.Wn = wn
	r.Cutoff = r.RequestedCutoff
	if wn < wnMax {
		r.Cutoff = math.Min(wn*r.SampleRate/2, r.RequestedCutoff)
	}
	r.Peak = peak
	r.Peaking = peak > r.PeakLimit
	r.Stable = p.Stable()
}
