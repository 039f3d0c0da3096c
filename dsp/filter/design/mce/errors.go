package mce

import (
	"errors"
	"fmt"
)

var (
	// ErrCutoffOutOfRange is returned when the requested cutoff is at or
	// above the Nyquist frequency of the scan rate.
	ErrCutoffOutOfRange = errors.New("mce: cutoff at or above Nyquist")

	// ErrInvalidArgument is returned for non-positive geometry or cutoff.
	ErrInvalidArgument = errors.New("mce: invalid argument")

	// ErrInvalidWn is returned when a normalized cutoff is outside (0, 1).
	ErrInvalidWn = errors.New("mce: normalized cutoff must be in (0, 1)")
)

// CutoffOutOfRangeError carries the values that put a request out of range.
// It matches [ErrCutoffOutOfRange] under errors.Is.
type CutoffOutOfRangeError struct {
	Cutoff     float64 // requested cutoff in Hz
	SampleRate float64 // scan-derived sample rate in Hz
	Wn         float64 // 2*Cutoff/SampleRate, >= 1
}

func (e *CutoffOutOfRangeError) Error() string {
	return fmt.Sprintf("mce: f_cutoff=%g Hz gives Wn=%g >= 1 (f_samp=%g Hz, cutoff at or above Nyquist)",
		e.Cutoff, e.Wn, e.SampleRate)
}

// Unwrap returns ErrCutoffOutOfRange.
func (e *CutoffOutOfRangeError) Unwrap() error {
	return ErrCutoffOutOfRange
}

func validateWn(wn float64) error {
	if !(wn > 0 && wn < 1) {
		return fmt.Errorf("%w: %g", ErrInvalidWn, wn)
	}
	return nil
}
