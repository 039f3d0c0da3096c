package mce

// Hardware constants of the MCE readout filter. These are fixed by the
// firmware and are not configuration.
const (
	// ClockHz is the MCE master clock from which the row rate is divided.
	ClockHz = 50e6

	// CoeffFracBits is the number of fractional bits of the 1.14
	// coefficient format.
	CoeffFracBits = 14

	// CoeffScale converts a fractional coefficient to its stored integer.
	CoeffScale = 1 << CoeffFracBits

	// OutputHeadroomBits is subtracted from the truncation exponent of the
	// section carrying the near pole pair.
	OutputHeadroomBits = 10
)

const (
	// searchStepFraction is the search step relative to the requested Wn.
	searchStepFraction = 0.001

	// searchFloorFraction bounds the search from below relative to the
	// requested Wn.
	searchFloorFraction = 0.5

	// defaultPeakLimit is the largest normalized gain accepted as "no
	// peaking".
	defaultPeakLimit = 1.0

	// defaultGridSize is the number of grid intervals between DC and
	// Nyquist used by the peaking check.
	defaultGridSize = 2048
)
