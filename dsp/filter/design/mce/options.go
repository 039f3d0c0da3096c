package mce

import "math"

// config holds the settings of one Design call.
type config struct {
	search     bool
	convention Convention
	gridSize   int
	peakLimit  float64
}

// Option configures Design.
type Option func(*config)

func defaultConfig() config {
	return config{
		search:     true,
		convention: ConventionWiki,
		gridSize:   defaultGridSize,
		peakLimit:  defaultPeakLimit,
	}
}

func applyOptions(opts ...Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithSearch enables or disables the search for a non-peaking cutoff.
// With the search disabled Design returns the unchecked design at the
// requested cutoff. Enabled by default.
func WithSearch(enabled bool) Option {
	return func(cfg *config) { cfg.search = enabled }
}

// WithConvention selects the rounding and section order. Default is
// ConventionWiki.
func WithConvention(c Convention) Option {
	return func(cfg *config) { cfg.convention = c }
}

// WithGridSize sets the number of grid intervals between DC and Nyquist
// used by the peaking check. Values below 2 are ignored.
func WithGridSize(n int) Option {
	return func(cfg *config) {
		if n >= 2 {
			cfg.gridSize = n
		}
	}
}

// WithPeakLimit sets the largest normalized gain the search accepts.
// Default is 1. Non-positive or non-finite values are ignored.
func WithPeakLimit(limit float64) Option {
	return func(cfg *config) {
		if limit > 0 && !math.IsInf(limit, 0) {
			cfg.peakLimit = limit
		}
	}
}
