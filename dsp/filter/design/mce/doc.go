// Package mce designs the 4-pole Butterworth low-pass used by MCE readout
// electronics.
//
// The hardware runs the filter as two cascaded biquads with 1.14 fixed-point
// denominator coefficients and a power-of-two output shift. The sample rate
// follows from the row/column scan geometry:
//
//	f_samp = 50 MHz / (nrow * rowlen)
//
// [Design] turns (nrow, rowlen, cutoff) into the six integers the firmware
// expects, (b11, b12, b21, b22, k1, k2). By default it walks the cutoff
// downwards from the request until the quantized filter no longer peaks above
// its DC gain, and reports the cutoff it settled on.
//
// The design pipeline is:
//
//  1. [DesignPoles]: analog Butterworth prototype, pre-warped and mapped
//     through the bilinear transform, grouped into two conjugate pairs.
//  2. [Quantize]: pole pairs to integer coefficients and shift exponents.
//  3. [Evaluator]: magnitude response of the quantized cascade on a dense
//     grid, reduced to a single peaking figure.
package mce
