// Package biquad describes second-order IIR sections on the design side.
//
// [Coefficients] holds one normalized section (a0 = 1). A [Chain] cascades
// sections behind an overall gain and evaluates the combined transfer
// function. Nothing here filters sample streams; the coefficients are meant
// to be shipped to hardware that does.
package biquad
