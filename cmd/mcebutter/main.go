// Command mcebutter computes MCE 4-pole Butterworth filter parameters for a
// given scan geometry and maximum cutoff frequency.
//
// Usage:
//
//	mcebutter [flags] nrow rowlen f_cutoff
//
// By default it searches for the largest cutoff at or below f_cutoff whose
// quantized response does not peak, and prints
//
//	[b11, b12, b21, b22, k1, k2]
//
// Examples:
//
//	mcebutter 33 200 200
//	mcebutter -verbose 33 200 200
//	mcebutter -no-search -convention legacy 33 200 200
//	mcebutter -response 16 33 200 200
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"text/tabwriter"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-mce/dsp/filter/design/mce"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

var errUsage = errors.New("usage")

type options struct {
	noSearch   bool
	verbose    bool
	convention string
	grid       int
	response   int

	nrow, rowlen int
	cutoff       float64
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "mcebutter: ", 0)

	opts, err := parseArgs(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		if !errors.Is(err, errUsage) {
			logger.Print(err)
		}
		return exitUsage
	}

	conv, err := mce.ParseConvention(opts.convention)
	if err != nil {
		logger.Print(err)
		return exitUsage
	}

	res, err := mce.Design(opts.nrow, opts.rowlen, opts.cutoff,
		mce.WithSearch(!opts.noSearch),
		mce.WithConvention(conv),
		mce.WithGridSize(opts.grid),
	)
	if err != nil {
		logger.Print(err)
		return exitError
	}

	if res.Exhausted {
		logger.Printf("no non-peaking cutoff down to %.2f Hz; using %.2f Hz (peak %.6f)",
			res.RequestedCutoff/2, res.Cutoff, res.Peak)
	}
	if !res.Stable {
		logger.Printf("warning: quantized poles of %v are not inside the unit circle", res.Params)
	}

	if opts.verbose {
		printVerbose(stdout, res)
	} else {
		fmt.Fprintln(stdout, res.Params)
	}

	if opts.response > 0 {
		printResponse(stdout, res, opts.response)
	}
	return exitOK
}

func parseArgs(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("mcebutter", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&opts.noSearch, "no-search", false, "disable the search for a quantization-friendly cutoff")
	fs.BoolVar(&opts.verbose, "verbose", false, "print sample rate, cutoffs, Wn and peak gain")
	fs.StringVar(&opts.convention, "convention", "wiki", "coefficient convention: wiki (round, near pair first) or legacy (truncate, far pair first)")
	fs.IntVar(&opts.grid, "grid", 2048, "frequency grid intervals used by the peaking check")
	fs.IntVar(&opts.response, "response", 0, "also print an N-point magnitude table of the result")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: mcebutter [flags] nrow rowlen f_cutoff\n\n")
		fmt.Fprintf(stderr, "Computes MCE Butterworth filter parameters [b11, b12, b21, b22, k1, k2].\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() != 3 {
		fs.Usage()
		return opts, errUsage
	}

	var err error
	if opts.nrow, err = strconv.Atoi(fs.Arg(0)); err != nil {
		return opts, fmt.Errorf("nrow: %w", err)
	}
	if opts.rowlen, err = strconv.Atoi(fs.Arg(1)); err != nil {
		return opts, fmt.Errorf("rowlen: %w", err)
	}
	if opts.cutoff, err = strconv.ParseFloat(fs.Arg(2), 64); err != nil {
		return opts, fmt.Errorf("f_cutoff: %w", err)
	}
	return opts, nil
}

func printVerbose(w io.Writer, res mce.Result) {
	fmt.Fprintf(w, "f_samp = %.2f Hz\n", res.SampleRate)
	fmt.Fprintf(w, "f_cutoff_requested = %g Hz\n", res.RequestedCutoff)
	fmt.Fprintf(w, "f_cutoff_actual = %.2f Hz\n", res.Cutoff)
	fmt.Fprintf(w, "Wn = %.6f\n", res.Wn)
	fmt.Fprintf(w, "convention = %v\n", res.Convention)
	fmt.Fprintf(w, "peak = %.9f\n", res.Peak)
	fmt.Fprintf(w, "b11, b12, b21, b22, k1, k2 = %v\n", res.Params)
}

// printResponse tabulates the magnitude of the quantized cascade relative
// to its DC gain in n steps from DC to just below Nyquist.
func printResponse(w io.Writer, res mce.Result, n int) {
	freqs := []float64{0}
	if n > 1 {
		freqs = make([]float64, n)
		floats.Span(freqs, 0, res.SampleRate/2*float64(n-1)/float64(n))
	}

	chain := res.Params.Chain()
	dcDB := 20 * math.Log10(math.Abs(chain.DCGain()))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "f [Hz]\t|H| [dB]\t")
	for _, f := range freqs {
		db := chain.MagnitudeDB(2*math.Pi*f/res.SampleRate) - dcDB
		fmt.Fprintf(tw, "%.2f\t%.3f\t\n", f, db)
	}
	tw.Flush()
}
