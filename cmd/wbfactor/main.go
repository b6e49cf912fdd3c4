// Command wbfactor factors an auto-correlation into a minimum-phase causal
// filter with the Wilson-Burg method and prints the filter coefficients.
//
// Usage:
//
//	wbfactor [flags]
//
// The auto-correlation is given as a comma-separated list with the zero lag
// in the middle. For 2-D and 3-D correlations -n1 (and -n2) give the row
// (and plane) length; samples are listed with i1 fastest.
//
// Examples:
//
//	wbfactor -lags1 0,1,2,3 -r 24,242,867,1334,867,242,24
//	wbfactor -lags1 0,1,-1,0 -lags2 0,0,1,1 -n1 3 -r 0,-1,0,-1,4,-1,0,-1,0
//	wbfactor -v -iter 200 -eps 1e-8 -lags1 0,1 -r 0.5,1.25,0.5
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-helix/dsp/filter/causal"
	"github.com/cwbudde/algo-helix/dsp/filter/wilsonburg"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	lags1, lags2, lags3 string
	r                   string
	n1, n2              int
	maxIter             int
	eps                 float64
	pad                 int
	verbose             bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	var o options
	fs := flag.NewFlagSet("wbfactor", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.lags1, "lags1", "", "comma-separated lags in dimension 1 (required)")
	fs.StringVar(&o.lags2, "lags2", "", "comma-separated lags in dimension 2")
	fs.StringVar(&o.lags3, "lags3", "", "comma-separated lags in dimension 3")
	fs.StringVar(&o.r, "r", "", "comma-separated auto-correlation, i1 fastest (required)")
	fs.IntVar(&o.n1, "n1", 0, "row length of a 2-D or 3-D auto-correlation")
	fs.IntVar(&o.n2, "n2", 0, "rows per plane of a 3-D auto-correlation")
	fs.IntVar(&o.maxIter, "iter", 100, "maximum number of iterations")
	fs.Float64Var(&o.eps, "eps", 1e-6, "convergence tolerance relative to sqrt(r0)")
	fs.IntVar(&o.pad, "pad", 10, "zero padding factor of the factorization grid")
	fs.BoolVar(&o.verbose, "v", false, "log every iteration")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: wbfactor [flags]\n\n")
		fmt.Fprintf(stderr, "Factors an auto-correlation into a minimum-phase causal filter.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  wbfactor -lags1 0,1,2,3 -r 24,242,867,1334,867,242,24\n")
		fmt.Fprintf(stderr, "  wbfactor -lags1 0,1,-1,0 -lags2 0,0,1,1 -n1 3 -r 0,-1,0,-1,4,-1,0,-1,0\n")
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if o.lags1 == "" || o.r == "" {
		fs.Usage()
		return nil, errors.New("-lags1 and -r are required")
	}
	if o.n2 != 0 && o.n1 == 0 {
		return nil, errors.New("-n2 requires -n1")
	}
	return &o, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	lags, err := buildLags(o)
	if err != nil {
		return err
	}
	r, err := parseFloats(o.r)
	if err != nil {
		return fmt.Errorf("-r: %w", err)
	}

	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	fz, err := wilsonburg.NewFactorizer(lags,
		wilsonburg.WithLogger(logger),
		wilsonburg.WithPadFactor(o.pad),
	)
	if err != nil {
		return err
	}

	res, err := factor(ctx, fz, o, r)
	switch {
	case errors.Is(err, wilsonburg.ErrDidNotConverge):
		logger.Warn("factorization did not converge", "iterations", res.Iterations, "max_change", res.MaxChange)
	case err != nil:
		return err
	}

	return printResult(stdout, lags, res)
}

func factor(ctx context.Context, fz *wilsonburg.Factorizer, o *options, r []float64) (*wilsonburg.Result, error) {
	switch {
	case o.n1 == 0:
		return fz.Factor1(ctx, r, o.maxIter, o.eps)
	case o.n2 == 0:
		r2, err := reshape2(r, o.n1)
		if err != nil {
			return nil, err
		}
		return fz.Factor2(ctx, r2, o.maxIter, o.eps)
	default:
		r3, err := reshape3(r, o.n1, o.n2)
		if err != nil {
			return nil, err
		}
		return fz.Factor3(ctx, r3, o.maxIter, o.eps)
	}
}

func buildLags(o *options) (*causal.LagSet, error) {
	lag1, err := parseInts(o.lags1)
	if err != nil {
		return nil, fmt.Errorf("-lags1: %w", err)
	}
	if o.lags2 == "" {
		if o.lags3 != "" {
			return nil, errors.New("-lags3 requires -lags2")
		}
		return causal.NewLagSet1(lag1)
	}
	lag2, err := parseInts(o.lags2)
	if err != nil {
		return nil, fmt.Errorf("-lags2: %w", err)
	}
	if o.lags3 == "" {
		return causal.NewLagSet2(lag1, lag2)
	}
	lag3, err := parseInts(o.lags3)
	if err != nil {
		return nil, fmt.Errorf("-lags3: %w", err)
	}
	return causal.NewLagSet3(lag1, lag2, lag3)
}

func parseInts(s string) ([]int, error) {
	fields := strings.Split(s, ",")
	out := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func parseFloats(s string) ([]float64, error) {
	fields := strings.Split(s, ",")
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func reshape2(r []float64, n1 int) ([][]float64, error) {
	if n1 <= 0 || len(r)%n1 != 0 {
		return nil, fmt.Errorf("%d samples do not fill rows of %d", len(r), n1)
	}
	out := make([][]float64, len(r)/n1)
	for i2 := range out {
		out[i2] = r[i2*n1 : (i2+1)*n1]
	}
	return out, nil
}

func reshape3(r []float64, n1, n2 int) ([][][]float64, error) {
	if n1 <= 0 || n2 <= 0 || len(r)%(n1*n2) != 0 {
		return nil, fmt.Errorf("%d samples do not fill planes of %dx%d", len(r), n2, n1)
	}
	out := make([][][]float64, len(r)/(n1*n2))
	for i3 := range out {
		plane, err := reshape2(r[i3*n1*n2:(i3+1)*n1*n2], n1)
		if err != nil {
			return nil, err
		}
		out[i3] = plane
	}
	return out, nil
}

func printResult(w io.Writer, lags *causal.LagSet, res *wilsonburg.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Lag\tCoefficient\n---\t-----------\n"); err != nil {
		return fmt.Errorf("failed to write output header: %w", err)
	}
	for j, a := range res.Coefficients {
		l1, l2, l3 := lags.Lag(j)
		if _, err := fmt.Fprintf(tw, "%s\t%.8f\n", formatLag(lags.Rank(), l1, l2, l3), a); err != nil {
			return fmt.Errorf("failed to write output row: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}

	_, err := fmt.Fprintf(w, "\nconverged: %v\niterations: %d\nmax change: %.3g\nresidual: %.3g\n",
		res.Converged, res.Iterations, res.MaxChange, res.Residual)
	return err
}

func formatLag(rank, l1, l2, l3 int) string {
	switch rank {
	case 1:
		return fmt.Sprintf("(%d)", l1)
	case 2:
		return fmt.Sprintf("(%d,%d)", l1, l2)
	default:
		return fmt.Sprintf("(%d,%d,%d)", l1, l2, l3)
	}
}
