package wilsonburg

import (
	"fmt"

	"github.com/cwbudde/algo-helix/dsp/conv"
	"github.com/cwbudde/algo-helix/dsp/core"
	"github.com/cwbudde/algo-helix/dsp/filter/causal"
)

// ImpliedCorrelation1 returns the auto-correlation of the filter with
// coefficients a on lags, on a window of n1 samples centered on the zero lag.
// n1 must be odd.
func ImpliedCorrelation1(lags *causal.LagSet, a []float64, n1 int, opts ...Option) ([]float64, error) {
	c, err := impliedCorrelation(lags, a, 1, [3]int{n1, 1, 1}, opts)
	if err != nil {
		return nil, err
	}
	return c[0][0], nil
}

// ImpliedCorrelation2 is ImpliedCorrelation1 for 2-D filters. The result is
// indexed c[i2][i1] with the zero lag at (n1/2, n2/2).
func ImpliedCorrelation2(lags *causal.LagSet, a []float64, n1, n2 int, opts ...Option) ([][]float64, error) {
	c, err := impliedCorrelation(lags, a, 2, [3]int{n1, n2, 1}, opts)
	if err != nil {
		return nil, err
	}
	return c[0], nil
}

// ImpliedCorrelation3 is ImpliedCorrelation1 for 3-D filters.
func ImpliedCorrelation3(lags *causal.LagSet, a []float64, n1, n2, n3 int, opts ...Option) ([][][]float64, error) {
	return impliedCorrelation(lags, a, 3, [3]int{n1, n2, n3}, opts)
}

func impliedCorrelation(lags *causal.LagSet, a []float64, rank int, ext [3]int, opts []Option) ([][][]float64, error) {
	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	if lags == nil {
		return nil, fmt.Errorf("%w: nil lag set", causal.ErrInvalidLagSet)
	}
	if len(a) != lags.Len() {
		return nil, fmt.Errorf("%w: %d coefficients for %d lags", causal.ErrInvalidLagSet, len(a), lags.Len())
	}
	if lags.Rank() > rank {
		return nil, fmt.Errorf("%w: lag set of rank %d for a %d-D window", ErrDimensionMismatch, lags.Rank(), rank)
	}
	for d, n := range ext {
		if n < 1 || n%2 == 0 {
			return nil, fmt.Errorf("%w: window extent %d in dimension %d must be odd", ErrDimensionMismatch, n, d+1)
		}
	}
	return helixCorrelation(cfg.pool, lags, a, ext)
}

// helixCorrelation computes the auto-correlation of a sparse filter by laying
// its lags out on a 1-D helix wide enough that no two correlation lags share
// a helix offset, correlating there, and reading the window back.
func helixCorrelation(pool *conv.PlanPool, lags *causal.LagSet, a []float64, ext [3]int) ([][][]float64, error) {
	m1 := lags.Max(1) - lags.Min(1)
	m2 := lags.Max(2) - lags.Min(2)
	m3 := lags.Max(3) - lags.Min(3)
	w1 := 2*m1 + 1
	w2 := 2*m2 + 1

	h := make([]float64, w1*w2*(m3+1))
	for j := range lags.Len() {
		l1, l2, l3 := lags.Lag(j)
		h[(l1-lags.Min(1))+w1*((l2-lags.Min(2))+w2*(l3-lags.Min(3)))] += a[j]
	}

	flat, err := conv.AutoCorrelateWith(pool, h)
	if err != nil {
		return nil, fmt.Errorf("wilsonburg: implied correlation: %w", err)
	}
	zero := len(h) - 1

	h1, h2, h3 := ext[0]/2, ext[1]/2, ext[2]/2
	c := core.Zeros3(ext[0], ext[1], ext[2])
	for o3 := -h3; o3 <= h3; o3++ {
		if o3 < -m3 || o3 > m3 {
			continue
		}
		for o2 := -h2; o2 <= h2; o2++ {
			if o2 < -m2 || o2 > m2 {
				continue
			}
			row := c[o3+h3][o2+h2]
			for o1 := max(-h1, -m1); o1 <= min(h1, m1); o1++ {
				row[o1+h1] = flat[zero+o1+w1*(o2+w2*o3)]
			}
		}
	}
	return c, nil
}
