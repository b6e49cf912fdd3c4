package minphase

import (
	"context"
	"errors"
	"fmt"

	"github.com/cwbudde/algo-helix/dsp/filter/causal"
	"github.com/cwbudde/algo-helix/dsp/filter/wilsonburg"
)

// Indexed is a set of minimum-phase filters sharing one lag set. Every call
// chooses, per sample, one filter of the set through an index map.
type Indexed struct {
	lags  *causal.LagSet
	table [][]float64
	lcf   *causal.LocalFilter
}

// NewIndexed returns an indexed filter with one coefficient row per filter.
// Every row must have lags.Len() coefficients with a non-zero a[0].
func NewIndexed(lags *causal.LagSet, table [][]float64, opts ...causal.Option) (*Indexed, error) {
	lcf, err := causal.NewLocal(lags, opts...)
	if err != nil {
		return nil, err
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("%w: empty filter table", causal.ErrInvalidArgument)
	}

	rows := make([][]float64, len(table))
	for k, row := range table {
		if len(row) != lags.Len() {
			return nil, fmt.Errorf("%w: filter %d has %d coefficients for %d lags",
				causal.ErrInvalidLagSet, k, len(row), lags.Len())
		}
		if row[0] == 0 {
			return nil, fmt.Errorf("%w: filter %d has a[0] = 0", causal.ErrSingularFilter, k)
		}
		rows[k] = append([]float64(nil), row...)
	}

	return &Indexed{lags: lags, table: rows, lcf: lcf}, nil
}

// FactorIndexed2 factors every auto-correlation in rs into a minimum-phase
// filter on lags and returns them as an indexed set. Factorizations that
// stop at maxIter are kept; the returned results report their convergence.
func FactorIndexed2(lags *causal.LagSet, rs [][][]float64, maxIter int, epsilon float64, opts ...wilsonburg.Option) (*Indexed, []*wilsonburg.Result, error) {
	fz, err := wilsonburg.NewFactorizer(lags, opts...)
	if err != nil {
		return nil, nil, err
	}

	table := make([][]float64, len(rs))
	results := make([]*wilsonburg.Result, len(rs))
	for k, r := range rs {
		res, err := fz.Factor2(context.Background(), r, maxIter, epsilon)
		if err != nil && !errors.Is(err, wilsonburg.ErrDidNotConverge) {
			return nil, nil, fmt.Errorf("minphase: filter %d: %w", k, err)
		}
		table[k] = res.Coefficients
		results[k] = res
	}

	ix, err := NewIndexed(lags, table)
	if err != nil {
		return nil, nil, err
	}
	return ix, results, nil
}

// Len returns the number of filters in the set.
func (ix *Indexed) Len() int { return len(ix.table) }

// Lags returns the shared lag set.
func (ix *Indexed) Lags() *causal.LagSet { return ix.lags }

// Filter returns filter k of the set.
func (ix *Indexed) Filter(k int) (*Filter, error) {
	if k < 0 || k >= len(ix.table) {
		return nil, fmt.Errorf("%w: filter %d of %d", causal.ErrInvalidArgument, k, len(ix.table))
	}
	return New(ix.lags, ix.table[k])
}

func (ix *Indexed) source1(index []int) (causal.CoefficientSource, error) {
	return causal.NewIndexed1(ix.table, index)
}

func (ix *Indexed) source2(index [][]int) (causal.CoefficientSource, error) {
	return causal.NewIndexed2(ix.table, index)
}

func (ix *Indexed) source3(index [][][]int) (causal.CoefficientSource, error) {
	return causal.NewIndexed3(ix.table, index)
}

// Apply1 computes y = A x, with sample i1 filtered by filter index[i1].
func (ix *Indexed) Apply1(index []int, x, y []float64) error {
	src, err := ix.source1(index)
	if err != nil {
		return err
	}
	return ix.lcf.Apply1(src, x, y)
}

// ApplyTranspose1 computes y = A' x.
func (ix *Indexed) ApplyTranspose1(index []int, x, y []float64) error {
	src, err := ix.source1(index)
	if err != nil {
		return err
	}
	return ix.lcf.ApplyTranspose1(src, x, y)
}

// ApplyInverse1 solves A x = y for x.
func (ix *Indexed) ApplyInverse1(index []int, y, x []float64) error {
	src, err := ix.source1(index)
	if err != nil {
		return err
	}
	return ix.lcf.ApplyInverse1(src, y, x)
}

// ApplyInverseTranspose1 solves A' x = y for x.
func (ix *Indexed) ApplyInverseTranspose1(index []int, y, x []float64) error {
	src, err := ix.source1(index)
	if err != nil {
		return err
	}
	return ix.lcf.ApplyInverseTranspose1(src, y, x)
}

// Apply2 computes y = A x, with sample (i1, i2) filtered by index[i2][i1].
func (ix *Indexed) Apply2(index [][]int, x, y [][]float64) error {
	src, err := ix.source2(index)
	if err != nil {
		return err
	}
	return ix.lcf.Apply2(src, x, y)
}

// ApplyTranspose2 computes y = A' x for 2-D arrays.
func (ix *Indexed) ApplyTranspose2(index [][]int, x, y [][]float64) error {
	src, err := ix.source2(index)
	if err != nil {
		return err
	}
	return ix.lcf.ApplyTranspose2(src, x, y)
}

// ApplyInverse2 solves A x = y for 2-D arrays.
func (ix *Indexed) ApplyInverse2(index [][]int, y, x [][]float64) error {
	src, err := ix.source2(index)
	if err != nil {
		return err
	}
	return ix.lcf.ApplyInverse2(src, y, x)
}

// ApplyInverseTranspose2 solves A' x = y for 2-D arrays.
func (ix *Indexed) ApplyInverseTranspose2(index [][]int, y, x [][]float64) error {
	src, err := ix.source2(index)
	if err != nil {
		return err
	}
	return ix.lcf.ApplyInverseTranspose2(src, y, x)
}

// Apply3 computes y = A x, with sample (i1, i2, i3) filtered by
// index[i3][i2][i1].
func (ix *Indexed) Apply3(index [][][]int, x, y [][][]float64) error {
	src, err := ix.source3(index)
	if err != nil {
		return err
	}
	return ix.lcf.Apply3(src, x, y)
}

// ApplyTranspose3 computes y = A' x for 3-D arrays.
func (ix *Indexed) ApplyTranspose3(index [][][]int, x, y [][][]float64) error {
	src, err := ix.source3(index)
	if err != nil {
		return err
	}
	return ix.lcf.ApplyTranspose3(src, x, y)
}

// ApplyInverse3 solves A x = y for 3-D arrays.
func (ix *Indexed) ApplyInverse3(index [][][]int, y, x [][][]float64) error {
	src, err := ix.source3(index)
	if err != nil {
		return err
	}
	return ix.lcf.ApplyInverse3(src, y, x)
}

// ApplyInverseTranspose3 solves A' x = y for 3-D arrays.
func (ix *Indexed) ApplyInverseTranspose3(index [][][]int, y, x [][][]float64) error {
	src, err := ix.source3(index)
	if err != nil {
		return err
	}
	return ix.lcf.ApplyInverseTranspose3(src, y, x)
}
