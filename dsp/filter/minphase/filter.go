package minphase

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-helix/dsp/filter/causal"
	"github.com/cwbudde/algo-helix/dsp/filter/wilsonburg"
)

// Filter is a causal filter with minimum-phase coefficients.
type Filter struct {
	cf *causal.Filter
}

// New returns a minimum-phase filter with coefficients a on lags.
// a[0] must be non-zero.
func New(lags *causal.LagSet, a []float64, opts ...causal.Option) (*Filter, error) {
	if len(a) > 0 && a[0] == 0 {
		return nil, fmt.Errorf("%w: a[0] is zero", causal.ErrSingularFilter)
	}
	cf, err := causal.New(lags, a, opts...)
	if err != nil {
		return nil, err
	}
	return &Filter{cf: cf}, nil
}

// NewImpulse returns the identity filter on lags.
func NewImpulse(lags *causal.LagSet, opts ...causal.Option) (*Filter, error) {
	cf, err := causal.NewImpulse(lags, opts...)
	if err != nil {
		return nil, err
	}
	return &Filter{cf: cf}, nil
}

// Factor1 returns the minimum-phase filter on lags whose auto-correlation
// approximates r, using at most maxIter Wilson-Burg iterations.
//
// If the iterations do not converge the last iterate is still returned,
// together with the factorization result and an error matching
// wilsonburg.ErrDidNotConverge.
func Factor1(lags *causal.LagSet, r []float64, maxIter int, epsilon float64, opts ...wilsonburg.Option) (*Filter, *wilsonburg.Result, error) {
	res, err := wilsonburg.Factor1(lags, r, maxIter, epsilon, opts...)
	return fromResult(lags, res, err)
}

// Factor2 is Factor1 for a 2-D auto-correlation r[i2][i1].
func Factor2(lags *causal.LagSet, r [][]float64, maxIter int, epsilon float64, opts ...wilsonburg.Option) (*Filter, *wilsonburg.Result, error) {
	res, err := wilsonburg.Factor2(lags, r, maxIter, epsilon, opts...)
	return fromResult(lags, res, err)
}

// Factor3 is Factor1 for a 3-D auto-correlation r[i3][i2][i1].
func Factor3(lags *causal.LagSet, r [][][]float64, maxIter int, epsilon float64, opts ...wilsonburg.Option) (*Filter, *wilsonburg.Result, error) {
	res, err := wilsonburg.Factor3(lags, r, maxIter, epsilon, opts...)
	return fromResult(lags, res, err)
}

func fromResult(lags *causal.LagSet, res *wilsonburg.Result, err error) (*Filter, *wilsonburg.Result, error) {
	if err != nil && !errors.Is(err, wilsonburg.ErrDidNotConverge) {
		return nil, nil, err
	}
	f, ferr := New(lags, res.Coefficients)
	if ferr != nil {
		return nil, nil, ferr
	}
	return f, res, err
}

// Causal returns the underlying causal filter.
func (f *Filter) Causal() *causal.Filter { return f.cf }

// Lags returns the filter's lag set.
func (f *Filter) Lags() *causal.LagSet { return f.cf.Lags() }

// Coefficients returns a copy of the filter coefficients.
func (f *Filter) Coefficients() []float64 { return f.cf.Coefficients() }

// Apply1 computes y = A x.
func (f *Filter) Apply1(x, y []float64) error { return f.cf.Apply1(x, y) }

// ApplyTranspose1 computes y = A' x.
func (f *Filter) ApplyTranspose1(x, y []float64) error { return f.cf.ApplyTranspose1(x, y) }

// ApplyInverse1 solves A x = y for x.
func (f *Filter) ApplyInverse1(y, x []float64) error { return f.cf.ApplyInverse1(y, x) }

// ApplyInverseTranspose1 solves A' x = y for x.
func (f *Filter) ApplyInverseTranspose1(y, x []float64) error {
	return f.cf.ApplyInverseTranspose1(y, x)
}

// Apply2 computes y = A x for 2-D arrays.
func (f *Filter) Apply2(x, y [][]float64) error { return f.cf.Apply2(x, y) }

// ApplyTranspose2 computes y = A' x for 2-D arrays.
func (f *Filter) ApplyTranspose2(x, y [][]float64) error { return f.cf.ApplyTranspose2(x, y) }

// ApplyInverse2 solves A x = y for 2-D arrays.
func (f *Filter) ApplyInverse2(y, x [][]float64) error { return f.cf.ApplyInverse2(y, x) }

// ApplyInverseTranspose2 solves A' x = y for 2-D arrays.
func (f *Filter) ApplyInverseTranspose2(y, x [][]float64) error {
	return f.cf.ApplyInverseTranspose2(y, x)
}

// Apply3 computes y = A x for 3-D arrays.
func (f *Filter) Apply3(x, y [][][]float64) error { return f.cf.Apply3(x, y) }

// ApplyTranspose3 computes y = A' x for 3-D arrays.
func (f *Filter) ApplyTranspose3(x, y [][][]float64) error { return f.cf.ApplyTranspose3(x, y) }

// ApplyInverse3 solves A x = y for 3-D arrays.
func (f *Filter) ApplyInverse3(y, x [][][]float64) error { return f.cf.ApplyInverse3(y, x) }

// ApplyInverseTranspose3 solves A' x = y for 3-D arrays.
func (f *Filter) ApplyInverseTranspose3(y, x [][][]float64) error {
	return f.cf.ApplyInverseTranspose3(y, x)
}
