package causal

import (
	"fmt"
	"math"
)

// CoefficientSource supplies filter coefficients for each sample.
//
// CoefficientsAt fills a, whose length is the lag count, with the
// coefficients for output sample (i1, i2, i3). Unused indices are zero for
// 1-D and 2-D arrays. It must be a pure function of the indices; it may be
// called more than once per sample and from several goroutines.
type CoefficientSource interface {
	CoefficientsAt(i1, i2, i3 int, a []float64)
}

// CoefficientFunc adapts a function to a CoefficientSource.
type CoefficientFunc func(i1, i2, i3 int, a []float64)

// CoefficientsAt calls fn(i1, i2, i3, a).
func (fn CoefficientFunc) CoefficientsAt(i1, i2, i3 int, a []float64) { fn(i1, i2, i3, a) }

// Constant returns a source yielding the same coefficients at every sample.
// The coefficients are copied.
func Constant(a []float64) CoefficientSource {
	c := append([]float64(nil), a...)
	return CoefficientFunc(func(_, _, _ int, a []float64) { copy(a, c) })
}

// boundedSource is implemented by sources defined only on a fixed grid.
type boundedSource interface {
	Shape() (n1, n2, n3 int)
	Width() int
}

// LocalFilter is a causal filter whose coefficients vary from sample to
// sample. Coefficients are passed to each call through a CoefficientSource.
//
// Apply and ApplyInverse gather with the coefficients of the output sample.
// ApplyTranspose and ApplyInverseTranspose are their exact adjoints and
// scatter each sample's coefficients. ApplyInverseTranspose cannot run in
// place; when input and output share storage the input is copied first.
type LocalFilter struct {
	lags    *LagSet
	workers int
}

// NewLocal returns a local filter over lags.
func NewLocal(lags *LagSet, opts ...Option) (*LocalFilter, error) {
	if lags == nil {
		return nil, fmt.Errorf("%w: nil lag set", ErrInvalidLagSet)
	}
	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	return &LocalFilter{lags: lags, workers: cfg.workers}, nil
}

// Lags returns the filter's lag set.
func (f *LocalFilter) Lags() *LagSet { return f.lags }

// InPlaceSafe reports whether op may run with identical input and output
// without an internal copy.
func (f *LocalFilter) InPlaceSafe(op Op) bool { return op != OpInverseTranspose }

// Apply1 computes y = A x.
func (f *LocalFilter) Apply1(src CoefficientSource, x, y []float64) error {
	return f.run1(OpApply, src, x, y)
}

// ApplyTranspose1 computes y = A' x.
func (f *LocalFilter) ApplyTranspose1(src CoefficientSource, x, y []float64) error {
	return f.run1(OpTranspose, src, x, y)
}

// ApplyInverse1 solves A x = y for x.
func (f *LocalFilter) ApplyInverse1(src CoefficientSource, y, x []float64) error {
	return f.run1(OpInverse, src, y, x)
}

// ApplyInverseTranspose1 solves A' x = y for x.
func (f *LocalFilter) ApplyInverseTranspose1(src CoefficientSource, y, x []float64) error {
	return f.run1(OpInverseTranspose, src, y, x)
}

// Apply2 computes y = A x for 2-D arrays.
func (f *LocalFilter) Apply2(src CoefficientSource, x, y [][]float64) error {
	return f.run2(OpApply, src, x, y)
}

// ApplyTranspose2 computes y = A' x for 2-D arrays.
func (f *LocalFilter) ApplyTranspose2(src CoefficientSource, x, y [][]float64) error {
	return f.run2(OpTranspose, src, x, y)
}

// ApplyInverse2 solves A x = y for 2-D arrays.
func (f *LocalFilter) ApplyInverse2(src CoefficientSource, y, x [][]float64) error {
	return f.run2(OpInverse, src, y, x)
}

// ApplyInverseTranspose2 solves A' x = y for 2-D arrays.
func (f *LocalFilter) ApplyInverseTranspose2(src CoefficientSource, y, x [][]float64) error {
	return f.run2(OpInverseTranspose, src, y, x)
}

// Apply3 computes y = A x for 3-D arrays.
func (f *LocalFilter) Apply3(src CoefficientSource, x, y [][][]float64) error {
	return f.run3(OpApply, src, x, y)
}

// ApplyTranspose3 computes y = A' x for 3-D arrays.
func (f *LocalFilter) ApplyTranspose3(src CoefficientSource, x, y [][][]float64) error {
	return f.run3(OpTranspose, src, x, y)
}

// ApplyInverse3 solves A x = y for 3-D arrays.
func (f *LocalFilter) ApplyInverse3(src CoefficientSource, y, x [][][]float64) error {
	return f.run3(OpInverse, src, y, x)
}

// ApplyInverseTranspose3 solves A' x = y for 3-D arrays.
func (f *LocalFilter) ApplyInverseTranspose3(src CoefficientSource, y, x [][][]float64) error {
	return f.run3(OpInverseTranspose, src, y, x)
}

func (f *LocalFilter) run1(op Op, src CoefficientSource, in, out []float64) error {
	if err := checkRank(f.lags, 1); err != nil {
		return err
	}
	if len(in) != len(out) {
		return fmt.Errorf("%w: input has %d samples, output %d", ErrDimensionMismatch, len(in), len(out))
	}
	if len(in) == 0 {
		return checkSource(src)
	}
	return f.run(op, src, [][][]float64{{in}}, [][][]float64{{out}})
}

func (f *LocalFilter) run2(op Op, src CoefficientSource, in, out [][]float64) error {
	if err := checkRank(f.lags, 2); err != nil {
		return err
	}
	n1, n2, err := validateShape2(in, out)
	if err != nil {
		return err
	}
	if n1 == 0 || n2 == 0 {
		return checkSource(src)
	}
	return f.run(op, src, [][][]float64{in}, [][][]float64{out})
}

func (f *LocalFilter) run3(op Op, src CoefficientSource, in, out [][][]float64) error {
	if err := checkRank(f.lags, 3); err != nil {
		return err
	}
	n1, n2, n3, err := validateShape3(in, out)
	if err != nil {
		return err
	}
	if n1 == 0 || n2 == 0 || n3 == 0 {
		return checkSource(src)
	}
	return f.run(op, src, in, out)
}

func checkSource(src CoefficientSource) error {
	if src == nil {
		return fmt.Errorf("%w: nil coefficient source", ErrInvalidArgument)
	}
	return nil
}

func (f *LocalFilter) run(op Op, src CoefficientSource, in, out [][][]float64) error {
	if err := checkSource(src); err != nil {
		return err
	}
	if err := f.checkBounds(src, out); err != nil {
		return err
	}
	if op.inverse() {
		if err := f.checkSingular(op, src, out); err != nil {
			return err
		}
	}

	x, disjoint := prepareInput(in, out, f.InPlaceSafe(op))

	switch op {
	case OpApply:
		if disjoint && f.workers > 1 {
			return gatherParallel(f.lags, nil, src, x, out, 1, f.workers)
		}
		newKernel(f.lags, nil, src).gather(x, out, 1, fullSlab(len(out[0]), len(out)))
	case OpTranspose:
		newKernel(f.lags, nil, src).scatter(x, out)
	case OpInverse:
		newKernel(f.lags, nil, src).recurse(x, out, 1)
	case OpInverseTranspose:
		newKernel(f.lags, nil, src).scatterRecurse(x, out)
	default:
		return fmt.Errorf("%w: unknown operation %d", ErrInvalidArgument, int(op))
	}
	return nil
}

func (f *LocalFilter) checkBounds(src CoefficientSource, out [][][]float64) error {
	b, ok := src.(boundedSource)
	if !ok {
		return nil
	}
	if w := b.Width(); w != f.lags.Len() {
		return fmt.Errorf("%w: source has %d coefficients per sample, lag set has %d",
			ErrDimensionMismatch, w, f.lags.Len())
	}
	m1, m2, m3 := b.Shape()
	n1, n2, n3 := len(out[0][0]), len(out[0]), len(out)
	if n1 > m1 || n2 > m2 || n3 > m3 {
		return fmt.Errorf("%w: source covers %dx%dx%d samples, array is %dx%dx%d",
			ErrDimensionMismatch, m3, m2, m1, n3, n2, n1)
	}
	return nil
}

// checkSingular scans the source for a zero-lag coefficient of zero before
// any output is written.
func (f *LocalFilter) checkSingular(op Op, src CoefficientSource, out [][][]float64) error {
	a := make([]float64, f.lags.Len())
	for i3 := range out {
		for i2 := range out[i3] {
			for i1 := range out[i3][i2] {
				src.CoefficientsAt(i1, i2, i3, a)
				if a[0] == 0 || math.IsNaN(a[0]) {
					return fmt.Errorf("%w: cannot %s at sample (%d,%d,%d)", ErrSingularFilter, op, i1, i2, i3)
				}
			}
		}
	}
	return nil
}
