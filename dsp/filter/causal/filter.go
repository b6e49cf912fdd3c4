package causal

import (
	"fmt"
	"math"
)

// Op identifies one of the four filter operations.
type Op int

const (
	OpApply Op = iota
	OpTranspose
	OpInverse
	OpInverseTranspose
)

func (op Op) String() string {
	switch op {
	case OpApply:
		return "apply"
	case OpTranspose:
		return "apply transpose"
	case OpInverse:
		return "apply inverse"
	case OpInverseTranspose:
		return "apply inverse transpose"
	default:
		return fmt.Sprintf("Op(%d)", int(op))
	}
}

func (op Op) inverse() bool { return op == OpInverse || op == OpInverseTranspose }

// Filter is a causal filter with fixed coefficients.
type Filter struct {
	lags    *LagSet
	a       []float64
	workers int
}

// New returns a filter with coefficients a[j] for lags.Lag(j).
// The coefficients are copied.
func New(lags *LagSet, a []float64, opts ...Option) (*Filter, error) {
	if lags == nil {
		return nil, fmt.Errorf("%w: nil lag set", ErrInvalidLagSet)
	}
	if len(a) != lags.Len() {
		return nil, fmt.Errorf("%w: %d coefficients for %d lags", ErrInvalidLagSet, len(a), lags.Len())
	}
	for j, v := range a {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: coefficient %d is %v", ErrInvalidArgument, j, v)
		}
	}

	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	return &Filter{
		lags:    lags,
		a:       append([]float64(nil), a...),
		workers: cfg.workers,
	}, nil
}

// NewImpulse returns the identity filter on lags: a[0] = 1, all other
// coefficients zero.
func NewImpulse(lags *LagSet, opts ...Option) (*Filter, error) {
	if lags == nil {
		return nil, fmt.Errorf("%w: nil lag set", ErrInvalidLagSet)
	}
	a := make([]float64, lags.Len())
	a[0] = 1
	return New(lags, a, opts...)
}

// Lags returns the filter's lag set.
func (f *Filter) Lags() *LagSet { return f.lags }

// Coefficients returns a copy of the filter coefficients.
func (f *Filter) Coefficients() []float64 { return append([]float64(nil), f.a...) }

// Len returns the number of coefficients.
func (f *Filter) Len() int { return len(f.a) }

// InPlaceSafe reports whether op may be called with the same array as input
// and output without an internal copy. It is true for every fixed-filter
// operation.
func (f *Filter) InPlaceSafe(Op) bool { return true }

// Apply1 computes y = A x. x and y may be the same slice.
func (f *Filter) Apply1(x, y []float64) error { return f.run1(OpApply, x, y) }

// ApplyTranspose1 computes y = A' x. x and y may be the same slice.
func (f *Filter) ApplyTranspose1(x, y []float64) error { return f.run1(OpTranspose, x, y) }

// ApplyInverse1 solves A x = y for x. y and x may be the same slice.
func (f *Filter) ApplyInverse1(y, x []float64) error { return f.run1(OpInverse, y, x) }

// ApplyInverseTranspose1 solves A' x = y for x. y and x may be the same slice.
func (f *Filter) ApplyInverseTranspose1(y, x []float64) error {
	return f.run1(OpInverseTranspose, y, x)
}

// Apply2 computes y = A x for 2-D arrays.
func (f *Filter) Apply2(x, y [][]float64) error { return f.run2(OpApply, x, y) }

// ApplyTranspose2 computes y = A' x for 2-D arrays.
func (f *Filter) ApplyTranspose2(x, y [][]float64) error { return f.run2(OpTranspose, x, y) }

// ApplyInverse2 solves A x = y for 2-D arrays.
func (f *Filter) ApplyInverse2(y, x [][]float64) error { return f.run2(OpInverse, y, x) }

// ApplyInverseTranspose2 solves A' x = y for 2-D arrays.
func (f *Filter) ApplyInverseTranspose2(y, x [][]float64) error {
	return f.run2(OpInverseTranspose, y, x)
}

// Apply3 computes y = A x for 3-D arrays.
func (f *Filter) Apply3(x, y [][][]float64) error { return f.run3(OpApply, x, y) }

// ApplyTranspose3 computes y = A' x for 3-D arrays.
func (f *Filter) ApplyTranspose3(x, y [][][]float64) error { return f.run3(OpTranspose, x, y) }

// ApplyInverse3 solves A x = y for 3-D arrays.
func (f *Filter) ApplyInverse3(y, x [][][]float64) error { return f.run3(OpInverse, y, x) }

// ApplyInverseTranspose3 solves A' x = y for 3-D arrays.
func (f *Filter) ApplyInverseTranspose3(y, x [][][]float64) error {
	return f.run3(OpInverseTranspose, y, x)
}

func (f *Filter) run1(op Op, in, out []float64) error {
	if err := checkRank(f.lags, 1); err != nil {
		return err
	}
	if len(in) != len(out) {
		return fmt.Errorf("%w: input has %d samples, output %d", ErrDimensionMismatch, len(in), len(out))
	}
	if len(in) == 0 {
		return f.checkSingular(op)
	}
	return f.run(op, [][][]float64{{in}}, [][][]float64{{out}})
}

func (f *Filter) run2(op Op, in, out [][]float64) error {
	if err := checkRank(f.lags, 2); err != nil {
		return err
	}
	n1, n2, err := validateShape2(in, out)
	if err != nil {
		return err
	}
	if n1 == 0 || n2 == 0 {
		return f.checkSingular(op)
	}
	return f.run(op, [][][]float64{in}, [][][]float64{out})
}

func (f *Filter) run3(op Op, in, out [][][]float64) error {
	if err := checkRank(f.lags, 3); err != nil {
		return err
	}
	n1, n2, n3, err := validateShape3(in, out)
	if err != nil {
		return err
	}
	if n1 == 0 || n2 == 0 || n3 == 0 {
		return f.checkSingular(op)
	}
	return f.run(op, in, out)
}

func (f *Filter) checkSingular(op Op) error {
	if op.inverse() && f.a[0] == 0 {
		return fmt.Errorf("%w: cannot %s", ErrSingularFilter, op)
	}
	return nil
}

func (f *Filter) run(op Op, in, out [][][]float64) error {
	if err := f.checkSingular(op); err != nil {
		return err
	}

	src, disjoint := prepareInput(in, out, f.InPlaceSafe(op))

	switch op {
	case OpApply, OpTranspose:
		sign := 1
		if op == OpTranspose {
			sign = -1
		}
		if disjoint && f.workers > 1 {
			return gatherParallel(f.lags, f.a, nil, src, out, sign, f.workers)
		}
		newKernel(f.lags, f.a, nil).gather(src, out, sign, fullSlab(len(out[0]), len(out)))
	case OpInverse:
		newKernel(f.lags, f.a, nil).recurse(src, out, 1)
	case OpInverseTranspose:
		newKernel(f.lags, f.a, nil).recurse(src, out, -1)
	default:
		return fmt.Errorf("%w: unknown operation %d", ErrInvalidArgument, int(op))
	}
	return nil
}
