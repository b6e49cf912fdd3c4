package causal

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-helix/dsp/core"
)

// Errors returned by causal filters.
var (
	ErrInvalidArgument   = errors.New("causal: invalid argument")
	ErrInvalidLagSet     = fmt.Errorf("%w: invalid lag set", ErrInvalidArgument)
	ErrDimensionMismatch = errors.New("causal: dimension mismatch")
	ErrSingularFilter    = errors.New("causal: zero-lag coefficient is zero")
)

func validateShape2(x, y [][]float64) (n1, n2 int, err error) {
	n1, n2, ok := core.Shape2(x)
	if !ok {
		return 0, 0, fmt.Errorf("%w: input is not rectangular", ErrDimensionMismatch)
	}
	m1, m2, ok := core.Shape2(y)
	if !ok {
		return 0, 0, fmt.Errorf("%w: output is not rectangular", ErrDimensionMismatch)
	}
	if n1 != m1 || n2 != m2 {
		return 0, 0, fmt.Errorf("%w: input is %dx%d, output is %dx%d", ErrDimensionMismatch, n2, n1, m2, m1)
	}
	return n1, n2, nil
}

func validateShape3(x, y [][][]float64) (n1, n2, n3 int, err error) {
	n1, n2, n3, ok := core.Shape3(x)
	if !ok {
		return 0, 0, 0, fmt.Errorf("%w: input is not rectangular", ErrDimensionMismatch)
	}
	m1, m2, m3, ok := core.Shape3(y)
	if !ok {
		return 0, 0, 0, fmt.Errorf("%w: output is not rectangular", ErrDimensionMismatch)
	}
	if n1 != m1 || n2 != m2 || n3 != m3 {
		return 0, 0, 0, fmt.Errorf("%w: input is %dx%dx%d, output is %dx%dx%d",
			ErrDimensionMismatch, n3, n2, n1, m3, m2, m1)
	}
	return n1, n2, n3, nil
}

func checkRank(lags *LagSet, rank int) error {
	if lags.rank > rank {
		return fmt.Errorf("%w: lag set of rank %d applied to a %d-D array", ErrDimensionMismatch, lags.rank, rank)
	}
	return nil
}
