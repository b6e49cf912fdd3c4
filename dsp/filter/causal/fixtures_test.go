package causal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

const eps64 = 2.220446049250313e-16

var (
	lag1D = []int{0, 1, 2}
	a1D   = []float64{1, -1.8, 0.81} // (1-0.9z)(1-0.9z)
	b1D   = []float64{1, -1.6, 0.64} // (1-0.8z)(1-0.8z)

	lag2D1 = []int{0, 1, 2, 3, 4, -4, -3, -2, -1, 0}
	lag2D2 = []int{0, 0, 0, 0, 0, 1, 1, 1, 1, 1}
	a2D    = []float64{
		1.79548454, -0.64490664, -0.03850411, -0.01793403, -0.00708972,
		-0.02290331, -0.04141619, -0.08457147, -0.20031442, -0.55659920,
	}

	lag3D1 = []int{0, 1, 2, -2, -1, 0, 1, 2, -2, -1, 0, 1, 2, -2, -1, 0}
	lag3D2 = []int{0, 0, 0, 1, 1, 1, 1, 1, -1, -1, -1, -1, -1, 0, 0, 0}
	lag3D3 = []int{0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1}
	a3D    = []float64{
		2.3110454, -0.4805547, -0.0143204,
		-0.0291793, -0.1057476, -0.4572746, -0.0115732, -0.0047283,
		-0.0149963, -0.0408317, -0.0945958, -0.0223166, -0.0062781,
		-0.0213786, -0.0898909, -0.4322719,
	}
)

func mustLags1(t testing.TB, lag1 []int) *LagSet {
	t.Helper()
	ls, err := NewLagSet1(lag1)
	require.NoError(t, err)
	return ls
}

func mustLags2(t testing.TB, lag1, lag2 []int) *LagSet {
	t.Helper()
	ls, err := NewLagSet2(lag1, lag2)
	require.NoError(t, err)
	return ls
}

func mustLags3(t testing.TB, lag1, lag2, lag3 []int) *LagSet {
	t.Helper()
	ls, err := NewLagSet3(lag1, lag2, lag3)
	require.NoError(t, err)
	return ls
}

func mustFilter(t testing.TB, lags *LagSet, a []float64, opts ...Option) *Filter {
	t.Helper()
	f, err := New(lags, a, opts...)
	require.NoError(t, err)
	return f
}

// requireDotsEqual checks two inner products agree within n*10*eps relative
// to their magnitude.
func requireDotsEqual(t *testing.T, d1, d2 float64, n int) {
	t.Helper()
	scale := math.Max(1, math.Max(math.Abs(d1), math.Abs(d2)))
	if diff := math.Abs(d1 - d2); diff > float64(n)*10*eps64*scale {
		t.Fatalf("dot products differ: %v vs %v (diff %v)", d1, d2, diff)
	}
}
