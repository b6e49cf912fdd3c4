package wilsonburg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-helix/dsp/conv"
	"github.com/cwbudde/algo-helix/dsp/core"
	"github.com/cwbudde/algo-helix/dsp/filter/causal"
	"github.com/cwbudde/algo-helix/internal/testutil"
)

const machineEpsilon = 2.220446049250313e-16

// 24 + 26z + 9z^2 + z^3 = (z+2)(z+3)(z+4)
var fomelR = []float64{24, 242, 867, 1334, 867, 242, 24}

func fomelLags(t testing.TB) *causal.LagSet {
	t.Helper()
	lags, err := causal.NewLagSet1([]int{0, 1, 2, 3})
	require.NoError(t, err)
	return lags
}

func laplacianLags2(t testing.TB) *causal.LagSet {
	t.Helper()
	lags, err := causal.NewLagSet2(
		[]int{0, 1, 2, 3, 4, -4, -3, -2, -1, 0},
		[]int{0, 0, 0, 0, 0, 1, 1, 1, 1, 1},
	)
	require.NoError(t, err)
	return lags
}

func laplacianLags3(t testing.TB) *causal.LagSet {
	t.Helper()
	lags, err := causal.NewLagSet3(
		[]int{0, 1, 2, -2, -1, 0, 1, 2, -2, -1, 0, 1, 2, -2, -1, 0},
		[]int{0, 0, 0, 1, 1, 1, 1, 1, -1, -1, -1, -1, -1, 0, 0, 0},
		[]int{0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1},
	)
	require.NoError(t, err)
	return lags
}

// requireUsable fails unless err is nil or only reports slow convergence.
func requireUsable(t *testing.T, res *Result, err error) {
	t.Helper()
	if err != nil && !errors.Is(err, ErrDidNotConverge) {
		t.Fatalf("factorization failed: %v", err)
	}
	require.NotNil(t, res)
}

func TestFactorFomelExample(t *testing.T) {
	r := append([]float64(nil), fomelR...)

	res, err := Factor1(fomelLags(t), r, 50, 1e-12)
	require.NoError(t, err)
	require.True(t, res.Converged)
	require.LessOrEqual(t, res.Iterations, 50)

	want := []float64{24, 26, 9, 1}
	require.Len(t, res.Coefficients, len(want))
	for j, w := range want {
		testutil.RequireRelativelyEqual(t, fmt.Sprintf("a[%d]", j), res.Coefficients[j], w, w, 100*machineEpsilon)
	}
	require.Less(t, res.Residual, 1e-6)
	require.Equal(t, fomelR, r, "target was modified")
}

func TestFactorLaplacian2(t *testing.T) {
	r := [][]float64{
		{0.000, -0.999, 0.000},
		{-0.999, 4.000, -0.999},
		{0.000, -0.999, 0.000},
	}
	lags := laplacianLags2(t)

	res, err := Factor2(lags, r, 100, 1.1920929e-07)
	requireUsable(t, res, err)

	f, err := causal.New(lags, res.Coefficients)
	require.NoError(t, err)

	s := testutil.Impulse2(3, 3, 1, 1)
	tt := testutil.Zeros2(3, 3)
	require.NoError(t, f.Apply2(s, tt))
	require.NoError(t, f.ApplyTranspose2(tt, s))

	testutil.RequireArray2NearlyEqual(t, s, r, 0.01*r[1][1])
}

func TestFactorLaplacian3(t *testing.T) {
	r := [][][]float64{
		{
			{0.000, 0.000, 0.000},
			{0.000, -0.999, 0.000},
			{0.000, 0.000, 0.000},
		}, {
			{0.000, -0.999, 0.000},
			{-0.999, 6.000, -0.999},
			{0.000, -0.999, 0.000},
		}, {
			{0.000, 0.000, 0.000},
			{0.000, -0.999, 0.000},
			{0.000, 0.000, 0.000},
		},
	}
	lags := laplacianLags3(t)

	res, err := Factor3(lags, r, 100, 1.1920929e-07)
	requireUsable(t, res, err)

	f, err := causal.New(lags, res.Coefficients)
	require.NoError(t, err)

	s := testutil.Impulse3(3, 3, 3, 1, 1, 1)
	tt := core.Zeros3(3, 3, 3)
	require.NoError(t, f.Apply3(s, tt))
	require.NoError(t, f.ApplyTranspose3(tt, s))

	testutil.RequireArray3NearlyEqual(t, s, r, 0.01*r[1][1][1])
}

func TestFactorInvalidArguments(t *testing.T) {
	lags := fomelLags(t)

	tests := []struct {
		name    string
		r       []float64
		maxIter int
		eps     float64
		want    error
	}{
		{name: "zero iterations", r: fomelR, maxIter: 0, eps: 1e-6, want: ErrInvalidArgument},
		{name: "zero epsilon", r: fomelR, maxIter: 10, eps: 0, want: ErrInvalidArgument},
		{name: "negative epsilon", r: fomelR, maxIter: 10, eps: -1, want: ErrInvalidArgument},
		{name: "nan epsilon", r: fomelR, maxIter: 10, eps: math.NaN(), want: ErrInvalidArgument},
		{name: "all zero target", r: make([]float64, 7), maxIter: 10, eps: 1e-6, want: ErrInvalidArgument},
		{name: "negative zero lag", r: []float64{1, -2, 1}, maxIter: 10, eps: 1e-6, want: ErrInvalidArgument},
		{name: "non-finite target", r: []float64{1, math.Inf(1), 1}, maxIter: 10, eps: 1e-6, want: ErrInvalidArgument},
		{name: "even length", r: []float64{1, 2, 2, 1}, maxIter: 10, eps: 1e-6, want: ErrDimensionMismatch},
		{name: "empty", r: nil, maxIter: 10, eps: 1e-6, want: ErrDimensionMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Factor1(lags, tt.r, tt.maxIter, tt.eps)
			require.ErrorIs(t, err, tt.want)
			require.Nil(t, res)
		})
	}
}

func TestFactorRankMismatch(t *testing.T) {
	_, err := Factor1(laplacianLags2(t), fomelR, 10, 1e-6)
	require.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = Factor2(laplacianLags2(t), [][]float64{{0, 1, 0}, {1, 4}, {0, 1, 0}}, 10, 1e-6)
	require.ErrorIs(t, err, ErrDimensionMismatch)

	// A 1-D lag set may factor a 2-D correlation.
	r := [][]float64{{0, 0, 0}, {0.5, 1.25, 0.5}, {0, 0, 0}}
	res, err := Factor2(fomelLags(t), r, 50, 1e-10)
	require.NoError(t, err)
	testutil.RequireSliceNearlyEqual(t, res.Coefficients, []float64{1, 0.5, 0, 0}, 1e-6)
}

func TestFactorDidNotConverge(t *testing.T) {
	res, err := Factor1(fomelLags(t), fomelR, 1, 1e-12)
	require.ErrorIs(t, err, ErrDidNotConverge)
	require.NotNil(t, res)
	require.False(t, res.Converged)
	require.Equal(t, 1, res.Iterations)
	require.Len(t, res.Coefficients, 4)
	require.Greater(t, res.MaxChange, 0.0)
	testutil.RequireFinite(t, res.Coefficients)
}

func TestFactorIndefiniteTarget(t *testing.T) {
	lags, err := causal.NewLagSet1([]int{0, 1})
	require.NoError(t, err)

	// Lag one exceeds the zero lag, so no filter on these lags has this
	// auto-correlation. The iterates grow but stay finite.
	res, err := Factor1(lags, []float64{0, 3, 1, 3, 0}, 200, 1e-10)
	require.ErrorIs(t, err, ErrDidNotConverge)
	require.NotErrorIs(t, err, ErrDiverged)
	require.NotNil(t, res)
	require.False(t, res.Converged)
	require.Greater(t, res.Residual, 1.0)
}

func TestStepWrapsFilterErrors(t *testing.T) {
	fz, err := NewFactorizer(fomelLags(t))
	require.NoError(t, err)
	g := fz.newGrid([3]int{7, 1, 1})

	filter, err := causal.NewImpulse(fomelLags(t))
	require.NoError(t, err)

	s := core.Zeros3(g.n[0], g.n[1], g.n[2])
	u := core.Zeros3(g.n[0], g.n[1], g.n[2])
	require.NoError(t, g.step(1, filter, s, core.Zeros3(g.n[0], g.n[1], g.n[2]), u))

	err = g.step(4, filter, s, core.Zeros3(g.n[0]-1, g.n[1], g.n[2]), u)
	require.ErrorIs(t, err, ErrDiverged)
	require.ErrorIs(t, err, ErrDimensionMismatch)
	require.ErrorContains(t, err, "iteration 4")
}

func TestFactorProgressAndLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var calls int
	var lastResidual float64
	progress := func(iteration int, maxChange, residual float64) {
		calls++
		require.Equal(t, calls, iteration)
		lastResidual = residual
	}

	res, err := Factor1(fomelLags(t), fomelR, 50, 1e-10,
		WithOnProgress(progress), WithLogger(logger), WithPadFactor(12))
	require.NoError(t, err)
	require.Equal(t, res.Iterations, calls)
	require.Equal(t, res.Residual, lastResidual)
	require.Equal(t, res.Iterations, strings.Count(buf.String(), "wilson-burg iteration"))
}

func TestFactorPlanPool(t *testing.T) {
	pool := conv.NewPlanPool()
	defer pool.Close()

	want, err := Factor3(laplacianLags3(t), [][][]float64{{{0, 0, 0}, {-1, 6, -1}, {0, 0, 0}}}, 5, 1e-3)
	requireUsable(t, want, err)

	got, err := Factor3(laplacianLags3(t), [][][]float64{{{0, 0, 0}, {-1, 6, -1}, {0, 0, 0}}}, 5, 1e-3,
		WithPlanPool(pool))
	requireUsable(t, got, err)

	require.Equal(t, want.Coefficients, got.Coefficients)
	require.InDelta(t, want.Residual, got.Residual, 1e-12)
}

func TestFactorCanceled(t *testing.T) {
	fz, err := NewFactorizer(fomelLags(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = fz.Factor1(ctx, fomelR, 10, 1e-6)
	require.ErrorIs(t, err, context.Canceled)
}

func TestOptionsInvalid(t *testing.T) {
	_, err := NewFactorizer(fomelLags(t), WithPadFactor(0))
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewFactorizer(nil)
	require.ErrorIs(t, err, ErrInvalidArgument)
}
