package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-helix/dsp/filter/causal"
)

func TestRunFomel(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{
		"-lags1", "0,1,2,3",
		"-r", "24,242,867,1334,867,242,24",
		"-iter", "50",
		"-eps", "1e-10",
	}, &stdout, &stderr)
	require.NoError(t, err)

	out := stdout.String()
	require.Contains(t, out, "converged: true")
	for _, lag := range []string{"(0)", "(1)", "(2)", "(3)"} {
		require.Contains(t, out, lag)
	}
	require.Empty(t, stderr.String())
}

func TestRunLaplacian2Verbose(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{
		"-v",
		"-lags1", "0,1,-1,0",
		"-lags2", "0,0,1,1",
		"-n1", "3",
		"-r", "0,-0.999,0,-0.999,4,-0.999,0,-0.999,0",
	}, &stdout, &stderr)
	require.NoError(t, err)
	require.Contains(t, stdout.String(), "(-1,1)")
	require.Contains(t, stderr.String(), "wilson-burg iteration")
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"not causal", []string{"-lags1", "0,-1", "-r", "1,2,1"}, causal.ErrInvalidLagSet},
		{"even extent", []string{"-lags1", "0,1", "-r", "1,2"}, causal.ErrDimensionMismatch},
		{"zero lag", []string{"-lags1", "0,1", "-r", "1,0,1"}, causal.ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			err := run(context.Background(), tt.args, &stdout, &stderr)
			require.ErrorIs(t, err, tt.want)
		})
	}

	var stdout, stderr bytes.Buffer
	require.Error(t, run(context.Background(), []string{"-r", "1"}, &stdout, &stderr))
	require.True(t, strings.HasPrefix(stderr.String(), "Usage: wbfactor"))

	stderr.Reset()
	err := run(context.Background(), []string{"-lags1", "0,1", "-n1", "2", "-r", "1,2,3"}, &stdout, &stderr)
	require.ErrorContains(t, err, "do not fill rows")

	err = run(context.Background(), []string{"-lags1", "0,1", "-n2", "3", "-r", "1,2,1"}, &stdout, &stderr)
	require.ErrorContains(t, err, "-n2 requires -n1")

	err = run(context.Background(), []string{"-lags1", "0,x", "-r", "1"}, &stdout, &stderr)
	require.ErrorContains(t, err, "-lags1")
}

func TestReshape3(t *testing.T) {
	r, err := reshape3([]float64{1, 2, 3, 4, 5, 6, 7, 8}, 2, 2)
	require.NoError(t, err)
	require.Equal(t, [][][]float64{{{1, 2}, {3, 4}}, {{5, 6}, {7, 8}}}, r)

	_, err = reshape3([]float64{1, 2, 3}, 2, 2)
	require.Error(t, err)
}
