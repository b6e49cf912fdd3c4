package causal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLagSetValid(t *testing.T) {
	ls := mustLags3(t, lag3D1, lag3D2, lag3D3)

	require.Equal(t, 3, ls.Rank())
	require.Equal(t, 16, ls.Len())
	require.Equal(t, -2, ls.Min(1))
	require.Equal(t, 2, ls.Max(1))
	require.Equal(t, -1, ls.Min(2))
	require.Equal(t, 1, ls.Max(2))
	require.Equal(t, 0, ls.Min(3))
	require.Equal(t, 1, ls.Max(3))

	l1, l2, l3 := ls.Lag(8)
	require.Equal(t, [3]int{-2, -1, 1}, [3]int{l1, l2, l3})
}

func TestNewLagSetInvalid(t *testing.T) {
	tests := []struct {
		name string
		lag1 []int
		lag2 []int
	}{
		{name: "empty", lag1: []int{}, lag2: []int{}},
		{name: "length mismatch", lag1: []int{0, 1}, lag2: []int{0}},
		{name: "nonzero first lag", lag1: []int{1, 2}, lag2: []int{0, 0}},
		{name: "duplicate", lag1: []int{0, 1, 1}, lag2: []int{0, 0, 0}},
		{name: "duplicate zero", lag1: []int{0, 0}, lag2: []int{0, 0}},
		{name: "negative lag1 in row zero", lag1: []int{0, -1}, lag2: []int{0, 0}},
		{name: "negative lag2", lag1: []int{0, 3}, lag2: []int{0, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLagSet2(tt.lag1, tt.lag2)
			require.ErrorIs(t, err, ErrInvalidLagSet)
			require.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestNewLagSet3Causality(t *testing.T) {
	_, err := NewLagSet3([]int{0, 0}, []int{0, 5}, []int{0, -1})
	require.ErrorIs(t, err, ErrInvalidLagSet)

	// A positive lag3 allows any lag1 and lag2.
	_, err = NewLagSet3([]int{0, -5}, []int{0, -5}, []int{0, 1})
	require.NoError(t, err)
}

func TestLagSetAccessorsCopy(t *testing.T) {
	src := []int{0, 1, 2}
	ls := mustLags1(t, src)
	src[1] = 7

	lag1 := ls.Lag1()
	lag1[2] = 9

	require.Equal(t, []int{0, 1, 2}, ls.Lag1())
	require.Equal(t, []int{0, 0, 0}, ls.Lag2())
	require.Equal(t, []int{0, 0, 0}, ls.Lag3())
}

func TestLagSetString(t *testing.T) {
	require.Equal(t, "[(0) (1) (2)]", mustLags1(t, lag1D).String())
	require.Equal(t, "[(0,0) (1,0) (-1,1)]", mustLags2(t, []int{0, 1, -1}, []int{0, 0, 1}).String())
}

func TestErrorTaxonomy(t *testing.T) {
	require.True(t, errors.Is(ErrInvalidLagSet, ErrInvalidArgument))
	require.False(t, errors.Is(ErrDimensionMismatch, ErrInvalidArgument))
	require.False(t, errors.Is(ErrSingularFilter, ErrInvalidArgument))
}
