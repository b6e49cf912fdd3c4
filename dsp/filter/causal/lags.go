package causal

import (
	"fmt"
	"strings"
)

// LagSet is an immutable ordered table of causal lag tuples.
//
// Entry 0 is always the zero lag (0, 0, 0). For every other entry j the lag
// is strictly positive in lexicographic (lag3, lag2, lag1) order:
// lag3[j] >= 0; if lag3[j] == 0 then lag2[j] >= 0; if both are zero then
// lag1[j] > 0. Entries are distinct.
//
// A LagSet of rank r may filter arrays of rank r or higher. Lag components
// beyond the rank are zero.
type LagSet struct {
	rank int
	lag1 []int
	lag2 []int
	lag3 []int

	min, max [3]int
}

// NewLagSet1 returns a lag set for 1-D filters.
func NewLagSet1(lag1 []int) (*LagSet, error) {
	return newLagSet(1, lag1, make([]int, len(lag1)), make([]int, len(lag1)))
}

// NewLagSet2 returns a lag set for 2-D filters. lag1 and lag2 must have the
// same length.
func NewLagSet2(lag1, lag2 []int) (*LagSet, error) {
	if len(lag1) != len(lag2) {
		return nil, fmt.Errorf("%w: %d lag1 values, %d lag2 values", ErrInvalidLagSet, len(lag1), len(lag2))
	}
	return newLagSet(2, lag1, lag2, make([]int, len(lag1)))
}

// NewLagSet3 returns a lag set for 3-D filters. All slices must have the
// same length.
func NewLagSet3(lag1, lag2, lag3 []int) (*LagSet, error) {
	if len(lag1) != len(lag2) || len(lag1) != len(lag3) {
		return nil, fmt.Errorf("%w: %d lag1 values, %d lag2 values, %d lag3 values",
			ErrInvalidLagSet, len(lag1), len(lag2), len(lag3))
	}
	return newLagSet(3, lag1, lag2, lag3)
}

func newLagSet(rank int, lag1, lag2, lag3 []int) (*LagSet, error) {
	m := len(lag1)
	if m == 0 {
		return nil, fmt.Errorf("%w: no lags", ErrInvalidLagSet)
	}
	if lag1[0] != 0 || lag2[0] != 0 || lag3[0] != 0 {
		return nil, fmt.Errorf("%w: first lag is (%d,%d,%d), want (0,0,0)",
			ErrInvalidLagSet, lag1[0], lag2[0], lag3[0])
	}

	seen := make(map[[3]int]int, m)
	for j := range m {
		key := [3]int{lag1[j], lag2[j], lag3[j]}
		if prev, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: lags %d and %d are both (%d,%d,%d)",
				ErrInvalidLagSet, prev, j, key[0], key[1], key[2])
		}
		seen[key] = j

		if j > 0 && !isCausal(lag1[j], lag2[j], lag3[j]) {
			return nil, fmt.Errorf("%w: lag %d (%d,%d,%d) is not causal",
				ErrInvalidLagSet, j, lag1[j], lag2[j], lag3[j])
		}
	}

	ls := &LagSet{
		rank: rank,
		lag1: append([]int(nil), lag1...),
		lag2: append([]int(nil), lag2...),
		lag3: append([]int(nil), lag3...),
	}
	for d, lag := range [3][]int{ls.lag1, ls.lag2, ls.lag3} {
		ls.min[d], ls.max[d] = lag[0], lag[0]
		for _, l := range lag[1:] {
			ls.min[d] = min(ls.min[d], l)
			ls.max[d] = max(ls.max[d], l)
		}
	}

	return ls, nil
}

// isCausal reports whether a non-zero lag points strictly into the past.
func isCausal(l1, l2, l3 int) bool {
	switch {
	case l3 != 0:
		return l3 > 0
	case l2 != 0:
		return l2 > 0
	default:
		return l1 > 0
	}
}

// Rank returns the number of dimensions the lag set was built for.
func (ls *LagSet) Rank() int { return ls.rank }

// Len returns the number of lags, including the zero lag.
func (ls *LagSet) Len() int { return len(ls.lag1) }

// Lag returns lag tuple j.
func (ls *LagSet) Lag(j int) (l1, l2, l3 int) {
	return ls.lag1[j], ls.lag2[j], ls.lag3[j]
}

// Lag1 returns a copy of the lag1 column.
func (ls *LagSet) Lag1() []int { return append([]int(nil), ls.lag1...) }

// Lag2 returns a copy of the lag2 column. It is all zeros below rank 2.
func (ls *LagSet) Lag2() []int { return append([]int(nil), ls.lag2...) }

// Lag3 returns a copy of the lag3 column. It is all zeros below rank 3.
func (ls *LagSet) Lag3() []int { return append([]int(nil), ls.lag3...) }

// Min returns the smallest lag in dimension d (1, 2 or 3).
func (ls *LagSet) Min(d int) int { return ls.min[d-1] }

// Max returns the largest lag in dimension d (1, 2 or 3).
func (ls *LagSet) Max(d int) int { return ls.max[d-1] }

// String formats the lag tuples, e.g. "[(0,0) (1,0) (-1,1)]".
func (ls *LagSet) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for j := range ls.lag1 {
		if j > 0 {
			b.WriteByte(' ')
		}
		switch ls.rank {
		case 1:
			fmt.Fprintf(&b, "(%d)", ls.lag1[j])
		case 2:
			fmt.Fprintf(&b, "(%d,%d)", ls.lag1[j], ls.lag2[j])
		default:
			fmt.Fprintf(&b, "(%d,%d,%d)", ls.lag1[j], ls.lag2[j], ls.lag3[j])
		}
	}
	b.WriteByte(']')
	return b.String()
}
