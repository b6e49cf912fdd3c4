package core

import "math"

// IsFinite reports whether x is neither NaN nor an infinity.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// AllFinite reports whether every value in x is finite.
func AllFinite(x []float64) bool {
	for _, v := range x {
		if !IsFinite(v) {
			return false
		}
	}

	return true
}

// MaxAbsDiff returns max |a[i]-b[i]| over the common length of a and b.
func MaxAbsDiff(a, b []float64) float64 {
	n := min(len(a), len(b))

	var m float64
	for i := range n {
		if d := math.Abs(a[i] - b[i]); d > m {
			m = d
		}
	}

	return m
}
