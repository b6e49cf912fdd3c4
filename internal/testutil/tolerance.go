package testutil

import (
	"fmt"
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		diff := math.Abs(got[i] - want[i])
		if diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireArray2NearlyEqual is RequireSliceNearlyEqual for x[i2][i1] arrays.
func RequireArray2NearlyEqual(t *testing.T, got, want [][]float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("n2 mismatch: got %d, want %d", len(got), len(want))
	}
	for i2 := range got {
		if len(got[i2]) != len(want[i2]) {
			t.Fatalf("row %d: n1 mismatch: got %d, want %d", i2, len(got[i2]), len(want[i2]))
		}
		for i1 := range got[i2] {
			diff := math.Abs(got[i2][i1] - want[i2][i1])
			if diff > eps {
				t.Fatalf("index [%d][%d]: got %v, want %v (diff %v > eps %v)",
					i2, i1, got[i2][i1], want[i2][i1], diff, eps)
			}
		}
	}
}

// RequireArray3NearlyEqual is RequireSliceNearlyEqual for x[i3][i2][i1] arrays.
func RequireArray3NearlyEqual(t *testing.T, got, want [][][]float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("n3 mismatch: got %d, want %d", len(got), len(want))
	}
	for i3 := range got {
		if len(got[i3]) != len(want[i3]) {
			t.Fatalf("plane %d: n2 mismatch: got %d, want %d", i3, len(got[i3]), len(want[i3]))
		}
		for i2 := range got[i3] {
			for i1 := range got[i3][i2] {
				diff := math.Abs(got[i3][i2][i1] - want[i3][i2][i1])
				if diff > eps {
					t.Fatalf("index [%d][%d][%d]: got %v, want %v (diff %v > eps %v)",
						i3, i2, i1, got[i3][i2][i1], want[i3][i2][i1], diff, eps)
				}
			}
		}
	}
}

// RequireRelativelyEqual fails t if |got-want| exceeds tol*scale.
// A zero scale falls back to an absolute comparison against tol.
func RequireRelativelyEqual(t *testing.T, name string, got, want, scale, tol float64) {
	t.Helper()
	if scale == 0 {
		scale = 1
	}
	if diff := math.Abs(got - want); diff > tol*math.Abs(scale) {
		t.Fatalf("%s: got %v, want %v (diff %v > %v)", name, got, want, diff, tol*math.Abs(scale))
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// MaxAbsDiff returns the maximum absolute difference between two slices.
// Returns an error if the slices differ in length.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	maxDiff := 0.0
	for i := range a {
		d := math.Abs(a[i] - b[i])
		if d > maxDiff {
			maxDiff = d
		}
	}
	return maxDiff, nil
}
