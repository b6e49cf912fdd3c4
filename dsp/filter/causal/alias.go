package causal

import (
	"slices"
	"unsafe"

	"github.com/cwbudde/algo-helix/dsp/core"
)

type span struct{ lo, hi uintptr }

func rowSpans(x [][][]float64) []span {
	var spans []span
	for _, plane := range x {
		for _, row := range plane {
			if len(row) == 0 {
				continue
			}
			lo := uintptr(unsafe.Pointer(unsafe.SliceData(row)))
			spans = append(spans, span{lo: lo, hi: lo + uintptr(len(row))*unsafe.Sizeof(row[0])})
		}
	}
	return spans
}

// sameStorage reports whether every row of x is the very same memory as the
// corresponding row of y.
func sameStorage(x, y [][][]float64) bool {
	for i3 := range x {
		for i2 := range x[i3] {
			if len(x[i3][i2]) > 0 && unsafe.SliceData(x[i3][i2]) != unsafe.SliceData(y[i3][i2]) {
				return false
			}
		}
	}
	return true
}

// overlaps reports whether any row of x shares memory with any row of y.
func overlaps(x, y [][][]float64) bool {
	xs := rowSpans(x)
	if len(xs) == 0 {
		return false
	}
	slices.SortFunc(xs, func(a, b span) int {
		switch {
		case a.lo < b.lo:
			return -1
		case a.lo > b.lo:
			return 1
		default:
			return 0
		}
	})

	for _, s := range rowSpans(y) {
		// First x span ending after s starts.
		i, _ := slices.BinarySearchFunc(xs, s.lo, func(e span, lo uintptr) int {
			if e.hi <= lo {
				return -1
			}
			return 1
		})
		for ; i < len(xs) && xs[i].lo < s.hi; i++ {
			if xs[i].hi > s.lo {
				return true
			}
		}
	}
	return false
}

// prepareInput returns the array an operation should read from, and whether
// that array is disjoint from the output. The input is copied to scratch when
// it partially overlaps the output, or when it is the output and the operation
// cannot run in place.
func prepareInput(in, out [][][]float64, inPlaceSafe bool) (src [][][]float64, disjoint bool) {
	if !overlaps(in, out) {
		return in, true
	}
	if inPlaceSafe && sameStorage(in, out) {
		return in, false
	}
	return core.Copy3(in), true
}
