package conv

import (
	"errors"

	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by correlation functions.
var (
	ErrEmptyInput  = errors.New("conv: empty input")
	ErrInvalidSize = errors.New("conv: invalid transform size")
	ErrPoolClosed  = errors.New("conv: plan pool closed")
)

// directThreshold is the shorter-input length up to which CorrelateWith
// stays in the time domain.
const directThreshold = 64

// direct performs time-domain linear convolution of a and b into a new slice
// of length len(a) + len(b) - 1.
func direct(a, b []float64) []float64 {
	dst := make([]float64, len(a)+len(b)-1)

	const blockThreshold = 4
	if len(b) >= blockThreshold {
		directBlock(dst, a, b)
	} else {
		directScalar(dst, a, b)
	}
	return dst
}

func directScalar(dst, a, b []float64) {
	for i, ai := range a {
		if ai == 0 {
			continue
		}
		for j, bj := range b {
			dst[i+j] += ai * bj
		}
	}
}

// directBlock scales the kernel by each input sample and accumulates the
// scaled copy with vecmath block kernels. Zero samples are skipped, which
// matters for the sparse helix-flattened filters this package serves.
func directBlock(dst, a, b []float64) {
	m := len(b)
	temp := make([]float64, m)

	for i, ai := range a {
		if ai == 0 {
			continue
		}
		vecmath.ScaleBlock(temp, b, ai)
		vecmath.AddBlockInPlace(dst[i:i+m], temp)
	}
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}

// isPowerOf2 returns true if n is a power of 2.
func isPowerOf2(n int) bool {
	return n > 0 && (n&(n-1)) == 0
}
