package testutil

import "github.com/cwbudde/algo-vecmath"

// Zeros2 allocates an n2-by-n1 array backed by one contiguous slice.
func Zeros2(n1, n2 int) [][]float64 {
	data := make([]float64, n1*n2)
	x := make([][]float64, n2)
	for i2 := range x {
		x[i2] = data[i2*n1 : (i2+1)*n1 : (i2+1)*n1]
	}
	return x
}

// Copy2 returns a deep copy of the rectangular array x.
func Copy2(x [][]float64) [][]float64 {
	n1 := 0
	if len(x) > 0 {
		n1 = len(x[0])
	}
	y := Zeros2(n1, len(x))
	for i2 := range x {
		copy(y[i2], x[i2])
	}
	return y
}

// Dot returns the dot product of a and b.
func Dot(a, b []float64) float64 {
	return vecmath.DotProduct(a, b)
}

// Dot2 returns the sum of products of two 2-D arrays of the same shape.
func Dot2(a, b [][]float64) float64 {
	var sum float64
	for i2 := range a {
		sum += vecmath.DotProduct(a[i2], b[i2])
	}
	return sum
}

// Dot3 returns the sum of products of two 3-D arrays of the same shape.
func Dot3(a, b [][][]float64) float64 {
	var sum float64
	for i3 := range a {
		sum += Dot2(a[i3], b[i3])
	}
	return sum
}
