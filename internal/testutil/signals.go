package testutil

import "math/rand"

// DeterministicNoise generates uniform noise in [-amplitude, amplitude) with a
// fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Noise2 generates an n2-by-n1 array of deterministic noise.
func Noise2(seed int64, n1, n2 int) [][]float64 {
	flat := DeterministicNoise(seed, 1, n1*n2)
	out := make([][]float64, n2)
	for i2 := range out {
		out[i2] = flat[i2*n1 : (i2+1)*n1 : (i2+1)*n1]
	}
	return out
}

// Noise3 generates an n3-by-n2-by-n1 array of deterministic noise.
func Noise3(seed int64, n1, n2, n3 int) [][][]float64 {
	out := make([][][]float64, n3)
	for i3 := range out {
		out[i3] = Noise2(seed+int64(i3)*7919, n1, n2)
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// Impulse2 generates an n2-by-n1 array with a unit impulse at (j1, j2).
func Impulse2(n1, n2, j1, j2 int) [][]float64 {
	out := make([][]float64, n2)
	for i2 := range out {
		out[i2] = make([]float64, n1)
	}
	if j2 >= 0 && j2 < n2 && j1 >= 0 && j1 < n1 {
		out[j2][j1] = 1
	}
	return out
}

// Impulse3 generates an n3-by-n2-by-n1 array with a unit impulse at (j1, j2, j3).
func Impulse3(n1, n2, n3, j1, j2, j3 int) [][][]float64 {
	out := make([][][]float64, n3)
	for i3 := range out {
		if i3 == j3 {
			out[i3] = Impulse2(n1, n2, j1, j2)
		} else {
			out[i3] = Impulse2(n1, n2, -1, -1)
		}
	}
	return out
}
