package core

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}

// Zero2 sets all values of a 2-D array to 0.
func Zero2(x [][]float64) {
	for _, row := range x {
		Zero(row)
	}
}
