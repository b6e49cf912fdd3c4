package core

// Shape2 returns the extents of x as (n1, n2), where n1 is the row length.
// ok is false if the rows of x do not all have the same length.
func Shape2(x [][]float64) (n1, n2 int, ok bool) {
	n2 = len(x)
	if n2 == 0 {
		return 0, 0, true
	}

	n1 = len(x[0])
	for _, row := range x[1:] {
		if len(row) != n1 {
			return 0, 0, false
		}
	}

	return n1, n2, true
}

// Shape3 returns the extents of x as (n1, n2, n3).
// ok is false if x is not rectangular.
func Shape3(x [][][]float64) (n1, n2, n3 int, ok bool) {
	n3 = len(x)
	if n3 == 0 {
		return 0, 0, 0, true
	}

	n1, n2, ok = Shape2(x[0])
	if !ok {
		return 0, 0, 0, false
	}

	for _, plane := range x[1:] {
		m1, m2, ok := Shape2(plane)
		if !ok || m2 != n2 || (m2 > 0 && m1 != n1) {
			return 0, 0, 0, false
		}
	}

	return n1, n2, n3, true
}

// Zeros3 allocates an n3-by-n2-by-n1 array backed by one contiguous slice.
func Zeros3(n1, n2, n3 int) [][][]float64 {
	data := make([]float64, n1*n2*n3)
	x := make([][][]float64, n3)
	for i3 := range x {
		x[i3] = make([][]float64, n2)
		for i2 := range x[i3] {
			off := (i3*n2 + i2) * n1
			x[i3][i2] = data[off : off+n1 : off+n1]
		}
	}
	return x
}

// Copy3 returns a deep copy of x with contiguous storage.
func Copy3(x [][][]float64) [][][]float64 {
	n1, n2, n3, _ := Shape3(x)
	y := Zeros3(n1, n2, n3)
	for i3 := range x {
		for i2 := range x[i3] {
			copy(y[i3][i2], x[i3][i2])
		}
	}
	return y
}
