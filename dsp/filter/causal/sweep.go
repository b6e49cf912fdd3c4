package causal

// slab is a block of (i2, i3) rows swept by one kernel call.
type slab struct {
	lo2, hi2 int
	lo3, hi3 int
}

func fullSlab(n2, n3 int) slab { return slab{hi2: n2, hi3: n3} }

// kernel sweeps 3-D arrays. 1-D and 2-D arrays are passed as 3-D arrays
// with unit outer extents.
//
// Coefficients are either fixed or drawn from src at every sample. src must
// be a pure function of the indices; each kernel owns its scratch buffer.
type kernel struct {
	lags  *LagSet
	fixed []float64
	src   CoefficientSource
	buf   []float64
	rows  [][]float64
}

func newKernel(lags *LagSet, fixed []float64, src CoefficientSource) *kernel {
	k := &kernel{
		lags:  lags,
		fixed: fixed,
		src:   src,
		rows:  make([][]float64, lags.Len()),
	}
	if src != nil {
		k.buf = make([]float64, lags.Len())
	}
	return k
}

func (k *kernel) coefficients(i1, i2, i3 int) []float64 {
	if k.src == nil {
		return k.fixed
	}
	k.src.CoefficientsAt(i1, i2, i3, k.buf)
	return k.buf
}

// bindRows caches, for every lag j, the row of x holding sample
// (i2 - sign*lag2[j], i3 - sign*lag3[j]), or nil if it is outside x.
// from skips the leading lags.
func (k *kernel) bindRows(x [][][]float64, i2, i3, sign, from int) {
	n3 := len(x)
	n2 := len(x[0])
	for j := from; j < len(k.rows); j++ {
		k3 := i3 - sign*k.lags.lag3[j]
		k2 := i2 - sign*k.lags.lag2[j]
		if k3 < 0 || k3 >= n3 || k2 < 0 || k2 >= n2 {
			k.rows[j] = nil
			continue
		}
		k.rows[j] = x[k3][k2]
	}
}

// gather computes y[i] = sum_j a[j] x[i - sign*L[j]] over s.
// sign +1 sweeps descending, sign -1 ascending, so that x may be y.
func (k *kernel) gather(x, y [][][]float64, sign int, s slab) {
	n1 := len(x[0][0])
	lag1 := k.lags.lag1

	step := func(i2, i3 int) {
		k.bindRows(x, i2, i3, sign, 0)
		yrow := y[i3][i2]
		for c := range n1 {
			i1 := c
			if sign > 0 {
				i1 = n1 - 1 - c
			}
			a := k.coefficients(i1, i2, i3)
			var sum float64
			for j, row := range k.rows {
				if row == nil {
					continue
				}
				k1 := i1 - sign*lag1[j]
				if k1 < 0 || k1 >= n1 {
					continue
				}
				sum += a[j] * row[k1]
			}
			yrow[i1] = sum
		}
	}

	sweepRows(s, sign > 0, step)
}

// recurse solves x[i] = (y[i] - sum_{j>0} a[j] x[i - sign*L[j]]) / a[0].
// sign +1 sweeps ascending, sign -1 descending, so that y may be x.
func (k *kernel) recurse(y, x [][][]float64, sign int) {
	n1 := len(x[0][0])
	lag1 := k.lags.lag1

	step := func(i2, i3 int) {
		k.bindRows(x, i2, i3, sign, 1)
		xrow := x[i3][i2]
		yrow := y[i3][i2]
		for c := range n1 {
			i1 := c
			if sign < 0 {
				i1 = n1 - 1 - c
			}
			a := k.coefficients(i1, i2, i3)
			sum := yrow[i1]
			for j := 1; j < len(k.rows); j++ {
				row := k.rows[j]
				if row == nil {
					continue
				}
				k1 := i1 - sign*lag1[j]
				if k1 < 0 || k1 >= n1 {
					continue
				}
				sum -= a[j] * row[k1]
			}
			xrow[i1] = sum / a[0]
		}
	}

	sweepRows(fullSlab(len(x[0]), len(x)), sign < 0, step)
}

// scatter computes the adjoint of a gather with per-sample coefficients:
// every x[i] contributes a_i[j] x[i] to y[i - L[j]]. The sweep is ascending,
// so x may be y.
func (k *kernel) scatter(x, y [][][]float64) {
	n1 := len(x[0][0])
	lag1 := k.lags.lag1

	step := func(i2, i3 int) {
		k.bindRows(y, i2, i3, 1, 1)
		xrow := x[i3][i2]
		yrow := y[i3][i2]
		for i1 := range n1 {
			a := k.coefficients(i1, i2, i3)
			xi := xrow[i1]
			yrow[i1] = a[0] * xi
			for j := 1; j < len(k.rows); j++ {
				row := k.rows[j]
				if row == nil {
					continue
				}
				k1 := i1 - lag1[j]
				if k1 < 0 || k1 >= n1 {
					continue
				}
				row[k1] += a[j] * xi
			}
		}
	}

	sweepRows(fullSlab(len(x[0]), len(x)), false, step)
}

// scatterRecurse inverts scatter: x is zeroed, then swept descending with
// x[i] = (y[i] - x[i]) / a_i[0] and x[i - L[j]] += a_i[j] x[i].
// x must not share storage with y.
func (k *kernel) scatterRecurse(y, x [][][]float64) {
	n1 := len(x[0][0])
	lag1 := k.lags.lag1

	for _, plane := range x {
		for _, row := range plane {
			clear(row)
		}
	}

	step := func(i2, i3 int) {
		k.bindRows(x, i2, i3, 1, 1)
		xrow := x[i3][i2]
		yrow := y[i3][i2]
		for i1 := n1 - 1; i1 >= 0; i1-- {
			a := k.coefficients(i1, i2, i3)
			xi := (yrow[i1] - xrow[i1]) / a[0]
			xrow[i1] = xi
			for j := 1; j < len(k.rows); j++ {
				row := k.rows[j]
				if row == nil {
					continue
				}
				k1 := i1 - lag1[j]
				if k1 < 0 || k1 >= n1 {
					continue
				}
				row[k1] += a[j] * xi
			}
		}
	}

	sweepRows(fullSlab(len(x[0]), len(x)), true, step)
}

// sweepRows visits the (i2, i3) rows of s in lexicographic (i3, i2) order,
// or in reverse order if descending is set.
func sweepRows(s slab, descending bool, step func(i2, i3 int)) {
	if descending {
		for i3 := s.hi3 - 1; i3 >= s.lo3; i3-- {
			for i2 := s.hi2 - 1; i2 >= s.lo2; i2-- {
				step(i2, i3)
			}
		}
		return
	}
	for i3 := s.lo3; i3 < s.hi3; i3++ {
		for i2 := s.lo2; i2 < s.hi2; i2++ {
			step(i2, i3)
		}
	}
}
