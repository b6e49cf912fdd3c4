package causal

import "golang.org/x/sync/errgroup"

// partition splits the rows of an n2-by-n3 grid into at most parts slabs.
// Slabs run over i3 when there is more than one plane, otherwise over i2.
func partition(n2, n3, parts int) []slab {
	n, along3 := n3, true
	if n3 == 1 {
		n, along3 = n2, false
	}
	parts = min(parts, n)
	if parts <= 1 {
		return []slab{fullSlab(n2, n3)}
	}

	slabs := make([]slab, 0, parts)
	for p := range parts {
		lo := p * n / parts
		hi := (p + 1) * n / parts
		if along3 {
			slabs = append(slabs, slab{lo2: 0, hi2: n2, lo3: lo, hi3: hi})
		} else {
			slabs = append(slabs, slab{lo2: lo, hi2: hi, lo3: 0, hi3: n3})
		}
	}
	return slabs
}

// gatherParallel runs a gather sweep over slabs using up to workers
// goroutines. Input and output must be disjoint.
func gatherParallel(lags *LagSet, fixed []float64, src CoefficientSource, x, y [][][]float64, sign, workers int) error {
	slabs := partition(len(x[0]), len(x), workers)
	if len(slabs) == 1 {
		newKernel(lags, fixed, src).gather(x, y, sign, slabs[0])
		return nil
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for _, s := range slabs {
		g.Go(func() error {
			newKernel(lags, fixed, src).gather(x, y, sign, s)
			return nil
		})
	}
	return g.Wait()
}
