package conv

// crossSpectrum returns FFT(a)*conj(FFT(b)) at a power-of-2 size large
// enough for linear correlation. The plan is returned to the caller, who must
// Put it back.
func crossSpectrum(pool *PlanPool, a, b []float64) ([]complex128, *Plan, error) {
	fftSize := nextPowerOf2(len(a) + len(b) - 1)

	plan, err := pool.Get(fftSize)
	if err != nil {
		return nil, nil, err
	}

	aFreq := make([]complex128, fftSize)
	bFreq := make([]complex128, fftSize)
	for i, v := range a {
		aFreq[i] = complex(v, 0)
	}
	for i, v := range b {
		bFreq[i] = complex(v, 0)
	}

	if err := plan.Forward(aFreq, aFreq); err != nil {
		pool.Put(plan)
		return nil, nil, err
	}
	if err := plan.Forward(bFreq, bFreq); err != nil {
		pool.Put(plan)
		return nil, nil, err
	}

	for i, bv := range bFreq {
		aFreq[i] *= complex(real(bv), -imag(bv))
	}

	return aFreq, plan, nil
}
