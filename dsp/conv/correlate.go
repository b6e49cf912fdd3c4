package conv

// AutoCorrelate computes the auto-correlation of signal a, creating FFT plans
// for the call when needed. The result has length 2*len(a) - 1 and output
// index k corresponds to lag k - (len(a) - 1).
func AutoCorrelate(a []float64) ([]float64, error) {
	return CorrelateWith(nil, a, a)
}

// AutoCorrelateWith is AutoCorrelate with FFT plans drawn from pool.
func AutoCorrelateWith(pool *PlanPool, a []float64) ([]float64, error) {
	return CorrelateWith(pool, a, a)
}

// CorrelateWith computes the full cross-correlation of a and b with
// automatic algorithm selection. Plans come from pool, which may be nil.
// The result has length len(a) + len(b) - 1; output index k corresponds to
// lag k - (len(b) - 1).
func CorrelateWith(pool *PlanPool, a, b []float64) ([]float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, ErrEmptyInput
	}

	if min(len(a), len(b)) <= directThreshold {
		return CorrelateDirect(a, b)
	}

	return CorrelateFFT(pool, a, b)
}

// CorrelateDirect computes cross-correlation in the time domain, as
// convolution with the time-reversed second signal.
func CorrelateDirect(a, b []float64) ([]float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, ErrEmptyInput
	}

	return direct(a, reversed(b)), nil
}

// CorrelateFFT computes cross-correlation using FFT as
// IFFT(FFT(a) * conj(FFT(b))). Plans come from pool, which may be nil.
func CorrelateFFT(pool *PlanPool, a, b []float64) ([]float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, ErrEmptyInput
	}

	n := len(a)
	m := len(b)

	spec, plan, err := crossSpectrum(pool, a, b)
	if err != nil {
		return nil, err
	}
	defer pool.Put(plan)

	if err := plan.Inverse(spec, spec); err != nil {
		return nil, err
	}

	// The transform yields a circular correlation: non-negative lags sit at
	// the front and negative lags wrap around to the end.
	fftSize := plan.Len()
	result := make([]float64, n+m-1)
	for i := range n {
		result[m-1+i] = real(spec[i])
	}
	for i := range m - 1 {
		result[i] = real(spec[fftSize-m+1+i])
	}

	return result, nil
}

func reversed(x []float64) []float64 {
	out := make([]float64, len(x))
	for i := range x {
		out[i] = x[len(x)-1-i]
	}
	return out
}
