// Package conv provides the correlation routines behind the helix filter
// packages.
//
// Two strategies are offered:
//
//   - Direct correlation: O(N*M) time-domain computation, best for short inputs
//   - FFT correlation: zero-padded single-block transform, used for long inputs
//
// FFT plans are obtained from a [PlanPool]. A pool is an explicit service
// created by the caller and shared between calls; every function that takes a
// pool also accepts nil, in which case plans are created for the call and
// discarded afterwards.
//
// # Usage
//
//	acf, err := conv.AutoCorrelate(signal)          // Auto-selects best algorithm
//	corr, err := conv.CorrelateDirect(a, b)         // Force direct correlation
//
// With a shared pool:
//
//	pool := conv.NewPlanPool()
//	defer pool.Close()
//	acf, err := conv.AutoCorrelateWith(pool, signal)
//
// # Algorithm Selection
//
// [CorrelateWith] uses direct correlation when the shorter input has at most
// 64 samples and FFT correlation otherwise.
//
// # Lags
//
// Output index k of a correlation of a with b corresponds to lag
// k - (len(b) - 1), so the zero lag of an auto-correlation of n samples sits
// at index n - 1.
package conv
