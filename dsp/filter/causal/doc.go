// Package causal provides sparse multidimensional causal filters over 1-D,
// 2-D and 3-D sampled arrays.
//
// A filter is described by a [LagSet], an ordered table of lag tuples
// (lag1, lag2, lag3) whose first entry is the zero lag, and a coefficient per
// lag. Arrays are indexed x[i3][i2][i1] with i1 the fastest dimension.
// Causality is lexicographic in (i3, i2, i1): every non-zero lag points
// strictly into the past, which lets the filter be inverted by recursion.
//
// Four operations are available for every rank:
//
//	apply:                 y[i] = sum_j a[j] x[i-L[j]]
//	apply transpose:       y[i] = sum_j a[j] x[i+L[j]]
//	apply inverse:         x[i] = (y[i] - sum_{j>0} a[j] x[i-L[j]]) / a[0]
//	apply inverse transpose: x[i] = (y[i] - sum_{j>0} a[j] x[i+L[j]]) / a[0]
//
// Samples outside the array are treated as zero. [Filter] holds fixed
// coefficients; [LocalFilter] asks a [CoefficientSource] for coefficients at
// every sample.
//
// Input and output may be the same storage. Operations that cannot run in
// place, and inputs that partially overlap their output, are copied to
// scratch before the sweep, so the result never depends on aliasing.
//
// Filters are immutable and safe for concurrent use as long as concurrent
// calls write disjoint outputs.
package causal
