// Package wilsonburg factors a multidimensional auto-correlation into a
// minimum-phase causal filter with the Wilson-Burg iteration.
//
// Given a lag table L and an auto-correlation R with odd extents and its zero
// lag in the middle, the factorizer finds coefficients a on L such that the
// filter A cascaded with its transpose A' approximates R:
//
//	R(z) ~ A(z) A(1/z)
//
// Each iteration solves U(z) + U(1/z) = 1 + R(z) / (A(z) A(1/z)) with two
// recursive filter passes, keeps the causal half of U and updates A = U A.
// The auto-correlation is padded with zeros to limit truncation of the
// infinite response 1/A'. Iterations start from the minimum-phase filter
// sqrt(R(0)) and stop when no coefficient changes by more than
// epsilon*sqrt(R(0)).
//
// Factorization of a correlation that is not positive definite, or with a lag
// table that cannot represent its factor, may fail to converge. In that case
// the last iterate is returned together with [ErrDidNotConverge]. For an
// indefinite correlation the iterates grow without bound while staying
// finite, so the error is ErrDidNotConverge rather than [ErrDiverged]; check
// [Result.Residual] before using such coefficients.
package wilsonburg
