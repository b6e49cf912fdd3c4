// Package minphase provides minimum-phase causal filters.
//
// A minimum-phase filter is a causal filter whose inverse is also causal and
// stable, so that all four operations of [causal.Filter] are well behaved.
// Minimum-phase coefficients are usually obtained by Wilson-Burg
// factorization of an auto-correlation; see [Factor1], [Factor2] and
// [Factor3]. [New] trusts the caller that the given coefficients are minimum
// phase.
//
// [Indexed] applies one of several minimum-phase filters at every sample,
// chosen by an index map, for example one filter per dip or orientation bin.
package minphase
