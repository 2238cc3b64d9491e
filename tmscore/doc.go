// Package tmscore holds the scoring side of the alignment engine: the
// immutable parameter bundle (d0, d0_search, score_d8, Lnorm and friends),
// the cutoff scoring kernel Σ 1/(1 + dᵢ²/d0²), the fast three-iteration
// score used to rank seed alignments, and the fragment score-search engine
// that extracts the rotation matrix maximizing the TM-score over a list of
// aligned residue pairs.
//
// Parameters are plain values constructed per phase — SearchParams for the
// seed/refinement phase, FinalParams per reported normalization length,
// ScaleParams for a user-supplied d0 — and never mutated, so concurrent
// runs cannot interfere.
//
// The search engine (Search) iterates up to six fragment lengths
// L, L/2, L/4, … floored at 4; at each start position it superposes the
// fragment with a Kabsch fit, scores all pairs under the resulting
// transform, then grows the superposed set by up to 20 rounds of
// select-within-d / refit / rescore. The best score seen and the transform
// that achieved it are returned.
//
// Complexity: Search is O(F·S·n) where F is the number of fragment
// lengths, S the number of start positions visited, and n the pair count;
// simplify_step trades S for fidelity (1 exhaustive, 40 fast).
package tmscore
