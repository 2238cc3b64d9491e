// Package align is the alignment search engine: it discovers the residue
// correspondence between two Cα traces that maximizes the TM-score and
// returns the rigid transform realizing it.
//
// The driver (Align) runs a fixed schedule of five seed heuristics —
// gapless threading, secondary-structure alignment, local fragment
// superposition, secondary-structure-boosted rescoring of the running
// best, and fragment gapless threading — routes each through an iterated
// Needleman–Wunsch / Kabsch refinement loop, keeps the best-scoring
// candidate, then performs a final high-resolution score search and
// reports the TM-score under every requested length normalization.
//
// Determinism: seeds run in a fixed order and score ties keep the earlier
// candidate, so identical inputs produce bit-identical results.
//
// All scratch storage lives in a per-run arena; nothing is shared across
// runs, and concurrent Align calls are independent.
//
// Complexity: O(|X|·|Y|) memory for the DP matrices; time is dominated by
// the refinement schedule, roughly O(iterations·|X|·|Y|) plus the
// fragment searches.
package align
