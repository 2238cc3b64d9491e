// Package tmalign computes optimal structural superpositions between pairs
// of protein backbones and reports the length-normalized TM-score together
// with the rigid-body transform that realizes it.
//
// 🧬 What is tmalign?
//
//	A library-first reimplementation of the TM-align structural alignment
//	algorithm (Zhang & Skolnick, Nucl Acids Res 33, 2302-9, 2005):
//
//	  • Geometric kernels: Kabsch superposition, distance-based TM scoring
//	  • An alignment search engine: five seed heuristics, an iterated
//	    Needleman–Wunsch / Kabsch refinement loop, and a fragment
//	    score-search pass that extracts the best rotation matrix
//	  • A Cα-trace PDB reader and the classic three output formats
//
// Everything is organized under small focused subpackages:
//
//	geom/      — vectors, rotation matrices, rigid transforms
//	kabsch/    — optimal superposition of paired point sets
//	secstruct/ — geometric secondary-structure assignment + smoothing
//	nwdp/      — Needleman–Wunsch dynamic programming over score sources
//	tmscore/   — scoring parameters, cutoff scoring, the TM-score search
//	align/     — seed generators, refinement, and the alignment driver
//	pdb/       — Cα reading, superposed-coordinate and matrix writing
//	cmd/tmalign — the command-line front end
//
// The engine is deterministic: identical inputs produce bit-identical
// results, and candidate ties are broken in favor of the candidate found
// first in the fixed seed order.
//
//	go get github.com/katalvlaran/tmalign
package tmalign
