// Package nwdp implements the Needleman–Wunsch dynamic program the
// alignment engine runs against its distance-derived score sources.
//
// The recurrence is a classic global alignment over (|X|+1)×(|Y|+1) cells
// with a single gap-open penalty and no extension penalty: a gap move is
// charged only when the predecessor cell was reached by a diagonal (match)
// move, and the boundary row and column are free, so gaps before the
// first matched pair cost nothing. Traceback marks matched cells and
// prefers the diagonal
// predecessor outright; between the two gap predecessors the vertical one
// wins ties. The result is a monotone, one-to-one y→x mapping with −1 for
// gap positions.
//
// Three score sources are supported:
//
//   - AlignMatrix    — a pre-filled score matrix, cells 1-based
//   - AlignTransform — scores 1/(1+d²/d0²) computed on demand from a
//     current rigid transform
//   - AlignLabels    — secondary-structure label equality (1 or 0)
//
// All variants fill a caller-owned Workspace; the package allocates
// nothing on the alignment path.
//
// Complexity: O(|X|·|Y|) time per call, workspace memory O(|X|·|Y|).
package nwdp
