// Package kabsch computes the optimal rigid-body superposition of two
// paired point sets: the rotation u (orthonormal, det +1) and translation t
// minimizing Σ‖t + u·P[i] − Q[i]‖², together with the mean squared
// deviation of the superposed pairs.
//
// The cross-covariance matrix of the centered sets is diagonalized with a
// singular-value decomposition (gonum/mat); a sign correction on the
// smallest singular direction enforces a proper rotation even for
// degenerate (planar or colinear) inputs. Numerical pathologies are never
// surfaced: the kernel falls back to the identity rotation with a directly
// computed deviation, and the affected candidate simply loses on score.
//
// Complexity: O(n) to accumulate the covariance, O(1) for the 3×3
// decomposition.
package kabsch
