// Package geom provides the small fixed-size linear-algebra primitives the
// alignment engine is built on: three-component vectors, 3×3 rotation
// matrices, squared Euclidean distance, and rigid-body transform
// application x' = t + u·x.
//
// Design goals:
//   - Zero allocation: Vec3 and Mat3 are value types; bulk application
//     writes into a caller-supplied destination slice.
//   - Determinism: plain float64 arithmetic, no SIMD-dependent ordering.
//
// Complexity: every operation is O(1) per point.
package geom
