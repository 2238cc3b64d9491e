package kabsch

import (
	"errors"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/tmalign/geom"
)

// Sentinel errors for input-shape validation.
var (
	// ErrNoPoints indicates that an empty point set was supplied.
	ErrNoPoints = errors.New("kabsch: point sets must be non-empty")

	// ErrLengthMismatch indicates that the two point sets differ in length.
	ErrLengthMismatch = errors.New("kabsch: point sets must have equal length")
)

// Superpose returns the translation t and proper rotation u minimizing
// Σ‖t + u·P[i] − Q[i]‖² over the n paired points, and the mean squared
// deviation Σ‖…‖²/n at the optimum.
//
// Contracts:
//   - len(p) == len(q) and both non-empty; violations return a sentinel.
//   - For n = 1 the rotation is the identity and the deviation is zero.
//   - The returned u always satisfies det(u) = +1 and uᵀu = I, including
//     for colinear or otherwise degenerate inputs.
func Superpose(p, q []geom.Vec3) (t geom.Vec3, u geom.Mat3, msd float64, err error) {
	if err = validate(p, q); err != nil {
		return geom.Vec3{}, geom.Identity(), 0, err
	}

	n := len(p)
	pc, qc := centroid(p), centroid(q)
	if n == 1 {
		return geom.Vec3{q[0][0] - p[0][0], q[0][1] - p[0][1], q[0][2] - p[0][2]},
			geom.Identity(), 0, nil
	}

	// Cross-covariance H[a][b] = Σ (P[i]−pc)[a]·(Q[i]−qc)[b], plus the
	// total centered norm e0 needed for the closed-form deviation.
	var h [3][3]float64
	var e0 float64
	for i := 0; i < n; i++ {
		dp := geom.Vec3{p[i][0] - pc[0], p[i][1] - pc[1], p[i][2] - pc[2]}
		dq := geom.Vec3{q[i][0] - qc[0], q[i][1] - qc[1], q[i][2] - qc[2]}
		for a := 0; a < 3; a++ {
			e0 += dp[a]*dp[a] + dq[a]*dq[a]
			for b := 0; b < 3; b++ {
				h[a][b] += dp[a] * dq[b]
			}
		}
	}

	rot, sigma, ok := properRotation(h)
	if !ok {
		// Numerical pathology: keep a valid transform and measure it directly.
		u = geom.Identity()
		t = geom.Vec3{qc[0] - pc[0], qc[1] - pc[1], qc[2] - pc[2]}

		return t, u, deviation(t, u, p, q), nil
	}

	u = rot
	t = geom.Vec3{
		qc[0] - (u[0][0]*pc[0] + u[0][1]*pc[1] + u[0][2]*pc[2]),
		qc[1] - (u[1][0]*pc[0] + u[1][1]*pc[1] + u[1][2]*pc[2]),
		qc[2] - (u[2][0]*pc[0] + u[2][1]*pc[1] + u[2][2]*pc[2]),
	}

	// E = Σ‖centered residual‖² = e0 − 2·(σ1 + σ2 ± σ3); clamp the tiny
	// negative values FP cancellation can produce.
	e := e0 - 2*sigma
	if e < 0 {
		e = 0
	}

	return t, u, e / float64(n), nil
}

// Deviation returns the mean squared deviation of the optimal superposition.
// It runs the full Superpose and discards the transform. It is the
// deviation-only mode of the kernel, used where only the final RMSD is
// reported.
func Deviation(p, q []geom.Vec3) (float64, error) {
	_, _, msd, err := Superpose(p, q)

	return msd, err
}

// validate checks the input-shape contract shared by both modes.
func validate(p, q []geom.Vec3) error {
	if len(p) == 0 || len(q) == 0 {
		return ErrNoPoints
	}
	if len(p) != len(q) {
		return ErrLengthMismatch
	}

	return nil
}

// centroid returns the arithmetic mean of the point set.
func centroid(v []geom.Vec3) geom.Vec3 {
	var c geom.Vec3
	for _, x := range v {
		c[0] += x[0]
		c[1] += x[1]
		c[2] += x[2]
	}
	inv := 1 / float64(len(v))
	c[0] *= inv
	c[1] *= inv
	c[2] *= inv

	return c
}

// properRotation decomposes the cross-covariance h with an SVD and builds
// the optimal proper rotation R = V·diag(1,1,d)·Uᵀ, where d = ±1 flips the
// smallest singular direction whenever the raw product would be a
// reflection. sigma is σ1 + σ2 + d·σ3, the trace term of the closed-form
// deviation. ok is false when the decomposition fails to converge.
func properRotation(h [3][3]float64) (r geom.Mat3, sigma float64, ok bool) {
	hm := mat.NewDense(3, 3, []float64{
		h[0][0], h[0][1], h[0][2],
		h[1][0], h[1][1], h[1][2],
		h[2][0], h[2][1], h[2][2],
	})

	var svd mat.SVD
	if ok = svd.Factorize(hm, mat.SVDFull); !ok {
		return geom.Identity(), 0, false
	}

	var um, vm mat.Dense
	svd.UTo(&um)
	svd.VTo(&vm)
	s := svd.Values(nil)

	d := 1.0
	if mat.Det(&um)*mat.Det(&vm) < 0 {
		d = -1
	}

	// R = V·diag(1,1,d)·Uᵀ, written out for the 3×3 case.
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = vm.At(i, 0)*um.At(j, 0) +
				vm.At(i, 1)*um.At(j, 1) +
				d*vm.At(i, 2)*um.At(j, 2)
		}
	}

	return r, s[0] + s[1] + d*s[2], true
}

// deviation measures Σ‖t + u·p − q‖²/n directly.
func deviation(t geom.Vec3, u geom.Mat3, p, q []geom.Vec3) float64 {
	var sum float64
	for i := range p {
		sum += geom.Dist2(geom.Apply(t, u, p[i]), q[i])
	}

	return sum / float64(len(p))
}
