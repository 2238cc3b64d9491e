package kabsch_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tmalign/geom"
	"github.com/katalvlaran/tmalign/kabsch"
)

// assertProperRotation checks det(u) = +1 and uᵀu = I within 1e-6.
func assertProperRotation(t *testing.T, u geom.Mat3) {
	t.Helper()
	assert.InDelta(t, 1.0, u.Det(), 1e-6, "determinant must be +1")

	ut := u.Transposed()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += ut[i][k] * u[k][j]
			}
			want := 0.0
			if i == j {
				want = 1.0
			}
			assert.InDelta(t, want, sum, 1e-6, "uᵀu[%d][%d]", i, j)
		}
	}
}

// rotZ builds a rotation by angle (radians) about the z axis.
func rotZ(angle float64) geom.Mat3 {
	c, s := math.Cos(angle), math.Sin(angle)

	return geom.Mat3{{c, -s, 0}, {s, c, 0}, {0, 0, 1}}
}

// helix returns n points on an ideal α-helical trace: 2.3 Å radius,
// 1.5 Å rise and 100° twist per residue.
func helix(n int) []geom.Vec3 {
	const (
		radius = 2.3
		rise   = 1.5
		twist  = 100.0 * math.Pi / 180.0
	)
	pts := make([]geom.Vec3, n)
	for i := range pts {
		a := twist * float64(i)
		pts[i] = geom.Vec3{radius * math.Cos(a), radius * math.Sin(a), rise * float64(i)}
	}

	return pts
}

// TestSuperpose_InputValidation covers the two sentinel errors.
func TestSuperpose_InputValidation(t *testing.T) {
	_, _, _, err := kabsch.Superpose(nil, nil)
	assert.ErrorIs(t, err, kabsch.ErrNoPoints, "empty sets must error")

	_, _, _, err = kabsch.Superpose(helix(3), helix(4))
	assert.ErrorIs(t, err, kabsch.ErrLengthMismatch, "length mismatch must error")
}

// TestSuperpose_Identity verifies a self-superposition: identity rotation,
// zero translation, zero deviation.
func TestSuperpose_Identity(t *testing.T) {
	p := helix(40)

	tr, u, msd, err := kabsch.Superpose(p, p)
	require.NoError(t, err)
	assert.InDelta(t, 0, msd, 1e-12, "self superposition has zero deviation")
	assertProperRotation(t, u)
	for k := 0; k < 3; k++ {
		assert.InDelta(t, 0, tr[k], 1e-9, "translation component %d", k)
		for j := 0; j < 3; j++ {
			want := 0.0
			if k == j {
				want = 1.0
			}
			assert.InDelta(t, want, u[k][j], 1e-9)
		}
	}
}

// TestSuperpose_PureRotation recovers a known 30° z-rotation plus shift.
func TestSuperpose_PureRotation(t *testing.T) {
	p := helix(60)
	r := rotZ(30 * math.Pi / 180)
	shift := geom.Vec3{4, -7, 2.5}

	q := make([]geom.Vec3, len(p))
	geom.ApplyAll(shift, r, p, q, len(p))

	tr, u, msd, err := kabsch.Superpose(p, q)
	require.NoError(t, err)
	assert.InDelta(t, 0, msd, 1e-12, "exact rigid motion leaves no deviation")
	assertProperRotation(t, u)

	// The recovered transform must reproduce q from p.
	for i := range p {
		got := geom.Apply(tr, u, p[i])
		assert.InDelta(t, 0, math.Sqrt(geom.Dist2(got, q[i])), 1e-6, "point %d", i)
	}
}

// TestSuperpose_SinglePoint falls back to identity rotation.
func TestSuperpose_SinglePoint(t *testing.T) {
	p := []geom.Vec3{{1, 2, 3}}
	q := []geom.Vec3{{4, 4, 4}}

	tr, u, msd, err := kabsch.Superpose(p, q)
	require.NoError(t, err)
	assert.Equal(t, geom.Identity(), u)
	assert.Equal(t, geom.Vec3{3, 2, 1}, tr)
	assert.Zero(t, msd)
}

// TestSuperpose_ColinearInput keeps the rotation proper on degenerate
// (perfectly colinear) point sets, where the covariance is rank-1.
func TestSuperpose_ColinearInput(t *testing.T) {
	n := 10
	p := make([]geom.Vec3, n)
	q := make([]geom.Vec3, n)
	for i := 0; i < n; i++ {
		p[i] = geom.Vec3{float64(i), 0, 0}
		q[i] = geom.Vec3{0, float64(i), 0} // same line, rotated 90°
	}

	tr, u, msd, err := kabsch.Superpose(p, q)
	require.NoError(t, err)
	assertProperRotation(t, u)
	assert.InDelta(t, 0, msd, 1e-9, "colinear sets superpose exactly")

	for i := range p {
		got := geom.Apply(tr, u, p[i])
		assert.InDelta(t, 0, math.Sqrt(geom.Dist2(got, q[i])), 1e-6)
	}
}

// TestSuperpose_MirroredInput must not return a reflection: the optimal
// proper rotation cannot superpose an enantiomer exactly, so the deviation
// is strictly positive while u stays right-handed.
func TestSuperpose_MirroredInput(t *testing.T) {
	p := helix(30)
	q := make([]geom.Vec3, len(p))
	for i, v := range p {
		q[i] = geom.Vec3{v[0], v[1], -v[2]} // mirror through the xy plane
	}

	_, u, msd, err := kabsch.Superpose(p, q)
	require.NoError(t, err)
	assertProperRotation(t, u)
	assert.Greater(t, msd, 0.1, "a mirror image cannot be superposed by a proper rotation")
}

// TestDeviation_MatchesSuperpose checks the deviation-only mode agrees
// with the full mode.
func TestDeviation_MatchesSuperpose(t *testing.T) {
	p := helix(25)
	q := make([]geom.Vec3, len(p))
	geom.ApplyAll(geom.Vec3{1, 2, 3}, rotZ(0.7), p, q, len(p))
	// Nudge one point so the deviation is nonzero.
	q[10][0] += 2.0

	_, _, msd, err := kabsch.Superpose(p, q)
	require.NoError(t, err)
	dev, err := kabsch.Deviation(p, q)
	require.NoError(t, err)
	assert.InDelta(t, msd, dev, 1e-12)
}
