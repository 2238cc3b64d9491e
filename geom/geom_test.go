package geom_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/tmalign/geom"
	"github.com/stretchr/testify/assert"
)

// TestDist2_KnownValue verifies the squared distance of a 3-4-12 box
// diagonal.
func TestDist2_KnownValue(t *testing.T) {
	a := geom.Vec3{0, 0, 0}
	b := geom.Vec3{3, 4, 12}

	assert.Equal(t, 169.0, geom.Dist2(a, b), "3²+4²+12² must be 169")
}

// TestApply_IdentityIsTranslation verifies that the identity rotation
// reduces Apply to a pure translation.
func TestApply_IdentityIsTranslation(t *testing.T) {
	tr := geom.Vec3{1, -2, 3}
	x := geom.Vec3{5, 5, 5}

	got := geom.Apply(tr, geom.Identity(), x)
	assert.Equal(t, geom.Vec3{6, 3, 8}, got)
}

// TestApply_RotationAboutZ rotates the x unit vector by 90° about z.
func TestApply_RotationAboutZ(t *testing.T) {
	u := geom.Mat3{
		{0, -1, 0},
		{1, 0, 0},
		{0, 0, 1},
	}

	got := geom.Apply(geom.Vec3{}, u, geom.Vec3{1, 0, 0})
	assert.InDelta(t, 0, got[0], 1e-15)
	assert.InDelta(t, 1, got[1], 1e-15)
	assert.InDelta(t, 0, got[2], 1e-15)
}

// TestApplyAll_MatchesApply checks the bulk path against the scalar path.
func TestApplyAll_MatchesApply(t *testing.T) {
	tr := geom.Vec3{0.5, 0.25, -1}
	u := geom.Mat3{
		{0, 0, 1},
		{1, 0, 0},
		{0, 1, 0},
	}
	src := []geom.Vec3{{1, 2, 3}, {-4, 5, -6}, {7, -8, 9}}
	dst := make([]geom.Vec3, len(src))

	geom.ApplyAll(tr, u, src, dst, len(src))
	for i, s := range src {
		assert.Equal(t, geom.Apply(tr, u, s), dst[i], "point %d", i)
	}
}

// TestMat3_DetAndTranspose verifies determinant and transpose on a proper
// rotation: det = +1 and m·mᵀ = I.
func TestMat3_DetAndTranspose(t *testing.T) {
	c, s := math.Cos(0.3), math.Sin(0.3)
	u := geom.Mat3{
		{c, -s, 0},
		{s, c, 0},
		{0, 0, 1},
	}

	assert.InDelta(t, 1.0, u.Det(), 1e-12, "rotation determinant must be +1")

	ut := u.Transposed()
	// u·uᵀ must be the identity.
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += u[i][k] * ut[k][j]
			}
			want := 0.0
			if i == j {
				want = 1.0
			}
			assert.InDelta(t, want, sum, 1e-12)
		}
	}
}
