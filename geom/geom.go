package geom

// Vec3 is a point or translation in three-dimensional space, indexed x=0,
// y=1, z=2.
type Vec3 [3]float64

// Mat3 is a 3×3 matrix in row-major order. Rotation matrices produced by
// the engine are orthonormal with determinant +1.
type Mat3 [3][3]float64

// Identity returns the 3×3 identity matrix.
func Identity() Mat3 {
	return Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// Dist2 returns the squared Euclidean distance between a and b.
// The engine compares squared distances against squared thresholds
// throughout; square roots are taken only at output boundaries.
func Dist2(a, b Vec3) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	dz := a[2] - b[2]

	return dx*dx + dy*dy + dz*dz
}

// Apply returns t + u·x, the rigid-body image of x.
func Apply(t Vec3, u Mat3, x Vec3) Vec3 {
	return Vec3{
		t[0] + u[0][0]*x[0] + u[0][1]*x[1] + u[0][2]*x[2],
		t[1] + u[1][0]*x[0] + u[1][1]*x[1] + u[1][2]*x[2],
		t[2] + u[2][0]*x[0] + u[2][1]*x[1] + u[2][2]*x[2],
	}
}

// ApplyAll writes t + u·src[i] into dst[i] for i in [0, n).
// dst must have length at least n; src and dst may not overlap.
func ApplyAll(t Vec3, u Mat3, src, dst []Vec3, n int) {
	for i := 0; i < n; i++ {
		dst[i] = Apply(t, u, src[i])
	}
}

// Det returns the determinant of m.
func (m Mat3) Det() float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// Transposed returns mᵀ.
func (m Mat3) Transposed() Mat3 {
	return Mat3{
		{m[0][0], m[1][0], m[2][0]},
		{m[0][1], m[1][1], m[2][1]},
		{m[0][2], m[1][2], m[2][2]},
	}
}
