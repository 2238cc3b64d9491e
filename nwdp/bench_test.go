package nwdp_test

import (
	"testing"

	"github.com/katalvlaran/tmalign/geom"
	"github.com/katalvlaran/tmalign/nwdp"
)

// BenchmarkAlignTransform measures the transform-form DP on 300-residue
// chains, the dominant inner loop of the refinement schedule.
func BenchmarkAlignTransform(b *testing.B) {
	const n = 300
	pts := make([]geom.Vec3, n)
	for i := range pts {
		pts[i] = geom.Vec3{3.8 * float64(i), float64(i % 7), float64(i % 11)}
	}
	ws := nwdp.NewWorkspace(n, n)
	y2x := make([]int, n)
	t := geom.Vec3{1, 2, 3}
	u := geom.Identity()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		nwdp.AlignTransform(ws, pts, pts, t, u, 25.0, -0.6, y2x)
	}
}

// BenchmarkAlignMatrix measures the matrix-form DP on the same size.
func BenchmarkAlignMatrix(b *testing.B) {
	const n = 300
	ws := nwdp.NewWorkspace(n, n)
	for i := 1; i <= n; i++ {
		for j := 1; j <= n; j++ {
			ws.Score[i][j] = 1.0 / float64(1+absDiff(i, j))
		}
	}
	y2x := make([]int, n)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		nwdp.AlignMatrix(ws, n, n, -1.0, y2x)
	}
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}

	return b - a
}
