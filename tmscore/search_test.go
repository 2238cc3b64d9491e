package tmscore_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/tmalign/geom"
	"github.com/katalvlaran/tmalign/tmscore"
)

// helix returns n points on an ideal α-helical trace.
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

// rotZ builds a rotation by angle (radians) about the z axis.
func rotZ(angle float64) geom.Mat3 {
	c, s := math.Cos(angle), math.Sin(angle)

	return geom.Mat3{{c, -s, 0}, {s, c, 0}, {0, 0, 1}}
}

// TestSearchParams_Derivation checks the search-phase parameter formulas.
func TestSearchParams_Derivation(t *testing.T) {
	p := tmscore.SearchParams(120, 100)

	assert.Equal(t, 100.0, p.Lnorm, "normalized by the shorter structure")
	d0raw := 1.24*math.Cbrt(100-15) - 1.8
	assert.InDelta(t, d0raw+0.8, p.D0, 1e-12, "search d0 is lifted by 0.8")
	assert.InDelta(t, 1.5*math.Pow(100, 0.3)+3.5, p.ScoreD8, 1e-12)
	assert.GreaterOrEqual(t, p.D0Search, 4.5)
	assert.LessOrEqual(t, p.D0Search, 8.0)

	short := tmscore.SearchParams(19, 25)
	assert.InDelta(t, 0.168+0.8, short.D0, 1e-12, "short chains use the fixed floor")
}

// TestFinalParams_Derivation checks the reporting-phase formulas and the
// 0.5 Å floor.
func TestFinalParams_Derivation(t *testing.T) {
	p := tmscore.FinalParams(100)
	assert.InDelta(t, 1.24*math.Cbrt(85)-1.8, p.D0, 1e-12)

	floor := tmscore.FinalParams(21)
	assert.Equal(t, 0.5, floor.D0)
	assert.Equal(t, 4.5, floor.D0Search, "tiny d0 clamps the search scale up")
}

// TestScaleParams_UsesUserD0 checks the user-d0 bundle.
func TestScaleParams_UsesUserD0(t *testing.T) {
	p := tmscore.ScaleParams(80, 6.0)
	assert.Equal(t, 6.0, p.D0)
	assert.Equal(t, 6.0, p.D0Search)
	assert.Equal(t, 80.0, p.Lnorm)
}

// TestFastScore_PerfectSeedBeatsShiftedSeed ranks the identity seed above
// an off-by-five threading of the same structure.
func TestFastScore_PerfectSeedBeatsShiftedSeed(t *testing.T) {
	x := helix(60)
	y := helix(60)
	p := tmscore.SearchParams(60, 60)
	buf := tmscore.NewBuffers(60, 60)

	ident := make([]int, 60)
	shifted := make([]int, 60)
	for j := range ident {
		ident[j] = j
		shifted[j] = -1
		if j+5 < 60 {
			shifted[j] = j + 5
		}
	}

	best := tmscore.FastScore(x, y, ident, p, buf)
	worse := tmscore.FastScore(x, y, shifted, p, buf)
	assert.Greater(t, best, worse, "the exact seed must outrank the shifted seed")
	assert.InDelta(t, 60.0, best, 1e-6, "exact superposition scores one per pair, unnormalized")
}

// TestFastScore_EmptyMap returns zero for an all-gap mapping.
func TestFastScore_EmptyMap(t *testing.T) {
	x := helix(10)
	y := helix(10)
	y2x := make([]int, 10)
	for j := range y2x {
		y2x[j] = -1
	}

	got := tmscore.FastScore(x, y, y2x, tmscore.SearchParams(10, 10), tmscore.NewBuffers(10, 10))
	assert.Zero(t, got)
}

// TestSearch_RecoversRigidMotion feeds pairs related by a known rigid
// motion: the engine must find a transform scoring 1.0 per pair and
// mapping X onto Y.
func TestSearch_RecoversRigidMotion(t *testing.T) {
	n := 50
	x := helix(n)
	y := make([]geom.Vec3, n)
	geom.ApplyAll(geom.Vec3{3, 1, -2}, rotZ(40*math.Pi/180), x, y, n)

	p := tmscore.SearchParams(n, n)
	buf := tmscore.NewBuffers(n, n)
	opt := tmscore.SearchOptions{
		SimplifyStep:  1,
		Sum:           tmscore.SumAll,
		LocalD0Search: p.D0Search,
	}

	score, tr, u := tmscore.Search(x, y, n, p, opt, buf)
	assert.InDelta(t, 1.0, score, 1e-9, "exactly superposable pairs score 1 per pair over Lnorm")
	assert.InDelta(t, 1.0, u.Det(), 1e-6, "rotation must stay proper")

	for i := 0; i < n; i++ {
		d := math.Sqrt(geom.Dist2(geom.Apply(tr, u, x[i]), y[i]))
		assert.InDelta(t, 0, d, 1e-6, "pair %d must land on its partner", i)
	}
}

// TestSearch_PerPairNormalization checks the standard variant divides by
// the pair count instead of Lnorm.
func TestSearch_PerPairNormalization(t *testing.T) {
	n := 30
	x := helix(n)
	p := tmscore.SearchParams(100, 100) // Lnorm deliberately ≠ n
	buf := tmscore.NewBuffers(100, 100)

	base := tmscore.SearchOptions{SimplifyStep: 1, Sum: tmscore.SumAll, LocalD0Search: p.D0Search}
	perPair := base
	perPair.PerPair = true

	byLnorm, _, _ := tmscore.Search(x, x, n, p, base, buf)
	byCount, _, _ := tmscore.Search(x, x, n, p, perPair, buf)

	assert.InDelta(t, float64(n)/p.Lnorm, byLnorm, 1e-9)
	assert.InDelta(t, 1.0, byCount, 1e-9)
}

// TestSearch_SimplifyStepStillVisitsTail ensures the clamped stride
// visits the boundary fragment: a large stride must still find the
// rigid motion hidden in the tail half of the pair list.
func TestSearch_SimplifyStepStillVisitsTail(t *testing.T) {
	n := 50
	x := helix(n)
	y := make([]geom.Vec3, n)
	// Tail half follows a rigid motion of x; head half is scattered far away.
	geom.ApplyAll(geom.Vec3{}, rotZ(25*math.Pi/180), x, y, n)
	for i := 0; i < n/2; i++ {
		y[i] = geom.Vec3{500 + 40*float64(i), -300, 90 * float64(i%5)}
	}

	p := tmscore.SearchParams(n, n)
	buf := tmscore.NewBuffers(n, n)
	opt := tmscore.SearchOptions{
		SimplifyStep:  40,
		Sum:           tmscore.SumD8,
		LocalD0Search: p.D0Search,
	}

	score, tr, u := tmscore.Search(x, y, n, p, opt, buf)
	assert.Greater(t, score, float64(n/2-1)/p.Lnorm*0.9, "the rigid tail must dominate the score")

	// The transform must superpose the tail pairs.
	for i := n - 5; i < n; i++ {
		d := math.Sqrt(geom.Dist2(geom.Apply(tr, u, x[i]), y[i]))
		assert.Less(t, d, 0.5, "tail pair %d", i)
	}
}
