package align

import (
	"math"

	"github.com/katalvlaran/tmalign/geom"
	"github.com/katalvlaran/tmalign/kabsch"
	"github.com/katalvlaran/tmalign/nwdp"
	"github.com/katalvlaran/tmalign/tmscore"
)

// dpGapOpens is the gap-open schedule of the refinement loop; g1 and g2
// select a sub-range of it.
var dpGapOpens = [2]float64{-0.6, 0}

// scoreEps is the refinement early-exit tolerance.
const scoreEps = 1e-6

// dpIter alternates transform-form DP against the current transform with
// the fragment score-search refit, for each gap open in
// dpGapOpens[g1:g2] and up to iterationMax rounds. The best mapping seen
// is copied into best; the best score is returned.
//
// Re-alignment may worsen the score, so progress is tracked by the best
// seen across rounds, never the last; the loop exits early once two
// consecutive scores agree within 1e−6.
func (a *aligner) dpIter(t geom.Vec3, u geom.Mat3, best []int, g1, g2, iterationMax int, localD0 float64) float64 {
	ylen := a.y.Len()
	d02 := a.p.D0 * a.p.D0
	opt := tmscore.SearchOptions{
		SimplifyStep:  40,
		Sum:           tmscore.SumD8,
		LocalD0Search: localD0,
	}

	inv := a.ar.seedMap
	bestScore := -1.0
	old := 0.0
	for g := g1; g < g2; g++ {
		for it := 0; it < iterationMax; it++ {
			nwdp.AlignTransform(a.ar.ws, a.x.Coords, a.y.Coords, t, u, d02, dpGapOpens[g], inv)

			k := 0
			for j := 0; j < ylen; j++ {
				if i := inv[j]; i >= 0 {
					a.ar.buf.XTM[k] = a.x.Coords[i]
					a.ar.buf.YTM[k] = a.y.Coords[j]
					k++
				}
			}

			var score float64
			score, t, u = tmscore.Search(a.ar.buf.XTM, a.ar.buf.YTM, k, a.p, opt, a.ar.buf)
			if score > bestScore {
				bestScore = score
				copy(best, inv)
			}

			if it > 0 && math.Abs(old-score) < scoreEps {
				break
			}
			old = score
		}
	}

	return bestScore
}

// detailedSearch extracts the aligned pairs of y2x and runs the score
// search over them, returning the score, the transform, and the pair
// count.
func (a *aligner) detailedSearch(y2x []int, opt tmscore.SearchOptions) (score float64, t geom.Vec3, u geom.Mat3, n int) {
	k := 0
	for j := 0; j < a.y.Len(); j++ {
		if i := y2x[j]; i >= 0 {
			a.ar.buf.XTM[k] = a.x.Coords[i]
			a.ar.buf.YTM[k] = a.y.Coords[j]
			k++
		}
	}

	score, t, u = tmscore.Search(a.ar.buf.XTM, a.ar.buf.YTM, k, a.p, opt, a.ar.buf)

	return score, t, u, k
}

// detailedSearchStandard is the per-pair-normalized variant used for
// user-supplied seeds; with normalize set the score is rescaled to the
// Lnorm denominator so it stays comparable with the other candidates.
func (a *aligner) detailedSearchStandard(y2x []int, opt tmscore.SearchOptions, normalize bool) (float64, geom.Vec3, geom.Mat3) {
	opt.PerPair = true
	score, t, u, n := a.detailedSearch(y2x, opt)
	if normalize {
		score = score * float64(n) / a.p.Lnorm
	}

	return score, t, u
}

// standardTMscore evaluates a user-supplied seed the way the standalone
// TM-score program would: final-phase d0 for the Y length, the raw d0 as
// the local search scale, per-pair normalization rescaled by n/Lnorm. It
// also reports the aligned length and the RMSD of the seeded pairs.
func (a *aligner) standardTMscore(y2x []int) (tm float64, lAli int, rmsd float64) {
	ylen := a.y.Len()
	p := tmscore.FinalParams(float64(ylen))
	p.D0Search = p.D0

	k := 0
	for j := 0; j < ylen; j++ {
		if i := y2x[j]; i >= 0 {
			a.ar.buf.XTM[k] = a.x.Coords[i]
			a.ar.buf.YTM[k] = a.y.Coords[j]
			a.ar.buf.R1[k] = a.x.Coords[i]
			a.ar.buf.R2[k] = a.y.Coords[j]
			k++
		}
	}
	lAli = k
	if k == 0 {
		return 0, 0, 0
	}

	msd, err := kabsch.Deviation(a.ar.buf.R1[:k], a.ar.buf.R2[:k])
	if err == nil {
		rmsd = math.Sqrt(msd)
	}

	opt := tmscore.SearchOptions{
		SimplifyStep:  1,
		Sum:           tmscore.SumAll,
		PerPair:       true,
		LocalD0Search: p.D0,
	}
	tm, _, _ = tmscore.Search(a.ar.buf.XTM, a.ar.buf.YTM, k, p, opt, a.ar.buf)
	tm = tm * float64(k) / p.Lnorm

	return tm, lAli, rmsd
}
