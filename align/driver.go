package align

import (
	"math"

	"github.com/katalvlaran/tmalign/geom"
	"github.com/katalvlaran/tmalign/kabsch"
	"github.com/katalvlaran/tmalign/tmscore"
)

// aligner bundles the inputs, parameter bundle, and arena of one run.
type aligner struct {
	x, y *Structure
	p    tmscore.Params
	ar   *arena
	fast bool
}

// refinement iteration counts.
const (
	longIter  = 30 // gapless / secondary-structure / user seeds
	shortIter = 2  // local-superposition and fragment seeds, and fast mode
)

// d0OutDefault is the output-block marker threshold in Å.
const d0OutDefault = 5.0

// Align computes the optimal superposition of x onto y and the TM-score
// under every requested normalization.
//
// The candidate schedule follows a fixed order — gapless threading,
// secondary structure, local superposition, secondary-structure-boosted
// rescoring, fragment threading, then an optional user seed — each
// evaluated by the simplified detailed search and refined by the DP/Kabsch
// loop when it comes close enough (within a length-dependent factor) to
// the running best. Ties keep the earlier candidate, making the run
// deterministic.
//
// Errors: ErrTooShort when min(|X|,|Y|) ≤ 5, ErrNoAlignment when no seed
// aligns a single position, ErrBadOption from Options.Validate.
func Align(x, y *Structure, opt Options) (*Result, error) {
	if err := opt.Validate(); err != nil {
		return nil, err
	}
	xlen, ylen := x.Len(), y.Len()
	minLen := xlen
	if ylen < minLen {
		minLen = ylen
	}
	if minLen <= 5 {
		return nil, ErrTooShort
	}

	a := &aligner{
		x:    x,
		y:    y,
		p:    tmscore.SearchParams(xlen, ylen),
		ar:   newArena(xlen, ylen),
		fast: opt.Fast,
	}

	searchOpt := tmscore.SearchOptions{
		SimplifyStep:  40,
		Sum:           tmscore.SumD8,
		LocalD0Search: a.p.D0Search,
	}

	// Refinement is admitted when a candidate reaches this fraction of the
	// running best; small normalization lengths admit almost everything.
	ddcc := 0.4
	if a.p.Lnorm <= 40 {
		ddcc = 0.1
	}

	iterMax := longIter
	if a.fast {
		iterMax = shortIter
	}

	invmap0 := make([]int, ylen) // running best mapping
	invmap := make([]int, ylen)  // current candidate
	for j := range invmap0 {
		invmap0[j] = -1
	}

	res := &Result{U: geom.Identity()}
	tmMax := -1.0
	var t geom.Vec3
	u := geom.Identity()

	keepBest := func(tm float64, cand []int) {
		if tm > tmMax {
			tmMax = tm
			copy(invmap0, cand)
		}
	}

	if opt.SeedStick {
		// Stick to the user alignment: evaluate it, skip every generator.
		sanitizeSeed(opt.Seed, xlen, ylen, invmap)
		res.SeedTM, res.SeedLAli, res.SeedRMSD = a.standardTMscore(invmap)
		tm, _, _ := a.detailedSearchStandard(invmap, searchOpt, true)
		keepBest(tm, invmap)
	} else {
		// Seed 1: gapless threading. Always refined.
		a.gaplessSeed(invmap0)
		tm, t1, u1, _ := a.detailedSearch(invmap0, searchOpt)
		if tm > tmMax {
			tmMax = tm
		}
		t, u = t1, u1
		keepBest(a.dpIter(t, u, invmap, 0, 2, iterMax, a.p.D0Search), invmap)

		// Seed 2: secondary-structure alignment.
		a.ssSeed(invmap)
		tm, t, u, _ = a.detailedSearch(invmap, searchOpt)
		keepBest(tm, invmap)
		if tm > tmMax*0.2 {
			keepBest(a.dpIter(t, u, invmap, 0, 2, iterMax, a.p.D0Search), invmap)
		}

		// Seed 3: local fragment superposition.
		if a.localSeed(invmap) {
			tm, t, u, _ = a.detailedSearch(invmap, searchOpt)
			keepBest(tm, invmap)
			if tm > tmMax*ddcc {
				keepBest(a.dpIter(t, u, invmap, 0, 2, shortIter, a.p.D0Search), invmap)
			}
		}

		// Seed 4: secondary structure boosted by the running best.
		a.ssPlusSeed(invmap0, invmap)
		tm, t, u, _ = a.detailedSearch(invmap, searchOpt)
		keepBest(tm, invmap)
		if tm > tmMax*ddcc {
			keepBest(a.dpIter(t, u, invmap, 0, 2, iterMax, a.p.D0Search), invmap)
		}

		// Seed 5: fragment gapless threading.
		a.fragmentSeed(invmap)
		tm, t, u, _ = a.detailedSearch(invmap, searchOpt)
		keepBest(tm, invmap)
		if tm > tmMax*ddcc {
			keepBest(a.dpIter(t, u, invmap, 1, 2, shortIter, a.p.D0Search), invmap)
		}

		// Seed 6: user-supplied alignment, still refined.
		if opt.Seed != nil {
			sanitizeSeed(opt.Seed, xlen, ylen, invmap)
			res.SeedTM, res.SeedLAli, res.SeedRMSD = a.standardTMscore(invmap)
			tm, t, u = a.detailedSearchStandard(invmap, searchOpt, true)
			keepBest(tm, invmap)
			keepBest(a.dpIter(t, u, invmap, 0, 2, iterMax, a.p.D0Search), invmap)
		}
	}

	// The mapping is frozen from here on.
	found := false
	for j := 0; j < ylen; j++ {
		if invmap0[j] >= 0 {
			found = true

			break
		}
	}
	if !found {
		return nil, ErrNoAlignment
	}

	// High-resolution pass extracting the working transform.
	finalOpt := searchOpt
	finalOpt.SimplifyStep = 1
	if a.fast {
		finalOpt.SimplifyStep = 40
	}
	_, t, u = a.detailedSearchStandard(invmap0, finalOpt, false)

	a.finish(res, invmap0, t, u, opt)

	return res, nil
}

// finish filters the frozen mapping by the d8 cutoff, computes the final
// RMSD and sequence identity, and rescores the retained pairs under every
// requested normalization.
func (a *aligner) finish(res *Result, invmap0 []int, t geom.Vec3, u geom.Mat3, opt Options) {
	xlen, ylen := a.x.Len(), a.y.Len()
	buf := a.ar.buf

	geom.ApplyAll(t, u, a.x.Coords, a.ar.xt, xlen)

	// Pairs beyond score_d8 after superposition are dropped from the
	// reported alignment (kept verbatim in stick mode).
	res.M1 = make([]int, 0, ylen)
	res.M2 = make([]int, 0, ylen)
	k := 0
	var identical int
	for j := 0; j < ylen; j++ {
		i := invmap0[j]
		if i < 0 {
			continue
		}
		res.NAli++
		d := math.Sqrt(geom.Dist2(a.ar.xt[i], a.y.Coords[j]))
		if d <= a.p.ScoreD8 || opt.SeedStick {
			res.M1 = append(res.M1, i)
			res.M2 = append(res.M2, j)
			buf.XTM[k] = a.x.Coords[i]
			buf.YTM[k] = a.y.Coords[j]
			buf.R1[k] = a.ar.xt[i]
			buf.R2[k] = a.y.Coords[j]
			if a.x.Seq[i] == a.y.Seq[j] {
				identical++
			}
			k++
		}
	}
	res.NAli8 = k
	res.Map = make([]int, ylen)
	copy(res.Map, invmap0)
	if k > 0 {
		res.SeqID = float64(identical) / float64(k)
		if msd, err := kabsch.Deviation(buf.R1[:k], buf.R2[:k]); err == nil {
			res.RMSD = math.Sqrt(msd)
		}
	}

	// Final scoring: exhaustive stride, all pairs contribute.
	finalOpt := tmscore.SearchOptions{SimplifyStep: 1, Sum: tmscore.SumAll}

	pY := tmscore.FinalParams(float64(ylen))
	res.D0Y = pY.D0
	finalOpt.LocalD0Search = pY.D0Search
	res.TMNormY, res.T, res.U = tmscore.Search(buf.XTM, buf.YTM, k, pY, finalOpt, buf)

	pX := tmscore.FinalParams(float64(xlen))
	res.D0X = pX.D0
	finalOpt.LocalD0Search = pX.D0Search
	res.TMNormX, _, _ = tmscore.Search(buf.XTM, buf.YTM, k, pX, finalOpt, buf)

	if opt.NormAvg {
		pAvg := tmscore.FinalParams(float64(xlen+ylen) / 2)
		res.D0Avg = pAvg.D0
		finalOpt.LocalD0Search = pAvg.D0Search
		res.TMAvg, res.T, res.U = tmscore.Search(buf.XTM, buf.YTM, k, pAvg, finalOpt, buf)
	}
	if opt.UserLnorm > 0 {
		pUser := tmscore.FinalParams(opt.UserLnorm)
		res.D0User = pUser.D0
		finalOpt.LocalD0Search = pUser.D0Search
		res.TMUser, res.T, res.U = tmscore.Search(buf.XTM, buf.YTM, k, pUser, finalOpt, buf)
	}
	res.D0Out = d0OutDefault
	if opt.D0Scale > 0 {
		pScale := tmscore.ScaleParams(float64(ylen), opt.D0Scale)
		res.D0Out = opt.D0Scale
		finalOpt.LocalD0Search = pScale.D0Search
		res.TMScaled, res.T, res.U = tmscore.Search(buf.XTM, buf.YTM, k, pScale, finalOpt, buf)
	}
}

// sanitizeSeed copies a user seed into dst, clamping out-of-range and
// order-violating entries to gap so the invariants (range, injectivity,
// monotonicity) hold by construction.
func sanitizeSeed(seed []int, xlen, ylen int, dst []int) {
	last := -1
	for j := 0; j < ylen; j++ {
		i := -1
		if j < len(seed) {
			i = seed[j]
		}
		if i < 0 || i >= xlen || i <= last {
			i = -1
		} else {
			last = i
		}
		dst[j] = i
	}
}

// MapFromGapped converts a pair of gapped sequences (the rows of a
// sequence alignment, '-' for gap) into the y→x mapping over structures
// of lengths xlen and ylen. Positions beyond either length are ignored.
func MapFromGapped(seqX, seqY string, xlen, ylen int) []int {
	y2x := make([]int, ylen)
	for j := range y2x {
		y2x[j] = -1
	}

	l := len(seqX)
	if len(seqY) < l {
		l = len(seqY)
	}

	i1, i2 := -1, -1
	for k := 0; k < l; k++ {
		if seqX[k] != '-' {
			i1++
		}
		if seqY[k] != '-' {
			i2++
			if i2 >= ylen || i1 >= xlen {
				break
			}
			if seqX[k] != '-' {
				y2x[i2] = i1
			}
		}
	}

	return y2x
}
