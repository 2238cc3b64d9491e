package align

import (
	"math"

	"github.com/katalvlaran/tmalign/geom"
	"github.com/katalvlaran/tmalign/kabsch"
	"github.com/katalvlaran/tmalign/nwdp"
	"github.com/katalvlaran/tmalign/secstruct"
	"github.com/katalvlaran/tmalign/tmscore"
)

// Seed generators. Every generator writes a y→x mapping (−1 for gap) into
// its output slice; the driver evaluates each candidate with the detailed
// search engine and keeps the best.

// gaplessSeed slides X along Y at every constant offset keeping at least
// minAli overlapping residues, ranks each offset by the fast score, and
// writes the winning offset map into y2x. Fast mode strides offsets by 5.
func (a *aligner) gaplessSeed(y2x []int) {
	xlen, ylen := a.x.Len(), a.y.Len()
	minLen := xlen
	if ylen < minLen {
		minLen = ylen
	}

	minAli := minLen / 2
	if minAli <= 5 {
		minAli = 5
	}
	n1, n2 := -ylen+minAli, xlen-minAli

	step := 1
	if a.fast {
		step = 5
	}

	kBest := n1
	best := -1.0
	for k := n1; k <= n2; k += step {
		threadMap(y2x, ylen, xlen, k)
		sc := tmscore.FastScore(a.x.Coords, a.y.Coords, y2x, a.p, a.ar.buf)
		if sc >= best {
			best = sc
			kBest = k
		}
	}

	threadMap(y2x, ylen, xlen, kBest)
}

// threadMap fills the constant-offset mapping y[j] → j+k.
func threadMap(y2x []int, ylen, xlen, k int) {
	for j := 0; j < ylen; j++ {
		i := j + k
		if i >= 0 && i < xlen {
			y2x[j] = i
		} else {
			y2x[j] = -1
		}
	}
}

// ssSeed assigns and smooths secondary-structure labels for both
// structures (kept in the arena for the later boosted seed), then aligns
// the label strings by DP with gap open −1.
func (a *aligner) ssSeed(y2x []int) {
	secstruct.Assign(a.x.Coords, a.ar.secx)
	secstruct.Smooth(a.ar.secx)
	secstruct.Assign(a.y.Coords, a.ar.secy)
	secstruct.Smooth(a.ar.secy)

	nwdp.AlignLabels(a.ar.ws, a.ar.secx, a.ar.secy, -1.0, y2x)
}

// localSeed superposes fragment pairs at jump-spaced start positions, runs
// the transform-form DP under each local fit, and keeps the fast-score
// winner. Returns false when no attempt succeeded.
func (a *aligner) localSeed(y2x []int) bool {
	xlen, ylen := a.x.Len(), a.y.Len()

	d01 := a.p.D0 + 1.5
	if d01 < a.p.D0Min {
		d01 = a.p.D0Min
	}
	d02 := d01 * d01

	aL := xlen
	if ylen < aL {
		aL = ylen
	}

	jump1, jump2 := jumpFor(xlen), jumpFor(ylen)
	if a.fast {
		jump1 *= 5
		jump2 *= 5
	}

	nFrag := [2]int{20, 100}
	if nFrag[0] > aL/3 {
		nFrag[0] = aL / 3
	}
	if nFrag[1] > aL/2 {
		nFrag[1] = aL / 2
	}

	glMax := 0.0
	flag := false
	inv := a.ar.workMap
	for f := 0; f < 2; f++ {
		m1 := xlen - nFrag[f] + 1
		m2 := ylen - nFrag[f] + 1
		for i := 0; i < m1; i += jump1 {
			for j := 0; j < m2; j += jump2 {
				for k := 0; k < nFrag[f]; k++ {
					a.ar.buf.R1[k] = a.x.Coords[k+i]
					a.ar.buf.R2[k] = a.y.Coords[k+j]
				}

				t, u, _, err := kabsch.Superpose(a.ar.buf.R1[:nFrag[f]], a.ar.buf.R2[:nFrag[f]])
				if err != nil {
					continue
				}

				nwdp.AlignTransform(a.ar.ws, a.x.Coords, a.y.Coords, t, u, d02, 0, inv)
				gl := tmscore.FastScore(a.x.Coords, a.y.Coords, inv, a.p, a.ar.buf)
				if gl > glMax {
					glMax = gl
					copy(y2x, inv)
					flag = true
				}
			}
		}
	}

	return flag
}

// jumpFor picks the fragment-start stride for a chain of length l.
func jumpFor(l int) int {
	var j int
	switch {
	case l > 250:
		j = 45
	case l > 200:
		j = 35
	case l > 150:
		j = 25
	default:
		j = 15
	}
	if j > l/3 {
		j = l / 3
	}

	return j
}

// ssPlusSeed freezes the transform of the current best alignment into a
// score matrix 1/(1+d²/d0₁²), boosted by +0.5 where the secondary
// structure labels agree, and realigns by matrix-form DP with gap open −1.
// Labels must have been assigned by ssSeed earlier in the schedule.
func (a *aligner) ssPlusSeed(y2x0, y2x []int) {
	xlen, ylen := a.x.Len(), a.y.Len()

	d01 := a.p.D0 + 1.5
	if d01 < a.p.D0Min {
		d01 = a.p.D0Min
	}
	d02 := d01 * d01

	k := 0
	for j := 0; j < ylen; j++ {
		if i := y2x0[j]; i >= 0 {
			a.ar.buf.R1[k] = a.x.Coords[i]
			a.ar.buf.R2[k] = a.y.Coords[j]
			k++
		}
	}
	t, u, _, err := kabsch.Superpose(a.ar.buf.R1[:k], a.ar.buf.R2[:k])
	if err != nil {
		for j := range y2x[:ylen] {
			y2x[j] = -1
		}

		return
	}

	for ii := 0; ii < xlen; ii++ {
		xx := geom.Apply(t, u, a.x.Coords[ii])
		row := a.ar.ws.Score[ii+1]
		for jj := 0; jj < ylen; jj++ {
			v := 1.0 / (1.0 + geom.Dist2(xx, a.y.Coords[jj])/d02)
			if a.ar.secx[ii] == a.ar.secy[jj] {
				v += 0.5
			}
			row[jj+1] = v
		}
	}

	nwdp.AlignMatrix(a.ar.ws, xlen, ylen, -1.0, y2x)
}

// fragmentSeed extracts the longest well-connected fragment of each
// structure and gapless-threads the shorter fragment against the other
// structure, ranking offsets by the fast score.
func (a *aligner) fragmentSeed(y2x []int) {
	xlen, ylen := a.x.Len(), a.y.Len()

	fraMin := 4
	if a.fast {
		fraMin = 8
	}
	fraMin1 := fraMin - 1

	xs, xe := findMaxFrag(a.x.Coords, a.x.ResNo, a.p.DCu0, fraMin)
	ys, ye := findMaxFrag(a.y.Coords, a.y.ResNo, a.p.DCu0, fraMin)
	lx, ly := xe-xs+1, ye-ys+1

	lFr := lx
	if ly < lFr {
		lFr = ly
	}
	ifr := a.ar.ifr[:lFr]

	// The shorter fragment (ties broken toward the shorter chain) is the
	// one that gets threaded.
	useX := lx < ly || (lx == ly && xlen <= ylen)
	if useX {
		for i := range ifr {
			ifr[i] = xs + i
		}
	} else {
		for i := range ifr {
			ifr[i] = ys + i
		}
	}

	// When the fragment covers the whole shorter chain this seed would
	// duplicate plain gapless threading; trim to the central 10–89% span.
	l0 := xlen
	if ylen < l0 {
		l0 = ylen
	}
	if lFr == l0 {
		n1 := int(float64(l0) * 0.1)
		n2 := int(float64(l0) * 0.89)
		j := 0
		for i := n1; i <= n2; i++ {
			ifr[j] = ifr[i]
			j++
		}
		lFr = j
		ifr = ifr[:lFr]
	}

	tmp := a.ar.workMap
	best := -1.0
	if useX {
		minLen := lFr
		if ylen < minLen {
			minLen = ylen
		}
		minAli := int(float64(minLen) / 2.5)
		if minAli <= fraMin1 {
			minAli = fraMin1
		}
		n1, n2 := -ylen+minAli, lFr-minAli

		step := 1
		if a.fast {
			step = 3
		}
		for k := n1; k <= n2; k += step {
			for j := 0; j < ylen; j++ {
				if i := j + k; i >= 0 && i < lFr {
					tmp[j] = ifr[i]
				} else {
					tmp[j] = -1
				}
			}
			if sc := tmscore.FastScore(a.x.Coords, a.y.Coords, tmp, a.p, a.ar.buf); sc >= best {
				best = sc
				copy(y2x, tmp)
			}
		}
	} else {
		minLen := xlen
		if lFr < minLen {
			minLen = lFr
		}
		minAli := int(float64(minLen) / 2.5)
		if minAli <= fraMin1 {
			minAli = fraMin1
		}
		n1, n2 := -lFr+minAli, xlen-minAli

		for k := n1; k <= n2; k++ {
			for j := 0; j < ylen; j++ {
				tmp[j] = -1
			}
			for j := 0; j < lFr; j++ {
				if i := j + k; i >= 0 && i < xlen {
					tmp[ifr[j]] = i
				}
			}
			if sc := tmscore.FastScore(a.x.Coords, a.y.Coords, tmp, a.p, a.ar.buf); sc >= best {
				best = sc
				copy(y2x, tmp)
			}
		}
	}
}

// findMaxFrag locates the longest run of consecutive residues whose
// Cα–Cα distance stays below the contact cutoff dcu0 and whose numbering
// is consecutive, relaxing the cutoff by ×1.1 per attempt until the run
// reaches min(len/3, fraMin) residues.
func findMaxFrag(coords []geom.Vec3, resno []int, dcu0 float64, fraMin int) (startMax, endMax int) {
	n := len(coords)
	rMin := n / 3
	if rMin > fraMin {
		rMin = fraMin
	}

	dcu0Cut := dcu0 * dcu0
	dcuCut := dcu0Cut

	lfrMax := 0
	for inc := 0; lfrMax < rMin; {
		lfrMax = 0
		j := 1
		start := 0
		for i := 1; i < n; i++ {
			d := geom.Dist2(coords[i-1], coords[i])
			ok := false
			if dcuCut > dcu0Cut {
				ok = d < dcuCut
			} else if resno[i] == resno[i-1]+1 {
				ok = d < dcuCut
			}

			if ok {
				j++
				if i == n-1 {
					if j > lfrMax {
						lfrMax = j
						startMax = start
						endMax = i
					}
					j = 1
				}
			} else {
				if j > lfrMax {
					lfrMax = j
					startMax = start
					endMax = i - 1
				}
				j = 1
				start = i
			}
		}

		if lfrMax < rMin {
			inc++
			dinc := math.Pow(1.1, float64(inc)) * dcu0
			dcuCut = dinc * dinc
		}
	}

	return startMax, endMax
}
