package tmscore

import (
	"github.com/katalvlaran/tmalign/geom"
	"github.com/katalvlaran/tmalign/kabsch"
)

// FastScore evaluates the goodness of a y→x seed alignment with at most
// three superposition iterations: a Kabsch fit over all aligned pairs,
// then two refits restricted to the pairs within d0_search (then
// d0_search²+1) of their image, each threshold relaxed by +0.5 when fewer
// than 3 pairs survive. The returned value is the unnormalized score sum
// of the best iteration; it ranks seeds and is never reported.
func FastScore(x, y []geom.Vec3, y2x []int, p Params, buf *Buffers) float64 {
	// Extract aligned pairs.
	k := 0
	for j := range y2x {
		i := y2x[j]
		if i < 0 {
			continue
		}
		buf.R1[k] = x[i]
		buf.R2[k] = y[j]
		buf.XTM[k] = x[i]
		buf.YTM[k] = y[j]
		k++
	}
	if k == 0 {
		return 0
	}

	nAli := k
	t, u, _, err := kabsch.Superpose(buf.R1[:nAli], buf.R2[:nAli])
	if err != nil {
		return 0
	}

	d002 := p.D0Search * p.D0Search
	d02 := p.D0 * p.D0

	// First iteration: score all pairs under the full-set fit.
	var tmscore float64
	for k = 0; k < nAli; k++ {
		di := geom.Dist2(geom.Apply(t, u, buf.XTM[k]), buf.YTM[k])
		buf.Dis[k] = di
		tmscore += 1 / (1 + di/d02)
	}

	// Select pairs within d0_search², relaxing while fewer than 3 survive.
	j := selectWithin(buf, nAli, d002)

	tmscore1, tmscore2 := tmscore, tmscore
	if nAli != j {
		// Second iteration: refit on the selection, rescore all pairs.
		t, u, _, _ = kabsch.Superpose(buf.R1[:j], buf.R2[:j])
		tmscore1 = 0
		for k = 0; k < nAli; k++ {
			di := geom.Dist2(geom.Apply(t, u, buf.XTM[k]), buf.YTM[k])
			buf.Dis[k] = di
			tmscore1 += 1 / (1 + di/d02)
		}

		// Third iteration: reselect at the widened d0_search²+1, refit,
		// rescore.
		j = selectWithin(buf, nAli, d002+1)
		t, u, _, _ = kabsch.Superpose(buf.R1[:j], buf.R2[:j])
		tmscore2 = 0
		for k = 0; k < nAli; k++ {
			di := geom.Dist2(geom.Apply(t, u, buf.XTM[k]), buf.YTM[k])
			tmscore2 += 1 / (1 + di/d02)
		}
	}

	if tmscore1 >= tmscore {
		tmscore = tmscore1
	}
	if tmscore2 >= tmscore {
		tmscore = tmscore2
	}

	return tmscore
}

// selectWithin copies the pairs whose stored squared distance is at most
// threshold into the head of R1/R2 and returns their count, relaxing the
// threshold by +0.5 while fewer than 3 pairs qualify (and more than 3
// exist).
func selectWithin(buf *Buffers, nAli int, threshold float64) int {
	for {
		j := 0
		for k := 0; k < nAli; k++ {
			if buf.Dis[k] <= threshold {
				buf.R1[j] = buf.XTM[k]
				buf.R2[j] = buf.YTM[k]
				j++
			}
		}
		if j < 3 && nAli > 3 {
			threshold += 0.5

			continue
		}

		return j
	}
}
