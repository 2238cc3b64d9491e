package tmscore

import "github.com/katalvlaran/tmalign/geom"

// cutoffScore scores the n point pairs (xa[i], ya[i]) and selects the
// indices whose squared distance falls below d². Selected indices are
// written into iAli (ordered, length ≥ n) and their count returned.
//
// The score sum is Σ 1/(1 + dᵢ²/d0²); under SumD8 only pairs with
// dᵢ ≤ score_d8 contribute. When fewer than 3 pairs survive the selection
// threshold and n > 3, the threshold is widened by 0.5 Å per pass and the
// pass repeated; the returned sum is the one computed on the final pass.
// The score_d8 cutoff is never widened — only the selection threshold
// relaxes. The returned sum is divided by norm.
//
// Invariant: the selection is non-empty on return whenever n ≥ 3.
func cutoffScore(xa, ya []geom.Vec3, n int, d float64, iAli []int, p Params, method SumMethod, norm float64) (nCut int, score1 float64) {
	dTmp := d * d
	d02 := p.D0 * p.D0
	d8cut := p.ScoreD8 * p.ScoreD8

	var scoreSum float64
	for inc := 0; ; inc++ {
		nCut = 0
		scoreSum = 0
		for i := 0; i < n; i++ {
			di := geom.Dist2(xa[i], ya[i])
			if di < dTmp {
				iAli[nCut] = i
				nCut++
			}
			if method == SumD8 {
				if di <= d8cut {
					scoreSum += 1 / (1 + di/d02)
				}
			} else {
				scoreSum += 1 / (1 + di/d02)
			}
		}

		// Not enough feasible pairs: relax the selection threshold.
		if nCut < 3 && n > 3 {
			dinc := d + float64(inc+1)*0.5
			dTmp = dinc * dinc

			continue
		}

		break
	}

	return nCut, scoreSum / norm
}
