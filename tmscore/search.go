package tmscore

import (
	"github.com/katalvlaran/tmalign/geom"
	"github.com/katalvlaran/tmalign/kabsch"
)

// search-engine iteration caps.
const (
	maxExtendRounds = 20 // iterative extension rounds per fragment start
	maxFragLengths  = 6  // fragment-length ladder: n, n/2, n/4, …
	minFragLength   = 4
)

// Search finds the rigid transform maximizing the TM-score over the
// aligned pairs (xtm[k], ytm[k]), k < n, and returns the best score with
// the transform that achieved it.
//
// For every fragment length of the ladder n, n/2, n/4, … (floored at 4)
// and every start position (stride opt.SimplifyStep, the final start
// clamped to the boundary so the tail is always visited), the fragment is
// superposed by a Kabsch fit and all n pairs are scored at
// d = local_d0_search − 1; the superposed set is then extended for up to
// 20 rounds — select pairs within d = local_d0_search + 1, refit, rescore —
// until the selected set repeats.
//
// The score is normalized by Lnorm, or by n when opt.PerPair is set (the
// standard-TM-score variant).
func Search(xtm, ytm []geom.Vec3, n int, p Params, opt SearchOptions, buf *Buffers) (best float64, t0 geom.Vec3, u0 geom.Mat3) {
	u0 = geom.Identity()
	if n == 0 {
		return 0, t0, u0
	}

	norm := p.Lnorm
	if opt.PerPair {
		norm = float64(n)
	}

	// Fragment-length ladder.
	lMin := minFragLength
	if n < lMin {
		lMin = n
	}
	var lIni [maxFragLengths]int
	nInit := 0
	for i := 0; i < maxFragLengths-1; i++ {
		nInit++
		lIni[i] = n / (1 << uint(i))
		if lIni[i] <= lMin {
			lIni[i] = lMin

			break
		}
		if i == maxFragLengths-2 {
			nInit++
			lIni[maxFragLengths-1] = lMin
		}
	}

	best = -1
	for iInit := 0; iInit < nInit; iInit++ {
		lFrag := lIni[iInit]
		iLMax := n - lFrag

		for i := 0; ; {
			// Superpose the fragment starting at i.
			for k := 0; k < lFrag; k++ {
				buf.R1[k] = xtm[i+k]
				buf.R2[k] = ytm[i+k]
			}
			t, u, _, err := kabsch.Superpose(buf.R1[:lFrag], buf.R2[:lFrag])
			if err == nil {
				geom.ApplyAll(t, u, xtm, buf.XT, n)

				d := opt.LocalD0Search - 1
				nCut, score := cutoffScore(buf.XT[:n], ytm, n, d, buf.IAli, p, opt.Sum, norm)
				if score > best {
					best = score
					t0, u0 = t, u
				}

				// Iterative extension of the superposed set.
				d = opt.LocalD0Search + 1
				for it := 0; it < maxExtendRounds; it++ {
					ka := 0
					for k := 0; k < nCut; k++ {
						m := buf.IAli[k]
						buf.R1[ka] = xtm[m]
						buf.R2[ka] = ytm[m]
						buf.KAli[ka] = m
						ka++
					}
					if ka == 0 {
						break
					}

					t, u, _, err = kabsch.Superpose(buf.R1[:ka], buf.R2[:ka])
					if err != nil {
						break
					}
					geom.ApplyAll(t, u, xtm, buf.XT, n)
					nCut, score = cutoffScore(buf.XT[:n], ytm, n, d, buf.IAli, p, opt.Sum, norm)
					if score > best {
						best = score
						t0, u0 = t, u
					}

					// Converged once the selected set repeats exactly.
					if nCut == ka {
						same := true
						for k := 0; k < nCut; k++ {
							if buf.IAli[k] != buf.KAli[k] {
								same = false

								break
							}
						}
						if same {
							break
						}
					}
				}
			}

			// Advance the fragment start, clamping the last step to the
			// boundary so the tail fragment is always evaluated.
			if i < iLMax {
				i += opt.SimplifyStep
				if i > iLMax {
					i = iLMax
				}
			} else {
				break
			}
		}
	}

	return best, t0, u0
}
