package nwdp

import (
	"github.com/katalvlaran/tmalign/geom"
	"github.com/katalvlaran/tmalign/secstruct"
)

// AlignMatrix runs the DP against ws.Score, whose 1-based cell (i, j)
// scores pairing X[i−1] with Y[j−1], and writes the resulting y→x mapping
// into y2x (length ≥ ylen; gap positions receive −1).
//
// Contract: ws must be sized by NewWorkspace for at least (xlen, ylen).
func AlignMatrix(ws *Workspace, xlen, ylen int, gapOpen float64, y2x []int) {
	initBoundary(ws, xlen, ylen)

	for i := 1; i <= xlen; i++ {
		vi, vp := ws.Val[i], ws.Val[i-1]
		pi, pp := ws.Path[i], ws.Path[i-1]
		si := ws.Score[i]
		for j := 1; j <= ylen; j++ {
			fillCell(vi, vp, pi, pp, j, vp[j-1]+si[j], gapOpen)
		}
	}

	traceback(ws, xlen, ylen, gapOpen, y2x)
}

// AlignTransform runs the DP with on-demand scores
// 1/(1 + ‖(t + u·X[i]) − Y[j]‖²/d02) and writes the y→x mapping into y2x.
// d02 is the squared distance scale chosen by the caller (d0², or the
// widened (d0+1.5)² of the local-superposition seed).
func AlignTransform(ws *Workspace, x, y []geom.Vec3, t geom.Vec3, u geom.Mat3, d02, gapOpen float64, y2x []int) {
	xlen, ylen := len(x), len(y)
	initBoundary(ws, xlen, ylen)

	for i := 1; i <= xlen; i++ {
		xi := geom.Apply(t, u, x[i-1])
		vi, vp := ws.Val[i], ws.Val[i-1]
		pi, pp := ws.Path[i], ws.Path[i-1]
		for j := 1; j <= ylen; j++ {
			d := vp[j-1] + 1.0/(1.0+geom.Dist2(xi, y[j-1])/d02)
			fillCell(vi, vp, pi, pp, j, d, gapOpen)
		}
	}

	traceback(ws, xlen, ylen, gapOpen, y2x)
}

// AlignLabels runs the DP with score 1 where the two label sequences
// agree and 0 where they differ, writing the y→x mapping into y2x.
func AlignLabels(ws *Workspace, secx, secy []secstruct.Label, gapOpen float64, y2x []int) {
	xlen, ylen := len(secx), len(secy)
	initBoundary(ws, xlen, ylen)

	for i := 1; i <= xlen; i++ {
		vi, vp := ws.Val[i], ws.Val[i-1]
		pi, pp := ws.Path[i], ws.Path[i-1]
		for j := 1; j <= ylen; j++ {
			d := vp[j-1]
			if secx[i-1] == secy[j-1] {
				d++
			}
			fillCell(vi, vp, pi, pp, j, d, gapOpen)
		}
	}

	traceback(ws, xlen, ylen, gapOpen, y2x)
}

// initBoundary zeroes the first row and column: terminal gaps are free.
func initBoundary(ws *Workspace, xlen, ylen int) {
	for i := 0; i <= xlen; i++ {
		ws.Val[i][0] = 0
		ws.Path[i][0] = false
	}
	for j := 0; j <= ylen; j++ {
		ws.Val[0][j] = 0
		ws.Path[0][j] = false
	}
}

// fillCell resolves one recurrence cell. d is the diagonal candidate
// (predecessor value plus pair score); the two gap candidates charge
// gapOpen only when their predecessor was a match. The diagonal wins ties.
func fillCell(vi, vp []float64, pi, pp []bool, j int, d, gapOpen float64) {
	h := vp[j]
	if pp[j] {
		h += gapOpen
	}
	v := vi[j-1]
	if pi[j-1] {
		v += gapOpen
	}

	if d >= h && d >= v {
		pi[j] = true
		vi[j] = d
	} else {
		pi[j] = false
		if v >= h {
			vi[j] = v
		} else {
			vi[j] = h
		}
	}
}

// traceback walks the path matrix from (xlen, ylen) back to the boundary,
// recording matches into y2x. Unmatched y positions stay −1.
func traceback(ws *Workspace, xlen, ylen int, gapOpen float64, y2x []int) {
	for j := 0; j < ylen; j++ {
		y2x[j] = -1
	}

	i, j := xlen, ylen
	for i > 0 && j > 0 {
		if ws.Path[i][j] {
			y2x[j-1] = i - 1
			i--
			j--

			continue
		}

		h := ws.Val[i-1][j]
		if ws.Path[i-1][j] {
			h += gapOpen
		}
		v := ws.Val[i][j-1]
		if ws.Path[i][j-1] {
			v += gapOpen
		}
		if v >= h {
			j--
		} else {
			i--
		}
	}
}
