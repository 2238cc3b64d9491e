package tmscore

import (
	"math"

	"github.com/katalvlaran/tmalign/geom"
)

// SumMethod selects which pairs contribute to the score sum.
type SumMethod int

const (
	// SumAll sums 1/(1+dᵢ²/d0²) over every aligned pair.
	SumAll SumMethod = 0

	// SumD8 restricts the sum to pairs with dᵢ ≤ score_d8. Used throughout
	// the search phase so remote outliers cannot steer the superposition.
	SumD8 SumMethod = 8
)

// Params is the immutable scoring parameter bundle. One value is built per
// phase; re-deriving for a different normalization length means building a
// new value, never mutating an old one.
type Params struct {
	D0       float64 // distance scale inside the TM-score formula
	D0Min    float64 // floor for D0
	D0Search float64 // local search scale, clamped to [4.5, 8.0]
	ScoreD8  float64 // distance cutoff of the SumD8 variant
	DCu0     float64 // consecutive-residue contact cutoff (fragment extraction)
	Lnorm    float64 // normalization length
}

// SearchParams derives the parameter bundle for the seed and refinement
// phase from the two structure lengths. The search d0 is deliberately
// looser than the final one: the raw length-scaled d0 is floored and then
// lifted by 0.8 Å so early superpositions tolerate imprecise alignments.
func SearchParams(xlen, ylen int) Params {
	lnorm := xlen
	if ylen < lnorm {
		lnorm = ylen
	}

	p := Params{DCu0: 4.25, Lnorm: float64(lnorm)}
	if lnorm <= 19 {
		p.D0 = 0.168
	} else {
		p.D0 = 1.24*math.Cbrt(float64(lnorm)-15) - 1.8
	}
	p.D0Min = p.D0 + 0.8
	p.D0 = p.D0Min
	p.D0Search = clampSearch(p.D0)
	p.ScoreD8 = 1.5*math.Pow(float64(lnorm), 0.3) + 3.5

	return p
}

// FinalParams derives the parameter bundle used to report a TM-score
// normalized by length lnorm: d0 = 1.24·(L−15)^⅓ − 1.8 for L > 21, else
// the 0.5 Å floor.
func FinalParams(lnorm float64) Params {
	p := Params{D0Min: 0.5, DCu0: 4.25, Lnorm: lnorm}
	if lnorm <= 21 {
		p.D0 = 0.5
	} else {
		p.D0 = 1.24*math.Cbrt(lnorm-15) - 1.8
	}
	if p.D0 < p.D0Min {
		p.D0 = p.D0Min
	}
	p.D0Search = clampSearch(p.D0)
	p.ScoreD8 = 1.5*math.Pow(lnorm, 0.3) + 3.5

	return p
}

// ScaleParams derives the bundle for a user-assigned d0 scale: the score
// formula and the local search both run at d0Scale, normalized by lnorm.
func ScaleParams(lnorm, d0Scale float64) Params {
	return Params{
		D0:       d0Scale,
		D0Min:    0.5,
		D0Search: clampSearch(d0Scale),
		ScoreD8:  1.5*math.Pow(lnorm, 0.3) + 3.5,
		DCu0:     4.25,
		Lnorm:    lnorm,
	}
}

// clampSearch bounds a search scale to [4.5, 8.0] Å.
func clampSearch(d float64) float64 {
	if d > 8 {
		return 8
	}
	if d < 4.5 {
		return 4.5
	}

	return d
}

// Buffers owns the scratch storage the scoring and search kernels reuse
// across the many internal calls of one alignment run. All slices are
// pre-sized: the pair buffers to min(|X|,|Y|), the transformed-X buffer to
// |X|.
type Buffers struct {
	R1, R2   []geom.Vec3 // Kabsch input pairs
	XTM, YTM []geom.Vec3 // aligned pair extraction
	XT       []geom.Vec3 // transformed X points
	IAli     []int       // selected pair indices
	KAli     []int       // previous selection, for convergence checks
	Dis      []float64   // per-pair squared distances (fast score)
}

// NewBuffers returns Buffers sized for structures of lengths xlen and
// ylen.
func NewBuffers(xlen, ylen int) *Buffers {
	minlen := xlen
	if ylen < minlen {
		minlen = ylen
	}

	return &Buffers{
		R1:   make([]geom.Vec3, minlen),
		R2:   make([]geom.Vec3, minlen),
		XTM:  make([]geom.Vec3, minlen),
		YTM:  make([]geom.Vec3, minlen),
		XT:   make([]geom.Vec3, xlen),
		IAli: make([]int, minlen),
		KAli: make([]int, minlen),
		Dis:  make([]float64, minlen),
	}
}

// SearchOptions configures one invocation of the score-search engine.
//
//	SimplifyStep  – stride of the fragment-start loop: 1 exhaustive, 40 fast.
//	Sum           – SumAll or SumD8.
//	PerPair       – normalize by the aligned pair count instead of Lnorm
//	                (the "standard TM-score" variant selected by
//	                user-supplied initial alignments).
//	LocalD0Search – the local search scale; selection runs at this ±1 Å.
type SearchOptions struct {
	SimplifyStep  int
	Sum           SumMethod
	PerPair       bool
	LocalD0Search float64
}
