package secstruct

import (
	"math"

	"github.com/katalvlaran/tmalign/geom"
)

// Label is a per-residue secondary-structure class.
type Label int8

// The four classes. Numeric order is part of the on-disk and in-memory
// contract: label equality drives the secondary-structure seed alignment.
const (
	Coil Label = iota + 1
	Helix
	Turn
	Strand
)

// Canonical Cα–Cα distances (Å) of the five-residue window, for the pair
// set {13, 14, 15, 24, 25, 35}, and the tolerances admitted around them.
const (
	helixD13, helixD14, helixD15 = 5.45, 5.18, 6.37
	helixD24, helixD25, helixD35 = 5.45, 5.18, 5.45
	helixDelta                   = 2.1

	strandD13, strandD14, strandD15 = 6.1, 10.4, 13.0
	strandD24, strandD25, strandD35 = 6.1, 10.4, 6.1
	strandDelta                     = 1.42

	turnD15Max = 8.0
)

// Assign classifies every residue of the trace into sec, which must have
// length len(coords). Boundary residues (fewer than two neighbors on a
// side) are coil.
func Assign(coords []geom.Vec3, sec []Label) {
	n := len(coords)
	for i := 0; i < n; i++ {
		sec[i] = Coil
		if i-2 < 0 || i+2 >= n {
			continue
		}

		d13 := math.Sqrt(geom.Dist2(coords[i-2], coords[i]))
		d14 := math.Sqrt(geom.Dist2(coords[i-2], coords[i+1]))
		d15 := math.Sqrt(geom.Dist2(coords[i-2], coords[i+2]))
		d24 := math.Sqrt(geom.Dist2(coords[i-1], coords[i+1]))
		d25 := math.Sqrt(geom.Dist2(coords[i-1], coords[i+2]))
		d35 := math.Sqrt(geom.Dist2(coords[i], coords[i+2]))
		sec[i] = classify(d13, d14, d15, d24, d25, d35)
	}
}

// classify applies the window test: helix, then strand, then turn, else
// coil.
func classify(d13, d14, d15, d24, d25, d35 float64) Label {
	if math.Abs(d15-helixD15) < helixDelta &&
		math.Abs(d14-helixD14) < helixDelta &&
		math.Abs(d25-helixD25) < helixDelta &&
		math.Abs(d13-helixD13) < helixDelta &&
		math.Abs(d24-helixD24) < helixDelta &&
		math.Abs(d35-helixD35) < helixDelta {
		return Helix
	}

	if math.Abs(d15-strandD15) < strandDelta &&
		math.Abs(d14-strandD14) < strandDelta &&
		math.Abs(d25-strandD25) < strandDelta &&
		math.Abs(d13-strandD13) < strandDelta &&
		math.Abs(d24-strandD24) < strandDelta &&
		math.Abs(d35-strandD35) < strandDelta {
		return Strand
	}

	if d15 < turnD15Max {
		return Turn
	}

	return Coil
}

// Smooth cleans the label sequence in place with three passes, applied to
// helix and strand labels only:
//
//  1. isolated singleton suppression: --x-- becomes -----
//  2. isolated pair suppression:      --xx-- becomes ------
//  3. bridging:                       x-x becomes xxx
func Smooth(sec []Label) {
	n := len(sec)

	// 1) singleton: no same label within the ±2 window.
	for i := 2; i < n-2; i++ {
		if sec[i] != Helix && sec[i] != Strand {
			continue
		}
		j := sec[i]
		if sec[i-2] != j && sec[i-1] != j && sec[i+1] != j && sec[i+2] != j {
			sec[i] = Coil
		}
	}

	// 2) pair bounded by four non-matches on the outside.
	for _, j := range []Label{Helix, Strand} {
		for i := 0; i < n-5; i++ {
			if sec[i] != j && sec[i+1] != j &&
				sec[i+2] == j && sec[i+3] == j &&
				sec[i+4] != j && sec[i+5] != j {
				sec[i+2] = Coil
				sec[i+3] = Coil
			}
		}
	}

	// 3) bridge a single break between two same-label neighbors.
	for i := 0; i < n-2; i++ {
		if sec[i] == Helix && sec[i+1] != Helix && sec[i+2] == Helix {
			sec[i+1] = Helix
		} else if sec[i] == Strand && sec[i+1] != Strand && sec[i+2] == Strand {
			sec[i+1] = Strand
		}
	}
}
