package align

import (
	"github.com/katalvlaran/tmalign/geom"
	"github.com/katalvlaran/tmalign/nwdp"
	"github.com/katalvlaran/tmalign/secstruct"
	"github.com/katalvlaran/tmalign/tmscore"
)

// arena owns every piece of scratch storage one alignment run needs: the
// scoring buffers, the DP workspace, secondary-structure labels, map
// scratch, and the whole-chain transformed-X buffer. It is allocated once
// per run and released with it; algorithms receive views, never
// ownership.
type arena struct {
	buf *tmscore.Buffers
	ws  *nwdp.Workspace

	secx, secy []secstruct.Label

	seedMap []int // refinement-loop scratch mapping
	workMap []int // inner scratch of the local and fragment seeds
	ifr     []int // fragment index list of the fragment seed

	xt []geom.Vec3 // whole-chain transformed X
}

func newArena(xlen, ylen int) *arena {
	minlen := xlen
	if ylen < minlen {
		minlen = ylen
	}

	return &arena{
		buf:     tmscore.NewBuffers(xlen, ylen),
		ws:      nwdp.NewWorkspace(xlen, ylen),
		secx:    make([]secstruct.Label, xlen),
		secy:    make([]secstruct.Label, ylen),
		seedMap: make([]int, ylen),
		workMap: make([]int, ylen),
		ifr:     make([]int, minlen),
		xt:      make([]geom.Vec3, xlen),
	}
}
