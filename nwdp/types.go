package nwdp

// Workspace holds the pre-sized DP matrices reused across alignment calls.
// All three are (xlen+1)×(ylen+1); Score is consulted only by the matrix
// form, with cell (i, j) scoring the pairing of X[i−1] with Y[j−1].
type Workspace struct {
	Val   [][]float64
	Path  [][]bool
	Score [][]float64
}

// NewWorkspace returns a Workspace sized for aligning structures of
// lengths xlen and ylen. The same workspace serves every DP call of one
// alignment run.
func NewWorkspace(xlen, ylen int) *Workspace {
	ws := &Workspace{
		Val:   make([][]float64, xlen+1),
		Path:  make([][]bool, xlen+1),
		Score: make([][]float64, xlen+1),
	}
	for i := 0; i <= xlen; i++ {
		ws.Val[i] = make([]float64, ylen+1)
		ws.Path[i] = make([]bool, ylen+1)
		ws.Score[i] = make([]float64, ylen+1)
	}

	return ws
}
