package align

import (
	"errors"

	"github.com/katalvlaran/tmalign/geom"
)

// Sentinel errors surfaced by the driver.
var (
	// ErrTooShort indicates that one structure has 5 or fewer residues,
	// below the minimum the seed generators are defined for.
	ErrTooShort = errors.New("align: structure too short (5 residues or fewer)")

	// ErrNoAlignment indicates that no seed produced a single aligned
	// position between the two structures.
	ErrNoAlignment = errors.New("align: no alignment between the two structures")

	// ErrBadOption indicates an invalid Options combination.
	ErrBadOption = errors.New("align: invalid options")
)

// Structure is an ordered Cα trace: one coordinate, one-letter residue
// identity, and residue sequence number per residue. All three slices
// share one length, fixed after construction; the engine treats them as
// read-only.
type Structure struct {
	Coords []geom.Vec3
	Seq    []byte
	ResNo  []int
}

// Len returns the number of residues.
func (s *Structure) Len() int { return len(s.Coords) }

// Options configures one alignment run.
//
//	Fast       – widen seed strides and cut refinement to 2 iterations.
//	NormAvg    – additionally report the TM-score normalized by the average
//	             of the two lengths.
//	UserLnorm  – if > 0, additionally report the TM-score normalized by
//	             this length.
//	D0Scale    – if > 0, additionally report the TM-score computed with
//	             this user-assigned d0.
//	Seed       – optional initial y→x mapping (−1 for gap). Out-of-range or
//	             order-violating entries are clamped to gap.
//	SeedStick  – use Seed as the final alignment: skip every seed
//	             generator and refinement pass.
type Options struct {
	Fast      bool
	NormAvg   bool
	UserLnorm float64
	D0Scale   float64
	Seed      []int
	SeedStick bool
}

// DefaultOptions returns the zero-configuration run: full-resolution
// search, scores normalized by each chain length only.
func DefaultOptions() Options { return Options{} }

// Validate checks the option combination.
func (o *Options) Validate() error {
	if o.UserLnorm < 0 || o.D0Scale < 0 {
		return ErrBadOption
	}
	if o.SeedStick && o.Seed == nil {
		return ErrBadOption
	}

	return nil
}

// Result is the outcome of one alignment run.
type Result struct {
	// T and U realize the reported superposition as x' = T + U·x.
	T geom.Vec3
	U geom.Mat3

	// TM-scores under the requested normalizations. TMNormY and TMNormX
	// are always computed; the remaining three only when requested.
	TMNormY  float64 // normalized by |Y|
	TMNormX  float64 // normalized by |X|
	TMAvg    float64 // normalized by (|X|+|Y|)/2 (Options.NormAvg)
	TMUser   float64 // normalized by Options.UserLnorm
	TMScaled float64 // computed with d0 = Options.D0Scale

	// The d0 values behind each reported score, for output.
	D0Y, D0X, D0Avg, D0User float64
	D0Out                   float64 // marker threshold of the output block

	RMSD  float64 // over the d8-filtered aligned pairs
	NAli  int     // aligned pair count
	NAli8 int     // aligned pairs within score_d8 after superposition
	SeqID float64 // identical residues / NAli8

	// M1 and M2 list the X and Y residue indices of the d8-filtered pairs;
	// Map is the full final y→x mapping with −1 for gaps.
	M1, M2 []int
	Map    []int

	// Seed evaluation, present when Options.Seed was given.
	SeedTM   float64
	SeedLAli int
	SeedRMSD float64
}
