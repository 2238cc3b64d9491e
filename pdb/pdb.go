package pdb

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/tmalign/align"
	"github.com/katalvlaran/tmalign/geom"
)

// Sentinel errors.
var (
	// ErrNoResidues indicates that a file contained no usable Cα records.
	ErrNoResidues = errors.New("pdb: no usable CA records")

	// ErrNoSequences indicates that an alignment file held fewer than two
	// sequences.
	ErrNoSequences = errors.New("pdb: alignment file must contain two sequences")
)

// TerMode selects where reading a coordinate file stops.
type TerMode int

const (
	// TerReadAll reads every model and chain.
	TerReadAll TerMode = iota

	// TerStopAtEnd stops at the first END record.
	TerStopAtEnd

	// TerStopAtModel stops at the first ENDMDL (or END) record.
	TerStopAtModel

	// TerStopAtChain stops at the first TER (or ENDMDL, or END) record.
	// This is the conventional single-chain behavior.
	TerStopAtChain
)

// ReadStructure parses the Cα trace of a coordinate file: one residue per
// " CA " ATOM record carrying a standard residue identity, taking the
// fixed-column name, identity, sequence number, and coordinates. Alternate
// locations other than blank or 'A' are skipped.
//
// Returns ErrNoResidues (wrapped with the file name) when nothing usable
// is found.
func ReadStructure(path string, ter TerMode) (*align.Structure, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pdb: open %s: %w", path, err)
	}
	defer f.Close()

	s := &align.Structure{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if stopAt(line, ter) {
			break
		}
		if len(line) < 54 || !strings.HasPrefix(line, "ATOM") {
			continue
		}
		if line[12:16] != " CA " {
			continue
		}
		if alt := line[16]; alt != ' ' && alt != 'A' {
			continue
		}

		code, ok := threeToOne[line[17:20]]
		if !ok {
			continue
		}

		resno, err := strconv.Atoi(strings.TrimSpace(line[22:26]))
		if err != nil {
			continue
		}
		x, err1 := strconv.ParseFloat(strings.TrimSpace(line[30:38]), 64)
		y, err2 := strconv.ParseFloat(strings.TrimSpace(line[38:46]), 64)
		z, err3 := strconv.ParseFloat(strings.TrimSpace(line[46:54]), 64)
		if err1 != nil || err2 != nil || err3 != nil {
			continue
		}

		s.Coords = append(s.Coords, geom.Vec3{x, y, z})
		s.Seq = append(s.Seq, code)
		s.ResNo = append(s.ResNo, resno)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("pdb: read %s: %w", path, err)
	}
	if len(s.Coords) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoResidues, path)
	}

	return s, nil
}

// stopAt reports whether line terminates reading under mode ter.
func stopAt(line string, ter TerMode) bool {
	isEnd := strings.HasPrefix(line, "END") && !strings.HasPrefix(line, "ENDMDL")
	isModel := strings.HasPrefix(line, "ENDMDL")
	isChain := strings.HasPrefix(line, "TER")

	switch ter {
	case TerStopAtEnd:
		return isEnd
	case TerStopAtModel:
		return isEnd || isModel
	case TerStopAtChain:
		return isEnd || isModel || isChain
	default:
		return false
	}
}

// ReadAlignmentFasta reads the first two sequences of a FASTA file; these
// are the gapped rows of a seed alignment.
func ReadAlignmentFasta(path string) (seqX, seqY string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", "", fmt.Errorf("pdb: open %s: %w", path, err)
	}
	defer f.Close()

	var seqs []strings.Builder
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ">") {
			seqs = append(seqs, strings.Builder{})

			continue
		}
		if len(seqs) > 0 {
			seqs[len(seqs)-1].WriteString(line)
		}
	}
	if err := scanner.Err(); err != nil {
		return "", "", fmt.Errorf("pdb: read %s: %w", path, err)
	}
	if len(seqs) < 2 {
		return "", "", fmt.Errorf("%w: %s", ErrNoSequences, path)
	}

	return seqs[0].String(), seqs[1].String(), nil
}
