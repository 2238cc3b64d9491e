package pdb_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tmalign/geom"
	"github.com/katalvlaran/tmalign/pdb"
)

// atomLine renders one fixed-column CA record.
func atomLine(serial int, res string, resno int, x, y, z float64) string {
	return fmt.Sprintf("ATOM  %5d  CA  %s A%4d    %8.3f%8.3f%8.3f  1.00  0.00           C",
		serial, res, resno, x, y, z)
}

// writeTemp writes content to a fresh file under t.TempDir().
func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

// TestReadStructure_Basic parses residues, identities, numbering and
// coordinates from CA records, skipping non-CA atoms.
func TestReadStructure_Basic(t *testing.T) {
	content := strings.Join([]string{
		"HEADER    TEST",
		atomLine(1, "MET", 1, 1.0, 2.0, 3.0),
		"ATOM      2  CB  MET A   1       9.000   9.000   9.000  1.00  0.00           C",
		atomLine(3, "GLY", 2, 4.0, 5.0, 6.0),
		atomLine(4, "TRP", 7, 7.5, -8.25, 9.125),
		"END",
	}, "\n")
	path := writeTemp(t, "basic.pdb", content)

	s, err := pdb.ReadStructure(path, pdb.TerStopAtChain)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []byte("MGW"), s.Seq)
	assert.Equal(t, []int{1, 2, 7}, s.ResNo)
	assert.Equal(t, geom.Vec3{7.5, -8.25, 9.125}, s.Coords[2])
}

// TestReadStructure_NonStandardSkipped drops CA records with a
// non-standard residue identity.
func TestReadStructure_NonStandardSkipped(t *testing.T) {
	content := strings.Join([]string{
		atomLine(1, "ALA", 1, 0, 0, 0),
		atomLine(2, "MSE", 2, 1, 1, 1),
		atomLine(3, "VAL", 3, 2, 2, 2),
	}, "\n")
	path := writeTemp(t, "mod.pdb", content)

	s, err := pdb.ReadStructure(path, pdb.TerReadAll)
	require.NoError(t, err)
	assert.Equal(t, []byte("AV"), s.Seq)
}

// TestReadStructure_TerModes verifies the four termination behaviors on a
// two-chain, two-model file.
func TestReadStructure_TerModes(t *testing.T) {
	content := strings.Join([]string{
		atomLine(1, "ALA", 1, 0, 0, 0),
		atomLine(2, "GLY", 2, 1, 0, 0),
		"TER",
		atomLine(3, "LEU", 1, 2, 0, 0),
		"ENDMDL",
		atomLine(4, "SER", 1, 3, 0, 0),
		"END",
		atomLine(5, "LYS", 1, 4, 0, 0),
	}, "\n")
	path := writeTemp(t, "ter.pdb", content)

	cases := []struct {
		ter  pdb.TerMode
		want int
	}{
		{pdb.TerStopAtChain, 2},
		{pdb.TerStopAtModel, 3},
		{pdb.TerStopAtEnd, 4},
		{pdb.TerReadAll, 5},
	}
	for _, c := range cases {
		s, err := pdb.ReadStructure(path, c.ter)
		require.NoError(t, err)
		assert.Equal(t, c.want, s.Len(), "ter mode %d", c.ter)
	}
}

// TestReadStructure_NoResidues surfaces ErrNoResidues naming the file.
func TestReadStructure_NoResidues(t *testing.T) {
	path := writeTemp(t, "empty.pdb", "HEADER    NOTHING\nEND\n")

	_, err := pdb.ReadStructure(path, pdb.TerStopAtChain)
	assert.ErrorIs(t, err, pdb.ErrNoResidues)
	assert.Contains(t, err.Error(), "empty.pdb")
}

// TestOneLetter_Mapping covers standard and non-standard identities.
func TestOneLetter_Mapping(t *testing.T) {
	assert.Equal(t, byte('W'), pdb.OneLetter("TRP"))
	assert.Equal(t, byte('G'), pdb.OneLetter("GLY"))
	assert.Equal(t, byte('X'), pdb.OneLetter("MSE"))
	assert.Equal(t, byte('X'), pdb.OneLetter("???"))
}

// TestWriteSuperposed_TransformsCoordinates rewrites ATOM coordinates
// under a translation and leaves other records alone.
func TestWriteSuperposed_TransformsCoordinates(t *testing.T) {
	content := strings.Join([]string{
		"HEADER    TEST",
		atomLine(1, "ALA", 1, 1.0, 2.0, 3.0),
		"END",
	}, "\n")
	src := writeTemp(t, "in.pdb", content)
	dst := filepath.Join(t.TempDir(), "out.pdb")

	tr := geom.Vec3{10, 0, -1}
	require.NoError(t, pdb.WriteSuperposed(src, dst, tr, geom.Identity(), pdb.TerStopAtChain))

	s, err := pdb.ReadStructure(dst, pdb.TerStopAtChain)
	require.NoError(t, err)
	assert.Equal(t, geom.Vec3{11, 2, 2}, s.Coords[0])

	out, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Contains(t, string(out), "HEADER    TEST")
}

// TestWriteRotationMatrix_Layout checks the row-per-axis layout.
func TestWriteRotationMatrix_Layout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matrix.txt")
	u := geom.Identity()
	require.NoError(t, pdb.WriteRotationMatrix(path, geom.Vec3{1.5, 0, 0}, u))

	out, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(out)
	assert.Contains(t, text, "rotation matrix")
	assert.Contains(t, text, "0       1.5000000000   1.0000000000   0.0000000000   0.0000000000")
}

// TestReadAlignmentFasta_TwoSequences reads the two gapped rows.
func TestReadAlignmentFasta_TwoSequences(t *testing.T) {
	content := ">chain1\nAC-DE\nFG\n>chain2\nACXDE\n-G\n"
	path := writeTemp(t, "ali.fasta", content)

	a, b, err := pdb.ReadAlignmentFasta(path)
	require.NoError(t, err)
	assert.Equal(t, "AC-DEFG", a)
	assert.Equal(t, "ACXDE-G", b)
}

// TestReadAlignmentFasta_TooFew surfaces ErrNoSequences.
func TestReadAlignmentFasta_TooFew(t *testing.T) {
	path := writeTemp(t, "one.fasta", ">only\nACDE\n")

	_, _, err := pdb.ReadAlignmentFasta(path)
	assert.ErrorIs(t, err, pdb.ErrNoSequences)
}
