package main

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/katalvlaran/tmalign/align"
	"github.com/katalvlaran/tmalign/geom"
)

// writeResult renders res in one of the three output formats.
func writeResult(w io.Writer, xname, yname string, x, y *align.Structure, res *align.Result, opts align.Options, outfmt int) {
	switch outfmt {
	case 1:
		writeFasta(w, xname, yname, x, y, res, opts)
	case 2:
		writeTabular(w, xname, yname, x, y, res)
	default:
		writeFull(w, xname, yname, x, y, res, opts)
	}
}

// alignmentStrings builds the three-row aligned-sequence block: the two
// gapped sequences and the marker row (':' for pairs closer than d0_out,
// '.' for other aligned pairs).
func alignmentStrings(x, y *align.Structure, res *align.Result) (seqxA, seqM, seqyA string) {
	xt := make([]geom.Vec3, x.Len())
	geom.ApplyAll(res.T, res.U, x.Coords, xt, x.Len())

	var bx, bm, by strings.Builder
	iOld, jOld := 0, 0
	for k := range res.M1 {
		for i := iOld; i < res.M1[k]; i++ {
			bx.WriteByte(x.Seq[i])
			by.WriteByte('-')
			bm.WriteByte(' ')
		}
		for j := jOld; j < res.M2[k]; j++ {
			bx.WriteByte('-')
			by.WriteByte(y.Seq[j])
			bm.WriteByte(' ')
		}

		bx.WriteByte(x.Seq[res.M1[k]])
		by.WriteByte(y.Seq[res.M2[k]])
		d := math.Sqrt(geom.Dist2(xt[res.M1[k]], y.Coords[res.M2[k]]))
		if d < res.D0Out {
			bm.WriteByte(':')
		} else {
			bm.WriteByte('.')
		}

		iOld = res.M1[k] + 1
		jOld = res.M2[k] + 1
	}
	for i := iOld; i < x.Len(); i++ {
		bx.WriteByte(x.Seq[i])
		by.WriteByte('-')
		bm.WriteByte(' ')
	}
	for j := jOld; j < y.Len(); j++ {
		bx.WriteByte('-')
		by.WriteByte(y.Seq[j])
		bm.WriteByte(' ')
	}

	return bx.String(), bm.String(), by.String()
}

// writeFull renders the classic human-readable report.
func writeFull(w io.Writer, xname, yname string, x, y *align.Structure, res *align.Result, opts align.Options) {
	fmt.Fprintln(w, " *****************************************************************")
	fmt.Fprintln(w, " * tmalign: protein structure alignment by TM-score             *")
	fmt.Fprintln(w, " * Reference: Y Zhang, J Skolnick, Nucl Acids Res 33, 2302-9    *")
	fmt.Fprintln(w, " *****************************************************************")

	fmt.Fprintf(w, "\nName of Chain_1: %s (to be superimposed onto Chain_2)\n", xname)
	fmt.Fprintf(w, "Name of Chain_2: %s\n", yname)
	fmt.Fprintf(w, "Length of Chain_1: %d residues\n", x.Len())
	fmt.Fprintf(w, "Length of Chain_2: %d residues\n\n", y.Len())

	if opts.Seed != nil {
		fmt.Fprintf(w, "User-specified initial alignment: TM/Lali/rmsd = %7.5f, %4d, %6.3f\n",
			res.SeedTM, res.SeedLAli, res.SeedRMSD)
	}

	fmt.Fprintf(w, "Aligned length= %d, RMSD= %6.2f, Seq_ID=n_identical/n_aligned= %4.3f\n",
		res.NAli8, res.RMSD, res.SeqID)
	fmt.Fprintf(w, "TM-score= %6.5f (if normalized by length of Chain_1, i.e., LN=%d, d0=%.2f)\n",
		res.TMNormX, x.Len(), res.D0X)
	fmt.Fprintf(w, "TM-score= %6.5f (if normalized by length of Chain_2, i.e., LN=%d, d0=%.2f)\n",
		res.TMNormY, y.Len(), res.D0Y)
	if opts.NormAvg {
		fmt.Fprintf(w, "TM-score= %6.5f (if normalized by average length of two structures, i.e., LN= %.2f, d0= %.2f)\n",
			res.TMAvg, float64(x.Len()+y.Len())/2, res.D0Avg)
	}
	if opts.UserLnorm > 0 {
		fmt.Fprintf(w, "TM-score= %6.5f (if normalized by user-specified LN=%.2f and d0=%.2f)\n",
			res.TMUser, opts.UserLnorm, res.D0User)
	}
	if opts.D0Scale > 0 {
		fmt.Fprintf(w, "TM-score= %6.5f (if scaled by user-specified d0= %.2f, and LN= %d)\n",
			res.TMScaled, opts.D0Scale, y.Len())
	}
	fmt.Fprintln(w, "(You should use TM-score normalized by length of the reference protein)")

	seqxA, seqM, seqyA := alignmentStrings(x, y, res)
	fmt.Fprintf(w, "\n(\":\" denotes residue pairs of d < %4.1f Angstrom, ", res.D0Out)
	fmt.Fprintln(w, "\".\" denotes other aligned residues)")
	fmt.Fprintln(w, seqxA)
	fmt.Fprintln(w, seqM)
	fmt.Fprintln(w, seqyA)
}

// writeFasta renders the two gapped sequences with per-chain score
// headers.
func writeFasta(w io.Writer, xname, yname string, x, y *align.Structure, res *align.Result, opts align.Options) {
	seqxA, _, seqyA := alignmentStrings(x, y, res)

	fmt.Fprintf(w, ">%s\tL=%d\td0=%.2f\tseqID=%.3f\tTM-score=%.5f\n",
		xname, x.Len(), res.D0X, res.SeqID, res.TMNormX)
	fmt.Fprintln(w, seqxA)
	fmt.Fprintf(w, ">%s\tL=%d\td0=%.2f\tseqID=%.3f\tTM-score=%.5f\n",
		yname, y.Len(), res.D0Y, res.SeqID, res.TMNormY)
	fmt.Fprintln(w, seqyA)
	fmt.Fprintf(w, "# Lali=%d\tRMSD=%.2f\tseqID_ali=%.3f\n", res.NAli8, res.RMSD, res.SeqID)
	if opts.Seed != nil {
		fmt.Fprintf(w, "# User-specified initial alignment: TM=%.5f\tLali=%4d\trmsd=%.3f\n",
			res.SeedTM, res.SeedLAli, res.SeedRMSD)
	}
	fmt.Fprintln(w, "$$$$")
}

// writeTabular renders one machine-readable line per pair.
func writeTabular(w io.Writer, xname, yname string, x, y *align.Structure, res *align.Result) {
	fmt.Fprintf(w, "%s\t%s\t%.4f\t%.4f\t%.2f\t%.3f\t%d\t%d\t%d\n",
		xname, yname,
		res.TMNormX, res.TMNormY, res.RMSD, res.SeqID,
		x.Len(), y.Len(), res.NAli8)
}
