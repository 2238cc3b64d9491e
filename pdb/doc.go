// Package pdb handles the coordinate I/O surrounding the alignment
// engine: reading Cα traces from fixed-column PDB records, mapping
// three-letter residue identities to one-letter codes, writing superposed
// coordinate files and rotation-matrix files, and reading seed alignments
// from FASTA pairs.
//
// Only " CA " ATOM records with a standard residue identity contribute to
// a trace; chain termination is configurable (read everything, stop at
// END, at ENDMDL, or at the first TER).
package pdb
