// Package secstruct assigns secondary-structure labels (coil, helix, turn,
// strand) to a Cα trace by a fixed geometric test over a five-residue
// window, and smooths the resulting label sequence.
//
// The classifier compares the six inter-residue distances of the window
// {i−2…i+2} against canonical helix and strand geometries; residues without
// two neighbors on each side are coil. Smoothing suppresses isolated
// singleton and pair labels and bridges single-residue breaks, for helix
// and strand only.
//
// Complexity: O(n) for both assignment and smoothing.
package secstruct
