package pdb

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/tmalign/geom"
)

// WriteSuperposed copies the coordinate file at srcPath to dstPath with
// every ATOM/HETATM record's coordinates replaced by their image under
// x' = t + u·x. Non-coordinate records pass through unchanged; reading
// stops at the first END record unless ter is TerReadAll.
func WriteSuperposed(srcPath, dstPath string, t geom.Vec3, u geom.Mat3, ter TerMode) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("pdb: open %s: %w", srcPath, err)
	}
	defer src.Close()

	dst, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("pdb: create %s: %w", dstPath, err)
	}
	defer dst.Close()

	w := bufio.NewWriter(dst)
	scanner := bufio.NewScanner(src)
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) >= 54 &&
			(strings.HasPrefix(line, "ATOM  ") || strings.HasPrefix(line, "HETATM")) {
			x, err1 := strconv.ParseFloat(strings.TrimSpace(line[30:38]), 64)
			y, err2 := strconv.ParseFloat(strings.TrimSpace(line[38:46]), 64)
			z, err3 := strconv.ParseFloat(strings.TrimSpace(line[46:54]), 64)
			if err1 == nil && err2 == nil && err3 == nil {
				p := geom.Apply(t, u, geom.Vec3{x, y, z})
				line = fmt.Sprintf("%s%8.3f%8.3f%8.3f%s",
					line[:30], p[0], p[1], p[2], line[54:])
			}
		}
		fmt.Fprintln(w, line)

		if ter != TerReadAll && strings.HasPrefix(line, "END") && !strings.HasPrefix(line, "ENDMDL") {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("pdb: read %s: %w", srcPath, err)
	}

	return w.Flush()
}

// WriteRotationMatrix writes the transform in the conventional
// row-per-axis layout with a usage note.
func WriteRotationMatrix(path string, t geom.Vec3, u geom.Mat3) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("pdb: create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "------ The rotation matrix to rotate Chain_1 to Chain_2 ------")
	fmt.Fprintf(w, "m %18s %14s %14s %14s\n", "t[m]", "u[m][0]", "u[m][1]", "u[m][2]")
	for m := 0; m < 3; m++ {
		fmt.Fprintf(w, "%d %18.10f %14.10f %14.10f %14.10f\n",
			m, t[m], u[m][0], u[m][1], u[m][2])
	}
	fmt.Fprint(w, "\nCode for rotating Structure A from (x,y,z) to (X,Y,Z):\n"+
		"for(i=0; i<L; i++)\n"+
		"{\n"+
		"   X[i] = t[0] + u[0][0]*x[i] + u[0][1]*y[i] + u[0][2]*z[i]\n"+
		"   Y[i] = t[1] + u[1][0]*x[i] + u[1][1]*y[i] + u[1][2]*z[i]\n"+
		"   Z[i] = t[2] + u[2][0]*x[i] + u[2][1]*y[i] + u[2][2]*z[i]\n"+
		"}\n")

	return w.Flush()
}
