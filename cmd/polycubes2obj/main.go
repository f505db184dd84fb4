// Command polycubes2obj renders a polycube list file as a Wavefront OBJ
// mesh: one unculled cube per unit cube, spread across a grid.
//
// Usage: polycubes2obj INFILE [OUTFILE]
package main

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/tjol/gopolycubes/codec"
	"github.com/tjol/gopolycubes/coord"
	"github.com/tjol/gopolycubes/polycube"
)

type vec3 struct{ x, y, z float64 }

type face struct {
	vertices [4]vec3
	normal   vec3
}

func cubeFaces(c coord.Coord) [6]face {
	x, y, z := float64(c.X), float64(c.Y), float64(c.Z)
	return [6]face{
		{vertices: [4]vec3{{x - .5, y + .5, z - .5}, {x + .5, y + .5, z - .5}, {x + .5, y - .5, z - .5}, {x - .5, y - .5, z - .5}}, normal: vec3{0, 0, -1}},
		{vertices: [4]vec3{{x - .5, y - .5, z + .5}, {x + .5, y - .5, z + .5}, {x + .5, y + .5, z + .5}, {x - .5, y + .5, z + .5}}, normal: vec3{0, 0, 1}},
		{vertices: [4]vec3{{x - .5, y - .5, z - .5}, {x + .5, y - .5, z - .5}, {x + .5, y - .5, z + .5}, {x - .5, y - .5, z + .5}}, normal: vec3{0, -1, 0}},
		{vertices: [4]vec3{{x - .5, y + .5, z + .5}, {x + .5, y + .5, z + .5}, {x + .5, y + .5, z - .5}, {x - .5, y + .5, z - .5}}, normal: vec3{0, 1, 0}},
		{vertices: [4]vec3{{x - .5, y - .5, z + .5}, {x - .5, y + .5, z + .5}, {x - .5, y + .5, z - .5}, {x - .5, y - .5, z - .5}}, normal: vec3{-1, 0, 0}},
		{vertices: [4]vec3{{x + .5, y - .5, z - .5}, {x + .5, y + .5, z - .5}, {x + .5, y + .5, z + .5}, {x + .5, y - .5, z + .5}}, normal: vec3{1, 0, 0}},
	}
}

func translate(faces []face, d vec3) {
	for i := range faces {
		for j := range faces[i].vertices {
			faces[i].vertices[j].x += d.x
			faces[i].vertices[j].y += d.y
			faces[i].vertices[j].z += d.z
		}
	}
}

func facesOf(pc polycube.PolyCube) []face {
	var out []face
	for _, c := range pc.Cubes {
		f := cubeFaces(c)
		out = append(out, f[:]...)
	}
	return out
}

func buildMesh(pcs []polycube.PolyCube, size int) []face {
	gridWidth := int(math.Sqrt(float64(len(pcs))))
	if gridWidth < 1 {
		gridWidth = 1
	}
	spacing := float64(2 * size)

	var all []face
	x, y := 0, 0
	for _, pc := range pcs {
		faces := facesOf(pc)
		translate(faces, vec3{x: spacing * float64(x), y: spacing * float64(y)})
		all = append(all, faces...)
		x++
		if x >= gridWidth {
			x = 0
			y++
		}
	}
	return all
}

func writeOBJ(w *bufio.Writer, faces []face) error {
	if _, err := w.WriteString("# List of vertices\n"); err != nil {
		return err
	}
	for _, f := range faces {
		for _, v := range f.vertices {
			if _, err := fmt.Fprintf(w, "v %g %g %g\n", v.x, v.y, v.z); err != nil {
				return err
			}
		}
	}
	if _, err := w.WriteString("# List of vertex normals\n"); err != nil {
		return err
	}
	for _, f := range faces {
		if _, err := fmt.Fprintf(w, "vn %g %g %g\n", f.normal.x, f.normal.y, f.normal.z); err != nil {
			return err
		}
	}
	if _, err := w.WriteString("# List of faces\n"); err != nil {
		return err
	}
	for i := range faces {
		v0 := 4*i + 1
		vn := i + 1
		if _, err := fmt.Fprintf(w, "f %d//%d %d//%d %d//%d %d//%d\n", v0, vn, v0+1, vn, v0+2, vn, v0+3, vn); err != nil {
			return err
		}
	}
	return w.Flush()
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) >= 1 && (args[0] == "-h" || args[0] == "--help") {
		fmt.Printf("Usage: %s INFILE [OUTFILE]\n", os.Args[0])
		return 0
	}

	var inFile, outFile string
	switch len(args) {
	case 1:
		inFile = args[0]
		outFile = defaultOutFile(inFile)
	case 2:
		inFile, outFile = args[0], args[1]
	default:
		fmt.Fprintln(os.Stderr, "Invalid argument count")
		return 2
	}

	reader, err := codec.Open(inFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		return 1
	}
	defer reader.Close()

	pcs, err := reader.Slurp()
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		return 1
	}

	faces := buildMesh(pcs, reader.CubeCount())

	out, err := os.Create(outFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		return 1
	}
	defer out.Close()

	if err := writeOBJ(bufio.NewWriter(out), faces); err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		return 1
	}

	return 0
}

func defaultOutFile(inFile string) string {
	if strings.HasSuffix(inFile, ".bin") {
		return strings.TrimSuffix(inFile, ".bin") + ".obj"
	}
	return inFile + ".obj"
}
