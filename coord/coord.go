// Package coord implements the integer coordinate and cube-rotation algebra
// that every polycube is built from: 3-vectors with int8 components, the 24
// proper rotations of the cube, and the lexicographic order used to pick a
// canonical representative.
package coord

import "fmt"

// Coord is a single unit-cube position. Components are int8 so a PolyCube's
// coordinate list packs tightly on disk (see the codec package); callers must
// keep |component| <= 127, which holds for any polycube of practical size
// (N <= 30 stays within [-N, N]).
type Coord struct {
	X, Y, Z int8
}

// N_ROTATIONS is the size of the proper rotation group of the cube.
const N_ROTATIONS = 24

// InvalidOrientation is returned by Rotate when r is outside [0, N_ROTATIONS).
type InvalidOrientation struct {
	Orientation int
}

func (e InvalidOrientation) Error() string {
	return fmt.Sprintf("coord: orientation %d out of range [0, %d)", e.Orientation, N_ROTATIONS)
}

// rotationTable[r] maps (x, y, z) to the signed permutation for rotation r.
// Transcribed from the reference implementation's rotation table; rotation 0
// is the identity. The table itself is the specification -- there is no
// derivation from a matrix at runtime.
var rotationTable = [N_ROTATIONS]func(x, y, z int8) (int8, int8, int8){
	func(x, y, z int8) (int8, int8, int8) { return x, y, z },
	func(x, y, z int8) (int8, int8, int8) { return y, -x, z },
	func(x, y, z int8) (int8, int8, int8) { return -x, -y, z },
	func(x, y, z int8) (int8, int8, int8) { return -y, x, z },
	func(x, y, z int8) (int8, int8, int8) { return z, y, -x },
	func(x, y, z int8) (int8, int8, int8) { return y, -z, -x },
	func(x, y, z int8) (int8, int8, int8) { return -z, -y, -x },
	func(x, y, z int8) (int8, int8, int8) { return -y, z, -x },
	func(x, y, z int8) (int8, int8, int8) { return -x, y, -z },
	func(x, y, z int8) (int8, int8, int8) { return y, x, -z },
	func(x, y, z int8) (int8, int8, int8) { return x, -y, -z },
	func(x, y, z int8) (int8, int8, int8) { return -y, -x, -z },
	func(x, y, z int8) (int8, int8, int8) { return -z, y, x },
	func(x, y, z int8) (int8, int8, int8) { return y, z, x },
	func(x, y, z int8) (int8, int8, int8) { return z, -y, x },
	func(x, y, z int8) (int8, int8, int8) { return -y, -z, x },
	func(x, y, z int8) (int8, int8, int8) { return x, z, -y },
	func(x, y, z int8) (int8, int8, int8) { return z, -x, -y },
	func(x, y, z int8) (int8, int8, int8) { return -x, -z, -y },
	func(x, y, z int8) (int8, int8, int8) { return -z, x, -y },
	func(x, y, z int8) (int8, int8, int8) { return -x, z, y },
	func(x, y, z int8) (int8, int8, int8) { return z, x, y },
	func(x, y, z int8) (int8, int8, int8) { return x, -z, y },
	func(x, y, z int8) (int8, int8, int8) { return -z, -x, y },
}

// Rotate applies rotation r to c, returning InvalidOrientation if r is out of
// range.
func Rotate(c Coord, r int) (Coord, error) {
	if r < 0 || r >= N_ROTATIONS {
		return Coord{}, InvalidOrientation{Orientation: r}
	}
	x, y, z := rotationTable[r](c.X, c.Y, c.Z)
	return Coord{X: x, Y: y, Z: z}, nil
}

// MustRotate is Rotate but panics on an invalid orientation; used where r is
// a loop index over [0, N_ROTATIONS) and can never be invalid by construction.
func MustRotate(c Coord, r int) Coord {
	out, err := Rotate(c, r)
	if err != nil {
		panic(err)
	}
	return out
}

// Add returns the componentwise sum a+b.
func Add(a, b Coord) Coord {
	return Coord{X: a.X + b.X, Y: a.Y + b.Y, Z: a.Z + b.Z}
}

// Sub returns the componentwise difference a-b.
func Sub(a, b Coord) Coord {
	return Coord{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z}
}

// Compare implements lexicographic order on (X, Y, Z): -1 if a < b, 1 if
// a > b, 0 if equal.
func Compare(a, b Coord) int {
	if a.X != b.X {
		if a.X < b.X {
			return -1
		}
		return 1
	}
	if a.Y != b.Y {
		if a.Y < b.Y {
			return -1
		}
		return 1
	}
	if a.Z != b.Z {
		if a.Z < b.Z {
			return -1
		}
		return 1
	}
	return 0
}

// Less reports whether a sorts before b; convenience wrapper around Compare
// for use with slices.SortFunc and friends.
func Less(a, b Coord) bool {
	return Compare(a, b) < 0
}

// MinCoords returns the componentwise minimum across coords. The zero value
// is returned for an empty slice; callers with a non-empty polycube never hit
// that case.
func MinCoords(coords []Coord) Coord {
	if len(coords) == 0 {
		return Coord{}
	}
	min := coords[0]
	for _, c := range coords[1:] {
		if c.X < min.X {
			min.X = c.X
		}
		if c.Y < min.Y {
			min.Y = c.Y
		}
		if c.Z < min.Z {
			min.Z = c.Z
		}
	}
	return min
}

// Neighbors6 returns the 6 axis-aligned unit neighbors of c, in the fixed
// order +X, -X, +Y, -Y, +Z, -Z.
func Neighbors6(c Coord) [6]Coord {
	return [6]Coord{
		Add(c, Coord{X: 1}),
		Add(c, Coord{X: -1}),
		Add(c, Coord{Y: 1}),
		Add(c, Coord{Y: -1}),
		Add(c, Coord{Z: 1}),
		Add(c, Coord{Z: -1}),
	}
}
