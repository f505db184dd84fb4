// Package polycube defines the PolyCube value type and its canonicalization
// under the 24 rotations of the cube. A PolyCube is the coordinate list of N
// unit cubes; Go has no const-generic array length, so N is carried as the
// length of a slice rather than as a type parameter (see the repository's
// SPEC_FULL.md, "Representation choice").
package polycube

import (
	"hash/fnv"
	"slices"

	"github.com/tjol/gopolycubes/coord"
)

// PolyCube is an ordered tuple of N unit-cube coordinates. The zero value is
// not meaningful; use New or Canonical to obtain a normalized value.
//
// Connectivity is a precondition, never checked here: callers only ever build
// a PolyCube by appending a coordinate adjacent to an existing one (see
// package expand), so every value that reaches this package is connected by
// construction.
type PolyCube struct {
	Cubes []coord.Coord
}

// Size returns N, the number of unit cubes.
func (p PolyCube) Size() int {
	return len(p.Cubes)
}

// New builds a PolyCube satisfying invariants (1) translation-normalized and
// (2) order-normalized, but not necessarily (3) rotation-normalized. It
// copies cubes so the caller's backing array can be reused.
func New(cubes []coord.Coord) PolyCube {
	out := make([]coord.Coord, len(cubes))
	copy(out, cubes)
	normalizeInPlace(out)
	return PolyCube{Cubes: out}
}

func normalizeInPlace(cubes []coord.Coord) {
	origin := coord.MinCoords(cubes)
	for i := range cubes {
		cubes[i] = coord.Sub(cubes[i], origin)
	}
	slices.SortFunc(cubes, coord.Compare)
}

// RotateNormalize applies rotation r to every coordinate of p, then
// translates and sorts (invariants (1)+(2)). It does not search over
// rotations; see Canonical for that.
func RotateNormalize(p PolyCube, r int) (PolyCube, error) {
	out := make([]coord.Coord, len(p.Cubes))
	for i, c := range p.Cubes {
		rc, err := coord.Rotate(c, r)
		if err != nil {
			return PolyCube{}, err
		}
		out[i] = rc
	}
	normalizeInPlace(out)
	return PolyCube{Cubes: out}, nil
}

// Compare implements lexicographic order on the coordinate sequence: -1 if
// a < b, 1 if a > b, 0 if equal. Both must have the same length.
func Compare(a, b PolyCube) int {
	for i := range a.Cubes {
		if c := coord.Compare(a.Cubes[i], b.Cubes[i]); c != 0 {
			return c
		}
	}
	return 0
}

// Less reports whether a sorts before b.
func Less(a, b PolyCube) bool {
	return Compare(a, b) < 0
}

// Equal reports whether a and b have the same canonical coordinate sequence.
func Equal(a, b PolyCube) bool {
	return slices.Equal(a.Cubes, b.Cubes)
}

// Canonical computes RotateNormalize(p, r) for all 24 rotations and returns
// the lexicographically smallest result -- the unique representative of p's
// orbit under the rigid rotation group. Cost is O(24*N log N); ties among the
// 24 candidates are broken by taking the first minimum encountered (smallest
// r), which is immaterial since tied tuples are equal.
func Canonical(p PolyCube) PolyCube {
	best, err := RotateNormalize(p, 0)
	if err != nil {
		// r=0 is always valid.
		panic(err)
	}
	for r := 1; r < coord.N_ROTATIONS; r++ {
		candidate, err := RotateNormalize(p, r)
		if err != nil {
			panic(err)
		}
		if Compare(candidate, best) < 0 {
			best = candidate
		}
	}
	return best
}

// Hash returns a hash of p's canonical coordinate bytes, consistent with
// Equal: equal PolyCubes (same Cubes sequence) always hash equal. Callers
// that need a canonical-orbit hash (same value regardless of input
// orientation) should call Canonical first.
func Hash(p PolyCube) uint64 {
	h := fnv.New64a()
	buf := make([]byte, 3*len(p.Cubes))
	for i, c := range p.Cubes {
		buf[3*i] = byte(c.X)
		buf[3*i+1] = byte(c.Y)
		buf[3*i+2] = byte(c.Z)
	}
	_, _ = h.Write(buf)
	return h.Sum64()
}

// Bytes returns the raw byte pattern of p's coordinate sequence: 3 bytes
// (x, y, z) per cube, in order. This is the on-disk record layout (see
// package codec) and doubles as a map/set key for deduplication when a byte
// slice key is more convenient than the PolyCube value itself.
func Bytes(p PolyCube) []byte {
	buf := make([]byte, 3*len(p.Cubes))
	for i, c := range p.Cubes {
		buf[3*i] = byte(c.X)
		buf[3*i+1] = byte(c.Y)
		buf[3*i+2] = byte(c.Z)
	}
	return buf
}

// Key is a comparable Go map key for deduplicating PolyCubes of a single
// fixed size (the array is sized to Nmax=17 cubes, see package sizeclass).
type Key [17 * 3]byte

// KeyOf packs p's coordinate bytes into a Key, zero-padded. Callers must only
// mix Keys from PolyCubes of the same size within one set.
func KeyOf(p PolyCube) Key {
	var k Key
	copy(k[:], Bytes(p))
	return k
}
