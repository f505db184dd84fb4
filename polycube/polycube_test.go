package polycube

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/tjol/gopolycubes/coord"
)

func genPolyCube(t *rapid.T, size int) PolyCube {
	cubes := make([]coord.Coord, size)
	cubes[0] = coord.Coord{}
	// Build a connected shape by random-walking to a fresh neighbor each
	// step, backing off to an existing cube if the walk gets stuck.
	have := map[coord.Coord]bool{cubes[0]: true}
	frontier := []coord.Coord{cubes[0]}
	for i := 1; i < size; i++ {
		from := frontier[rapid.IntRange(0, len(frontier)-1).Draw(t, "from")]
		n := coord.Neighbors6(from)
		idx := rapid.IntRange(0, 5).Draw(t, "dir")
		next := n[idx]
		if have[next] {
			// Fall back to the first neighbor not already used.
			found := false
			for _, cand := range n {
				if !have[cand] {
					next = cand
					found = true
					break
				}
			}
			// Every neighbor of from is taken: back off to another
			// existing cube that still has a free neighbor.
			for _, other := range frontier {
				if found {
					break
				}
				for _, cand := range coord.Neighbors6(other) {
					if !have[cand] {
						next = cand
						found = true
						break
					}
				}
			}
		}
		cubes[i] = next
		have[next] = true
		frontier = append(frontier, next)
	}
	return New(cubes)
}

func TestTwoCubeCanonicalForm(t *testing.T) {
	p := New([]coord.Coord{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}})
	c := Canonical(p)
	assert.Equal(t, []coord.Coord{{X: 0, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 1}}, c.Cubes)
}

func TestCanonicalIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		size := rapid.IntRange(1, 8).Draw(t, "size")
		p := genPolyCube(t, size)
		c1 := Canonical(p)
		c2 := Canonical(c1)
		assert.True(t, Equal(c1, c2))
	})
}

func TestCanonicalRotationInvariant(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		size := rapid.IntRange(1, 8).Draw(t, "size")
		p := genPolyCube(t, size)
		r := rapid.IntRange(0, coord.N_ROTATIONS-1).Draw(t, "r")

		rotated, err := RotateNormalize(p, r)
		require.NoError(t, err)

		assert.True(t, Equal(Canonical(p), Canonical(rotated)))
	})
}

func TestCanonicalTranslationInvariant(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		size := rapid.IntRange(1, 8).Draw(t, "size")
		p := genPolyCube(t, size)
		t_ := coord.Coord{
			X: rapid.Int8Range(-30, 30).Draw(t, "tx"),
			Y: rapid.Int8Range(-30, 30).Draw(t, "ty"),
			Z: rapid.Int8Range(-30, 30).Draw(t, "tz"),
		}

		translated := make([]coord.Coord, len(p.Cubes))
		for i, c := range p.Cubes {
			translated[i] = coord.Add(c, t_)
		}

		assert.True(t, Equal(Canonical(p), Canonical(New(translated))))
	})
}

func TestHashConsistentWithEqual(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		size := rapid.IntRange(1, 6).Draw(t, "size")
		p := genPolyCube(t, size)
		a := Canonical(p)
		b := Canonical(p)
		require.True(t, Equal(a, b))
		assert.Equal(t, Hash(a), Hash(b))
	})
}

func TestKeyOfDistinguishesShapes(t *testing.T) {
	a := Canonical(New([]coord.Coord{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 2, Y: 0, Z: 0}}))
	b := Canonical(New([]coord.Coord{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}}))
	assert.NotEqual(t, KeyOf(a), KeyOf(b))
}

func TestCompareOrdersLexicographically(t *testing.T) {
	a := New([]coord.Coord{{X: 0, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 1}})
	b := New([]coord.Coord{{X: 0, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}})
	assert.Equal(t, -1, Compare(a, b))
	assert.True(t, Less(a, b))
}
