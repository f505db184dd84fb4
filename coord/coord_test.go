package coord

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestRotateIdentity(t *testing.T) {
	c := Coord{X: 3, Y: -5, Z: 7}
	out, err := Rotate(c, 0)
	require.NoError(t, err)
	assert.Equal(t, c, out)
}

func TestRotateInvalidOrientation(t *testing.T) {
	_, err := Rotate(Coord{}, 24)
	require.Error(t, err)
	var ioErr InvalidOrientation
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, 24, ioErr.Orientation)

	_, err = Rotate(Coord{}, -1)
	require.Error(t, err)
}

func TestRotatePreservesMagnitudeSquared(t *testing.T) {
	// Every rotation is a signed permutation, so it preserves the squared
	// Euclidean norm of the coordinate.
	rapid.Check(t, func(t *rapid.T) {
		x := rapid.Int8Range(-20, 20).Draw(t, "x")
		y := rapid.Int8Range(-20, 20).Draw(t, "y")
		z := rapid.Int8Range(-20, 20).Draw(t, "z")
		c := Coord{X: x, Y: y, Z: z}
		r := rapid.IntRange(0, N_ROTATIONS-1).Draw(t, "r")

		out, err := Rotate(c, r)
		require.NoError(t, err)

		before := int(x)*int(x) + int(y)*int(y) + int(z)*int(z)
		after := int(out.X)*int(out.X) + int(out.Y)*int(out.Y) + int(out.Z)*int(out.Z)
		assert.Equal(t, before, after)
	})
}

func TestRotationClosureGenericCoord(t *testing.T) {
	// For a coordinate with three distinct nonzero absolute components the
	// 24 rotations land on 24 distinct positions -- the orbit has no
	// stabilizer beyond identity.
	c := Coord{X: 1, Y: 2, Z: 3}
	seen := map[Coord]bool{}
	for r := 0; r < N_ROTATIONS; r++ {
		out, err := Rotate(c, r)
		require.NoError(t, err)
		seen[out] = true
	}
	assert.Len(t, seen, N_ROTATIONS)
}

func TestCompareLexicographic(t *testing.T) {
	assert.Equal(t, -1, Compare(Coord{X: 0, Y: 0, Z: 0}, Coord{X: 1, Y: 0, Z: 0}))
	assert.Equal(t, 1, Compare(Coord{X: 1, Y: 0, Z: 0}, Coord{X: 0, Y: 5, Z: 5}))
	assert.Equal(t, 0, Compare(Coord{X: 1, Y: 2, Z: 3}, Coord{X: 1, Y: 2, Z: 3}))
	assert.Equal(t, -1, Compare(Coord{X: 1, Y: 2, Z: 3}, Coord{X: 1, Y: 2, Z: 4}))
}

func TestMinCoords(t *testing.T) {
	cs := []Coord{{X: 3, Y: -1, Z: 5}, {X: -2, Y: 4, Z: 0}, {X: 1, Y: 1, Z: -9}}
	assert.Equal(t, Coord{X: -2, Y: -1, Z: -9}, MinCoords(cs))
}

func TestAddSubRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := Coord{
			X: rapid.Int8Range(-60, 60).Draw(t, "ax"),
			Y: rapid.Int8Range(-60, 60).Draw(t, "ay"),
			Z: rapid.Int8Range(-60, 60).Draw(t, "az"),
		}
		b := Coord{
			X: rapid.Int8Range(-60, 60).Draw(t, "bx"),
			Y: rapid.Int8Range(-60, 60).Draw(t, "by"),
			Z: rapid.Int8Range(-60, 60).Draw(t, "bz"),
		}
		assert.Equal(t, a, Sub(Add(a, b), b))
	})
}

func TestNeighbors6(t *testing.T) {
	n := Neighbors6(Coord{X: 1, Y: 1, Z: 1})
	assert.Equal(t, [6]Coord{
		{X: 2, Y: 1, Z: 1},
		{X: 0, Y: 1, Z: 1},
		{X: 1, Y: 2, Z: 1},
		{X: 1, Y: 0, Z: 1},
		{X: 1, Y: 1, Z: 2},
		{X: 1, Y: 1, Z: 0},
	}, n)
}
