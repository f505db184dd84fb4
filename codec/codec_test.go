package codec

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tjol/gopolycubes/coord"
	"github.com/tjol/gopolycubes/internal/errs"
	"github.com/tjol/gopolycubes/polycube"
)

func samplePolyCubes(n, count int) []polycube.PolyCube {
	out := make([]polycube.PolyCube, count)
	for i := 0; i < count; i++ {
		cubes := make([]coord.Coord, n)
		for j := 0; j < n; j++ {
			cubes[j] = coord.Coord{X: int8(i), Y: int8(j), Z: int8(i + j)}
		}
		out[i] = polycube.PolyCube{Cubes: cubes}
	}
	return out
}

func TestWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "list.bin")

	want := samplePolyCubes(3, 50)

	w, err := Create(path, 3)
	require.NoError(t, err)
	for _, p := range want {
		require.NoError(t, w.Write(p))
	}
	require.NoError(t, w.Close())

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, 3, r.CubeCount())
	assert.Equal(t, len(want), r.Len())

	got, err := r.Slurp()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCursorMatchesAt(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "list.bin")

	want := samplePolyCubes(4, 10)
	w, err := Create(path, 4)
	require.NoError(t, err)
	for _, p := range want {
		require.NoError(t, w.Write(p))
	}
	require.NoError(t, w.Close())

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	for i := range want {
		p, err := r.At(i)
		require.NoError(t, err)
		assert.Equal(t, want[i], p)
	}
}

func TestEmptyFileHasOnlyHeader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.bin")

	w, err := Create(path, 5)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.EqualValues(t, headerSize, info.Size())

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()
	assert.Equal(t, 0, r.Len())

	got, err := r.Slurp()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestOpenRejectsBadMagic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.bin")
	require.NoError(t, os.WriteFile(path, []byte("NOTAMAGI\x03\x00\x00\x00"), 0o644))

	_, err := Open(path)
	require.Error(t, err)
	var bm errs.BadMagic
	assert.ErrorAs(t, err, &bm)
}

func TestOpenRejectsTruncatedBody(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "truncated.bin")

	header := append([]byte(magic), 0, 0, 0, 0)
	header[8] = 3 // cube_count = 3, record size = 9 bytes
	body := []byte{1, 2, 3, 4} // not a multiple of 9
	require.NoError(t, os.WriteFile(path, append(header, body...), 0o644))

	_, err := Open(path)
	require.Error(t, err)
	var tr errs.Truncated
	assert.ErrorAs(t, err, &tr)
}

func TestWriteRejectsWrongSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "list.bin")

	w, err := Create(path, 3)
	require.NoError(t, err)
	defer w.Close()

	err = w.Write(polycube.PolyCube{Cubes: make([]coord.Coord, 2)})
	require.Error(t, err)
	var bs errs.BadSize
	assert.ErrorAs(t, err, &bs)
}
