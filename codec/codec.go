// Package codec reads and writes the on-disk polycube list format:
//
//	offset 0  : 8 bytes ASCII magic "PLYCUBE1"
//	offset 8  : 4 bytes int32 cube_count N, little-endian
//	offset 12 : N*3 bytes per record, record_count records
//	            each record is N Coords of 3 signed int8 (x, y, z)
//
// No trailer, no per-record delimiter; records are contiguous. A finished
// file's records are in ascending canonical order.
package codec

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"

	"github.com/tjol/gopolycubes/coord"
	"github.com/tjol/gopolycubes/internal/errs"
	"github.com/tjol/gopolycubes/polycube"
)

const (
	magic      = "PLYCUBE1"
	headerSize = 12
)

// Reader opens a list file for read access. Its cursor methods are
// single-thread only; callers that need parallel access must materialize
// chunks into owned slices first (see package search).
type Reader struct {
	f          *os.File
	cubeCount  int
	bodyLen    int64
	recordSize int64
	locked     bool
}

// Open validates the header and returns a Reader positioned at the start of
// the body.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.IO{Op: "open " + path, Err: err}
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_SH|unix.LOCK_NB); err != nil {
		// Best-effort: some filesystems (network mounts) don't support
		// flock. Locking is a safety net, not a format requirement.
		_ = err
	}

	header := make([]byte, headerSize)
	if _, err := io.ReadFull(f, header); err != nil {
		f.Close()
		return nil, errs.IO{Op: "read header of " + path, Err: err}
	}

	if string(header[:8]) != magic {
		f.Close()
		return nil, errs.BadMagic{Got: string(header[:8])}
	}

	n := int32(binary.LittleEndian.Uint32(header[8:12]))

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errs.IO{Op: "stat " + path, Err: err}
	}

	bodyLen := info.Size() - headerSize
	recordSize := int64(n) * 3
	if recordSize > 0 && bodyLen%recordSize != 0 {
		f.Close()
		return nil, errs.Truncated{BodyBytes: int(bodyLen), RecordBytes: int(recordSize)}
	}

	return &Reader{f: f, cubeCount: int(n), bodyLen: bodyLen, recordSize: recordSize, locked: true}, nil
}

// CubeCount returns N, read from the header.
func (r *Reader) CubeCount() int {
	return r.cubeCount
}

// Len returns the number of records in the file.
func (r *Reader) Len() int {
	if r.recordSize == 0 {
		return 0
	}
	return int(r.bodyLen / r.recordSize)
}

// Close releases the file handle and any advisory lock.
func (r *Reader) Close() error {
	if r.locked {
		_ = unix.Flock(int(r.f.Fd()), unix.LOCK_UN)
	}
	if err := r.f.Close(); err != nil {
		return errs.IO{Op: "close", Err: err}
	}
	return nil
}

// Cursor returns a forward-only iterator over the file's records, reading
// with a bounded-size buffer regardless of file size. Not safe for
// concurrent use; a file may have multiple independent Cursors from separate
// Readers opened on the same path.
func (r *Reader) Cursor() *Cursor {
	return &Cursor{
		r:   bufio.NewReaderSize(io.NewSectionReader(r.f, headerSize, r.bodyLen), 1<<20),
		n:   r.cubeCount,
		buf: make([]byte, r.recordSize),
	}
}

// At performs a random-access read of record i via a seek, for callers
// chunking a seed range without materializing the whole file (see package
// search).
func (r *Reader) At(i int) (polycube.PolyCube, error) {
	if i < 0 || int64(i)*r.recordSize >= r.bodyLen {
		return polycube.PolyCube{}, fmt.Errorf("codec: record index %d out of range", i)
	}
	buf := make([]byte, r.recordSize)
	off := headerSize + int64(i)*r.recordSize
	if _, err := r.f.ReadAt(buf, off); err != nil {
		return polycube.PolyCube{}, errs.IO{Op: "read record", Err: err}
	}
	return decodeRecord(buf, r.cubeCount), nil
}

// Slurp reads every record into memory; only appropriate when the whole file
// is known to fit comfortably in RAM (the mesh exporter's only use of this
// package, per SPEC_FULL.md §4.I).
func (r *Reader) Slurp() ([]polycube.PolyCube, error) {
	cursor := r.Cursor()
	out := make([]polycube.PolyCube, 0, r.Len())
	for {
		p, ok, err := cursor.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, p)
	}
}

// Cursor is a single-thread forward iterator over a list file's records.
type Cursor struct {
	r   *bufio.Reader
	n   int
	buf []byte
}

// Next returns the next record, or ok=false at end of stream.
func (c *Cursor) Next() (p polycube.PolyCube, ok bool, err error) {
	_, readErr := io.ReadFull(c.r, c.buf)
	if readErr == io.EOF {
		return polycube.PolyCube{}, false, nil
	}
	if readErr != nil {
		return polycube.PolyCube{}, false, errs.IO{Op: "read record", Err: readErr}
	}
	return decodeRecord(c.buf, c.n), true, nil
}

func decodeRecord(buf []byte, n int) polycube.PolyCube {
	cubes := make([]coord.Coord, n)
	for i := 0; i < n; i++ {
		cubes[i] = coord.Coord{
			X: int8(buf[3*i]),
			Y: int8(buf[3*i+1]),
			Z: int8(buf[3*i+2]),
		}
	}
	return polycube.PolyCube{Cubes: cubes}
}

// Writer creates a list file and writes its header, then buffers Write
// calls, flushing on Close. It takes an exclusive advisory lock on path for
// its lifetime.
type Writer struct {
	f      *os.File
	w      *bufio.Writer
	n      int
	locked bool
}

// Create truncates (or creates) the file at path and writes the 12-byte
// header with cube_count n.
func Create(path string, n int) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, errs.IO{Op: "create " + path, Err: err}
	}

	locked := false
	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err == nil {
		locked = true
	}

	w := bufio.NewWriterSize(f, 1<<20)
	if _, err := w.WriteString(magic); err != nil {
		f.Close()
		return nil, errs.IO{Op: "write magic", Err: err}
	}
	var sizeBuf [4]byte
	binary.LittleEndian.PutUint32(sizeBuf[:], uint32(n))
	if _, err := w.Write(sizeBuf[:]); err != nil {
		f.Close()
		return nil, errs.IO{Op: "write header", Err: err}
	}

	return &Writer{f: f, w: w, n: n, locked: locked}, nil
}

// Write appends one record. p.Size() must equal the writer's cube_count.
func (w *Writer) Write(p polycube.PolyCube) error {
	if p.Size() != w.n {
		return errs.BadSize{Want: w.n, Got: p.Size()}
	}
	if _, err := w.w.Write(polycube.Bytes(p)); err != nil {
		return errs.IO{Op: "write record", Err: err}
	}
	return nil
}

// Close flushes buffered writes, releases the lock, and closes the file.
func (w *Writer) Close() error {
	flushErr := w.w.Flush()
	if w.locked {
		_ = unix.Flock(int(w.f.Fd()), unix.LOCK_UN)
	}
	closeErr := w.f.Close()
	if flushErr != nil {
		return errs.IO{Op: "flush", Err: flushErr}
	}
	if closeErr != nil {
		return errs.IO{Op: "close", Err: closeErr}
	}
	return nil
}
