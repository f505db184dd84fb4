package search

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/tjol/gopolycubes/codec"
	"github.com/tjol/gopolycubes/polycube"
)

// store is the persistent dedup store used by the streaming path: a sorted
// binary list on disk, in the codec's own format, merged via a K+1-way merge
// per batch hand-off (spec.md §4.F, "sorted-file merge" design, chosen over
// the keyed-database alternative -- see SPEC_FULL.md §4.F). It satisfies
// "set of canonical PolyCubes, O(1) expected insert [amortized across a
// batch], deterministic ordered iteration at commit".
type store struct {
	n        int
	tmpPaths [2]string
	current  int // index into tmpPaths holding the live sorted cache, -1 if none yet
	count    int
}

func newStore(outPath string, n int) *store {
	dir := filepath.Dir(outPath)
	base := filepath.Base(outPath)
	return &store{
		n: n,
		tmpPaths: [2]string{
			filepath.Join(dir, fmt.Sprintf(".%s.tmp.1", base)),
			filepath.Join(dir, fmt.Sprintf(".%s.tmp.2", base)),
		},
		current: -1,
	}
}

// cursorStream adapts a codec.Cursor to the sortedStream interface used by
// the K+1-way merge.
type cursorStream struct {
	cursor  *codec.Cursor
	current polycube.PolyCube
	ok      bool
	err     error
}

func newCursorStream(c *codec.Cursor) (*cursorStream, error) {
	cs := &cursorStream{cursor: c}
	if err := cs.advance(); err != nil {
		return nil, err
	}
	return cs, nil
}

func (c *cursorStream) advance() error {
	p, ok, err := c.cursor.Next()
	if err != nil {
		return err
	}
	c.current, c.ok = p, ok
	return nil
}

func (c *cursorStream) Peek() (polycube.PolyCube, bool) { return c.current, c.ok }
func (c *cursorStream) Advance() error                  { return c.advance() }

// mergeBatches sorts each batch in parallel, then folds the existing cache
// (if any) and every batch into a fresh cache file in a single K+1-way merge
// pass, replacing the live cache only once the new one is fully written.
func (s *store) mergeBatches(batches []ResultSet) error {
	sortedBatches := make([][]polycube.PolyCube, len(batches))

	var wg sync.WaitGroup
	for i, b := range batches {
		wg.Add(1)
		go func(i int, b ResultSet) {
			defer wg.Done()
			values := make([]polycube.PolyCube, 0, len(b))
			for _, p := range b {
				values = append(values, p)
			}
			slices.SortFunc(values, polycube.Compare)
			sortedBatches[i] = values
		}(i, b)
	}
	wg.Wait()

	nextSlot := 0
	if s.current == 0 {
		nextSlot = 1
	}

	writer, err := codec.Create(s.tmpPaths[nextSlot], s.n)
	if err != nil {
		return err
	}

	streams := make([]sortedStream, 0, len(sortedBatches)+1)

	var oldReader *codec.Reader
	if s.current != -1 {
		oldReader, err = codec.Open(s.tmpPaths[s.current])
		if err != nil {
			writer.Close()
			return err
		}
		cs, err := newCursorStream(oldReader.Cursor())
		if err != nil {
			oldReader.Close()
			writer.Close()
			return err
		}
		streams = append(streams, cs)
	}

	for _, values := range sortedBatches {
		streams = append(streams, newSliceStream(values))
	}

	count, mergeErr := mergeUnique(streams, writer.Write)

	closeErr := writer.Close()
	if oldReader != nil {
		_ = oldReader.Close()
	}

	if mergeErr != nil {
		_ = os.Remove(s.tmpPaths[nextSlot])
		return mergeErr
	}
	if closeErr != nil {
		_ = os.Remove(s.tmpPaths[nextSlot])
		return closeErr
	}

	oldSlot := s.current
	s.current = nextSlot
	s.count = count

	if oldSlot != -1 {
		_ = os.Remove(s.tmpPaths[oldSlot])
	}

	return nil
}

// commit renames the live cache to outPath. If no batch was ever merged
// (s.current == -1, i.e. an empty seed range), it writes an empty file
// containing only the header.
func (s *store) commit(outPath string) error {
	if s.current == -1 {
		w, err := codec.Create(outPath, s.n)
		if err != nil {
			return err
		}
		return w.Close()
	}
	if err := os.Rename(s.tmpPaths[s.current], outPath); err != nil {
		return fmt.Errorf("search: commit: %w", err)
	}
	other := 1 - s.current
	_ = os.Remove(s.tmpPaths[other])
	s.current = -1
	return nil
}

// teardown removes any temp files left behind by a failed run.
func (s *store) teardown() {
	_ = os.Remove(s.tmpPaths[0])
	_ = os.Remove(s.tmpPaths[1])
}
