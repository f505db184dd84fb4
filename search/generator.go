package search

import (
	"fmt"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/tjol/gopolycubes/codec"
	"github.com/tjol/gopolycubes/internal/checksum"
	"github.com/tjol/gopolycubes/polycube"
)

// DefaultChunk is the number of 11-cubes: below this threshold the whole
// result of one generation fits comfortably in RAM, so the generator takes
// the fast path instead of spinning up the streaming pipeline.
const DefaultChunk = 2_522_522

// Result is what one generator Run produces.
type Result struct {
	Count    int
	OutPath  string
	Checksum string
}

// Generator drives one seed-list -> (N+1)-list escalation: the fast path for
// small inputs, or the streaming producer/merger pipeline (spec.md §4.F) for
// inputs larger than Chunk.
type Generator struct {
	// OutPath is the destination list file.
	OutPath string
	// N is the size of the cubes being produced (one more than the seeds').
	N int
	// Chunk overrides DefaultChunk; <= 0 means use the default.
	Chunk int
	// SearchParams controls the parallel expansion of each super-chunk.
	SearchParams Params

	// OnProgress, if set, is called after each super-chunk on the streaming
	// path with how many of the total seeds have been consumed so far.
	OnProgress func(doneSeeds, totalSeeds int, elapsed time.Duration)
	// OnQueueWarning, if set, is called when more than one batch has
	// accumulated in the merger's pending queue -- IO is slower than compute.
	OnQueueWarning func(pendingBatches int)
}

func (g *Generator) chunk() int {
	if g.Chunk <= 0 {
		return DefaultChunk
	}
	return g.Chunk
}

// Run expands every seed in seeds and writes the deduplicated, sorted
// (N+1)-cube list to g.OutPath.
func (g *Generator) Run(seeds SeedSource) (Result, error) {
	total := seeds.Len()
	if total <= g.chunk() {
		return g.runFastPath(seeds)
	}
	return g.runStreamingPath(seeds)
}

func (g *Generator) runFastPath(seeds SeedSource) (Result, error) {
	result, err := ExpandRange(seeds, 0, seeds.Len(), g.SearchParams)
	if err != nil {
		return Result{}, err
	}

	values := make([]polycube.PolyCube, 0, len(result))
	for _, p := range result {
		values = append(values, p)
	}
	slices.SortFunc(values, polycube.Compare)

	writer, err := codec.Create(g.OutPath, g.N)
	if err != nil {
		return Result{}, err
	}
	for _, p := range values {
		if err := writer.Write(p); err != nil {
			writer.Close()
			return Result{}, err
		}
	}
	if err := writer.Close(); err != nil {
		return Result{}, err
	}

	sum, err := digestOf(g.OutPath)
	if err != nil {
		return Result{}, err
	}
	return Result{Count: len(values), OutPath: g.OutPath, Checksum: sum}, nil
}

func (g *Generator) runStreamingPath(seeds SeedSource) (Result, error) {
	total := seeds.Len()
	chunk := g.chunk()

	st := newStore(g.OutPath, g.N)

	var mu sync.Mutex
	cond := sync.NewCond(&mu)
	var pending []ResultSet
	done := false
	var mergeErr error

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			mu.Lock()
			for len(pending) == 0 && !done {
				cond.Wait()
			}
			batch := pending
			pending = nil
			localDone := done
			mu.Unlock()

			if len(batch) > 1 && g.OnQueueWarning != nil {
				g.OnQueueWarning(len(batch))
			}
			if len(batch) > 0 {
				if err := st.mergeBatches(batch); err != nil {
					mergeErr = err
					return
				}
			}
			if localDone && len(batch) == 0 {
				return
			}
		}
	}()

	t0 := time.Now()
	var producerErr error

	for i := 0; i < total; i += chunk {
		chunkEnd := i + chunk
		if chunkEnd > total {
			chunkEnd = total
		}
		isLast := chunkEnd == total

		sub, err := ExpandRange(seeds, i, chunkEnd, g.SearchParams)
		if err != nil {
			producerErr = err
			mu.Lock()
			done = true
			mu.Unlock()
			cond.Signal()
			break
		}

		mu.Lock()
		done = isLast
		pending = append(pending, sub)
		mu.Unlock()
		cond.Signal()

		if g.OnProgress != nil && !(i == 0 && isLast) {
			g.OnProgress(chunkEnd, total, time.Since(t0))
		}
	}

	wg.Wait()

	if producerErr != nil {
		st.teardown()
		return Result{}, producerErr
	}
	if mergeErr != nil {
		st.teardown()
		return Result{}, mergeErr
	}

	if err := st.commit(g.OutPath); err != nil {
		st.teardown()
		return Result{}, err
	}

	sum, err := digestOf(g.OutPath)
	if err != nil {
		return Result{}, err
	}
	return Result{Count: st.count, OutPath: g.OutPath, Checksum: sum}, nil
}

func digestOf(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("search: digest: %w", err)
	}
	defer f.Close()
	if _, err := f.Seek(12, 0); err != nil {
		return "", fmt.Errorf("search: digest: %w", err)
	}
	return checksum.Digest(f)
}
