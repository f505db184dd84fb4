// Package search implements the parallel search driver (spec.md §4.E) and
// the streaming merge generator (spec.md §4.F) that together expand a seed
// list of N-cubes into the deduplicated set, then sorted file, of (N+1)-cubes.
package search

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/tjol/gopolycubes/expand"
	"github.com/tjol/gopolycubes/polycube"
)

// SeedSource is a random-access, read-only view over a list of N-cubes.
// *codec.Reader satisfies this directly; sub-ranges handed to parallel
// workers are materialized into an owned seedSlice first, since a codec
// Cursor/Reader is documented non-thread-safe.
type SeedSource interface {
	Len() int
	At(i int) (polycube.PolyCube, error)
}

// seedSlice is an owned, in-memory SeedSource used for the sub-ranges copied
// out before handing them to a worker goroutine.
type seedSlice []polycube.PolyCube

func (s seedSlice) Len() int { return len(s) }
func (s seedSlice) At(i int) (polycube.PolyCube, error) { return s[i], nil }

// Params are the fixed thresholds of spec.md §4.E, overridable from
// configuration.
type Params struct {
	// SerialChunk is the number of seeds processed sequentially by one task.
	SerialChunk int
	// ParallelTasks is the number of sub-ranges run concurrently.
	ParallelTasks int
	// ParallelBatch caps the seed count handled by one non-recursive call to
	// ExpandRange; it is SerialChunk * ParallelTasks.
	ParallelBatch int
}

// DefaultParams computes spec.md's fixed parameters for the target polycube
// size targetN (the size being produced, i.e. one more than the seeds').
// serialChunkBase defaults to 3200 and workers defaults to
// runtime.GOMAXPROCS(0) when <= 0.
func DefaultParams(targetN, serialChunkBase, workers int) Params {
	if serialChunkBase <= 0 {
		serialChunkBase = 3200
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	serialChunk := serialChunkBase / targetN
	if serialChunk < 1 {
		serialChunk = 1
	}
	return Params{
		SerialChunk:   serialChunk,
		ParallelTasks: workers,
		ParallelBatch: serialChunk * workers,
	}
}

// ResultSet is the deduplicated set of canonicalized (N+1)-cubes produced by
// an expansion; keyed so duplicates from different seeds or different tasks
// collapse automatically.
type ResultSet map[polycube.Key]polycube.PolyCube

// ExpandRange runs the three-case recursion of spec.md §4.E over
// seeds[begin:end], returning the union of expand.FindLarger over every
// seed. Ordering across tasks is not guaranteed; the result is a set.
func ExpandRange(seeds SeedSource, begin, end int, p Params) (ResultSet, error) {
	count := end - begin

	switch {
	case count <= p.SerialChunk:
		return expandSerial(seeds, begin, end)

	case count <= p.ParallelBatch:
		return expandParallel(seeds, begin, end, p)

	default:
		result := make(ResultSet)
		for i := begin; i < end; i += p.ParallelBatch {
			chunkEnd := i + p.ParallelBatch
			if chunkEnd > end {
				chunkEnd = end
			}
			sub, err := ExpandRange(seeds, i, chunkEnd, p)
			if err != nil {
				return nil, err
			}
			mergeInto(result, sub)
		}
		return result, nil
	}
}

// expandSerial is case 1: process every seed in [begin, end) sequentially
// into one set.
func expandSerial(seeds SeedSource, begin, end int) (ResultSet, error) {
	result := make(ResultSet)
	for i := begin; i < end; i++ {
		seed, err := seeds.At(i)
		if err != nil {
			return nil, fmt.Errorf("search: read seed %d: %w", i, err)
		}
		expand.FindLarger(seed, result)
	}
	return result, nil
}

// expandParallel is case 2: partition into disjoint sub-ranges, copy each
// into an owned slice, run expandSerial on each concurrently (bounded to
// p.ParallelTasks in flight), then merge the per-task sets.
func expandParallel(seeds SeedSource, begin, end int, p Params) (ResultSet, error) {
	count := end - begin
	numChunks := (count + p.SerialChunk - 1) / p.SerialChunk

	chunks := make([]seedSlice, numChunks)
	for i := 0; i < numChunks; i++ {
		chunkBegin := begin + i*p.SerialChunk
		chunkEnd := chunkBegin + p.SerialChunk
		if chunkEnd > end {
			chunkEnd = end
		}
		owned := make(seedSlice, chunkEnd-chunkBegin)
		for j := range owned {
			seed, err := seeds.At(chunkBegin + j)
			if err != nil {
				return nil, fmt.Errorf("search: read seed %d: %w", chunkBegin+j, err)
			}
			owned[j] = seed
		}
		chunks[i] = owned
	}

	subResults := make([]ResultSet, numChunks)
	errs := make([]error, numChunks)

	sem := make(chan struct{}, p.ParallelTasks)
	var wg sync.WaitGroup
	for i := range chunks {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			subResults[i], errs[i] = expandSerial(chunks[i], 0, len(chunks[i]))
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	result := make(ResultSet)
	for i, sub := range subResults {
		mergeInto(result, sub)
		// Drop the reference so the GC can reclaim each sub-result as soon
		// as it has been folded in, mirroring the reference driver's
		// destructive-union hand-off.
		subResults[i] = nil
	}
	return result, nil
}

func mergeInto(dst, src ResultSet) {
	for k, v := range src {
		dst[k] = v
	}
}
