package search

import (
	"container/heap"

	"github.com/tjol/gopolycubes/polycube"
)

// sortedStream is a single ascending source of PolyCubes, used as one leg of
// the K+1-way merge. A stream may repeat a value; mergeUnique collapses such
// repeats like duplicates across streams. Peek must be safe to call
// repeatedly without advancing.
type sortedStream interface {
	Peek() (polycube.PolyCube, bool)
	Advance() error
}

// sliceStream is a sortedStream over an in-memory sorted slice.
type sliceStream struct {
	values []polycube.PolyCube
	pos    int
}

func newSliceStream(sorted []polycube.PolyCube) *sliceStream {
	return &sliceStream{values: sorted}
}

func (s *sliceStream) Peek() (polycube.PolyCube, bool) {
	if s.pos >= len(s.values) {
		return polycube.PolyCube{}, false
	}
	return s.values[s.pos], true
}

func (s *sliceStream) Advance() error {
	s.pos++
	return nil
}

type heapItem struct {
	val       polycube.PolyCube
	streamIdx int
}

type itemHeap []heapItem

func (h itemHeap) Len() int            { return len(h) }
func (h itemHeap) Less(i, j int) bool  { return polycube.Less(h[i].val, h[j].val) }
func (h itemHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *itemHeap) Push(x interface{}) { *h = append(*h, x.(heapItem)) }
func (h *itemHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// mergeUnique performs a classical K-way merge of streams, emitting each
// distinct value once in ascending order (spec.md §4.G sorted_unique_merge,
// generalized from "old + K new" to any number of streams so the merger can
// fold the existing cache and every pending batch in a single pass -- the
// strictly-better alternative spec.md's Open Question calls out over
// repeated pairwise merges). Duplicates are detected because equal values,
// from the same or distinct streams, surface consecutively out of the
// min-heap.
func mergeUnique(streams []sortedStream, emit func(polycube.PolyCube) error) (int, error) {
	h := &itemHeap{}
	heap.Init(h)
	for i, s := range streams {
		if v, ok := s.Peek(); ok {
			heap.Push(h, heapItem{val: v, streamIdx: i})
		}
	}

	count := 0
	var last polycube.PolyCube
	haveLast := false

	for h.Len() > 0 {
		item := heap.Pop(h).(heapItem)

		if !haveLast || !polycube.Equal(item.val, last) {
			if err := emit(item.val); err != nil {
				return count, err
			}
			count++
			last = item.val
			haveLast = true
		}

		s := streams[item.streamIdx]
		if err := s.Advance(); err != nil {
			return count, err
		}
		if v, ok := s.Peek(); ok {
			heap.Push(h, heapItem{val: v, streamIdx: item.streamIdx})
		}
	}

	return count, nil
}
