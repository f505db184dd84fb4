// Package expand implements the single-seed expansion primitive: given one
// canonical N-cube, produce every canonical (N+1)-cube reachable from it by
// adding one face-adjacent unit cube.
package expand

import (
	"github.com/tjol/gopolycubes/coord"
	"github.com/tjol/gopolycubes/polycube"
)

// FindLarger appends each of the 6 axis-aligned neighbors of each of p's N
// coordinates (skipping any neighbor already in p), canonicalizes the
// resulting (N+1)-cube, and inserts it into out. Duplicates produced from
// different origins collapse naturally since out is a set keyed by the
// canonical coordinate pattern.
//
// This emits a superset of the canonical (N+1)-cubes adjacent to p;
// canonicalization plus the set dedup reduce it to exactly the distinct
// representatives reachable from p. The union over all canonical N-cube
// seeds equals the full set of canonical (N+1) polycubes.
func FindLarger(p polycube.PolyCube, out map[polycube.Key]polycube.PolyCube) {
	n := p.Size()
	have := make(map[coord.Coord]bool, n)
	for _, c := range p.Cubes {
		have[c] = true
	}

	grown := make([]coord.Coord, n+1)
	copy(grown, p.Cubes)

	for _, block := range p.Cubes {
		for _, neighbor := range coord.Neighbors6(block) {
			if have[neighbor] {
				continue
			}
			grown[n] = neighbor
			candidate := polycube.New(grown)
			norm := polycube.Canonical(candidate)
			out[polycube.KeyOf(norm)] = norm
		}
	}
}
