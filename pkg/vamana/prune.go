package vamana

import (
	"math"

	"github.com/sanonone/vamana/pkg/types"
)

// pruned marks a candidate as already selected (consumed) without
// shrinking the slice, the same sentinel-distance trick
// original_source/src/vamana.cpp's robust_prune uses
// (std::numeric_limits<float>::lowest()) so the outer two-pass loop can
// keep indexing into a stable slice.
const pruned = -math.MaxFloat64

// robustPrune selects p's new out-neighbor set from candidates, which
// must already be sorted ascending by distance to p (closest first). It
// runs two passes: alpha=1.0 first (the strict relative-neighborhood-graph
// condition), then the caller's alpha, so the initial pass tends to prefer
// diverse, well-spread neighbors and the second pass only relaxes that
// once slots remain unfilled.
//
// Grounded on original_source/src/vamana.cpp's robust_prune.
func (g *Graph) robustPrune(p uint32, candidates []types.Candidate, alpha float64) {
	n, ok := g.nodes[p]
	if !ok {
		return
	}
	n.neighbors = n.neighbors[:0]

	for pass := 0; pass < 2; pass++ {
		a := 1.0
		if pass == 1 {
			a = alpha
		}
		occluded := make([]bool, len(candidates))

		for i := range candidates {
			if len(n.neighbors) >= g.cfg.R {
				return
			}
			if occluded[i] {
				continue
			}
			if candidates[i].Id == p {
				continue
			}

			if candidates[i].Distance != pruned {
				n.neighbors = append(n.neighbors, candidates[i].Id)
				candidates[i].Distance = pruned
			}

			neighborNode, ok := g.nodes[candidates[i].Id]
			if !ok {
				continue
			}
			neighborVec := neighborNode.vector

			for j := i + 1; j < len(candidates); j++ {
				if candidates[j].Distance == pruned || occluded[j] {
					continue
				}
				if candidates[j].Id == p {
					continue
				}
				cand, ok := g.nodes[candidates[j].Id]
				if !ok {
					continue
				}
				distBetween := g.distFn(neighborVec, cand.vector)
				if a*distBetween <= candidates[j].Distance {
					occluded[j] = true
				}
			}
		}
	}
}
