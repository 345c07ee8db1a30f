package vamana

import (
	"container/heap"
	"math"

	"github.com/sanonone/vamana/pkg/types"
)

// prefetchDistance mirrors original_source/src/vamana.cpp's
// PREFETCH_DISTANCE: when walking a node's neighbor list we resolve the
// map lookup for the neighbor PREFETCH_DISTANCE slots ahead before we
// need it. Go has no _mm_prefetch intrinsic, so this is a software
// prefetch: it can't pull the cache line in early, but it does overlap
// the map lookup's own latency with the rest of the loop body instead of
// paying for it serially right before use.
const prefetchDistance = 4

// greedySearchResult is the output of greedySearch: up to k candidates
// nearest to the query, sorted ascending by distance.
type greedySearchResult struct {
	nearest []types.Candidate
}

// greedySearch walks the graph from start toward query, maintaining a
// frontier (minHeap, explore nearest-unvisited-first) and a bounded
// result set (maxHeap of size <= l, root is the current worst-of-best).
// filter, if non-nil, is applied only at the point a candidate would
// enter the result set — tombstoned nodes are skipped from results but
// their out-edges are still traversed, so deletion doesn't sever
// reachability for nodes that haven't been physically patched yet.
//
// The caller must hold at least a read lock on g.mu.
//
// Grounded on original_source/src/vamana.cpp's Vamana::greedy_search.
func (g *Graph) greedySearch(start uint32, query []float32, k, l int, filter types.Filter) greedySearchResult {
	startNode, ok := g.nodes[start]
	if !ok {
		return greedySearchResult{}
	}

	frontier := newMinHeap(l * 2)
	results := newMaxHeap(l + 1)

	visited := g.visitedPool.acquire(uint32(len(g.nodes)))
	defer g.visitedPool.release(visited)

	heap.Push(frontier, types.Candidate{Id: start, Distance: g.distFn(startNode.vector, query)})
	visited.mark(start)

	maxDistance := math.MaxFloat64

	for frontier.Len() > 0 {
		nn := (*frontier)[0]
		if nn.Distance > maxDistance {
			break
		}
		nn = heap.Pop(frontier).(types.Candidate)

		if !g.isDeleted(nn.Id) {
			if results.Len() < l || nn.Distance < (*results)[0].Distance {
				if filter == nil || filter.Accept(nn.Id) {
					heap.Push(results, nn)
				}
				if results.Len() > l {
					heap.Pop(results)
				}
				if results.Len() == l {
					maxDistance = (*results)[0].Distance
				}
			}
		}

		current, ok := g.nodes[nn.Id]
		if !ok {
			continue
		}

		ids := current.neighbors
		for i := range ids {
			if i+prefetchDistance < len(ids) {
				_, _ = g.nodes[ids[i+prefetchDistance]]
			}

			if !visited.mark(ids[i]) {
				continue
			}

			nbr, ok := g.nodes[ids[i]]
			if !ok {
				continue
			}

			d := g.distFn(nbr.vector, query)
			heap.Push(frontier, types.Candidate{Id: ids[i], Distance: d})
		}
	}

	out := make([]types.Candidate, results.Len())
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(results).(types.Candidate)
	}
	if len(out) > k {
		out = out[:k]
	}
	return greedySearchResult{nearest: out}
}
