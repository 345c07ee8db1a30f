package vamana

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/sanonone/vamana/pkg/distance"
	"github.com/sanonone/vamana/pkg/types"
)

// Constants governing Algorithm 5's in-place deletion, grounded on
// original_source/src/vamana.cpp's Vamana::remove.
const (
	deleteSearchL    = 128 // beam width for the pre-delete local search
	deleteSearchK    = 50  // candidates kept from that search
	deleteCopiesC    = 3   // edges copied per repair anchor
	deletePatchAlpha = 1.2 // fixed re-prune alpha for edge patching, independent of Config.Alpha
)

// Graph is a single-layer approximate nearest-neighbor graph built and
// maintained via greedy search, alpha-RNG pruning, and in-place deletion.
// It is safe for concurrent use: reads (Search) take a read lock over the
// whole traversal, writes (Insert/Update/Remove/BatchDelete) take the
// write lock for their full duration.
//
// Grounded on original_source/include/vamana.h's Vamana class.
type Graph struct {
	mu sync.RWMutex

	cfg    Config
	distFn distance.Func

	nodes     map[uint32]*node
	tombstone map[uint32]struct{}

	startNode atomic.Uint32
	medoid    *streamingMedoid

	visitedPool *visitedSetPool

	metrics *graphMetrics
}

// New constructs an empty graph. cfg.Dims, cfg.R, cfg.L, cfg.Alpha and
// cfg.Metric must all be valid; see Config.validate.
func New(cfg Config) (*Graph, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	distFn, err := distance.Get(cfg.Metric)
	if err != nil {
		return nil, fmt.Errorf("vamana: %w", err)
	}

	g := &Graph{
		cfg:         cfg,
		distFn:      distFn,
		nodes:       make(map[uint32]*node),
		tombstone:   make(map[uint32]struct{}),
		medoid:      newStreamingMedoid(cfg.Dims, cfg.MedoidRecomputeInterval),
		visitedPool: newVisitedSetPool(),
		metrics:     newGraphMetrics(),
	}
	return g, nil
}

func (g *Graph) isDeleted(id uint32) bool {
	_, ok := g.tombstone[id]
	return ok
}

// Insert adds a new point to the graph, running a greedy search from the
// current entry point to find candidate neighbors, robust_prune to select
// p's out-edges, and a backward pass so p's new neighbors in turn consider
// linking back to p.
//
// Grounded on original_source/src/vamana.cpp's Vamana::insert.
func (g *Graph) Insert(id uint32, vector []float32) error {
	if len(vector) != g.cfg.Dims {
		return fmt.Errorf("vamana: insert %d: expected %d dims, got %d", id, g.cfg.Dims, len(vector))
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.nodes[id]; exists {
		return nil
	}

	g.nodes[id] = newNode(g.cfg.R, vector)
	if _, hasStart := g.nodes[g.startNode.Load()]; !hasStart {
		g.startNode.Store(id)
	}

	g.tryMedoidCompute(vector, false)

	sr := g.greedySearch(g.startNode.Load(), vector, g.cfg.L, g.cfg.L, nil)
	g.robustPrune(id, sr.nearest, g.cfg.Alpha)
	g.updateNeighbors(id, vector, g.cfg.Alpha)

	g.metrics.nodeCount.Set(float64(len(g.nodes)))
	slog.Debug("vamana: inserted node", "id", id, "size", len(g.nodes))
	return nil
}

// Update overwrites id's vector in place and re-links it into the graph
// the same way a fresh insert would, without changing its id.
//
// Grounded on original_source/src/vamana.cpp's Vamana::update.
func (g *Graph) Update(id uint32, newVector []float32) error {
	if len(newVector) != g.cfg.Dims {
		return fmt.Errorf("vamana: update %d: expected %d dims, got %d", id, g.cfg.Dims, len(newVector))
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	n, ok := g.nodes[id]
	if !ok || g.isDeleted(id) {
		return nil
	}

	n.vector = newVector

	sr := g.greedySearch(g.startNode.Load(), newVector, g.cfg.L, g.cfg.L, nil)
	g.robustPrune(id, sr.nearest, g.cfg.Alpha)
	g.updateNeighbors(id, newVector, g.cfg.Alpha)
	return nil
}

// updateNeighbors lets id's new out-neighbors consider linking back to
// id: if a neighbor still has spare out-degree it just appends id,
// otherwise it re-runs robust_prune over its full candidate set plus id.
//
// Grounded on original_source/src/vamana.cpp's Vamana::update_neighbors.
func (g *Graph) updateNeighbors(id uint32, vec []float32, alpha float64) {
	n := g.nodes[id]

	for _, neighborID := range n.neighbors {
		if g.isDeleted(neighborID) {
			continue
		}
		neighborNode, ok := g.nodes[neighborID]
		if !ok {
			continue
		}

		if len(neighborNode.neighbors) >= g.cfg.R {
			candidates := make([]types.Candidate, 0, len(neighborNode.neighbors)+1)
			for _, nn := range neighborNode.neighbors {
				if g.isDeleted(nn) {
					continue
				}
				nnNode, ok := g.nodes[nn]
				if !ok {
					continue
				}
				candidates = append(candidates, types.Candidate{
					Id:       nn,
					Distance: g.distFn(nnNode.vector, neighborNode.vector),
				})
			}
			candidates = append(candidates, types.Candidate{
				Id:       id,
				Distance: g.distFn(neighborNode.vector, vec),
			})
			sort.Slice(candidates, func(i, j int) bool { return candidates[i].Distance < candidates[j].Distance })
			g.robustPrune(neighborID, candidates, alpha)
		} else {
			found := false
			for _, x := range neighborNode.neighbors {
				if x == id {
					found = true
					break
				}
			}
			if !found {
				neighborNode.neighbors = append(neighborNode.neighbors, id)
			}
		}
	}
}

// tryMedoidCompute feeds point into the streaming medoid tracker and, if
// the recompute interval has elapsed (or force is set), re-centers the
// graph's entry point on the current centroid via a small-beam search.
//
// force exists to let a future maintenance pass request an immediate
// recompute without waiting out the countdown; nothing in this package
// calls it with force=true yet.
//
// Grounded on original_source/src/vamana.cpp's Vamana::try_medoid_compute.
func (g *Graph) tryMedoidCompute(point []float32, force bool) {
	g.medoid.add(point)

	if !force && !g.medoid.shouldRecompute() {
		return
	}

	centroid := g.medoid.centroid()
	sr := g.greedySearch(g.startNode.Load(), centroid, 1, 64, nil)
	if len(sr.nearest) > 0 {
		g.startNode.Store(sr.nearest[0].Id)
		g.metrics.medoidRecomputes.Inc()
	}
}

// Remove deletes id from the graph, repairing the neighborhoods of its
// approximate in-neighbors and out-neighbors so the graph stays connected,
// per IP-DiskANN's Algorithm 5.
//
// Grounded on original_source/src/vamana.cpp's Vamana::remove.
func (g *Graph) Remove(id uint32) {
	g.mu.Lock()
	defer g.mu.Unlock()

	n, ok := g.nodes[id]
	if !ok {
		return
	}

	sr := g.greedySearch(g.startNode.Load(), n.vector, deleteSearchK, deleteSearchL, nil)

	selectTopC := func(anchor uint32) []uint32 {
		anchorNode, ok := g.nodes[anchor]
		if !ok {
			return nil
		}
		buf := make([]types.Candidate, 0, len(sr.nearest))
		for _, cand := range sr.nearest {
			if cand.Id == id || cand.Id == anchor {
				continue
			}
			candNode, ok := g.nodes[cand.Id]
			if !ok {
				continue
			}
			buf = append(buf, types.Candidate{
				Id:       cand.Id,
				Distance: g.distFn(anchorNode.vector, candNode.vector),
			})
		}
		sort.Slice(buf, func(i, j int) bool { return buf[i].Distance < buf[j].Distance })
		take := deleteCopiesC
		if take > len(buf) {
			take = len(buf)
		}
		out := make([]uint32, take)
		for i := 0; i < take; i++ {
			out[i] = buf[i].Id
		}
		return out
	}

	patchEdges := func(owner uint32, add []uint32) {
		ownerNode, ok := g.nodes[owner]
		if !ok {
			return
		}
		ownerNode.neighbors = dedupUint32(append(ownerNode.neighbors, add...))

		if len(ownerNode.neighbors) > g.cfg.R {
			cand := make([]types.Candidate, 0, len(ownerNode.neighbors))
			for _, v := range ownerNode.neighbors {
				vNode, ok := g.nodes[v]
				if !ok {
					continue
				}
				cand = append(cand, types.Candidate{Id: v, Distance: g.distFn(vNode.vector, ownerNode.vector)})
			}
			sort.Slice(cand, func(i, j int) bool { return cand[i].Distance < cand[j].Distance })
			g.robustPrune(owner, cand, deletePatchAlpha)
		}
	}

	var approxIn []uint32
	for _, nn := range sr.nearest {
		nnNode, ok := g.nodes[nn.Id]
		if !ok {
			continue
		}
		for _, x := range nnNode.neighbors {
			if x == id {
				approxIn = append(approxIn, nn.Id)
				break
			}
		}
	}

	if len(approxIn) == 0 && len(n.neighbors) == 0 {
		g.medoid.sub(n.vector)
		g.tombstone[id] = struct{}{}
		delete(g.nodes, id)
		if g.startNode.Load() == id && len(g.nodes) > 0 {
			g.pickAnyStartNode()
			g.metrics.entryPointRepairs.Inc()
		}
		g.metrics.nodeCount.Set(float64(len(g.nodes)))
		return
	}

	for _, z := range approxIn {
		if _, ok := g.nodes[z]; !ok {
			continue
		}
		patchEdges(z, selectTopC(z))
	}

	for _, w := range n.neighbors {
		if _, ok := g.nodes[w]; !ok {
			continue
		}
		top := selectTopC(w)
		for _, y := range top {
			if y == w {
				continue
			}
			if _, ok := g.nodes[y]; !ok {
				continue
			}
			patchEdges(y, []uint32{w})
		}
	}

	g.medoid.sub(n.vector)
	g.tombstone[id] = struct{}{}
	delete(g.nodes, id)

	if g.startNode.Load() == id && len(g.nodes) > 0 {
		centroid := g.medoid.centroid()
		anyID := g.anyNodeID()
		medoidRes := g.greedySearch(anyID, centroid, 1, 64, nil)
		if len(medoidRes.nearest) > 0 {
			g.startNode.Store(medoidRes.nearest[0].Id)
		} else {
			g.startNode.Store(anyID)
		}
		g.metrics.entryPointRepairs.Inc()
	}

	g.metrics.nodeCount.Set(float64(len(g.nodes)))
}

func (g *Graph) pickAnyStartNode() {
	if len(g.nodes) == 0 {
		return
	}
	g.startNode.Store(g.anyNodeID())
}

func (g *Graph) anyNodeID() uint32 {
	for id := range g.nodes {
		return id
	}
	return 0
}

// BatchDelete physically removes every tombstoned id from every surviving
// node's neighbor list in a single sweep over the graph, then clears the
// tombstone set. It does not touch the tombstoned nodes' own entries —
// Remove already erased those from the node map.
//
// Grounded on original_source/src/vamana.cpp's Vamana::batch_delete.
func (g *Graph) BatchDelete() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.tombstone) == 0 {
		return
	}

	for _, n := range g.nodes {
		kept := n.neighbors[:0]
		for _, x := range n.neighbors {
			if _, dead := g.tombstone[x]; !dead {
				kept = append(kept, x)
			}
		}
		n.neighbors = kept
	}

	g.tombstone = make(map[uint32]struct{})
}

// Search returns up to k nodes nearest to query, with beam width l (l
// must be >= k for meaningful recall; a caller passing l < k gets l
// results). filter, if non-nil, restricts which nodes may appear in the
// result set.
func (g *Graph) Search(query []float32, k, l int, filter types.Filter) ([]types.Candidate, error) {
	if len(query) != g.cfg.Dims {
		return nil, fmt.Errorf("vamana: search: expected %d dims, got %d", g.cfg.Dims, len(query))
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	if len(g.nodes) == 0 {
		return nil, nil
	}

	start := g.startNode.Load()
	timer := g.metrics.searchTimer()
	defer timer.observe()

	sr := g.greedySearch(start, query, k, l, filter)
	return sr.nearest, nil
}

// GetNodeMap returns a snapshot of every live node's vector and neighbor
// list, keyed by id. Mutating the returned slices does not affect the
// graph.
func (g *Graph) GetNodeMap() map[uint32]struct {
	Vector    []float32
	Neighbors []uint32
} {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make(map[uint32]struct {
		Vector    []float32
		Neighbors []uint32
	}, len(g.nodes))
	for id, n := range g.nodes {
		out[id] = struct {
			Vector    []float32
			Neighbors []uint32
		}{
			Vector:    append([]float32(nil), n.vector...),
			Neighbors: append([]uint32(nil), n.neighbors...),
		}
	}
	return out
}

// GetNode returns id's vector and neighbor list, or ok=false if id is
// tombstoned or absent.
func (g *Graph) GetNode(id uint32) (vector []float32, neighbors []uint32, ok bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.isDeleted(id) {
		return nil, nil, false
	}
	n, exists := g.nodes[id]
	if !exists {
		return nil, nil, false
	}
	return append([]float32(nil), n.vector...), append([]uint32(nil), n.neighbors...), true
}

// GetStartNode returns the graph's current entry point.
func (g *Graph) GetStartNode() uint32 {
	return g.startNode.Load()
}

// GetSize returns the number of live (non-tombstoned) nodes.
func (g *Graph) GetSize() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}

// ValidateGraph reports whether every node's neighbor list is
// duplicate-free and within the configured out-degree bound R.
//
// Grounded on original_source/src/vamana.cpp's Vamana::validate_graph.
func (g *Graph) ValidateGraph() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	for _, n := range g.nodes {
		if len(n.neighbors) > g.cfg.R {
			return false
		}
		if hasDuplicates(n.neighbors) {
			return false
		}
	}
	return true
}
