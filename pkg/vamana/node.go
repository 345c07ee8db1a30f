package vamana

// node is a single vertex in the graph: its vector and its out-neighbor
// list. The neighbor list is duplicate-free, never contains the node's own
// id, and is bounded at length R. Order carries no meaning — it's not a
// ranking, just whatever robust_prune last produced.
//
// Grounded on original_source/include/vamana.h's vamana_node_t.
type node struct {
	vector    []float32
	neighbors []uint32
}

func newNode(r int, vector []float32) *node {
	return &node{
		vector:    vector,
		neighbors: make([]uint32, 0, r),
	}
}

// dedupUint32 removes duplicate ids in place, preserving the order of
// first occurrence. Grounded on original_source/include/vamana.h's
// dedup_vector<T> template (there implemented with an unordered_set over
// std::remove_if).
func dedupUint32(ids []uint32) []uint32 {
	seen := make(map[uint32]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// hasDuplicates reports whether ids contains any repeated value.
// Grounded on original_source/src/vamana.cpp's hasDuplicates.
func hasDuplicates(ids []uint32) bool {
	seen := make(map[uint32]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return true
		}
		seen[id] = struct{}{}
	}
	return false
}
