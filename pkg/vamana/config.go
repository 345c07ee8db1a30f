// Package vamana implements a single-layer navigable graph for approximate
// nearest-neighbor search, built incrementally via greedy search and
// alpha-relative-neighborhood-graph pruning (the Vamana construction
// algorithm), with in-place deletion per IP-DiskANN's Algorithm 5.
package vamana

import (
	"fmt"

	"github.com/sanonone/vamana/pkg/distance"
)

// Config controls the shape and quality/speed tradeoffs of a graph.
type Config struct {
	// R is the maximum out-degree of any node. Default: 32.
	R int `json:"r"`
	// L is the search beam width used during construction
	// (insert/update). Default: 64.
	L int `json:"l"`
	// Alpha is the pruning aggressiveness used on the second robust_prune
	// pass; must be >= 1.0. Default: 1.2.
	Alpha float64 `json:"alpha"`
	// Metric selects the distance function. Default: L2.
	Metric distance.Metric `json:"metric"`
	// Dims is the expected vector dimensionality. Insert/Update reject
	// vectors of any other length.
	Dims int `json:"dims"`
	// MedoidRecomputeInterval is how many add/sub operations the
	// streaming medoid tracker accumulates before it re-picks the graph's
	// entry point. Default: 10000, matching the tracker's own default.
	MedoidRecomputeInterval uint64 `json:"medoid_recompute_interval"`
}

// DefaultConfig returns the recommended construction parameters. Dims is
// left at zero and must be set before calling New. New does not substitute
// these values for zero fields, except that a zero MedoidRecomputeInterval
// also means 10000.
func DefaultConfig() Config {
	return Config{
		R:                       32,
		L:                       64,
		Alpha:                   1.2,
		Metric:                  distance.L2,
		MedoidRecomputeInterval: 10_000,
	}
}

func (c Config) validate() error {
	if c.R <= 0 {
		return fmt.Errorf("vamana: R must be positive, got %d", c.R)
	}
	if c.L <= 0 {
		return fmt.Errorf("vamana: L must be positive, got %d", c.L)
	}
	if c.Alpha < 1.0 {
		return fmt.Errorf("vamana: Alpha must be >= 1.0, got %f", c.Alpha)
	}
	if c.Dims <= 0 {
		return fmt.Errorf("vamana: Dims must be positive, got %d", c.Dims)
	}
	if _, err := distance.Get(c.Metric); err != nil {
		return fmt.Errorf("vamana: %w", err)
	}
	return nil
}
