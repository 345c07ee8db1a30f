// Package distance provides the distance kernels consumed by the vamana
// graph package: squared Euclidean (L2) and inner-product-derived distance
// over fixed-dimension float32 vectors.
//
// The package dispatches to an AVX2 SIMD implementation when the running
// CPU supports it (detected once at init time via klauspost/cpuid), with a
// pure-Go/Gonum fallback otherwise. Both paths are exercised by
// distance_test.go and must agree within a small tolerance.
package distance

import "fmt"

// Metric selects the distance calculation used by an index. The zero value
// is not a valid metric; callers must pick one explicitly.
type Metric string

const (
	// L2 is the squared Euclidean distance. The square root is omitted
	// since only relative ordering matters to the graph.
	L2 Metric = "l2"
	// InnerProduct returns 1 - Σ aᵢ·bᵢ, so that smaller is always closer,
	// matching L2's convention.
	InnerProduct Metric = "inner_product"
)

// Func computes the distance between two equal-length float32 vectors
// under a fixed metric. Vectors of differing length from the index's
// configured dims are a programming error; implementations may panic.
type Func func(a, b []float32) float64

// funcs is the dispatch table, overridden in an arch-specific init() (see
// dispatch_amd64.go / dispatch_other.go) once the running CPU's feature set
// is known.
var funcs = map[Metric]Func{
	L2:           l2Plain,
	InnerProduct: innerProductPlain,
}

// Get returns the dispatch-selected function for metric. It returns an
// error for an unrecognized metric; a configured index should never hit
// this, since New validates the metric once at construction.
func Get(metric Metric) (Func, error) {
	fn, ok := funcs[metric]
	if !ok {
		return nil, fmt.Errorf("distance: unsupported metric %q", metric)
	}
	return fn, nil
}

// PlainL2 and PlainInnerProduct are the scalar reference implementations,
// exported so tests can assert SIMD/Gonum paths
// agree with the scalar fallback within a small tolerance.
func PlainL2(a, b []float32) float64           { return l2Plain(a, b) }
func PlainInnerProduct(a, b []float32) float64 { return innerProductPlain(a, b) }
