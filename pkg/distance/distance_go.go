package distance

import "gonum.org/v1/gonum/blas/gonum"

// --- Scalar reference implementations ---
//
// Grounded directly on original_source/src/distance_functions.cpp's
// l2_distance_plain and ip_distance: a plain scalar loop, no SIMD, used
// both as the portable fallback and as the ground truth the SIMD/Gonum
// paths are tested against.

func l2Plain(a, b []float32) float64 {
	checkLen(a, b)
	var sum float32
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return float64(sum)
}

func innerProductPlain(a, b []float32) float64 {
	checkLen(a, b)
	var dot float32
	for i := range a {
		dot += a[i] * b[i]
	}
	return 1.0 - float64(dot)
}

func checkLen(a, b []float32) {
	if len(a) != len(b) {
		panic("distance: vectors have different lengths")
	}
}

// --- Gonum BLAS fallback ---
//
// Used on hosts without AVX2 (or non-amd64 architectures). Grounded on the
// teacher's squaredEuclideanGonum / dotProductAsDistanceGonum: Gonum's Go
// backend internally dispatches to its own vectorized routines, so this is
// still "SIMD, just somebody else's", consistent with never falling back
// to bare stdlib where the pack shows an ecosystem way.

var blasEngine = gonum.Implementation{}

// diffPool holds reusable scratch buffers for the L2-via-BLAS path so it
// stays allocation-free on the hot path, mirroring the teacher's
// diffWorkspace sync.Pool.
var diffPool = newFloat32Pool()

func l2Gonum(a, b []float32) float64 {
	checkLen(a, b)
	n := len(a)
	diff := diffPool.get(n)
	defer diffPool.put(diff)

	copy(diff, a)
	blasEngine.Saxpy(n, -1, b, 1, diff, 1)
	dot := blasEngine.Sdot(n, diff, 1, diff, 1)
	return float64(dot)
}

func innerProductGonum(a, b []float32) float64 {
	checkLen(a, b)
	dot := blasEngine.Sdot(len(a), a, 1, b, 1)
	return 1.0 - float64(dot)
}
