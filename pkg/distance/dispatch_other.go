//go:build !amd64

package distance

// init wires the dispatch table to the Gonum BLAS path. There is no AVX2
// kernel on non-amd64 architectures, so there is nothing to feature-detect.
func init() {
	funcs[L2] = l2Gonum
	funcs[InnerProduct] = innerProductGonum
}
