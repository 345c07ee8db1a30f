//go:build amd64

package distance

import "github.com/klauspost/cpuid/v2"

// init wires the dispatch table to the AVX2 kernels when the running CPU
// supports them, falling back to the Gonum BLAS path otherwise.
func init() {
	if cpuid.CPU.Has(cpuid.AVX2) {
		funcs[L2] = l2AVX2Checked
		funcs[InnerProduct] = innerProductAVX2Checked
	} else {
		funcs[L2] = l2Gonum
		funcs[InnerProduct] = innerProductGonum
	}
}
