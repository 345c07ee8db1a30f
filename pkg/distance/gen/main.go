// File: pkg/distance/gen/main.go
package main

import (
	. "github.com/mmcloughlin/avo/build"
	. "github.com/mmcloughlin/avo/operand"
	"github.com/mmcloughlin/avo/reg"
)

func main() {
	TEXT("L2SquaredAVX2", NOSPLIT, "func(a, b []float32) float32")
	Pragma("noescape")
	Doc("L2SquaredAVX2 computes the squared Euclidean distance between a and b, 8 lanes at a time with a scalar tail.")
	generateKernel(true)

	TEXT("DotProductAVX2", NOSPLIT, "func(a, b []float32) float32")
	Pragma("noescape")
	Doc("DotProductAVX2 computes the dot product of a and b, 8 lanes at a time with a scalar tail.")
	generateKernel(false)

	Generate()
}

// generateKernel emits either the squared-L2 or dot-product reduction.
// squared selects between accumulating (a-b)² (true) and a*b (false).
func generateKernel(squared bool) {
	aPtr := Load(Param("a").Base(), GP64())
	bPtr := Load(Param("b").Base(), GP64())
	n := Load(Param("a").Len(), GP64())

	sumVec := YMM()
	VXORPS(sumVec, sumVec, sumVec)

	Label("vector_loop")
	CMPQ(n, Imm(8))
	JL(LabelRef("tail"))

	va := YMM()
	vb := YMM()
	VMOVUPS(Mem{Base: aPtr}, va)
	VMOVUPS(Mem{Base: bPtr}, vb)

	if squared {
		diff := YMM()
		VSUBPS(vb, va, diff)
		VFMADD231PS(diff, diff, sumVec)
	} else {
		VFMADD231PS(vb, va, sumVec)
	}

	ADDQ(Imm(32), aPtr)
	ADDQ(Imm(32), bPtr)
	SUBQ(Imm(8), n)
	JMP(LabelRef("vector_loop"))

	Label("tail")
	sumHorizontal(sumVec)

	Label("tail_loop")
	CMPQ(n, Imm(0))
	JE(LabelRef("done"))

	sa := XMM()
	sb := XMM()
	VMOVSS(Mem{Base: aPtr}, sa)
	VMOVSS(Mem{Base: bPtr}, sb)

	if squared {
		diffS := XMM()
		VSUBSS(sb, sa, diffS)
		VFMADD231SS(diffS, diffS, sumVec.AsX())
	} else {
		VFMADD231SS(sb, sa, sumVec.AsX())
	}

	ADDQ(Imm(4), aPtr)
	ADDQ(Imm(4), bPtr)
	DECQ(n)
	JMP(LabelRef("tail_loop"))

	Label("done")
	ret := XMM()
	VMOVAPS(sumVec.AsX(), ret)
	Store(ret, ReturnIndex(0))
	RET()
}

// sumHorizontal folds the 8 float32 lanes of vec down into lane 0, the
// same shuffle-and-add sequence the teacher's sumHorizontal helper uses
// for its float16 kernel.
func sumHorizontal(vec reg.Virtual) {
	h1 := YMM()
	VEXTRACTF128(Imm(1), vec, h1.AsX())
	VADDPS(vec, h1, vec)

	h2 := YMM()
	VSHUFPS(Imm(0b11101110), vec, vec, h2)
	VADDPS(h2, vec, vec)

	h3 := YMM()
	VSHUFPS(Imm(0b01010101), vec, vec, h3)
	VADDPS(h3, vec, vec)
}
