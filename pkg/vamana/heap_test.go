package vamana

import (
	"container/heap"
	"testing"

	"github.com/sanonone/vamana/pkg/types"
)

func TestMinHeapCorrectness(t *testing.T) {
	candidates := []types.Candidate{
		{Id: 1, Distance: 5.0},
		{Id: 2, Distance: 2.0},
		{Id: 3, Distance: 8.0},
		{Id: 4, Distance: 2.0},
	}

	h := newMinHeap(len(candidates))
	for _, c := range candidates {
		heap.Push(h, c)
	}

	expected := []float64{2.0, 2.0, 5.0, 8.0}
	for i, want := range expected {
		c := heap.Pop(h).(types.Candidate)
		if c.Distance != want {
			t.Errorf("minHeap Pop %d: got %f, want %f", i, c.Distance, want)
		}
	}
}

func TestMaxHeapCorrectness(t *testing.T) {
	candidates := []types.Candidate{
		{Id: 1, Distance: 5.0},
		{Id: 2, Distance: 8.0},
		{Id: 3, Distance: 2.0},
		{Id: 4, Distance: 8.0},
	}

	h := newMaxHeap(len(candidates))
	for _, c := range candidates {
		heap.Push(h, c)
	}

	expected := []float64{8.0, 8.0, 5.0, 2.0}
	for i, want := range expected {
		c := heap.Pop(h).(types.Candidate)
		if c.Distance != want {
			t.Errorf("maxHeap Pop %d: got %f, want %f", i, c.Distance, want)
		}
	}
}
