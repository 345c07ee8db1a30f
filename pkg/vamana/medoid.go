package vamana

import "sync"

// streamingMedoid maintains a running vector sum so the graph's entry
// point can be kept near the true centroid without ever recomputing it
// from scratch over every live node. add/sub are O(dims); centroid is
// O(dims) and resets the recompute countdown.
//
// Grounded on original_source/include/vamana.h's StreamingMedoid.
type streamingMedoid struct {
	mu        sync.Mutex
	sum       []float32
	n         uint64
	interval  uint64
	countdown uint64
}

func newStreamingMedoid(dims int, recomputeEvery uint64) *streamingMedoid {
	if recomputeEvery == 0 {
		recomputeEvery = 10_000
	}
	return &streamingMedoid{
		sum:       make([]float32, dims),
		interval:  recomputeEvery,
		countdown: recomputeEvery,
	}
}

// add records a newly-inserted vector. Call on every insert.
func (m *streamingMedoid) add(x []float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.sum {
		m.sum[i] += x[i]
	}
	m.n++
	if m.countdown > 0 {
		m.countdown--
	}
}

// sub removes a physically-deleted vector's contribution. Call on every
// physical delete.
func (m *streamingMedoid) sub(x []float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.sum {
		m.sum[i] -= x[i]
	}
	m.n--
	if m.countdown > 0 {
		m.countdown--
	}
}

// shouldRecompute reports whether the countdown has reached zero and a
// new entry point should be selected.
func (m *streamingMedoid) shouldRecompute() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.countdown == 0
}

// centroid returns the current mean vector and resets the countdown.
func (m *streamingMedoid) centroid() []float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := make([]float32, len(m.sum))
	if m.n == 0 {
		m.countdown = m.interval
		return c
	}
	scale := 1.0 / float32(m.n)
	for i := range c {
		c[i] = m.sum[i] * scale
	}
	m.countdown = m.interval
	return c
}
