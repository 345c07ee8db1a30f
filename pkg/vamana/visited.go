package vamana

import "sync"

// visitedSet is an epoch-tagged "seen" marker over node ids: one uint32
// tag per id plus a current epoch. clear() is O(1) — it just bumps the
// epoch — instead of the O(n) reset a plain bitset would need, which is
// what makes it safe to reuse across searches on the hot path. Grounded
// on original_source/include/vamana.h's VisitedSet.
type visitedSet struct {
	epoch uint32
	flags []uint32
}

func newVisitedSet(capacity uint32) *visitedSet {
	return &visitedSet{
		epoch: 1,
		flags: make([]uint32, capacity),
	}
}

// mark records id as visited and reports whether it was newly visited
// (i.e. it returns true the first time id is marked since the last
// clear()).
func (v *visitedSet) mark(id uint32) bool {
	v.ensureCapacity(id)
	if v.flags[id] == v.epoch {
		return false
	}
	v.flags[id] = v.epoch
	return true
}

// clear resets the set for reuse. On the rare wrap of the epoch counter
// back to zero it falls back to a full O(n) reset, exactly as the
// original does.
func (v *visitedSet) clear() {
	v.epoch++
	if v.epoch == 0 {
		for i := range v.flags {
			v.flags[i] = 0
		}
		v.epoch = 1
	}
}

func (v *visitedSet) ensureCapacity(id uint32) {
	if int(id) >= len(v.flags) {
		grown := make([]uint32, id+1)
		copy(grown, v.flags)
		v.flags = grown
	}
}

// visitedSetPool is a strictly thread-local pool: acquire/release never
// synchronize across goroutines, matching §4.2/§5's requirement that the
// visited-set pool carries no cross-thread sharing. sync.Pool already
// shards per-P internally, so the sync.Pool each Graph owns gives us that
// behavior without hand-rolling a goroutine-local map.
type visitedSetPool struct {
	pool sync.Pool
}

func newVisitedSetPool() *visitedSetPool {
	return &visitedSetPool{
		pool: sync.Pool{
			New: func() any { return newVisitedSet(256) },
		},
	}
}

func (p *visitedSetPool) acquire(capacity uint32) *visitedSet {
	v := p.pool.Get().(*visitedSet)
	v.clear()
	v.ensureCapacity(capacity)
	return v
}

func (p *visitedSetPool) release(v *visitedSet) {
	p.pool.Put(v)
}
