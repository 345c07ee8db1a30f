package distance

import "sync"

// float32Pool is a sync.Pool of reusable scratch slices, sized on first
// use and regrown as needed. It exists so the Gonum fallback path never
// allocates per call once warmed up, the same trick the teacher's
// diffWorkspace pool plays for its own BLAS path.
type float32Pool struct {
	pool sync.Pool
}

func newFloat32Pool() *float32Pool {
	return &float32Pool{
		pool: sync.Pool{
			New: func() any {
				s := make([]float32, 1536)
				return &s
			},
		},
	}
}

func (p *float32Pool) get(n int) []float32 {
	ptr := p.pool.Get().(*[]float32)
	if cap(*ptr) < n {
		*ptr = make([]float32, n)
	}
	return (*ptr)[:n]
}

func (p *float32Pool) put(s []float32) {
	p.pool.Put(&s)
}
