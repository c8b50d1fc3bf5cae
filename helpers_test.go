package textfx

import (
	"math"
	"sync"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// sequenceRand replays a fixed list of values, cycling when exhausted.
type sequenceRand struct {
	values []float64
	next   int
}

func (s *sequenceRand) Float64() float64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

// fixedDims is a Dimensions with a mutable size.
type fixedDims struct {
	mu   sync.Mutex
	w, h int
}

func (d *fixedDims) Size() (int, int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.w, d.h
}

func (d *fixedDims) set(w, h int) {
	d.mu.Lock()
	d.w, d.h = w, h
	d.mu.Unlock()
}
