package textfx

import "math/rand/v2"

// Rand is the source of uniform random numbers used to create and re-place
// particles. *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	// Float64 returns a number in [0, 1).
	Float64() float64
}

// NewRand returns a seeded PCG source. Two sources with the same seed
// produce the same particle field.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
