package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Permutation returns a shuffled permutation of 0..n-1. The result only
// depends on the seed, so callers can rebuild identical tables across runs.
func (r *RNG) Permutation(n int) []uint8 {
	if n <= 0 {
		return nil
	}
	if n > 256 {
		n = 256
	}
	out := make([]uint8, n)
	for i := range out {
		out[i] = uint8(i)
	}
	r.r.Shuffle(n, func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }
