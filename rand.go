package wishheart

import (
	"math/rand/v2"
	"time"
)

// Rand is the random source used by every layout function. Passing it
// explicitly keeps layouts reproducible under a fixed seed while production
// code seeds it fresh per run. *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// NewRand returns a PCG-backed source for the given seed. A zero seed is
// replaced with the current time.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// pick returns a uniformly chosen element of s. s must be non-empty.
func pick[T any](rng Rand, s []T) T {
	return s[rng.IntN(len(s))]
}

// centered returns a uniform value in [-0.5, 0.5).
func centered(rng Rand) float64 {
	return rng.Float64() - 0.5
}
