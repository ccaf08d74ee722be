package core

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
)

// Random is a uniform integer source over the half-open range [min, max).
type Random interface {
	Uniform(min, max int) int
}

// SeededRandom wraps math/rand with an explicit seed so runs can be replayed.
// A SeededRandom is NOT safe for concurrent use.
type SeededRandom struct {
	rng  *rand.Rand
	seed int64
}

// NewSeededRandom creates a random source. A zero seed draws one from the
// system entropy pool.
func NewSeededRandom(seed int64) *SeededRandom {
	if seed == 0 {
		seed = EntropySeed()
	}
	return &SeededRandom{
		rng:  rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed returns the seed the source was created with.
func (r *SeededRandom) Seed() int64 {
	return r.seed
}

// Uniform returns a value in [min, max). When max <= min it returns min.
func (r *SeededRandom) Uniform(min, max int) int {
	if max <= min {
		return min
	}
	return min + r.rng.Intn(max-min)
}

// EntropySeed reads a non-zero seed from crypto/rand, falling back to 1.
func EntropySeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 1
	}
	seed := int64(binary.LittleEndian.Uint64(b[:]) >> 1)
	if seed == 0 {
		seed = 1
	}
	return seed
}

// CoinFlip returns true half of the time.
func CoinFlip(r Random) bool {
	return r.Uniform(0, 2) == 1
}
