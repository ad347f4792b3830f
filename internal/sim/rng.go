package sim

import "math/rand"

// RandomSource is the seeded generator shared by the spawn director and debris
// initialization. All variance in a run flows through one source so that a seed
// fully determines the run.
type RandomSource struct {
	seed int64
	rng  *rand.Rand
}

// NewRandomSource creates a source seeded with seed.
func NewRandomSource(seed int64) *RandomSource {
	return &RandomSource{
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Seed returns the seed the source was last seeded with.
func (s *RandomSource) Seed() int64 {
	return s.seed
}

// Reseed restarts the sequence from seed.
func (s *RandomSource) Reseed(seed int64) {
	s.seed = seed
	s.rng = rand.New(rand.NewSource(seed))
}

// Float returns a uniform value in [0, 1).
func (s *RandomSource) Float() float64 {
	return s.rng.Float64()
}

// Range returns a uniform value in [min, max). Returns min when the range is empty.
func (s *RandomSource) Range(min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + s.rng.Float64()*(max-min)
}

// Intn returns a uniform int in [0, n). Returns 0 when n <= 1.
func (s *RandomSource) Intn(n int) int {
	if n <= 1 {
		return 0
	}
	return s.rng.Intn(n)
}

// Sign returns -1 or +1 with equal probability.
func (s *RandomSource) Sign() float64 {
	if s.rng.Float64() > 0.5 {
		return -1
	}
	return 1
}
