// Package random provides the injected randomness source for loot
// generation. Draw order against one Source fully determines a pass's
// output, so the same seed and inputs reproduce the same layout.
package random

import (
	"math/rand"
	"time"
)

//go:generate mockgen -destination=mock/mock.go -package=randommock github.com/tetrisdev/SPTServer/internal/pkg/random Source

// Source supplies the uniform, integer-range, and normal draws the
// generation pass needs. Implementations are not safe for concurrent use;
// each pass owns its own Source.
type Source interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// IntN returns a uniform value in [0, n). Panics if n <= 0.
	IntN(n int) int
	// IntInRange returns a uniform value in [min, max] inclusive. Returns
	// min when max <= min.
	IntInRange(min, max int) int
	// NormFloat64 returns a normally distributed value with mean 0 and
	// stddev 1.
	NormFloat64() float64
}

type seeded struct {
	rng *rand.Rand
}

// NewSeeded creates a Source with a fixed seed, for reproducible passes.
func NewSeeded(seed int64) Source {
	return &seeded{rng: rand.New(rand.NewSource(seed))}
}

// New creates a time-seeded Source.
func New() Source {
	return NewSeeded(time.Now().UnixNano())
}

func (s *seeded) Float64() float64 {
	return s.rng.Float64()
}

func (s *seeded) IntN(n int) int {
	return s.rng.Intn(n)
}

func (s *seeded) IntInRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + s.rng.Intn(max-min+1)
}

func (s *seeded) NormFloat64() float64 {
	return s.rng.NormFloat64()
}
