package random_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tetrisdev/SPTServer/internal/pkg/random"
)

func TestSeeded_Reproducible(t *testing.T) {
	a := random.NewSeeded(42)
	b := random.NewSeeded(42)

	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
		assert.Equal(t, a.IntN(1000), b.IntN(1000))
		assert.Equal(t, a.NormFloat64(), b.NormFloat64())
	}
}

func TestIntInRange_Bounds(t *testing.T) {
	src := random.NewSeeded(7)

	for i := 0; i < 1000; i++ {
		v := src.IntInRange(3, 9)
		assert.GreaterOrEqual(t, v, 3)
		assert.LessOrEqual(t, v, 9)
	}
}

func TestIntInRange_DegenerateRange(t *testing.T) {
	src := random.NewSeeded(7)

	assert.Equal(t, 5, src.IntInRange(5, 5))
	assert.Equal(t, 5, src.IntInRange(5, 2))
}
