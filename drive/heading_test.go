package drive

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeadingError(t *testing.T) {
	east := Vec2{1, 0}

	assert.InDelta(t, 0, HeadingError(east, east), 1e-15)
	assert.InDelta(t, math.Pi/2, HeadingError(Vec2{0, 1}, east), 1e-12)
	assert.InDelta(t, -math.Pi/2, HeadingError(Vec2{0, -1}, east), 1e-12)
	assert.InDelta(t, math.Pi/4, HeadingError(Vec2{0, 3}, Vec2{2, 2}), 1e-12)

	// across the ±π seam the short way round is taken
	assert.InDelta(t, 0.2, HeadingError(Vec2{math.Cos(math.Pi - 0.1), -math.Sin(math.Pi - 0.1)}, Vec2{math.Cos(math.Pi - 0.1), math.Sin(math.Pi - 0.1)}), 1e-12)

	assert.Equal(t, 0.0, HeadingError(Vec2{}, east))
	assert.Equal(t, 0.0, HeadingError(east, Vec2{}))
}

func TestHeadingErrorRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		a := Vec2{rng.NormFloat64(), rng.NormFloat64()}
		b := Vec2{rng.NormFloat64(), rng.NormFloat64()}
		h := HeadingError(a, b)
		assert.GreaterOrEqual(t, h, -math.Pi)
		assert.LessOrEqual(t, h, math.Pi)
	}
}
