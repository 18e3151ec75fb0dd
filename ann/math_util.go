package ann

import (
	"math"
	"math/rand"
	"time"
)

// clamp restricts a value to a given range [minVal, maxVal].
func clamp(value, minVal, maxVal float64) float64 {
	return math.Max(minVal, math.Min(value, maxVal))
}

// uniform draws from [a, b). The bounds may be given in either order.
func uniform(rng *rand.Rand, a, b float64) float64 {
	return a + rng.Float64()*(b-a)
}

// newRand seeds a generator, falling back to the clock when seed is 0.
func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// boundError keeps an error signal usable by the learning-rate policy: NaN,
// infinities and anything above limit collapse to limit.
func boundError(e, limit float64) float64 {
	if math.IsNaN(e) || math.IsInf(e, 0) || e > limit {
		return limit
	}
	return e
}
