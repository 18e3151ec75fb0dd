package ann

import (
	"math"
	"math/rand"

	"github.com/baldhumanity/autodrive/fuzzy"
)

// Range bounds one raw sensor value. Min may exceed Max.
type Range struct {
	Min, Max float64
}

// Ranges bounds every raw value drawn by GenerateRandomPattern.
type Ranges struct {
	Front       Range
	Emergency   Range
	FrontLeft   Range
	FrontRight  Range
	Left        Range
	Right       Range
	TowardsGoal Range
}

// DefaultRanges covers every distance in [0,1] and every heading in [-π, π].
func DefaultRanges() Ranges {
	unit := Range{0, 1}
	return Ranges{
		Front:       unit,
		Emergency:   unit,
		FrontLeft:   unit,
		FrontRight:  unit,
		Left:        unit,
		Right:       unit,
		TowardsGoal: Range{-math.Pi, math.Pi},
	}
}

// GenerateRandomPattern draws each raw reading uniformly from its range and
// labels it with the fuzzy controller. Inputs are encoded with
// fuzzy.EncodeInputs and outputs remapped from [-1,1] to [0,1].
func GenerateRandomPattern(rng *rand.Rand, ranges Ranges, weights fuzzy.Weights) TrainingPattern {
	r := fuzzy.Readings{
		Front:       uniform(rng, ranges.Front.Min, ranges.Front.Max),
		Emergency:   uniform(rng, ranges.Emergency.Min, ranges.Emergency.Max),
		FrontLeft:   uniform(rng, ranges.FrontLeft.Min, ranges.FrontLeft.Max),
		FrontRight:  uniform(rng, ranges.FrontRight.Min, ranges.FrontRight.Max),
		Left:        uniform(rng, ranges.Left.Min, ranges.Left.Max),
		Right:       uniform(rng, ranges.Right.Min, ranges.Right.Max),
		TowardsGoal: uniform(rng, ranges.TowardsGoal.Min, ranges.TowardsGoal.Max),
	}
	steer, acceleration := r.Decide(weights)
	return TrainingPattern{
		inputs:  fuzzy.EncodeInputs(r),
		outputs: fuzzy.EncodeOutputs(steer, acceleration),
	}
}
