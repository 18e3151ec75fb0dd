// Package fuzzy implements the hand-tuned fuzzy-logic driving controller and
// the encoding shared by live recording and synthetic training data.
package fuzzy

import (
	"math"

	"github.com/pkg/errors"
)

// ErrZeroWeights is reported when both blending weights are zero and the
// steering average would divide by zero.
var ErrZeroWeights = errors.New("weight_avg_center and weight_towards_goal cannot both be zero")

// Weights balances steering towards the next goal against keeping centered
// between obstacles.
type Weights struct {
	AvgCenter   float64 `ini:"weight_avg_center"`
	TowardsGoal float64 `ini:"weight_towards_goal"`
}

// DefaultWeights gives both steering sources the same influence.
func DefaultWeights() Weights {
	return Weights{AvgCenter: 1, TowardsGoal: 1}
}

// Validate reports ErrZeroWeights when the weights cannot be averaged.
func (w Weights) Validate() error {
	if w.AvgCenter+w.TowardsGoal == 0 {
		return ErrZeroWeights
	}
	return nil
}

// Readings is one tick of normalized sensor data. Distances are in [0,1] with 1
// meaning the ray hit nothing; TowardsGoal is the signed heading error in [-π, π].
type Readings struct {
	Front       float64
	Emergency   float64
	FrontLeft   float64
	FrontRight  float64
	Left        float64
	Right       float64
	TowardsGoal float64
}

// Mirror swaps left and right and negates the heading error.
func (r Readings) Mirror() Readings {
	return Readings{
		Front:       r.Front,
		Emergency:   r.Emergency,
		FrontLeft:   r.FrontRight,
		FrontRight:  r.FrontLeft,
		Left:        r.Right,
		Right:       r.Left,
		TowardsGoal: -r.TowardsGoal,
	}
}

// Decide runs the controller on r.
func (r Readings) Decide(w Weights) (steer, acceleration float64) {
	return Decide(r.Front, r.Emergency, r.FrontLeft, r.FrontRight, r.Left, r.Right, r.TowardsGoal, w.TowardsGoal, w.AvgCenter)
}

// Decide maps sensor readings to a steering and acceleration pair.
//
// Steering is a weighted average of the heading error and of how off-center the
// car sits between the side and front-diagonal sensors. When the emergency ray
// sees an obstacle, steering is pushed towards sign(s)*sqrt(|s|), sharpening the
// turn as the obstacle gets closer. Acceleration needs the front ray, the
// emergency ray and both front diagonals to be clear; each obstruction scales it
// down multiplicatively.
//
// Neither output is clamped: steer is usually in [-1,1] and acceleration in
// [-1,1], and consumers clamp both before use. If both weights are zero the
// steering term is 0.
func Decide(front, emergency, frontLeft, frontRight, left, right, towardsGoal, weightTowardsGoal, weightAvgCenter float64) (steer, acceleration float64) {
	// 0 when centered, positive when the car is too far right of center
	center := left - right
	centerFront := frontLeft - frontRight
	avgCenter := (center + centerFront) * 0.5

	if total := weightAvgCenter + weightTowardsGoal; total != 0 {
		steer = -(towardsGoal*weightTowardsGoal + avgCenter*weightAvgCenter) / total
	}

	if steer != 0 && emergency < 1 {
		steer = lerp(sign(steer)*math.Sqrt(math.Abs(steer)), steer, emergency)
	}

	acceleration = 2 * (front*front*emergency*emergency - 0.5)
	acceleration *= frontLeft * frontRight
	return steer, acceleration
}

// lerp interpolates from a to b with t clamped to [0,1].
func lerp(a, b, t float64) float64 {
	t = math.Max(0, math.Min(1, t))
	return a + (b-a)*t
}

func sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}
