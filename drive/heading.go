// Package drive connects sensor readings to the fuzzy and neural controllers and
// turns their outputs into commands a car can apply.
package drive

import "math"

// Vec2 is a direction on the ground plane.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) angle() float64 { return math.Atan2(v.Y, v.X) }

func (v Vec2) isZero() bool { return v.X == 0 && v.Y == 0 }

// HeadingError returns the signed angle from forward to toGoal in [-π, π].
// Positive values mean the goal lies counter-clockwise of forward. A zero vector
// on either side yields 0.
func HeadingError(toGoal, forward Vec2) float64 {
	if toGoal.isZero() || forward.isZero() {
		return 0
	}
	a := repeat(toGoal.angle()-forward.angle(), 2*math.Pi)
	if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// repeat wraps x into [0, length).
func repeat(x, length float64) float64 {
	r := x - math.Floor(x/length)*length
	if r >= length {
		r = 0
	}
	return r
}
