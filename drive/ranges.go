package drive

import (
	"math"

	"github.com/baldhumanity/autodrive/ann"
)

// RangeTracker records the smallest and largest value each reading took along
// a drive, to bound synthetic pattern generation to what a track produces.
// Before any observation the ranges are inverted (min 1, max 0; heading min π,
// max -π).
type RangeTracker struct {
	ranges ann.Ranges
	count  int
}

func NewRangeTracker() *RangeTracker {
	empty := ann.Range{Min: 1, Max: 0}
	return &RangeTracker{ranges: ann.Ranges{
		Front:       empty,
		Emergency:   empty,
		FrontLeft:   empty,
		FrontRight:  empty,
		Left:        empty,
		Right:       empty,
		TowardsGoal: ann.Range{Min: math.Pi, Max: -math.Pi},
	}}
}

// Observe widens every range to include s.
func (t *RangeTracker) Observe(s Sensors) {
	r := s.Readings()
	widen(&t.ranges.Front, r.Front)
	widen(&t.ranges.Emergency, r.Emergency)
	widen(&t.ranges.FrontLeft, r.FrontLeft)
	widen(&t.ranges.FrontRight, r.FrontRight)
	widen(&t.ranges.Left, r.Left)
	widen(&t.ranges.Right, r.Right)
	widen(&t.ranges.TowardsGoal, r.TowardsGoal)
	t.count++
}

func widen(r *ann.Range, x float64) {
	r.Min = math.Min(r.Min, x)
	r.Max = math.Max(r.Max, x)
}

// Ranges returns the ranges observed so far.
func (t *RangeTracker) Ranges() ann.Ranges { return t.ranges }

// Observations returns how many ticks were observed.
func (t *RangeTracker) Observations() int { return t.count }
