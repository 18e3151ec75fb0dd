package drive

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baldhumanity/autodrive/ann"
	"github.com/baldhumanity/autodrive/fuzzy"
)

func TestRecorder(t *testing.T) {
	d, err := NewFuzzyDriver(fuzzy.Weights{TowardsGoal: 1})
	require.NoError(t, err)
	set := ann.NewTrainingSet(rand.New(rand.NewSource(1)))
	r := NewRecorder(d, set, 3)

	s := clearRoad
	s.ToGoal = Vec2{-1, -0.1}
	for i := 0; i < 10; i++ {
		cmd, err := r.Decide(s)
		require.NoError(t, err)
		assert.Equal(t, -1.0, cmd.Steer)
	}
	assert.Equal(t, 10, r.Ticks())
	require.Equal(t, 3, set.Len())

	// the clamped command is recorded, not the raw controller output
	p := set.Pattern(0)
	assert.Equal(t, []float64{0, 1}, p.Outputs())
	assert.Equal(t, fuzzy.EncodeInputs(s.Readings()), p.Inputs())

	var _ Controller = r
}

func TestRecorderEveryTick(t *testing.T) {
	d, err := NewFuzzyDriver(fuzzy.DefaultWeights())
	require.NoError(t, err)
	set := ann.NewTrainingSet(nil)
	r := NewRecorder(d, set, 0)
	for i := 0; i < 4; i++ {
		_, err := r.Decide(clearRoad)
		require.NoError(t, err)
	}
	assert.Equal(t, 4, set.Len())
}

func TestRangeTracker(t *testing.T) {
	tr := NewRangeTracker()
	r := tr.Ranges()
	assert.Equal(t, ann.Range{Min: 1, Max: 0}, r.Front)
	assert.Equal(t, ann.Range{Min: math.Pi, Max: -math.Pi}, r.TowardsGoal)

	s := clearRoad
	tr.Observe(s)
	s.Front, s.Left = 0.25, 0.75
	s.ToGoal = Vec2{1, 1}
	tr.Observe(s)

	r = tr.Ranges()
	assert.Equal(t, 2, tr.Observations())
	assert.Equal(t, ann.Range{Min: 0.25, Max: 1}, r.Front)
	assert.Equal(t, ann.Range{Min: 0.5, Max: 0.75}, r.Left)
	assert.Equal(t, ann.Range{Min: 1, Max: 1}, r.Emergency)
	assert.InDelta(t, -math.Pi/4, r.TowardsGoal.Min, 1e-12)
	assert.InDelta(t, 0, r.TowardsGoal.Max, 1e-12)

	// the observed ranges drive synthetic generation
	set := ann.NewTrainingSet(rand.New(rand.NewSource(2)))
	set.GenerateRandomPatterns(20, r, fuzzy.DefaultWeights())
	for _, p := range set.Patterns() {
		assert.InDelta(t, 1, p.Inputs()[7], 1e-15)
	}
}
