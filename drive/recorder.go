package drive

import (
	"github.com/baldhumanity/autodrive/ann"
	"github.com/baldhumanity/autodrive/fuzzy"
)

// Recorder drives with a FuzzyDriver and appends what it did to a training set
// every Every ticks, starting with the Every-th.
type Recorder struct {
	Driver *FuzzyDriver
	Set    *ann.TrainingSet
	Every  int

	ticks int
}

// NewRecorder records one pattern out of every ticks into set. every below 1 is
// treated as 1.
func NewRecorder(driver *FuzzyDriver, set *ann.TrainingSet, every int) *Recorder {
	if every < 1 {
		every = 1
	}
	return &Recorder{Driver: driver, Set: set, Every: every}
}

func (r *Recorder) Decide(s Sensors) (Command, error) {
	cmd, err := r.Driver.Decide(s)
	if err != nil {
		return cmd, err
	}
	r.ticks++
	if r.Set != nil && r.ticks%r.Every == 0 {
		r.Set.Add(fuzzy.EncodeInputs(s.Readings()), fuzzy.EncodeOutputs(cmd.Steer, cmd.Acceleration))
	}
	return cmd, nil
}

// Ticks returns how many decisions were made.
func (r *Recorder) Ticks() int { return r.ticks }
