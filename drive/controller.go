package drive

import (
	"math"

	"github.com/pkg/errors"

	"github.com/baldhumanity/autodrive/ann"
	"github.com/baldhumanity/autodrive/fuzzy"
)

// Sensors is one tick of raw car state. Distances are normalized ray lengths in
// [0,1], 1 meaning nothing was hit.
type Sensors struct {
	Front      float64
	Emergency  float64
	FrontLeft  float64
	FrontRight float64
	Left       float64
	Right      float64

	ToGoal  Vec2 // from the car to its next goal
	Forward Vec2 // the car's facing direction
}

// Readings converts s to the controller's input, computing the heading error.
func (s Sensors) Readings() fuzzy.Readings {
	return fuzzy.Readings{
		Front:       s.Front,
		Emergency:   s.Emergency,
		FrontLeft:   s.FrontLeft,
		FrontRight:  s.FrontRight,
		Left:        s.Left,
		Right:       s.Right,
		TowardsGoal: HeadingError(s.ToGoal, s.Forward),
	}
}

// Command is what a car applies on a tick. Both values are in [-1,1].
type Command struct {
	Steer        float64
	Acceleration float64
}

// NewCommand clamps steer and acceleration to [-1,1].
func NewCommand(steer, acceleration float64) Command {
	return Command{Steer: clampUnit(steer), Acceleration: clampUnit(acceleration)}
}

func clampUnit(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	return math.Max(-1, math.Min(1, x))
}

// Controller decides a Command from the current sensors.
type Controller interface {
	Decide(s Sensors) (Command, error)
}

// FuzzyDriver drives with the fuzzy-logic rules.
type FuzzyDriver struct {
	Weights fuzzy.Weights
}

// NewFuzzyDriver validates w and returns a driver using it.
func NewFuzzyDriver(w fuzzy.Weights) (*FuzzyDriver, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &FuzzyDriver{Weights: w}, nil
}

func (d *FuzzyDriver) Decide(s Sensors) (Command, error) {
	steer, acceleration := s.Readings().Decide(d.Weights)
	return NewCommand(steer, acceleration), nil
}

// NeuralDriver drives with a trained network. The network must take the fuzzy
// input encoding and produce the two encoded outputs.
type NeuralDriver struct {
	Net *ann.Network
}

// NewNeuralDriver checks that net has the driving topology.
func NewNeuralDriver(net *ann.Network) (*NeuralDriver, error) {
	if net == nil {
		return nil, errors.New("neural driver needs a network")
	}
	if net.InputSize() != fuzzy.InputSize || net.OutputSize() != fuzzy.OutputSize {
		return nil, errors.Wrapf(ann.ErrSizeMismatch, "driving needs a %d-?-%d network, got %d-%d-%d",
			fuzzy.InputSize, fuzzy.OutputSize, net.InputSize(), net.HiddenSize(), net.OutputSize())
	}
	return &NeuralDriver{Net: net}, nil
}

func (d *NeuralDriver) Decide(s Sensors) (Command, error) {
	outputs, err := d.Net.RunForward(fuzzy.EncodeInputs(s.Readings()))
	if err != nil {
		return Command{}, errors.Wrap(err, "neural driver")
	}
	steer, acceleration, err := fuzzy.DecodeOutputs(outputs)
	if err != nil {
		return Command{}, errors.Wrap(err, "neural driver")
	}
	return NewCommand(steer, acceleration), nil
}
