package fuzzy

import (
	"math"

	"github.com/pkg/errors"
)

// Sizes of the vectors exchanged with the neural network.
const (
	InputSize  = 9
	OutputSize = 2
)

// EncodeInputs remaps readings to the network's input vector, every entry in [-1,1]:
//
//	[left-right, left*2-1, right*2-1,
//	 frontLeft-frontRight, frontLeft*2-1, frontRight*2-1,
//	 towardsGoal mapped from -π..π to -1..1,
//	 emergency*2-1, front*2-1]
func EncodeInputs(r Readings) []float64 {
	return []float64{
		r.Left - r.Right,
		r.Left*2 - 1,
		r.Right*2 - 1,
		r.FrontLeft - r.FrontRight,
		r.FrontLeft*2 - 1,
		r.FrontRight*2 - 1,
		Remap(-math.Pi, math.Pi, -1, 1, r.TowardsGoal),
		r.Emergency*2 - 1,
		r.Front*2 - 1,
	}
}

// EncodeOutputs remaps steer and acceleration from [-1,1] to [0,1].
func EncodeOutputs(steer, acceleration float64) []float64 {
	return []float64{steer*0.5 + 0.5, acceleration*0.5 + 0.5}
}

// DecodeOutputs reverses EncodeOutputs.
func DecodeOutputs(outputs []float64) (steer, acceleration float64, err error) {
	if len(outputs) != OutputSize {
		return 0, 0, errors.Errorf("expected %d outputs, got %d", OutputSize, len(outputs))
	}
	return outputs[0]*2 - 1, outputs[1]*2 - 1, nil
}

// Remap linearly maps x from [fromMin, fromMax] to [toMin, toMax].
func Remap(fromMin, fromMax, toMin, toMax, x float64) float64 {
	return toMin + (x-fromMin)*(toMax-toMin)/(fromMax-fromMin)
}
