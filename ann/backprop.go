package ann

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// ComputeError compares the output activations of the last forward pass with
// targets and returns half the summed squared error. Each output neuron keeps its
// raw error (target - activation) in Delta for the backward pass.
//
// The result never exceeds OutputSize*100: NaN, infinities and larger values are
// replaced by that bound so a diverging run still yields a usable signal.
func (n *Network) ComputeError(targets []float64) (float64, error) {
	if len(targets) != n.outputSize {
		n.logger.Error("targets for neural network have the wrong size", "got", len(targets), "expected", n.outputSize)
		return 0, errors.Wrapf(ErrSizeMismatch, "got %d targets, expected %d", len(targets), n.outputSize)
	}

	e := 0.0
	for k := range n.outputLayer {
		o := &n.outputLayer[k]
		diff := targets[k] - o.Activation
		o.Delta = diff
		e += diff * diff
	}
	e *= 0.5

	return boundError(e, float64(n.outputSize)*100), nil
}

// Backpropagate adjusts every weight towards targets using learning rate eta.
// It must follow a RunForward on the matching inputs. The returned error is the
// one measured before the update.
func (n *Network) Backpropagate(targets []float64, eta float64) (float64, error) {
	e, err := n.ComputeError(targets)
	if err != nil {
		return 0, err
	}

	// delta rule on the output layer
	for k := range n.outputLayer {
		o := &n.outputLayer[k]
		o.Delta = n.sigmoidPrime(o.Value) * o.Delta
		floats.AddScaled(o.Weights[:n.hiddenSize], o.Delta*eta, n.hiddenActivations)
		o.Weights[n.hiddenSize] += o.Delta * eta
	}

	// hidden layer, fed by the output weights just updated
	for j := range n.hiddenLayer {
		h := &n.hiddenLayer[j]
		sumDeltas := 0.0
		for k := range n.outputLayer {
			sumDeltas += n.outputLayer[k].Delta * n.outputLayer[k].Weights[j]
		}
		h.Delta = h.Activation * sumDeltas
		floats.AddScaled(h.Weights[:n.inputSize], h.Delta*eta, n.squashedInputs)
		h.Weights[n.inputSize] += h.Delta * eta
	}

	return e, nil
}

// TrainPattern runs one forward pass on p's inputs and backpropagates towards
// its outputs. It returns the error measured before the update.
func (n *Network) TrainPattern(p TrainingPattern, eta float64) (float64, error) {
	if _, err := n.RunForward(p.inputs); err != nil {
		return 0, err
	}
	return n.Backpropagate(p.outputs, eta)
}
