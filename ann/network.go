package ann

import (
	"log/slog"
	"math/rand"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Neuron is one densely connected unit. Weights holds one weight per input plus
// a trailing bias weight.
type Neuron struct {
	Weights    []float64
	Value      float64 // weighted sum of the inputs, from the last forward pass
	Activation float64 // sigmoid(Value)
	Delta      float64 // only meaningful during and right after a training step
}

// Network is a three layer perceptron: input, one hidden layer and output, every
// layer densely connected with a bias. A Network is not safe for concurrent use;
// at most one Task may run against it at a time.
type Network struct {
	ID uuid.UUID

	config   NetworkConfig
	training TrainingConfig

	inputSize, hiddenSize, outputSize int

	// squashedInputs caches sigmoid(input) of the last forward pass; the hidden
	// layer weighs these rather than the raw inputs.
	squashedInputs    []float64
	hiddenActivations []float64

	hiddenLayer []Neuron
	outputLayer []Neuron

	rng    *rand.Rand
	logger *slog.Logger
	busy   atomic.Bool
}

// Option customizes a Network at construction.
type Option func(*Network)

// WithRand sets the source used for weight initialization.
func WithRand(rng *rand.Rand) Option {
	return func(n *Network) { n.rng = rng }
}

// WithLogger sets the logger used for topology, training and checkpoint events.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Network) { n.logger = logger }
}

// WithID restores a known identity, e.g. when loading a checkpoint.
func WithID(id uuid.UUID) Option {
	return func(n *Network) { n.ID = id }
}

// NewNetwork builds a network with random weights in [-1, 1] from config.
func NewNetwork(config *Config, opts ...Option) (*Network, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Network.Validate(); err != nil {
		return nil, err
	}
	if err := config.Training.Validate(); err != nil {
		return nil, err
	}

	n := &Network{
		ID:         uuid.New(),
		config:     config.Network,
		training:   config.Training,
		inputSize:  config.Network.InputSize,
		hiddenSize: config.Network.HiddenSize,
		outputSize: config.Network.OutputSize,
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.rng == nil {
		n.rng = newRand(config.Training.Seed)
	}
	if n.logger == nil {
		n.logger = slog.Default()
	}
	n.logger = n.logger.With("network", n.ID.String())

	n.checkTopology()
	return n, nil
}

func (n *Network) InputSize() int  { return n.inputSize }
func (n *Network) HiddenSize() int { return n.hiddenSize }
func (n *Network) OutputSize() int { return n.outputSize }

// Config returns the network parameters, with the sizes currently in effect.
func (n *Network) Config() NetworkConfig {
	c := n.config
	c.InputSize, c.HiddenSize, c.OutputSize = n.inputSize, n.hiddenSize, n.outputSize
	return c
}

// TrainingConfig returns the parameters used by TrainOnSet.
func (n *Network) TrainingConfig() TrainingConfig {
	return n.training
}

// ResizeLayers changes the layer sizes. Every layer whose fan-in or neuron count
// changes is rebuilt with fresh random weights, discarding what it had learnt;
// this is logged as a warning.
func (n *Network) ResizeLayers(inputSize, hiddenSize, outputSize int) error {
	if inputSize <= 0 || hiddenSize <= 0 || outputSize <= 0 {
		n.logger.Error("refusing to resize neural network", "input", inputSize, "hidden", hiddenSize, "output", outputSize)
		return errors.Wrapf(ErrInvalidTopology, "resize to %d/%d/%d", inputSize, hiddenSize, outputSize)
	}
	n.inputSize, n.hiddenSize, n.outputSize = inputSize, hiddenSize, outputSize
	if n.checkTopology() {
		n.logger.Warn("resized neural network, trained weights discarded for rebuilt layers",
			"input", inputSize, "hidden", hiddenSize, "output", outputSize)
	}
	return nil
}

// Reset discards all learning by re-randomizing every weight.
func (n *Network) Reset() {
	n.hiddenLayer = nil
	n.outputLayer = nil
	n.checkTopology()
	n.logger.Info("reset neural network weights")
}

// checkTopology makes every buffer and weight vector match the current sizes.
// It returns true when anything had to be rebuilt.
func (n *Network) checkTopology() bool {
	rebuilt := false

	if len(n.squashedInputs) != n.inputSize {
		n.squashedInputs = make([]float64, n.inputSize)
	}
	if len(n.hiddenActivations) != n.hiddenSize {
		n.hiddenActivations = make([]float64, n.hiddenSize)
	}

	if len(n.hiddenLayer) != n.hiddenSize {
		n.hiddenLayer = make([]Neuron, n.hiddenSize)
		rebuilt = true
	}
	for j := range n.hiddenLayer {
		if len(n.hiddenLayer[j].Weights) != n.inputSize+1 {
			n.hiddenLayer[j].Weights = n.randomWeights(n.inputSize + 1)
			rebuilt = true
		}
	}

	if len(n.outputLayer) != n.outputSize {
		n.outputLayer = make([]Neuron, n.outputSize)
		rebuilt = true
	}
	for k := range n.outputLayer {
		if len(n.outputLayer[k].Weights) != n.hiddenSize+1 {
			n.outputLayer[k].Weights = n.randomWeights(n.hiddenSize + 1)
			rebuilt = true
		}
	}

	if rebuilt {
		n.logger.Debug("refreshed neural network layers", "input", n.inputSize, "hidden", n.hiddenSize, "output", n.outputSize)
	}
	return rebuilt
}

func (n *Network) randomWeights(size int) []float64 {
	w := make([]float64, size)
	for i := range w {
		w[i] = uniform(n.rng, -1, 1)
	}
	return w
}

// Weights returns copies of the hidden and output weight matrices, one row per
// neuron with the bias weight last.
func (n *Network) Weights() (hidden, output [][]float64) {
	return copyRows(n.hiddenLayer), copyRows(n.outputLayer)
}

// SetWeights replaces every weight. The shapes must match the current topology.
func (n *Network) SetWeights(hidden, output [][]float64) error {
	if err := checkRows(hidden, n.hiddenSize, n.inputSize+1); err != nil {
		return errors.Wrap(err, "hidden layer")
	}
	if err := checkRows(output, n.outputSize, n.hiddenSize+1); err != nil {
		return errors.Wrap(err, "output layer")
	}
	for j := range n.hiddenLayer {
		copy(n.hiddenLayer[j].Weights, hidden[j])
	}
	for k := range n.outputLayer {
		copy(n.outputLayer[k].Weights, output[k])
	}
	return nil
}

func copyRows(layer []Neuron) [][]float64 {
	rows := make([][]float64, len(layer))
	for i := range layer {
		rows[i] = append([]float64(nil), layer[i].Weights...)
	}
	return rows
}

func checkRows(rows [][]float64, count, width int) error {
	if len(rows) != count {
		return errors.Wrapf(ErrSizeMismatch, "got %d neurons, expected %d", len(rows), count)
	}
	for i, row := range rows {
		if len(row) != width {
			return errors.Wrapf(ErrSizeMismatch, "neuron %d has %d weights, expected %d", i, len(row), width)
		}
	}
	return nil
}

// RunForward computes the network's output activations for inputs. The input
// slice must have exactly InputSize elements; anything else is reported as
// ErrSizeMismatch and nothing is computed.
//
// Hidden neurons weigh sigmoid(input) rather than the raw input. Trained weights
// depend on this, so it must not change.
func (n *Network) RunForward(inputs []float64) ([]float64, error) {
	if len(inputs) != n.inputSize {
		n.logger.Error("inputs to neural network have the wrong size", "got", len(inputs), "expected", n.inputSize)
		return nil, errors.Wrapf(ErrSizeMismatch, "got %d inputs, expected %d", len(inputs), n.inputSize)
	}

	for i, x := range inputs {
		n.squashedInputs[i] = n.sigmoid(x)
	}

	for j := range n.hiddenLayer {
		h := &n.hiddenLayer[j]
		h.Value = floats.Dot(h.Weights[:n.inputSize], n.squashedInputs) + h.Weights[n.inputSize]
		h.Activation = n.sigmoid(h.Value)
		n.hiddenActivations[j] = h.Activation
	}

	outputs := make([]float64, n.outputSize)
	for k := range n.outputLayer {
		o := &n.outputLayer[k]
		o.Value = floats.Dot(o.Weights[:n.hiddenSize], n.hiddenActivations) + o.Weights[n.hiddenSize]
		o.Activation = n.sigmoid(o.Value)
		outputs[k] = o.Activation
	}
	return outputs, nil
}
