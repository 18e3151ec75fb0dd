package ann

import (
	"compress/gzip"
	"encoding/gob"
	"math/rand"
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// networkSaveData holds what is needed to rebuild a trained Network. Training
// parameters are not saved; they come from the config passed when loading.
type networkSaveData struct {
	ID     uuid.UUID
	Config NetworkConfig
	Hidden [][]float64
	Output [][]float64
}

type trainingSetSaveData struct {
	ID      uuid.UUID
	Inputs  [][]float64
	Outputs [][]float64
}

// SaveCheckpoint writes the network's topology and weights to filePath as
// gzip compressed gob.
func (n *Network) SaveCheckpoint(filePath string) error {
	hidden, output := n.Weights()
	data := networkSaveData{
		ID:     n.ID,
		Config: n.Config(),
		Hidden: hidden,
		Output: output,
	}
	if err := writeGob(filePath, &data); err != nil {
		return errors.Wrap(err, "failed to save network")
	}
	n.logger.Info("network checkpoint saved", "path", filePath)
	return nil
}

// LoadNetworkCheckpoint rebuilds a network saved with SaveCheckpoint. Topology
// and sigmoid parameters come from the file; training parameters from config,
// or the defaults when config is nil.
func LoadNetworkCheckpoint(filePath string, config *Config, opts ...Option) (*Network, error) {
	var data networkSaveData
	if err := readGob(filePath, &data); err != nil {
		return nil, errors.Wrap(err, "failed to load network")
	}

	// Training parameters from the caller, topology from the file.
	c := DefaultConfig()
	if config != nil {
		cc := *config
		c = &cc
	}
	c.Network = data.Config

	n, err := NewNetwork(c, append([]Option{WithID(data.ID)}, opts...)...)
	if err != nil {
		return nil, errors.Wrapf(err, "checkpoint '%s'", filePath)
	}
	if err := n.SetWeights(data.Hidden, data.Output); err != nil {
		return nil, errors.Wrapf(err, "checkpoint '%s'", filePath)
	}
	n.logger.Info("network checkpoint loaded", "path", filePath,
		"input", n.inputSize, "hidden", n.hiddenSize, "output", n.outputSize)
	return n, nil
}

// SaveCheckpoint writes every pattern of the set, in its current order, to
// filePath as gzip compressed gob.
func (s *TrainingSet) SaveCheckpoint(filePath string) error {
	data := trainingSetSaveData{
		ID:      s.ID,
		Inputs:  make([][]float64, len(s.patterns)),
		Outputs: make([][]float64, len(s.patterns)),
	}
	for i, p := range s.patterns {
		data.Inputs[i] = p.inputs
		data.Outputs[i] = p.outputs
	}
	if err := writeGob(filePath, &data); err != nil {
		return errors.Wrap(err, "failed to save training set")
	}
	return nil
}

// LoadTrainingSet reads a set saved with TrainingSet.SaveCheckpoint. rng is
// used for later shuffles and generation; nil seeds one from the clock.
func LoadTrainingSet(filePath string, rng *rand.Rand) (*TrainingSet, error) {
	var data trainingSetSaveData
	if err := readGob(filePath, &data); err != nil {
		return nil, errors.Wrap(err, "failed to load training set")
	}
	if len(data.Inputs) != len(data.Outputs) {
		return nil, errors.Errorf("training set '%s' is corrupt: %d inputs for %d outputs",
			filePath, len(data.Inputs), len(data.Outputs))
	}

	s := NewTrainingSet(rng)
	s.ID = data.ID
	s.patterns = make([]TrainingPattern, len(data.Inputs))
	for i := range data.Inputs {
		s.patterns[i] = TrainingPattern{inputs: data.Inputs[i], outputs: data.Outputs[i]}
	}
	return s, nil
}

func writeGob(filePath string, v any) (err error) {
	file, err := os.Create(filePath)
	if err != nil {
		return errors.Wrapf(err, "failed to create checkpoint file '%s'", filePath)
	}
	// a failed close can lose buffered data, so it is reported unless an
	// earlier error already is
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = errors.Wrapf(cerr, "failed to close checkpoint file '%s'", filePath)
		}
	}()

	// Use gzip for compression
	gz := gzip.NewWriter(file)
	if err := gob.NewEncoder(gz).Encode(v); err != nil {
		gz.Close()
		return errors.Wrapf(err, "failed to encode checkpoint '%s'", filePath)
	}
	// Close writes the gzip footer; without it the file cannot be read back.
	if err := gz.Close(); err != nil {
		return errors.Wrapf(err, "failed to flush checkpoint '%s'", filePath)
	}
	return nil
}

func readGob(filePath string, v any) error {
	file, err := os.Open(filePath)
	if err != nil {
		return errors.Wrapf(err, "failed to open checkpoint file '%s'", filePath)
	}
	defer file.Close()

	// Use gzip for decompression
	gz, err := gzip.NewReader(file)
	if err != nil {
		return errors.Wrapf(err, "failed to create gzip reader for '%s'", filePath)
	}
	defer gz.Close()

	if err := gob.NewDecoder(gz).Decode(v); err != nil {
		return errors.Wrapf(err, "failed to decode checkpoint '%s'", filePath)
	}
	return nil
}
