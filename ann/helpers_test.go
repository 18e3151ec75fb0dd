package ann

import (
	"io"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testConfig returns a small deterministic configuration.
func testConfig(inputs, hidden, outputs int) *Config {
	c := DefaultConfig()
	c.Network.InputSize = inputs
	c.Network.HiddenSize = hidden
	c.Network.OutputSize = outputs
	c.Training.Seed = 1
	c.Training.ShuffleAfterEpoch = false
	return c
}

func newTestNetwork(t *testing.T, c *Config, seed int64) *Network {
	t.Helper()
	n, err := NewNetwork(c, WithRand(rand.New(rand.NewSource(seed))), WithLogger(discardLogger()))
	require.NoError(t, err)
	return n
}

// randomSet builds count patterns with values in [-1,1] inputs and [0,1] outputs.
func randomSet(seed int64, count, inputs, outputs int) *TrainingSet {
	rng := rand.New(rand.NewSource(seed))
	s := NewTrainingSet(rand.New(rand.NewSource(seed + 1)))
	for i := 0; i < count; i++ {
		in := make([]float64, inputs)
		for j := range in {
			in[j] = rng.Float64()*2 - 1
		}
		out := make([]float64, outputs)
		for j := range out {
			out[j] = rng.Float64()
		}
		s.Add(in, out)
	}
	return s
}
