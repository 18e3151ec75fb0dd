package ann

import (
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetworkCheckpointRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "net.gob.gz")
	c := testConfig(4, 6, 3)
	c.Network.Beta = 3
	c.Network.CapSigmoidInput = true
	n := newTestNetwork(t, c, 21)
	require.NoError(t, n.SaveCheckpoint(path))

	// topology comes from the file, not from the config
	loaded, err := LoadNetworkCheckpoint(path, testConfig(9, 2, 2), WithLogger(discardLogger()))
	require.NoError(t, err)

	assert.Equal(t, n.ID, loaded.ID)
	assert.Equal(t, n.Config(), loaded.Config())
	wantHidden, wantOutput := n.Weights()
	gotHidden, gotOutput := loaded.Weights()
	assert.Equal(t, wantHidden, gotHidden)
	assert.Equal(t, wantOutput, gotOutput)

	in := []float64{0.3, -0.1, 0.8, 5}
	want, err := n.RunForward(in)
	require.NoError(t, err)
	got, err := loaded.RunForward(in)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadNetworkCheckpointErrors(t *testing.T) {
	_, err := LoadNetworkCheckpoint(filepath.Join(t.TempDir(), "missing"), nil)
	assert.Error(t, err)

	// a training set is not a network
	path := filepath.Join(t.TempDir(), "set.gob.gz")
	require.NoError(t, randomSet(1, 3, 2, 1).SaveCheckpoint(path))
	_, err = LoadNetworkCheckpoint(path, nil, WithLogger(discardLogger()))
	assert.Error(t, err)
}

func TestTrainingSetCheckpointRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "set.gob.gz")
	s := randomSet(2, 25, 9, 2)
	require.NoError(t, s.SaveCheckpoint(path))

	loaded, err := LoadTrainingSet(path, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, s.ID, loaded.ID)
	assert.Equal(t, s.Patterns(), loaded.Patterns())
}

func TestTrainingSetCheckpointKeepsShuffledOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "set.gob.gz")
	s := randomSet(3, 40, 2, 1)
	original := s.Patterns()

	s.Shuffle()
	shuffled := s.Patterns()
	require.NotEqual(t, original, shuffled)
	require.NoError(t, s.SaveCheckpoint(path))

	loaded, err := LoadTrainingSet(path, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, shuffled, loaded.Patterns())
}
