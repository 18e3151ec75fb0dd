package ann

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSigmoid(t *testing.T) {
	for _, beta := range []float64{0.5, 1, 5} {
		assert.Equal(t, 0.5, Sigmoid(0, beta))
		assert.InDelta(t, beta/4, SigmoidPrime(0, beta), 1e-15)
	}

	prev := 0.0
	for x := -5.0; x <= 5.0; x += 0.05 {
		s := Sigmoid(x, 5)
		assert.Greater(t, s, 0.0, "x=%v", x)
		assert.Less(t, s, 1.0, "x=%v", x)
		assert.Greater(t, s, prev, "sigmoid must be increasing at x=%v", x)
		assert.InDelta(t, 1.0, s+Sigmoid(-x, 5), 1e-12, "sigmoid must be symmetric at x=%v", x)
		prev = s
	}
}

func TestNetworkSigmoidCap(t *testing.T) {
	c := testConfig(2, 2, 1)
	c.Network.Beta = 2
	n := newTestNetwork(t, c, 1)

	assert.InDelta(t, Sigmoid(3, 2), n.sigmoid(3), 1e-15)

	n.config.CapSigmoidInput = true
	n.config.CapBound = 1
	assert.Equal(t, Sigmoid(1, 2), n.sigmoid(3))
	assert.Equal(t, Sigmoid(-1, 2), n.sigmoid(-40))
	assert.Equal(t, Sigmoid(0.5, 2), n.sigmoid(0.5))
	assert.Equal(t, SigmoidPrime(1, 2), n.sigmoidPrime(3))
}
