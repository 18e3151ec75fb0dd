package ann

import "math"

// Sigmoid is the logistic function with steepness beta: 1 / (1 + exp(-beta * x)).
// For beta > 0 the result lies in (0, 1) for every finite x, and is 0.5 at x = 0.
func Sigmoid(x, beta float64) float64 {
	return 1.0 / (1.0 + math.Exp(-beta*x))
}

// SigmoidPrime is the derivative of Sigmoid with respect to x.
func SigmoidPrime(x, beta float64) float64 {
	s := Sigmoid(x, beta)
	return beta * s * (1.0 - s)
}

// sigmoid applies the network's steepness and optional input cap.
func (n *Network) sigmoid(x float64) float64 {
	if n.config.CapSigmoidInput {
		x = clamp(x, -n.config.CapBound, n.config.CapBound)
	}
	return Sigmoid(x, n.config.Beta)
}

func (n *Network) sigmoidPrime(x float64) float64 {
	s := n.sigmoid(x)
	return n.config.Beta * s * (1.0 - s)
}
