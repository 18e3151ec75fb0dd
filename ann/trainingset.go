package ann

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/baldhumanity/autodrive/fuzzy"
)

// TrainingPattern is one immutable (inputs, expected outputs) example.
type TrainingPattern struct {
	inputs  []float64
	outputs []float64
}

// NewTrainingPattern copies inputs and outputs into a new pattern.
func NewTrainingPattern(inputs, outputs []float64) TrainingPattern {
	return TrainingPattern{
		inputs:  append([]float64(nil), inputs...),
		outputs: append([]float64(nil), outputs...),
	}
}

// Inputs returns a copy of the pattern's inputs.
func (p TrainingPattern) Inputs() []float64 { return append([]float64(nil), p.inputs...) }

// Outputs returns a copy of the pattern's expected outputs.
func (p TrainingPattern) Outputs() []float64 { return append([]float64(nil), p.outputs...) }

// TrainingSet is an ordered collection of patterns. It only grows, except for
// Reset and Shuffle. Patterns are not validated against each other; the network
// checks sizes when it uses them.
type TrainingSet struct {
	ID       uuid.UUID
	patterns []TrainingPattern
	rng      *rand.Rand
}

// NewTrainingSet creates an empty set that shuffles and generates with rng. A nil
// rng is seeded from the clock.
func NewTrainingSet(rng *rand.Rand) *TrainingSet {
	if rng == nil {
		rng = newRand(0)
	}
	return &TrainingSet{ID: uuid.New(), rng: rng}
}

// Add appends a pattern built from copies of inputs and outputs.
func (s *TrainingSet) Add(inputs, outputs []float64) {
	s.patterns = append(s.patterns, NewTrainingPattern(inputs, outputs))
}

// AddPattern appends p.
func (s *TrainingSet) AddPattern(p TrainingPattern) {
	s.patterns = append(s.patterns, p)
}

// Len returns the number of patterns.
func (s *TrainingSet) Len() int { return len(s.patterns) }

// Pattern returns the i-th pattern.
func (s *TrainingSet) Pattern(i int) TrainingPattern { return s.patterns[i] }

// Patterns returns the patterns in their current order.
func (s *TrainingSet) Patterns() []TrainingPattern {
	return append([]TrainingPattern(nil), s.patterns...)
}

// Shuffle puts the patterns in a uniformly random order. Only the set in
// memory changes; SaveCheckpoint persists the new order, and a set loaded back
// with LoadTrainingSet keeps it.
func (s *TrainingSet) Shuffle() {
	s.rng.Shuffle(len(s.patterns), func(i, j int) {
		s.patterns[i], s.patterns[j] = s.patterns[j], s.patterns[i]
	})
}

// Reset removes every pattern.
func (s *TrainingSet) Reset() {
	s.patterns = nil
}

// GenerateRandomPatterns appends count synthetic patterns labelled by the fuzzy
// controller.
func (s *TrainingSet) GenerateRandomPatterns(count int, ranges Ranges, weights fuzzy.Weights) {
	for i := 0; i < count; i++ {
		s.patterns = append(s.patterns, GenerateRandomPattern(s.rng, ranges, weights))
	}
}
