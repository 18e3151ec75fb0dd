package ann

import (
	"math"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/ini.v1"

	"github.com/baldhumanity/autodrive/fuzzy"
)

// Config stores every tunable of a network, its training runs and the synthetic
// pattern generator. It is read once and treated as immutable afterwards.
type Config struct {
	Network   NetworkConfig
	Training  TrainingConfig
	Fuzzy     fuzzy.Weights
	Generator GeneratorConfig
}

// NetworkConfig holds the topology and activation parameters of the perceptron.
type NetworkConfig struct {
	InputSize  int `ini:"input_size"`
	HiddenSize int `ini:"hidden_size"`
	OutputSize int `ini:"output_size"`

	// Beta is the sigmoid steepness. 5 maps roughly -1..1 onto ~0..1.
	Beta float64 `ini:"beta"`

	// When CapSigmoidInput is set, sigmoid inputs are clamped to [-CapBound, CapBound]
	// so derivatives never become vanishingly small.
	CapSigmoidInput bool    `ini:"cap_sigmoid_input"`
	CapBound        float64 `ini:"cap_bound"`
}

// TrainingConfig holds the parameters of a training run.
type TrainingConfig struct {
	LearningRate         float64 `ini:"learning_rate"`          // initial η
	LearningRateDecay    float64 `ini:"learning_rate_decay"`    // δη, in (0, 1]
	AdaptiveLearningRate bool    `ini:"adaptive_learning_rate"` // cut η by 10 when error grows
	Subset               float64 `ini:"subset"`                 // fraction of the set shown per epoch
	Iterations           int     `ini:"iterations"`             // number of epochs
	ShuffleAfterEpoch    bool    `ini:"shuffle_after_epoch"`
	CheckpointPath       string  `ini:"checkpoint_path"` // weights are saved here when training completes
	Seed                 int64   `ini:"seed"`            // 0 picks a time based seed
}

// GeneratorConfig describes how many synthetic patterns to draw and the range
// each raw sensor value is drawn from.
type GeneratorConfig struct {
	RandomPatterns int `ini:"random_patterns"`

	MinFront       float64 `ini:"min_front"`
	MaxFront       float64 `ini:"max_front"`
	MinEmergency   float64 `ini:"min_emergency"`
	MaxEmergency   float64 `ini:"max_emergency"`
	MinFrontLeft   float64 `ini:"min_front_left"`
	MaxFrontLeft   float64 `ini:"max_front_left"`
	MinFrontRight  float64 `ini:"min_front_right"`
	MaxFrontRight  float64 `ini:"max_front_right"`
	MinLeft        float64 `ini:"min_left"`
	MaxLeft        float64 `ini:"max_left"`
	MinRight       float64 `ini:"min_right"`
	MaxRight       float64 `ini:"max_right"`
	MinTowardsGoal float64 `ini:"min_towards_goal"`
	MaxTowardsGoal float64 `ini:"max_towards_goal"`
}

// Ranges converts the flat INI layout into generator ranges.
func (gc GeneratorConfig) Ranges() Ranges {
	return Ranges{
		Front:       Range{gc.MinFront, gc.MaxFront},
		Emergency:   Range{gc.MinEmergency, gc.MaxEmergency},
		FrontLeft:   Range{gc.MinFrontLeft, gc.MaxFrontLeft},
		FrontRight:  Range{gc.MinFrontRight, gc.MaxFrontRight},
		Left:        Range{gc.MinLeft, gc.MaxLeft},
		Right:       Range{gc.MinRight, gc.MaxRight},
		TowardsGoal: Range{gc.MinTowardsGoal, gc.MaxTowardsGoal},
	}
}

// DefaultConfig returns the configuration used when no file overrides a value.
func DefaultConfig() *Config {
	return &Config{
		Network: NetworkConfig{
			InputSize:  fuzzy.InputSize,
			HiddenSize: 1024,
			OutputSize: fuzzy.OutputSize,
			Beta:       5,
			CapBound:   1,
		},
		Training: TrainingConfig{
			LearningRate:         0.1,
			LearningRateDecay:    0.95,
			AdaptiveLearningRate: true,
			Subset:               0.8,
			Iterations:           100,
			ShuffleAfterEpoch:    true,
		},
		Fuzzy: fuzzy.DefaultWeights(),
		Generator: GeneratorConfig{
			RandomPatterns: 1024,
			MaxFront:       1,
			MaxEmergency:   1,
			MaxFrontLeft:   1,
			MaxFrontRight:  1,
			MaxLeft:        1,
			MaxRight:       1,
			MinTowardsGoal: -math.Pi,
			MaxTowardsGoal: math.Pi,
		},
	}
}

// LoadConfig loads configuration parameters from an INI file. Keys missing from
// the file keep their DefaultConfig value.
func LoadConfig(filePath string) (*Config, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:         true,
		UnescapeValueCommentSymbols: true,
	}, filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load config file '%s'", filePath)
	}

	// Start from the defaults so a partial file only overrides what it names
	config := DefaultConfig()

	if err := cfg.Section("Network").MapTo(&config.Network); err != nil {
		return nil, errors.Wrap(err, "failed to map [Network] section")
	}
	if err := cfg.Section("Training").MapTo(&config.Training); err != nil {
		return nil, errors.Wrap(err, "failed to map [Training] section")
	}
	if err := cfg.Section("Fuzzy").MapTo(&config.Fuzzy); err != nil {
		return nil, errors.Wrap(err, "failed to map [Fuzzy] section")
	}
	if err := cfg.Section("Generator").MapTo(&config.Generator); err != nil {
		return nil, errors.Wrap(err, "failed to map [Generator] section")
	}

	config.Training.CheckpointPath = cleanIniString(config.Training.CheckpointPath)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks every value for consistency.
func (c *Config) Validate() error {
	if err := c.Network.Validate(); err != nil {
		return err
	}
	if err := c.Training.Validate(); err != nil {
		return err
	}
	if err := c.Fuzzy.Validate(); err != nil {
		return errors.Wrap(err, "config error")
	}
	if c.Generator.RandomPatterns < 0 {
		return errors.New("config error: random_patterns cannot be negative")
	}
	return nil
}

// Validate checks the topology and activation parameters.
func (nc NetworkConfig) Validate() error {
	if nc.InputSize <= 0 || nc.HiddenSize <= 0 || nc.OutputSize <= 0 {
		return errors.Wrapf(ErrInvalidTopology, "config error: sizes %d/%d/%d", nc.InputSize, nc.HiddenSize, nc.OutputSize)
	}
	if nc.Beta <= 0 {
		return errors.New("config error: beta must be positive")
	}
	if nc.CapSigmoidInput && nc.CapBound <= 0 {
		return errors.New("config error: cap_bound must be positive when cap_sigmoid_input is set")
	}
	return nil
}

// Validate checks the training parameters.
func (tc TrainingConfig) Validate() error {
	if tc.LearningRate <= 0 {
		return errors.New("config error: learning_rate must be positive")
	}
	if tc.LearningRateDecay <= 0 || tc.LearningRateDecay > 1 {
		return errors.New("config error: learning_rate_decay must be in (0, 1]")
	}
	if tc.Subset <= 0 || tc.Subset > 1 {
		return errors.New("config error: subset must be in (0, 1]")
	}
	if tc.Iterations <= 0 {
		return errors.New("config error: iterations must be positive")
	}
	return nil
}

// cleanIniString removes inline comments and trims whitespace from a string read from INI.
func cleanIniString(s string) string {
	if idx := strings.IndexAny(s, "#;"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
