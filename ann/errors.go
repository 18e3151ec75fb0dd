package ann

import "github.com/pkg/errors"

// These are the errors returned by the network and its tasks. They are wrapped
// with details; test for them with errors.Is.
var (
	ErrSizeMismatch    = errors.New("vector size does not match network layer size")
	ErrInvalidTopology = errors.New("layer sizes must be positive")
	ErrEmptySet        = errors.New("training set does not contain any pattern")
	ErrBusy            = errors.New("network already has an active task")
	ErrInterrupted     = errors.New("task interrupted")
)
