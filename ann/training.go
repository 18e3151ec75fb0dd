package ann

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

const (
	// trainYieldEvery and checkYieldEvery bound the uninterrupted work between
	// two checkpoints.
	trainYieldEvery = 25
	checkYieldEvery = 50

	// divergenceCut multiplies the learning rate when an epoch ends with a
	// higher mean error than the previous one.
	divergenceCut = 0.1
)

// TrainOnSet prepares a training run over set using the network's
// TrainingConfig. The returned Task does nothing until its Steps are pulled.
//
// When the first pattern's sizes differ from the network's input or output size,
// the network is resized before TrainOnSet returns, discarding the weights of the
// rebuilt layers. Each epoch trains on the first floor(len(set)*Subset)
// patterns, at least one.
func (n *Network) TrainOnSet(ctx context.Context, set *TrainingSet) (*Task, error) {
	if set == nil || set.Len() == 0 {
		n.logger.Error("not enough patterns in set, cannot train")
		return nil, errors.Wrap(ErrEmptySet, "cannot train network")
	}
	if !n.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}

	first := set.Pattern(0)
	if len(first.inputs) != n.inputSize || len(first.outputs) != n.outputSize {
		n.logger.Warn("training set does not match network topology",
			"set_inputs", len(first.inputs), "set_outputs", len(first.outputs),
			"network_inputs", n.inputSize, "network_outputs", n.outputSize)
		if err := n.ResizeLayers(len(first.inputs), n.hiddenSize, len(first.outputs)); err != nil {
			n.busy.Store(false)
			return nil, errors.Wrap(err, "cannot fit network to training set")
		}
	}

	t := newTask(ctx, n, "train")
	t.learningRate = n.training.LearningRate
	t.body = func(emit func(Checkpoint) bool) { n.train(t, set, emit) }
	return t, nil
}

func (n *Network) train(t *Task, set *TrainingSet, emit func(Checkpoint) bool) {
	cfg := n.training
	patternCount := int(float64(set.Len()) * cfg.Subset)
	if patternCount < 1 {
		patternCount = 1
	}

	cp := Checkpoint{
		Epochs:       cfg.Iterations,
		Total:        patternCount * cfg.Iterations,
		LearningRate: t.learningRate,
	}
	cp.Message = fmt.Sprintf("Training neural network using %d patterns (%d in set); %d iterations. %s",
		patternCount, set.Len(), cfg.Iterations, cp.progressLine())
	n.logger.Info("training started", "task", t.ID.String(), "patterns", patternCount,
		"set", set.ID.String(), "set_size", set.Len(), "iterations", cfg.Iterations)
	if !emit(cp) {
		return
	}

	// previous epoch's mean error, for the adaptive learning rate
	previous, hasPrevious := 0.0, false
	// counts patterns across epochs, so yields keep their cadence at epoch ends
	sinceYield := 0

	for epoch := 0; epoch < cfg.Iterations; epoch++ {
		eta := t.learningRate
		cp.LearningRate = eta
		total := 0.0
		for p := 0; p < patternCount; p++ {
			e, err := n.TrainPattern(set.Pattern(p), eta)
			if err != nil {
				t.fail(errors.Wrapf(err, "pattern %d", p))
				return
			}
			total += e
			cp.Processed++
			sinceYield++
			if sinceYield == trainYieldEvery {
				sinceYield = 0
				cp.Error = total / float64(p+1)
				cp.Message = cp.progressLine()
				if !emit(cp) {
					return
				}
			}
		}

		// --- End of epoch bookkeeping ---
		mean := total / float64(patternCount)
		t.epochErrors = append(t.epochErrors, mean)
		if t.initialError == -1 {
			t.initialError = mean
		}
		t.finalError = mean
		t.history = append(t.history, fmt.Sprintf("%d: error = %g, learning rate = %g", epoch, mean, eta))
		n.logger.Debug("training epoch finished", "task", t.ID.String(), "epoch", epoch, "error", mean, "learning_rate", eta)

		// the rate for the next epoch; eta stays the one this epoch used
		t.learningRate = nextLearningRate(cfg, eta, previous, mean, hasPrevious)
		previous, hasPrevious = mean, true

		// reorders the set itself, so the next epoch's subset differs too
		if cfg.ShuffleAfterEpoch {
			set.Shuffle()
		}

		cp.Epoch = epoch + 1
		cp.Error = mean
		cp.Message = fmt.Sprintf("Epoch %d of %d: error = %g, learning rate = %g. %s",
			cp.Epoch, cfg.Iterations, mean, eta, cp.progressLine())
		if !emit(cp) {
			return
		}
	}

	// Persist the trained weights. A failed save is reported through Err but
	// does not undo the training.
	if cfg.CheckpointPath != "" {
		if err := n.SaveCheckpoint(cfg.CheckpointPath); err != nil {
			t.fail(err)
		}
	}

	t.done = true
	n.logger.Info("training finished", "task", t.ID.String(), "initial_error", t.initialError,
		"final_error", t.finalError, "learning_rate", t.learningRate)

	cp.Done = true
	cp.Message = fmt.Sprintf("Finished training. Initial error = %g; final error = %g. %s",
		t.initialError, t.finalError, cp.progressLine())
	// the task is over whatever the host answers
	emit(cp)
	t.status = cp.Message
}

// nextLearningRate applies the learning-rate schedule after an epoch. In adaptive
// mode the rate is left alone after the first epoch, cut by ten when the error
// grew and decayed by LearningRateDecay otherwise. Without adaptation it always
// decays.
func nextLearningRate(cfg TrainingConfig, eta, previous, current float64, hasPrevious bool) float64 {
	if !cfg.AdaptiveLearningRate {
		return eta * cfg.LearningRateDecay
	}
	if !hasPrevious {
		return eta
	}
	if previous-current < 0 {
		return eta * divergenceCut
	}
	return eta * cfg.LearningRateDecay
}

// CheckOnSet prepares a run measuring the network's mean error over every
// pattern of set without changing any weight. The result is available from
// Task.MeanError once the Task is done.
func (n *Network) CheckOnSet(ctx context.Context, set *TrainingSet) (*Task, error) {
	if set == nil || set.Len() == 0 {
		n.logger.Error("not enough patterns in set, cannot check")
		return nil, errors.Wrap(ErrEmptySet, "cannot check network")
	}
	if !n.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}

	t := newTask(ctx, n, "check")
	t.body = func(emit func(Checkpoint) bool) { n.check(t, set, emit) }
	return t, nil
}

func (n *Network) check(t *Task, set *TrainingSet, emit func(Checkpoint) bool) {
	cp := Checkpoint{Total: set.Len()}
	cp.Message = fmt.Sprintf("Checking neural network using %d patterns. %s", set.Len(), cp.progressLine())
	if !emit(cp) {
		return
	}

	errs := make([]float64, 0, set.Len())
	total := 0.0
	for i := 0; i < set.Len(); i++ {
		p := set.Pattern(i)
		if _, err := n.RunForward(p.inputs); err != nil {
			t.fail(errors.Wrapf(err, "pattern %d", i))
			return
		}
		e, err := n.ComputeError(p.outputs)
		if err != nil {
			t.fail(errors.Wrapf(err, "pattern %d", i))
			return
		}
		errs = append(errs, e)
		total += e
		cp.Processed++
		if cp.Processed%checkYieldEvery == 0 {
			cp.Error = total / float64(cp.Processed)
			cp.Message = cp.progressLine()
			if !emit(cp) {
				return
			}
		}
	}

	t.meanError = stat.Mean(errs, nil)
	t.done = true
	n.logger.Info("check finished", "task", t.ID.String(), "patterns", len(errs), "mean_error", t.meanError)

	cp.Error = t.meanError
	cp.Done = true
	cp.Message = fmt.Sprintf("Average error after check = %g. %s", t.meanError, cp.progressLine())
	emit(cp)
	t.status = cp.Message
}
