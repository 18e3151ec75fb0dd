package ann

import (
	"context"
	"fmt"
	"iter"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Checkpoint is a progress report emitted at each suspension point of a Task.
type Checkpoint struct {
	Epoch        int     // epochs completed so far; always 0 while checking
	Epochs       int     // epochs in the run; 0 while checking
	Processed    int     // patterns processed so far
	Total        int     // patterns the whole task will process
	Error        float64 // running mean error of the current epoch (or of the check)
	LearningRate float64 // learning rate in use; 0 while checking
	Done         bool    // set on the final checkpoint only
	Message      string
}

// Percent returns the share of the work done, rounded down.
func (c Checkpoint) Percent() int {
	if c.Total == 0 {
		return 0
	}
	return c.Processed * 100 / c.Total
}

func (c Checkpoint) progressLine() string {
	return fmt.Sprintf("Progress: %d%% (%d of %d), error = %g", c.Percent(), c.Processed, c.Total, c.Error)
}

// Task is a long running training or checking job. Nothing happens until its
// Steps are pulled: the host ranges over Steps at its own cadence and may stop
// at any checkpoint by breaking out of the loop, cancelling the task's context
// or calling Stop. Weights updated before the stop are kept.
//
// The network stays busy until the sequence finishes, is abandoned, or Stop is
// called. A task that is never iterated must be stopped to free the network.
type Task struct {
	ID   uuid.UUID
	kind string

	ctx     context.Context
	net     *Network
	body    func(emit func(Checkpoint) bool)
	started atomic.Bool
	stopped atomic.Bool
	release sync.Once

	done    bool
	err     error
	status  string
	history []string

	meanError    float64
	initialError float64
	finalError   float64
	learningRate float64
	epochErrors  []float64
}

func newTask(ctx context.Context, n *Network, kind string) *Task {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Task{
		ID:           uuid.New(),
		kind:         kind,
		ctx:          ctx,
		net:          n,
		initialError: -1,
		finalError:   -1,
	}
}

// Steps returns the task's checkpoints as a lazy sequence. It can be ranged over
// only once; a task is restarted by creating a new one.
func (t *Task) Steps() iter.Seq[Checkpoint] {
	return func(yield func(Checkpoint) bool) {
		// Steps and Stop race to claim the task; the loser leaves it alone
		if !t.started.CompareAndSwap(false, true) {
			return
		}
		defer t.free()

		t.body(func(c Checkpoint) bool {
			t.status = c.Message
			cause := t.cancelled()
			if cause == nil && !yield(c) {
				cause = ErrInterrupted
			}
			if cause != nil {
				// the final checkpoint comes after all the work is done
				if !c.Done {
					t.interrupt(cause)
				}
				return false
			}
			return true
		})
	}
}

func (t *Task) cancelled() error {
	if t.stopped.Load() {
		return ErrInterrupted
	}
	return t.ctx.Err()
}

// Run pulls every checkpoint and returns the task's error.
func (t *Task) Run() error {
	for range t.Steps() {
	}
	return t.Err()
}

// Stop asks the task to end at its next checkpoint. A task that was never
// started releases the network right away. Stop is safe to call from another
// goroutine while Steps is being ranged over.
func (t *Task) Stop() {
	t.stopped.Store(true)
	if t.started.CompareAndSwap(false, true) {
		t.interrupt(ErrInterrupted)
		t.free()
	}
}

func (t *Task) interrupt(cause error) {
	if t.err == nil {
		t.err = errors.Wrapf(cause, "%s task %s", t.kind, t.ID)
	}
	t.status = "Interrupted."
	t.net.logger.Info("task interrupted", "task", t.ID.String(), "kind", t.kind, "cause", cause.Error())
}

func (t *Task) fail(err error) {
	t.err = err
	t.status = "Failed: " + err.Error()
	t.net.logger.Error("task failed", "task", t.ID.String(), "kind", t.kind, "err", err)
}

func (t *Task) free() {
	t.release.Do(func() { t.net.busy.Store(false) })
}

// Done reports whether the task ran to completion.
func (t *Task) Done() bool { return t.done }

// Err returns why the task stopped early, or why its final save failed.
func (t *Task) Err() error { return t.err }

// Status returns a human readable progress report, followed by one line per
// finished epoch.
func (t *Task) Status() string {
	if len(t.history) == 0 {
		return t.status
	}
	return t.status + "\n" + strings.Join(t.history, "\n")
}

// MeanError is the mean error over the set once a check has completed.
func (t *Task) MeanError() float64 { return t.meanError }

// InitialError is the mean error of the first training epoch, -1 before it ends.
func (t *Task) InitialError() float64 { return t.initialError }

// FinalError is the mean error of the last finished training epoch, -1 before
// the first one ends.
func (t *Task) FinalError() float64 { return t.finalError }

// LearningRate is the learning rate the next epoch will use.
func (t *Task) LearningRate() float64 { return t.learningRate }

// EpochErrors returns the mean error of every finished epoch.
func (t *Task) EpochErrors() []float64 { return append([]float64(nil), t.epochErrors...) }
