package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/localize/datagen/internal/infrastructure/metrics"
)

// ErrIncompleteRunner is returned when the Runner lacks a collaborator.
var ErrIncompleteRunner = errors.New("runner requires a selector, generator and dispatcher")

// State is a run loop state.
type State int

const (
	StateIdle State = iota
	StateBuilding
	StateDispatching
	StateSleeping
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateBuilding:
		return "building"
	case StateDispatching:
		return "dispatching"
	case StateSleeping:
		return "sleeping"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// RunSummary counts what a run did.
type RunSummary struct {
	Iterations  int
	Printed     int
	Sent        int
	Failed      int
	Skipped     int
	Interrupted bool
}

// RunnerConfig holds dependencies for the Runner.
type RunnerConfig struct {
	Selector   KindSelector
	Generator  PayloadGenerator
	Dispatcher PayloadDispatcher
	// Interval is the pause between iterations. Zero or negative disables it.
	Interval time.Duration
	// Count bounds the number of iterations. Zero runs until ctx is done.
	Count   int
	Logger  zerolog.Logger
	Metrics *metrics.Metrics
	// OnTransition, when set, observes every state change.
	OnTransition func(from, to State)
}

// Runner drives the build, dispatch and sleep cycle.
type Runner struct {
	cfg   RunnerConfig
	state State
}

// NewRunner creates a new Runner.
func NewRunner(cfg RunnerConfig) *Runner {
	return &Runner{cfg: cfg, state: StateIdle}
}

// State returns the current state.
func (r *Runner) State() State {
	return r.state
}

// Run loops until Count iterations are done or ctx is cancelled.
// Cancellation is a normal stop and is reported through RunSummary.Interrupted.
func (r *Runner) Run(ctx context.Context) (RunSummary, error) {
	var summary RunSummary
	if r.cfg.Selector == nil || r.cfg.Generator == nil || r.cfg.Dispatcher == nil {
		return summary, ErrIncompleteRunner
	}

	// Iterations started before cancellation run to completion.
	iterCtx := context.WithoutCancel(ctx)

	for seq := 1; r.cfg.Count == 0 || seq <= r.cfg.Count; seq++ {
		if ctx.Err() != nil {
			summary.Interrupted = true
			break
		}

		r.iterate(iterCtx, seq, &summary)

		if r.cfg.Count > 0 && seq == r.cfg.Count {
			break
		}

		if r.cfg.Interval > 0 {
			r.transition(StateSleeping)
			if !sleep(ctx, r.cfg.Interval) {
				summary.Interrupted = true
				break
			}
		}
	}

	r.transition(StateStopped)

	event := r.cfg.Logger.Info().
		Int("iterations", summary.Iterations).
		Int("printed", summary.Printed).
		Int("sent", summary.Sent).
		Int("failed", summary.Failed).
		Int("skipped", summary.Skipped)
	if summary.Interrupted {
		event.Msg("interrupted by user")
	} else {
		event.Msg("run complete")
	}

	return summary, nil
}

func (r *Runner) iterate(ctx context.Context, seq int, summary *RunSummary) {
	summary.Iterations++
	if r.cfg.Metrics != nil {
		r.cfg.Metrics.Iterations.Inc()
	}

	r.transition(StateBuilding)
	kind := r.cfg.Selector.Next()

	payload, err := r.cfg.Generator.Generate(ctx, kind)
	if err != nil {
		summary.Skipped++
		if r.cfg.Metrics != nil {
			r.cfg.Metrics.BuildFailures.WithLabelValues(kind.String()).Inc()
		}
		r.cfg.Logger.Error().
			Err(err).
			Int("seq", seq).
			Str("kind", kind.String()).
			Msg("skipping iteration")
		return
	}
	if r.cfg.Metrics != nil {
		r.cfg.Metrics.PayloadsGenerated.WithLabelValues(kind.String()).Inc()
	}

	r.transition(StateDispatching)
	res := r.cfg.Dispatcher.Dispatch(ctx, seq, payload)

	switch res.Outcome {
	case OutcomePrinted:
		summary.Printed++
	case OutcomeSent:
		summary.Sent++
	case OutcomeFailed:
		summary.Failed++
	}
}

func (r *Runner) transition(to State) {
	from := r.state
	r.state = to
	if r.cfg.OnTransition != nil && from != to {
		r.cfg.OnTransition(from, to)
	}
}

// sleep waits for d and reports false if ctx ended first.
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
