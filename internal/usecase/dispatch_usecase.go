package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/localize/datagen/internal/domain"
	"github.com/localize/datagen/internal/infrastructure/metrics"
)

// Outcome is how a dispatch ended.
type Outcome string

const (
	OutcomePrinted Outcome = "printed"
	OutcomeSent    Outcome = "sent"
	OutcomeFailed  Outcome = "failed"
)

// DispatchResult reports one dispatch. Err is set only for OutcomeFailed.
type DispatchResult struct {
	Outcome   Outcome
	Sink      string
	Status    string
	MessageID string
	Err       error
}

// DispatcherConfig holds dependencies for the Dispatcher.
type DispatcherConfig struct {
	// Console renders payloads in dry-run mode and as the fallback.
	Console        Sink
	// Remote is the send-mode destination; nil when none is configured.
	Remote         Sink
	// DestinationVar names the variable that configures Remote. It is
	// quoted in the fallback notice and defaults to MOCK_DATA_URL.
	DestinationVar string
	DryRun         bool
	IDGen          IDGenerator
	Timeout        time.Duration
	Now            func() time.Time
	Logger         zerolog.Logger
	Metrics        *metrics.Metrics
}

// Dispatcher routes payloads to the console or to the remote sink.
type Dispatcher struct {
	console Sink
	remote  Sink
	dryRun  bool
	idGen   IDGenerator
	timeout time.Duration
	now     func() time.Time
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

// NewDispatcher creates a Dispatcher. In send mode without a remote sink it
// warns once and renders to the console instead.
func NewDispatcher(cfg DispatcherConfig) *Dispatcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultSendTimeout
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.DestinationVar == "" {
		cfg.DestinationVar = "MOCK_DATA_URL"
	}

	d := &Dispatcher{
		console: cfg.Console,
		remote:  cfg.Remote,
		dryRun:  cfg.DryRun,
		idGen:   cfg.IDGen,
		timeout: cfg.Timeout,
		now:     cfg.Now,
		logger:  cfg.Logger,
		metrics: cfg.Metrics,
	}

	if !d.dryRun && d.remote == nil {
		d.logger.Warn().Msg(cfg.DestinationVar + " not set, falling back to console output")
	}

	return d
}

// Sending reports whether payloads leave the process.
func (d *Dispatcher) Sending() bool {
	return !d.dryRun && d.remote != nil
}

// Dispatch serializes payload and hands it to the active sink. Send
// failures are logged and reported in the result, never returned.
func (d *Dispatcher) Dispatch(ctx context.Context, seq int, payload domain.Payload) DispatchResult {
	sink := d.console
	if d.Sending() {
		sink = d.remote
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return d.fail(seq, payload.Kind(), sink.Name(), "", fmt.Errorf("marshal %s: %w", payload.Kind(), err))
	}

	msg := &Message{
		ID:        d.idGen.Generate(),
		Kind:      payload.Kind(),
		Body:      body,
		CreatedAt: d.now(),
	}

	sendCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	start := time.Now()
	status, err := sink.Send(sendCtx, msg)
	if d.metrics != nil {
		d.metrics.DispatchDuration.WithLabelValues(sink.Name()).Observe(time.Since(start).Seconds())
	}
	if err != nil && d.dryRun {
		d.logger.Warn().
			Err(err).
			Int("seq", seq).
			Str("kind", msg.Kind.String()).
			Msg("dry-run output not written")
		status = "printed"
	} else if err != nil {
		return d.fail(seq, msg.Kind, sink.Name(), msg.ID, err)
	}

	outcome := OutcomePrinted
	if sink == d.remote {
		outcome = OutcomeSent
		d.logger.Info().
			Int("seq", seq).
			Str("kind", msg.Kind.String()).
			Str("sink", sink.Name()).
			Str("status", status).
			Str("message_id", msg.ID).
			Msg("sent")
	}
	d.record(sink.Name(), outcome)

	return DispatchResult{Outcome: outcome, Sink: sink.Name(), Status: status, MessageID: msg.ID}
}

func (d *Dispatcher) fail(seq int, kind domain.Kind, sinkName, msgID string, err error) DispatchResult {
	d.logger.Error().
		Err(err).
		Int("seq", seq).
		Str("kind", kind.String()).
		Str("sink", sinkName).
		Str("status", "ERR").
		Msg("dispatch failed")
	d.record(sinkName, OutcomeFailed)

	return DispatchResult{Outcome: OutcomeFailed, Sink: sinkName, Status: "ERR", MessageID: msgID, Err: err}
}

func (d *Dispatcher) record(sinkName string, outcome Outcome) {
	if d.metrics != nil {
		d.metrics.Dispatches.WithLabelValues(sinkName, string(outcome)).Inc()
	}
}

// Close releases the remote sink.
func (d *Dispatcher) Close() error {
	if d.remote == nil {
		return nil
	}
	return d.remote.Close()
}
