package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/localize/datagen/internal/domain"
	"github.com/localize/datagen/internal/infrastructure/metrics"
)

// ErrMalformedPayload is returned when a body cannot be decoded as its kind.
var ErrMalformedPayload = errors.New("malformed payload")

// Receipt describes an accepted message.
type Receipt struct {
	Kind    domain.Kind
	Summary string
}

// ReceiveUseCase accepts payloads posted to the receiver.
type ReceiveUseCase struct {
	stats   StatsStore
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

// NewReceiveUseCase creates a new ReceiveUseCase. m may be nil.
func NewReceiveUseCase(stats StatsStore, logger zerolog.Logger, m *metrics.Metrics) *ReceiveUseCase {
	return &ReceiveUseCase{stats: stats, logger: logger, metrics: m}
}

// Receive classifies, decodes and validates body. kindHint takes precedence
// over shape detection when non-empty.
func (uc *ReceiveUseCase) Receive(ctx context.Context, kindHint string, body []byte) (*Receipt, error) {
	kind, err := uc.resolveKind(kindHint, body)
	if err != nil {
		uc.observe(ctx, "unknown", false)
		return nil, err
	}

	payload, err := domain.Decode(kind, body)
	if err != nil {
		uc.observe(ctx, kind, false)
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	if err := payload.Validate(); err != nil {
		uc.observe(ctx, kind, false)
		return nil, err
	}

	uc.observe(ctx, kind, true)

	return &Receipt{Kind: kind, Summary: payload.Summary()}, nil
}

// Stats returns per-kind counters.
func (uc *ReceiveUseCase) Stats(ctx context.Context) (map[domain.Kind]KindStats, error) {
	return uc.stats.Snapshot(ctx)
}

func (uc *ReceiveUseCase) resolveKind(hint string, body []byte) (domain.Kind, error) {
	hint = strings.TrimSpace(hint)
	if hint == "" {
		return domain.DetectKind(body)
	}

	kind, err := domain.ParseKind(hint)
	if err != nil {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownKind, hint)
	}
	return kind, nil
}

func (uc *ReceiveUseCase) observe(ctx context.Context, kind domain.Kind, accepted bool) {
	status := "rejected"
	if accepted {
		status = "accepted"
	}
	if uc.metrics != nil {
		uc.metrics.MessagesReceived.WithLabelValues(kind.String(), status).Inc()
	}

	if kind == "unknown" {
		return
	}
	if err := uc.stats.Record(ctx, kind, accepted); err != nil {
		uc.logger.Warn().Err(err).Str("kind", kind.String()).Msg("failed to record stats")
	}
}
