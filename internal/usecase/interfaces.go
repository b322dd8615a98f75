package usecase

import (
	"context"
	"time"

	"github.com/localize/datagen/internal/domain"
)

// Message is a serialized payload on its way to a sink.
type Message struct {
	ID        string
	Kind      domain.Kind
	Body      []byte
	CreatedAt time.Time
}

// Sink delivers messages to one destination.
type Sink interface {
	// Name identifies the sink in logs and metrics.
	Name() string
	// Send delivers msg and returns a short status (e.g. "202" or "partition=0 offset=12").
	Send(ctx context.Context, msg *Message) (string, error)
	Close() error
}

// PayloadGenerator builds validated payloads.
type PayloadGenerator interface {
	Generate(ctx context.Context, kind domain.Kind) (domain.Payload, error)
}

// KindSelector picks the kind for each iteration.
type KindSelector interface {
	Next() domain.Kind
}

// PayloadDispatcher renders or sends one payload.
type PayloadDispatcher interface {
	Dispatch(ctx context.Context, seq int, payload domain.Payload) DispatchResult
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// KindStats counts received messages of one kind.
type KindStats struct {
	Accepted int64 `json:"accepted"`
	Rejected int64 `json:"rejected"`
}

// StatsStore keeps per-kind receive counters.
type StatsStore interface {
	Record(ctx context.Context, kind domain.Kind, accepted bool) error
	Snapshot(ctx context.Context) (map[domain.Kind]KindStats, error)
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops a claimed key so the request can be retried.
	Release(ctx context.Context, key string) error
}
