package usecase

import "time"

const (
	// DefaultSendTimeout bounds a single send to a sink.
	DefaultSendTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// IdempotencyProcessing marks a key whose first request is still in flight.
	IdempotencyProcessing = "processing"

	// MaxReceiveBodySize caps payloads accepted by the receiver.
	MaxReceiveBodySize = 1 << 20
)
