package sink

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

// Retrier retries connecting to a broker with exponential backoff.
type Retrier struct {
	initialInterval time.Duration
	maxInterval     time.Duration
	maxElapsedTime  time.Duration
	logger          zerolog.Logger
}

// NewRetrier creates a Retrier that gives up after maxElapsed.
func NewRetrier(maxElapsed time.Duration, logger zerolog.Logger) *Retrier {
	return &Retrier{
		initialInterval: 250 * time.Millisecond,
		maxInterval:     5 * time.Second,
		maxElapsedTime:  maxElapsed,
		logger:          logger,
	}
}

// Retry runs operation until it succeeds, returns a permanent error, or the
// elapsed time budget runs out.
func (r *Retrier) Retry(ctx context.Context, name string, operation func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.initialInterval
	b.MaxInterval = r.maxInterval
	b.MaxElapsedTime = r.maxElapsedTime

	attempt := 0

	return backoff.Retry(func() error {
		attempt++
		err := operation()
		if err == nil {
			return nil
		}

		if !isRetryableError(err) {
			return backoff.Permanent(err)
		}

		r.logger.Warn().
			Err(err).
			Str("sink", name).
			Int("attempt", attempt).
			Msg("sink unavailable, retrying")

		return err
	}, backoff.WithContext(b, ctx))
}

// isRetryableError reports whether connecting again could succeed.
func isRetryableError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidAMQPURL):
		return false
	case errors.Is(err, context.Canceled):
		return false
	default:
		return true
	}
}
