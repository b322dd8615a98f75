package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/localize/datagen/internal/domain"
)

// DefaultMaxAttempts bounds how many candidates Generate builds for one
// iteration before giving up on a kind that keeps failing validation.
const DefaultMaxAttempts = 3

type builderFunc func() domain.Payload

// Generator builds random payloads of every supported kind.
type Generator struct {
	rnd         *Source
	now         func() time.Time
	builders    map[domain.Kind]builderFunc
	maxAttempts int
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock overrides the time source stamped into payloads.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithMaxAttempts overrides DefaultMaxAttempts.
func WithMaxAttempts(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxAttempts = n
		}
	}
}

// New creates a Generator drawing from rnd.
func New(rnd *Source, opts ...Option) *Generator {
	g := &Generator{
		rnd:         rnd,
		now:         time.Now,
		maxAttempts: DefaultMaxAttempts,
	}
	g.builders = map[domain.Kind]builderFunc{
		domain.KindISO8583:            g.buildISO8583,
		domain.KindISO20022:           g.buildISO20022,
		domain.KindC2B:                g.buildC2B,
		domain.KindCitizenToBusiness:  g.buildCitizenToBusiness,
		domain.KindBusinessToBusiness: g.buildBusinessToBusiness,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Build produces one candidate of kind and validates it. A candidate that
// violates its kind's rules is never returned.
func (g *Generator) Build(kind domain.Kind) (domain.Payload, error) {
	build, ok := g.builders[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownFormat, kind)
	}

	p := build()
	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// Generate builds a payload of kind, regenerating with fresh random values
// when a candidate fails validation. Other errors are returned immediately.
func (g *Generator) Generate(ctx context.Context, kind domain.Kind) (domain.Payload, error) {
	var (
		payload domain.Payload
		attempt int
	)

	b := backoff.WithContext(backoff.WithMaxRetries(&backoff.ZeroBackOff{}, uint64(g.maxAttempts-1)), ctx)

	err := backoff.Retry(func() error {
		attempt++
		p, err := g.Build(kind)
		if err == nil {
			payload = p
			return nil
		}

		if !domain.IsValidationError(err) {
			return backoff.Permanent(err)
		}

		return err
	}, b)
	if err != nil {
		return nil, fmt.Errorf("build %s after %d attempt(s): %w", kind, attempt, err)
	}

	return payload, nil
}
