package sink

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/localize/datagen/internal/infrastructure/config"
	"github.com/localize/datagen/internal/infrastructure/redis"
	"github.com/localize/datagen/internal/usecase"
)

// DefaultConnectTimeout bounds how long Open keeps retrying a broker.
const DefaultConnectTimeout = 30 * time.Second

// Open builds the remote sink selected by cfg. It returns a nil sink and no
// error when the selected sink has no destination configured.
func Open(ctx context.Context, cfg *config.Config, retrier *Retrier, logger zerolog.Logger) (usecase.Sink, error) {
	if cfg.Destination() == "" {
		return nil, nil
	}

	var s usecase.Sink
	err := retrier.Retry(ctx, cfg.Sink, func() error {
		var err error
		s, err = open(ctx, cfg, logger)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("open %s sink: %w", cfg.Sink, err)
	}

	logger.Info().Str("sink", s.Name()).Str("destination", cfg.Destination()).Msg("sink ready")

	return s, nil
}

func open(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (usecase.Sink, error) {
	switch cfg.Sink {
	case config.SinkKafka:
		return NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
	case config.SinkAMQP:
		return NewAMQPSink(cfg.AMQPURL, cfg.AMQPExchange)
	case config.SinkRedis:
		client, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return NewRedisStreamSink(client, cfg.RedisStream), nil
	default:
		return NewHTTPSink(cfg.MockDataURL, cfg.SendTimeout), nil
	}
}
