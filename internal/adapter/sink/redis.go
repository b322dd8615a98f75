package sink

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/localize/datagen/internal/usecase"
)

// RedisStreamSink appends messages to a Redis stream.
type RedisStreamSink struct {
	client *redis.Client
	stream string
}

// NewRedisStreamSink creates a RedisStreamSink. The sink owns client.
func NewRedisStreamSink(client *redis.Client, stream string) *RedisStreamSink {
	return &RedisStreamSink{client: client, stream: stream}
}

func (s *RedisStreamSink) Name() string { return "redis" }

// Send returns the stream entry ID as its status.
func (s *RedisStreamSink) Send(ctx context.Context, msg *usecase.Message) (string, error) {
	id, err := s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream,
		Values: map[string]any{
			"id":         msg.ID,
			"kind":       msg.Kind.String(),
			"created_at": msg.CreatedAt.UnixMilli(),
			"body":       string(msg.Body),
		},
	}).Result()
	if err != nil {
		return "", fmt.Errorf("xadd %s: %w", s.stream, err)
	}

	return "id=" + id, nil
}

func (s *RedisStreamSink) Close() error {
	return s.client.Close()
}
