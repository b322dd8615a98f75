package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/localize/datagen/internal/domain"
	"github.com/localize/datagen/internal/usecase"
)

const (
	fieldAccepted = "accepted"
	fieldRejected = "rejected"
)

// StatsStore implements usecase.StatsStore with one Redis hash.
// Fields are "<kind>:accepted" and "<kind>:rejected".
type StatsStore struct {
	client *redis.Client
	key    string
}

// NewStatsStore creates a new StatsStore.
func NewStatsStore(client *redis.Client) *StatsStore {
	return &StatsStore{
		client: client,
		key:    "receiver:stats",
	}
}

// Record bumps the accepted or rejected counter for kind.
func (s *StatsStore) Record(ctx context.Context, kind domain.Kind, accepted bool) error {
	outcome := fieldRejected
	if accepted {
		outcome = fieldAccepted
	}

	if err := s.client.HIncrBy(ctx, s.key, kind.String()+":"+outcome, 1).Err(); err != nil {
		return fmt.Errorf("record %s stats: %w", kind, err)
	}

	return nil
}

// Snapshot returns the counters of every kind seen so far.
func (s *StatsStore) Snapshot(ctx context.Context) (map[domain.Kind]usecase.KindStats, error) {
	fields, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("load stats: %w", err)
	}

	out := make(map[domain.Kind]usecase.KindStats)
	for field, raw := range fields {
		idx := strings.LastIndex(field, ":")
		if idx <= 0 {
			continue
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse stats field %s: %w", field, err)
		}

		kind := domain.Kind(field[:idx])
		st := out[kind]
		switch field[idx+1:] {
		case fieldAccepted:
			st.Accepted = n
		case fieldRejected:
			st.Rejected = n
		default:
			continue
		}
		out[kind] = st
	}

	return out, nil
}
