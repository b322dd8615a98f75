// Package memory holds in-process repositories used when Redis is not configured.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/localize/datagen/internal/domain"
	"github.com/localize/datagen/internal/usecase"
)

// StatsStore implements usecase.StatsStore in memory.
type StatsStore struct {
	mu    sync.RWMutex
	stats map[domain.Kind]usecase.KindStats
}

func NewStatsStore() *StatsStore {
	return &StatsStore{stats: make(map[domain.Kind]usecase.KindStats)}
}

func (s *StatsStore) Record(_ context.Context, kind domain.Kind, accepted bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.stats[kind]
	if accepted {
		st.Accepted++
	} else {
		st.Rejected++
	}
	s.stats[kind] = st

	return nil
}

func (s *StatsStore) Snapshot(_ context.Context) (map[domain.Kind]usecase.KindStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.stats), nil
}
