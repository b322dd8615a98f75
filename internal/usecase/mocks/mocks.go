package mocks

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/localize/datagen/internal/domain"
	"github.com/localize/datagen/internal/usecase"
)

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return "mock-id-" + strconv.Itoa(m.counter)
}

// MockKindSelector returns kinds from a fixed cycle.
type MockKindSelector struct {
	Kinds []domain.Kind
	next  int
}

func NewMockKindSelector(kinds ...domain.Kind) *MockKindSelector {
	return &MockKindSelector{Kinds: kinds}
}

func (m *MockKindSelector) Next() domain.Kind {
	if len(m.Kinds) == 0 {
		return domain.KindC2B
	}
	k := m.Kinds[m.next%len(m.Kinds)]
	m.next++
	return k
}

// MockPayloadGenerator is a mock implementation of PayloadGenerator.
type MockPayloadGenerator struct {
	mu    sync.Mutex
	Calls []domain.Kind

	GenerateFunc func(ctx context.Context, kind domain.Kind) (domain.Payload, error)
}

func NewMockPayloadGenerator() *MockPayloadGenerator {
	return &MockPayloadGenerator{}
}

func (m *MockPayloadGenerator) Generate(ctx context.Context, kind domain.Kind) (domain.Payload, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, kind)
	m.mu.Unlock()

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, kind)
	}
	return &domain.C2BEvent{Type: "C2B", TransactionID: "mock-tx", Currency: "USD"}, nil
}

// MockDispatcher is a mock implementation of PayloadDispatcher.
type MockDispatcher struct {
	mu       sync.Mutex
	Payloads []domain.Payload

	DispatchFunc func(ctx context.Context, seq int, payload domain.Payload) usecase.DispatchResult
}

func NewMockDispatcher() *MockDispatcher {
	return &MockDispatcher{}
}

func (m *MockDispatcher) Dispatch(ctx context.Context, seq int, payload domain.Payload) usecase.DispatchResult {
	m.mu.Lock()
	m.Payloads = append(m.Payloads, payload)
	m.mu.Unlock()

	if m.DispatchFunc != nil {
		return m.DispatchFunc(ctx, seq, payload)
	}
	return usecase.DispatchResult{Outcome: usecase.OutcomePrinted, Sink: "console"}
}

// Count returns how many payloads were dispatched.
func (m *MockDispatcher) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Payloads)
}

// MockStatsStore is a mock implementation of StatsStore.
type MockStatsStore struct {
	mu    sync.RWMutex
	stats map[domain.Kind]usecase.KindStats

	RecordFunc   func(ctx context.Context, kind domain.Kind, accepted bool) error
	SnapshotFunc func(ctx context.Context) (map[domain.Kind]usecase.KindStats, error)
}

func NewMockStatsStore() *MockStatsStore {
	return &MockStatsStore{
		stats: make(map[domain.Kind]usecase.KindStats),
	}
}

func (m *MockStatsStore) Record(ctx context.Context, kind domain.Kind, accepted bool) error {
	if m.RecordFunc != nil {
		return m.RecordFunc(ctx, kind, accepted)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.stats[kind]
	if accepted {
		s.Accepted++
	} else {
		s.Rejected++
	}
	m.stats[kind] = s
	return nil
}

func (m *MockStatsStore) Snapshot(ctx context.Context) (map[domain.Kind]usecase.KindStats, error) {
	if m.SnapshotFunc != nil {
		return m.SnapshotFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[domain.Kind]usecase.KindStats, len(m.stats))
	for k, v := range m.stats {
		out[k] = v
	}
	return out, nil
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
	ReleaseFunc     func(ctx context.Context, key string) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{
		data: make(map[string][]byte),
	}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.data[key] = response
	} else {
		m.data[key] = []byte(usecase.IdempotencyProcessing)
	}
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}

func (m *MockIdempotencyStore) Release(ctx context.Context, key string) error {
	if m.ReleaseFunc != nil {
		return m.ReleaseFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
