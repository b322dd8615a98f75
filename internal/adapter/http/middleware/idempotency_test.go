package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/localize/datagen/internal/usecase"
	"github.com/localize/datagen/internal/usecase/mocks"
)

func newPost(key string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/messages", bytes.NewBufferString(`{}`))
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	return req
}

func TestIdempotencyMiddleware_StoreErrorFailsRequest(t *testing.T) {
	var called bool
	store := mocks.NewMockIdempotencyStore()
	store.CheckAndSetFunc = func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
		return false, nil, context.DeadlineExceeded
	}
	mw := NewIdempotencyMiddleware(store, 0, zerolog.Nop())

	rr := httptest.NewRecorder()
	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})).ServeHTTP(rr, newPost("key-err"))

	if called {
		t.Fatalf("handler should not be called when store errors")
	}

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rr.Code)
	}
}

func TestIdempotencyMiddleware_ReleasesKeyOnFailure(t *testing.T) {
	var updated, released bool
	store := mocks.NewMockIdempotencyStore()
	store.UpdateFunc = func(ctx context.Context, key string, response []byte, ttl time.Duration) error {
		updated = true
		return nil
	}
	store.ReleaseFunc = func(ctx context.Context, key string) error {
		released = key == "key-fail"
		return nil
	}
	mw := NewIdempotencyMiddleware(store, 0, zerolog.Nop())

	rr := httptest.NewRecorder()
	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	})).ServeHTTP(rr, newPost("key-fail"))

	if updated {
		t.Fatalf("expected error responses not to be cached")
	}
	if !released {
		t.Fatalf("expected the key to be released for retry")
	}
}

func TestIdempotencyMiddleware_SkipsRequestsWithoutKey(t *testing.T) {
	store := mocks.NewMockIdempotencyStore()
	store.CheckAndSetFunc = func(context.Context, string, []byte, time.Duration) (bool, []byte, error) {
		t.Fatal("store must not be consulted")
		return false, nil, nil
	}
	mw := NewIdempotencyMiddleware(store, 0, zerolog.Nop())

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/api/v1/messages/stats", nil),
		newPost(""),
	} {
		called := false
		mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		})).ServeHTTP(httptest.NewRecorder(), req)

		if !called {
			t.Fatalf("expected next handler to be called for %s", req.Method)
		}
	}
}

func TestIdempotencyMiddleware_ReplaysStoredResponse(t *testing.T) {
	store := mocks.NewMockIdempotencyStore()
	mw := NewIdempotencyMiddleware(store, 0, zerolog.Nop())

	calls := 0
	h := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"status":"accepted","kind":"c2b"}`))
	}))

	first := httptest.NewRecorder()
	h.ServeHTTP(first, newPost("key-1"))
	second := httptest.NewRecorder()
	h.ServeHTTP(second, newPost("key-1"))

	if calls != 1 {
		t.Fatalf("expected handler to run once, ran %d times", calls)
	}
	if second.Code != http.StatusAccepted {
		t.Fatalf("expected replayed 202, got %d", second.Code)
	}
	if second.Header().Get("X-Idempotency-Replay") != "true" {
		t.Fatalf("expected X-Idempotency-Replay header to be set")
	}
	if got := second.Body.String(); got != first.Body.String() {
		t.Fatalf("replayed body %s differs from original %s", got, first.Body.String())
	}
}

func TestIdempotencyMiddleware_UsesConfiguredTTL(t *testing.T) {
	var ttls []time.Duration
	store := mocks.NewMockIdempotencyStore()
	store.CheckAndSetFunc = func(_ context.Context, _ string, _ []byte, ttl time.Duration) (bool, []byte, error) {
		ttls = append(ttls, ttl)
		return false, nil, nil
	}
	store.UpdateFunc = func(_ context.Context, _ string, _ []byte, ttl time.Duration) error {
		ttls = append(ttls, ttl)
		return nil
	}

	mw := NewIdempotencyMiddleware(store, time.Hour, zerolog.Nop())
	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})).ServeHTTP(httptest.NewRecorder(), newPost("key-ttl"))

	if len(ttls) != 2 || ttls[0] != time.Hour || ttls[1] != time.Hour {
		t.Fatalf("expected both calls to use 1h, got %v", ttls)
	}
}

func TestIdempotencyMiddleware_InFlightKeyConflicts(t *testing.T) {
	store := mocks.NewMockIdempotencyStore()
	store.CheckAndSetFunc = func(context.Context, string, []byte, time.Duration) (bool, []byte, error) {
		return true, []byte(usecase.IdempotencyProcessing), nil
	}
	mw := NewIdempotencyMiddleware(store, 0, zerolog.Nop())

	rr := httptest.NewRecorder()
	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler should not be called while the key is in flight")
	})).ServeHTTP(rr, newPost("key-busy"))

	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rr.Code)
	}
}

func TestIdempotencyMiddleware_CorruptRecord(t *testing.T) {
	store := mocks.NewMockIdempotencyStore()
	store.CheckAndSetFunc = func(context.Context, string, []byte, time.Duration) (bool, []byte, error) {
		return true, []byte(`not-json`), nil
	}
	mw := NewIdempotencyMiddleware(store, 0, zerolog.Nop())

	rr := httptest.NewRecorder()
	mw.Wrap(http.NotFoundHandler()).ServeHTTP(rr, newPost("key-bad"))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
}
