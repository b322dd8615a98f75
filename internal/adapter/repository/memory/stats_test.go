package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/localize/datagen/internal/domain"
)

func TestStatsStore_ConcurrentRecord(t *testing.T) {
	store := NewStatsStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = store.Record(ctx, domain.KindISO8583, i%5 != 0)
		}(i)
	}
	wg.Wait()

	snapshot, err := store.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	got := snapshot[domain.KindISO8583]
	if got.Accepted != 40 || got.Rejected != 10 {
		t.Fatalf("unexpected stats: %+v", got)
	}

	// Snapshots are copies.
	delete(snapshot, domain.KindISO8583)
	again, _ := store.Snapshot(ctx)
	if _, ok := again[domain.KindISO8583]; !ok {
		t.Fatalf("mutating a snapshot must not affect the store")
	}
}
