package dto

import (
	"testing"

	"github.com/localize/datagen/internal/domain"
	"github.com/localize/datagen/internal/usecase"
)

func TestMessageAcceptedFromReceipt(t *testing.T) {
	resp := MessageAcceptedFromReceipt(&usecase.Receipt{Kind: domain.KindISO20022, Summary: "iso20022 MSG-1"})

	if resp.Status != "accepted" || resp.Kind != "iso20022" || resp.Summary != "iso20022 MSG-1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestStatsFromSnapshot(t *testing.T) {
	resp := StatsFromSnapshot(map[domain.Kind]usecase.KindStats{
		domain.KindISO8583: {Accepted: 3},
		domain.KindC2B:     {Accepted: 1, Rejected: 2},
	})

	if len(resp.Kinds) != 2 {
		t.Fatalf("expected 2 kinds, got %d", len(resp.Kinds))
	}
	if resp.Kinds[0].Kind != "c2b" || resp.Kinds[1].Kind != "iso8583" {
		t.Fatalf("expected kinds sorted by name, got %+v", resp.Kinds)
	}
	if resp.Accepted != 4 || resp.Rejected != 2 {
		t.Fatalf("unexpected totals: accepted=%d rejected=%d", resp.Accepted, resp.Rejected)
	}
}

func TestStatsFromSnapshot_Empty(t *testing.T) {
	resp := StatsFromSnapshot(nil)
	if resp.Kinds == nil || len(resp.Kinds) != 0 {
		t.Fatalf("expected empty, non-nil kinds: %+v", resp.Kinds)
	}
}
