package dto

import (
	"sort"

	"github.com/localize/datagen/internal/domain"
	"github.com/localize/datagen/internal/usecase"
)

// MessageAcceptedResponse is returned for an accepted message.
type MessageAcceptedResponse struct {
	Status  string `json:"status"`
	Kind    string `json:"kind"`
	Summary string `json:"summary"`
}

// MessageAcceptedFromReceipt converts a receipt to a response.
func MessageAcceptedFromReceipt(r *usecase.Receipt) *MessageAcceptedResponse {
	return &MessageAcceptedResponse{
		Status:  "accepted",
		Kind:    r.Kind.String(),
		Summary: r.Summary,
	}
}

// KindStatsResponse holds the counters of one kind.
type KindStatsResponse struct {
	Kind     string `json:"kind"`
	Accepted int64  `json:"accepted"`
	Rejected int64  `json:"rejected"`
}

// StatsResponse summarizes everything the receiver has seen.
type StatsResponse struct {
	Kinds    []KindStatsResponse `json:"kinds"`
	Accepted int64               `json:"accepted"`
	Rejected int64               `json:"rejected"`
}

// StatsFromSnapshot converts a stats snapshot to a response sorted by kind.
func StatsFromSnapshot(snapshot map[domain.Kind]usecase.KindStats) *StatsResponse {
	resp := &StatsResponse{Kinds: make([]KindStatsResponse, 0, len(snapshot))}
	for kind, st := range snapshot {
		resp.Kinds = append(resp.Kinds, KindStatsResponse{
			Kind:     kind.String(),
			Accepted: st.Accepted,
			Rejected: st.Rejected,
		})
		resp.Accepted += st.Accepted
		resp.Rejected += st.Rejected
	}
	sort.Slice(resp.Kinds, func(i, j int) bool {
		return resp.Kinds[i].Kind < resp.Kinds[j].Kind
	})
	return resp
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Field   string `json:"field,omitempty"`
}
