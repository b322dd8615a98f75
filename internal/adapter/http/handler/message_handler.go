package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/localize/datagen/internal/adapter/http/dto"
	"github.com/localize/datagen/internal/domain"
	"github.com/localize/datagen/internal/usecase"
)

// KindHeader lets senders name the payload kind instead of relying on detection.
const KindHeader = "X-Message-Kind"

// MessageService defines the behavior needed by MessageHandler.
type MessageService interface {
	Receive(ctx context.Context, kindHint string, body []byte) (*usecase.Receipt, error)
	Stats(ctx context.Context) (map[domain.Kind]usecase.KindStats, error)
}

// MessageHandler handles payloads posted by the generator.
type MessageHandler struct {
	messageUC MessageService
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(messageUC MessageService) *MessageHandler {
	return &MessageHandler{messageUC: messageUC}
}

// Create accepts one payload.
func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, usecase.MaxReceiveBodySize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "payload too large", err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	receipt, err := h.messageUC.Receive(r.Context(), r.Header.Get(KindHeader), body)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, dto.MessageAcceptedFromReceipt(receipt))
}

// Stats returns per-kind counters.
func (h *MessageHandler) Stats(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.messageUC.Stats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load stats", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.StatsFromSnapshot(snapshot))
}
