package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/localize/datagen/internal/adapter/http/dto"
	"github.com/localize/datagen/internal/domain"
	"github.com/localize/datagen/internal/usecase"
)

type messageServiceStub struct {
	receiveFn func(ctx context.Context, kindHint string, body []byte) (*usecase.Receipt, error)
	statsFn   func(ctx context.Context) (map[domain.Kind]usecase.KindStats, error)
}

func (s *messageServiceStub) Receive(ctx context.Context, kindHint string, body []byte) (*usecase.Receipt, error) {
	return s.receiveFn(ctx, kindHint, body)
}

func (s *messageServiceStub) Stats(ctx context.Context) (map[domain.Kind]usecase.KindStats, error) {
	return s.statsFn(ctx)
}

func TestMessageHandler_Create_Accepted(t *testing.T) {
	var gotHint string
	var gotBody []byte
	h := NewMessageHandler(&messageServiceStub{
		receiveFn: func(ctx context.Context, kindHint string, body []byte) (*usecase.Receipt, error) {
			gotHint, gotBody = kindHint, body
			return &usecase.Receipt{Kind: domain.KindISO8583, Summary: "iso8583 mti=0200"}, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/messages", strings.NewReader(`{"mti":"0200"}`))
	req.Header.Set(KindHeader, "iso8583")
	rr := httptest.NewRecorder()

	h.Create(rr, req)

	if rr.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rr.Code, rr.Body.String())
	}
	if gotHint != "iso8583" || string(gotBody) != `{"mti":"0200"}` {
		t.Fatalf("unexpected service input: hint=%q body=%s", gotHint, gotBody)
	}

	var resp dto.MessageAcceptedResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "accepted" || resp.Kind != "iso8583" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestMessageHandler_Create_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"undetectable", domain.ErrUnknownKind, http.StatusBadRequest},
		{"malformed", usecase.ErrMalformedPayload, http.StatusBadRequest},
		{"invalid", &domain.ValidationError{Kind: domain.KindCitizenToBusiness, Field: "citizenID", Err: domain.ErrInvalidIdentifier}, http.StatusUnprocessableEntity},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewMessageHandler(&messageServiceStub{
				receiveFn: func(context.Context, string, []byte) (*usecase.Receipt, error) {
					return nil, tt.err
				},
			})

			rr := httptest.NewRecorder()
			h.Create(rr, httptest.NewRequest(http.MethodPost, "/api/v1/messages", strings.NewReader(`{}`)))

			if rr.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, rr.Code)
			}
		})
	}
}

func TestMessageHandler_Create_BodyTooLarge(t *testing.T) {
	h := NewMessageHandler(&messageServiceStub{
		receiveFn: func(context.Context, string, []byte) (*usecase.Receipt, error) {
			t.Fatal("service must not be called for oversized bodies")
			return nil, nil
		},
	})

	body := bytes.Repeat([]byte("a"), usecase.MaxReceiveBodySize+1)
	rr := httptest.NewRecorder()
	h.Create(rr, httptest.NewRequest(http.MethodPost, "/api/v1/messages", bytes.NewReader(body)))

	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rr.Code)
	}
}

func TestMessageHandler_Stats(t *testing.T) {
	h := NewMessageHandler(&messageServiceStub{
		statsFn: func(context.Context) (map[domain.Kind]usecase.KindStats, error) {
			return map[domain.Kind]usecase.KindStats{domain.KindC2B: {Accepted: 2, Rejected: 1}}, nil
		},
	})

	rr := httptest.NewRecorder()
	h.Stats(rr, httptest.NewRequest(http.MethodGet, "/api/v1/messages/stats", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp dto.StatsResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Accepted != 2 || resp.Rejected != 1 || len(resp.Kinds) != 1 {
		t.Fatalf("unexpected stats: %+v", resp)
	}
}

func TestMessageHandler_StatsFailure(t *testing.T) {
	h := NewMessageHandler(&messageServiceStub{
		statsFn: func(context.Context) (map[domain.Kind]usecase.KindStats, error) {
			return nil, errors.New("redis down")
		},
	})

	rr := httptest.NewRecorder()
	h.Stats(rr, httptest.NewRequest(http.MethodGet, "/api/v1/messages/stats", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
}
