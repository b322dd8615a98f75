package sink

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/localize/datagen/internal/usecase"
)

// ErrUnexpectedStatus is returned when the receiver answers with a non-2xx status.
var ErrUnexpectedStatus = errors.New("unexpected status")

const (
	HeaderIdempotencyKey = "Idempotency-Key"
	HeaderMessageKind    = "X-Message-Kind"

	maxDrainBytes = 64 << 10
)

// StatusError carries the status code of a rejected request.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d %s", ErrUnexpectedStatus, e.Code, http.StatusText(e.Code))
}

func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}

// HTTPSink POSTs each message to a fixed URL.
type HTTPSink struct {
	client *http.Client
	url    string
}

// NewHTTPSink creates an HTTPSink whose client gives up after timeout.
func NewHTTPSink(url string, timeout time.Duration) *HTTPSink {
	return &HTTPSink{
		client: &http.Client{Timeout: timeout},
		url:    url,
	}
}

func (s *HTTPSink) Name() string { return "http" }

// Send returns the response status code as its status.
func (s *HTTPSink) Send(ctx context.Context, msg *usecase.Message) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(msg.Body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderIdempotencyKey, msg.ID)
	req.Header.Set(HeaderMessageKind, msg.Kind.String())

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("post %s: %w", msg.Kind, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainBytes))

	status := strconv.Itoa(resp.StatusCode)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return status, &StatusError{Code: resp.StatusCode}
	}

	return status, nil
}

func (s *HTTPSink) Close() error {
	s.client.CloseIdleConnections()
	return nil
}
