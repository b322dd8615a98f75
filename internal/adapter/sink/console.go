// Package sink delivers serialized payloads to their destinations.
package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/localize/datagen/internal/usecase"
)

// ConsoleSink writes one JSON document per line.
type ConsoleSink struct {
	mu     sync.Mutex
	out    io.Writer
	pretty bool
}

// NewConsoleSink creates a ConsoleSink. With pretty set, documents are
// indented by two spaces.
func NewConsoleSink(out io.Writer, pretty bool) *ConsoleSink {
	return &ConsoleSink{out: out, pretty: pretty}
}

func (s *ConsoleSink) Name() string { return "console" }

func (s *ConsoleSink) Send(_ context.Context, msg *usecase.Message) (string, error) {
	var buf bytes.Buffer
	var err error
	if s.pretty {
		err = json.Indent(&buf, msg.Body, "", "  ")
	} else {
		err = json.Compact(&buf, msg.Body)
	}
	if err != nil {
		return "", fmt.Errorf("render %s: %w", msg.Kind, err)
	}
	buf.WriteByte('\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.out.Write(buf.Bytes()); err != nil {
		return "", fmt.Errorf("write %s: %w", msg.Kind, err)
	}

	return "printed", nil
}

func (s *ConsoleSink) Close() error { return nil }
