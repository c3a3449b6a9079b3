// Package audit records request, response and authentication events as
// append-only JSON lines. Recording is best-effort: a failing sink never
// aborts the request being audited.
package audit

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"
)

// AnonymousIdentity is logged when no authenticated identity is present.
const AnonymousIdentity = "Anonymous"

// Event is one audit record. Entries are write-once; nothing mutates an
// event after it has been emitted.
type Event struct {
	Timestamp     time.Time `json:"ts"`
	Type          string    `json:"type"`
	Phase         string    `json:"phase"`
	CorrelationID string    `json:"correlationId,omitempty"`
	Method        string    `json:"method,omitempty"`
	Path          string    `json:"path,omitempty"`
	Identity      string    `json:"identity,omitempty"`
	ClientAddr    string    `json:"clientAddr,omitempty"`
	Status        int       `json:"status,omitempty"`
	DurationMS    int64     `json:"durationMs,omitempty"`
	Body          string    `json:"body,omitempty"`
	Event         string    `json:"event,omitempty"`
	Success       bool      `json:"success"`
	Reason        string    `json:"reason,omitempty"`
}

const (
	PhaseRequest  = "request"
	PhaseResponse = "response"
	PhaseAuth     = "auth"
)

// Sink receives emitted audit events.
type Sink interface {
	Emit(ctx context.Context, event Event)
}

// NoOpSink drops audit events.
type NoOpSink struct{}

func (NoOpSink) Emit(context.Context, Event) {}

// JSONWriterSink writes one JSON object per line, serialized behind a mutex
// so concurrent requests never interleave output.
type JSONWriterSink struct {
	mu     sync.Mutex
	writer io.Writer
}

func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return &JSONWriterSink{writer: w}
}

func (s *JSONWriterSink) Emit(_ context.Context, event Event) {
	if s == nil || s.writer == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = s.writer.Write(data)
	_, _ = s.writer.Write([]byte("\n"))
}
