package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"staffdesk.org/internal/auth"
)

type captureSink struct {
	events []Event
}

func (s *captureSink) Emit(_ context.Context, event Event) {
	s.events = append(s.events, event)
}

func fixedClock() time.Time {
	return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
}

func TestRecordRequestDefaultsToAnonymous(t *testing.T) {
	sink := &captureSink{}
	logger := NewLogger(sink, WithClock(fixedClock))

	logger.RecordRequest(context.Background(), RequestEntry{
		CorrelationID: "corr-1",
		Method:        "GET",
		Path:          "/api/employees",
		ClientAddr:    "10.0.0.1",
	})

	if len(sink.events) != 1 {
		t.Fatalf("expected one event, got %d", len(sink.events))
	}
	got := sink.events[0]
	if got.Phase != PhaseRequest {
		t.Fatalf("unexpected phase: %s", got.Phase)
	}
	if got.Identity != AnonymousIdentity {
		t.Fatalf("expected anonymous identity, got %q", got.Identity)
	}
	if got.CorrelationID != "corr-1" {
		t.Fatalf("correlation id lost: %q", got.CorrelationID)
	}
	if !got.Timestamp.Equal(fixedClock()) {
		t.Fatalf("unexpected timestamp: %v", got.Timestamp)
	}
}

func TestRecordRequestMasksSensitiveBody(t *testing.T) {
	sink := &captureSink{}
	logger := NewLogger(sink, WithClock(fixedClock))

	logger.RecordRequest(context.Background(), RequestEntry{
		CorrelationID: "corr-2",
		Method:        "POST",
		Path:          "/api/auth/login",
		Body:          `{"username":"admin","password":"admin123"}`,
	})

	if got := sink.events[0].Body; got != "[REDACTED]" {
		t.Fatalf("body not masked: %q", got)
	}
}

func TestRecordResponse(t *testing.T) {
	sink := &captureSink{}
	logger := NewLogger(sink, WithClock(fixedClock))

	logger.RecordResponse(context.Background(), ResponseEntry{
		CorrelationID: "corr-3",
		Method:        "GET",
		Path:          "/api/employees/emp-001",
		Identity:      "admin",
		Status:        404,
		Duration:      37 * time.Millisecond,
		Body:          `{"success":false}`,
	})

	got := sink.events[0]
	if got.Phase != PhaseResponse {
		t.Fatalf("unexpected phase: %s", got.Phase)
	}
	if got.Status != 404 || got.DurationMS != 37 {
		t.Fatalf("status/duration lost: %+v", got)
	}
	if !got.Success {
		t.Fatal("4xx responses count as handled, expected success=true")
	}
	if got.Identity != "admin" {
		t.Fatalf("identity lost: %q", got.Identity)
	}
}

func TestRecordAuth(t *testing.T) {
	sink := &captureSink{}
	logger := NewLogger(sink, WithClock(fixedClock))

	logger.RecordAuth(context.Background(), auth.Attempt{
		Event:      "auth.login",
		Username:   "admin",
		ClientAddr: "10.0.0.1",
		Success:    false,
		Reason:     "wrong_password",
	})

	got := sink.events[0]
	if got.Phase != PhaseAuth || got.Event != "auth.login" {
		t.Fatalf("unexpected event: %+v", got)
	}
	if got.Success || got.Reason != "wrong_password" {
		t.Fatalf("outcome lost: %+v", got)
	}
}

func TestJSONWriterSinkEmitsOneLinePerEvent(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONWriterSink(&buf)
	logger := NewLogger(sink, WithClock(fixedClock))

	logger.RecordRequest(context.Background(), RequestEntry{CorrelationID: "corr-4", Method: "GET", Path: "/health"})
	logger.RecordResponse(context.Background(), ResponseEntry{CorrelationID: "corr-4", Method: "GET", Path: "/health", Status: 200})

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 2 {
		t.Fatalf("expected two lines, got %d", len(lines))
	}
	for _, line := range lines {
		var entry map[string]any
		if err := json.Unmarshal(line, &entry); err != nil {
			t.Fatalf("line is not valid JSON: %v", err)
		}
		if entry["type"] != "audit" {
			t.Fatalf("unexpected type: %v", entry["type"])
		}
		if entry["correlationId"] != "corr-4" {
			t.Fatalf("unexpected correlation id: %v", entry["correlationId"])
		}
	}
}
