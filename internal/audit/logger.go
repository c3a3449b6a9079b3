package audit

import (
	"context"
	"time"

	"staffdesk.org/internal/auth"
	"staffdesk.org/internal/obs"
)

// Logger emits audit events to a sink. All Record methods are fire-and-forget.
type Logger struct {
	sink Sink
	now  func() time.Time
}

// Option configures Logger behavior.
type Option func(*Logger)

// WithClock overrides the time source (useful for tests).
func WithClock(fn func() time.Time) Option {
	return func(l *Logger) {
		if fn != nil {
			l.now = fn
		}
	}
}

// NewLogger creates a Logger over the given sink.
func NewLogger(sink Sink, opts ...Option) *Logger {
	if sink == nil {
		sink = NoOpSink{}
	}
	l := &Logger{sink: sink, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewObsLogger creates a Logger writing JSON lines through the shared
// service logger.
func NewObsLogger(opts ...Option) *Logger {
	return NewLogger(NewJSONWriterSink(obs.Logger().Writer()), opts...)
}

// RequestEntry describes the request phase of one inbound call.
type RequestEntry struct {
	CorrelationID string
	Method        string
	Path          string
	Identity      string
	ClientAddr    string
	Body          string
}

// ResponseEntry describes the response phase of one inbound call.
type ResponseEntry struct {
	CorrelationID string
	Method        string
	Path          string
	Identity      string
	ClientAddr    string
	Status        int
	Duration      time.Duration
	Body          string
}

// RecordRequest writes the request-phase entry before dispatch.
func (l *Logger) RecordRequest(ctx context.Context, e RequestEntry) {
	if l == nil {
		return
	}
	identity := e.Identity
	if identity == "" {
		identity = AnonymousIdentity
	}
	l.sink.Emit(ctx, Event{
		Timestamp:     l.now().UTC(),
		Type:          "audit",
		Phase:         PhaseRequest,
		CorrelationID: e.CorrelationID,
		Method:        e.Method,
		Path:          e.Path,
		Identity:      identity,
		ClientAddr:    e.ClientAddr,
		Body:          Sanitize(e.Body, RequestBodyLimit),
		Success:       true,
	})
	obs.CountAuditEntry(PhaseRequest)
}

// RecordResponse writes the response-phase entry after dispatch. It runs for
// successful, rejected and panicking requests alike.
func (l *Logger) RecordResponse(ctx context.Context, e ResponseEntry) {
	if l == nil {
		return
	}
	identity := e.Identity
	if identity == "" {
		identity = AnonymousIdentity
	}
	l.sink.Emit(ctx, Event{
		Timestamp:     l.now().UTC(),
		Type:          "audit",
		Phase:         PhaseResponse,
		CorrelationID: e.CorrelationID,
		Method:        e.Method,
		Path:          e.Path,
		Identity:      identity,
		ClientAddr:    e.ClientAddr,
		Status:        e.Status,
		DurationMS:    e.Duration.Milliseconds(),
		Body:          Sanitize(e.Body, ResponseBodyLimit),
		Success:       e.Status < 500,
	})
	obs.CountAuditEntry(PhaseResponse)
}

// RecordAuth writes one entry per authentication attempt. It implements
// auth.AttemptRecorder.
func (l *Logger) RecordAuth(ctx context.Context, attempt auth.Attempt) {
	if l == nil {
		return
	}
	l.sink.Emit(ctx, Event{
		Timestamp:  l.now().UTC(),
		Type:       "audit",
		Phase:      PhaseAuth,
		Event:      attempt.Event,
		Identity:   attempt.Username,
		ClientAddr: attempt.ClientAddr,
		Success:    attempt.Success,
		Reason:     attempt.Reason,
	})
	obs.CountAuditEntry(PhaseAuth)
}

var _ auth.AttemptRecorder = (*Logger)(nil)
