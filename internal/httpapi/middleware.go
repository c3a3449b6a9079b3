package httpapi

import (
	"bytes"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"staffdesk.org/internal/apperr"
	"staffdesk.org/internal/audit"
	"staffdesk.org/internal/auth"
	"staffdesk.org/internal/ids"
	"staffdesk.org/internal/obs"
)

const (
	correlationIDHeader = "X-Correlation-ID"

	// Snapshot caps are in bytes; audit.Sanitize applies the final
	// character limits before logging.
	requestSnapshotLimit  = 2048
	responseSnapshotLimit = 4096
)

// statusWriter captures the status code and a bounded snapshot of the
// response body for audit logging.
type statusWriter struct {
	http.ResponseWriter
	code     int
	snapshot []byte
	maxSnap  int
}

func newStatusWriter(w http.ResponseWriter, maxSnap int) *statusWriter {
	return &statusWriter{ResponseWriter: w, code: http.StatusOK, maxSnap: maxSnap}
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(p []byte) (int, error) {
	if remaining := w.maxSnap - len(w.snapshot); remaining > 0 {
		chunk := p
		if len(chunk) > remaining {
			chunk = chunk[:remaining]
		}
		w.snapshot = append(w.snapshot, chunk...)
	}
	return w.ResponseWriter.Write(p)
}

// recoverPanics is the outermost boundary: any panic escaping the chain is
// translated into a standardized 500 envelope. A response is always produced.
func (a *API) recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			p := recover()
			if p == nil {
				return
			}
			obs.LogJSON(map[string]any{
				"ts":    time.Now().UTC().Format(time.RFC3339Nano),
				"level": "error",
				"msg":   "panic_recovered",
				"panic": p,
				"path":  r.URL.Path,
			})
			err, ok := p.(error)
			if !ok {
				err = apperr.New(apperr.KindInternal, "unhandled fault")
			}
			// Correlation id middleware runs inside the boundary; by the
			// time a panic unwinds the response header already carries it.
			cid := w.Header().Get(correlationIDHeader)
			status, message, details := translate(err, a.production)
			a.writeEnvelopeWithID(w, cid, status, message, details)
		}()
		next.ServeHTTP(w, r)
	})
}

// SecurityHeaders sets the fixed hardening header set on every response,
// error responses included.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		if r.TLS != nil {
			w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		next.ServeHTTP(w, r)
	})
}

// CorrelationID reuses the inbound X-Correlation-ID or mints a fresh one,
// echoes it on the response and stores it in the request context.
func CorrelationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cid := strings.TrimSpace(r.Header.Get(correlationIDHeader))
		if cid == "" {
			cid = ids.New()
		}
		w.Header().Set(correlationIDHeader, cid)
		ctx := ContextWithCorrelationID(r.Context(), cid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// MaxBodyBytes limits request body size.
func MaxBodyBytes(next http.Handler, maxBytes int64) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		next.ServeHTTP(w, r)
	})
}

// RateLimit applies a token bucket per client IP.
func (a *API) RateLimit(next http.Handler, burst, perSecond int) http.Handler {
	type bucket struct {
		lim *rate.Limiter
		ts  time.Time
	}
	var (
		mu      sync.Mutex
		buckets = make(map[string]*bucket)
		ttl     = 5 * time.Minute
	)
	ticker := time.NewTicker(time.Minute)
	go func() {
		for range ticker.C {
			now := time.Now()
			mu.Lock()
			for k, b := range buckets {
				if now.Sub(b.ts) > ttl {
					delete(buckets, k)
				}
			}
			mu.Unlock()
		}
	}()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if ip == "" {
			ip = "unknown"
		}
		mu.Lock()
		b, ok := buckets[ip]
		if !ok {
			b = &bucket{lim: rate.NewLimiter(rate.Limit(perSecond), burst)}
			buckets[ip] = b
		}
		b.ts = time.Now()
		allowed := b.lim.Allow()
		mu.Unlock()

		if !allowed {
			w.Header().Set("Retry-After", "1")
			a.writeEnvelope(w, r, http.StatusTooManyRequests, "Too many requests", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withResponseAudit records the response-phase entry for every request,
// including rate-limited 429s, short-circuited 401s and panicking handlers.
// The identity holder it installs is filled in by the authentication gate
// further down.
func (a *API) withResponseAudit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		holder := &identityHolder{}
		ctx := contextWithIdentityHolder(r.Context(), holder)
		r = r.WithContext(ctx)

		cid := CorrelationIDFromContext(ctx)
		addr := clientIP(r)

		sw := newStatusWriter(w, responseSnapshotLimit)
		start := time.Now()
		completed := false
		defer func() {
			status := sw.code
			if !completed {
				// A panic is unwinding; the boundary above answers 500.
				status = http.StatusInternalServerError
			}
			identity, _ := holder.get()
			a.audit.RecordResponse(ctx, audit.ResponseEntry{
				CorrelationID: cid,
				Method:        r.Method,
				Path:          r.URL.Path,
				Identity:      identity.Username,
				ClientAddr:    addr,
				Status:        status,
				Duration:      time.Since(start),
				Body:          string(sw.snapshot),
			})
		}()

		next.ServeHTTP(sw, r)
		completed = true
	})
}

// withRequestAudit records the request-phase entry after the authentication
// gate has resolved an identity and before the handler dispatch.
func (a *API) withRequestAudit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, _ := auth.IdentityFromContext(r.Context())
		a.recordRequestEntry(r, identity.Username)
		next.ServeHTTP(w, r)
	})
}

func (a *API) recordRequestEntry(r *http.Request, username string) {
	a.audit.RecordRequest(r.Context(), audit.RequestEntry{
		CorrelationID: CorrelationIDFromContext(r.Context()),
		Method:        r.Method,
		Path:          r.URL.Path,
		Identity:      username,
		ClientAddr:    clientIP(r),
		Body:          peekBody(r),
	})
}

// peekBody reads a bounded prefix of the request body for audit logging and
// restores the stream for the handler.
func peekBody(r *http.Request) string {
	if r.Body == nil || r.Body == http.NoBody {
		return ""
	}
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
	default:
		return ""
	}
	data, err := io.ReadAll(io.LimitReader(r.Body, requestSnapshotLimit))
	if err != nil {
		return ""
	}
	rest := r.Body
	r.Body = struct {
		io.Reader
		io.Closer
	}{io.MultiReader(bytes.NewReader(data), rest), rest}
	return string(data)
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
