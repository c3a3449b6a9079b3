package httpapi

import (
	"context"
	"strings"
	"sync"

	"staffdesk.org/internal/auth"
)

type correlationIDContextKey struct{}

// ContextWithCorrelationID attaches the request correlation id to the context.
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	id = strings.TrimSpace(id)
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, correlationIDContextKey{}, id)
}

// CorrelationIDFromContext returns the correlation id attached to the context.
func CorrelationIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(correlationIDContextKey{}).(string); ok {
		return v
	}
	return ""
}

// identityHolder lets the audit middleware observe the identity that the
// authentication gate resolves further down the chain. The holder is
// installed before authentication runs and filled in afterwards.
type identityHolder struct {
	mu       sync.Mutex
	identity *auth.Identity
}

func (h *identityHolder) set(identity auth.Identity) {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.identity = &identity
}

func (h *identityHolder) get() (auth.Identity, bool) {
	if h == nil {
		return auth.Identity{}, false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.identity == nil {
		return auth.Identity{}, false
	}
	return *h.identity, true
}

type identityHolderContextKey struct{}

func contextWithIdentityHolder(ctx context.Context, h *identityHolder) context.Context {
	return context.WithValue(ctx, identityHolderContextKey{}, h)
}

func identityHolderFromContext(ctx context.Context) *identityHolder {
	if ctx == nil {
		return nil
	}
	if h, ok := ctx.Value(identityHolderContextKey{}).(*identityHolder); ok {
		return h
	}
	return nil
}
