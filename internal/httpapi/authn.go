package httpapi

import (
	"net/http"
	"strings"

	"staffdesk.org/internal/auth"
	"staffdesk.org/internal/obs"
)

const authHeader = "Authorization"

var publicPaths = []string{
	"/",
	"/health",
	"/info",
	"/metrics",
	"/api/auth/login",
}
var publicPrefixes = []string{
	"/swagger",
}

// withAuth gates every non-public path behind bearer token validation. A
// rejected request still produces its request-phase audit entry before the
// 401 short-circuit so the audit trail observes it end to end.
func (a *API) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isPublicPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		identity, err := a.auth.Authenticate(r.Context(), r.Header.Get(authHeader))
		if err != nil {
			reason := string(auth.ReasonClaimsInvalid)
			if f := auth.FailureOf(err); f != nil {
				reason = string(f.Reason)
			}
			obs.CountAuthFailure(reason)
			a.audit.RecordAuth(r.Context(), auth.Attempt{
				Event:      "auth.token",
				ClientAddr: clientIP(r),
				Reason:     reason,
			})

			a.recordRequestEntry(r, "")
			a.writeEnvelope(w, r, http.StatusUnauthorized, "Access denied", nil)
			return
		}

		if holder := identityHolderFromContext(r.Context()); holder != nil {
			holder.set(identity)
		}
		ctx := auth.ContextWithIdentity(r.Context(), identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func isPublicPath(path string) bool {
	for _, p := range publicPaths {
		if path == p {
			return true
		}
	}
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
