// Package httpapi is the HTTP layer: routing, the middleware chain and the
// translation of service failures into standardized envelopes.
//
// Every inbound request traverses the chain in fixed order: panic boundary,
// security headers, correlation id, metrics, body limit, response-phase
// audit, rate limit, authentication gate, request-phase audit, handler.
package httpapi

import (
	"net/http"

	"staffdesk.org/internal/audit"
	"staffdesk.org/internal/auth"
	"staffdesk.org/internal/config"
	"staffdesk.org/internal/employee"
	"staffdesk.org/internal/health"
	"staffdesk.org/internal/obs"
)

// API is the HTTP layer.
type API struct {
	mux        *http.ServeMux
	auth       *auth.Service
	employees  *employee.Service
	audit      *audit.Logger
	health     *health.Registry
	version    string
	production bool
	rateBurst  int
	ratePerSec int
	maxBody    int64
}

// New wires the HTTP layer over the given services.
func New(cfg config.Config, authSvc *auth.Service, employees *employee.Service, auditLog *audit.Logger, healthReg *health.Registry, version string) *API {
	if auditLog == nil {
		auditLog = audit.NewLogger(audit.NoOpSink{})
	}
	a := &API{
		mux:        http.NewServeMux(),
		auth:       authSvc,
		employees:  employees,
		audit:      auditLog,
		health:     healthReg,
		version:    version,
		production: cfg.IsProduction(),
		rateBurst:  cfg.RateBurst,
		ratePerSec: cfg.RatePerSecond,
		maxBody:    cfg.MaxBodyBytes,
	}

	a.mux.HandleFunc("/health", a.handleHealth)
	a.mux.HandleFunc("/info", a.handleInfo)
	a.mux.Handle("/metrics", obs.Handler())

	a.mux.HandleFunc("/swagger", a.handleSwaggerRedirect)
	a.mux.HandleFunc("/swagger/openapi.yaml", a.handleOpenAPISpec)

	a.mux.HandleFunc("/api/auth/login", a.handleLogin)
	a.mux.HandleFunc("/api/auth/me", a.handleMe)

	a.mux.HandleFunc("/api/employees", a.handleEmployeesCollection)
	a.mux.HandleFunc("/api/employees/by-email", a.handleEmployeeByEmail)
	a.mux.HandleFunc("/api/employees/", a.handleEmployeeResource)

	a.mux.HandleFunc("/", a.handleRoot)

	return a
}

// Handler returns the fully composed middleware chain.
func (a *API) Handler() http.Handler {
	var h http.Handler = a.mux
	h = a.withRequestAudit(h)
	h = a.withAuth(h)
	h = a.RateLimit(h, a.rateBurst, a.ratePerSec)
	h = a.withResponseAudit(h)
	h = MaxBodyBytes(h, a.maxBody)
	h = obs.Instrument(h)
	h = CorrelationID(h)
	h = SecurityHeaders(h)
	h = a.recoverPanics(h)
	return h
}
