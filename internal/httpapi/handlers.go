package httpapi

import (
	"net/http"
	"time"

	"staffdesk.org/api/spec"
	"staffdesk.org/internal/apperr"
)

const serviceName = "staffdesk-api"

func (a *API) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		a.writeFailure(w, r, apperr.New(apperr.KindNotFound, "no route for "+r.URL.Path))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"service": serviceName,
		"version": a.version,
		"docs":    "/swagger",
	})
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		a.methodNotAllowed(w, r, http.MethodGet)
		return
	}
	report := a.health.Run(r.Context())
	code := http.StatusOK
	if report.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, report)
}

func (a *API) handleInfo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		a.methodNotAllowed(w, r, http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    serviceName,
		"version": a.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

func (a *API) handleSwaggerRedirect(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/swagger/openapi.yaml", http.StatusFound)
}

func (a *API) handleOpenAPISpec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
	_, _ = w.Write(spec.OpenAPI)
}
