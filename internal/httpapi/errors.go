package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"staffdesk.org/internal/apperr"
	"staffdesk.org/internal/ids"
)

// errorEnvelope is the uniform failure response shape. It is constructed
// fresh per failure and never reused.
type errorEnvelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Errors  []string     `json:"errors"`
	Data    envelopeData `json:"data"`
}

type envelopeData struct {
	CorrelationID string    `json:"correlationId"`
	Timestamp     time.Time `json:"timestamp"`
}

const genericDetail = "An unexpected error occurred"

// translate maps a classified failure onto a stable status code, public
// message and detail list. Most specific kinds come first; anything
// unclassified falls through to 500.
func translate(err error, production bool) (int, string, []string) {
	kind := apperr.KindOf(err)

	var status int
	var message string
	switch kind {
	case apperr.KindMissingValue:
		status, message = http.StatusBadRequest, "Invalid input: required value is missing"
	case apperr.KindInvalidInput:
		status, message = http.StatusBadRequest, "Invalid input provided"
	case apperr.KindUnauthorized:
		status, message = http.StatusUnauthorized, "Access denied"
	case apperr.KindNotFound:
		status, message = http.StatusNotFound, "Resource not found"
	case apperr.KindConflict:
		status, message = http.StatusConflict, "Operation failed"
	case apperr.KindTimeout:
		status, message = http.StatusRequestTimeout, "Request timeout"
	default:
		status, message = http.StatusInternalServerError, "Internal server error"
	}

	var details []string
	if e := apperr.As(err); e != nil {
		details = append(details, e.Details...)
		if !production && e.Inner != nil {
			details = append(details, e.Inner.Error())
		}
	} else if !production && err != nil {
		details = append(details, err.Error())
	}
	if len(details) == 0 {
		details = []string{genericDetail}
	}
	return status, message, details
}

// writeFailure translates the error and writes the standardized envelope.
func (a *API) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	status, message, details := translate(err, a.production)
	a.writeEnvelope(w, r, status, message, details)
}

// writeEnvelope writes a failure envelope carrying the request's correlation
// id, minting one when the middleware has not attached it.
func (a *API) writeEnvelope(w http.ResponseWriter, r *http.Request, status int, message string, details []string) {
	cid := CorrelationIDFromContext(r.Context())
	a.writeEnvelopeWithID(w, cid, status, message, details)
}

func (a *API) writeEnvelopeWithID(w http.ResponseWriter, cid string, status int, message string, details []string) {
	if cid == "" {
		cid = ids.New()
		w.Header().Set(correlationIDHeader, cid)
	}
	if details == nil {
		details = []string{}
	}
	writeJSON(w, status, errorEnvelope{
		Success: false,
		Message: message,
		Errors:  details,
		Data: envelopeData{
			CorrelationID: cid,
			Timestamp:     time.Now().UTC(),
		},
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	reader := http.MaxBytesReader(w, r.Body, 1<<20)
	defer reader.Close()
	dec := json.NewDecoder(reader)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.New(apperr.KindMissingValue, "request body is required")
		}
		return apperr.Wrap(apperr.KindInvalidInput, "request body is not valid JSON", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return apperr.New(apperr.KindInvalidInput, "unexpected data after JSON body")
	}
	return nil
}

func (a *API) methodNotAllowed(w http.ResponseWriter, r *http.Request, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	a.writeEnvelope(w, r, http.StatusMethodNotAllowed, "Method not allowed", nil)
}
