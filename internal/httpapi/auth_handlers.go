package httpapi

import (
	"net/http"
	"strings"

	"staffdesk.org/internal/auth"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
	ExpiresIn int    `json:"expiresIn"`
	Username  string `json:"username"`
	Role      string `json:"role"`
}

type meResponse struct {
	UserID          string `json:"userId"`
	Username        string `json:"username"`
	Role            string `json:"role"`
	IsAuthenticated bool   `json:"isAuthenticated"`
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		a.methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		a.writeFailure(w, r, err)
		return
	}

	var missing []string
	if strings.TrimSpace(req.Username) == "" {
		missing = append(missing, "username is required")
	}
	if req.Password == "" {
		missing = append(missing, "password is required")
	}
	if len(missing) > 0 {
		a.writeEnvelope(w, r, http.StatusBadRequest, "Invalid input: required value is missing", missing)
		return
	}

	issued, identity, err := a.auth.Issue(r.Context(), req.Username, req.Password, clientIP(r))
	if err != nil {
		if f := auth.FailureOf(err); f != nil && f.Reason == auth.ReasonInvalidCredentials {
			a.writeEnvelope(w, r, http.StatusUnauthorized, "Invalid username or password", nil)
			return
		}
		a.writeFailure(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token:     issued.Token,
		TokenType: "Bearer",
		ExpiresIn: int(a.auth.TokenTTL().Seconds()),
		Username:  identity.Username,
		Role:      identity.Role,
	})
}

func (a *API) handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		a.methodNotAllowed(w, r, http.MethodGet)
		return
	}
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		a.writeEnvelope(w, r, http.StatusUnauthorized, "Access denied", nil)
		return
	}
	writeJSON(w, http.StatusOK, meResponse{
		UserID:          identity.UserID,
		Username:        identity.Username,
		Role:            identity.Role,
		IsAuthenticated: true,
	})
}
