package auth

import "time"

// Credential is a static login record seeded at process start. The table is
// read-only after boot and therefore safe for concurrent lookups.
type Credential struct {
	Username  string
	Password  string
	Role      string
	SubjectID string
}

// Identity is the authenticated principal derived from a validated token.
// It lives in the request context and is never persisted.
type Identity struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// IssuedToken is the result of a successful login.
type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
}

// DefaultCredentials is the demonstration credential table.
func DefaultCredentials() []Credential {
	return []Credential{
		{Username: "admin", Password: "admin123", Role: "Administrator", SubjectID: "1"},
		{Username: "user", Password: "user123", Role: "User", SubjectID: "2"},
	}
}
