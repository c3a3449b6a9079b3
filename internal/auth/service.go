package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	defaultIssuer   = "staffdesk"
	defaultAudience = "staffdesk-api"
	defaultTokenTTL = time.Hour

	bearerPrefix = "Bearer "
)

// Attempt describes one authentication attempt for the audit trail. The
// reason may be more specific than what the API response reveals.
type Attempt struct {
	Event      string
	Username   string
	ClientAddr string
	Success    bool
	Reason     string
}

// AttemptRecorder receives authentication attempts. Recording is best-effort;
// implementations must never fail the request.
type AttemptRecorder interface {
	RecordAuth(ctx context.Context, attempt Attempt)
}

// Service issues and validates bearer tokens against a static credential
// table using a shared HS256 secret.
type Service struct {
	secret   []byte
	creds    map[string]Credential
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
	recorder AttemptRecorder
}

// Option configures Service behavior.
type Option func(*Service)

// WithIssuer overrides the token issuer claim.
func WithIssuer(issuer string) Option {
	return func(s *Service) {
		if v := strings.TrimSpace(issuer); v != "" {
			s.issuer = v
		}
	}
}

// WithAudience overrides the token audience claim.
func WithAudience(audience string) Option {
	return func(s *Service) {
		if v := strings.TrimSpace(audience); v != "" {
			s.audience = v
		}
	}
}

// WithTokenTTL configures token lifetime.
func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock overrides the time source (useful for tests).
func WithClock(fn func() time.Time) Option {
	return func(s *Service) {
		if fn != nil {
			s.now = fn
		}
	}
}

// WithAttemptRecorder wires the audit recorder for authentication attempts.
func WithAttemptRecorder(r AttemptRecorder) Option {
	return func(s *Service) {
		s.recorder = r
	}
}

// NewService constructs a Service over the given credential table.
func NewService(secret string, creds []Credential, opts ...Option) (*Service, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, errors.New("auth: secret is required")
	}
	table := make(map[string]Credential, len(creds))
	for _, c := range creds {
		if strings.TrimSpace(c.Username) == "" {
			return nil, errors.New("auth: credential username is required")
		}
		table[c.Username] = c
	}
	svc := &Service{
		secret:   []byte(secret),
		creds:    table,
		issuer:   defaultIssuer,
		audience: defaultAudience,
		ttl:      defaultTokenTTL,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// TokenTTL returns the configured token lifetime.
func (s *Service) TokenTTL() time.Duration { return s.ttl }

// Claims are the JWT claims carried by issued tokens.
type Claims struct {
	Username string `json:"name"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Issue validates the username/password pair and signs a fresh token.
// Unknown username and wrong password are indistinguishable in the returned
// failure; the audit attempt records which occurred.
func (s *Service) Issue(ctx context.Context, username, password, clientAddr string) (IssuedToken, Identity, error) {
	username = strings.TrimSpace(username)

	cred, known := s.creds[username]
	reference := cred.Password
	if !known {
		// Burn a comparison anyway so unknown usernames cost the same.
		reference = "-"
	}
	match := subtle.ConstantTimeCompare([]byte(reference), []byte(password)) == 1
	if !known || !match {
		reason := "wrong_password"
		if !known {
			reason = "unknown_username"
		}
		s.record(ctx, Attempt{
			Event:      "auth.login",
			Username:   username,
			ClientAddr: clientAddr,
			Reason:     reason,
		})
		return IssuedToken{}, Identity{}, newFailure(ReasonInvalidCredentials, "invalid username or password")
	}

	now := s.now().UTC()
	expiresAt := now.Add(s.ttl)
	claims := Claims{
		Username: cred.Username,
		Role:     cred.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			Subject:   cred.SubjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return IssuedToken{}, Identity{}, err
	}

	s.record(ctx, Attempt{
		Event:      "auth.login",
		Username:   cred.Username,
		ClientAddr: clientAddr,
		Success:    true,
	})
	identity := Identity{UserID: cred.SubjectID, Username: cred.Username, Role: cred.Role}
	return IssuedToken{Token: signed, ExpiresAt: expiresAt}, identity, nil
}

// Authenticate parses the Authorization header and validates the bearer
// token. Every failure path yields a typed *Failure with a distinct reason.
func (s *Service) Authenticate(ctx context.Context, header string) (Identity, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return Identity{}, newFailure(ReasonMissing, "authorization header is missing")
	}
	if !strings.HasPrefix(header, bearerPrefix) {
		return Identity{}, newFailure(ReasonMalformedScheme, "authorization scheme must be Bearer")
	}
	raw := strings.TrimSpace(header[len(bearerPrefix):])
	if raw == "" {
		return Identity{}, newFailure(ReasonEmpty, "bearer token is empty")
	}
	return s.ValidateToken(raw)
}

// ValidateToken verifies signature, algorithm, issuer, audience and expiry.
// Expiry is checked with zero clock-skew tolerance.
func (s *Service) ValidateToken(raw string) (Identity, error) {
	parsed, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing algorithm")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now().UTC() }))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Identity{}, newFailure(ReasonExpired, "token has expired")
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Identity{}, newFailure(ReasonSignatureInvalid, "token signature is invalid")
		default:
			return Identity{}, newFailure(ReasonClaimsInvalid, "token is invalid")
		}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return Identity{}, newFailure(ReasonClaimsInvalid, "token is invalid")
	}
	if claims.Issuer != s.issuer {
		return Identity{}, newFailure(ReasonClaimsInvalid, "unexpected token issuer")
	}
	if !hasAudience(claims.Audience, s.audience) {
		return Identity{}, newFailure(ReasonClaimsInvalid, "unexpected token audience")
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return Identity{}, newFailure(ReasonClaimsInvalid, "token subject is missing")
	}

	return Identity{
		UserID:   claims.Subject,
		Username: claims.Username,
		Role:     claims.Role,
	}, nil
}

func (s *Service) record(ctx context.Context, attempt Attempt) {
	if s.recorder == nil {
		return
	}
	s.recorder.RecordAuth(ctx, attempt)
}

func hasAudience(aud jwt.ClaimStrings, expected string) bool {
	for _, a := range aud {
		if a == expected {
			return true
		}
	}
	return false
}
