package auth

import "fmt"

// Reason identifies why authentication failed. The HTTP response stays a
// generic 401; the reason is recorded in the audit log and metrics.
type Reason string

const (
	ReasonMissing            Reason = "missing"
	ReasonMalformedScheme    Reason = "malformed_scheme"
	ReasonEmpty              Reason = "empty"
	ReasonExpired            Reason = "expired"
	ReasonSignatureInvalid   Reason = "signature_invalid"
	ReasonClaimsInvalid      Reason = "claims_invalid"
	ReasonInvalidCredentials Reason = "invalid_credentials"
)

// Failure is a typed authentication failure. All parse and verification
// errors are converted to a Failure; validation never panics.
type Failure struct {
	Reason  Reason
	Message string
}

func (f *Failure) Error() string {
	return fmt.Sprintf("auth: %s: %s", f.Reason, f.Message)
}

func newFailure(reason Reason, message string) *Failure {
	return &Failure{Reason: reason, Message: message}
}

// FailureOf returns the typed failure if err is one, or nil.
func FailureOf(err error) *Failure {
	if f, ok := err.(*Failure); ok {
		return f
	}
	return nil
}
