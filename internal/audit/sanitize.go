package audit

import "strings"

const (
	// RequestBodyLimit caps logged request body snapshots.
	RequestBodyLimit = 500
	// ResponseBodyLimit caps logged response body snapshots.
	ResponseBodyLimit = 1000

	maskedPlaceholder = "[REDACTED]"
	truncationMarker  = "...[TRUNCATED]"
)

var sensitiveSubstrings = []string{"password", "token", "secret"}

// Sanitize prepares a body snapshot for logging. A body containing any
// sensitive substring (case-insensitive) is replaced wholesale with a masked
// placeholder; otherwise the body is truncated at limit characters.
func Sanitize(body string, limit int) string {
	if body == "" {
		return ""
	}
	lower := strings.ToLower(body)
	for _, s := range sensitiveSubstrings {
		if strings.Contains(lower, s) {
			return maskedPlaceholder
		}
	}
	if limit > 0 {
		runes := []rune(body)
		if len(runes) > limit {
			return string(runes[:limit]) + truncationMarker
		}
	}
	return body
}
