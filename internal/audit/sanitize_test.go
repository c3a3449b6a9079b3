package audit

import (
	"strings"
	"testing"
)

func TestSanitizeMasksSensitiveBodies(t *testing.T) {
	cases := map[string]string{
		"lowercase password": `{"username":"admin","password":"admin123"}`,
		"mixed case":         `{"PassWord":"x"}`,
		"token":              `{"token":"abc"}`,
		"secret":             `client SECRET value`,
	}
	for name, body := range cases {
		t.Run(strings.ReplaceAll(name, " ", "_"), func(t *testing.T) {
			got := Sanitize(body, RequestBodyLimit)
			if got != "[REDACTED]" {
				t.Fatalf("expected masked placeholder, got %q", got)
			}
		})
	}
}

func TestSanitizeTruncatesLongBodies(t *testing.T) {
	body := strings.Repeat("a", RequestBodyLimit+50)
	got := Sanitize(body, RequestBodyLimit)
	if !strings.HasSuffix(got, "...[TRUNCATED]") {
		t.Fatalf("expected truncation marker, got suffix %q", got[len(got)-20:])
	}
	if len(got) != RequestBodyLimit+len("...[TRUNCATED]") {
		t.Fatalf("unexpected truncated length: %d", len(got))
	}
}

func TestSanitizePassesShortBodies(t *testing.T) {
	body := `{"firstName":"Ada"}`
	if got := Sanitize(body, RequestBodyLimit); got != body {
		t.Fatalf("short body must pass unchanged, got %q", got)
	}
	if got := Sanitize("", RequestBodyLimit); got != "" {
		t.Fatalf("empty body must stay empty, got %q", got)
	}
}
