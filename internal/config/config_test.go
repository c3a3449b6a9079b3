package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("STAFFDESK_AUTH_SECRET", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error when secret is missing")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STAFFDESK_AUTH_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("unexpected addr: %s", cfg.Addr)
	}
	if cfg.TokenTTL != time.Hour {
		t.Fatalf("unexpected token ttl: %v", cfg.TokenTTL)
	}
	if cfg.IsProduction() {
		t.Fatal("default environment must not be production")
	}
	if cfg.RateBurst <= 0 || cfg.RatePerSecond <= 0 {
		t.Fatalf("rate limit defaults missing: burst=%d per_second=%d", cfg.RateBurst, cfg.RatePerSecond)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STAFFDESK_AUTH_SECRET", "test-secret")
	t.Setenv("STAFFDESK_ADDR", ":9090")
	t.Setenv("STAFFDESK_ENV", "production")
	t.Setenv("STAFFDESK_TOKEN_TTL", "30m")
	t.Setenv("STAFFDESK_RATE_BURST", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Fatalf("unexpected addr: %s", cfg.Addr)
	}
	if !cfg.IsProduction() {
		t.Fatal("expected production environment")
	}
	if cfg.TokenTTL != 30*time.Minute {
		t.Fatalf("unexpected token ttl: %v", cfg.TokenTTL)
	}
	if cfg.RateBurst != 5 {
		t.Fatalf("unexpected rate burst: %d", cfg.RateBurst)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string][2]string{
		"bad env":  {"STAFFDESK_ENV", "staging"},
		"bad ttl":  {"STAFFDESK_TOKEN_TTL", "soon"},
		"zero ttl": {"STAFFDESK_TOKEN_TTL", "0s"},
		"bad rate": {"STAFFDESK_RATE_BURST", "many"},
	}
	for name, kv := range cases {
		t.Run(strings.ReplaceAll(name, " ", "_"), func(t *testing.T) {
			t.Setenv("STAFFDESK_AUTH_SECRET", "test-secret")
			t.Setenv(kv[0], kv[1])
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", kv[0], kv[1])
			}
		})
	}
}
