// Package config loads the service configuration from the environment into an
// explicit struct. Components receive the values they need at construction;
// there is no ambient global configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	envAddr       = "STAFFDESK_ADDR"
	envSecret     = "STAFFDESK_AUTH_SECRET"
	envEnviron    = "STAFFDESK_ENV"
	envPGDSN      = "STAFFDESK_PG_DSN"
	envTokenTTL   = "STAFFDESK_TOKEN_TTL"
	envRateBurst  = "STAFFDESK_RATE_BURST"
	envRatePerSec = "STAFFDESK_RATE_PER_SECOND"

	// EnvProduction marks the production-like environment: error responses
	// carry generic detail strings only.
	EnvProduction  = "production"
	EnvDevelopment = "development"
)

// Config holds all runtime settings for the API process.
type Config struct {
	Addr        string
	Environment string

	AuthSecret    string
	TokenIssuer   string
	TokenAudience string
	TokenTTL      time.Duration

	PostgresDSN string

	RateBurst     int
	RatePerSecond int
	MaxBodyBytes  int64
}

// Load reads configuration from the environment. STAFFDESK_AUTH_SECRET is
// required; everything else has a default.
func Load() (Config, error) {
	cfg := Config{
		Addr:          ":8080",
		Environment:   EnvDevelopment,
		TokenIssuer:   "staffdesk",
		TokenAudience: "staffdesk-api",
		TokenTTL:      time.Hour,
		RateBurst:     20,
		RatePerSecond: 10,
		MaxBodyBytes:  1 << 20,
	}

	if v := strings.TrimSpace(os.Getenv(envAddr)); v != "" {
		cfg.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv(envEnviron)); v != "" {
		switch v {
		case EnvProduction, EnvDevelopment:
			cfg.Environment = v
		default:
			return Config{}, fmt.Errorf("invalid %s: %q", envEnviron, v)
		}
	}

	cfg.AuthSecret = strings.TrimSpace(os.Getenv(envSecret))
	if cfg.AuthSecret == "" {
		return Config{}, fmt.Errorf("%s is required", envSecret)
	}

	cfg.PostgresDSN = strings.TrimSpace(os.Getenv(envPGDSN))

	if v := strings.TrimSpace(os.Getenv(envTokenTTL)); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", envTokenTTL, err)
		}
		if ttl <= 0 {
			return Config{}, fmt.Errorf("%s must be positive", envTokenTTL)
		}
		cfg.TokenTTL = ttl
	}

	var err error
	if cfg.RateBurst, err = intEnv(envRateBurst, cfg.RateBurst); err != nil {
		return Config{}, err
	}
	if cfg.RatePerSecond, err = intEnv(envRatePerSec, cfg.RatePerSecond); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// IsProduction reports whether error details must be suppressed.
func (c Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

func intEnv(name string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be positive", name)
	}
	return v, nil
}
