// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"fmt"
	"time"
)

// EnvSpec is the basic environment configuration setup needed for the app to start
type EnvSpec struct {
	OtelGRPCEndpoint string `envconfig:"otel_grpc_endpoint"`
	OtelHTTPEndpoint string `envconfig:"otel_http_endpoint"`
	TracingEnabled   bool   `envconfig:"tracing_enabled" default:"true"`

	LogLevel string `envconfig:"log_level" default:"error"`
	Debug    bool   `envconfig:"debug" default:"false"`

	Port int `envconfig:"port" default:"8080"`

	// BaseDomain is the parent domain of every tenant subdomain
	BaseDomain        string `envconfig:"base_domain" default:"myapp.lvh.me"`
	IdentitySubdomain string `envconfig:"identity_subdomain" default:"login"`

	CookieName    string        `envconfig:"cookie_name" default:"tenant_session"`
	CookieDomain  string        `envconfig:"cookie_domain" default:""`
	CookieSecure  bool          `envconfig:"cookie_secure" default:"false"`
	SessionMaxAge time.Duration `envconfig:"session_max_age" default:"168h"`
	// SessionHashKey signs the session token cookie, a random key is generated when empty
	SessionHashKey  string `envconfig:"session_hash_key"`
	SessionBlockKey string `envconfig:"session_block_key"`

	IdleTimeout       time.Duration `envconfig:"idle_timeout" default:"20s"`
	SweepInterval     time.Duration `envconfig:"sweep_interval" default:"2s"`
	ActivityRetention time.Duration `envconfig:"activity_retention" default:"1h"`

	CORSAllowedOrigins []string `envconfig:"cors_allowed_origins" default:"http://*.myapp.lvh.me,http://localhost:5173"`

	LoginRateLimit float64 `envconfig:"login_rate_limit" default:"5"`
	LoginRateBurst int     `envconfig:"login_rate_burst" default:"10"`

	// DSN is optional, identities and tenants are served from the seeded in-memory store when empty
	DSN string `envconfig:"DSN"`

	DBMaxConns        int32         `envconfig:"db_max_conns" default:"25"`
	DBMinConns        int32         `envconfig:"db_min_conns" default:"2"`
	DBMaxConnLifetime time.Duration `envconfig:"db_max_conn_lifetime" default:"1h"`
	DBMaxConnIdleTime time.Duration `envconfig:"db_max_conn_idle_time" default:"30m"`
}

// Validate checks the timing settings are consistent with each other
func (s *EnvSpec) Validate() error {
	if s.IdleTimeout <= 0 {
		return fmt.Errorf("IDLE_TIMEOUT must be positive, got %s", s.IdleTimeout)
	}

	if s.SweepInterval <= 0 || s.SweepInterval > s.IdleTimeout {
		return fmt.Errorf("SWEEP_INTERVAL must be positive and not longer than IDLE_TIMEOUT, got %s", s.SweepInterval)
	}

	if s.ActivityRetention < s.IdleTimeout {
		return fmt.Errorf("ACTIVITY_RETENTION must not be shorter than IDLE_TIMEOUT, got %s", s.ActivityRetention)
	}

	if s.SessionMaxAge <= 0 {
		return fmt.Errorf("SESSION_MAX_AGE must be positive, got %s", s.SessionMaxAge)
	}

	if s.BaseDomain == "" {
		return fmt.Errorf("BASE_DOMAIN is required")
	}

	return nil
}
