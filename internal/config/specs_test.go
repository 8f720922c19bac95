// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package config

import (
	"testing"
	"time"

	"github.com/kelseyhightower/envconfig"
)

func TestDefaults(t *testing.T) {
	specs := new(EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if specs.IdleTimeout != 20*time.Second {
		t.Errorf("expected 20s idle timeout, got %s", specs.IdleTimeout)
	}

	if specs.SessionMaxAge != 7*24*time.Hour {
		t.Errorf("expected 7 days session max age, got %s", specs.SessionMaxAge)
	}

	if len(specs.CORSAllowedOrigins) != 2 {
		t.Errorf("expected 2 default origins, got %v", specs.CORSAllowedOrigins)
	}

	if err := specs.Validate(); err != nil {
		t.Errorf("defaults must be valid: %v", err)
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("IDLE_TIMEOUT", "20m")
	t.Setenv("SWEEP_INTERVAL", "30s")
	t.Setenv("COOKIE_DOMAIN", ".example.com")

	specs := new(EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if specs.IdleTimeout != 20*time.Minute || specs.SweepInterval != 30*time.Second {
		t.Errorf("unexpected timings %s %s", specs.IdleTimeout, specs.SweepInterval)
	}

	if specs.CookieDomain != ".example.com" {
		t.Errorf("unexpected cookie domain %q", specs.CookieDomain)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *EnvSpec {
		return &EnvSpec{
			BaseDomain:        "myapp.lvh.me",
			IdleTimeout:       20 * time.Second,
			SweepInterval:     2 * time.Second,
			ActivityRetention: time.Hour,
			SessionMaxAge:     time.Hour,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*EnvSpec)
		wantErr bool
	}{
		{name: "valid", mutate: func(*EnvSpec) {}},
		{name: "zero idle timeout", mutate: func(s *EnvSpec) { s.IdleTimeout = 0 }, wantErr: true},
		{name: "sweep slower than idle timeout", mutate: func(s *EnvSpec) { s.SweepInterval = time.Minute }, wantErr: true},
		{name: "retention shorter than idle timeout", mutate: func(s *EnvSpec) { s.ActivityRetention = time.Second }, wantErr: true},
		{name: "missing base domain", mutate: func(s *EnvSpec) { s.BaseDomain = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(s)

			if err := s.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}
