// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package reporter

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultDebounce          = 300 * time.Millisecond
	DefaultHeartbeatInterval = 10 * time.Second
	DefaultCheckInterval     = 15 * time.Second
	DefaultIdleTimeout       = 20 * time.Second
)

// Config drives the client side of the tenant session lifecycle
type Config struct {
	// TenantURL is the origin of the tenant the user is working in
	TenantURL string `validate:"required,url"`
	// LoginURL is the identity login entry point users are sent to on expiry
	LoginURL string `validate:"required,url"`
	// FallbackURL is used when logging out fails
	FallbackURL string `validate:"required"`

	Debounce          time.Duration
	HeartbeatInterval time.Duration
	CheckInterval     time.Duration
	IdleTimeout       time.Duration
}

func (c *Config) setDefaults() {
	if c.Debounce <= 0 {
		c.Debounce = DefaultDebounce
	}

	if c.HeartbeatInterval <= 0 {
		c.HeartbeatInterval = DefaultHeartbeatInterval
	}

	if c.CheckInterval <= 0 {
		c.CheckInterval = DefaultCheckInterval
	}

	if c.IdleTimeout <= 0 {
		c.IdleTimeout = DefaultIdleTimeout
	}
}

// Validate fills in default timings and checks both cadences fit inside the
// idle timeout
func (c *Config) Validate() error {
	c.setDefaults()

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		return fmt.Errorf("invalid reporter config: %w", err)
	}

	if c.HeartbeatInterval >= c.IdleTimeout {
		return fmt.Errorf("heartbeat interval %s must be shorter than the idle timeout %s", c.HeartbeatInterval, c.IdleTimeout)
	}

	if c.CheckInterval >= c.IdleTimeout {
		return fmt.Errorf("check interval %s must be shorter than the idle timeout %s", c.CheckInterval, c.IdleTimeout)
	}

	return nil
}
