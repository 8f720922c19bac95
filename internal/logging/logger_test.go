// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"testing"
)

func TestDebugLogger(t *testing.T) {
	func() {
		_ = recover()
		NewLogger("DEBUG")
	}()
}

func TestInvalidLevel(t *testing.T) {
	func() {
		_ = recover()
		NewLogger("invalid")
	}()
}

func TestNoopLoggerSecurityEvents(t *testing.T) {
	logger := NewNoopLogger()

	// the noop logger must accept every security event without panicking
	logger.Security().SystemStartup()
	logger.Security().AuthnLoginSuccess("user-1")
	logger.Security().AuthnLoginFail("user1")
	logger.Security().AuthzFailure("user-1", "tenant:2")
	logger.Security().SessionCreated("user-1")
	logger.Security().SessionExpired("user-1", "2")
	logger.Security().SessionDestroyed("user-1")
	logger.Security().SystemShutdown()

	if err := logger.Sync(); err != nil {
		t.Errorf("unexpected sync error: %v", err)
	}
}
