// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import "errors"

// Sentinel errors shared by the session components, mapped to HTTP status
// codes by internal/http/types.
var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUnauthenticated      = errors.New("not authenticated")
	ErrForbidden            = errors.New("user does not have access to this tenant")
	ErrTenantSessionExpired = errors.New("tenant session has expired due to inactivity")
	ErrMissingTenantContext = errors.New("missing user ID or tenant context")
)
