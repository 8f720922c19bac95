// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"context"

	"github.com/canonical/tenant-session-service/internal/types"
)

// ResolverInterface maps a request host onto a tenant
type ResolverInterface interface {
	// Resolve returns nil without error when the host names no tenant
	Resolve(ctx context.Context, host string) (*types.Tenant, error)
}

type ServiceInterface interface {
	ListTenants(ctx context.Context) ([]*types.Tenant, error)
}
