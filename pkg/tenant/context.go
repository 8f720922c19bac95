// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"context"

	"github.com/canonical/tenant-session-service/internal/types"
)

type contextKey struct{}

var tenantContextKey = contextKey{}

// WithTenant returns a new context carrying the tenant resolved from the request host
func WithTenant(ctx context.Context, t *types.Tenant) context.Context {
	return context.WithValue(ctx, tenantContextKey, t)
}

// FromContext returns the request tenant, false when the host named none
func FromContext(ctx context.Context) (*types.Tenant, bool) {
	t, ok := ctx.Value(tenantContextKey).(*types.Tenant)
	return t, ok && t != nil
}
