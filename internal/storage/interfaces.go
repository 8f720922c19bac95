// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"

	"github.com/canonical/tenant-session-service/internal/types"
)

// IdentityStoreInterface holds user records and their ordered tenant memberships
type IdentityStoreInterface interface {
	GetUserByUsername(ctx context.Context, username string) (*types.User, error)
	GetUserByID(ctx context.Context, id string) (*types.User, error)
	ListMemberships(ctx context.Context, userID string) ([]string, error)
	IsMember(ctx context.Context, userID, tenantID string) (bool, error)
}

// TenantRegistryInterface holds tenant records
type TenantRegistryInterface interface {
	GetTenantByID(ctx context.Context, id string) (*types.Tenant, error)
	GetTenantBySubdomain(ctx context.Context, subdomain string) (*types.Tenant, error)
	ListTenants(ctx context.Context) ([]*types.Tenant, error)
	ListTenantsByIDs(ctx context.Context, ids []string) ([]*types.Tenant, error)
}

type StorageInterface interface {
	IdentityStoreInterface
	TenantRegistryInterface
}
