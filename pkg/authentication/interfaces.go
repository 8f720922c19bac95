// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/canonical/tenant-session-service/internal/types"
)

type ServiceInterface interface {
	// Login verifies the credential and returns a fresh authenticated principal
	Login(ctx context.Context, username, credential string) (*Principal, error)
	// GetAccessibleTenants resolves the user's memberships, in membership order
	GetAccessibleTenants(ctx context.Context, userID string) ([]*types.Tenant, error)
	IsUserInTenant(ctx context.Context, userID, tenantID string) (bool, error)
}

// SessionManagerInterface binds principals to the session cookie of a request
type SessionManagerInterface interface {
	Load(r *http.Request) (*Principal, error)
	Establish(w http.ResponseWriter, r *http.Request, p *Principal) error
	Annotate(w http.ResponseWriter, r *http.Request, tenantID string, a TenantAnnotation) error
	Touch(w http.ResponseWriter, r *http.Request) error
	Destroy(w http.ResponseWriter, r *http.Request) error
}

// SessionStoreInterface is a gorilla session store that can drop sessions by
// id and reap expired ones
type SessionStoreInterface interface {
	sessions.Store
	Delete(ctx context.Context, id string) error
	Reap(ctx context.Context) (int, error)
}

// ActivityResetterInterface drops the tenant activity of a user when its
// principal session starts or ends
type ActivityResetterInterface interface {
	ResetUser(ctx context.Context, userID string) error
}
