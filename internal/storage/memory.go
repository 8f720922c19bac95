// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"slices"
	"sync"

	"github.com/canonical/tenant-session-service/internal/types"
)

var _ StorageInterface = (*MemoryStorage)(nil)

// MemoryStorage is a process local identity store and tenant registry, used
// when no database is configured
type MemoryStorage struct {
	mu sync.RWMutex

	users   []*types.User
	tenants []*types.Tenant
}

// DefaultUsers is the seed used when no database is configured, it matches
// the seed applied by the SQL migrations
func DefaultUsers() []*types.User {
	return []*types.User{
		{ID: "1", Username: "user1", Credential: "password1", TenantIDs: []string{"1"}},
		{ID: "2", Username: "user2", Credential: "password2", TenantIDs: []string{"2"}},
		{ID: "3", Username: "admin", Credential: "admin123", TenantIDs: []string{"1", "2", "3"}},
	}
}

func DefaultTenants() []*types.Tenant {
	return []*types.Tenant{
		{ID: "1", Name: "Tenant 1", Subdomain: "tenant1"},
		{ID: "2", Name: "Tenant 2", Subdomain: "tenant2"},
		{ID: "3", Name: "Tenant 3", Subdomain: "tenant3"},
	}
}

func copyUser(u *types.User) *types.User {
	c := *u
	c.TenantIDs = slices.Clone(u.TenantIDs)
	return &c
}

func copyTenant(t *types.Tenant) *types.Tenant {
	c := *t
	return &c
}

func (s *MemoryStorage) findUser(match func(*types.User) bool) (*types.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if match(u) {
			return copyUser(u), nil
		}
	}

	return nil, ErrNotFound
}

func (s *MemoryStorage) findTenant(match func(*types.Tenant) bool) (*types.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.tenants {
		if match(t) {
			return copyTenant(t), nil
		}
	}

	return nil, ErrNotFound
}

func (s *MemoryStorage) GetUserByUsername(ctx context.Context, username string) (*types.User, error) {
	return s.findUser(func(u *types.User) bool { return u.Username == username })
}

func (s *MemoryStorage) GetUserByID(ctx context.Context, id string) (*types.User, error) {
	return s.findUser(func(u *types.User) bool { return u.ID == id })
}

// ListMemberships returns the tenant ids of the user in membership order, an
// unknown user has no memberships
func (s *MemoryStorage) ListMemberships(ctx context.Context, userID string) ([]string, error) {
	u, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return []string{}, nil
	}

	return u.TenantIDs, nil
}

func (s *MemoryStorage) IsMember(ctx context.Context, userID, tenantID string) (bool, error) {
	ids, err := s.ListMemberships(ctx, userID)
	if err != nil {
		return false, err
	}

	return slices.Contains(ids, tenantID), nil
}

func (s *MemoryStorage) GetTenantByID(ctx context.Context, id string) (*types.Tenant, error) {
	return s.findTenant(func(t *types.Tenant) bool { return t.ID == id })
}

func (s *MemoryStorage) GetTenantBySubdomain(ctx context.Context, subdomain string) (*types.Tenant, error) {
	return s.findTenant(func(t *types.Tenant) bool { return t.Subdomain == subdomain })
}

func (s *MemoryStorage) ListTenants(ctx context.Context) ([]*types.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tenants := make([]*types.Tenant, 0, len(s.tenants))
	for _, t := range s.tenants {
		tenants = append(tenants, copyTenant(t))
	}

	return tenants, nil
}

// ListTenantsByIDs returns the registered tenants whose id is in ids, in
// registry order, unknown ids are ignored
func (s *MemoryStorage) ListTenantsByIDs(ctx context.Context, ids []string) ([]*types.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tenants := make([]*types.Tenant, 0, len(ids))
	for _, t := range s.tenants {
		if slices.Contains(ids, t.ID) {
			tenants = append(tenants, copyTenant(t))
		}
	}

	return tenants, nil
}

// NewMemoryStorage builds a store holding copies of the given records
func NewMemoryStorage(users []*types.User, tenants []*types.Tenant) *MemoryStorage {
	s := new(MemoryStorage)

	for _, u := range users {
		s.users = append(s.users, copyUser(u))
	}

	for _, t := range tenants {
		s.tenants = append(s.tenants, copyTenant(t))
	}

	return s
}
