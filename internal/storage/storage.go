// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/canonical/tenant-session-service/internal/db"
	"github.com/canonical/tenant-session-service/internal/logging"
	"github.com/canonical/tenant-session-service/internal/monitoring"
	"github.com/canonical/tenant-session-service/internal/tracing"
	"github.com/canonical/tenant-session-service/internal/types"
)

var _ StorageInterface = (*Storage)(nil)

// Storage is the PostgreSQL backed identity store and tenant registry
type Storage struct {
	db db.DBClientInterface

	logger  logging.LoggerInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
}

func NewStorage(c db.DBClientInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Storage {
	s := new(Storage)

	s.db = c

	s.logger = logger
	s.tracer = tracer
	s.monitor = monitor

	return s
}

func (s *Storage) getUser(ctx context.Context, where sq.Eq) (*types.User, error) {
	var u types.User
	err := s.db.Statement(ctx).
		Select("id", "username", "credential").
		From("users").
		Where(where).
		QueryRowContext(ctx).
		Scan(&u.ID, &u.Username, &u.Credential)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	ids, err := s.ListMemberships(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	u.TenantIDs = ids

	return &u, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetUserByUsername")
	defer span.End()

	return s.getUser(ctx, sq.Eq{"username": username})
}

func (s *Storage) GetUserByID(ctx context.Context, id string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetUserByID")
	defer span.End()

	return s.getUser(ctx, sq.Eq{"id": id})
}

func (s *Storage) ListMemberships(ctx context.Context, userID string) ([]string, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListMemberships")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("tenant_id").
		From("memberships").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("position ASC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating membership rows: %w", err)
	}

	return ids, nil
}

func (s *Storage) IsMember(ctx context.Context, userID, tenantID string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "storage.IsMember")
	defer span.End()

	var exists bool
	err := s.db.Statement(ctx).
		Select("1").
		Prefix("SELECT EXISTS (").
		From("memberships").
		Where(sq.Eq{"user_id": userID, "tenant_id": tenantID}).
		Suffix(")").
		QueryRowContext(ctx).
		Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}

	return exists, nil
}

func (s *Storage) getTenant(ctx context.Context, where sq.Eq) (*types.Tenant, error) {
	var t types.Tenant
	err := s.db.Statement(ctx).
		Select("id", "name", "subdomain").
		From("tenants").
		Where(where).
		QueryRowContext(ctx).
		Scan(&t.ID, &t.Name, &t.Subdomain)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	return &t, nil
}

func (s *Storage) GetTenantByID(ctx context.Context, id string) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetTenantByID")
	defer span.End()

	return s.getTenant(ctx, sq.Eq{"id": id})
}

func (s *Storage) GetTenantBySubdomain(ctx context.Context, subdomain string) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetTenantBySubdomain")
	defer span.End()

	return s.getTenant(ctx, sq.Eq{"subdomain": subdomain})
}

func (s *Storage) listTenants(ctx context.Context, query sq.SelectBuilder) ([]*types.Tenant, error) {
	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	defer rows.Close()

	tenants := make([]*types.Tenant, 0)
	for rows.Next() {
		var t types.Tenant
		if err := rows.Scan(&t.ID, &t.Name, &t.Subdomain); err != nil {
			return nil, fmt.Errorf("failed to scan tenant: %w", err)
		}
		tenants = append(tenants, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tenant rows: %w", err)
	}

	return tenants, nil
}

func (s *Storage) ListTenants(ctx context.Context) ([]*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListTenants")
	defer span.End()

	query := s.db.Statement(ctx).
		Select("id", "name", "subdomain").
		From("tenants").
		OrderBy("id ASC")

	return s.listTenants(ctx, query)
}

func (s *Storage) ListTenantsByIDs(ctx context.Context, ids []string) ([]*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListTenantsByIDs")
	defer span.End()

	if len(ids) == 0 {
		return []*types.Tenant{}, nil
	}

	query := s.db.Statement(ctx).
		Select("id", "name", "subdomain").
		From("tenants").
		Where(sq.Eq{"id": ids}).
		OrderBy("id ASC")

	return s.listTenants(ctx, query)
}
