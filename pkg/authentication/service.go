// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/canonical/tenant-session-service/internal/logging"
	"github.com/canonical/tenant-session-service/internal/monitoring"
	"github.com/canonical/tenant-session-service/internal/storage"
	"github.com/canonical/tenant-session-service/internal/tracing"
	"github.com/canonical/tenant-session-service/internal/types"
)

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	identities storage.IdentityStoreInterface
	tenants    storage.TenantRegistryInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (s *Service) Login(ctx context.Context, username, credential string) (*Principal, error) {
	ctx, span := s.tracer.Start(ctx, "authentication.Service.Login")
	defer span.End()

	user, err := s.identities.GetUserByUsername(ctx, username)
	if errors.Is(err, storage.ErrNotFound) {
		s.logger.Infof("login failed: unknown user %q", username)
		s.logger.Security().AuthnLoginFail(username)
		return nil, types.ErrInvalidCredentials
	}

	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(user.Credential), []byte(credential)) != 1 {
		s.logger.Infof("login failed: credential mismatch for user %q", username)
		s.logger.Security().AuthnLoginFail(username)
		return nil, types.ErrInvalidCredentials
	}

	s.logger.Security().AuthnLoginSuccess(user.ID)

	return NewPrincipal(user.ID), nil
}

func (s *Service) GetAccessibleTenants(ctx context.Context, userID string) ([]*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "authentication.Service.GetAccessibleTenants")
	defer span.End()

	ids, err := s.identities.ListMemberships(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}

	tenants, err := s.tenants.ListTenantsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}

	byID := make(map[string]*types.Tenant, len(tenants))
	for _, t := range tenants {
		byID[t.ID] = t
	}

	ordered := make([]*types.Tenant, 0, len(tenants))
	for _, id := range ids {
		if t, ok := byID[id]; ok {
			ordered = append(ordered, t)
		}
	}

	return ordered, nil
}

func (s *Service) IsUserInTenant(ctx context.Context, userID, tenantID string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "authentication.Service.IsUserInTenant")
	defer span.End()

	ok, err := s.identities.IsMember(ctx, userID, tenantID)
	if err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}

	return ok, nil
}

func NewService(s storage.StorageInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Service {
	svc := new(Service)

	svc.identities = s
	svc.tenants = s

	svc.tracer = tracer
	svc.monitor = monitor
	svc.logger = logger

	return svc
}
