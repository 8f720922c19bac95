// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package gate

import (
	"context"
	"fmt"
	"time"

	"github.com/canonical/tenant-session-service/internal/logging"
	"github.com/canonical/tenant-session-service/internal/monitoring"
	"github.com/canonical/tenant-session-service/internal/tracing"
	"github.com/canonical/tenant-session-service/internal/types"
	"github.com/canonical/tenant-session-service/pkg/authentication"
)

// Gate builds the access stages guarding tenant scoped endpoints
type Gate struct {
	membership MembershipInterface
	tracker    TrackerInterface
	annotator  AnnotatorInterface

	now func() time.Time

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// Authenticated rejects requests without an authenticated principal
func (g *Gate) Authenticated() Stage {
	return StageFunc(func(ctx context.Context, req *Request) error {
		if !req.Principal.Authenticated() {
			return types.ErrUnauthenticated
		}

		return nil
	})
}

// TenantRequired rejects requests whose host names no tenant
func (g *Gate) TenantRequired() Stage {
	return StageFunc(func(ctx context.Context, req *Request) error {
		if req.Tenant == nil {
			return types.ErrMissingTenantContext
		}

		return nil
	})
}

// TenantMember rejects principals that are not members of the request tenant
func (g *Gate) TenantMember() Stage {
	return StageFunc(func(ctx context.Context, req *Request) error {
		if req.Tenant == nil {
			return nil
		}

		ctx, span := g.tracer.Start(ctx, "gate.Gate.TenantMember")
		defer span.End()

		ok, err := g.membership.IsUserInTenant(ctx, req.Principal.UserID, req.Tenant.ID)
		if err != nil {
			return fmt.Errorf("failed to check tenant membership: %w", err)
		}

		if !ok {
			g.logger.Security().AuthzFailure(req.Principal.UserID, "tenant:"+req.Tenant.ID)
			return types.ErrForbidden
		}

		return nil
	})
}

// TenantActive rejects requests whose tenant session went idle, drops the idle
// record and notes the expiry on the principal
func (g *Gate) TenantActive() Stage {
	return StageFunc(func(ctx context.Context, req *Request) error {
		if req.Tenant == nil {
			return nil
		}

		ctx, span := g.tracer.Start(ctx, "gate.Gate.TenantActive")
		defer span.End()

		active, err := g.tracker.IsTenantSessionActive(ctx, req.Principal.UserID, req.Tenant.ID)
		if err != nil {
			return fmt.Errorf("failed to check tenant session: %w", err)
		}

		if !active {
			if err := g.tracker.Expire(ctx, req.Principal.UserID, req.Tenant.ID); err != nil {
				g.logger.Errorf("failed to expire tenant session: %v", err)
			}

			req.Annotation = &authentication.TenantAnnotation{LastActivity: g.now(), IsActive: false}
			g.logger.Security().SessionExpired(req.Principal.UserID, req.Tenant.ID)
			return types.ErrTenantSessionExpired
		}

		return nil
	})
}

// RecordActivity refreshes the tenant session of the request
func (g *Gate) RecordActivity() Stage {
	return StageFunc(func(ctx context.Context, req *Request) error {
		if req.Tenant == nil {
			return nil
		}

		if err := g.tracker.RecordActivity(ctx, req.Principal.UserID, req.Tenant.ID, g.now()); err != nil {
			return fmt.Errorf("failed to record activity: %w", err)
		}

		return nil
	})
}

// Protect guards tenant scoped endpoints: every pass counts as activity
func (g *Gate) Protect() Pipeline {
	return NewPipeline(g.Authenticated(), g.TenantMember(), g.TenantActive(), g.RecordActivity())
}

// Liveness guards the idle check endpoint, which requires a tenant and does
// not count as activity
func (g *Gate) Liveness() Pipeline {
	return NewPipeline(g.Authenticated(), g.TenantRequired(), g.TenantMember(), g.TenantActive())
}

func NewGate(
	membership MembershipInterface,
	tracker TrackerInterface,
	annotator AnnotatorInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Gate {
	g := new(Gate)

	g.membership = membership
	g.tracker = tracker
	g.annotator = annotator
	g.now = time.Now

	g.tracer = tracer
	g.monitor = monitor
	g.logger = logger

	return g
}
