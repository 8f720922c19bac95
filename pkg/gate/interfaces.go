// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package gate

import (
	"context"
	"net/http"
	"time"

	"github.com/canonical/tenant-session-service/pkg/authentication"
)

type MembershipInterface interface {
	IsUserInTenant(ctx context.Context, userID, tenantID string) (bool, error)
}

type TrackerInterface interface {
	IsTenantSessionActive(ctx context.Context, userID, tenantID string) (bool, error)
	RecordActivity(ctx context.Context, userID, tenantID string, ts time.Time) error
	Expire(ctx context.Context, userID, tenantID string) error
}

type AnnotatorInterface interface {
	Annotate(w http.ResponseWriter, r *http.Request, tenantID string, a authentication.TenantAnnotation) error
}

// Stage is a single access check, a nil error lets the request through
type Stage interface {
	Check(ctx context.Context, req *Request) error
}
