// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package activity

import (
	"context"
	"time"

	"github.com/canonical/tenant-session-service/internal/types"
)

// StoreInterface keeps at most one activity record per (user, tenant) pair
type StoreInterface interface {
	Get(context.Context, Key) (*types.ActivityRecord, error)
	// Upsert replaces any record held for the same pair
	Upsert(context.Context, types.ActivityRecord) error
	Delete(context.Context, Key) (bool, error)
	DeleteUser(context.Context, string) ([]types.ActivityRecord, error)
	// DeleteOlderThan atomically removes every record last seen at or before
	// cutoff, together with malformed records, and returns what was removed
	DeleteOlderThan(context.Context, time.Time) ([]types.ActivityRecord, error)
	Count(context.Context) (int, error)
}

type TrackerInterface interface {
	RecordActivity(ctx context.Context, userID, tenantID string, ts time.Time) error
	IsTenantSessionActive(ctx context.Context, userID, tenantID string) (bool, error)
	LastActivity(ctx context.Context, userID, tenantID string) (time.Time, bool, error)
	Expire(ctx context.Context, userID, tenantID string) error
	ResetUser(ctx context.Context, userID string) error
	Sweep(ctx context.Context) error
}
