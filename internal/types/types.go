// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"time"
)

type User struct {
	ID         string `db:"id"`
	Username   string `db:"username"`
	Credential string `db:"credential"`
	// TenantIDs is ordered, the first membership is the user's primary tenant
	TenantIDs []string `db:"-"`
}

type Tenant struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Subdomain string `db:"subdomain" json:"subdomain"`
}

type Membership struct {
	UserID   string `db:"user_id"`
	TenantID string `db:"tenant_id"`
	Position int    `db:"position"`
}

// ActivityRecord is the last moment a user was seen active inside a tenant
type ActivityRecord struct {
	UserID       string
	TenantID     string
	LastActivity time.Time
}

// Age returns how long ago the activity was recorded, relative to now
func (r ActivityRecord) Age(now time.Time) time.Duration {
	return now.Sub(r.LastActivity)
}
