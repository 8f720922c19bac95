// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"maps"
	"time"
)

// TenantAnnotation is an advisory note kept in the principal session about a
// tenant session, it is never used for access decisions
type TenantAnnotation struct {
	LastActivity time.Time `json:"lastActivity"`
	IsActive     bool      `json:"isActive"`
}

// Principal is the identity bound to a session cookie
type Principal struct {
	UserID          string
	IsAuthenticated bool
	ActiveTenants   map[string]TenantAnnotation
}

// Authenticated reports whether the principal carries a usable identity
func (p *Principal) Authenticated() bool {
	return p != nil && p.IsAuthenticated && p.UserID != ""
}

func (p *Principal) clone() *Principal {
	c := *p
	c.ActiveTenants = maps.Clone(p.ActiveTenants)

	if c.ActiveTenants == nil {
		c.ActiveTenants = make(map[string]TenantAnnotation)
	}

	return &c
}

// NewPrincipal returns an authenticated principal without tenant annotations
func NewPrincipal(userID string) *Principal {
	return &Principal{
		UserID:          userID,
		IsAuthenticated: true,
		ActiveTenants:   make(map[string]TenantAnnotation),
	}
}
