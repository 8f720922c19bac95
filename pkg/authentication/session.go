// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/canonical/tenant-session-service/internal/logging"
	"github.com/canonical/tenant-session-service/internal/monitoring"
	"github.com/canonical/tenant-session-service/internal/tracing"
)

const (
	userIDKey          = "user_id"
	isAuthenticatedKey = "is_authenticated"
	activeTenantsKey   = "active_tenants"
)

var _ SessionManagerInterface = (*SessionManager)(nil)

// SessionManager maps principals onto gorilla sessions
type SessionManager struct {
	store SessionStoreInterface
	name  string

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (m *SessionManager) session(r *http.Request) *sessions.Session {
	session, err := m.store.Get(r, m.name)
	if err != nil {
		// the store still hands out a fresh session
		m.logger.Debugf("discarding session cookie: %v", err)
	}

	return session
}

// Load returns the principal bound to the request, nil when there is none
func (m *SessionManager) Load(r *http.Request) (*Principal, error) {
	_, span := m.tracer.Start(r.Context(), "authentication.SessionManager.Load")
	defer span.End()

	session := m.session(r)
	if session == nil || session.IsNew {
		return nil, nil
	}

	return principalFromValues(session.Values), nil
}

// Establish binds p to a brand new session, any session previously bound to
// the request is dropped so the session id always changes on login
func (m *SessionManager) Establish(w http.ResponseWriter, r *http.Request, p *Principal) error {
	ctx, span := m.tracer.Start(r.Context(), "authentication.SessionManager.Establish")
	defer span.End()

	if old := m.session(r); old != nil && !old.IsNew {
		if err := m.store.Delete(ctx, old.ID); err != nil {
			return fmt.Errorf("failed to drop previous session: %w", err)
		}
	}

	session, err := m.store.New(r, m.name)
	if err != nil {
		m.logger.Debugf("discarding session cookie: %v", err)
	}

	session.ID = ""
	session.IsNew = true
	session.Values = make(map[interface{}]interface{})
	writePrincipal(session.Values, p)

	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	m.logger.Security().SessionCreated(p.UserID)

	return nil
}

// Annotate records the advisory state of a tenant session on the principal
func (m *SessionManager) Annotate(w http.ResponseWriter, r *http.Request, tenantID string, a TenantAnnotation) error {
	_, span := m.tracer.Start(r.Context(), "authentication.SessionManager.Annotate")
	defer span.End()

	session := m.session(r)
	if session == nil || session.IsNew {
		return fmt.Errorf("no session to annotate")
	}

	p := principalFromValues(session.Values)
	p.ActiveTenants[tenantID] = a
	writePrincipal(session.Values, p)

	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// Touch extends the expiry of the request session, the cookie max-age rolls with it
func (m *SessionManager) Touch(w http.ResponseWriter, r *http.Request) error {
	_, span := m.tracer.Start(r.Context(), "authentication.SessionManager.Touch")
	defer span.End()

	session := m.session(r)
	if session == nil || session.IsNew {
		return nil
	}

	return session.Save(r, w)
}

// Destroy removes the request session and expires its cookie with the
// attributes it was issued with
func (m *SessionManager) Destroy(w http.ResponseWriter, r *http.Request) error {
	_, span := m.tracer.Start(r.Context(), "authentication.SessionManager.Destroy")
	defer span.End()

	session := m.session(r)
	if session == nil {
		return fmt.Errorf("no session to destroy")
	}

	userID, _ := session.Values[userIDKey].(string)

	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}

	if userID != "" {
		m.logger.Security().SessionDestroyed(userID)
	}

	return nil
}

// Reap drops expired sessions from the store, it is run as a scheduled job
func (m *SessionManager) Reap(ctx context.Context) error {
	ctx, span := m.tracer.Start(ctx, "authentication.SessionManager.Reap")
	defer span.End()

	n, err := m.store.Reap(ctx)
	if err != nil {
		return fmt.Errorf("failed to reap sessions: %w", err)
	}

	if n > 0 {
		m.logger.Debugf("reaped %d expired sessions", n)
	}

	return nil
}

func principalFromValues(values map[interface{}]interface{}) *Principal {
	p := new(Principal)

	p.UserID, _ = values[userIDKey].(string)
	p.IsAuthenticated, _ = values[isAuthenticatedKey].(bool)

	annotations, _ := values[activeTenantsKey].(map[string]TenantAnnotation)

	p.ActiveTenants = annotations

	return p.clone()
}

func writePrincipal(values map[interface{}]interface{}, p *Principal) {
	c := p.clone()

	values[userIDKey] = c.UserID
	values[isAuthenticatedKey] = c.IsAuthenticated
	values[activeTenantsKey] = c.ActiveTenants
}

func NewSessionManager(store SessionStoreInterface, name string, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *SessionManager {
	m := new(SessionManager)

	m.store = store
	m.name = name

	m.tracer = tracer
	m.monitor = monitor
	m.logger = logger

	return m
}
