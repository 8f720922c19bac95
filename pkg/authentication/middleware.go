// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"net/http"

	"github.com/canonical/tenant-session-service/internal/logging"
	"github.com/canonical/tenant-session-service/internal/monitoring"
	"github.com/canonical/tenant-session-service/internal/tracing"
)

type Middleware struct {
	sessions SessionManagerInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// Sessions loads the principal of the request session into the context and
// rolls the session expiry, requests without a session pass through untouched
func (m *Middleware) Sessions() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := m.tracer.Start(r.Context(), "authentication.Middleware.Sessions")
			defer span.End()

			r = r.WithContext(ctx)

			p, err := m.sessions.Load(r)
			if err != nil {
				m.logger.Errorf("failed to load session: %v", err)
			}

			if p == nil {
				next.ServeHTTP(w, r)
				return
			}

			if err := m.sessions.Touch(w, r); err != nil {
				m.logger.Debugf("failed to roll session expiry: %v", err)
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

func NewMiddleware(sessions SessionManagerInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Middleware {
	return &Middleware{
		sessions: sessions,
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}
