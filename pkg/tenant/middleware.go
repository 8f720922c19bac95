// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"net/http"

	"github.com/canonical/tenant-session-service/internal/http/types"
	"github.com/canonical/tenant-session-service/internal/logging"
	"github.com/canonical/tenant-session-service/internal/monitoring"
	"github.com/canonical/tenant-session-service/internal/tracing"
)

type Middleware struct {
	resolver ResolverInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// Resolve attaches the tenant named by the Host header to the request context.
// A registry failure rejects the request rather than serving it without tenant.
func (m *Middleware) Resolve() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := m.tracer.Start(r.Context(), "tenant.Middleware.Resolve")
			defer span.End()

			t, err := m.resolver.Resolve(ctx, r.Host)
			if err != nil {
				m.logger.Errorf("tenant resolution failed: %v", err)
				types.WriteError(w, err)
				return
			}

			if t != nil {
				ctx = WithTenant(ctx, t)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func NewMiddleware(resolver ResolverInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Middleware {
	return &Middleware{
		resolver: resolver,
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}
