// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/canonical/tenant-session-service/internal/logging"
	"github.com/canonical/tenant-session-service/internal/monitoring"
	"github.com/canonical/tenant-session-service/internal/storage"
	"github.com/canonical/tenant-session-service/internal/tracing"
	"github.com/canonical/tenant-session-service/pkg/activity"
	"github.com/canonical/tenant-session-service/pkg/authentication"
	"github.com/canonical/tenant-session-service/pkg/gate"
	"github.com/canonical/tenant-session-service/pkg/metrics"
	"github.com/canonical/tenant-session-service/pkg/status"
	"github.com/canonical/tenant-session-service/pkg/tenant"
)

type Config struct {
	BaseDomain        string
	IdentitySubdomain string
	AllowedOrigins    []string

	// LoginLimiter throttles login attempts, nil disables it
	LoginLimiter func(http.Handler) http.Handler
	// Dependencies are pinged by the status endpoint
	Dependencies map[string]status.PingerInterface
}

func NewRouter(
	cfg Config,
	s storage.StorageInterface,
	tracker activity.TrackerInterface,
	sessions authentication.SessionManagerInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) http.Handler {
	router := chi.NewMux()

	authService := authentication.NewService(s, tracer, monitor, logger)
	tenantService := tenant.NewService(s, tracer, monitor, logger)
	resolver := tenant.NewResolver(cfg.BaseDomain, cfg.IdentitySubdomain, s, tracer, monitor, logger)
	g := gate.NewGate(authService, tracker, sessions, tracer, monitor, logger)

	middlewares := make(chi.Middlewares, 0)
	middlewares = append(
		middlewares,
		middleware.RequestID,
		monitoring.NewMiddleware(monitor, logger).ResponseTime(),
		cors.Handler(
			cors.Options{
				AllowedOrigins:   cfg.AllowedOrigins,
				AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
				AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
				AllowCredentials: true,
				MaxAge:           300,
			},
		),
		authentication.NewMiddleware(sessions, tracer, monitor, logger).Sessions(),
		tenant.NewMiddleware(resolver, tracer, monitor, logger).Resolve(),
	)

	router.Use(middlewares...)

	metrics.NewAPI(logger).RegisterEndpoints(router)
	status.NewAPI(cfg.Dependencies, tracer, monitor, logger).RegisterEndpoints(router)

	authentication.NewAPI(authService, sessions, tracker, cfg.LoginLimiter, tracer, monitor, logger).RegisterEndpoints(router)
	tenant.NewAPI(tenantService, tracer, monitor, logger).RegisterEndpoints(router)
	activity.NewAPI(
		tracker,
		g.Middleware(g.Protect()),
		g.Middleware(g.Liveness()),
		tracer,
		monitor,
		logger,
	).RegisterEndpoints(router)

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router)
}
