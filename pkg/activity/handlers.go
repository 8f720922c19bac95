// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package activity

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/tenant-session-service/internal/http/types"
	"github.com/canonical/tenant-session-service/internal/logging"
	"github.com/canonical/tenant-session-service/internal/monitoring"
	"github.com/canonical/tenant-session-service/internal/tracing"
	domain "github.com/canonical/tenant-session-service/internal/types"
	"github.com/canonical/tenant-session-service/pkg/authentication"
	"github.com/canonical/tenant-session-service/pkg/tenant"
)

type HeartbeatResponse struct {
	Success bool `json:"success"`
}

type CheckResponse struct {
	Active bool `json:"active"`
}

type API struct {
	tracker TrackerInterface

	heartbeatGuard func(http.Handler) http.Handler
	checkGuard     func(http.Handler) http.Handler

	now func() time.Time

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.With(a.heartbeatGuard).Post("/api/activity/heartbeat", a.heartbeat)
	mux.With(a.checkGuard).Post("/api/activity/check", a.check)
}

func (a *API) heartbeat(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "activity.API.heartbeat")
	defer span.End()

	userID, ok := authentication.GetUserID(ctx)
	t, found := tenant.FromContext(ctx)

	if !ok || !found {
		types.WriteError(w, domain.ErrMissingTenantContext)
		return
	}

	if err := a.tracker.RecordActivity(ctx, userID, t.ID, a.now()); err != nil {
		a.logger.Errorf("failed to record activity of user %s in tenant %s: %v", userID, t.ID, err)
		types.WriteErrorMessage(w, http.StatusUnauthorized, "Failed to record activity")
		return
	}

	types.WriteJSON(w, http.StatusOK, HeartbeatResponse{Success: true})
}

// check reaches the handler only when the guard found the tenant session active
func (a *API) check(w http.ResponseWriter, r *http.Request) {
	_, span := a.tracer.Start(r.Context(), "activity.API.check")
	defer span.End()

	types.WriteJSON(w, http.StatusOK, CheckResponse{Active: true})
}

func passthrough(next http.Handler) http.Handler { return next }

// NewAPI wires the activity endpoints, nil guards let every request through
func NewAPI(
	tracker TrackerInterface,
	heartbeatGuard, checkGuard func(http.Handler) http.Handler,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *API {
	a := new(API)

	a.tracker = tracker
	a.heartbeatGuard = heartbeatGuard
	a.checkGuard = checkGuard

	if a.heartbeatGuard == nil {
		a.heartbeatGuard = passthrough
	}

	if a.checkGuard == nil {
		a.checkGuard = passthrough
	}

	a.now = time.Now

	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}
