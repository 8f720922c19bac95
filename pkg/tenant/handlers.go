// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenant

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/tenant-session-service/internal/http/types"
	"github.com/canonical/tenant-session-service/internal/logging"
	"github.com/canonical/tenant-session-service/internal/monitoring"
	"github.com/canonical/tenant-session-service/internal/tracing"
	domain "github.com/canonical/tenant-session-service/internal/types"
	"github.com/canonical/tenant-session-service/pkg/authentication"
)

type API struct {
	service ServiceInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.Get("/api/tenants", a.listTenants)
	mux.Get("/api/tenants/current", a.currentTenant)
}

// listTenants returns the tenant directory to signed in users and nothing to anonymous ones
func (a *API) listTenants(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenant.API.listTenants")
	defer span.End()

	if _, ok := authentication.GetUserID(ctx); !ok {
		types.WriteJSON(w, http.StatusOK, []*domain.Tenant{})
		return
	}

	tenants, err := a.service.ListTenants(ctx)
	if err != nil {
		a.logger.Errorf("failed to list tenants: %v", err)
		types.WriteError(w, err)
		return
	}

	types.WriteJSON(w, http.StatusOK, tenants)
}

func (a *API) currentTenant(w http.ResponseWriter, r *http.Request) {
	_, span := a.tracer.Start(r.Context(), "tenant.API.currentTenant")
	defer span.End()

	t, ok := FromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusOK)
		return
	}

	types.WriteJSON(w, http.StatusOK, t)
}

func NewAPI(service ServiceInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	return &API{
		service: service,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}
