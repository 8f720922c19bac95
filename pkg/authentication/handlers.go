// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/canonical/tenant-session-service/internal/http/types"
	"github.com/canonical/tenant-session-service/internal/logging"
	"github.com/canonical/tenant-session-service/internal/monitoring"
	"github.com/canonical/tenant-session-service/internal/tracing"
	domain "github.com/canonical/tenant-session-service/internal/types"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type MeResponse struct {
	UserID        string                      `json:"userId"`
	Tenants       []*domain.Tenant            `json:"tenants"`
	ActiveTenants map[string]TenantAnnotation `json:"activeTenants"`
}

type API struct {
	service  ServiceInterface
	sessions SessionManagerInterface
	activity ActivityResetterInterface

	loginLimiter func(http.Handler) http.Handler
	validate     *validator.Validate

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.With(a.loginLimiter).Post("/api/auth/login", a.login)
	mux.Post("/api/auth/logout", a.logout)
	mux.Get("/api/auth/me", a.me)
}

func (a *API) login(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "authentication.API.login")
	defer span.End()

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		types.WriteErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// empty credentials are wrong credentials
	if err := a.validate.Struct(req); err != nil {
		a.logger.Security().AuthnLoginFail(req.Username)
		types.WriteError(w, domain.ErrInvalidCredentials)
		return
	}

	p, err := a.service.Login(ctx, req.Username, req.Password)
	if err != nil {
		if types.StatusFor(err) == http.StatusInternalServerError {
			a.logger.Errorf("login failed: %v", err)
		}
		types.WriteError(w, err)
		return
	}

	// a fresh principal session starts every tenant session with a grace period
	if err := a.activity.ResetUser(ctx, p.UserID); err != nil {
		a.logger.Errorf("failed to reset activity of user %s: %v", p.UserID, err)
	}

	if err := a.sessions.Establish(w, r, p); err != nil {
		a.logger.Errorf("failed to establish session: %v", err)
		types.WriteError(w, err)
		return
	}

	types.WriteJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

func (a *API) logout(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "authentication.API.logout")
	defer span.End()

	userID, ok := GetUserID(ctx)
	if !ok {
		types.WriteError(w, domain.ErrUnauthenticated)
		return
	}

	if err := a.activity.ResetUser(ctx, userID); err != nil {
		a.logger.Errorf("failed to reset activity of user %s: %v", userID, err)
	}

	if err := a.sessions.Destroy(w, r); err != nil {
		a.logger.Errorf("error destroying session: %v", err)
		types.WriteJSON(w, http.StatusInternalServerError, SuccessResponse{Success: false})
		return
	}

	types.WriteJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

func (a *API) me(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "authentication.API.me")
	defer span.End()

	p, ok := PrincipalFromContext(ctx)
	if !ok || !p.Authenticated() {
		types.WriteError(w, domain.ErrUnauthenticated)
		return
	}

	tenants, err := a.service.GetAccessibleTenants(ctx, p.UserID)
	if err != nil {
		a.logger.Errorf("failed to list tenants of user %s: %v", p.UserID, err)
		types.WriteError(w, err)
		return
	}

	types.WriteJSON(
		w,
		http.StatusOK,
		MeResponse{
			UserID:        p.UserID,
			Tenants:       tenants,
			ActiveTenants: p.ActiveTenants,
		},
	)
}

func NewAPI(
	service ServiceInterface,
	sessions SessionManagerInterface,
	activity ActivityResetterInterface,
	loginLimiter func(http.Handler) http.Handler,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *API {
	a := new(API)

	a.service = service
	a.sessions = sessions
	a.activity = activity

	a.loginLimiter = loginLimiter
	if a.loginLimiter == nil {
		a.loginLimiter = func(next http.Handler) http.Handler { return next }
	}
	a.validate = validator.New(validator.WithRequiredStructEnabled())

	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}
