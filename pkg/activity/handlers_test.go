// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package activity

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/canonical/tenant-session-service/internal/logging"
	"github.com/canonical/tenant-session-service/internal/monitoring"
	"github.com/canonical/tenant-session-service/internal/storage"
	"github.com/canonical/tenant-session-service/internal/tracing"
	"github.com/canonical/tenant-session-service/internal/types"
	"github.com/canonical/tenant-session-service/pkg/authentication"
	"github.com/canonical/tenant-session-service/pkg/gate"
	"github.com/canonical/tenant-session-service/pkg/tenant"
)

var tenant1 = &types.Tenant{ID: "1", Name: "Tenant 1", Subdomain: "tenant1"}

func newRequest(method, path string, p *authentication.Principal, t *types.Tenant) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	ctx := req.Context()

	if p != nil {
		ctx = authentication.WithPrincipal(ctx, p)
	}

	if t != nil {
		ctx = tenant.WithTenant(ctx, t)
	}

	return req.WithContext(ctx)
}

func TestAPI_Heartbeat(t *testing.T) {
	at := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		principal      *authentication.Principal
		tenant         *types.Tenant
		setupMocks     func(*MockTrackerInterface)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "no tenant",
			principal:      authentication.NewPrincipal("1"),
			setupMocks:     func(m *MockTrackerInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":400,"message":"missing user ID or tenant context"}`,
		},
		{
			name:           "no user",
			tenant:         tenant1,
			setupMocks:     func(m *MockTrackerInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:      "record failure",
			principal: authentication.NewPrincipal("1"),
			tenant:    tenant1,
			setupMocks: func(m *MockTrackerInterface) {
				m.EXPECT().RecordActivity(gomock.Any(), "1", "1", at).Return(errors.New("store down"))
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":401,"message":"Failed to record activity"}`,
		},
		{
			name:      "success",
			principal: authentication.NewPrincipal("1"),
			tenant:    tenant1,
			setupMocks: func(m *MockTrackerInterface) {
				m.EXPECT().RecordActivity(gomock.Any(), "1", "1", at).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"success":true}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			tracker := NewMockTrackerInterface(ctrl)
			tt.setupMocks(tracker)

			logger := logging.NewNoopLogger()
			api := NewAPI(tracker, nil, nil, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test", logger), logger)
			api.now = func() time.Time { return at }

			mux := chi.NewMux()
			api.RegisterEndpoints(mux)

			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, newRequest(http.MethodPost, "/api/activity/heartbeat", tt.principal, tt.tenant))

			assert.Equal(t, tt.expectedStatus, rr.Code)

			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, rr.Body.String())
			}
		})
	}
}

func TestAPI_CheckRunsBehindGuard(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	logger := logging.NewNoopLogger()

	deny := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
	}

	api := NewAPI(NewMockTrackerInterface(ctrl), nil, deny, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test", logger), logger)

	mux := chi.NewMux()
	api.RegisterEndpoints(mux)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, newRequest(http.MethodPost, "/api/activity/check", authentication.NewPrincipal("1"), tenant1))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	api = NewAPI(NewMockTrackerInterface(ctrl), nil, nil, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test", logger), logger)

	mux = chi.NewMux()
	api.RegisterEndpoints(mux)

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, newRequest(http.MethodPost, "/api/activity/check", authentication.NewPrincipal("1"), tenant1))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"active":true}`, rr.Body.String())
}

type discardAnnotations struct{}

func (discardAnnotations) Annotate(http.ResponseWriter, *http.Request, string, authentication.TenantAnnotation) error {
	return nil
}

// heartbeats every idleTimeout/2 keep the tenant session alive, silence for a
// full idle timeout ends it
func TestHeartbeatsKeepTenantSessionAlive(t *testing.T) {
	c := &clock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	tracker := newTestTracker(NewMemoryStore(), c)

	logger := logging.NewNoopLogger()
	tracer := tracing.NewNoopTracer()
	monitor := monitoring.NewNoopMonitor("test", logger)

	membership := authentication.NewService(storage.NewMemoryStorage(storage.DefaultUsers(), storage.DefaultTenants()), tracer, monitor, logger)
	g := gate.NewGate(membership, tracker, discardAnnotations{}, tracer, monitor, logger)

	// the handler records the heartbeat itself, on the test clock
	heartbeatGuard := gate.NewPipeline(g.Authenticated(), g.TenantMember(), g.TenantActive())

	api := NewAPI(tracker, g.Middleware(heartbeatGuard), g.Middleware(g.Liveness()), tracer, monitor, logger)
	api.now = c.now

	mux := chi.NewMux()
	api.RegisterEndpoints(mux)

	call := func(path string, p *authentication.Principal) int {
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, newRequest(http.MethodPost, path, p, tenant1))
		return rr.Code
	}

	user1 := authentication.NewPrincipal("1")

	require.Equal(t, http.StatusOK, call("/api/activity/check", user1), "first check is within the grace period")

	for i := 0; i < 6; i++ {
		c.advance(10 * time.Second)
		require.Equal(t, http.StatusOK, call("/api/activity/heartbeat", user1))
		require.Equal(t, http.StatusOK, call("/api/activity/check", user1))
	}

	c.advance(20 * time.Second)

	assert.Equal(t, http.StatusUnauthorized, call("/api/activity/check", user1))
	assert.Equal(t, http.StatusUnauthorized, call("/api/activity/heartbeat", user1))

	_, found, err := tracker.LastActivity(context.Background(), "1", "1")
	require.NoError(t, err)
	assert.False(t, found, "a rejected session drops its record")

	require.NoError(t, tracker.Sweep(context.Background()))
	assert.Equal(t, http.StatusUnauthorized, call("/api/activity/check", user1), "a swept session stays expired")

	assert.Equal(t, http.StatusForbidden, call("/api/activity/check", authentication.NewPrincipal("2")), "user2 is not a member of tenant 1")
	assert.Equal(t, http.StatusUnauthorized, call("/api/activity/check", nil))
}
