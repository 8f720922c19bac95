// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package gate

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/canonical/tenant-session-service/internal/logging"
	"github.com/canonical/tenant-session-service/internal/monitoring"
	"github.com/canonical/tenant-session-service/internal/tracing"
	"github.com/canonical/tenant-session-service/internal/types"
	"github.com/canonical/tenant-session-service/pkg/activity"
	"github.com/canonical/tenant-session-service/pkg/authentication"
	"github.com/canonical/tenant-session-service/pkg/tenant"
)

//go:generate mockgen -build_flags=--mod=mod -package gate -destination ./mock_gate.go -source=./interfaces.go

var (
	tenant1 = &types.Tenant{ID: "1", Name: "Tenant 1", Subdomain: "tenant1"}
	fixedAt = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
)

type gateMocks struct {
	membership *MockMembershipInterface
	tracker    *MockTrackerInterface
	annotator  *MockAnnotatorInterface
}

func newTestGate(ctrl *gomock.Controller) (*Gate, gateMocks) {
	m := gateMocks{
		membership: NewMockMembershipInterface(ctrl),
		tracker:    NewMockTrackerInterface(ctrl),
		annotator:  NewMockAnnotatorInterface(ctrl),
	}

	logger := logging.NewNoopLogger()

	g := NewGate(m.membership, m.tracker, m.annotator, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test", logger), logger)
	g.now = func() time.Time { return fixedAt }

	return g, m
}

func TestPipeline_StopsAtFirstFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	first := NewMockStage(ctrl)
	second := NewMockStage(ctrl)
	third := NewMockStage(ctrl)

	stageErr := errors.New("denied")

	gomock.InOrder(
		first.EXPECT().Check(gomock.Any(), gomock.Any()).Return(nil),
		second.EXPECT().Check(gomock.Any(), gomock.Any()).Return(stageErr),
	)

	err := NewPipeline(first, second, third).Evaluate(context.Background(), new(Request))
	if !errors.Is(err, stageErr) {
		t.Errorf("expected %v, got %v", stageErr, err)
	}
}

func TestGate_Protect(t *testing.T) {
	tests := []struct {
		name               string
		request            *Request
		setupMocks         func(gateMocks)
		expectedErr        error
		expectedAnnotation bool
	}{
		{
			name:        "no principal",
			request:     &Request{Tenant: tenant1},
			setupMocks:  func(m gateMocks) {},
			expectedErr: types.ErrUnauthenticated,
		},
		{
			name:        "principal not authenticated never reaches membership",
			request:     &Request{Principal: &authentication.Principal{UserID: "1"}, Tenant: tenant1},
			setupMocks:  func(m gateMocks) {},
			expectedErr: types.ErrUnauthenticated,
		},
		{
			name:       "no tenant context passes through",
			request:    &Request{Principal: authentication.NewPrincipal("1")},
			setupMocks: func(m gateMocks) {},
		},
		{
			name:    "non member is forbidden",
			request: &Request{Principal: authentication.NewPrincipal("2"), Tenant: tenant1},
			setupMocks: func(m gateMocks) {
				m.membership.EXPECT().IsUserInTenant(gomock.Any(), "2", "1").Return(false, nil)
			},
			expectedErr: types.ErrForbidden,
		},
		{
			name:    "idle tenant session is expired and annotated",
			request: &Request{Principal: authentication.NewPrincipal("1"), Tenant: tenant1},
			setupMocks: func(m gateMocks) {
				m.membership.EXPECT().IsUserInTenant(gomock.Any(), "1", "1").Return(true, nil)
				m.tracker.EXPECT().IsTenantSessionActive(gomock.Any(), "1", "1").Return(false, nil)
				m.tracker.EXPECT().Expire(gomock.Any(), "1", "1").Return(nil)
			},
			expectedErr:        types.ErrTenantSessionExpired,
			expectedAnnotation: true,
		},
		{
			name:    "failing to drop the idle record still rejects",
			request: &Request{Principal: authentication.NewPrincipal("1"), Tenant: tenant1},
			setupMocks: func(m gateMocks) {
				m.membership.EXPECT().IsUserInTenant(gomock.Any(), "1", "1").Return(true, nil)
				m.tracker.EXPECT().IsTenantSessionActive(gomock.Any(), "1", "1").Return(false, nil)
				m.tracker.EXPECT().Expire(gomock.Any(), "1", "1").Return(errors.New("store down"))
			},
			expectedErr:        types.ErrTenantSessionExpired,
			expectedAnnotation: true,
		},
		{
			name:    "active tenant session records activity",
			request: &Request{Principal: authentication.NewPrincipal("1"), Tenant: tenant1},
			setupMocks: func(m gateMocks) {
				gomock.InOrder(
					m.membership.EXPECT().IsUserInTenant(gomock.Any(), "1", "1").Return(true, nil),
					m.tracker.EXPECT().IsTenantSessionActive(gomock.Any(), "1", "1").Return(true, nil),
					m.tracker.EXPECT().RecordActivity(gomock.Any(), "1", "1", fixedAt).Return(nil),
				)
			},
		},
		{
			name:    "membership lookup failure",
			request: &Request{Principal: authentication.NewPrincipal("1"), Tenant: tenant1},
			setupMocks: func(m gateMocks) {
				m.membership.EXPECT().IsUserInTenant(gomock.Any(), "1", "1").Return(false, errors.New("db down"))
			},
			expectedErr: errors.New("failed to check tenant membership: db down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			g, m := newTestGate(ctrl)
			tt.setupMocks(m)

			err := g.Protect().Evaluate(context.Background(), tt.request)

			switch {
			case tt.expectedErr == nil && err != nil:
				t.Fatalf("unexpected error: %v", err)
			case tt.expectedErr != nil && err == nil:
				t.Fatalf("expected error %v, got nil", tt.expectedErr)
			case tt.expectedErr != nil && !errors.Is(err, tt.expectedErr) && err.Error() != tt.expectedErr.Error():
				t.Fatalf("expected error %v, got %v", tt.expectedErr, err)
			}

			if tt.expectedAnnotation {
				if tt.request.Annotation == nil || tt.request.Annotation.IsActive || !tt.request.Annotation.LastActivity.Equal(fixedAt) {
					t.Errorf("expected an inactive annotation, got %+v", tt.request.Annotation)
				}
			} else if tt.request.Annotation != nil {
				t.Errorf("expected no annotation, got %+v", tt.request.Annotation)
			}
		})
	}
}

func TestGate_Liveness(t *testing.T) {
	tests := []struct {
		name        string
		request     *Request
		setupMocks  func(gateMocks)
		expectedErr error
	}{
		{
			name:        "tenant required",
			request:     &Request{Principal: authentication.NewPrincipal("1")},
			setupMocks:  func(m gateMocks) {},
			expectedErr: types.ErrMissingTenantContext,
		},
		{
			name:        "authentication comes first",
			request:     &Request{},
			setupMocks:  func(m gateMocks) {},
			expectedErr: types.ErrUnauthenticated,
		},
		{
			name:    "active session is not refreshed",
			request: &Request{Principal: authentication.NewPrincipal("1"), Tenant: tenant1},
			setupMocks: func(m gateMocks) {
				m.membership.EXPECT().IsUserInTenant(gomock.Any(), "1", "1").Return(true, nil)
				m.tracker.EXPECT().IsTenantSessionActive(gomock.Any(), "1", "1").Return(true, nil)
			},
		},
		{
			name:    "expired session",
			request: &Request{Principal: authentication.NewPrincipal("1"), Tenant: tenant1},
			setupMocks: func(m gateMocks) {
				m.membership.EXPECT().IsUserInTenant(gomock.Any(), "1", "1").Return(true, nil)
				m.tracker.EXPECT().IsTenantSessionActive(gomock.Any(), "1", "1").Return(false, nil)
				m.tracker.EXPECT().Expire(gomock.Any(), "1", "1").Return(nil)
			},
			expectedErr: types.ErrTenantSessionExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			g, m := newTestGate(ctrl)
			tt.setupMocks(m)

			err := g.Liveness().Evaluate(context.Background(), tt.request)
			if !errors.Is(err, tt.expectedErr) {
				t.Errorf("expected error %v, got %v", tt.expectedErr, err)
			}
		})
	}
}

func TestGate_Middleware(t *testing.T) {
	tests := []struct {
		name           string
		principal      *authentication.Principal
		tenant         *types.Tenant
		setupMocks     func(gateMocks)
		expectedStatus int
		expectedBody   string
		expectNext     bool
	}{
		{
			name:           "anonymous",
			tenant:         tenant1,
			setupMocks:     func(m gateMocks) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":401,"message":"not authenticated"}`,
		},
		{
			name:      "user2 under tenant 1",
			principal: authentication.NewPrincipal("2"),
			tenant:    tenant1,
			setupMocks: func(m gateMocks) {
				m.membership.EXPECT().IsUserInTenant(gomock.Any(), "2", "1").Return(false, nil)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:      "expired session is annotated before rejecting",
			principal: authentication.NewPrincipal("1"),
			tenant:    tenant1,
			setupMocks: func(m gateMocks) {
				m.membership.EXPECT().IsUserInTenant(gomock.Any(), "1", "1").Return(true, nil)
				m.tracker.EXPECT().IsTenantSessionActive(gomock.Any(), "1", "1").Return(false, nil)
				m.tracker.EXPECT().Expire(gomock.Any(), "1", "1").Return(nil)
				m.annotator.EXPECT().Annotate(gomock.Any(), gomock.Any(), "1", authentication.TenantAnnotation{LastActivity: fixedAt, IsActive: false}).Return(nil)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":401,"message":"tenant session has expired due to inactivity"}`,
		},
		{
			name:      "annotation failure does not change the outcome",
			principal: authentication.NewPrincipal("1"),
			tenant:    tenant1,
			setupMocks: func(m gateMocks) {
				m.membership.EXPECT().IsUserInTenant(gomock.Any(), "1", "1").Return(true, nil)
				m.tracker.EXPECT().IsTenantSessionActive(gomock.Any(), "1", "1").Return(false, nil)
				m.tracker.EXPECT().Expire(gomock.Any(), "1", "1").Return(nil)
				m.annotator.EXPECT().Annotate(gomock.Any(), gomock.Any(), "1", gomock.Any()).Return(errors.New("store down"))
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:      "active session",
			principal: authentication.NewPrincipal("1"),
			tenant:    tenant1,
			setupMocks: func(m gateMocks) {
				m.membership.EXPECT().IsUserInTenant(gomock.Any(), "1", "1").Return(true, nil)
				m.tracker.EXPECT().IsTenantSessionActive(gomock.Any(), "1", "1").Return(true, nil)
				m.tracker.EXPECT().RecordActivity(gomock.Any(), "1", "1", fixedAt).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectNext:     true,
		},
		{
			name:      "tracker failure",
			principal: authentication.NewPrincipal("1"),
			tenant:    tenant1,
			setupMocks: func(m gateMocks) {
				m.membership.EXPECT().IsUserInTenant(gomock.Any(), "1", "1").Return(true, nil)
				m.tracker.EXPECT().IsTenantSessionActive(gomock.Any(), "1", "1").Return(false, errors.New("boom"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":500,"message":"Internal Server Error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			g, m := newTestGate(ctrl)
			tt.setupMocks(m)

			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/api/activity/heartbeat", nil)
			ctx := req.Context()
			if tt.principal != nil {
				ctx = authentication.WithPrincipal(ctx, tt.principal)
			}
			if tt.tenant != nil {
				ctx = tenant.WithTenant(ctx, tt.tenant)
			}
			rr := httptest.NewRecorder()

			g.Middleware(g.Protect())(next).ServeHTTP(rr, req.WithContext(ctx))

			if rr.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, rr.Code)
			}

			if called != tt.expectNext {
				t.Errorf("expected next called %v, got %v", tt.expectNext, called)
			}

			if tt.expectedBody != "" && rr.Body.String() != tt.expectedBody+"\n" {
				t.Errorf("expected body %s, got %s", tt.expectedBody, rr.Body.String())
			}
		})
	}
}

func TestGate_RejectedSessionDropsIdleRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	logger := logging.NewNoopLogger()
	monitor := monitoring.NewNoopMonitor("test", logger)
	tracer := tracing.NewNoopTracer()

	tracker := activity.NewTracker(
		activity.NewMemoryStore(),
		activity.Config{IdleTimeout: time.Minute, Retention: 2 * time.Hour},
		tracer,
		monitor,
		logger,
	)

	membership := NewMockMembershipInterface(ctrl)
	membership.EXPECT().IsUserInTenant(gomock.Any(), "1", "1").Return(true, nil).Times(2)

	g := NewGate(membership, tracker, NewMockAnnotatorInterface(ctrl), tracer, monitor, logger)

	ctx := context.Background()
	if err := tracker.RecordActivity(ctx, "1", "1", time.Now().Add(-5*time.Minute)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := &Request{Principal: authentication.NewPrincipal("1"), Tenant: tenant1}
	if err := g.Protect().Evaluate(ctx, req); !errors.Is(err, types.ErrTenantSessionExpired) {
		t.Fatalf("expected error %v, got %v", types.ErrTenantSessionExpired, err)
	}

	if _, found, _ := tracker.LastActivity(ctx, "1", "1"); found {
		t.Errorf("expected the idle record to be dropped on rejection")
	}

	// the dropped pair must not start a new grace period
	req = &Request{Principal: authentication.NewPrincipal("1"), Tenant: tenant1}
	if err := g.Protect().Evaluate(ctx, req); !errors.Is(err, types.ErrTenantSessionExpired) {
		t.Errorf("expected error %v on retry, got %v", types.ErrTenantSessionExpired, err)
	}
}
