// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/canonical/tenant-session-service/internal/logging"
	"github.com/canonical/tenant-session-service/internal/monitoring"
	"github.com/canonical/tenant-session-service/internal/tracing"
)

func TestMiddleware_Sessions(t *testing.T) {
	tests := []struct {
		name           string
		setupMocks     func(*MockSessionManagerInterface)
		expectedUserID string
		expectedFound  bool
	}{
		{
			name: "session with principal",
			setupMocks: func(m *MockSessionManagerInterface) {
				m.EXPECT().Load(gomock.Any()).Return(NewPrincipal("1"), nil)
				m.EXPECT().Touch(gomock.Any(), gomock.Any()).Return(nil)
			},
			expectedUserID: "1",
			expectedFound:  true,
		},
		{
			name: "no session",
			setupMocks: func(m *MockSessionManagerInterface) {
				m.EXPECT().Load(gomock.Any()).Return(nil, nil)
			},
		},
		{
			name: "load error passes through anonymously",
			setupMocks: func(m *MockSessionManagerInterface) {
				m.EXPECT().Load(gomock.Any()).Return(nil, errors.New("broken"))
			},
		},
		{
			name: "touch failure keeps the principal",
			setupMocks: func(m *MockSessionManagerInterface) {
				m.EXPECT().Load(gomock.Any()).Return(NewPrincipal("2"), nil)
				m.EXPECT().Touch(gomock.Any(), gomock.Any()).Return(errors.New("broken"))
			},
			expectedUserID: "2",
			expectedFound:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockSessions := NewMockSessionManagerInterface(ctrl)
			tt.setupMocks(mockSessions)

			logger := logging.NewNoopLogger()
			mdw := NewMiddleware(mockSessions, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test", logger), logger)

			var (
				userID string
				found  bool
			)
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				userID, found = GetUserID(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			rr := httptest.NewRecorder()
			mdw.Sessions()(handler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))

			if rr.Code != http.StatusOK {
				t.Errorf("expected status %d, got %d", http.StatusOK, rr.Code)
			}

			if found != tt.expectedFound || userID != tt.expectedUserID {
				t.Errorf("expected (%q, %v), got (%q, %v)", tt.expectedUserID, tt.expectedFound, userID, found)
			}
		})
	}
}
