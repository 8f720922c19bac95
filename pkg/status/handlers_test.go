// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package status

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/canonical/tenant-session-service/internal/logging"
	"github.com/canonical/tenant-session-service/internal/monitoring"
	"github.com/canonical/tenant-session-service/internal/tracing"
	"github.com/canonical/tenant-session-service/internal/version"
)

//go:generate mockgen -build_flags=--mod=mod -package status -destination ./mock_status.go -source=./interfaces.go

func TestAPI_Status(t *testing.T) {
	tests := []struct {
		name           string
		pingErr        error
		withDependency bool
		expectedCode   int
		expectedStatus string
	}{
		{name: "no dependencies", expectedCode: http.StatusOK, expectedStatus: "ok"},
		{name: "database reachable", withDependency: true, expectedCode: http.StatusOK, expectedStatus: "ok"},
		{name: "database down", withDependency: true, pingErr: errors.New("connection refused"), expectedCode: http.StatusServiceUnavailable, expectedStatus: "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			deps := map[string]PingerInterface{}
			if tt.withDependency {
				pinger := NewMockPingerInterface(ctrl)
				pinger.EXPECT().Ping(gomock.Any()).Return(tt.pingErr)
				deps["database"] = pinger
			}

			logger := logging.NewNoopLogger()
			mux := chi.NewMux()
			NewAPI(deps, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test", logger), logger).RegisterEndpoints(mux)

			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v0/status", nil))

			if rr.Code != tt.expectedCode {
				t.Fatalf("expected code %d, got %d", tt.expectedCode, rr.Code)
			}

			var body Status
			if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}

			if body.Status != tt.expectedStatus {
				t.Errorf("expected status %q, got %q", tt.expectedStatus, body.Status)
			}

			if body.BuildInfo == nil || body.BuildInfo.Version != version.Version {
				t.Errorf("unexpected build info %+v", body.BuildInfo)
			}
		})
	}
}

func TestAPI_Version(t *testing.T) {
	logger := logging.NewNoopLogger()
	mux := chi.NewMux()
	NewAPI(nil, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test", logger), logger).RegisterEndpoints(mux)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v0/version", nil))

	var body BuildInfo
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}

	if rr.Code != http.StatusOK || body.Version != version.Version {
		t.Errorf("unexpected response %d %+v", rr.Code, body)
	}
}
