// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package status

import (
	"context"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/tenant-session-service/internal/http/types"
	"github.com/canonical/tenant-session-service/internal/logging"
	"github.com/canonical/tenant-session-service/internal/monitoring"
	"github.com/canonical/tenant-session-service/internal/tracing"
	"github.com/canonical/tenant-session-service/internal/version"
)

const (
	statusOK       = "ok"
	statusDegraded = "degraded"
	statusDown     = "unavailable"

	pingTimeout = 2 * time.Second
)

type BuildInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"goVersion,omitempty"`
	Commit    string `json:"commit,omitempty"`
}

type Status struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks,omitempty"`
	BuildInfo *BuildInfo        `json:"buildInfo"`
}

type API struct {
	dependencies map[string]PingerInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.Get("/api/v0/status", a.alive)
	mux.Get("/api/v0/version", a.version)
}

func (a *API) alive(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "status.API.alive")
	defer span.End()

	rr := Status{Status: statusOK, BuildInfo: buildInfo()}

	for name, dep := range a.dependencies {
		if rr.Checks == nil {
			rr.Checks = make(map[string]string)
		}

		rr.Checks[name] = a.check(ctx, name, dep)
		if rr.Checks[name] != statusOK {
			rr.Status = statusDegraded
		}
	}

	code := http.StatusOK
	if rr.Status != statusOK {
		code = http.StatusServiceUnavailable
	}

	types.WriteJSON(w, code, rr)
}

func (a *API) check(ctx context.Context, name string, dep PingerInterface) string {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	tags := map[string]string{"component": name}

	if err := dep.Ping(ctx); err != nil {
		a.logger.Errorf("dependency %s is unavailable: %v", name, err)
		a.monitor.SetDependencyAvailability(tags, 0)

		return statusDown
	}

	a.monitor.SetDependencyAvailability(tags, 1)

	return statusOK
}

func (a *API) version(w http.ResponseWriter, r *http.Request) {
	types.WriteJSON(w, http.StatusOK, buildInfo())
}

func buildInfo() *BuildInfo {
	info := &BuildInfo{Version: version.Version}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}

	info.GoVersion = bi.GoVersion

	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			info.Commit = s.Value
		}
	}

	return info
}

// NewAPI returns the status endpoints, dependencies are pinged on every status call
func NewAPI(dependencies map[string]PingerInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	a := new(API)

	a.dependencies = dependencies

	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}
