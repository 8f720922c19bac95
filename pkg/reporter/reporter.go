// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package reporter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"

	"github.com/canonical/tenant-session-service/internal/logging"
	"github.com/canonical/tenant-session-service/internal/tracing"
)

const (
	loginPath     = "/api/auth/login"
	logoutPath    = "/api/auth/logout"
	heartbeatPath = "/api/activity/heartbeat"
	checkPath     = "/api/activity/check"

	requestTimeout = 10 * time.Second
)

// ErrSessionExpired ends Run once the tenant session is gone, either because
// the server said so or because the user stayed idle locally
var ErrSessionExpired = errors.New("tenant session expired")

// Reporter keeps a tenant session alive while the user interacts with it and
// sends the user back to login once it expires
type Reporter struct {
	cfg    Config
	origin *url.URL

	client    *http.Client
	navigator NavigatorInterface

	signals chan struct{}

	mu              sync.Mutex
	lastInteraction time.Time
	interacted      bool

	now func() time.Time

	tracer tracing.TracingInterface
	logger logging.LoggerInterface
}

// Observe reports a user interaction, bursts are coalesced by the debounce window
func (r *Reporter) Observe() {
	select {
	case r.signals <- struct{}{}:
	default:
	}
}

// Login authenticates against the identity endpoints of the tenant origin and
// keeps the session cookie for the following calls
func (r *Reporter) Login(ctx context.Context, username, password string) error {
	ctx, span := r.tracer.Start(ctx, "reporter.Reporter.Login")
	defer span.End()

	body, err := json.Marshal(map[string]string{"username": username, "password": password})
	if err != nil {
		return err
	}

	status, err := r.post(ctx, loginPath, body)
	if err != nil {
		return fmt.Errorf("login request failed: %w", err)
	}

	if status != http.StatusOK {
		return fmt.Errorf("login rejected with status %d", status)
	}

	r.interaction()

	return nil
}

// Run drives the debounce, heartbeat and liveness loops until ctx is done or
// the tenant session expires, in which case the user is logged out and
// redirected and ErrSessionExpired is returned
func (r *Reporter) Run(ctx context.Context) error {
	r.interaction()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return r.debounceLoop(gctx) })
	g.Go(func() error { return r.heartbeatLoop(gctx) })
	g.Go(func() error { return r.checkLoop(gctx) })

	err := g.Wait()

	if !errors.Is(err, ErrSessionExpired) {
		if ctx.Err() != nil {
			return nil
		}

		return err
	}

	r.expire(context.WithoutCancel(ctx))

	return ErrSessionExpired
}

func (r *Reporter) debounceLoop(ctx context.Context) error {
	timer := time.NewTimer(r.cfg.Debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-r.signals:
			timer.Reset(r.cfg.Debounce)
		case <-timer.C:
			r.interaction()
		}
	}
}

func (r *Reporter) heartbeatLoop(ctx context.Context) error {
	ticker := time.NewTicker(r.cfg.HeartbeatInterval)
	defer ticker.Stop()

	for {
		if err := r.heartbeat(ctx); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (r *Reporter) checkLoop(ctx context.Context) error {
	ticker := time.NewTicker(r.cfg.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		if err := r.check(ctx); err != nil {
			return err
		}
	}
}

// heartbeat is only sent when the user interacted since the previous one
func (r *Reporter) heartbeat(ctx context.Context) error {
	r.mu.Lock()
	pending := r.interacted
	r.interacted = false
	r.mu.Unlock()

	if !pending {
		return nil
	}

	ctx, span := r.tracer.Start(ctx, "reporter.Reporter.heartbeat")
	defer span.End()

	status, err := r.post(ctx, heartbeatPath, nil)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}

		r.logger.Warnf("failed to send heartbeat: %v", err)
		return nil
	}

	if status != http.StatusOK {
		r.logger.Infof("heartbeat rejected with status %d", status)
		return ErrSessionExpired
	}

	return nil
}

func (r *Reporter) check(ctx context.Context) error {
	ctx, span := r.tracer.Start(ctx, "reporter.Reporter.check")
	defer span.End()

	status, err := r.post(ctx, checkPath, nil)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}

		r.logger.Warnf("failed to check tenant session: %v", err)
		return ErrSessionExpired
	}

	if status != http.StatusOK {
		r.logger.Infof("tenant session check returned status %d", status)
		return ErrSessionExpired
	}

	r.mu.Lock()
	idle := r.now().Sub(r.lastInteraction)
	r.mu.Unlock()

	if idle >= r.cfg.IdleTimeout {
		r.logger.Infof("no interaction for %s, ending tenant session", idle)
		return ErrSessionExpired
	}

	return nil
}

// expire logs out with the session cookie still attached, drops every local
// cookie and redirects; a failed logout sends the user to the fallback location
func (r *Reporter) expire(ctx context.Context) {
	ctx, span := r.tracer.Start(ctx, "reporter.Reporter.expire")
	defer span.End()

	location := r.cfg.LoginURL

	status, err := r.post(ctx, logoutPath, nil)

	switch {
	case err != nil:
		r.logger.Warnf("logout failed: %v", err)
		location = r.cfg.FallbackURL
	case status != http.StatusOK:
		r.logger.Warnf("logout rejected with status %d", status)
		location = r.cfg.FallbackURL
	}

	r.clearCookies()

	if err := r.navigator.Redirect(ctx, location); err != nil {
		r.logger.Errorf("failed to redirect to %s: %v", location, err)
	}
}

func (r *Reporter) interaction() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastInteraction = r.now()
	r.interacted = true
}

func (r *Reporter) clearCookies() {
	jar, _ := cookiejar.New(nil)
	r.client.Jar = jar
}

// Cookies returns the cookies currently held for the tenant origin
func (r *Reporter) Cookies() []*http.Cookie {
	return r.client.Jar.Cookies(r.origin)
}

func (r *Reporter) post(ctx context.Context, path string, body []byte) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.origin.JoinPath(path).String(), bytes.NewReader(body))
	if err != nil {
		return 0, err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}

func NewReporter(cfg Config, navigator NavigatorInterface, tracer tracing.TracingInterface, logger logging.LoggerInterface) (*Reporter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	origin, err := url.Parse(strings.TrimSuffix(cfg.TenantURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid tenant url: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	r := new(Reporter)

	r.cfg = cfg
	r.origin = origin
	r.client = &http.Client{
		Jar:       jar,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   requestTimeout,
	}
	r.navigator = navigator
	r.signals = make(chan struct{}, 1)
	r.now = time.Now

	r.tracer = tracer
	r.logger = logger

	return r, nil
}
