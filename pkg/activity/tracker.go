// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package activity

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/canonical/tenant-session-service/internal/logging"
	"github.com/canonical/tenant-session-service/internal/monitoring"
	"github.com/canonical/tenant-session-service/internal/tracing"
	"github.com/canonical/tenant-session-service/internal/types"
)

const (
	DefaultIdleTimeout = 20 * time.Second
	DefaultRetention   = time.Hour

	evictionIdle      = "idle"
	evictionRetention = "retention"
	evictionExpired   = "expired"
	evictionReset     = "reset"
)

type Config struct {
	// IdleTimeout is how long a tenant session survives without activity
	IdleTimeout time.Duration
	// Retention bounds how long any record is kept, independently of the sweep
	Retention time.Duration
}

var _ TrackerInterface = (*Tracker)(nil)

// Tracker owns the per tenant activity records and decides whether a tenant
// session is still active
type Tracker struct {
	store StoreInterface
	cfg   Config

	// expired remembers pairs whose session ended, so their next check is not
	// mistaken for a first contact
	mu      sync.Mutex
	expired map[Key]time.Time

	now func() time.Time

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// RecordActivity marks the tenant session as active at ts, replacing any
// previous record for the pair
func (t *Tracker) RecordActivity(ctx context.Context, userID, tenantID string, ts time.Time) error {
	ctx, span := t.tracer.Start(ctx, "activity.Tracker.RecordActivity")
	defer span.End()

	if userID == "" || tenantID == "" {
		return types.ErrMissingTenantContext
	}

	if ts.IsZero() {
		ts = t.now()
	}

	err := t.store.Upsert(ctx, types.ActivityRecord{UserID: userID, TenantID: tenantID, LastActivity: ts})
	if err != nil {
		return fmt.Errorf("failed to record activity: %w", err)
	}

	t.unmark(Key{UserID: userID, TenantID: tenantID})

	pruned, err := t.store.DeleteOlderThan(ctx, t.now().Add(-t.cfg.Retention))
	if err != nil {
		t.logger.Errorf("failed to prune activity records: %v", err)
	} else if len(pruned) > 0 {
		t.logger.Debugf("pruned %d activity records past retention", len(pruned))
		t.monitor.IncActivityEvictions(evictionRetention, float64(len(pruned)))
	}

	t.reportCount(ctx)

	return nil
}

// IsTenantSessionActive reports whether the tenant session is within the idle
// timeout, a pair never seen before starts a new session and is active while
// a pair whose session was swept or expired stays inactive
func (t *Tracker) IsTenantSessionActive(ctx context.Context, userID, tenantID string) (bool, error) {
	ctx, span := t.tracer.Start(ctx, "activity.Tracker.IsTenantSessionActive")
	defer span.End()

	last, found, err := t.LastActivity(ctx, userID, tenantID)
	if err != nil {
		return false, err
	}

	now := t.now()

	if !found && t.wasExpired(Key{UserID: userID, TenantID: tenantID}) {
		return false, nil
	}

	if !found {
		t.logger.Debugf("no activity for user %s in tenant %s, starting grace period", userID, tenantID)
		if err := t.RecordActivity(ctx, userID, tenantID, now); err != nil {
			return false, err
		}

		return true, nil
	}

	return now.Sub(last) < t.cfg.IdleTimeout, nil
}

// LastActivity returns the last recorded activity of the pair and whether one exists
func (t *Tracker) LastActivity(ctx context.Context, userID, tenantID string) (time.Time, bool, error) {
	ctx, span := t.tracer.Start(ctx, "activity.Tracker.LastActivity")
	defer span.End()

	r, err := t.store.Get(ctx, Key{UserID: userID, TenantID: tenantID})
	if errors.Is(err, ErrRecordNotFound) {
		return time.Time{}, false, nil
	}

	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to get activity: %w", err)
	}

	return r.LastActivity, true, nil
}

// Expire drops the record of the pair
func (t *Tracker) Expire(ctx context.Context, userID, tenantID string) error {
	ctx, span := t.tracer.Start(ctx, "activity.Tracker.Expire")
	defer span.End()

	key := Key{UserID: userID, TenantID: tenantID}

	t.mu.Lock()
	removed, err := t.store.Delete(ctx, key)
	if err == nil {
		t.expired[key] = t.now()
	}
	t.mu.Unlock()

	if err != nil {
		return fmt.Errorf("failed to expire activity: %w", err)
	}

	if removed {
		t.monitor.IncActivityEvictions(evictionExpired, 1)
	}

	t.reportCount(ctx)

	return nil
}

// ResetUser drops every record held for the user, the next idle check of each
// tenant starts a new grace period
func (t *Tracker) ResetUser(ctx context.Context, userID string) error {
	ctx, span := t.tracer.Start(ctx, "activity.Tracker.ResetUser")
	defer span.End()

	removed, err := t.store.DeleteUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to reset activity: %w", err)
	}

	if len(removed) > 0 {
		t.monitor.IncActivityEvictions(evictionReset, float64(len(removed)))
	}

	t.forget(func(k Key) bool { return k.UserID == userID })

	t.reportCount(ctx)

	return nil
}

// Sweep evicts every record idle for at least the idle timeout
func (t *Tracker) Sweep(ctx context.Context) error {
	ctx, span := t.tracer.Start(ctx, "activity.Tracker.Sweep")
	defer span.End()

	now := t.now()
	retention := now.Add(-t.cfg.Retention)

	// evicted pairs are marked before the lock is released, a concurrent
	// check that misses the record always sees the marker
	t.mu.Lock()
	evicted, err := t.store.DeleteOlderThan(ctx, now.Add(-t.cfg.IdleTimeout))
	if err == nil {
		for _, r := range evicted {
			if !malformed(r) {
				t.expired[keyOf(r)] = now
			}
		}

		for k, at := range t.expired {
			if !at.After(retention) {
				delete(t.expired, k)
			}
		}
	}
	t.mu.Unlock()

	if err != nil {
		return fmt.Errorf("failed to sweep activity records: %w", err)
	}

	for _, r := range evicted {
		if malformed(r) {
			t.logger.Warnw("evicted malformed activity record", "user_id", r.UserID, "tenant_id", r.TenantID)
			continue
		}

		t.logger.Infow("user is idle in tenant", "user_id", r.UserID, "tenant_id", r.TenantID, "idle", r.Age(now).String())
	}

	if len(evicted) > 0 {
		t.monitor.IncActivityEvictions(evictionIdle, float64(len(evicted)))
	}

	t.reportCount(ctx)

	return nil
}

func (t *Tracker) wasExpired(k Key) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, ok := t.expired[k]

	return ok
}

func (t *Tracker) unmark(k Key) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.expired, k)
}

// forget drops the expiry markers matching fn, fn runs under the lock
func (t *Tracker) forget(fn func(Key) bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for k := range t.expired {
		if fn(k) {
			delete(t.expired, k)
		}
	}
}

func (t *Tracker) reportCount(ctx context.Context) {
	n, err := t.store.Count(ctx)
	if err != nil {
		t.logger.Debugf("failed to count activity records: %v", err)
		return
	}

	t.monitor.SetActivityRecords(float64(n))
}

func NewTracker(store StoreInterface, cfg Config, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Tracker {
	t := new(Tracker)

	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = DefaultIdleTimeout
	}

	if cfg.Retention < cfg.IdleTimeout {
		cfg.Retention = max(DefaultRetention, cfg.IdleTimeout)
	}

	t.store = store
	t.cfg = cfg
	t.expired = make(map[Key]time.Time)
	t.now = time.Now

	t.tracer = tracer
	t.monitor = monitor
	t.logger = logger

	return t
}
