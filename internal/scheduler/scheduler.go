// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/canonical/tenant-session-service/internal/logging"
	"github.com/canonical/tenant-session-service/internal/tracing"
)

// JobFunc is a unit of background work, an error is logged and the job keeps
// its schedule
type JobFunc func(context.Context) error

// Scheduler runs named jobs at fixed intervals
type Scheduler struct {
	cron *cron.Cron

	mu      sync.Mutex
	entries map[string]cron.EntryID
	ctx     context.Context
	cancel  context.CancelFunc

	tracer tracing.TracingInterface
	logger logging.LoggerInterface
}

// AddJob schedules fn every interval under name, replacing a job already
// registered with the same name
func (s *Scheduler) AddJob(name string, interval time.Duration, fn JobFunc) error {
	if interval <= 0 {
		return fmt.Errorf("invalid interval %s for job %s", interval, name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.entries[name]; ok {
		s.cron.Remove(id)
	}

	id, err := s.cron.AddFunc(fmt.Sprintf("@every %s", interval), func() {
		s.run(name, fn)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule job %s: %w", name, err)
	}

	s.entries[name] = id
	s.logger.Debugf("scheduled job %s every %s", name, interval)

	return nil
}

func (s *Scheduler) run(name string, fn JobFunc) {
	ctx, span := s.tracer.Start(s.ctx, fmt.Sprintf("scheduler.Job.%s", name))
	defer span.End()

	if err := fn(ctx); err != nil {
		s.logger.Errorw("scheduled job failed", "job", name, "error", err)
	}
}

// Jobs returns the names of the registered jobs
func (s *Scheduler) Jobs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}

	return names
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started")
}

// Stop prevents new runs and waits for running jobs until ctx is done
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	s.cancel()

	select {
	case <-done.Done():
		s.logger.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("scheduler did not stop in time: %w", ctx.Err())
	}
}

// cronLogger adapts the service logger to the cron.Logger interface
type cronLogger struct {
	logger logging.LoggerInterface
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Errorw(msg, append(keysAndValues, "error", err)...)
}

func NewScheduler(tracer tracing.TracingInterface, logger logging.LoggerInterface) *Scheduler {
	s := new(Scheduler)

	l := cronLogger{logger: logger}
	s.cron = cron.New(
		cron.WithLogger(l),
		cron.WithChain(cron.Recover(l), cron.SkipIfStillRunning(l)),
	)
	s.entries = make(map[string]cron.EntryID)
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.tracer = tracer
	s.logger = logger

	return s
}
