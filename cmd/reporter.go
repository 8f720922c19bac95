// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/canonical/tenant-session-service/internal/logging"
	"github.com/canonical/tenant-session-service/internal/tracing"
	"github.com/canonical/tenant-session-service/pkg/reporter"
)

// reporterCmd runs the client side activity loop against a tenant host,
// every line read from stdin counts as a user interaction
var reporterCmd = &cobra.Command{
	Use:   "reporter",
	Short: "Keep a tenant session alive while stdin shows activity",
	Long: `Log in through the tenant host and keep the tenant session alive while lines
are written to stdin. Once the session expires the redirect target is printed.`,
	RunE: runReporter,
}

func init() {
	f := reporterCmd.Flags()

	f.String("tenant-url", "http://tenant1.myapp.lvh.me:8080", "Origin of the tenant to report activity to")
	f.String("login-url", "http://login.myapp.lvh.me:8080/login", "Identity login entry point")
	f.String("fallback-url", "/login", "Location used when logging out fails")
	f.String("username", "", "Username to log in with")
	f.String("password", "", "Password to log in with, defaults to $REPORTER_PASSWORD")
	f.String("log-level", "info", "Log level")
	f.Duration("debounce", reporter.DefaultDebounce, "Window coalescing bursts of interaction")
	f.Duration("heartbeat-interval", reporter.DefaultHeartbeatInterval, "Heartbeat cadence")
	f.Duration("check-interval", reporter.DefaultCheckInterval, "Liveness check cadence")
	f.Duration("idle-timeout", reporter.DefaultIdleTimeout, "Idle timeout of the tenant session")

	_ = reporterCmd.MarkFlagRequired("username")

	rootCmd.AddCommand(reporterCmd)
}

func runReporter(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()

	cfg := reporter.Config{}
	cfg.TenantURL, _ = f.GetString("tenant-url")
	cfg.LoginURL, _ = f.GetString("login-url")
	cfg.FallbackURL, _ = f.GetString("fallback-url")
	cfg.Debounce, _ = f.GetDuration("debounce")
	cfg.HeartbeatInterval, _ = f.GetDuration("heartbeat-interval")
	cfg.CheckInterval, _ = f.GetDuration("check-interval")
	cfg.IdleTimeout, _ = f.GetDuration("idle-timeout")

	username, _ := f.GetString("username")
	password, _ := f.GetString("password")
	if password == "" {
		password = os.Getenv("REPORTER_PASSWORD")
	}

	level, _ := f.GetString("log-level")
	logger := logging.NewLogger(level)
	defer logger.Sync()

	out := cmd.OutOrStdout()
	navigator := reporter.NavigatorFunc(func(_ context.Context, location string) error {
		_, err := fmt.Fprintf(out, "redirect: %s\n", location)
		return err
	})

	r, err := reporter.NewReporter(cfg, navigator, tracing.NewNoopTracer(), logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := r.Login(ctx, username, password); err != nil {
		return err
	}

	go observe(cmd.InOrStdin(), r)

	err = r.Run(ctx)
	if errors.Is(err, reporter.ErrSessionExpired) {
		logger.Info("tenant session expired")
		return nil
	}

	return err
}

func observe(in io.Reader, r *reporter.Reporter) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		r.Observe()
	}
}
