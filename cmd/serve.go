// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/canonical/tenant-session-service/internal/config"
	"github.com/canonical/tenant-session-service/internal/db"
	"github.com/canonical/tenant-session-service/internal/logging"
	"github.com/canonical/tenant-session-service/internal/monitoring/prometheus"
	"github.com/canonical/tenant-session-service/internal/ratelimit"
	"github.com/canonical/tenant-session-service/internal/scheduler"
	"github.com/canonical/tenant-session-service/internal/storage"
	"github.com/canonical/tenant-session-service/internal/tracing"
	"github.com/canonical/tenant-session-service/pkg/activity"
	"github.com/canonical/tenant-session-service/pkg/authentication"
	"github.com/canonical/tenant-session-service/pkg/status"
	"github.com/canonical/tenant-session-service/pkg/web"
)

const (
	sessionReapInterval   = time.Minute
	limiterPruneInterval  = time.Minute
	limiterStaleAfter     = 10 * time.Minute
	shutdownTimeout       = 15 * time.Second
	generatedHashKeyBytes = 32
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve starts the web server",
	Long:  `Launch the web application, list of environment variables is available in the readme`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := serve(); err != nil {
			fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	specs := new(config.EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		return fmt.Errorf("issues with environment sourcing: %w", err)
	}

	if err := specs.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logging.NewLogger(specs.LogLevel)
	logger.Debugf("env vars: %v", redacted(*specs))
	defer logger.Sync()

	monitor := prometheus.NewMonitor("tenant-session-service", logger)
	tracer := tracing.NewTracer(tracing.NewConfig(specs.TracingEnabled, specs.OtelGRPCEndpoint, specs.OtelHTTPEndpoint, logger))

	dependencies := make(map[string]status.PingerInterface)

	var s storage.StorageInterface
	if specs.DSN != "" {
		dbClient, err := db.NewDBClient(
			db.Config{
				DSN:             specs.DSN,
				MaxConns:        specs.DBMaxConns,
				MinConns:        specs.DBMinConns,
				MaxConnLifetime: specs.DBMaxConnLifetime,
				MaxConnIdleTime: specs.DBMaxConnIdleTime,
				TracingEnabled:  specs.TracingEnabled,
			},
			tracer,
			monitor,
			logger,
		)
		if err != nil {
			return fmt.Errorf("failed to create database client: %w", err)
		}
		defer dbClient.Close()

		s = storage.NewStorage(dbClient, tracer, monitor, logger)
		dependencies["database"] = dbClient
	} else {
		logger.Info("DSN not set, serving the seeded in-memory identities and tenants")
		s = storage.NewMemoryStorage(storage.DefaultUsers(), storage.DefaultTenants())
	}

	tracker := activity.NewTracker(
		activity.NewMemoryStore(),
		activity.Config{IdleTimeout: specs.IdleTimeout, Retention: specs.ActivityRetention},
		tracer,
		monitor,
		logger,
	)

	keyPairs, err := sessionKeys(specs, logger)
	if err != nil {
		return err
	}

	sessionStore := authentication.NewMemoryStore(
		sessions.Options{
			Path:     "/",
			Domain:   specs.CookieDomain,
			MaxAge:   int(specs.SessionMaxAge.Seconds()),
			Secure:   specs.CookieSecure,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		},
		keyPairs...,
	)
	sessionManager := authentication.NewSessionManager(sessionStore, specs.CookieName, tracer, monitor, logger)

	limiter := ratelimit.NewLimiter(
		ratelimit.Config{
			RequestsPerSecond: specs.LoginRateLimit,
			Burst:             specs.LoginRateBurst,
			StaleAfter:        limiterStaleAfter,
		},
		logger,
	)

	sched, err := newScheduler(specs, tracker, sessionManager, limiter, tracer, logger)
	if err != nil {
		return err
	}

	router := web.NewRouter(
		web.Config{
			BaseDomain:        specs.BaseDomain,
			IdentitySubdomain: specs.IdentitySubdomain,
			AllowedOrigins:    specs.CORSAllowedOrigins,
			LoginLimiter:      limiter.Middleware,
			Dependencies:      dependencies,
		},
		s,
		tracker,
		sessionManager,
		tracer,
		monitor,
		logger,
	)

	logger.Infof("Starting HTTP server on port %v", specs.Port)

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%v", specs.Port),
		WriteTimeout: time.Second * 60,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      router,
	}

	var serverError error
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	sched.Start()

	go func() {
		logger.Security().SystemStartup()
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError = fmt.Errorf("server error: %w", err)
			c <- os.Interrupt
		}
	}()

	<-c

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logger.Security().SystemShutdown()
	if err := srv.Shutdown(ctx); err != nil {
		serverError = fmt.Errorf("server shutdown error: %w", err)
	}

	if err := sched.Stop(ctx); err != nil {
		logger.Errorf("scheduler did not stop cleanly: %v", err)
	}

	return serverError
}

// newScheduler registers the background jobs: the idle sweep, expired session
// reaping and pruning of idle rate limit buckets
func newScheduler(
	specs *config.EnvSpec,
	tracker activity.TrackerInterface,
	sessionManager *authentication.SessionManager,
	limiter *ratelimit.Limiter,
	tracer tracing.TracingInterface,
	logger logging.LoggerInterface,
) (*scheduler.Scheduler, error) {
	sched := scheduler.NewScheduler(tracer, logger)

	jobs := []struct {
		name     string
		interval time.Duration
		fn       scheduler.JobFunc
	}{
		{"activity-sweep", specs.SweepInterval, tracker.Sweep},
		{"session-reap", sessionReapInterval, sessionManager.Reap},
		{"ratelimit-prune", limiterPruneInterval, limiter.Prune},
	}

	for _, j := range jobs {
		if err := sched.AddJob(j.name, j.interval, j.fn); err != nil {
			return nil, fmt.Errorf("failed to schedule %s: %w", j.name, err)
		}
	}

	return sched, nil
}

// sessionKeys returns the securecookie key pair for the session cookie, a
// random hash key is used when none is configured
func sessionKeys(specs *config.EnvSpec, logger logging.LoggerInterface) ([][]byte, error) {
	hashKey := []byte(specs.SessionHashKey)
	if len(hashKey) == 0 {
		logger.Warn("SESSION_HASH_KEY not set, cookies signed by an earlier process will be rejected")
		hashKey = securecookie.GenerateRandomKey(generatedHashKeyBytes)
		if hashKey == nil {
			return nil, errors.New("failed to generate a session hash key")
		}
	}

	if specs.SessionBlockKey == "" {
		return [][]byte{hashKey}, nil
	}

	switch len(specs.SessionBlockKey) {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("SESSION_BLOCK_KEY must be 16, 24 or 32 bytes long, got %d", len(specs.SessionBlockKey))
	}

	return [][]byte{hashKey, []byte(specs.SessionBlockKey)}, nil
}

func redacted(specs config.EnvSpec) config.EnvSpec {
	for _, secret := range []*string{&specs.SessionHashKey, &specs.SessionBlockKey, &specs.DSN} {
		if *secret != "" {
			*secret = "<redacted>"
		}
	}

	return specs
}
