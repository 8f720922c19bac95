// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/canonical/tenant-session-service/migrations"
)

// migrateCmd applies the identity and tenant schema, together with the seed data
var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|status|check] [version]",
	Short:     "Run database migrations",
	Long:      `Run database migrations against the identity and tenant database, the DSN defaults to $DSN`,
	ValidArgs: []string{"up", "down", "status", "check"},
	Args:      migrateArgs,
	RunE:      runMigrate,
}

func migrateArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.RangeArgs(0, 2)(cmd, args); err != nil {
		return err
	}

	if len(args) == 0 {
		return nil
	}

	if err := cobra.OnlyValidArgs(cmd, args[:1]); err != nil {
		return err
	}

	if len(args) == 2 {
		if args[0] != "down" {
			return fmt.Errorf("a target version is only accepted by down")
		}

		if _, err := strconv.ParseInt(args[1], 10, 64); err != nil {
			return fmt.Errorf("invalid target version %q: %w", args[1], err)
		}
	}

	return nil
}

func init() {
	migrateCmd.Flags().String("dsn", "", "PostgreSQL DSN connection string")
	migrateCmd.Flags().StringP("format", "f", "text", "Output format (text or json)")

	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	command := "up"
	if len(args) > 0 {
		command = args[0]
	}

	target := int64(-1)
	if len(args) > 1 {
		target, _ = strconv.ParseInt(args[1], 10, 64)
	}

	dsn, _ := cmd.Flags().GetString("dsn")
	if dsn == "" {
		dsn = os.Getenv("DSN")
	}

	if dsn == "" {
		return fmt.Errorf("no DSN given, set --dsn or $DSN")
	}

	format, _ := cmd.Flags().GetString("format")

	provider, err := newMigrationProvider(cmd.Context(), dsn, format)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	switch command {
	case "down":
		return migrateDown(ctx, provider, target, format, out)
	case "status":
		return migrateStatus(ctx, provider, format, out)
	case "check":
		return migrateCheck(ctx, provider, format, out)
	default:
		results, err := provider.Up(ctx)
		if err != nil {
			return err
		}

		return printResults(results, format, out)
	}
}

func newMigrationProvider(ctx context.Context, dsn, format string) (*goose.Provider, error) {
	config, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("DSN validation failed: %w", err)
	}

	db := stdlib.OpenDB(*config)

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("DB connection failed: %w", err)
	}

	var opts []goose.ProviderOption
	if format == "json" {
		opts = append(opts, goose.WithLogger(goose.NopLogger()))
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.EmbedMigrations, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create goose provider: %w", err)
	}

	return provider, nil
}

func migrateDown(ctx context.Context, provider *goose.Provider, target int64, format string, out io.Writer) error {
	if target >= 0 {
		results, err := provider.DownTo(ctx, target)
		if err != nil {
			return err
		}

		return printResults(results, format, out)
	}

	result, err := provider.Down(ctx)
	if err != nil {
		return err
	}

	return printResults([]*goose.MigrationResult{result}, format, out)
}

func printResults(results []*goose.MigrationResult, format string, out io.Writer) error {
	if results == nil {
		results = []*goose.MigrationResult{}
	}

	if format == "json" {
		return json.NewEncoder(out).Encode(map[string]interface{}{"applied": results})
	}

	for _, r := range results {
		fmt.Fprintln(out, r.String())
	}

	return nil
}

func migrateStatus(ctx context.Context, provider *goose.Provider, format string, out io.Writer) error {
	statuses, err := provider.Status(ctx)
	if err != nil {
		return err
	}

	if format == "json" {
		return json.NewEncoder(out).Encode(statuses)
	}

	fmt.Fprintln(out, "    Applied At                  Migration")
	fmt.Fprintln(out, "    =======================================")
	for _, s := range statuses {
		appliedAt := "Pending"
		if s.State == goose.StateApplied {
			appliedAt = s.AppliedAt.Format(time.RFC3339)
		}
		fmt.Fprintf(out, "    %-24s -- %s\n", appliedAt, s.Source.Path)
	}

	return nil
}

// migrateCheck fails when migrations are pending, so it can gate a rollout
func migrateCheck(ctx context.Context, provider *goose.Provider, format string, out io.Writer) error {
	pending, err := provider.HasPending(ctx)
	if err != nil {
		return fmt.Errorf("failed to check pending migrations: %w", err)
	}

	current, err := provider.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to get the database version: %w", err)
	}

	state := "ok"
	if pending {
		state = "pending"
	}

	if format == "json" {
		if err := json.NewEncoder(out).Encode(map[string]interface{}{"status": state, "version": current}); err != nil {
			return err
		}
	} else if !pending {
		fmt.Fprintf(out, "Database is up to date (version %d)\n", current)
	}

	if pending {
		return fmt.Errorf("migrations are pending: current version %d", current)
	}

	return nil
}
