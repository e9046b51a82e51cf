package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/uptask/uptask-backend/config"
	"github.com/uptask/uptask-backend/internal/storage/postgres"
)

var migrateTimeout time.Duration

func init() {
	migrateCmd.Flags().DurationVar(&migrateTimeout, "timeout", time.Minute, "Maximum time to wait for the database")
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the PostgreSQL schema",
	Long: `Apply the users, projects and tasks schema to the database named by
DB_DSN (or DB_HOST, DB_PORT, DB_USER, DB_PASSWORD and DB_NAME).

Statements are idempotent, so running migrate twice is safe.`,
	RunE: runMigrate,
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg := config.FromEnv()
	if cfg.Store.Driver != config.StoreDriverPostgres {
		return fmt.Errorf("migrate needs STORE_DRIVER=%s, got %q", config.StoreDriverPostgres, cfg.Store.Driver)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), migrateTimeout)
	defer cancel()

	pool, err := postgres.NewPool(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date")
	return nil
}
