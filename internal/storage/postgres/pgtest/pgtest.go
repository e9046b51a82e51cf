// Package pgtest opens the integration-test database named by TEST_DB_DSN.
package pgtest

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/uptask/uptask-backend/config"
	"github.com/uptask/uptask-backend/internal/storage/postgres"
)

const EnvDSN = "TEST_DB_DSN"

// Pool returns a migrated pool, or skips the test when TEST_DB_DSN is unset.
// Tables are shared between packages, so tests must scope their rows with
// fresh ids rather than truncating.
func Pool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv(EnvDSN)
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set, skipping integration test")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, &config.DatabaseConfig{DSN: dsn, MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.Migrate(ctx, pool))
	return pool
}
