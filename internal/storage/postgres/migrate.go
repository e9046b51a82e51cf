package postgres

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schema string

// migrateLockID keys the advisory lock that serializes concurrent migrations.
const migrateLockID int64 = 0x75707461736b

// Migrate applies the idempotent schema, one statement at a time, while
// holding an advisory lock so parallel callers do not race.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("migrate acquire: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", migrateLockID); err != nil {
		return fmt.Errorf("migrate lock: %w", err)
	}
	defer func() {
		_, _ = conn.Exec(context.Background(), "SELECT pg_advisory_unlock($1)", migrateLockID)
	}()

	for i, stmt := range statements(schema) {
		if _, err := conn.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate statement %d: %w", i+1, err)
		}
	}
	return nil
}

func statements(sql string) []string {
	var out []string
	for _, part := range strings.Split(sql, ";") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}
