// Package testdb opens migrated databases for tests.
package testdb

import (
	"context"
	"testing"
	"time"
	"todolist/helper"
	"todolist/infras/database"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const migrationTable = "schema_migrations"

// SQLite returns an in-memory database with every migration applied. It is
// closed when the test finishes.
func SQLite(t testing.TB) *database.Connection {
	t.Helper()

	conn, err := database.NewSQLite(":memory:")
	require.NoError(t, err)

	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, helper.Apply(conn, migrationTable, helper.ActionUp))

	return conn
}

// Postgres starts a disposable PostgreSQL container and migrates it. The test
// is skipped in -short mode or when no container runtime is reachable.
func Postgres(t *testing.T) *database.Connection {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}

	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("todolist"),
		postgres.WithUsername("todolist"),
		postgres.WithPassword("todolist"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	testcontainers.CleanupContainer(t, pgContainer)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := database.CreatePostgresConnection("test", dsn, 3, 1)
	require.NoError(t, err)

	conn := &database.Connection{Driver: database.DriverPostgres, Read: db, Write: db}
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, helper.Apply(conn, migrationTable, helper.ActionUp))

	return conn
}
