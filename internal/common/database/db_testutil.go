package database

import (
	"context"
	"crypto/rand"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/oklog/ulid"
	"github.com/stretchr/testify/require"
)

// TestPostgresUrlEnvVar names the server used by database tests. Tests are skipped when it is unset.
const TestPostgresUrlEnvVar = "LAVA_TEST_POSTGRES_URL"

// WithTestDb creates a scratch database on the test server, applies migrations and runs action against it.
// The database is dropped afterwards.
func WithTestDb(t *testing.T, migrations []Migration, action func(db *pgxpool.Pool)) {
	url := os.Getenv(TestPostgresUrlEnvVar)
	if url == "" {
		t.Skipf("%s is not set", TestPostgresUrlEnvVar)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	admin, err := pgx.Connect(ctx, url)
	require.NoError(t, err)
	defer admin.Close(ctx)

	dbName := "test_" + strings.ToLower(ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String())
	_, err = admin.Exec(ctx, "CREATE DATABASE "+dbName)
	require.NoError(t, err)
	defer func() {
		_, err := admin.Exec(ctx, "DROP DATABASE "+dbName+" WITH (FORCE)")
		if err != nil {
			t.Logf("failed to drop %s: %v", dbName, err)
		}
	}()

	config, err := pgxpool.ParseConfig(url)
	require.NoError(t, err)
	config.ConnConfig.Database = dbName
	db, err := pgxpool.ConnectConfig(ctx, config)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, UpdateDatabase(ctx, db, migrations))
	action(db)
}
