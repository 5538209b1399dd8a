// Package dbtest opens throwaway databases for tests on every supported
// dialect. Postgres runs only when POSTGRES_TEST_URL is set; each test gets
// its own schema, dropped on cleanup.
package dbtest

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/kitesurf-admin/internal/database"
)

// PostgresURLEnv enables the Postgres variants.
const PostgresURLEnv = "POSTGRES_TEST_URL"

// Dialects lists the backends Each iterates over.
var Dialects = []database.Dialect{database.DialectSQLite, database.DialectPostgres}

// Each runs fn as a subtest per dialect.
func Each(t *testing.T, fn func(t *testing.T, d database.Dialect)) {
	t.Helper()
	for _, d := range Dialects {
		d := d
		t.Run(string(d), func(t *testing.T) { fn(t, d) })
	}
}

// Open returns an empty database. Postgres tests are skipped when
// POSTGRES_TEST_URL is unset.
func Open(t *testing.T, d database.Dialect) database.DB {
	t.Helper()
	ctx := context.Background()
	if d == database.DialectSQLite {
		db, err := database.OpenSQLite(ctx, filepath.Join(t.TempDir(), "test.db"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })
		return db
	}

	base := os.Getenv(PostgresURLEnv)
	if base == "" {
		t.Skipf("%s not set", PostgresURLEnv)
	}
	admin, err := database.OpenPostgres(ctx, base, database.PoolConfig{MaxConns: 2})
	require.NoError(t, err)

	schema := "kt_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
	_, err = admin.Exec(ctx, "CREATE SCHEMA "+schema)
	require.NoError(t, err)

	db, err := database.OpenPostgres(ctx, withSearchPath(base, schema), database.PoolConfig{MaxConns: 4})
	if err != nil {
		_, _ = admin.Exec(ctx, "DROP SCHEMA "+schema+" CASCADE")
		_ = admin.Close()
		require.NoError(t, err)
	}
	t.Cleanup(func() {
		_ = db.Close()
		_, _ = admin.Exec(context.Background(), "DROP SCHEMA "+schema+" CASCADE")
		_ = admin.Close()
	})
	return db
}

// OpenMigrated returns a database with the application schema in place.
func OpenMigrated(t *testing.T, d database.Dialect) database.DB {
	t.Helper()
	db := Open(t, d)
	require.NoError(t, database.Migrate(context.Background(), db))
	return db
}

// withSearchPath points new connections at schema. Both URL and
// keyword/value connection strings are accepted.
func withSearchPath(conn, schema string) string {
	if strings.HasPrefix(conn, "postgres://") || strings.HasPrefix(conn, "postgresql://") {
		u, err := url.Parse(conn)
		if err == nil {
			q := u.Query()
			q.Set("search_path", schema)
			u.RawQuery = q.Encode()
			return u.String()
		}
	}
	return conn + " search_path=" + schema
}
