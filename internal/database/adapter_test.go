package database_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/kitesurf-admin/internal/database"
	"github.com/iliyamo/kitesurf-admin/internal/database/dbtest"
	"github.com/iliyamo/kitesurf-admin/internal/utils"
)

func TestOpenPicksSQLiteWithoutURL(t *testing.T) {
	db, err := database.Open(context.Background(), database.Config{SQLitePath: filepath.Join(t.TempDir(), "k.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	assert.Equal(t, database.DialectSQLite, db.Dialect())
}

func TestExecAndQuery(t *testing.T) {
	dbtest.Each(t, func(t *testing.T, d database.Dialect) {
		ctx := context.Background()
		db := dbtest.OpenMigrated(t, d)
		assert.Equal(t, d, db.Dialect())

		res, err := db.Exec(ctx, "INSERT INTO hotels (name, location) VALUES (?, ?)", "Dune Lodge", "Cumbuco")
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.RowsAffected)
		assert.Positive(t, res.InsertedID)

		second, err := db.Exec(ctx, "INSERT INTO hotels (name) VALUES (?)", "Vila Kite")
		require.NoError(t, err)
		assert.Greater(t, second.InsertedID, res.InsertedID)

		row, err := db.QueryOne(ctx, "SELECT * FROM hotels WHERE id = ?", res.InsertedID)
		require.NoError(t, err)
		require.NotNil(t, row)
		assert.Equal(t, res.InsertedID, row.Int64("id"))
		assert.Equal(t, "Dune Lodge", row.String("name"))
		assert.Nil(t, row.NullString("pix"))
		assert.NotNil(t, row.Time("created_at"))

		// a quoted question mark is data, not a parameter
		row, err = db.QueryOne(ctx, "SELECT '?' AS mark, name FROM hotels WHERE id = ?", second.InsertedID)
		require.NoError(t, err)
		require.NotNil(t, row)
		assert.Equal(t, "?", row.String("mark"))
		assert.Equal(t, "Vila Kite", row.String("name"))

		row, err = db.QueryOne(ctx, "SELECT * FROM hotels WHERE id = ?", second.InsertedID+100)
		require.NoError(t, err)
		assert.Nil(t, row)

		rows, err := db.QueryAll(ctx, "SELECT * FROM hotels ORDER BY name DESC")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "Vila Kite", rows[0].String("name"))

		rows, err = db.QueryAll(ctx, "SELECT * FROM clients")
		require.NoError(t, err)
		assert.NotNil(t, rows)
		assert.Empty(t, rows)

		res, err = db.Exec(ctx, "UPDATE hotels SET location = ? WHERE location IS NULL OR location = ?", "Prea", "Cumbuco")
		require.NoError(t, err)
		assert.Equal(t, int64(2), res.RowsAffected)
		assert.Zero(t, res.InsertedID)

		res, err = db.Exec(ctx, "UPDATE hotels SET name = ? WHERE id = ?", "Other", 999)
		require.NoError(t, err)
		assert.Zero(t, res.RowsAffected)

		res, err = db.Exec(ctx, "DELETE FROM hotels WHERE id = ?", second.InsertedID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.RowsAffected)

		require.NoError(t, db.Ping(ctx))
	})
}

func TestPostgresKeepsExplicitReturning(t *testing.T) {
	ctx := context.Background()
	db := dbtest.OpenMigrated(t, database.DialectPostgres)

	res, err := db.Exec(ctx, "INSERT INTO clients (name) VALUES (?) RETURNING id", "Ana")
	require.NoError(t, err)
	assert.Positive(t, res.InsertedID)
	assert.Equal(t, int64(1), res.RowsAffected)
}

func TestDateColumns(t *testing.T) {
	dbtest.Each(t, func(t *testing.T, d database.Dialect) {
		ctx := context.Background()
		db := dbtest.OpenMigrated(t, d)

		res, err := db.Exec(ctx,
			"INSERT INTO trips (name, start_date, end_date, price) VALUES (?, ?, ?, ?)",
			"Spring Camp", "2024-04-01", "2024-04-08", 1250.5)
		require.NoError(t, err)

		row, err := db.QueryOne(ctx, "SELECT * FROM trips WHERE id = ?", res.InsertedID)
		require.NoError(t, err)
		require.NotNil(t, row)
		start := row.Date("start_date")
		require.NotNil(t, start)
		assert.Equal(t, "2024-04-01", *start)
		assert.Equal(t, 1250.5, row.Float64("price"))
		assert.Nil(t, row.NullInt64("hotel_id"))
	})
}

func TestStoreErrorWrapsDriverFailure(t *testing.T) {
	dbtest.Each(t, func(t *testing.T, d database.Dialect) {
		db := dbtest.OpenMigrated(t, d)

		_, err := db.Exec(context.Background(), "INSERT INTO nowhere (a) VALUES (?)", 1)
		require.Error(t, err)
		var se *database.StoreError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, "exec", se.Op)
		assert.Contains(t, se.Query, "nowhere")
		assert.NotNil(t, errors.Unwrap(err))

		_, err = db.QueryAll(context.Background(), "SELECT * FROM nowhere")
		require.True(t, errors.As(err, &se))
		assert.Equal(t, "query", se.Op)
	})
}

func TestMigrateIsIdempotent(t *testing.T) {
	dbtest.Each(t, func(t *testing.T, d database.Dialect) {
		ctx := context.Background()
		db := dbtest.OpenMigrated(t, d)

		_, err := db.Exec(ctx, "INSERT INTO clients (name, cpf) VALUES (?, ?)", "Ana", "123")
		require.NoError(t, err)
		require.NoError(t, database.Migrate(ctx, db))

		rows, err := db.QueryAll(ctx, "SELECT * FROM clients")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "123", rows[0].String("cpf"))
	})
}

var legacyHotels = map[database.Dialect]string{
	database.DialectSQLite: `CREATE TABLE hotels (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    location TEXT,
    address TEXT,
    phone TEXT,
    email TEXT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
)`,
	database.DialectPostgres: `CREATE TABLE hotels (
    id SERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    location TEXT,
    address TEXT,
    phone TEXT,
    email TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`,
}

func TestMigrateAddsMissingColumns(t *testing.T) {
	dbtest.Each(t, func(t *testing.T, d database.Dialect) {
		ctx := context.Background()
		db := dbtest.Open(t, d)

		_, err := db.Exec(ctx, legacyHotels[d])
		require.NoError(t, err)
		_, err = db.Exec(ctx, "INSERT INTO hotels (name) VALUES (?)", "Old")
		require.NoError(t, err)

		require.NoError(t, database.Migrate(ctx, db))
		require.NoError(t, database.Migrate(ctx, db))

		_, err = db.Exec(ctx, "INSERT INTO hotels (name, website, pix, notes) VALUES (?, ?, ?, ?)", "New", "w", "p", "n")
		require.NoError(t, err)
		rows, err := db.QueryAll(ctx, "SELECT name, pix FROM hotels ORDER BY id")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Nil(t, rows[0].NullString("pix"))
		assert.Equal(t, "p", rows[1].String("pix"))
	})
}

func TestEnsureSeedAdmin(t *testing.T) {
	dbtest.Each(t, func(t *testing.T, d database.Dialect) {
		ctx := context.Background()
		db := dbtest.OpenMigrated(t, d)

		outcome, err := database.EnsureSeedAdmin(ctx, db, "password", 4)
		require.NoError(t, err)
		assert.Equal(t, database.SeedCreated, outcome)

		row, err := db.QueryOne(ctx, "SELECT * FROM users WHERE username = ?", database.SeedAdminUsername)
		require.NoError(t, err)
		require.NotNil(t, row)
		assert.Equal(t, "admin", row.String("role"))
		ok, err := utils.CheckPassword(row.String("password"), "password")
		require.NoError(t, err)
		assert.True(t, ok)

		outcome, err = database.EnsureSeedAdmin(ctx, db, "password", 4)
		require.NoError(t, err)
		assert.Equal(t, database.SeedUnchanged, outcome)

		_, err = db.Exec(ctx, "UPDATE users SET role = 'user' WHERE username = ?", database.SeedAdminUsername)
		require.NoError(t, err)
		outcome, err = database.EnsureSeedAdmin(ctx, db, "changed", 4)
		require.NoError(t, err)
		assert.Equal(t, database.SeedRoleRestored, outcome)

		row, err = db.QueryOne(ctx, "SELECT * FROM users WHERE username = ?", database.SeedAdminUsername)
		require.NoError(t, err)
		assert.Equal(t, "admin", row.String("role"))
		// restoring the role must not touch the stored password
		ok, err = utils.CheckPassword(row.String("password"), "password")
		require.NoError(t, err)
		assert.True(t, ok)
	})
}
