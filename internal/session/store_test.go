package session

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/kitesurf-admin/internal/database"
	"github.com/iliyamo/kitesurf-admin/internal/database/dbtest"
)

// exerciseStore runs the behaviour every Store must share.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	d, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, d)

	live := Data{UserID: 3, Username: "maria", Role: "manager", ExpiresAt: time.Now().Add(time.Hour).UTC()}
	require.NoError(t, s.Save(ctx, "sid-1", live))

	got, err := s.Get(ctx, "sid-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(3), got.UserID)
	assert.Equal(t, "maria", got.Username)
	assert.Equal(t, "manager", got.Role)

	live.Role = "admin"
	require.NoError(t, s.Save(ctx, "sid-1", live))
	got, err = s.Get(ctx, "sid-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "admin", got.Role)

	require.NoError(t, s.Destroy(ctx, "sid-1"))
	got, err = s.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Nil(t, got)
	require.NoError(t, s.Destroy(ctx, "sid-1"))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	now := time.Now()
	m.now = func() time.Time { return now }

	require.NoError(t, m.Save(ctx, "a", Data{UserID: 1, ExpiresAt: now.Add(time.Minute)}))
	require.NoError(t, m.Save(ctx, "b", Data{UserID: 2, ExpiresAt: now.Add(time.Hour)}))

	now = now.Add(2 * time.Minute)
	assert.Equal(t, 1, m.Sweep())
	assert.Equal(t, 1, m.Len())

	d, err := m.Get(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, d)

	now = now.Add(2 * time.Hour)
	d, err = m.Get(ctx, "b")
	require.NoError(t, err)
	assert.Nil(t, d)
	assert.Zero(t, m.Len())
}

func newSQLStore(t *testing.T, d database.Dialect) *SQLStore {
	t.Helper()
	s := NewSQLStore(dbtest.Open(t, d))
	require.NoError(t, s.Init(context.Background()))
	require.NoError(t, s.Init(context.Background()))
	return s
}

func TestSQLStore(t *testing.T) {
	dbtest.Each(t, func(t *testing.T, d database.Dialect) {
		exerciseStore(t, newSQLStore(t, d))
	})
}

func TestSQLStoreExpiry(t *testing.T) {
	dbtest.Each(t, func(t *testing.T, dialect database.Dialect) {
		ctx := context.Background()
		s := newSQLStore(t, dialect)
		now := time.Now()
		s.now = func() time.Time { return now }

		require.NoError(t, s.Save(ctx, "old", Data{UserID: 1, ExpiresAt: now.Add(time.Minute)}))
		require.NoError(t, s.Save(ctx, "new", Data{UserID: 2, ExpiresAt: now.Add(time.Hour)}))

		now = now.Add(5 * time.Minute)
		n, err := s.Prune(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		d, err := s.Get(ctx, "new")
		require.NoError(t, err)
		require.NotNil(t, d)

		now = now.Add(2 * time.Hour)
		d, err = s.Get(ctx, "new")
		require.NoError(t, err)
		assert.Nil(t, d)
	})
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = rdb.Close() })
	require.NoError(t, rdb.Ping(context.Background()).Err())

	exerciseStore(t, NewRedisStore(rdb, "test:sess:"))
}
