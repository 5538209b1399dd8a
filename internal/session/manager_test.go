package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newContext(e *echo.Echo, cookies ...*http.Cookie) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == DefaultCookieName {
			return ck
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestManagerStartAndLoad(t *testing.T) {
	e := echo.New()
	store := NewMemoryStore()
	m := NewManager(store, Options{Secret: testSecret})

	c, rec := newContext(e)
	d, err := m.Start(c, 1, "admin", "admin")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), d.ExpiresAt, time.Minute)
	assert.Equal(t, 1, store.Len())

	ck := sessionCookie(t, rec)
	assert.True(t, ck.HttpOnly)
	assert.False(t, ck.Secure)
	assert.Equal(t, http.SameSiteLaxMode, ck.SameSite)
	assert.Equal(t, "/", ck.Path)
	assert.Equal(t, 86400, ck.MaxAge)

	c2, _ := newContext(e, ck)
	sid, got, err := m.Load(c2)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.NotEmpty(t, sid)
	assert.Equal(t, "admin", got.Username)
	assert.Equal(t, int64(1), got.UserID)
}

func TestManagerSecureCookie(t *testing.T) {
	m := NewManager(NewMemoryStore(), Options{Secret: testSecret, Secure: true})
	c, rec := newContext(echo.New())
	_, err := m.Start(c, 1, "admin", "admin")
	require.NoError(t, err)

	ck := sessionCookie(t, rec)
	assert.True(t, ck.Secure)
	assert.Equal(t, http.SameSiteNoneMode, ck.SameSite)
}

func TestManagerRejectsForgedCookie(t *testing.T) {
	e := echo.New()
	store := NewMemoryStore()
	m := NewManager(store, Options{Secret: testSecret})
	other := NewManager(store, Options{Secret: "another-secret"})

	c, rec := newContext(e)
	_, err := other.Start(c, 1, "admin", "admin")
	require.NoError(t, err)

	c2, _ := newContext(e, sessionCookie(t, rec))
	sid, d, err := m.Load(c2)
	require.NoError(t, err)
	assert.Empty(t, sid)
	assert.Nil(t, d)

	c3, _ := newContext(e, &http.Cookie{Name: DefaultCookieName, Value: "garbage"})
	_, d, err = m.Load(c3)
	require.NoError(t, err)
	assert.Nil(t, d)
}

func TestManagerDestroy(t *testing.T) {
	e := echo.New()
	store := NewMemoryStore()
	m := NewManager(store, Options{Secret: testSecret})

	c, rec := newContext(e)
	_, err := m.Start(c, 2, "maria", "manager")
	require.NoError(t, err)
	ck := sessionCookie(t, rec)

	c2, rec2 := newContext(e, ck)
	require.NoError(t, m.Destroy(c2))
	assert.Zero(t, store.Len())
	cleared := sessionCookie(t, rec2)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)

	c3, _ := newContext(e, ck)
	_, d, err := m.Load(c3)
	require.NoError(t, err)
	assert.Nil(t, d)

	// no cookie at all is still a successful logout
	c4, _ := newContext(e)
	require.NoError(t, m.Destroy(c4))
}

func TestManagerTouchExtendsExpiry(t *testing.T) {
	e := echo.New()
	store := NewMemoryStore()
	m := NewManager(store, Options{Secret: testSecret, TTL: time.Hour, Rolling: true})
	assert.True(t, m.Rolling())

	c, rec := newContext(e)
	d, err := m.Start(c, 1, "admin", "admin")
	require.NoError(t, err)

	base := time.Now().Add(30 * time.Minute)
	m.now = func() time.Time { return base }

	c2, _ := newContext(e, sessionCookie(t, rec))
	sid, _, err := m.Load(c2)
	require.NoError(t, err)
	require.NoError(t, m.Touch(c2, sid, d))

	got, err := store.Get(context.Background(), sid)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.WithinDuration(t, base.Add(time.Hour), got.ExpiresAt, time.Second)
}
