package session

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/kitesurf-admin/internal/utils"
)

// DefaultCookieName is the cookie the browser client expects.
const DefaultCookieName = "sessionId"

// Options configures the session cookie.
type Options struct {
	CookieName string
	Secret     string
	TTL        time.Duration
	// Secure marks the cookie Secure with SameSite=None, for a frontend
	// served from another origin over HTTPS. Otherwise SameSite=Lax.
	Secure bool
	// Rolling pushes the expiry forward on every authenticated request.
	Rolling bool
}

// Manager ties the session cookie to a Store.
type Manager struct {
	store Store
	opts  Options
	now   func() time.Time
}

func NewManager(store Store, opts Options) *Manager {
	if opts.CookieName == "" {
		opts.CookieName = DefaultCookieName
	}
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	return &Manager{store: store, opts: opts, now: time.Now}
}

// Rolling reports whether Touch should run on authenticated requests.
func (m *Manager) Rolling() bool { return m.opts.Rolling }

// Start creates a new session for the user. The session is saved before the
// cookie is written so the next request from the browser can already see it.
func (m *Manager) Start(c echo.Context, userID int64, username, role string) (Data, error) {
	sid := uuid.NewString()
	d := Data{
		UserID:    userID,
		Username:  username,
		Role:      role,
		ExpiresAt: m.now().Add(m.opts.TTL).UTC(),
	}
	if err := m.store.Save(c.Request().Context(), sid, d); err != nil {
		return Data{}, fmt.Errorf("save session: %w", err)
	}
	token, err := utils.SignSessionID(m.opts.Secret, sid, d.ExpiresAt)
	if err != nil {
		_ = m.store.Destroy(c.Request().Context(), sid)
		return Data{}, fmt.Errorf("sign session: %w", err)
	}
	c.SetCookie(m.cookie(token, d.ExpiresAt))
	return d, nil
}

// Load resolves the request's cookie to a live session. A missing, forged or
// expired cookie yields an empty sid and nil data without an error.
func (m *Manager) Load(c echo.Context) (string, *Data, error) {
	ck, err := c.Cookie(m.opts.CookieName)
	if err != nil || ck.Value == "" {
		return "", nil, nil
	}
	sid, err := utils.ParseSessionID(m.opts.Secret, ck.Value)
	if err != nil {
		return "", nil, nil
	}
	d, err := m.store.Get(c.Request().Context(), sid)
	if err != nil {
		return "", nil, err
	}
	if d == nil {
		return "", nil, nil
	}
	return sid, d, nil
}

// Touch extends a live session by the full TTL and refreshes the cookie.
func (m *Manager) Touch(c echo.Context, sid string, d Data) error {
	d.ExpiresAt = m.now().Add(m.opts.TTL).UTC()
	if err := m.store.Save(c.Request().Context(), sid, d); err != nil {
		return err
	}
	token, err := utils.SignSessionID(m.opts.Secret, sid, d.ExpiresAt)
	if err != nil {
		return err
	}
	c.SetCookie(m.cookie(token, d.ExpiresAt))
	return nil
}

// Destroy removes the session named by the request cookie, if any, and
// clears the cookie. The cookie is cleared even when the store fails.
func (m *Manager) Destroy(c echo.Context) error {
	defer c.SetCookie(m.expiredCookie())
	ck, err := c.Cookie(m.opts.CookieName)
	if err != nil || ck.Value == "" {
		return nil
	}
	sid, err := utils.ParseSessionID(m.opts.Secret, ck.Value)
	if err != nil {
		return nil
	}
	return m.DestroyID(c.Request().Context(), sid)
}

// DestroyID removes a session by id.
func (m *Manager) DestroyID(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	if err := m.store.Destroy(ctx, sid); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

func (m *Manager) cookie(value string, exp time.Time) *http.Cookie {
	ck := &http.Cookie{
		Name:     m.opts.CookieName,
		Value:    value,
		Path:     "/",
		Expires:  exp,
		MaxAge:   int(m.opts.TTL / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if m.opts.Secure {
		ck.Secure = true
		ck.SameSite = http.SameSiteNoneMode
	}
	return ck
}

func (m *Manager) expiredCookie() *http.Cookie {
	ck := m.cookie("", time.Unix(0, 0))
	ck.MaxAge = -1
	return ck
}
