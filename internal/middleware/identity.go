package middleware

import "github.com/labstack/echo/v4"

// Context keys set by LoadSession.
const (
	ctxSessionID = "session_id"
	ctxUserID    = "user_id"
	ctxUsername  = "username"
	ctxRole      = "role"
)

// UserID returns the authenticated user's id, or false for anonymous requests.
func UserID(c echo.Context) (int64, bool) {
	id, ok := c.Get(ctxUserID).(int64)
	return id, ok && id > 0
}

// Username returns the authenticated username or "".
func Username(c echo.Context) string {
	s, _ := c.Get(ctxUsername).(string)
	return s
}

// Role returns the session role or "" for anonymous requests.
func Role(c echo.Context) string {
	s, _ := c.Get(ctxRole).(string)
	return s
}

// SessionID returns the current session id or "".
func SessionID(c echo.Context) string {
	s, _ := c.Get(ctxSessionID).(string)
	return s
}
