package middleware

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/kitesurf-admin/internal/model"
	"github.com/iliyamo/kitesurf-admin/internal/session"
)

// LoadSession resolves the session cookie on every request and stores the
// user in the echo context. Requests without a live session pass through
// anonymously; guards further down decide what they may reach.
func LoadSession(m *session.Manager, log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid, d, err := m.Load(c)
			if err != nil {
				// a broken store must not turn public routes into 500s
				log.Warn("session lookup failed", zap.Error(err))
				return next(c)
			}
			if d == nil {
				return next(c)
			}
			role := d.Role
			if role == "" {
				role = model.RoleUser
			}
			c.Set(ctxSessionID, sid)
			c.Set(ctxUserID, d.UserID)
			c.Set(ctxUsername, d.Username)
			c.Set(ctxRole, role)

			if m.Rolling() {
				if err := m.Touch(c, sid, *d); err != nil {
					log.Warn("session refresh failed", zap.Error(err))
				}
			}
			return next(c)
		}
	}
}
