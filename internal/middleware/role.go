package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/kitesurf-admin/internal/apperr"
)

// RequireAuth rejects requests without a session with 401.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := UserID(c); !ok {
				return apperr.Unauthorized()
			}
			return next(c)
		}
	}
}

// RequireRole admits only sessions whose role is listed. Missing sessions
// get 401, other roles 403. Roles are compared literally; admin does not
// imply manager.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := UserID(c); !ok {
				return apperr.Unauthorized()
			}
			if !allowed[Role(c)] {
				return apperr.Forbidden()
			}
			return next(c)
		}
	}
}
