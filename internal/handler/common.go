package handler

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/kitesurf-admin/internal/apperr"
	"github.com/iliyamo/kitesurf-admin/internal/repository"
)

// parseID reads the :id path parameter. Non-numeric ids cannot match a row.
func parseID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// bindJSON decodes the request body into v.
func bindJSON(c echo.Context, v interface{}) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, v); err != nil {
		return apperr.Validation("Invalid request body")
	}
	return nil
}

// fail maps repository errors to the taxonomy, using notFound as the 404
// message.
func fail(err error, notFound string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound(notFound)
	}
	return apperr.From(err)
}

func message(msg string) echo.Map { return echo.Map{"message": msg} }
