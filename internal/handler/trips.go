package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/kitesurf-admin/internal/apperr"
	"github.com/iliyamo/kitesurf-admin/internal/model"
	"github.com/iliyamo/kitesurf-admin/internal/repository"
)

// TripHandler rejects negative prices and end dates before start dates.
type TripHandler struct {
	Trips *repository.TripRepo
}

func NewTripHandler(trips *repository.TripRepo) *TripHandler {
	return &TripHandler{Trips: trips}
}

func (h *TripHandler) List(c echo.Context) error {
	out, err := h.Trips.List(c.Request().Context())
	if err != nil {
		return apperr.From(err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *TripHandler) Get(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return apperr.NotFound("Trip not found")
	}
	tr, err := h.Trips.GetByID(c.Request().Context(), id)
	if err != nil {
		return fail(err, "Trip not found")
	}
	return c.JSON(http.StatusOK, tr)
}

func (h *TripHandler) Create(c echo.Context) error {
	var in model.TripInput
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	if err := in.Validate(); err != nil {
		return apperr.Validation(err.Error())
	}
	tr, err := h.Trips.Create(c.Request().Context(), in)
	if err != nil {
		return apperr.From(err)
	}
	return c.JSON(http.StatusOK, tr)
}

func (h *TripHandler) Update(c echo.Context) error {
	var in model.TripInput
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	if err := in.Validate(); err != nil {
		return apperr.Validation(err.Error())
	}
	id, ok := parseID(c)
	if !ok {
		return apperr.NotFound("Trip not found")
	}
	tr, err := h.Trips.Update(c.Request().Context(), id, in)
	if err != nil {
		return fail(err, "Trip not found")
	}
	return c.JSON(http.StatusOK, tr)
}

func (h *TripHandler) Delete(c echo.Context) error {
	if id, ok := parseID(c); ok {
		if err := h.Trips.Delete(c.Request().Context(), id); err != nil {
			return apperr.From(err)
		}
	}
	return c.JSON(http.StatusOK, message("Trip deleted successfully"))
}
