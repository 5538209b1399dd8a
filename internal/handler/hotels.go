package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/kitesurf-admin/internal/apperr"
	"github.com/iliyamo/kitesurf-admin/internal/model"
	"github.com/iliyamo/kitesurf-admin/internal/repository"
)

type HotelHandler struct {
	Hotels *repository.HotelRepo
}

func NewHotelHandler(hotels *repository.HotelRepo) *HotelHandler {
	return &HotelHandler{Hotels: hotels}
}

func (h *HotelHandler) List(c echo.Context) error {
	out, err := h.Hotels.List(c.Request().Context())
	if err != nil {
		return apperr.From(err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *HotelHandler) Get(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return apperr.NotFound("Hotel not found")
	}
	ht, err := h.Hotels.GetByID(c.Request().Context(), id)
	if err != nil {
		return fail(err, "Hotel not found")
	}
	return c.JSON(http.StatusOK, ht)
}

func (h *HotelHandler) Create(c echo.Context) error {
	var in model.HotelInput
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	if err := in.Validate(); err != nil {
		return apperr.Validation(err.Error())
	}
	ht, err := h.Hotels.Create(c.Request().Context(), in)
	if err != nil {
		return apperr.From(err)
	}
	return c.JSON(http.StatusOK, ht)
}

func (h *HotelHandler) Update(c echo.Context) error {
	var in model.HotelInput
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	if err := in.Validate(); err != nil {
		return apperr.Validation(err.Error())
	}
	id, ok := parseID(c)
	if !ok {
		return apperr.NotFound("Hotel not found")
	}
	ht, err := h.Hotels.Update(c.Request().Context(), id, in)
	if err != nil {
		return fail(err, "Hotel not found")
	}
	return c.JSON(http.StatusOK, ht)
}

func (h *HotelHandler) Delete(c echo.Context) error {
	if id, ok := parseID(c); ok {
		if err := h.Hotels.Delete(c.Request().Context(), id); err != nil {
			return apperr.From(err)
		}
	}
	return c.JSON(http.StatusOK, message("Hotel deleted successfully"))
}
