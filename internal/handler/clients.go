package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/kitesurf-admin/internal/apperr"
	"github.com/iliyamo/kitesurf-admin/internal/model"
	"github.com/iliyamo/kitesurf-admin/internal/repository"
)

type ClientHandler struct {
	Clients *repository.ClientRepo
}

func NewClientHandler(clients *repository.ClientRepo) *ClientHandler {
	return &ClientHandler{Clients: clients}
}

func (h *ClientHandler) List(c echo.Context) error {
	out, err := h.Clients.List(c.Request().Context())
	if err != nil {
		return apperr.From(err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ClientHandler) Get(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return apperr.NotFound("Client not found")
	}
	cl, err := h.Clients.GetByID(c.Request().Context(), id)
	if err != nil {
		return fail(err, "Client not found")
	}
	return c.JSON(http.StatusOK, cl)
}

func (h *ClientHandler) Create(c echo.Context) error {
	var in model.ClientInput
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	if err := in.Validate(); err != nil {
		return apperr.Validation(err.Error())
	}
	cl, err := h.Clients.Create(c.Request().Context(), in)
	if err != nil {
		return apperr.From(err)
	}
	return c.JSON(http.StatusOK, cl)
}

func (h *ClientHandler) Update(c echo.Context) error {
	var in model.ClientInput
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	if err := in.Validate(); err != nil {
		return apperr.Validation(err.Error())
	}
	id, ok := parseID(c)
	if !ok {
		return apperr.NotFound("Client not found")
	}
	cl, err := h.Clients.Update(c.Request().Context(), id, in)
	if err != nil {
		return fail(err, "Client not found")
	}
	return c.JSON(http.StatusOK, cl)
}

func (h *ClientHandler) Delete(c echo.Context) error {
	if id, ok := parseID(c); ok {
		if err := h.Clients.Delete(c.Request().Context(), id); err != nil {
			return apperr.From(err)
		}
	}
	return c.JSON(http.StatusOK, message("Client deleted successfully"))
}
