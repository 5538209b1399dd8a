package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/kitesurf-admin/internal/apperr"
	"github.com/iliyamo/kitesurf-admin/internal/database"
	"github.com/iliyamo/kitesurf-admin/internal/middleware"
	"github.com/iliyamo/kitesurf-admin/internal/model"
	"github.com/iliyamo/kitesurf-admin/internal/repository"
)

// UserHandler is the admin-only account management API. It keeps at least
// one admin around and never lets the seed admin lose its role. The checks
// read current state and then write; two admins demoting each other at the
// same moment can still both succeed.
type UserHandler struct {
	Users *repository.UserRepo
	Log   *zap.Logger
}

func NewUserHandler(users *repository.UserRepo, log *zap.Logger) *UserHandler {
	return &UserHandler{Users: users, Log: log}
}

func (h *UserHandler) List(c echo.Context) error {
	users, err := h.Users.List(c.Request().Context())
	if err != nil {
		return apperr.From(err)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHandler) Get(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return apperr.NotFound("User not found")
	}
	u, err := h.Users.GetByID(c.Request().Context(), id)
	if err != nil {
		return fail(err, "User not found")
	}
	return c.JSON(http.StatusOK, u)
}

func (h *UserHandler) Update(c echo.Context) error {
	var req model.UserUpdate
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Role == "" {
		return apperr.Validation("Username and role are required")
	}
	if !model.ValidRole(req.Role) {
		return apperr.Validation("Invalid role. Must be admin, manager, or user")
	}
	if req.Role == model.RoleAdmin {
		return apperr.Validation("Cannot change role to admin. Only the default admin user can have admin role.")
	}

	id, ok := parseID(c)
	if !ok {
		return apperr.NotFound("User not found")
	}
	ctx := c.Request().Context()
	current, err := h.Users.GetByID(ctx, id)
	if err != nil {
		return fail(err, "User not found")
	}
	if current.Username == database.SeedAdminUsername {
		return apperr.Validation("Cannot change the default admin user's role.")
	}
	if current.Role == model.RoleAdmin {
		admins, err := h.Users.CountByRole(ctx, model.RoleAdmin)
		if err != nil {
			return apperr.From(err)
		}
		if admins <= 1 {
			return apperr.Validation("Cannot change role. At least one admin user is required.")
		}
	}

	err = h.Users.Update(ctx, id, req.Username, req.Role)
	if errors.Is(err, repository.ErrUsernameExists) {
		return apperr.DuplicateUsername()
	}
	if err != nil {
		return fail(err, "User not found")
	}
	h.Log.Info("user updated", zap.Int64("user_id", id), zap.String("role", req.Role))
	return c.JSON(http.StatusOK, echo.Map{"id": id, "username": req.Username, "role": req.Role})
}

func (h *UserHandler) Delete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusOK, message("User deleted successfully"))
	}
	if self, _ := middleware.UserID(c); self == id {
		return apperr.Validation("Cannot delete your own account")
	}

	ctx := c.Request().Context()
	target, err := h.Users.GetByID(ctx, id)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return apperr.From(err)
	}
	if target != nil && target.Role == model.RoleAdmin {
		admins, err := h.Users.CountByRole(ctx, model.RoleAdmin)
		if err != nil {
			return apperr.From(err)
		}
		if admins <= 1 {
			return apperr.Validation("Cannot delete the last admin user")
		}
	}
	if err := h.Users.Delete(ctx, id); err != nil {
		return apperr.From(err)
	}
	h.Log.Info("user deleted", zap.Int64("user_id", id))
	return c.JSON(http.StatusOK, message("User deleted successfully"))
}
