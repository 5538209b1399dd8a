package handler

import (
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/kitesurf-admin/internal/apperr"
	"github.com/iliyamo/kitesurf-admin/internal/metrics"
	"github.com/iliyamo/kitesurf-admin/internal/middleware"
	"github.com/iliyamo/kitesurf-admin/internal/model"
	"github.com/iliyamo/kitesurf-admin/internal/repository"
	"github.com/iliyamo/kitesurf-admin/internal/session"
	"github.com/iliyamo/kitesurf-admin/internal/utils"
)

// AuthHandler serves login, logout, signup and the auth status check.
type AuthHandler struct {
	Users      *repository.UserRepo
	Sessions   *session.Manager
	BcryptCost int
	Metrics    *metrics.Metrics
	Log        *zap.Logger
}

func NewAuthHandler(users *repository.UserRepo, sessions *session.Manager, bcryptCost int, m *metrics.Metrics, log *zap.Logger) *AuthHandler {
	return &AuthHandler{Users: users, Sessions: sessions, BcryptCost: bcryptCost, Metrics: m, Log: log}
}

// Login checks the credentials and opens a session. The response is only
// written after the session is stored.
func (h *AuthHandler) Login(c echo.Context) error {
	var req model.Credentials
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if req.Username == "" || req.Password == "" {
		return apperr.Validation("Username and password are required")
	}

	ctx := c.Request().Context()
	u, err := h.Users.GetByUsername(ctx, req.Username)
	if errors.Is(err, repository.ErrNotFound) {
		h.Metrics.Login("invalid")
		return apperr.InvalidCredentials()
	}
	if err != nil {
		h.Metrics.Login("error")
		return apperr.From(err)
	}
	match, err := utils.CheckPassword(u.PasswordHash, req.Password)
	if err != nil {
		h.Metrics.Login("error")
		return apperr.Wrap(err, apperr.KindInternal, err.Error())
	}
	if !match {
		h.Metrics.Login("invalid")
		return apperr.InvalidCredentials()
	}

	// a fresh id on every login; the previous session, if any, is dropped
	if sid := middleware.SessionID(c); sid != "" {
		if err := h.Sessions.DestroyID(ctx, sid); err != nil {
			h.Log.Warn("drop previous session", zap.Error(err))
		}
	}
	if _, err := h.Sessions.Start(c, u.ID, u.Username, u.Role); err != nil {
		h.Metrics.Login("error")
		return apperr.Wrap(err, apperr.KindStore, "Error saving session: "+err.Error())
	}
	h.Metrics.Login("success")
	h.Log.Info("login", zap.Int64("user_id", u.ID), zap.String("role", u.Role))
	return c.JSON(http.StatusOK, echo.Map{
		"message":  "Login successful",
		"username": u.Username,
		"role":     u.Role,
	})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.Sessions.Destroy(c); err != nil {
		return apperr.Wrap(err, apperr.KindStore, "Error logging out")
	}
	return c.JSON(http.StatusOK, message("Logout successful"))
}

// Signup creates an account without logging it in. Only an admin caller may
// pick the manager role; admin can never be requested.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req model.Credentials
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return apperr.Validation("Username and password are required")
	}
	if utf8.RuneCountInString(req.Username) < 3 {
		return apperr.Validation("Username must be at least 3 characters long")
	}
	if utf8.RuneCountInString(req.Password) < 6 {
		return apperr.Validation("Password must be at least 6 characters long")
	}
	requested := strings.ToLower(strings.TrimSpace(req.Role))
	if requested == model.RoleAdmin {
		return apperr.Validation("Cannot sign up with admin role. Only the default admin user can have admin role.")
	}

	ctx := c.Request().Context()
	if _, err := h.Users.GetByUsername(ctx, req.Username); err == nil {
		return apperr.DuplicateUsername()
	} else if !errors.Is(err, repository.ErrNotFound) {
		return apperr.From(err)
	}

	role := model.RoleUser
	if middleware.Role(c) == model.RoleAdmin && (requested == model.RoleManager || requested == model.RoleUser) {
		role = requested
	}
	id, err := h.Users.Create(ctx, req.Username, req.Password, role, h.BcryptCost)
	if errors.Is(err, repository.ErrUsernameExists) {
		return apperr.DuplicateUsername()
	}
	if err != nil {
		return apperr.From(err)
	}
	h.Log.Info("signup", zap.Int64("user_id", id), zap.String("role", role))
	return c.JSON(http.StatusOK, echo.Map{
		"message":  "Account created successfully",
		"username": req.Username,
		"role":     role,
	})
}

// Status never fails; anonymous callers get authenticated=false.
func (h *AuthHandler) Status(c echo.Context) error {
	if _, ok := middleware.UserID(c); !ok {
		return c.JSON(http.StatusOK, echo.Map{"authenticated": false})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"authenticated": true,
		"username":      middleware.Username(c),
		"role":          middleware.Role(c),
	})
}
