// Package router wires handlers and middleware onto an Echo instance.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iliyamo/kitesurf-admin/internal/config"
	"github.com/iliyamo/kitesurf-admin/internal/database"
	"github.com/iliyamo/kitesurf-admin/internal/handler"
	"github.com/iliyamo/kitesurf-admin/internal/metrics"
	"github.com/iliyamo/kitesurf-admin/internal/middleware"
	"github.com/iliyamo/kitesurf-admin/internal/repository"
	"github.com/iliyamo/kitesurf-admin/internal/service"
	"github.com/iliyamo/kitesurf-admin/internal/session"
)

// Deps is everything New needs to build the server. Redis, Publisher and
// Metrics may be nil.
type Deps struct {
	Config    config.Config
	DB        database.DB
	Sessions  *session.Manager
	Redis     *redis.Client
	Publisher service.EventPublisher
	Metrics   *metrics.Metrics
	Log       *zap.Logger
}

// New builds the Echo instance with the full middleware chain and every
// route registered.
func New(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = middleware.ErrorHandler(d.Log)
	if d.Config.TrustProxy {
		e.IPExtractor = echo.ExtractIPFromXFFHeader()
	}

	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(d.Log))
	if d.Metrics != nil {
		e.Use(middleware.Metrics(d.Metrics))
	}
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     d.Config.FrontendURLs,
		AllowCredentials: true,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(middleware.LoadSession(d.Sessions, d.Log))

	users := repository.NewUserRepo(d.DB)

	RegisterRoutes(e, handler.NewHealthHandler(d.DB), d.Metrics)

	api := e.Group("/api")
	limiter := middleware.NewTokenBucket(d.Config.RateLimit, d.Redis, d.Log)
	RegisterAuth(api, handler.NewAuthHandler(users, d.Sessions, d.Config.BcryptCost, d.Metrics, d.Log), limiter)
	RegisterUsers(api, handler.NewUserHandler(users, d.Log))
	RegisterResources(api, Resources{
		Clients:  handler.NewClientHandler(repository.NewClientRepo(d.DB)),
		Hotels:   handler.NewHotelHandler(repository.NewHotelRepo(d.DB)),
		Trips:    handler.NewTripHandler(repository.NewTripRepo(d.DB)),
		Bookings: handler.NewBookingHandler(repository.NewBookingRepo(d.DB), d.Publisher, d.Metrics, d.Log),
	})
	return e
}

// RegisterRoutes registers the unauthenticated operational endpoints.
func RegisterRoutes(e *echo.Echo, h *handler.HealthHandler, m *metrics.Metrics) {
	e.GET("/healthz", h.Health)
	if m != nil {
		e.GET("/metrics", echo.WrapHandler(m.Handler()))
	}
}

// RegisterAuth registers login, logout, signup and status. Login and signup
// sit behind the rate limiter.
func RegisterAuth(g *echo.Group, a *handler.AuthHandler, limiter echo.MiddlewareFunc) {
	g.POST("/login", a.Login, limiter)
	g.POST("/signup", a.Signup, limiter)
	g.POST("/logout", a.Logout)
	g.GET("/auth/status", a.Status)
}
