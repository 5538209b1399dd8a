package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/kitesurf-admin/internal/handler"
	"github.com/iliyamo/kitesurf-admin/internal/middleware"
	"github.com/iliyamo/kitesurf-admin/internal/model"
)

// Resources bundles the CRUD handlers mounted by RegisterResources.
type Resources struct {
	Clients  *handler.ClientHandler
	Hotels   *handler.HotelHandler
	Trips    *handler.TripHandler
	Bookings *handler.BookingHandler
}

// RegisterResources mounts clients, hotels, trips and bookings on g. Every
// route needs a session; writes need admin or manager, except creating a
// booking which any logged-in user may do.
func RegisterResources(g *echo.Group, r Resources) {
	authed := middleware.RequireAuth()
	staff := middleware.RequireRole(model.RoleAdmin, model.RoleManager)

	g.GET("/clients", r.Clients.List, authed)
	g.GET("/clients/:id", r.Clients.Get, authed)
	g.POST("/clients", r.Clients.Create, staff)
	g.PUT("/clients/:id", r.Clients.Update, staff)
	g.DELETE("/clients/:id", r.Clients.Delete, staff)

	g.GET("/hotels", r.Hotels.List, authed)
	g.GET("/hotels/:id", r.Hotels.Get, authed)
	g.POST("/hotels", r.Hotels.Create, staff)
	g.PUT("/hotels/:id", r.Hotels.Update, staff)
	g.DELETE("/hotels/:id", r.Hotels.Delete, staff)

	g.GET("/trips", r.Trips.List, authed)
	g.GET("/trips/:id", r.Trips.Get, authed)
	g.POST("/trips", r.Trips.Create, staff)
	g.PUT("/trips/:id", r.Trips.Update, staff)
	g.DELETE("/trips/:id", r.Trips.Delete, staff)

	g.GET("/bookings", r.Bookings.List, authed)
	g.GET("/bookings/:id", r.Bookings.Get, authed)
	g.POST("/bookings", r.Bookings.Create, authed)
	g.PUT("/bookings/:id", r.Bookings.Update, staff)
	g.DELETE("/bookings/:id", r.Bookings.Delete, staff)
}

// RegisterUsers mounts user management. Admins only.
func RegisterUsers(g *echo.Group, u *handler.UserHandler) {
	admin := g.Group("/users", middleware.RequireRole(model.RoleAdmin))
	admin.GET("", u.List)
	admin.GET("/:id", u.Get)
	admin.PUT("/:id", u.Update)
	admin.DELETE("/:id", u.Delete)
}
