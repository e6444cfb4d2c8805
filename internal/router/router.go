package router // package router defines how HTTP routes are registered for the API

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/seatdesk/seat-reservation/internal/handler"
	"github.com/seatdesk/seat-reservation/internal/middleware"
)

// Handlers groups every handler the API mounts so RegisterAPI takes one
// argument instead of nine.
type Handlers struct {
	Auth         *handler.AuthHandler
	Users        *handler.UserHandler
	Rooms        *handler.RoomHandler
	Seats        *handler.SeatHandler
	Slots        *handler.TimeSlotHandler
	Bookings     *handler.BookingHandler
	Reservations *handler.ReservationHandler
	Admin        *handler.AdminHandler
}

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAPI mounts the whole /api surface.  Register and login are
// rate limited per client IP; everything else requires a valid access
// token, and the write half of the catalog plus user management sits
// behind the admin middleware.
func RegisterAPI(e *echo.Echo, h Handlers, jwtSecret string, rdb *redis.Client) {
	// Unauthenticated auth endpoints, rate limited since they are the
	// password-guessing surface.
	authGroup := e.Group("/api/auth")
	authGroup.Use(middleware.RateLimit(rdb, 10, time.Minute))
	authGroup.POST("/register", h.Auth.Register)
	authGroup.POST("/login", h.Auth.Login)

	// Everything below requires a valid access token.
	api := e.Group("/api")
	api.Use(middleware.JWTAuth(jwtSecret))

	api.GET("/auth/me", h.Auth.Me)

	// Room catalog: reads for everyone, writes for admins.
	api.GET("/rooms", h.Rooms.List)
	api.GET("/rooms/locations", h.Rooms.Locations)
	api.GET("/rooms/:id", h.Rooms.Get)
	api.POST("/rooms", h.Rooms.Create, middleware.RequireAdmin)
	api.PUT("/rooms/:id", h.Rooms.Update, middleware.RequireAdmin)
	api.DELETE("/rooms/:id", h.Rooms.Delete, middleware.RequireAdmin)

	// Seat catalog.  The /available lookup must be registered before
	// /:id so Echo does not swallow it as an id.
	api.GET("/seats/available", h.Seats.Available)
	api.GET("/seats", h.Seats.List)
	api.GET("/seats/:id", h.Seats.Get)
	api.POST("/seats", h.Seats.Create, middleware.RequireAdmin)
	api.PUT("/seats/:id", h.Seats.Update, middleware.RequireAdmin)
	api.PATCH("/seats/:id", h.Seats.Update, middleware.RequireAdmin)
	api.DELETE("/seats/:id", h.Seats.Delete, middleware.RequireAdmin)

	// Time slots.
	api.GET("/time-slots/available", h.Slots.Available)
	api.GET("/time-slots", h.Slots.List)
	api.GET("/time-slots/:id", h.Slots.Get)
	api.POST("/time-slots", h.Slots.Create, middleware.RequireAdmin)
	api.PUT("/time-slots/:id", h.Slots.Update, middleware.RequireAdmin)
	api.DELETE("/time-slots/:id", h.Slots.Delete, middleware.RequireAdmin)

	// Free-interval bookings.
	api.POST("/bookings", h.Bookings.Create)
	api.GET("/bookings/user", h.Bookings.ListMine)
	api.GET("/bookings/seat/:id", h.Bookings.ListBySeat, middleware.RequireAdmin)
	api.GET("/bookings/:id", h.Bookings.Get)
	api.PUT("/bookings/:id/status", h.Bookings.UpdateStatus)
	api.PUT("/bookings/:id", h.Bookings.Update)
	api.DELETE("/bookings/:id", h.Bookings.Delete)

	// Slot reservations.  Fixed paths before the :id wildcard.
	api.POST("/reservations", h.Reservations.Create)
	api.GET("/reservations/user", h.Reservations.ListMine)
	api.GET("/reservations/recent", h.Reservations.ListRecent)
	api.GET("/reservations/today-checkin", h.Reservations.ListTodayCheckin)
	api.GET("/reservations/all/recent", h.Reservations.ListRecentAll, middleware.RequireAdmin)
	api.GET("/reservations/stats", h.Reservations.Stats)
	api.GET("/reservations/checkin-stats", h.Reservations.CheckinStats)
	api.GET("/reservations/:id", h.Reservations.Get)
	api.DELETE("/reservations/:id", h.Reservations.Cancel)
	api.POST("/reservations/:id/checkin", h.Reservations.Checkin)

	// User management.  change-password is self-service; the rest is
	// admin only.
	api.PUT("/users/change-password", h.Users.ChangePassword)
	api.GET("/users", h.Users.List, middleware.RequireAdmin)
	api.GET("/users/:id", h.Users.Get, middleware.RequireAdmin)
	api.PUT("/users/:id", h.Users.Update, middleware.RequireAdmin)
	api.PATCH("/users/:id/status", h.Users.UpdateStatus, middleware.RequireAdmin)
	api.PATCH("/users/:id/role", h.Users.UpdateRole, middleware.RequireAdmin)
	api.POST("/users/:id/change-password", h.Users.ResetPassword, middleware.RequireAdmin)
	api.DELETE("/users/:id", h.Users.Delete, middleware.RequireAdmin)

	api.GET("/admin/dashboard-stats", h.Admin.DashboardStats, middleware.RequireAdmin)
}
