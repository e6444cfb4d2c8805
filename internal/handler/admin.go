package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/seatdesk/seat-reservation/internal/cache"
	"github.com/seatdesk/seat-reservation/internal/repository"
)

// AdminHandler serves the dashboard aggregate endpoint.
type AdminHandler struct {
	Users        *repository.UserRepo
	Seats        *repository.SeatRepo
	Reservations *repository.ReservationRepo
	Cache        *cache.Cache
}

func NewAdminHandler(users *repository.UserRepo, seats *repository.SeatRepo,
	reservations *repository.ReservationRepo, cch *cache.Cache) *AdminHandler {
	if users == nil || seats == nil || reservations == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{Users: users, Seats: seats, Reservations: reservations, Cache: cch}
}

// dashboardStats is the payload of GET /api/admin/dashboard-stats.
type dashboardStats struct {
	Users            int                   `json:"users"`
	Seats            int                   `json:"seats"`
	Reservations     int                   `json:"reservations"`
	ByStatus         []repository.StatItem `json:"reservationsByStatus"`
	TodayTotal       int                   `json:"todayReservations"`
	TodayCheckedIn   int                   `json:"todayCheckedIn"`
	TodayCheckinRate float64               `json:"todayCheckinRate"`
}

// checkinRate is the checked-in share of today's reservations, 0 when
// there are none.
func checkinRate(total, checkedIn int) float64 {
	if total == 0 {
		return 0
	}
	return float64(checkedIn) / float64(total)
}

// DashboardStats handles GET /api/admin/dashboard-stats (admin).  One
// payload feeds the whole dashboard so the frontend makes a single call;
// the result is cached briefly like the other aggregates.
func (h *AdminHandler) DashboardStats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	var out dashboardStats
	if h.Cache.Get(ctx, "stats:dashboard", &out) {
		return c.JSON(http.StatusOK, out)
	}

	users, err := h.Users.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "db error"})
	}
	seats, err := h.Seats.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "db error"})
	}
	byStatus, err := h.Reservations.StatsByStatus(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "db error"})
	}
	total := 0
	for _, it := range byStatus {
		total += it.Total
	}
	todayTotal, todayCheckedIn, err := h.Reservations.CheckinCounts(ctx, time.Now().UTC())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "db error"})
	}

	out = dashboardStats{
		Users:            users,
		Seats:            seats,
		Reservations:     total,
		ByStatus:         byStatus,
		TodayTotal:       todayTotal,
		TodayCheckedIn:   todayCheckedIn,
		TodayCheckinRate: checkinRate(todayTotal, todayCheckedIn),
	}
	h.Cache.Set(ctx, "stats:dashboard", out, statsTTL)
	return c.JSON(http.StatusOK, out)
}
