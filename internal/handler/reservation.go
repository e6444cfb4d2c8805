package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/seatdesk/seat-reservation/internal/cache"
	"github.com/seatdesk/seat-reservation/internal/model"
	"github.com/seatdesk/seat-reservation/internal/queue"
	"github.com/seatdesk/seat-reservation/internal/repository"
)

// statsTTL bounds how stale the cached aggregate endpoints may get.
const statsTTL = 30 * time.Second

// ReservationHandler serves slot-based reservations: the conflict-checked
// create path, the per-user listings, check-in and the aggregate stats.
type ReservationHandler struct {
	Reservations *repository.ReservationRepo
	Seats        *repository.SeatRepo
	Slots        *repository.TimeSlotRepo
	Cache        *cache.Cache

	// Publish emits reservation events to the broker.  Nil disables
	// publishing; failures are logged by the publisher and ignored here.
	Publish func(ctx context.Context, ev queue.ReservationEvent) error
}

func NewReservationHandler(reservations *repository.ReservationRepo, seats *repository.SeatRepo,
	slots *repository.TimeSlotRepo, cch *cache.Cache,
	publish func(ctx context.Context, ev queue.ReservationEvent) error) *ReservationHandler {
	if reservations == nil || seats == nil || slots == nil {
		panic("nil repository passed to NewReservationHandler")
	}
	return &ReservationHandler{
		Reservations: reservations,
		Seats:        seats,
		Slots:        slots,
		Cache:        cch,
		Publish:      publish,
	}
}

// publishEvent emits a broker event for a reservation view without
// blocking the request.
func (h *ReservationHandler) publishEvent(eventType string, v repository.ReservationView) {
	if h.Publish == nil {
		return
	}
	ev := queue.ReservationEvent{
		Type:          eventType,
		ReservationID: v.ID,
		UserID:        v.UserID,
		SeatID:        v.SeatID,
		SeatNumber:    v.SeatNumber,
		Room:          v.Room,
		Location:      v.Location,
		Date:          v.Date,
		TimeSlot:      v.TimeSlot,
		Status:        v.Status,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = h.Publish(ctx, ev)
	}()
}

// Create handles POST /api/reservations.  The friendly pre-check gives a
// clean conflict message; the unique index on active reservations is what
// actually guarantees no double booking under concurrency.
func (h *ReservationHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"code": 2001, "message": "unauthorized"})
	}
	var body struct {
		SeatID     uint64 `json:"seatId"`
		Date       string `json:"date"`
		TimeSlotID string `json:"timeSlotId"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 3001, "message": "invalid request body"})
	}
	body.TimeSlotID = strings.TrimSpace(body.TimeSlotID)
	if body.SeatID == 0 || body.Date == "" || body.TimeSlotID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 3001, "message": "seatId, date and timeSlotId are required"})
	}
	date, err := parseDate(body.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 3001, "message": "date must be YYYY-MM-DD"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	seat, err := h.Seats.GetByID(ctx, body.SeatID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"code": 4001, "message": "seat not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "db error"})
	}
	if !seat.IsAvailable {
		return c.JSON(http.StatusConflict, echo.Map{"code": 4002, "message": "seat is out of service"})
	}
	slot, err := h.Slots.GetByID(ctx, body.TimeSlotID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"code": 4001, "message": "time slot not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "db error"})
	}
	if !slot.IsActive {
		return c.JSON(http.StatusNotFound, echo.Map{"code": 4001, "message": "time slot not found"})
	}

	reserved, err := h.Reservations.IsSeatReserved(ctx, body.SeatID, date, body.TimeSlotID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "db error"})
	}
	if reserved {
		return c.JSON(http.StatusConflict, echo.Map{"code": 4002, "message": "seat is already reserved for this date and time slot"})
	}

	v, err := h.Reservations.Create(ctx, userID, body.SeatID, date, body.TimeSlotID)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"code": 4002, "message": "seat is already reserved for this date and time slot"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "could not create reservation"})
	}

	h.publishEvent(queue.EventReservationCreated, v)
	return c.JSON(http.StatusCreated, v)
}

// ListMine handles GET /api/reservations/user.
func (h *ReservationHandler) ListMine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"code": 2001, "message": "unauthorized"})
	}
	skip, limit := parsePage(c)
	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	views, err := h.Reservations.ListByUser(ctx, userID, skip, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "db error"})
	}
	return c.JSON(http.StatusOK, views)
}

// ListRecent handles GET /api/reservations/recent and returns the
// caller's latest reservations, five by default.
func (h *ReservationHandler) ListRecent(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"code": 2001, "message": "unauthorized"})
	}
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 5
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	views, err := h.Reservations.ListRecentByUser(ctx, userID, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "db error"})
	}
	return c.JSON(http.StatusOK, views)
}

// ListTodayCheckin handles GET /api/reservations/today-checkin and
// returns the caller's reservations for today that can still be checked
// in, ordered by slot start.
func (h *ReservationHandler) ListTodayCheckin(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"code": 2001, "message": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	views, err := h.Reservations.ListTodayCheckin(ctx, userID, time.Now().UTC())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "db error"})
	}
	return c.JSON(http.StatusOK, views)
}

// ListRecentAll handles GET /api/reservations/all/recent (admin).
func (h *ReservationHandler) ListRecentAll(c echo.Context) error {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 20
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	views, err := h.Reservations.ListRecentAll(ctx, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "db error"})
	}
	return c.JSON(http.StatusOK, views)
}

// reservationStats is the payload of GET /api/reservations/stats.
type reservationStats struct {
	ByStatus   []repository.StatItem `json:"byStatus"`
	ByLocation []repository.StatItem `json:"byLocation"`
}

// Stats handles GET /api/reservations/stats.  The result is cached
// briefly since dashboards poll it.
func (h *ReservationHandler) Stats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	var out reservationStats
	if h.Cache.Get(ctx, "stats:reservations", &out) {
		return c.JSON(http.StatusOK, out)
	}

	byStatus, err := h.Reservations.StatsByStatus(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "db error"})
	}
	byLocation, err := h.Reservations.StatsByLocation(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "db error"})
	}
	out = reservationStats{ByStatus: byStatus, ByLocation: byLocation}
	h.Cache.Set(ctx, "stats:reservations", out, statsTTL)
	return c.JSON(http.StatusOK, out)
}

// checkinStats is the payload of GET /api/reservations/checkin-stats.
type checkinStats struct {
	Date      string `json:"date"`
	Total     int    `json:"total"`
	CheckedIn int    `json:"checkedIn"`
}

// CheckinStats handles GET /api/reservations/checkin-stats and reports
// today's check-in progress.
func (h *ReservationHandler) CheckinStats(c echo.Context) error {
	today := time.Now().UTC()
	key := "stats:checkin:" + today.Format("2006-01-02")

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	var out checkinStats
	if h.Cache.Get(ctx, key, &out) {
		return c.JSON(http.StatusOK, out)
	}

	total, checkedIn, err := h.Reservations.CheckinCounts(ctx, today)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "db error"})
	}
	out = checkinStats{Date: today.Format("2006-01-02"), Total: total, CheckedIn: checkedIn}
	h.Cache.Set(ctx, key, out, statsTTL)
	return c.JSON(http.StatusOK, out)
}

// loadOwnedView fetches a reservation view and enforces owner-or-admin
// access.  On failure it writes the error response itself and returns ok
// false, so callers just return nil.
func (h *ReservationHandler) loadOwnedView(c echo.Context, ctx context.Context, id string) (repository.ReservationView, bool) {
	userID, err := getUserID(c)
	if err != nil {
		_ = c.JSON(http.StatusUnauthorized, echo.Map{"code": 2001, "message": "unauthorized"})
		return repository.ReservationView{}, false
	}
	v, err := h.Reservations.GetView(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = c.JSON(http.StatusNotFound, echo.Map{"code": 4001, "message": "reservation not found"})
		} else {
			_ = c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "db error"})
		}
		return repository.ReservationView{}, false
	}
	if v.UserID != userID && !isAdmin(c) {
		_ = c.JSON(http.StatusForbidden, echo.Map{"code": 4004, "message": "not your reservation"})
		return repository.ReservationView{}, false
	}
	return v, true
}

// Get handles GET /api/reservations/:id (owner or admin).
func (h *ReservationHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	v, ok := h.loadOwnedView(c, ctx, c.Param("id"))
	if !ok {
		return nil
	}
	return c.JSON(http.StatusOK, v)
}

// Cancel handles DELETE /api/reservations/:id (owner or admin).  The row
// is removed so the seat frees up immediately; the response echoes the
// reservation with a synthesized cancelled status so clients can render
// what was just cancelled.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	v, ok := h.loadOwnedView(c, ctx, c.Param("id"))
	if !ok {
		return nil
	}
	if err := h.Reservations.Delete(ctx, v.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"code": 4001, "message": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "could not cancel reservation"})
	}
	v.Status = model.ReservationCancelled
	v.UpdatedAt = time.Now().UTC()
	return c.JSON(http.StatusOK, v)
}

// Checkin handles POST /api/reservations/:id/checkin (owner or admin).
// Only a reservation still in status booked can check in.
func (h *ReservationHandler) Checkin(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	v, ok := h.loadOwnedView(c, ctx, c.Param("id"))
	if !ok {
		return nil
	}
	if v.Status != model.ReservationBooked {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 4003, "message": "reservation cannot be checked in"})
	}

	updated, err := h.Reservations.UpdateStatus(ctx, v.ID, model.ReservationCheckedIn)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"code": 4001, "message": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "could not check in"})
	}

	h.publishEvent(queue.EventReservationCheckedIn, updated)
	return c.JSON(http.StatusOK, updated)
}
