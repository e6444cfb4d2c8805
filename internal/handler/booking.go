package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/seatdesk/seat-reservation/internal/model"
	"github.com/seatdesk/seat-reservation/internal/repository"
)

// BookingHandler serves free-interval bookings of seats.  Regular users
// operate on their own bookings; admins can touch any.
type BookingHandler struct {
	Bookings *repository.BookingRepo
	Seats    *repository.SeatRepo
}

func NewBookingHandler(bookings *repository.BookingRepo, seats *repository.SeatRepo) *BookingHandler {
	if bookings == nil || seats == nil {
		panic("nil repository passed to NewBookingHandler")
	}
	return &BookingHandler{Bookings: bookings, Seats: seats}
}

type bookingResponse struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"userId"`
	SeatID    uint64    `json:"seatId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toBookingResponse(b model.Booking) bookingResponse {
	return bookingResponse{
		ID:        b.ID,
		UserID:    b.UserID,
		SeatID:    b.SeatID,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Status:    b.Status,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func toBookingResponses(bookings []model.Booking) []bookingResponse {
	out := make([]bookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResponse(b))
	}
	return out
}

// loadOwned fetches a booking and enforces owner-or-admin access.  On
// failure it writes the error response itself and returns ok false, so
// callers just return nil.
func (h *BookingHandler) loadOwned(c echo.Context, ctx context.Context, id uint64) (model.Booking, bool) {
	userID, err := getUserID(c)
	if err != nil {
		_ = c.JSON(http.StatusUnauthorized, echo.Map{"code": 2001, "message": "unauthorized"})
		return model.Booking{}, false
	}
	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = c.JSON(http.StatusNotFound, echo.Map{"code": 4001, "message": "booking not found"})
		} else {
			_ = c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "db error"})
		}
		return model.Booking{}, false
	}
	if b.UserID != userID && !isAdmin(c) {
		_ = c.JSON(http.StatusForbidden, echo.Map{"code": 4004, "message": "not your booking"})
		return model.Booking{}, false
	}
	return b, true
}

// Create handles POST /api/bookings.  Times are RFC 3339 and stored in
// UTC; the booked interval must be non-empty.
func (h *BookingHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"code": 2001, "message": "unauthorized"})
	}
	var body struct {
		SeatID    uint64    `json:"seatId"`
		StartTime time.Time `json:"startTime"`
		EndTime   time.Time `json:"endTime"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 3001, "message": "invalid request body"})
	}
	if body.SeatID == 0 || body.StartTime.IsZero() || body.EndTime.IsZero() {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 3001, "message": "seatId, startTime and endTime are required"})
	}
	if !body.EndTime.After(body.StartTime) {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 3001, "message": "endTime must be after startTime"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	if _, err := h.Seats.GetByID(ctx, body.SeatID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"code": 4001, "message": "seat not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "db error"})
	}

	b, err := h.Bookings.Create(ctx, userID, body.SeatID, body.StartTime, body.EndTime)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "could not create booking"})
	}
	return c.JSON(http.StatusCreated, toBookingResponse(b))
}

// ListMine handles GET /api/bookings/user.
func (h *BookingHandler) ListMine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"code": 2001, "message": "unauthorized"})
	}
	skip, limit := parsePage(c)
	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	bookings, err := h.Bookings.ListByUser(ctx, userID, skip, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "db error"})
	}
	return c.JSON(http.StatusOK, toBookingResponses(bookings))
}

// ListBySeat handles GET /api/bookings/seat/:id (admin).
func (h *BookingHandler) ListBySeat(c echo.Context) error {
	seatID, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 4001, "message": "invalid id"})
	}
	skip, limit := parsePage(c)
	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	bookings, err := h.Bookings.ListBySeat(ctx, seatID, skip, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "db error"})
	}
	return c.JSON(http.StatusOK, toBookingResponses(bookings))
}

// Get handles GET /api/bookings/:id (owner or admin).
func (h *BookingHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 4001, "message": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	b, ok := h.loadOwned(c, ctx, id)
	if !ok {
		return nil
	}
	return c.JSON(http.StatusOK, toBookingResponse(b))
}

// Update handles PUT /api/bookings/:id (owner or admin) and reschedules
// the booked interval.
func (h *BookingHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 4001, "message": "invalid id"})
	}
	var body struct {
		StartTime *time.Time `json:"startTime"`
		EndTime   *time.Time `json:"endTime"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 3001, "message": "invalid request body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	cur, ok := h.loadOwned(c, ctx, id)
	if !ok {
		return nil
	}
	if cur.Status == model.BookingCancelled || cur.Status == model.BookingCompleted {
		return c.JSON(http.StatusConflict, echo.Map{"code": 4003, "message": "booking can no longer be rescheduled"})
	}

	start, end := cur.StartTime, cur.EndTime
	fields := map[string]any{}
	if body.StartTime != nil {
		start = body.StartTime.UTC()
		fields["start_time"] = start
	}
	if body.EndTime != nil {
		end = body.EndTime.UTC()
		fields["end_time"] = end
	}
	if len(fields) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 3001, "message": "no fields to update"})
	}
	if !end.After(start) {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 3001, "message": "endTime must be after startTime"})
	}

	b, err := h.Bookings.Update(ctx, id, fields)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "could not update booking"})
	}
	return c.JSON(http.StatusOK, toBookingResponse(b))
}

// UpdateStatus handles PUT /api/bookings/:id/status (owner or admin).
func (h *BookingHandler) UpdateStatus(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 4001, "message": "invalid id"})
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 3001, "message": "invalid request body"})
	}
	if !model.ValidBookingStatus(body.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 3001, "message": "unknown booking status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	cur, ok := h.loadOwned(c, ctx, id)
	if !ok {
		return nil
	}
	// Terminal states stay terminal.
	if cur.Status == model.BookingCancelled || cur.Status == model.BookingCompleted {
		return c.JSON(http.StatusConflict, echo.Map{"code": 4003, "message": "booking status can no longer change"})
	}

	b, err := h.Bookings.UpdateStatus(ctx, id, body.Status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "could not update booking"})
	}
	return c.JSON(http.StatusOK, toBookingResponse(b))
}

// Delete handles DELETE /api/bookings/:id (owner or admin).
func (h *BookingHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 4001, "message": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	if _, ok := h.loadOwned(c, ctx, id); !ok {
		return nil
	}
	if err := h.Bookings.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"code": 4001, "message": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "could not delete booking"})
	}
	return c.NoContent(http.StatusNoContent)
}
