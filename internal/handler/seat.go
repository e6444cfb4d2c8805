package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/seatdesk/seat-reservation/internal/model"
	"github.com/seatdesk/seat-reservation/internal/repository"
)

// SeatHandler serves the seat catalog and the per-slot availability
// lookup.  The room repository is needed to give a clean 404 when a seat
// is created under a missing or retired room.
type SeatHandler struct {
	Seats *repository.SeatRepo
	Rooms *repository.RoomRepo
}

func NewSeatHandler(seats *repository.SeatRepo, rooms *repository.RoomRepo) *SeatHandler {
	if seats == nil || rooms == nil {
		panic("nil repository passed to NewSeatHandler")
	}
	return &SeatHandler{Seats: seats, Rooms: rooms}
}

type seatResponse struct {
	ID          uint64    `json:"id"`
	RoomID      uint64    `json:"roomId"`
	SeatNumber  string    `json:"seatNumber"`
	IsAvailable bool      `json:"isAvailable"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toSeatResponse(s model.Seat) seatResponse {
	return seatResponse{
		ID:          s.ID,
		RoomID:      s.RoomID,
		SeatNumber:  s.SeatNumber,
		IsAvailable: s.IsAvailable,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func toSeatResponses(seats []model.Seat) []seatResponse {
	out := make([]seatResponse, 0, len(seats))
	for _, s := range seats {
		out = append(out, toSeatResponse(s))
	}
	return out
}

// List handles GET /api/seats with an optional roomId query filter.
func (h *SeatHandler) List(c echo.Context) error {
	var roomID uint64
	if raw := c.QueryParam("roomId"); raw != "" {
		var err error
		roomID, err = strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"code": 3001, "message": "invalid roomId"})
		}
	}
	skip, limit := parsePage(c)
	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	seats, err := h.Seats.List(ctx, roomID, skip, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "db error"})
	}
	return c.JSON(http.StatusOK, toSeatResponses(seats))
}

// Available handles GET /api/seats/available?date=YYYY-MM-DD&timeSlotId=...
// and returns in-service seats of active rooms that have no active
// reservation for the given date and slot.
func (h *SeatHandler) Available(c echo.Context) error {
	date, err := parseDate(c.QueryParam("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 3001, "message": "date must be YYYY-MM-DD"})
	}
	slotID := strings.TrimSpace(c.QueryParam("timeSlotId"))
	if slotID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 3001, "message": "timeSlotId is required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	seats, err := h.Seats.ListAvailable(ctx, date, slotID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "db error"})
	}
	return c.JSON(http.StatusOK, toSeatResponses(seats))
}

// Get handles GET /api/seats/:id.
func (h *SeatHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 4001, "message": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	seat, err := h.Seats.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"code": 4001, "message": "seat not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "db error"})
	}
	return c.JSON(http.StatusOK, toSeatResponse(seat))
}

// Create handles POST /api/seats (admin).
func (h *SeatHandler) Create(c echo.Context) error {
	var body struct {
		RoomID     uint64 `json:"roomId"`
		SeatNumber string `json:"seatNumber"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 3001, "message": "invalid request body"})
	}
	body.SeatNumber = strings.TrimSpace(body.SeatNumber)
	if body.RoomID == 0 || body.SeatNumber == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 3001, "message": "roomId and seatNumber are required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	if _, err := h.Rooms.GetByID(ctx, body.RoomID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"code": 4001, "message": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "db error"})
	}
	seat, err := h.Seats.Create(ctx, body.RoomID, body.SeatNumber)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"code": 3005, "message": "seat number already exists in this room"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "could not create seat"})
	}
	return c.JSON(http.StatusCreated, toSeatResponse(seat))
}

// Update handles PUT/PATCH /api/seats/:id (admin).
func (h *SeatHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 4001, "message": "invalid id"})
	}
	var body struct {
		SeatNumber  *string `json:"seatNumber"`
		IsAvailable *bool   `json:"isAvailable"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 3001, "message": "invalid request body"})
	}

	fields := map[string]any{}
	if body.SeatNumber != nil && strings.TrimSpace(*body.SeatNumber) != "" {
		fields["seat_number"] = strings.TrimSpace(*body.SeatNumber)
	}
	if body.IsAvailable != nil {
		fields["is_available"] = *body.IsAvailable
	}
	if len(fields) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 3001, "message": "no fields to update"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	seat, err := h.Seats.Update(ctx, id, fields)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"code": 4001, "message": "seat not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"code": 3005, "message": "seat number already exists in this room"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "could not update seat"})
	}
	return c.JSON(http.StatusOK, toSeatResponse(seat))
}

// Delete handles DELETE /api/seats/:id (admin).  Seats are removed for
// real; reservations referencing them cascade away with the row.
func (h *SeatHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 4001, "message": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	if err := h.Seats.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"code": 4001, "message": "seat not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "could not delete seat"})
	}
	return c.NoContent(http.StatusNoContent)
}
