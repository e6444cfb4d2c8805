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

// TimeSlotHandler serves the slot catalog and the per-seat availability
// lookup.
type TimeSlotHandler struct {
	Slots *repository.TimeSlotRepo
}

func NewTimeSlotHandler(slots *repository.TimeSlotRepo) *TimeSlotHandler {
	if slots == nil {
		panic("nil repository passed to NewTimeSlotHandler")
	}
	return &TimeSlotHandler{Slots: slots}
}

type timeSlotResponse struct {
	ID          string    `json:"id"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Interval    string    `json:"interval"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toTimeSlotResponse(t model.TimeSlot) timeSlotResponse {
	return timeSlotResponse{
		ID:          t.ID,
		StartTime:   t.StartTime,
		EndTime:     t.EndTime,
		Name:        t.Name,
		Description: t.Description,
		Interval:    t.Interval(),
		IsActive:    t.IsActive,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTimeSlotResponses(slots []model.TimeSlot) []timeSlotResponse {
	out := make([]timeSlotResponse, 0, len(slots))
	for _, t := range slots {
		out = append(out, toTimeSlotResponse(t))
	}
	return out
}

// validClock reports whether s is a wall-clock time in HH:MM form.
func validClock(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil && len(s) == 5
}

// List handles GET /api/time-slots and returns active slots ordered by
// start time.
func (h *TimeSlotHandler) List(c echo.Context) error {
	skip, limit := parsePage(c)
	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	slots, err := h.Slots.List(ctx, skip, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "db error"})
	}
	return c.JSON(http.StatusOK, toTimeSlotResponses(slots))
}

// Available handles GET /api/time-slots/available?date=YYYY-MM-DD&seatId=...
// and returns active slots the seat is free in on that date.  The date is
// part of the filter; a reservation on another day never blocks a slot.
func (h *TimeSlotHandler) Available(c echo.Context) error {
	date, err := parseDate(c.QueryParam("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 3001, "message": "date must be YYYY-MM-DD"})
	}
	seatID, err := strconv.ParseUint(c.QueryParam("seatId"), 10, 64)
	if err != nil || seatID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 3001, "message": "seatId is required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	slots, err := h.Slots.ListAvailableForSeat(ctx, date, seatID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "db error"})
	}
	return c.JSON(http.StatusOK, toTimeSlotResponses(slots))
}

// Get handles GET /api/time-slots/:id.
func (h *TimeSlotHandler) Get(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	slot, err := h.Slots.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"code": 4001, "message": "time slot not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "db error"})
	}
	return c.JSON(http.StatusOK, toTimeSlotResponse(slot))
}

// Create handles POST /api/time-slots (admin).
func (h *TimeSlotHandler) Create(c echo.Context) error {
	var body struct {
		StartTime   string  `json:"startTime"`
		EndTime     string  `json:"endTime"`
		Name        string  `json:"name"`
		Description *string `json:"description"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 3001, "message": "invalid request body"})
	}
	body.Name = strings.TrimSpace(body.Name)
	switch {
	case body.Name == "":
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 3001, "message": "name is required"})
	case !validClock(body.StartTime) || !validClock(body.EndTime):
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 3001, "message": "startTime and endTime must be HH:MM"})
	case body.StartTime >= body.EndTime:
		// HH:MM strings order lexicographically the same as clock times.
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 3001, "message": "startTime must be before endTime"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	slot, err := h.Slots.Create(ctx, body.StartTime, body.EndTime, body.Name, body.Description)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "could not create time slot"})
	}
	return c.JSON(http.StatusCreated, toTimeSlotResponse(slot))
}

// Update handles PUT /api/time-slots/:id (admin).
func (h *TimeSlotHandler) Update(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	var body struct {
		StartTime   *string `json:"startTime"`
		EndTime     *string `json:"endTime"`
		Name        *string `json:"name"`
		Description *string `json:"description"`
		IsActive    *bool   `json:"isActive"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 3001, "message": "invalid request body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	cur, err := h.Slots.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"code": 4001, "message": "time slot not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "db error"})
	}

	// Interval fields are validated against the merged result so a
	// request changing only one bound cannot invert the interval.
	start, end := cur.StartTime, cur.EndTime
	fields := map[string]any{}
	if body.StartTime != nil {
		if !validClock(*body.StartTime) {
			return c.JSON(http.StatusBadRequest, echo.Map{"code": 3001, "message": "startTime must be HH:MM"})
		}
		start = *body.StartTime
		fields["start_time"] = start
	}
	if body.EndTime != nil {
		if !validClock(*body.EndTime) {
			return c.JSON(http.StatusBadRequest, echo.Map{"code": 3001, "message": "endTime must be HH:MM"})
		}
		end = *body.EndTime
		fields["end_time"] = end
	}
	if start >= end {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 3001, "message": "startTime must be before endTime"})
	}
	if body.Name != nil && strings.TrimSpace(*body.Name) != "" {
		fields["name"] = strings.TrimSpace(*body.Name)
	}
	if body.Description != nil {
		fields["description"] = *body.Description
	}
	if body.IsActive != nil {
		fields["is_active"] = *body.IsActive
	}
	if len(fields) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 3001, "message": "no fields to update"})
	}

	slot, err := h.Slots.Update(ctx, id, fields)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "could not update time slot"})
	}
	return c.JSON(http.StatusOK, toTimeSlotResponse(slot))
}

// Delete handles DELETE /api/time-slots/:id (admin).  Slots are retired,
// not removed, because reservations keep referencing them.
func (h *TimeSlotHandler) Delete(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	if err := h.Slots.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"code": 4001, "message": "time slot not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "could not delete time slot"})
	}
	return c.NoContent(http.StatusNoContent)
}
