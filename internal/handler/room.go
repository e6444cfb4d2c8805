package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/seatdesk/seat-reservation/internal/model"
	"github.com/seatdesk/seat-reservation/internal/repository"
)

// RoomHandler serves room catalog endpoints.  Reads are public to any
// authenticated user; writes are wired behind the admin middleware.
type RoomHandler struct {
	Rooms *repository.RoomRepo
}

func NewRoomHandler(rooms *repository.RoomRepo) *RoomHandler {
	if rooms == nil {
		panic("nil repository passed to NewRoomHandler")
	}
	return &RoomHandler{Rooms: rooms}
}

type roomResponse struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Capacity  uint32    `json:"capacity"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toRoomResponse(r model.Room) roomResponse {
	return roomResponse{
		ID:        r.ID,
		Name:      r.Name,
		Location:  r.Location,
		Capacity:  r.Capacity,
		IsActive:  r.IsActive,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// List handles GET /api/rooms and returns active rooms.
func (h *RoomHandler) List(c echo.Context) error {
	skip, limit := parsePage(c)
	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	rooms, err := h.Rooms.List(ctx, skip, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "db error"})
	}
	out := make([]roomResponse, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, toRoomResponse(r))
	}
	return c.JSON(http.StatusOK, out)
}

// Locations handles GET /api/rooms/locations and returns the distinct
// locations of active rooms, for filter dropdowns.
func (h *RoomHandler) Locations(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	locs, err := h.Rooms.Locations(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "db error"})
	}
	return c.JSON(http.StatusOK, locs)
}

// Get handles GET /api/rooms/:id.
func (h *RoomHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 4001, "message": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	room, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"code": 4001, "message": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "db error"})
	}
	return c.JSON(http.StatusOK, toRoomResponse(room))
}

// Create handles POST /api/rooms (admin).
func (h *RoomHandler) Create(c echo.Context) error {
	var body struct {
		Name     string `json:"name"`
		Location string `json:"location"`
		Capacity uint32 `json:"capacity"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 3001, "message": "invalid request body"})
	}
	body.Name = strings.TrimSpace(body.Name)
	body.Location = strings.TrimSpace(body.Location)
	if body.Name == "" || body.Location == "" || body.Capacity == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 3001, "message": "name, location and a positive capacity are required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	room, err := h.Rooms.Create(ctx, body.Name, body.Location, body.Capacity)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"code": 3005, "message": "room already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "could not create room"})
	}
	return c.JSON(http.StatusCreated, toRoomResponse(room))
}

// Update handles PUT /api/rooms/:id (admin).  Only provided fields are
// changed.
func (h *RoomHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 4001, "message": "invalid id"})
	}
	var body struct {
		Name     *string `json:"name"`
		Location *string `json:"location"`
		Capacity *uint32 `json:"capacity"`
		IsActive *bool   `json:"isActive"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 3001, "message": "invalid request body"})
	}

	fields := map[string]any{}
	if body.Name != nil && strings.TrimSpace(*body.Name) != "" {
		fields["name"] = strings.TrimSpace(*body.Name)
	}
	if body.Location != nil && strings.TrimSpace(*body.Location) != "" {
		fields["location"] = strings.TrimSpace(*body.Location)
	}
	if body.Capacity != nil {
		if *body.Capacity == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"code": 3001, "message": "capacity must be positive"})
		}
		fields["capacity"] = *body.Capacity
	}
	if body.IsActive != nil {
		fields["is_active"] = *body.IsActive
	}
	if len(fields) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 3001, "message": "no fields to update"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	room, err := h.Rooms.Update(ctx, id, fields)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"code": 4001, "message": "room not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"code": 3005, "message": "room already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "could not update room"})
	}
	return c.JSON(http.StatusOK, toRoomResponse(room))
}

// Delete handles DELETE /api/rooms/:id (admin).  Rooms are retired, not
// removed, so reservation history keeps its joins.
func (h *RoomHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 4001, "message": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	if err := h.Rooms.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"code": 4001, "message": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "could not delete room"})
	}
	return c.NoContent(http.StatusNoContent)
}
