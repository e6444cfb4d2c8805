package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/seatdesk/seat-reservation/internal/config"
	"github.com/seatdesk/seat-reservation/internal/repository"
	"github.com/seatdesk/seat-reservation/internal/utils"
)

// UserHandler serves admin user management plus the self-service
// password change.
type UserHandler struct {
	Users *repository.UserRepo
	Cfg   config.Config
}

func NewUserHandler(users *repository.UserRepo, cfg config.Config) *UserHandler {
	if users == nil {
		panic("nil repository passed to NewUserHandler")
	}
	return &UserHandler{Users: users, Cfg: cfg}
}

// List handles GET /api/users (admin).  Supports a q substring filter
// over username and email, a role filter and a status filter.
func (h *UserHandler) List(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	role := c.QueryParam("role")
	if role != "" && role != "admin" && role != "user" {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 3001, "message": "role must be admin or user"})
	}
	var active *bool
	switch c.QueryParam("status") {
	case "":
	case "active":
		t := true
		active = &t
	case "inactive":
		f := false
		active = &f
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 3001, "message": "status must be active or inactive"})
	}
	skip, limit := parsePage(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	users, err := h.Users.List(ctx, q, role, active, skip, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "db error"})
	}
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /api/users/:id (admin).
func (h *UserHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 4001, "message": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"code": 4001, "message": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "db error"})
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}

// Update handles PUT /api/users/:id (admin) and renames an account or
// changes its email.  The public field is "name", stored in the
// username column; both fields go through the same validation as
// registration.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 4001, "message": "invalid id"})
	}
	var body struct {
		Name  *string `json:"name"`
		Email *string `json:"email"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 3001, "message": "invalid request body"})
	}

	fields := map[string]any{}
	if body.Name != nil {
		name := strings.TrimSpace(*body.Name)
		if !utils.ValidUsername(name) {
			return c.JSON(http.StatusBadRequest, echo.Map{"code": 3001, "message": "name must be between 2 and 50 characters"})
		}
		fields["username"] = name
	}
	if body.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*body.Email))
		if !utils.ValidEmail(email) {
			return c.JSON(http.StatusBadRequest, echo.Map{"code": 3001, "message": "invalid email address"})
		}
		fields["email"] = email
	}
	if len(fields) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 3001, "message": "no fields to update"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	u, err := h.Users.Update(ctx, id, fields)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"code": 4001, "message": "user not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"code": 3003, "message": "email or username already taken"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "could not update user"})
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}

// UpdateStatus handles PATCH /api/users/:id/status (admin) and activates
// or deactivates an account.  Admins cannot deactivate themselves, which
// keeps at least the acting admin locked in.
func (h *UserHandler) UpdateStatus(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 4001, "message": "invalid id"})
	}
	var body struct {
		IsActive *bool `json:"isActive"`
	}
	if err := c.Bind(&body); err != nil || body.IsActive == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 3001, "message": "isActive is required"})
	}
	if self, _ := getUserID(c); self == id && !*body.IsActive {
		return c.JSON(http.StatusConflict, echo.Map{"code": 4003, "message": "cannot deactivate your own account"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	u, err := h.Users.Update(ctx, id, map[string]any{"is_active": *body.IsActive})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"code": 4001, "message": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "could not update user"})
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}

// UpdateRole handles PATCH /api/users/:id/role (admin).  An admin cannot
// demote themselves so the system always keeps one reachable admin.
func (h *UserHandler) UpdateRole(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 4001, "message": "invalid id"})
	}
	var body struct {
		Role string `json:"role"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 3001, "message": "invalid request body"})
	}
	if body.Role != "admin" && body.Role != "user" {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 3001, "message": "role must be admin or user"})
	}
	if self, _ := getUserID(c); self == id && body.Role != "admin" {
		return c.JSON(http.StatusConflict, echo.Map{"code": 4003, "message": "cannot demote your own account"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	u, err := h.Users.Update(ctx, id, map[string]any{"is_admin": body.Role == "admin"})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"code": 4001, "message": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "could not update user"})
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}

// Delete handles DELETE /api/users/:id (admin).  The user's bookings and
// reservations cascade away with the account.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 4001, "message": "invalid id"})
	}
	if self, _ := getUserID(c); self == id {
		return c.JSON(http.StatusConflict, echo.Map{"code": 4003, "message": "cannot delete your own account"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	if err := h.Users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"code": 4001, "message": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "could not delete user"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ResetPassword handles POST /api/users/:id/change-password (admin) and
// sets a new password without knowing the old one.  Meant for support
// resets; users change their own password through ChangePassword.
func (h *UserHandler) ResetPassword(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 4001, "message": "invalid id"})
	}
	var body struct {
		NewPassword string `json:"newPassword"`
	}
	if err := c.Bind(&body); err != nil || body.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 3001, "message": "newPassword is required"})
	}
	if !utils.ValidPassword(body.NewPassword) {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 3001, "message": "password must be at least 8 characters and contain a letter and a digit"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	hash, err := utils.HashPassword(body.NewPassword, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "could not hash password"})
	}
	if _, err := h.Users.Update(ctx, id, map[string]any{"password_hash": hash}); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"code": 4001, "message": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "could not update password"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "password updated"})
}

// ChangePassword handles PUT /api/users/change-password for the
// authenticated user.  The current password must verify before the new
// one is accepted under the same policy as registration.
func (h *UserHandler) ChangePassword(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"code": 2001, "message": "unauthorized"})
	}
	var body struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 3001, "message": "invalid request body"})
	}
	if body.CurrentPassword == "" || body.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 3001, "message": "currentPassword and newPassword are required"})
	}
	if !utils.ValidPassword(body.NewPassword) {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 3001, "message": "password must be at least 8 characters and contain a letter and a digit"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"code": 4001, "message": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "db error"})
	}
	if !utils.VerifyPassword(u.PasswordHash, body.CurrentPassword) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"code": 1002, "message": "current password is incorrect"})
	}

	hash, err := utils.HashPassword(body.NewPassword, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "could not hash password"})
	}
	if _, err := h.Users.Update(ctx, userID, map[string]any{"password_hash": hash}); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "could not update password"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "password updated"})
}
