package handler // handler package contains authentication handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/seatdesk/seat-reservation/internal/config"
	"github.com/seatdesk/seat-reservation/internal/model"
	"github.com/seatdesk/seat-reservation/internal/repository"
	"github.com/seatdesk/seat-reservation/internal/utils"
)

// AuthHandler bundles the dependencies for registration, login and the
// current-user endpoint.
type AuthHandler struct {
	Users *repository.UserRepo
	Cfg   config.Config
}

func NewAuthHandler(users *repository.UserRepo, cfg config.Config) *AuthHandler {
	if users == nil {
		panic("nil repository passed to NewAuthHandler")
	}
	return &AuthHandler{Users: users, Cfg: cfg}
}

// userResponse is the public shape of a user.  The password hash never
// leaves the repository layer.
type userResponse struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toUserResponse(u model.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Username,
		Email:     u.Email,
		Role:      u.Role(),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// Register handles POST /api/auth/register.  Input is validated field by
// field so the client gets a precise message; every validation failure
// shares code 3001 except the password mismatch, which is 3002 so forms
// can highlight the confirmation field.
func (h *AuthHandler) Register(c echo.Context) error {
	// The public body field is "name"; internally the value lives in the
	// users.username column.
	var body struct {
		Name            string `json:"name"`
		Email           string `json:"email"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 3001, "message": "invalid request body"})
	}
	body.Name = strings.TrimSpace(body.Name)
	body.Email = strings.ToLower(strings.TrimSpace(body.Email))

	switch {
	case body.Name == "" || body.Email == "" || body.Password == "" || body.ConfirmPassword == "":
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 3001, "message": "name, email, password and confirmPassword are required"})
	case !utils.ValidUsername(body.Name):
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 3001, "message": "name must be between 2 and 50 characters"})
	case !utils.ValidEmail(body.Email):
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 3001, "message": "invalid email address"})
	case !utils.ValidPassword(body.Password):
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 3001, "message": "password must be at least 8 characters and contain a letter and a digit"})
	case body.Password != body.ConfirmPassword:
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 3002, "message": "passwords do not match"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	// Friendly duplicate checks first; the unique indexes on email and
	// username stay authoritative for concurrent registrations.
	if _, err := h.Users.GetByEmail(ctx, body.Email); err == nil {
		return c.JSON(http.StatusConflict, echo.Map{"code": 3003, "message": "email already registered"})
	} else if !errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "db error"})
	}
	if _, err := h.Users.GetByUsername(ctx, body.Name); err == nil {
		return c.JSON(http.StatusConflict, echo.Map{"code": 3004, "message": "name already taken"})
	} else if !errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "db error"})
	}

	hash, err := utils.HashPassword(body.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "could not hash password"})
	}
	id, err := h.Users.Create(ctx, body.Name, body.Email, hash)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"code": 3003, "message": "email or username already registered"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "could not create user"})
	}
	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "db error"})
	}

	tok, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Role(), h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "could not issue token"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"user":      toUserResponse(u),
		"token":     tok.Token,
		"expiresAt": tok.Exp,
	})
}

// Login handles POST /api/auth/login.  Bad credentials and unknown
// emails share one error so the endpoint does not leak which emails are
// registered.
func (h *AuthHandler) Login(c echo.Context) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 1001, "message": "invalid request body"})
	}
	body.Email = strings.ToLower(strings.TrimSpace(body.Email))
	if body.Email == "" || body.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"code": 1001, "message": "email and password are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), reqTimeout)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, body.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"code": 1002, "message": "invalid email or password"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "db error"})
	}
	if !u.IsActive || !utils.VerifyPassword(u.PasswordHash, body.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"code": 1002, "message": "invalid email or password"})
	}

	tok, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Role(), h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"code": 5000, "message": "could not issue token"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"user":      toUserResponse(u),
		"token":     tok.Token,
		"expiresAt": tok.Exp,
	})
}

// Me handles GET /api/auth/me and returns the authenticated user.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"code": 2001, "message": "unauthorized"})
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
	return c.JSON(http.StatusOK, toUserResponse(u))
}
