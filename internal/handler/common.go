package handler // handler defines http handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/seatdesk/seat-reservation/internal/middleware"
)

// getUserID extracts the authenticated user's ID from the echo context.
// The JWT middleware stores it as uint64; other types mean the route was
// wired without auth and count as a programming error surfaced as 401.
func getUserID(c echo.Context) (uint64, error) {
	if id, ok := c.Get(middleware.CtxUserID).(uint64); ok && id > 0 {
		return id, nil
	}
	return 0, errors.New("invalid user_id in context")
}

// getRole returns the role claim set by the JWT middleware, or "" when
// the request is unauthenticated.
func getRole(c echo.Context) string {
	role, _ := c.Get(middleware.CtxRole).(string)
	return role
}

// isAdmin reports whether the request carries the admin role.
func isAdmin(c echo.Context) bool { return getRole(c) == "admin" }

// parsePage reads skip/limit query parameters with sane defaults.  Limit
// is capped at 100 to keep listing endpoints bounded.
func parsePage(c echo.Context) (skip, limit int) {
	skip, _ = strconv.Atoi(c.QueryParam("skip"))
	if skip < 0 {
		skip = 0
	}
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return skip, limit
}

// parseIDParam parses a numeric path parameter.
func parseIDParam(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// parseDate parses a calendar date in YYYY-MM-DD form.
func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// reqTimeout bounds database work done on behalf of a single request.
const reqTimeout = 5 * time.Second
