package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireAdmin rejects requests whose validated token does not carry the
// admin role.  It must run after JWTAuth.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		role, _ := c.Get(CtxRole).(string)
		if role != "admin" {
			return c.JSON(http.StatusForbidden, echo.Map{"code": 4004, "message": "admin access required"})
		}
		return next(c)
	}
}
