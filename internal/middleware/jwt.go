package middleware // middleware provides shared request processing for handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/seatdesk/seat-reservation/internal/utils"
)

// Context keys populated by JWTAuth for downstream handlers.
const (
	CtxUserID = "user_id" // uint64 subject of the validated token
	CtxRole   = "role"    // role claim ("user" or "admin")
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the token's subject and role claims into the request
// context.  The provided secret must match the one used when issuing
// tokens.  Expired tokens are rejected with a distinct error code (2002)
// so clients can tell re-login from a malformed credential (2001).
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"code": 2001, "message": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			ident, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				if errors.Is(err, utils.ErrTokenExpired) {
					return c.JSON(http.StatusUnauthorized, echo.Map{"code": 2002, "message": "token has expired"})
				}
				return c.JSON(http.StatusUnauthorized, echo.Map{"code": 2001, "message": "invalid token"})
			}

			// Handlers read these via c.Get; types are fixed here so no
			// downstream assertions on raw claims are needed.
			c.Set(CtxUserID, ident.UserID)
			c.Set(CtxRole, ident.Role)
			return next(c)
		}
	}
}
