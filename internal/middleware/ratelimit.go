package middleware

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// RateLimit returns a fixed-window per-IP limiter backed by Redis,
// intended for the unauthenticated auth endpoints.  The counter key is
// scoped by route path and client IP and expires after the window.  A
// nil client disables limiting entirely so the API keeps working when
// Redis is not deployed.
func RateLimit(rdb *redis.Client, limit int, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if rdb == nil {
				return next(c)
			}
			key := fmt.Sprintf("ratelimit:%s:%s", c.Path(), c.RealIP())
			ctx := c.Request().Context()

			n, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				// Redis being down should not lock users out.
				log.Printf("rate limit: redis incr failed: %v", err)
				return next(c)
			}
			if n == 1 {
				// A counter without a TTL would never reset and
				// lock the IP out for good, so drop it if the
				// expiry cannot be set.
				if err := rdb.Expire(ctx, key, window).Err(); err != nil {
					log.Printf("rate limit: redis expire failed: %v", err)
					rdb.Del(ctx, key)
					return next(c)
				}
			}
			if n > int64(limit) {
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"code":    4291,
					"message": "too many requests, try again later",
				})
			}
			return next(c)
		}
	}
}
