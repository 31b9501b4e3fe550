// Package middleware provides HTTP middleware for Tracend.
// ratelimit.go implements a per-IP rate limiter using a fixed-window counter
// stored in Redis. Designed for the auth endpoints (login, register,
// forgot/reset password). Keeping the counters in Redis rather than process
// memory means the limits hold across restarts and multiple API instances.
package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// RateLimit returns middleware that limits requests per IP to maxRequests
// within the given window duration for the named scope. Returns 429 when
// exceeded. The scope keeps counters for different endpoints independent
// (login attempts don't consume the register budget).
func RateLimit(rdb *redis.Client, scope string, maxRequests int, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			key := "ratelimit:" + scope + ":" + c.RealIP()

			count, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				// Redis being down must not lock users out of the API.
				slog.Warn("rate limiter unavailable, allowing request",
					slog.String("scope", scope),
					slog.Any("error", err),
				)
				return next(c)
			}

			// First hit in the window starts the clock.
			if count == 1 {
				if err := rdb.Expire(ctx, key, window).Err(); err != nil {
					slog.Warn("setting rate limit window failed",
						slog.String("scope", scope),
						slog.Any("error", err),
					)
				}
			}

			if count > int64(maxRequests) {
				return c.JSON(http.StatusTooManyRequests, map[string]string{
					"error":   "Too Many Requests",
					"message": "Rate limit exceeded. Please try again later.",
				})
			}

			return next(c)
		}
	}
}
