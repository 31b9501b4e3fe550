package auth

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/Noor508/tracend/internal/middleware"
)

// RegisterRoutes sets up all auth routes on the given Echo instance. Auth
// routes are public (no token required) -- the guard middleware is exported
// separately for other plugins to mount on their route groups.
//
// Every endpoint is rate-limited per IP to slow brute-force and credential
// stuffing: login gets 10 attempts a minute, registration 5, and the reset
// pair 5 — a 6-character code must not be guessable online.
func RegisterRoutes(e *echo.Echo, h *Handler, rdb *redis.Client) {
	g := e.Group("/auth")

	g.POST("/register", h.Register, middleware.RateLimit(rdb, "register", 5, time.Minute))
	g.POST("/login", h.Login, middleware.RateLimit(rdb, "login", 10, time.Minute))
	g.POST("/forgot-password", h.ForgotPassword, middleware.RateLimit(rdb, "forgot", 5, time.Minute))
	g.POST("/reset-password", h.ResetPassword, middleware.RateLimit(rdb, "reset", 5, time.Minute))
}
