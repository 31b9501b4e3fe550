package profile

import (
	"github.com/labstack/echo/v4"

	"github.com/Noor508/tracend/internal/plugins/auth"
)

// RegisterRoutes mounts the profile endpoints. All of them require a
// valid bearer token; the profile addressed is always the caller's own.
func RegisterRoutes(e *echo.Echo, h *Handler, tokens *auth.TokenService) {
	g := e.Group("/profile")
	g.Use(auth.RequireAuth(tokens))

	g.GET("", h.Get)
	g.PUT("", h.Update)
}
