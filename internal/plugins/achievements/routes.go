package achievements

import (
	"github.com/labstack/echo/v4"

	"github.com/Noor508/tracend/internal/plugins/auth"
)

// RegisterRoutes sets up all achievement routes. Every route requires a
// valid bearer token; the guard resolves the owner id before any handler runs.
func RegisterRoutes(e *echo.Echo, h *Handler, tokens *auth.TokenService) {
	g := e.Group("/achievements", auth.RequireAuth(tokens))

	g.GET("", h.List)
	g.GET("/search", h.Search)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}
