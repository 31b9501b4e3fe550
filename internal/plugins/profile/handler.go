package profile

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Noor508/tracend/internal/apperror"
	"github.com/Noor508/tracend/internal/plugins/auth"
)

// Handler exposes profile operations over HTTP.
type Handler struct {
	service ProfileService
}

// NewHandler creates a new profile handler.
func NewHandler(service ProfileService) *Handler {
	return &Handler{service: service}
}

// Get returns the authenticated user's profile.
func (h *Handler) Get(c echo.Context) error {
	userID := auth.GetUserID(c)

	p, err := h.service.Get(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, p)
}

// Update replaces the authenticated user's profile fields.
func (h *Handler) Update(c echo.Context) error {
	userID := auth.GetUserID(c)

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewValidation("invalid request body")
	}

	p, err := h.service.Update(c.Request().Context(), userID, req.Name, req.Email, req.Bio)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, p)
}
