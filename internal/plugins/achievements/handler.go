package achievements

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Noor508/tracend/internal/apperror"
	"github.com/Noor508/tracend/internal/plugins/auth"
)

// Handler handles HTTP requests for achievement operations. Handlers are
// thin: bind request, call service, render response.
type Handler struct {
	service AchievementService
}

// NewHandler creates a new achievement handler backed by the given service.
func NewHandler(service AchievementService) *Handler {
	return &Handler{service: service}
}

// List returns the caller's achievements (GET /achievements).
func (h *Handler) List(c echo.Context) error {
	userID := auth.GetUserID(c)

	achievements, err := h.service.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	if achievements == nil {
		achievements = []Achievement{}
	}
	return c.JSON(http.StatusOK, achievements)
}

// Search returns the caller's achievements matching a keyword
// (GET /achievements/search?keyword=...).
func (h *Handler) Search(c echo.Context) error {
	userID := auth.GetUserID(c)

	achievements, err := h.service.Search(c.Request().Context(), userID, c.QueryParam("keyword"))
	if err != nil {
		return err
	}
	if achievements == nil {
		achievements = []Achievement{}
	}
	return c.JSON(http.StatusOK, achievements)
}

// Get returns a single achievement by id (GET /achievements/:id).
func (h *Handler) Get(c echo.Context) error {
	userID := auth.GetUserID(c)
	id, err := achievementID(c)
	if err != nil {
		return err
	}

	a, err := h.service.GetByID(c.Request().Context(), id, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

// Create adds a new achievement (POST /achievements).
func (h *Handler) Create(c echo.Context) error {
	userID := auth.GetUserID(c)

	var req CreateAchievementRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewValidation("invalid request body")
	}

	a, err := h.service.Create(c.Request().Context(), userID, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, a)
}

// Update replaces an achievement's fields (PUT /achievements/:id).
func (h *Handler) Update(c echo.Context) error {
	userID := auth.GetUserID(c)
	id, err := achievementID(c)
	if err != nil {
		return err
	}

	var req UpdateAchievementRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewValidation("invalid request body")
	}

	a, err := h.service.Update(c.Request().Context(), id, userID, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

// Delete removes an achievement (DELETE /achievements/:id).
func (h *Handler) Delete(c echo.Context) error {
	userID := auth.GetUserID(c)
	id, err := achievementID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id, userID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Achievement deleted successfully.",
	})
}

// achievementID parses the :id route parameter.
func achievementID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.NewValidation("invalid achievement id")
	}
	return id, nil
}
