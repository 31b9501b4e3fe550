package app

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Noor508/tracend/internal/plugins/achievements"
	"github.com/Noor508/tracend/internal/plugins/auth"
	"github.com/Noor508/tracend/internal/plugins/profile"
)

// RegisterRoutes sets up all application routes. It constructs each plugin's
// repository/service/handler chain and delegates to the plugin's route
// registration function.
//
// This is the single place where all routes are aggregated. When a new
// plugin is added, its routes are registered here.
func (a *App) RegisterRoutes() {
	e := a.Echo

	// Health check endpoint for Docker health monitoring. Verifies that
	// both backing stores answer, not just that the process is up.
	e.GET("/healthz", a.healthz)

	// --- Plugin Routes ---

	// auth plugin (public: register, login, password reset).
	authRepo := auth.NewUserRepository(a.DB)
	authService := auth.NewAuthService(authRepo, a.Tokens, a.Mail)
	auth.RegisterRoutes(e, auth.NewHandler(authService), a.Redis)

	// achievements plugin (authenticated, owner-scoped).
	achievementRepo := achievements.NewAchievementRepository(a.DB)
	achievementService := achievements.NewAchievementService(achievementRepo)
	achievements.RegisterRoutes(e, achievements.NewHandler(achievementService), a.Tokens)

	// profile plugin (authenticated, always the caller's own row).
	profileRepo := profile.NewProfileRepository(a.DB)
	profileService := profile.NewProfileService(profileRepo)
	profile.RegisterRoutes(e, profile.NewHandler(profileService), a.Tokens)
}

// healthz reports whether the database and Redis are reachable.
func (a *App) healthz(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	checks := map[string]string{
		"database": "ok",
		"redis":    "ok",
	}
	healthy := true

	if err := a.DB.PingContext(ctx); err != nil {
		checks["database"] = "unreachable"
		healthy = false
	}
	if err := a.Redis.Ping(ctx).Err(); err != nil {
		checks["redis"] = "unreachable"
		healthy = false
	}

	status := http.StatusOK
	overall := "ok"
	if !healthy {
		status = http.StatusServiceUnavailable
		overall = "degraded"
	}

	return c.JSON(status, map[string]any{
		"status": overall,
		"checks": checks,
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
