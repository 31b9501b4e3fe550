package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Noor508/tracend/internal/apperror"
)

// Handler handles HTTP requests for authentication. Handlers are thin: they
// bind the request, call the service, and render the response. No business
// logic lives here.
type Handler struct {
	service AuthService
}

// NewHandler creates a new auth handler with the given service.
func NewHandler(service AuthService) *Handler {
	return &Handler{service: service}
}

// Register creates a new account (POST /auth/register).
func (h *Handler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewValidation("invalid request body")
	}

	input := RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}

	if _, err := h.service.Register(c.Request().Context(), input); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "User registered successfully.",
	})
}

// Login exchanges credentials for a bearer token (POST /auth/login).
func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewValidation("invalid request body")
	}

	token, err := h.service.Login(c.Request().Context(), LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{
		"token": token,
	})
}

// ForgotPassword issues and emails a reset code (POST /auth/forgot-password).
func (h *Handler) ForgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewValidation("invalid request body")
	}

	if err := h.service.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Password reset code has been sent to your email.",
	})
}

// ResetPassword redeems a reset code and sets a new password
// (POST /auth/reset-password?email=...&code=...).
func (h *Handler) ResetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewValidation("invalid request body")
	}

	input := ResetPasswordInput{
		Email:           c.QueryParam("email"),
		Code:            c.QueryParam("code"),
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	}

	if err := h.service.ResetPassword(c.Request().Context(), input); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Password has been successfully updated.",
	})
}
