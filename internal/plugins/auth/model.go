// Package auth handles user accounts, credential verification, token
// issuance and validation, and the password reset flow for Tracend. It also
// exports the request guard other plugins mount on their route groups.
//
// This is a CORE plugin -- always enabled, cannot be disabled.
package auth

import (
	"time"
)

// resetCodeTTL is how long a password reset code stays redeemable.
const resetCodeTTL = 10 * time.Minute

// resetCodeLength is the number of characters in a reset code.
const resetCodeLength = 6

// User represents a registered Tracend user. This is the domain model used
// throughout the application. Database scanning and JSON marshaling use this
// struct directly.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose in JSON responses.
	Bio          string    `json:"bio,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ResetCode is one outstanding password reset request. Rows live in the
// database, never in process memory, so a restart or a second API instance
// sees the same state. Expiry is enforced at redemption time against
// RequestedAt, not by deleting rows on a timer.
type ResetCode struct {
	ID          int64
	Email       string
	Code        string
	RequestedAt time.Time
}

// Expired reports whether the code is past its redemption window at the
// given instant.
func (r *ResetCode) Expired(now time.Time) bool {
	return now.Sub(r.RequestedAt) > resetCodeTTL
}

// --- Request DTOs (bound from HTTP requests) ---

// RegisterRequest holds the data submitted to POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest holds the data submitted to POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotPasswordRequest holds the data submitted to POST /auth/forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest holds the body of POST /auth/reset-password. The
// email and code arrive as query parameters, matching the frontend's reset
// form link.
type ResetPasswordRequest struct {
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// --- Service Input DTOs (passed from handler to service) ---

// RegisterInput is the validated input for creating a new user.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput is the validated input for authenticating a user.
type LoginInput struct {
	Email    string
	Password string
}

// ResetPasswordInput is the validated input for redeeming a reset code.
type ResetPasswordInput struct {
	Email           string
	Code            string
	NewPassword     string
	ConfirmPassword string
}
