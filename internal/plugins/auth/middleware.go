package auth

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// contextKeyUserID is the Echo context key for the authenticated user's id.
// Other plugins read it via GetUserID.
const contextKeyUserID = "auth_user_id"

// RequireAuth returns middleware that gates every protected route. It
// extracts the bearer token from the Authorization header, validates it,
// and injects the resolved user id into the request context. A missing
// header, a malformed header, and an invalid or expired token all produce
// the same 401 before any business logic runs.
func RequireAuth(tokens *TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := bearerToken(c)
			if raw == "" {
				return errInvalidToken()
			}

			userID, err := tokens.Validate(raw)
			if err != nil {
				return errInvalidToken()
			}

			c.Set(contextKeyUserID, userID)
			return next(c)
		}
	}
}

// GetUserID retrieves the authenticated user's id from the Echo context.
// Returns 0 if the request is not authenticated (middleware not applied).
func GetUserID(c echo.Context) int64 {
	id, ok := c.Get(contextKeyUserID).(int64)
	if !ok {
		return 0
	}
	return id
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
// Returns empty string when the header is absent or not a bearer scheme.
func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
