package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Noor508/tracend/internal/config"
)

// callGuarded runs a request through RequireAuth into a handler that
// records the user id the guard injected. Returns the guard's error (nil
// when the request was let through) and the injected user id.
func callGuarded(t *testing.T, tokens *TokenService, authorization string) (error, int64) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/achievements", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var gotUserID int64
	handler := RequireAuth(tokens)(func(c echo.Context) error {
		gotUserID = GetUserID(c)
		return c.NoContent(http.StatusOK)
	})

	return handler(c), gotUserID
}

func TestRequireAuth_ValidToken(t *testing.T) {
	tokens := newTestTokenService(t)
	signed, err := tokens.Issue(99)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	guardErr, userID := callGuarded(t, tokens, "Bearer "+signed)
	if guardErr != nil {
		t.Fatalf("expected request to pass the guard, got %v", guardErr)
	}
	if userID != 99 {
		t.Errorf("expected user id 99 in context, got %d", userID)
	}
}

func TestRequireAuth_Rejections(t *testing.T) {
	tokens := newTestTokenService(t)
	signed, err := tokens.Issue(99)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	// A token signed by a different deployment's key.
	otherTokens, err := NewTokenService(config.JWTConfig{
		Secret:   "another-signing-key-32-characters!",
		Issuer:   "tracend",
		Audience: "tracend-api",
		TTL:      time.Hour,
	})
	if err != nil {
		t.Fatalf("creating second token service: %v", err)
	}
	foreign, err := otherTokens.Issue(99)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	tests := []struct {
		name          string
		authorization string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"bearer without token", "Bearer "},
		{"garbage token", "Bearer not-a-jwt"},
		{"foreign signing key", "Bearer " + foreign},
		{"token as scheme", signed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guardErr, userID := callGuarded(t, tokens, tt.authorization)
			// Every rejection is the same uniform 401.
			assertAppError(t, guardErr, 401)
			if userID != 0 {
				t.Errorf("expected no user id injected, got %d", userID)
			}
		})
	}
}

func TestGetUserID_Unauthenticated(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	if id := GetUserID(c); id != 0 {
		t.Errorf("expected 0 for unauthenticated context, got %d", id)
	}
}
