package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Noor508/tracend/internal/config"
)

func TestNewTokenService_EmptySecret(t *testing.T) {
	_, err := NewTokenService(config.JWTConfig{Secret: ""})
	if err == nil {
		t.Fatal("expected error for empty signing key")
	}
}

func TestNewTokenService_DefaultTTL(t *testing.T) {
	tokens, err := NewTokenService(config.JWTConfig{Secret: testSigningKey})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens.ttl != time.Hour {
		t.Errorf("expected default TTL of 1h, got %v", tokens.ttl)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	tokens := newTestTokenService(t)

	signed, err := tokens.Issue(123)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if signed == "" {
		t.Fatal("expected non-empty token")
	}

	userID, err := tokens.Validate(signed)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if userID != 123 {
		t.Errorf("expected user id 123, got %d", userID)
	}
}

func TestValidate_FailureModes(t *testing.T) {
	tokens := newTestTokenService(t)

	// Each case builds a token broken in exactly one way.
	sign := func(t *testing.T, secret string, claims jwt.RegisteredClaims) string {
		t.Helper()
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
			SignedString([]byte(secret))
		if err != nil {
			t.Fatalf("signing test token: %v", err)
		}
		return signed
	}

	now := time.Now()
	goodClaims := func() jwt.RegisteredClaims {
		return jwt.RegisteredClaims{
			Subject:   "123",
			Issuer:    "tracend",
			Audience:  jwt.ClaimStrings{"tracend-api"},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		}
	}

	tests := []struct {
		name  string
		token string
	}{
		{"malformed", "not-a-token"},
		{"empty", ""},
		{"wrong key", sign(t, "some-other-signing-key-32-chars!!", goodClaims())},
		{"expired", sign(t, testSigningKey, func() jwt.RegisteredClaims {
			c := goodClaims()
			c.ExpiresAt = jwt.NewNumericDate(now.Add(-time.Minute))
			return c
		}())},
		{"missing expiry", sign(t, testSigningKey, func() jwt.RegisteredClaims {
			c := goodClaims()
			c.ExpiresAt = nil
			return c
		}())},
		{"wrong issuer", sign(t, testSigningKey, func() jwt.RegisteredClaims {
			c := goodClaims()
			c.Issuer = "someone-else"
			return c
		}())},
		{"wrong audience", sign(t, testSigningKey, func() jwt.RegisteredClaims {
			c := goodClaims()
			c.Audience = jwt.ClaimStrings{"other-api"}
			return c
		}())},
		{"non-numeric subject", sign(t, testSigningKey, func() jwt.RegisteredClaims {
			c := goodClaims()
			c.Subject = "alice"
			return c
		}())},
		{"zero subject", sign(t, testSigningKey, func() jwt.RegisteredClaims {
			c := goodClaims()
			c.Subject = "0"
			return c
		}())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tokens.Validate(tt.token)
			// Every failure mode must be the same uniform 401.
			assertAppError(t, err, 401)
		})
	}
}

func TestValidate_RejectsUnsignedAlgorithm(t *testing.T) {
	tokens := newTestTokenService(t)

	claims := jwt.RegisteredClaims{
		Subject:   "123",
		Issuer:    "tracend",
		Audience:  jwt.ClaimStrings{"tracend-api"},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("signing none-alg token: %v", err)
	}

	_, err = tokens.Validate(unsigned)
	assertAppError(t, err, 401)
}

func TestIssue_ExpiryHonorsTTL(t *testing.T) {
	tokens, err := NewTokenService(config.JWTConfig{
		Secret:   testSigningKey,
		Issuer:   "tracend",
		Audience: "tracend-api",
		TTL:      30 * time.Minute,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	signed, err := tokens.Issue(1)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(signed, claims); err != nil {
		t.Fatalf("parsing issued token: %v", err)
	}
	untilExpiry := time.Until(claims.ExpiresAt.Time)
	if untilExpiry < 29*time.Minute || untilExpiry > 31*time.Minute {
		t.Errorf("expected expiry ~30m out, got %v", untilExpiry)
	}
}
