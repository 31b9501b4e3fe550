package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Noor508/tracend/internal/apperror"
	"github.com/Noor508/tracend/internal/config"
)

// TokenService issues and validates the signed bearer tokens that identify
// a user on every authenticated request. Tokens are stateless and
// self-contained: nothing is persisted server-side, and an issued token
// stays valid until its fixed expiry or a signing key rotation.
type TokenService struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
}

// NewTokenService creates a token service from the given JWT configuration.
// An empty signing key is a deployment fault: the constructor refuses it so
// the server fails at startup instead of issuing unverifiable tokens.
func NewTokenService(cfg config.JWTConfig) (*TokenService, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt signing key is empty")
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenService{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		ttl:      ttl,
	}, nil
}

// Issue signs a token asserting the given user id. The payload carries a
// single identity claim (sub) plus the standard issuer/audience/expiry
// fields; expiry is fixed at issuance time plus the configured TTL.
func (s *TokenService) Issue(userID int64) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		Issuer:    s.issuer,
		Audience:  jwt.ClaimStrings{s.audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Validate checks the signature, signing method, issuer, audience, and
// expiry of a token and returns the subject user id. Every failure mode
// returns the same Unauthorized error: a caller must not be able to tell an
// expired token from a forged one.
func (s *TokenService) Validate(tokenString string) (int64, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return 0, errInvalidToken()
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, errInvalidToken()
	}

	return userID, nil
}

// errInvalidToken is the single outcome for every validation failure.
func errInvalidToken() error {
	return apperror.NewUnauthorized("invalid or expired token")
}
