package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/Noor508/tracend/internal/apperror"
	"github.com/Noor508/tracend/internal/mailer"
)

// resetCodeAlphabet is the character set for reset codes: uppercase letters
// and digits, matching what the reset email tells the user to type.
const resetCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// AuthService defines the business logic contract for authentication.
// Handlers call these methods -- they never touch the repository directly.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*User, error)
	Login(ctx context.Context, input LoginInput) (token string, err error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, input ResetPasswordInput) error
}

// authService implements AuthService with bcrypt hashing and JWT issuance.
type authService struct {
	repo   UserRepository
	tokens *TokenService
	mail   mailer.Mailer
}

// NewAuthService creates a new auth service with the given dependencies.
func NewAuthService(repo UserRepository, tokens *TokenService, mail mailer.Mailer) AuthService {
	return &authService{
		repo:   repo,
		tokens: tokens,
		mail:   mail,
	}
}

// Register creates a new user account. It validates the input, enforces the
// password strength rules, hashes the password with bcrypt, and persists
// the user. A duplicate email fails with Conflict and creates nothing.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*User, error) {
	name := strings.TrimSpace(input.Name)
	email := normalizeEmail(input.Email)

	if name == "" {
		return nil, apperror.NewValidation("name is required")
	}
	if len(name) > 100 {
		return nil, apperror.NewValidation("name must be at most 100 characters")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperror.NewValidation("a valid email is required")
	}
	if msg := validatePasswordStrength(input.Password); msg != "" {
		return nil, apperror.NewValidation(msg)
	}

	// Check if email is already taken before doing expensive hashing.
	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("checking email: %w", err))
	}
	if exists {
		return nil, apperror.NewConflict("an account with this email already exists")
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("hashing password: %w", err))
	}

	user := &User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		// The unique index may catch a race the EmailExists check missed.
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperror.NewInternal(fmt.Errorf("creating user: %w", err))
	}

	slog.Info("user registered",
		slog.Int64("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return user, nil
}

// Login authenticates a user by email and password. On success it issues a
// bearer token carrying the user's id.
func (s *authService) Login(ctx context.Context, input LoginInput) (string, error) {
	email := normalizeEmail(input.Email)

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		// Don't reveal whether the email exists -- use generic message.
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == 404 {
			return "", apperror.NewUnauthorized("invalid email or password")
		}
		return "", apperror.NewInternal(fmt.Errorf("finding user: %w", err))
	}

	if !verifyPassword(input.Password, user.PasswordHash) {
		return "", apperror.NewUnauthorized("invalid email or password")
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", apperror.NewInternal(fmt.Errorf("issuing token: %w", err))
	}

	slog.Info("user logged in",
		slog.Int64("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return token, nil
}

// ForgotPassword starts the reset flow: it generates a fresh code, replaces
// any outstanding codes for the email, persists the new one, and only then
// emails it. A failed send leaves the persisted code intact and redeemable.
// Returns NotFound when no account uses the email.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return apperror.NewValidation("email is required")
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == 404 {
			return apperror.NewNotFound("no account exists for this email")
		}
		return apperror.NewInternal(fmt.Errorf("finding user: %w", err))
	}

	code, err := generateResetCode()
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("generating reset code: %w", err))
	}

	// Issuing a new code kills any outstanding ones: exactly one code per
	// email is live at any time.
	if err := s.repo.DeleteResetCodes(ctx, email); err != nil {
		return apperror.NewInternal(fmt.Errorf("invalidating prior reset codes: %w", err))
	}

	rc := &ResetCode{
		Email:       email,
		Code:        code,
		RequestedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateResetCode(ctx, rc); err != nil {
		return apperror.NewInternal(fmt.Errorf("persisting reset code: %w", err))
	}

	// Persist-then-notify: the code is durable before delivery is attempted.
	subject := "Reset your Tracend password"
	body := fmt.Sprintf(
		"Hi %s,<br/>Your password reset code is: <strong>%s</strong><br/>"+
			"This code is valid for 10 minutes.",
		user.Name, code,
	)
	if err := s.mail.Send(ctx, email, subject, body); err != nil {
		slog.Error("reset code email delivery failed",
			slog.String("email", email),
			slog.Any("error", err),
		)
		return apperror.NewUnavailable(fmt.Errorf("sending reset email: %w", err))
	}

	slog.Info("reset code issued", slog.String("email", email))
	return nil
}

// ResetPassword redeems a code and sets the new password. The new password
// must match its confirmation and pass the same strength rules registration
// enforces. A wrong or expired code fails with a single uniform outcome and
// leaves the stored credential untouched.
func (s *authService) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	email := normalizeEmail(input.Email)
	code := strings.ToUpper(strings.TrimSpace(input.Code))

	if email == "" || code == "" {
		return apperror.NewValidation("email and reset code are required")
	}
	if input.NewPassword == "" || input.ConfirmPassword == "" {
		return apperror.NewValidation("new password and confirmation are required")
	}
	if input.NewPassword != input.ConfirmPassword {
		return apperror.NewValidation("passwords do not match")
	}
	if msg := validatePasswordStrength(input.NewPassword); msg != "" {
		return apperror.NewValidation(msg)
	}

	rc, err := s.repo.FindResetCode(ctx, email, code)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == 404 {
			return errInvalidResetCode()
		}
		return apperror.NewInternal(fmt.Errorf("finding reset code: %w", err))
	}

	if rc.Expired(time.Now().UTC()) {
		return errInvalidResetCode()
	}

	hash, err := hashPassword(input.NewPassword)
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("hashing password: %w", err))
	}

	if err := s.repo.UpdatePasswordByEmail(ctx, email, hash); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return apperror.NewInternal(fmt.Errorf("updating password: %w", err))
	}

	// Codes are one-time: a redeemed code (and any siblings) can't be replayed.
	if err := s.repo.DeleteResetCodes(ctx, email); err != nil {
		slog.Warn("consuming reset code failed",
			slog.String("email", email),
			slog.Any("error", err),
		)
	}

	slog.Info("password reset", slog.String("email", email))
	return nil
}

// errInvalidResetCode is the single outcome for a wrong, stale, or unknown
// code — the response doesn't say which.
func errInvalidResetCode() error {
	return apperror.NewUnauthorized("invalid or expired reset code")
}

// --- Password Hashing (bcrypt) ---

// hashPassword creates a bcrypt hash of the given password. bcrypt embeds
// the salt and cost in the output, so verification needs no extra storage.
func hashPassword(password string) (string, error) {
	hashBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashBytes), nil
}

// verifyPassword checks a plaintext password against a stored bcrypt hash.
func verifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// --- Helpers ---

// validatePasswordStrength applies the account password rules: at least 8
// characters, one uppercase letter, and one digit. Returns an error message
// or empty string. The same rules apply at registration and at reset.
func validatePasswordStrength(password string) string {
	if len(password) < 8 {
		return "password must be at least 8 characters"
	}
	if len(password) > 128 {
		return "password must be at most 128 characters"
	}
	var hasUpper, hasDigit bool
	for _, r := range password {
		if unicode.IsUpper(r) {
			hasUpper = true
		}
		if unicode.IsDigit(r) {
			hasDigit = true
		}
	}
	if !hasUpper {
		return "password must contain at least one uppercase letter"
	}
	if !hasDigit {
		return "password must contain at least one digit"
	}
	return ""
}

// normalizeEmail lowercases and trims an email address so lookups and the
// unique index agree on a single spelling.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// generateResetCode draws resetCodeLength characters from the code alphabet
// using crypto/rand. The code is short enough to type from a phone screen
// but carries ~31 bits of entropy against online guessing, which the rate
// limiter on the reset endpoint bounds further.
func generateResetCode() (string, error) {
	max := big.NewInt(int64(len(resetCodeAlphabet)))
	code := make([]byte, resetCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		code[i] = resetCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}
