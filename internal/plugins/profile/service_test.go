package profile

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Noor508/tracend/internal/apperror"
)

// --- Mock Repository ---

// mockProfileRepo implements ProfileRepository for testing.
type mockProfileRepo struct {
	findByUserIDFn func(ctx context.Context, userID int64) (*Profile, error)
	updateFn       func(ctx context.Context, p *Profile) error
}

func (m *mockProfileRepo) FindByUserID(ctx context.Context, userID int64) (*Profile, error) {
	if m.findByUserIDFn != nil {
		return m.findByUserIDFn(ctx, userID)
	}
	return nil, apperror.NewNotFound("profile not found")
}

func (m *mockProfileRepo) Update(ctx context.Context, p *Profile) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, p)
	}
	return nil
}

// assertAppError checks that err is an *apperror.AppError with the expected code.
func assertAppError(t *testing.T, err error, expectedCode int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %d, got nil", expectedCode)
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperror.AppError, got %T: %v", err, err)
	}
	if appErr.Code != expectedCode {
		t.Errorf("expected status %d, got %d (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// --- Get Tests ---

func TestGet_Success(t *testing.T) {
	repo := &mockProfileRepo{
		findByUserIDFn: func(ctx context.Context, userID int64) (*Profile, error) {
			return &Profile{UserID: userID, Name: "Alice", Email: "alice@example.com", Bio: "hi"}, nil
		},
	}

	svc := NewProfileService(repo)
	p, err := svc.Get(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.UserID != 7 {
		t.Errorf("expected user id 7, got %d", p.UserID)
	}
}

// --- Update Tests ---

func TestUpdate_Success(t *testing.T) {
	var captured *Profile
	repo := &mockProfileRepo{
		updateFn: func(ctx context.Context, p *Profile) error {
			captured = p
			return nil
		},
	}

	svc := NewProfileService(repo)
	p, err := svc.Update(context.Background(), 7, "  Alice  ", "  Alice@EXAMPLE.com ", " Building things. ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if captured.UserID != 7 {
		t.Errorf("expected user id 7 from the token, got %d", captured.UserID)
	}
	if captured.Name != "Alice" {
		t.Errorf("expected trimmed name, got %q", captured.Name)
	}
	if captured.Email != "alice@example.com" {
		t.Errorf("expected normalized email, got %q", captured.Email)
	}
	if p.Bio != "Building things." {
		t.Errorf("expected trimmed bio, got %q", p.Bio)
	}
}

func TestUpdate_Validation(t *testing.T) {
	tests := []struct {
		name            string
		userName, email string
		bio             string
	}{
		{"missing name", "", "a@b.com", ""},
		{"blank name", "   ", "a@b.com", ""},
		{"name too long", strings.Repeat("x", 101), "a@b.com", ""},
		{"missing email", "Alice", "", ""},
		{"email without at sign", "Alice", "not-an-email", ""},
		{"bio too long", "Alice", "a@b.com", strings.Repeat("x", 2001)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewProfileService(&mockProfileRepo{})
			_, err := svc.Update(context.Background(), 1, tt.userName, tt.email, tt.bio)
			assertAppError(t, err, 400)
		})
	}
}

func TestUpdate_EmailTaken(t *testing.T) {
	repo := &mockProfileRepo{
		updateFn: func(ctx context.Context, p *Profile) error {
			return apperror.NewConflict("an account with this email already exists")
		},
	}

	svc := NewProfileService(repo)
	_, err := svc.Update(context.Background(), 1, "Alice", "taken@example.com", "")
	assertAppError(t, err, 409)
}
