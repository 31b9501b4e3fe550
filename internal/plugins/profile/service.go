package profile

import (
	"context"
	"strings"

	"github.com/Noor508/tracend/internal/apperror"
)

const maxBioLength = 2000

// ProfileService handles the business logic for reading and updating
// a user's own profile.
type ProfileService interface {
	Get(ctx context.Context, userID int64) (*Profile, error)
	Update(ctx context.Context, userID int64, name, email, bio string) (*Profile, error)
}

type profileService struct {
	repo ProfileRepository
}

// NewProfileService creates a new profile service.
func NewProfileService(repo ProfileRepository) ProfileService {
	return &profileService{repo: repo}
}

// Get returns the caller's profile.
func (s *profileService) Get(ctx context.Context, userID int64) (*Profile, error) {
	return s.repo.FindByUserID(ctx, userID)
}

// Update validates and stores the caller's new profile fields.
func (s *profileService) Update(ctx context.Context, userID int64, name, email, bio string) (*Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.NewValidation("name is required")
	}
	if len(name) > 100 {
		return nil, apperror.NewValidation("name must be at most 100 characters")
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, apperror.NewValidation("email is required")
	}
	if !strings.Contains(email, "@") {
		return nil, apperror.NewValidation("email is not valid")
	}

	bio = strings.TrimSpace(bio)
	if len(bio) > maxBioLength {
		return nil, apperror.NewValidation("bio must be at most 2000 characters")
	}

	p := &Profile{
		UserID: userID,
		Name:   name,
		Email:  email,
		Bio:    bio,
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}
