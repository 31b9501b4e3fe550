package achievements

import (
	"context"
	"strings"
	"time"

	"github.com/Noor508/tracend/internal/apperror"
	"github.com/Noor508/tracend/internal/sanitize"
)

// AchievementService defines the business logic contract for achievements.
// Every method takes the owner id resolved from the caller's token; the
// service passes it through to the repository, which enforces it in SQL.
type AchievementService interface {
	Create(ctx context.Context, ownerID int64, req CreateAchievementRequest) (*Achievement, error)
	GetByID(ctx context.Context, id, ownerID int64) (*Achievement, error)
	Update(ctx context.Context, id, ownerID int64, req UpdateAchievementRequest) (*Achievement, error)
	Delete(ctx context.Context, id, ownerID int64) error
	List(ctx context.Context, ownerID int64) ([]Achievement, error)
	Search(ctx context.Context, ownerID int64, keyword string) ([]Achievement, error)
}

// achievementService implements AchievementService.
type achievementService struct {
	repo AchievementRepository
}

// NewAchievementService creates a new achievement service.
func NewAchievementService(repo AchievementRepository) AchievementService {
	return &achievementService{repo: repo}
}

// Create validates and persists a new achievement. The owner id comes from
// the token-resolved identity only — whatever the client put in the body is
// not consulted.
func (s *achievementService) Create(ctx context.Context, ownerID int64, req CreateAchievementRequest) (*Achievement, error) {
	a, err := buildAchievement(ownerID, req.StartDate, req.EndDate, req.Title, req.Description, req.Impact, req.Keywords)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, apperror.NewInternal(err)
	}

	return s.repo.FindByIDAndOwner(ctx, a.ID, ownerID)
}

// GetByID retrieves a single achievement scoped to its owner.
func (s *achievementService) GetByID(ctx context.Context, id, ownerID int64) (*Achievement, error) {
	return s.repo.FindByIDAndOwner(ctx, id, ownerID)
}

// Update replaces an achievement's fields. The fetch and the write are both
// owner-scoped; a mismatch surfaces as NotFound at either step.
func (s *achievementService) Update(ctx context.Context, id, ownerID int64, req UpdateAchievementRequest) (*Achievement, error) {
	a, err := buildAchievement(ownerID, req.StartDate, req.EndDate, req.Title, req.Description, req.Impact, req.Keywords)
	if err != nil {
		return nil, err
	}
	a.ID = id

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}

	return s.repo.FindByIDAndOwner(ctx, id, ownerID)
}

// Delete removes an achievement scoped to its owner.
func (s *achievementService) Delete(ctx context.Context, id, ownerID int64) error {
	return s.repo.DeleteByIDAndOwner(ctx, id, ownerID)
}

// List returns all of the owner's achievements.
func (s *achievementService) List(ctx context.Context, ownerID int64) ([]Achievement, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Search returns the owner's achievements matching the keyword. An empty
// keyword degrades to a plain list, matching the frontend's search box.
func (s *achievementService) Search(ctx context.Context, ownerID int64, keyword string) ([]Achievement, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return s.repo.ListByOwner(ctx, ownerID)
	}
	return s.repo.SearchByOwner(ctx, ownerID, keyword)
}

// buildAchievement validates the shared create/update fields and assembles
// the domain record, sanitizing the rich-text description before it can
// reach the database.
func buildAchievement(ownerID int64, start, end *time.Time, title, description, impact, keywords string) (*Achievement, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperror.NewValidation("title is required")
	}
	if len(title) > 200 {
		return nil, apperror.NewValidation("title must be at most 200 characters")
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, apperror.NewValidation("end date cannot be before start date")
	}

	return &Achievement{
		UserID:      ownerID,
		StartDate:   start,
		EndDate:     end,
		Title:       title,
		Description: sanitize.HTML(description),
		Impact:      strings.TrimSpace(impact),
		Keywords:    strings.TrimSpace(keywords),
	}, nil
}
