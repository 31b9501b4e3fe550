package achievements

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Noor508/tracend/internal/apperror"
)

// --- Mock Repository ---

// mockAchievementRepo implements AchievementRepository for testing.
type mockAchievementRepo struct {
	createFn        func(ctx context.Context, a *Achievement) error
	findByIDFn      func(ctx context.Context, id, ownerID int64) (*Achievement, error)
	updateFn        func(ctx context.Context, a *Achievement) error
	deleteFn        func(ctx context.Context, id, ownerID int64) error
	listByOwnerFn   func(ctx context.Context, ownerID int64) ([]Achievement, error)
	searchByOwnerFn func(ctx context.Context, ownerID int64, keyword string) ([]Achievement, error)
}

func (m *mockAchievementRepo) Create(ctx context.Context, a *Achievement) error {
	if m.createFn != nil {
		return m.createFn(ctx, a)
	}
	a.ID = 1
	return nil
}

func (m *mockAchievementRepo) FindByIDAndOwner(ctx context.Context, id, ownerID int64) (*Achievement, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id, ownerID)
	}
	return &Achievement{ID: id, UserID: ownerID}, nil
}

func (m *mockAchievementRepo) Update(ctx context.Context, a *Achievement) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, a)
	}
	return nil
}

func (m *mockAchievementRepo) DeleteByIDAndOwner(ctx context.Context, id, ownerID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id, ownerID)
	}
	return nil
}

func (m *mockAchievementRepo) ListByOwner(ctx context.Context, ownerID int64) ([]Achievement, error) {
	if m.listByOwnerFn != nil {
		return m.listByOwnerFn(ctx, ownerID)
	}
	return nil, nil
}

func (m *mockAchievementRepo) SearchByOwner(ctx context.Context, ownerID int64, keyword string) ([]Achievement, error) {
	if m.searchByOwnerFn != nil {
		return m.searchByOwnerFn(ctx, ownerID, keyword)
	}
	return nil, nil
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

func datePtr(t time.Time) *time.Time { return &t }

// --- Create Tests ---

func TestCreate_OwnerFromToken(t *testing.T) {
	var captured *Achievement
	repo := &mockAchievementRepo{
		createFn: func(ctx context.Context, a *Achievement) error {
			captured = a
			a.ID = 10
			return nil
		},
	}

	svc := NewAchievementService(repo)
	_, err := svc.Create(context.Background(), 42, CreateAchievementRequest{
		Title:       "Shipped the Q3 launch",
		Description: "Coordinated the release.",
		Impact:      "Revenue up 12%",
		Keywords:    "launch,release",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if captured == nil {
		t.Fatal("expected achievement to be persisted")
	}
	if captured.UserID != 42 {
		t.Errorf("expected owner 42 from the token, got %d", captured.UserID)
	}
}

func TestCreate_TitleValidation(t *testing.T) {
	tests := []struct {
		name  string
		title string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"too long", strings.Repeat("x", 201)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAchievementService(&mockAchievementRepo{})
			_, err := svc.Create(context.Background(), 1, CreateAchievementRequest{Title: tt.title})
			assertAppError(t, err, 400)
		})
	}
}

func TestCreate_EndBeforeStart(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(-24 * time.Hour)

	svc := NewAchievementService(&mockAchievementRepo{})
	_, err := svc.Create(context.Background(), 1, CreateAchievementRequest{
		Title:     "Backwards dates",
		StartDate: datePtr(start),
		EndDate:   datePtr(end),
	})
	assertAppError(t, err, 400)
}

func TestCreate_OpenEndedDatesAllowed(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		start, end *time.Time
	}{
		{"no dates", nil, nil},
		{"start only", datePtr(start), nil},
		{"end only", nil, datePtr(start)},
		{"same day", datePtr(start), datePtr(start)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAchievementService(&mockAchievementRepo{})
			_, err := svc.Create(context.Background(), 1, CreateAchievementRequest{
				Title:     "Valid dates",
				StartDate: tt.start,
				EndDate:   tt.end,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestCreate_DescriptionSanitized(t *testing.T) {
	var captured *Achievement
	repo := &mockAchievementRepo{
		createFn: func(ctx context.Context, a *Achievement) error {
			captured = a
			return nil
		},
	}

	svc := NewAchievementService(repo)
	_, err := svc.Create(context.Background(), 1, CreateAchievementRequest{
		Title:       "Sanitized",
		Description: `<p>Fine</p><script>alert("xss")</script>`,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Contains(captured.Description, "<script") {
		t.Errorf("expected script tags stripped, got %q", captured.Description)
	}
	if !strings.Contains(captured.Description, "<p>Fine</p>") {
		t.Errorf("expected benign markup kept, got %q", captured.Description)
	}
}

// --- Update Tests ---

func TestUpdate_OwnerScoped(t *testing.T) {
	var captured *Achievement
	repo := &mockAchievementRepo{
		updateFn: func(ctx context.Context, a *Achievement) error {
			captured = a
			return nil
		},
	}

	svc := NewAchievementService(repo)
	_, err := svc.Update(context.Background(), 5, 42, UpdateAchievementRequest{Title: "Edited"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if captured.ID != 5 {
		t.Errorf("expected id 5, got %d", captured.ID)
	}
	if captured.UserID != 42 {
		t.Errorf("expected owner 42 from the token, got %d", captured.UserID)
	}
}

func TestUpdate_NotOwned(t *testing.T) {
	repo := &mockAchievementRepo{
		updateFn: func(ctx context.Context, a *Achievement) error {
			return apperror.NewNotFound("achievement not found")
		},
	}

	svc := NewAchievementService(repo)
	_, err := svc.Update(context.Background(), 5, 99, UpdateAchievementRequest{Title: "Stolen edit"})
	// Someone else's record looks exactly like a missing one.
	assertAppError(t, err, 404)
}

// --- Delete Tests ---

func TestDelete_NotOwned(t *testing.T) {
	repo := &mockAchievementRepo{
		deleteFn: func(ctx context.Context, id, ownerID int64) error {
			return apperror.NewNotFound("achievement not found")
		},
	}

	svc := NewAchievementService(repo)
	err := svc.Delete(context.Background(), 5, 99)
	assertAppError(t, err, 404)
}

// --- Get Tests ---

func TestGetByID_NotOwned(t *testing.T) {
	repo := &mockAchievementRepo{
		findByIDFn: func(ctx context.Context, id, ownerID int64) (*Achievement, error) {
			return nil, apperror.NewNotFound("achievement not found")
		},
	}

	svc := NewAchievementService(repo)
	_, err := svc.GetByID(context.Background(), 5, 99)
	assertAppError(t, err, 404)
}

// --- Search Tests ---

func TestSearch_EmptyKeywordFallsBackToList(t *testing.T) {
	listed := false
	searched := false
	repo := &mockAchievementRepo{
		listByOwnerFn: func(ctx context.Context, ownerID int64) ([]Achievement, error) {
			listed = true
			return nil, nil
		},
		searchByOwnerFn: func(ctx context.Context, ownerID int64, keyword string) ([]Achievement, error) {
			searched = true
			return nil, nil
		},
	}

	svc := NewAchievementService(repo)
	if _, err := svc.Search(context.Background(), 1, "   "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !listed || searched {
		t.Errorf("expected blank keyword to degrade to list (listed=%v searched=%v)", listed, searched)
	}
}

func TestSearch_TrimsKeyword(t *testing.T) {
	var captured string
	repo := &mockAchievementRepo{
		searchByOwnerFn: func(ctx context.Context, ownerID int64, keyword string) ([]Achievement, error) {
			captured = keyword
			return []Achievement{{ID: 1}}, nil
		},
	}

	svc := NewAchievementService(repo)
	results, err := svc.Search(context.Background(), 1, "  launch  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured != "launch" {
		t.Errorf("expected trimmed keyword %q, got %q", "launch", captured)
	}
	if len(results) != 1 {
		t.Errorf("expected 1 result, got %d", len(results))
	}
}
