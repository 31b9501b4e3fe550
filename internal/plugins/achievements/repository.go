package achievements

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Noor508/tracend/internal/apperror"
)

// AchievementRepository defines the data access contract for achievements.
// Every single-record operation takes both the achievement id and the owner
// id and matches both in SQL: the numeric id alone never scopes a row, only
// the token-resolved owner does. All SQL lives here -- none leaks out.
type AchievementRepository interface {
	Create(ctx context.Context, a *Achievement) error
	FindByIDAndOwner(ctx context.Context, id, ownerID int64) (*Achievement, error)
	Update(ctx context.Context, a *Achievement) error
	DeleteByIDAndOwner(ctx context.Context, id, ownerID int64) error

	// ListByOwner returns all of one user's achievements, newest first.
	ListByOwner(ctx context.Context, ownerID int64) ([]Achievement, error)

	// SearchByOwner returns the user's achievements matching the keyword
	// across title, description, impact, and keywords.
	SearchByOwner(ctx context.Context, ownerID int64, keyword string) ([]Achievement, error)
}

// achievementRepository is the MariaDB implementation of AchievementRepository.
type achievementRepository struct {
	db *sql.DB
}

// NewAchievementRepository creates a new MariaDB-backed achievement repository.
func NewAchievementRepository(db *sql.DB) AchievementRepository {
	return &achievementRepository{db: db}
}

// achievementColumns is the SELECT column list for achievement queries.
const achievementColumns = `achievement_id, user_id, start_date, end_date,
	title, description, impact, keywords, created_at, updated_at`

// Create inserts a new achievement and fills in the generated id.
func (r *achievementRepository) Create(ctx context.Context, a *Achievement) error {
	query := `INSERT INTO achievements
		(user_id, start_date, end_date, title, description, impact, keywords)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		a.UserID, a.StartDate, a.EndDate,
		a.Title, a.Description, a.Impact, a.Keywords,
	)
	if err != nil {
		return fmt.Errorf("inserting achievement: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading inserted achievement id: %w", err)
	}
	a.ID = id

	return nil
}

// FindByIDAndOwner retrieves an achievement only when the owner matches.
// A row owned by someone else is indistinguishable from a missing one.
func (r *achievementRepository) FindByIDAndOwner(ctx context.Context, id, ownerID int64) (*Achievement, error) {
	query := `SELECT ` + achievementColumns + `
		FROM achievements WHERE achievement_id = ? AND user_id = ?`

	a := &Achievement{}
	err := r.db.QueryRowContext(ctx, query, id, ownerID).Scan(
		&a.ID, &a.UserID, &a.StartDate, &a.EndDate,
		&a.Title, &a.Description, &a.Impact, &a.Keywords,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("achievement not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying achievement: %w", err)
	}

	return a, nil
}

// Update saves changes to an achievement, again matching id AND owner in
// the statement itself so a cross-owner write affects zero rows.
func (r *achievementRepository) Update(ctx context.Context, a *Achievement) error {
	query := `UPDATE achievements
		SET start_date = ?, end_date = ?, title = ?, description = ?,
		    impact = ?, keywords = ?, updated_at = CURRENT_TIMESTAMP
		WHERE achievement_id = ? AND user_id = ?`

	result, err := r.db.ExecContext(ctx, query,
		a.StartDate, a.EndDate, a.Title, a.Description,
		a.Impact, a.Keywords,
		a.ID, a.UserID,
	)
	if err != nil {
		return fmt.Errorf("updating achievement: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperror.NewNotFound("achievement not found")
	}
	return nil
}

// DeleteByIDAndOwner removes an achievement only when the owner matches.
func (r *achievementRepository) DeleteByIDAndOwner(ctx context.Context, id, ownerID int64) error {
	query := `DELETE FROM achievements WHERE achievement_id = ? AND user_id = ?`

	result, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting achievement: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperror.NewNotFound("achievement not found")
	}
	return nil
}

// ListByOwner returns all achievements for a user ordered by start date,
// newest first, undated records last.
func (r *achievementRepository) ListByOwner(ctx context.Context, ownerID int64) ([]Achievement, error) {
	query := `SELECT ` + achievementColumns + `
		FROM achievements WHERE user_id = ?
		ORDER BY start_date IS NULL, start_date DESC, achievement_id DESC`
	return r.scanAchievements(ctx, query, ownerID)
}

// SearchByOwner returns the user's achievements where any text field
// contains the keyword. Filtering by owner happens in SQL — rows belonging
// to other users are never fetched, let alone returned.
func (r *achievementRepository) SearchByOwner(ctx context.Context, ownerID int64, keyword string) ([]Achievement, error) {
	pattern := "%" + keyword + "%"
	query := `SELECT ` + achievementColumns + `
		FROM achievements
		WHERE user_id = ?
		  AND (title LIKE ? OR description LIKE ? OR impact LIKE ? OR keywords LIKE ?)
		ORDER BY start_date IS NULL, start_date DESC, achievement_id DESC`
	return r.scanAchievements(ctx, query, ownerID, pattern, pattern, pattern, pattern)
}

// scanAchievements runs a multi-row query and scans the results.
func (r *achievementRepository) scanAchievements(ctx context.Context, query string, args ...any) ([]Achievement, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing achievements: %w", err)
	}
	defer rows.Close()

	var out []Achievement
	for rows.Next() {
		var a Achievement
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.StartDate, &a.EndDate,
			&a.Title, &a.Description, &a.Impact, &a.Keywords,
			&a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning achievement row: %w", err)
		}
		out = append(out, a)
	}

	return out, rows.Err()
}
