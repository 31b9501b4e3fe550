package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/Noor508/tracend/internal/apperror"
)

// erDupEntry is MariaDB's duplicate-key error number, raised by the unique
// index on users.email when a profile update tries to take a taken address.
const erDupEntry = 1062

// ProfileRepository defines the data access contract for profiles. Both
// operations are keyed by the token-resolved user id only — there is no way
// to address another user's profile through this interface.
type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID int64) (*Profile, error)
	Update(ctx context.Context, p *Profile) error
}

// profileRepository reads and writes the profile fields on the users table.
type profileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new MariaDB-backed profile repository.
func NewProfileRepository(db *sql.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// FindByUserID retrieves the profile for a user.
func (r *profileRepository) FindByUserID(ctx context.Context, userID int64) (*Profile, error) {
	query := `SELECT user_id, name, email, bio FROM users WHERE user_id = ?`

	p := &Profile{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&p.UserID, &p.Name, &p.Email, &p.Bio,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("profile not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying profile: %w", err)
	}

	return p, nil
}

// Update replaces the profile fields in a single statement.
// Returns apperror.Conflict when the new email belongs to another account.
func (r *profileRepository) Update(ctx context.Context, p *Profile) error {
	query := `UPDATE users SET name = ?, email = ?, bio = ? WHERE user_id = ?`

	result, err := r.db.ExecContext(ctx, query, p.Name, p.Email, p.Bio, p.UserID)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == erDupEntry {
			return apperror.NewConflict("an account with this email already exists")
		}
		return fmt.Errorf("updating profile: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		// Zero rows can mean "no such user" or "nothing changed"; only the
		// former is an error, so check the user still exists.
		var exists bool
		if err := r.db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM users WHERE user_id = ?)`, p.UserID,
		).Scan(&exists); err != nil {
			return fmt.Errorf("checking user existence: %w", err)
		}
		if !exists {
			return apperror.NewNotFound("profile not found")
		}
	}

	return nil
}
