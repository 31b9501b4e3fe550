package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/Noor508/tracend/internal/apperror"
)

// erDupEntry is MariaDB's duplicate-key error number. The users table has a
// unique index on email; a race between EmailExists and Create still ends
// in exactly one row.
const erDupEntry = 1062

// UserRepository defines the data access contract for user and reset-code
// operations. All SQL lives in the concrete implementation -- no SQL leaks out.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error

	// Password reset codes.
	CreateResetCode(ctx context.Context, rc *ResetCode) error
	FindResetCode(ctx context.Context, email, code string) (*ResetCode, error)
	DeleteResetCodes(ctx context.Context, email string) error
}

// userRepository implements UserRepository with hand-written MariaDB queries.
type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository backed by the given DB pool.
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user row and fills in the generated id.
// Returns apperror.Conflict when the email is already taken.
func (r *userRepository) Create(ctx context.Context, user *User) error {
	query := `INSERT INTO users (name, email, password_hash, bio, created_at)
	          VALUES (?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Bio,
		user.CreatedAt,
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == erDupEntry {
			return apperror.NewConflict("an account with this email already exists")
		}
		return fmt.Errorf("inserting user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading inserted user id: %w", err)
	}
	user.ID = id

	return nil
}

// FindByEmail retrieves a user by their email address.
// Returns apperror.NotFound if no user exists with this email.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT user_id, name, email, password_hash, bio, created_at
	          FROM users WHERE email = ?`

	user := &User{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Bio,
		&user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying user by email: %w", err)
	}

	return user, nil
}

// EmailExists returns true if a user with the given email already exists.
// Used during registration to check for duplicates before hashing the password.
func (r *userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking email existence: %w", err)
	}

	return exists, nil
}

// UpdatePasswordByEmail sets a new password hash in a single statement.
func (r *userRepository) UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error {
	query := `UPDATE users SET password_hash = ? WHERE email = ?`

	result, err := r.db.ExecContext(ctx, query, passwordHash, email)
	if err != nil {
		return fmt.Errorf("updating password: %w", err)
	}

	n, _ := result.RowsAffected()
	if n == 0 {
		return apperror.NewNotFound("user not found")
	}
	return nil
}

// --- Password Reset Codes ---

// CreateResetCode inserts a new reset code row keyed by email.
func (r *userRepository) CreateResetCode(ctx context.Context, rc *ResetCode) error {
	query := `INSERT INTO password_reset_codes (email, code, requested_at)
	          VALUES (?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, rc.Email, rc.Code, rc.RequestedAt)
	if err != nil {
		return fmt.Errorf("inserting reset code: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading inserted reset code id: %w", err)
	}
	rc.ID = id

	return nil
}

// FindResetCode looks up an outstanding reset code for the email. Returns
// apperror.NotFound when no matching row exists. Expiry is the service's
// call — this just returns what's stored.
func (r *userRepository) FindResetCode(ctx context.Context, email, code string) (*ResetCode, error) {
	query := `SELECT id, email, code, requested_at
	          FROM password_reset_codes WHERE email = ? AND code = ?`

	rc := &ResetCode{}
	err := r.db.QueryRowContext(ctx, query, email, code).Scan(
		&rc.ID,
		&rc.Email,
		&rc.Code,
		&rc.RequestedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("reset code not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying reset code: %w", err)
	}

	return rc, nil
}

// DeleteResetCodes removes every outstanding code for the email. Called
// before issuing a new code (old codes die when a new one is requested) and
// after a successful redemption (codes are one-time).
func (r *userRepository) DeleteResetCodes(ctx context.Context, email string) error {
	query := `DELETE FROM password_reset_codes WHERE email = ?`

	if _, err := r.db.ExecContext(ctx, query, email); err != nil {
		return fmt.Errorf("deleting reset codes: %w", err)
	}
	return nil
}
