package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/meveto/meveto-go-sdk/models"
)

// ErrUserNotFound is returned when no meveto_users row exists for an identifier
var ErrUserNotFound = errors.New("user not found in meveto_users")

// UserRepository records Meveto login state of local users
type UserRepository interface {
	RecordLogin(ctx context.Context, userID string) error
	RecordLogout(ctx context.Context, userID string) error
	IsLoggedIn(ctx context.Context, userID string) (bool, error)
	GetByIdentifier(ctx context.Context, userID string) (*models.MevetoUser, error)
	CountLoggedIn(ctx context.Context) (int, error)
}

// userRepository implements UserRepository on SQLite
type userRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// RecordLogin marks the user as logged in, creating the row on first login
func (r *userRepository) RecordLogin(ctx context.Context, userID string) error {
	query := `
		INSERT INTO meveto_users (user_identifier, last_logged_in, last_logged_out, is_logged_in, created_at, updated_at)
		VALUES (?, ?, NULL, 1, ?, ?)
		ON CONFLICT(user_identifier) DO UPDATE SET
			last_logged_in = excluded.last_logged_in,
			is_logged_in = 1,
			updated_at = excluded.updated_at
	`

	now := r.now()
	if _, err := r.db.ExecContext(ctx, query, userID, now, now, now); err != nil {
		return fmt.Errorf("failed to record login for %s: %w", userID, err)
	}

	return nil
}

// RecordLogout marks the user as logged out
func (r *userRepository) RecordLogout(ctx context.Context, userID string) error {
	query := `
		UPDATE meveto_users
		SET last_logged_out = ?, is_logged_in = 0, updated_at = ?
		WHERE user_identifier = ?
	`

	now := r.now()
	result, err := r.db.ExecContext(ctx, query, now, now, userID)
	if err != nil {
		return fmt.Errorf("failed to record logout for %s: %w", userID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}

	return nil
}

// IsLoggedIn reports whether the user is currently logged in. Unknown users
// are not logged in.
func (r *userRepository) IsLoggedIn(ctx context.Context, userID string) (bool, error) {
	user, err := r.GetByIdentifier(ctx, userID)
	if errors.Is(err, ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return user.IsLoggedIn, nil
}

// CountLoggedIn returns the number of users currently logged in
func (r *userRepository) CountLoggedIn(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM meveto_users WHERE is_logged_in = 1`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count logged in users: %w", err)
	}

	return count, nil
}

// GetByIdentifier retrieves the meveto_users row for userID
func (r *userRepository) GetByIdentifier(ctx context.Context, userID string) (*models.MevetoUser, error) {
	query := `
		SELECT id, user_identifier, last_logged_in, last_logged_out, is_logged_in, created_at, updated_at
		FROM meveto_users
		WHERE user_identifier = ?
	`

	var user models.MevetoUser
	var lastLoggedIn sql.NullTime
	var lastLoggedOut sql.NullTime

	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&user.ID,
		&user.UserIdentifier,
		&lastLoggedIn,
		&lastLoggedOut,
		&user.IsLoggedIn,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get meveto user: %w", err)
	}

	// Convert NULL values to nil
	if lastLoggedIn.Valid {
		user.LastLoggedIn = &lastLoggedIn.Time
	}
	if lastLoggedOut.Valid {
		user.LastLoggedOut = &lastLoggedOut.Time
	}

	return &user, nil
}
