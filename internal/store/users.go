package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/safar/shopfront/internal/database"
	"github.com/safar/shopfront/internal/models"
)

func CreateUser(ctx context.Context, q database.Querier, username, hashedPassword, role string) (*models.User, error) {
	user := &models.User{}

	query := `
		INSERT INTO users (username, hashed_password, role, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING user_id, username, hashed_password, role, created_at`

	err := q.QueryRowContext(ctx, query, username, hashedPassword, role).Scan(
		&user.ID,
		&user.Username,
		&user.HashedPassword,
		&user.Role,
		&user.CreatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, database.ErrUsernameTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

func GetUserByUsername(ctx context.Context, q database.Querier, username string) (*models.User, error) {
	user := &models.User{}

	query := `
		SELECT user_id, username, hashed_password, role, created_at
		FROM users
		WHERE username = $1`

	err := q.QueryRowContext(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.HashedPassword,
		&user.Role,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}

	return user, nil
}

// GetUserIDByUsername resolves an authenticated principal to its user id.
func GetUserIDByUsername(ctx context.Context, q database.Querier, username string) (int64, error) {
	var id int64
	err := q.QueryRowContext(ctx,
		`SELECT user_id FROM users WHERE username = $1`,
		username).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, database.ErrUserNotFound
		}
		return 0, fmt.Errorf("get user id: %w", err)
	}
	return id, nil
}

// LockUser takes a row lock on the user until the surrounding transaction
// ends. Checkouts for the same user queue behind it.
func LockUser(ctx context.Context, tx *sql.Tx, userID int64) error {
	var id int64
	err := tx.QueryRowContext(ctx,
		`SELECT user_id FROM users WHERE user_id = $1 FOR UPDATE`,
		userID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return database.ErrUserNotFound
		}
		return fmt.Errorf("lock user: %w", err)
	}
	return nil
}
