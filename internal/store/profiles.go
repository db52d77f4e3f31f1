package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/safar/shopfront/internal/database"
	"github.com/safar/shopfront/internal/models"
)

func CreateProfile(ctx context.Context, q database.Querier, profile models.Profile) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO profiles (user_id, first_name, last_name, phone, email, address, city, state, zip)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		profile.UserID, profile.FirstName, profile.LastName, profile.Phone, profile.Email,
		profile.Address, profile.City, profile.State, profile.Zip)
	if err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

func GetProfile(ctx context.Context, q database.Querier, userID int64) (*models.Profile, error) {
	profile := &models.Profile{}

	query := `
		SELECT user_id, first_name, last_name, phone, email, address, city, state, zip
		FROM profiles
		WHERE user_id = $1`

	err := q.QueryRowContext(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.FirstName,
		&profile.LastName,
		&profile.Phone,
		&profile.Email,
		&profile.Address,
		&profile.City,
		&profile.State,
		&profile.Zip,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrProfileNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}

	return profile, nil
}

// SaveProfile writes every field of the profile, creating the row for users
// registered before profiles existed.
func SaveProfile(ctx context.Context, q database.Querier, profile models.Profile) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO profiles (user_id, first_name, last_name, phone, email, address, city, state, zip)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (user_id) DO UPDATE
		 SET first_name = EXCLUDED.first_name,
		     last_name = EXCLUDED.last_name,
		     phone = EXCLUDED.phone,
		     email = EXCLUDED.email,
		     address = EXCLUDED.address,
		     city = EXCLUDED.city,
		     state = EXCLUDED.state,
		     zip = EXCLUDED.zip`,
		profile.UserID, profile.FirstName, profile.LastName, profile.Phone, profile.Email,
		profile.Address, profile.City, profile.State, profile.Zip)
	if err != nil {
		if database.IsConstraintViolation(err) {
			return fmt.Errorf("save profile: %w", database.ErrInvalidValue)
		}
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}
