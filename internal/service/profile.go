package service

import (
	"context"
	"database/sql"
	"errors"
	"unicode/utf8"

	"github.com/safar/shopfront/internal/apperr"
	"github.com/safar/shopfront/internal/database"
	"github.com/safar/shopfront/internal/models"
	"github.com/safar/shopfront/internal/store"
)

type ProfileService struct {
	db *sql.DB
}

func NewProfileService(db *sql.DB) *ProfileService {
	return &ProfileService{db: db}
}

func (s *ProfileService) GetProfile(ctx context.Context, username string) (*models.Profile, error) {
	const op = "profile.Get"

	userID, err := resolveUserID(ctx, s.db, op, username)
	if err != nil {
		return nil, err
	}

	profile, err := store.GetProfile(ctx, s.db, userID)
	if err != nil {
		if errors.Is(err, database.ErrProfileNotFound) {
			return nil, apperr.NotFoundf(op, "profile not found for user %d", userID)
		}
		return nil, apperr.Wrap(op, "unable to load profile", err)
	}
	return profile, nil
}

// UpdateProfile saves the caller's profile. The user id always comes from
// the principal, never from the request body.
func (s *ProfileService) UpdateProfile(ctx context.Context, username string, profile models.Profile) error {
	const op = "profile.Update"

	userID, err := resolveUserID(ctx, s.db, op, username)
	if err != nil {
		return err
	}

	if err := validateProfile(op, profile); err != nil {
		return err
	}

	profile.UserID = userID
	if err := store.SaveProfile(ctx, s.db, profile); err != nil {
		if errors.Is(err, database.ErrInvalidValue) {
			return apperr.E(op, apperr.BadRequest, "invalid profile", err)
		}
		return apperr.Wrap(op, "unable to update profile", err)
	}
	return nil
}

// validateProfile checks each field against its profiles column width.
func validateProfile(op string, p models.Profile) error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"firstName", p.FirstName, 50},
		{"lastName", p.LastName, 50},
		{"phone", p.Phone, 20},
		{"email", p.Email, 200},
		{"address", p.Address, 200},
		{"city", p.City, 50},
		{"state", p.State, 2},
		{"zip", p.Zip, 20},
	}
	for _, f := range fields {
		if utf8.RuneCountInString(f.value) > f.max {
			return apperr.BadRequestf(op, "%s must be at most %d characters", f.name, f.max)
		}
	}
	return nil
}
