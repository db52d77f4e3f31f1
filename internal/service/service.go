// Package service holds the operations behind each HTTP endpoint. Services
// resolve the caller, call the store functions and report failures as
// *apperr.Error values.
package service

import (
	"context"
	"errors"

	"github.com/safar/shopfront/internal/apperr"
	"github.com/safar/shopfront/internal/database"
	"github.com/safar/shopfront/internal/store"
)

func resolveUserID(ctx context.Context, q database.Querier, op, username string) (int64, error) {
	userID, err := store.GetUserIDByUsername(ctx, q, username)
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			return 0, apperr.E(op, apperr.NotFound, "user not found", err)
		}
		return 0, apperr.Wrap(op, "unable to resolve user", err)
	}
	return userID, nil
}

// classify keeps *apperr.Error values and tags anything else as Internal.
func classify(op, message string, err error) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return err
	}
	return apperr.Wrap(op, message, err)
}
