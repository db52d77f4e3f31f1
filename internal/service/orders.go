package service

import (
	"context"
	"errors"

	"github.com/safar/shopfront/internal/apperr"
	"github.com/safar/shopfront/internal/database"
	"github.com/safar/shopfront/internal/models"
	"github.com/safar/shopfront/internal/store"
)

const (
	DefaultOrderPageSize = 20
	MaxOrderPageSize     = 100
)

func (s *OrderService) ListOrders(ctx context.Context, username, cursor string, limit int) (*store.CursorPage, error) {
	const op = "orders.List"

	if limit < 1 || limit > MaxOrderPageSize {
		limit = DefaultOrderPageSize
	}

	userID, err := resolveUserID(ctx, s.db, op, username)
	if err != nil {
		return nil, err
	}

	if _, err := store.DecodeCursor(cursor); err != nil {
		return nil, apperr.E(op, apperr.BadRequest, "invalid cursor", err)
	}

	page, err := store.ListOrdersCursor(ctx, s.db, userID, cursor, limit)
	if err != nil {
		return nil, apperr.Wrap(op, "unable to list orders", err)
	}
	return page, nil
}

func (s *OrderService) GetOrder(ctx context.Context, username string, orderID int64) (*models.Order, error) {
	const op = "orders.Get"

	userID, err := resolveUserID(ctx, s.db, op, username)
	if err != nil {
		return nil, err
	}

	order, err := store.GetOrderForUser(ctx, s.db, userID, orderID)
	if err != nil {
		if errors.Is(err, database.ErrOrderNotFound) {
			return nil, apperr.NotFoundf(op, "order %d not found", orderID)
		}
		return nil, apperr.Wrap(op, "unable to load order", err)
	}
	return order, nil
}
