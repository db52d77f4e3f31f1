package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/safar/shopfront/internal/database"
	"github.com/safar/shopfront/internal/models"
)

// CreateOrder inserts the order header and returns it with the generated id.
// Line items are written separately with CreateLineItem.
func CreateOrder(ctx context.Context, q database.Querier, order models.Order) (*models.Order, error) {
	created := order
	created.LineItems = nil

	err := q.QueryRowContext(ctx,
		`INSERT INTO orders (user_id, date, address, city, state, zip, shipping_amount)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING order_id`,
		order.UserID, order.Date, order.Address, order.City, order.State, order.Zip, order.ShippingAmount,
	).Scan(&created.ID)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	return &created, nil
}

// GetOrderForUser loads an order with its line items. Orders owned by other
// users are reported as not found.
func GetOrderForUser(ctx context.Context, q database.Querier, userID, orderID int64) (*models.Order, error) {
	order := &models.Order{}

	query := `
		SELECT order_id, user_id, date, address, city, state, zip, shipping_amount
		FROM orders
		WHERE order_id = $1 AND user_id = $2`

	err := q.QueryRowContext(ctx, query, orderID, userID).Scan(
		&order.ID,
		&order.UserID,
		&order.Date,
		&order.Address,
		&order.City,
		&order.State,
		&order.Zip,
		&order.ShippingAmount,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	items, err := ListLineItems(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	order.LineItems = items

	return order, nil
}

func ListOrdersCursor(ctx context.Context, q database.Querier, userID int64, cursor string, limit int) (*CursorPage, error) {
	cursorData, err := DecodeCursor(cursor)
	if err != nil {
		return nil, fmt.Errorf("decode cursor: %w", err)
	}

	query := `
		SELECT order_id, user_id, date, address, city, state, zip, shipping_amount
		FROM orders
		WHERE user_id = $1
		  AND (date, order_id) < ($2, $3)
		ORDER BY date DESC, order_id DESC
		LIMIT $4`

	rows, err := q.QueryContext(ctx, query, userID, cursorData.Date, cursorData.ID, limit+1)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var order models.Order
		err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.Date,
			&order.Address,
			&order.City,
			&order.State,
			&order.Zip,
			&order.ShippingAmount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	hasMore := len(orders) > limit
	if hasMore {
		orders = orders[:limit]
	}

	var nextCursor string
	if hasMore && len(orders) > 0 {
		last := orders[len(orders)-1]
		nextCursor = EncodeCursor(OrderCursor{
			Date: last.Date,
			ID:   last.ID,
		})
	}

	return &CursorPage{
		Items:      orders,
		NextCursor: nextCursor,
		HasMore:    hasMore,
	}, nil
}
