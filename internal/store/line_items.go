package store

import (
	"context"
	"fmt"

	"github.com/safar/shopfront/internal/database"
	"github.com/safar/shopfront/internal/models"
)

func CreateLineItem(ctx context.Context, q database.Querier, item models.LineItem) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO order_line_items (order_id, product_id, sales_price, quantity, discount)
		 VALUES ($1, $2, $3, $4, $5)`,
		item.OrderID, item.ProductID, item.SalesPrice, item.Quantity, item.Discount)
	if err != nil {
		return fmt.Errorf("create line item: %w", err)
	}
	return nil
}

func ListLineItems(ctx context.Context, q database.Querier, orderID int64) ([]models.LineItem, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT order_line_item_id, order_id, product_id, sales_price, quantity, discount
		 FROM order_line_items
		 WHERE order_id = $1
		 ORDER BY order_line_item_id`,
		orderID)
	if err != nil {
		return nil, fmt.Errorf("list line items: %w", err)
	}
	defer rows.Close()

	var items []models.LineItem
	for rows.Next() {
		var item models.LineItem
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.SalesPrice,
			&item.Quantity,
			&item.Discount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan line item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return items, nil
}
