package store

import (
	"context"
	"fmt"

	"github.com/safar/shopfront/internal/database"
	"github.com/safar/shopfront/internal/models"
)

// GetCart returns the user's cart with each row joined to its current
// catalog product. A user without rows gets an empty cart.
func GetCart(ctx context.Context, q database.Querier, userID int64) (*models.Cart, error) {
	query := `
		SELECT sc.quantity, sc.discount_percent,
		       p.product_id, p.name, p.price, p.category_id, p.description,
		       p.color, p.stock, p.featured, p.image_url
		FROM shopping_cart sc
		JOIN products p ON p.product_id = sc.product_id
		WHERE sc.user_id = $1
		ORDER BY sc.product_id`

	rows, err := q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	defer rows.Close()

	cart := models.NewCart(userID)
	for rows.Next() {
		var item models.CartItem
		err := rows.Scan(
			&item.Quantity,
			&item.DiscountPercent,
			&item.Product.ID,
			&item.Product.Name,
			&item.Product.Price,
			&item.Product.CategoryID,
			&item.Product.Description,
			&item.Product.Color,
			&item.Product.Stock,
			&item.Product.Featured,
			&item.Product.ImageURL,
		)
		if err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		cart.Items[item.Product.ID] = item
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return cart, nil
}

func CartItemExists(ctx context.Context, q database.Querier, userID, productID int64) (bool, error) {
	var exists bool
	err := q.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM shopping_cart WHERE user_id = $1 AND product_id = $2)",
		userID, productID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check cart item exists: %w", err)
	}
	return exists, nil
}

// AddCartItem inserts the product with quantity 1 and no discount. It does
// not upsert: an existing row is reported as ErrCartItemExists.
func AddCartItem(ctx context.Context, q database.Querier, userID, productID int64) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO shopping_cart (user_id, product_id, quantity, discount_percent)
		 VALUES ($1, $2, 1, 0)`,
		userID, productID)
	if err != nil {
		switch {
		case database.IsUniqueViolation(err):
			return database.ErrCartItemExists
		case database.IsForeignKeyViolation(err):
			return database.ErrProductNotFound
		}
		return fmt.Errorf("add cart item: %w", err)
	}
	return nil
}

// IncrementCartItem adds one to the row's quantity in a single statement and
// reports whether a row was there to update.
func IncrementCartItem(ctx context.Context, q database.Querier, userID, productID int64) (bool, error) {
	result, err := q.ExecContext(ctx,
		`UPDATE shopping_cart
		 SET quantity = quantity + 1
		 WHERE user_id = $1 AND product_id = $2`,
		userID, productID)
	if err != nil {
		return false, fmt.Errorf("increment cart item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("increment cart item rows affected: %w", err)
	}
	return affected > 0, nil
}

// SetCartItemQuantity updates an existing row. A missing row is not an
// error; callers check CartItemExists first.
func SetCartItemQuantity(ctx context.Context, q database.Querier, userID, productID int64, quantity int) error {
	_, err := q.ExecContext(ctx,
		`UPDATE shopping_cart
		 SET quantity = $1
		 WHERE user_id = $2 AND product_id = $3`,
		quantity, userID, productID)
	if err != nil {
		return fmt.Errorf("set cart item quantity: %w", err)
	}
	return nil
}

func RemoveCartItem(ctx context.Context, q database.Querier, userID, productID int64) error {
	_, err := q.ExecContext(ctx,
		`DELETE FROM shopping_cart WHERE user_id = $1 AND product_id = $2`,
		userID, productID)
	if err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}
	return nil
}

func ClearCart(ctx context.Context, q database.Querier, userID int64) error {
	_, err := q.ExecContext(ctx,
		`DELETE FROM shopping_cart WHERE user_id = $1`,
		userID)
	if err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
