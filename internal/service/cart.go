package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/safar/shopfront/internal/apperr"
	"github.com/safar/shopfront/internal/database"
	"github.com/safar/shopfront/internal/models"
	"github.com/safar/shopfront/internal/store"
)

type CartService struct {
	db *sql.DB
}

func NewCartService(db *sql.DB) *CartService {
	return &CartService{db: db}
}

func (s *CartService) GetCart(ctx context.Context, username string) (*models.Cart, error) {
	const op = "cart.Get"

	userID, err := resolveUserID(ctx, s.db, op, username)
	if err != nil {
		return nil, err
	}

	cart, err := store.GetCart(ctx, s.db, userID)
	if err != nil {
		return nil, apperr.Wrap(op, "unable to load shopping cart", err)
	}
	return cart, nil
}

// AddProduct puts one more unit of the product in the cart: a new row with
// quantity 1, or the existing row's quantity plus one.
func (s *CartService) AddProduct(ctx context.Context, username string, productID int64) (*models.Cart, error) {
	const op = "cart.AddProduct"

	userID, err := resolveUserID(ctx, s.db, op, username)
	if err != nil {
		return nil, err
	}

	if _, err := store.GetProduct(ctx, s.db, productID); err != nil {
		if errors.Is(err, database.ErrProductNotFound) {
			return nil, apperr.NotFoundf(op, "product %d not found", productID)
		}
		return nil, apperr.Wrap(op, "unable to add product to cart", err)
	}

	if err := addOrIncrement(ctx, s.db, userID, productID); err != nil {
		if errors.Is(err, database.ErrProductNotFound) {
			return nil, apperr.NotFoundf(op, "product %d not found", productID)
		}
		return nil, apperr.Wrap(op, "unable to add product to cart", err)
	}

	cart, err := store.GetCart(ctx, s.db, userID)
	if err != nil {
		return nil, apperr.Wrap(op, "unable to add product to cart", err)
	}
	return cart, nil
}

// addOrIncrement bumps an existing row, or inserts one when there is none.
// An insert that loses a race with another insert bumps the winner's row.
func addOrIncrement(ctx context.Context, q database.Querier, userID, productID int64) error {
	updated, err := store.IncrementCartItem(ctx, q, userID, productID)
	if err != nil || updated {
		return err
	}

	err = store.AddCartItem(ctx, q, userID, productID)
	if !errors.Is(err, database.ErrCartItemExists) {
		return err
	}

	_, err = store.IncrementCartItem(ctx, q, userID, productID)
	return err
}

func (s *CartService) UpdateQuantity(ctx context.Context, username string, productID int64, quantity int) error {
	const op = "cart.UpdateQuantity"

	if quantity < 1 {
		return apperr.BadRequestf(op, "quantity must be at least 1")
	}

	userID, err := resolveUserID(ctx, s.db, op, username)
	if err != nil {
		return err
	}

	exists, err := store.CartItemExists(ctx, s.db, userID, productID)
	if err != nil {
		return apperr.Wrap(op, "failed to update cart item", err)
	}
	if !exists {
		return apperr.NotFoundf(op, "product %d not found in shopping cart", productID)
	}

	if err := store.SetCartItemQuantity(ctx, s.db, userID, productID, quantity); err != nil {
		return apperr.Wrap(op, "failed to update cart item", err)
	}
	return nil
}

func (s *CartService) RemoveProduct(ctx context.Context, username string, productID int64) (*models.Cart, error) {
	const op = "cart.RemoveProduct"

	userID, err := resolveUserID(ctx, s.db, op, username)
	if err != nil {
		return nil, err
	}

	if err := store.RemoveCartItem(ctx, s.db, userID, productID); err != nil {
		return nil, apperr.Wrap(op, "failed to remove cart item", err)
	}

	cart, err := store.GetCart(ctx, s.db, userID)
	if err != nil {
		return nil, apperr.Wrap(op, "failed to remove cart item", err)
	}
	return cart, nil
}

func (s *CartService) Clear(ctx context.Context, username string) error {
	const op = "cart.Clear"

	userID, err := resolveUserID(ctx, s.db, op, username)
	if err != nil {
		return err
	}

	if err := store.ClearCart(ctx, s.db, userID); err != nil {
		return apperr.Wrap(op, "failed to clear cart", err)
	}
	return nil
}
