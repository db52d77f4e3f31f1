package service

import (
	"context"
	"database/sql"
	"errors"
	"maps"
	"slices"
	"time"

	"github.com/safar/shopfront/internal/apperr"
	"github.com/safar/shopfront/internal/config"
	"github.com/safar/shopfront/internal/database"
	"github.com/safar/shopfront/internal/models"
	"github.com/safar/shopfront/internal/store"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type OrderService struct {
	db       *sql.DB
	shipping config.CheckoutConfig
	log      logrus.FieldLogger
	now      func() time.Time
}

func NewOrderService(db *sql.DB, shipping config.CheckoutConfig, log logrus.FieldLogger) *OrderService {
	return &OrderService{db: db, shipping: shipping, log: log, now: time.Now}
}

// Checkout turns the caller's cart into an order with one line item per
// cart row, then empties the cart. All writes share one transaction, and the
// user row stays locked until it ends so checkouts for one user run one at a
// time.
func (s *OrderService) Checkout(ctx context.Context, username string) (*models.Order, error) {
	const op = "orders.Checkout"

	userID, err := resolveUserID(ctx, s.db, op, username)
	if err != nil {
		return nil, err
	}

	var order *models.Order
	err = database.WithTransaction(ctx, s.db, database.DefaultTxOptions(), func(tx *sql.Tx) error {
		if err := store.LockUser(ctx, tx, userID); err != nil {
			return err
		}

		cart, err := store.GetCart(ctx, tx, userID)
		if err != nil {
			return err
		}
		if cart.IsEmpty() {
			return apperr.BadRequestf(op, "shopping cart is empty")
		}

		created, err := store.CreateOrder(ctx, tx, models.Order{
			UserID:         userID,
			Date:           s.now(),
			Address:        s.shipping.Address,
			City:           s.shipping.City,
			State:          s.shipping.State,
			Zip:            s.shipping.Zip,
			ShippingAmount: s.shipping.ShippingAmount,
		})
		if err != nil {
			return err
		}

		for _, productID := range slices.Sorted(maps.Keys(cart.Items)) {
			item := cart.Items[productID]
			lineItem := models.LineItem{
				OrderID:    created.ID,
				ProductID:  productID,
				SalesPrice: item.Product.Price,
				Quantity:   item.Quantity,
				Discount:   decimal.Zero,
			}
			if err := store.CreateLineItem(ctx, tx, lineItem); err != nil {
				return err
			}
			created.LineItems = append(created.LineItems, lineItem)
		}

		if err := store.ClearCart(ctx, tx, userID); err != nil {
			return err
		}

		order = created
		return nil
	})
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			return nil, apperr.E(op, apperr.NotFound, "user not found", err)
		}
		return nil, classify(op, "checkout failed", err)
	}

	s.log.WithFields(logrus.Fields{
		"user_id":    userID,
		"order_id":   order.ID,
		"line_items": len(order.LineItems),
	}).Info("order created")

	return order, nil
}
