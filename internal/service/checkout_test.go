package service

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/safar/shopfront/internal/apperr"
	"github.com/safar/shopfront/internal/config"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

var (
	queryUserID   = regexp.QuoteMeta("SELECT user_id FROM users WHERE username = $1")
	queryLockUser = regexp.QuoteMeta("SELECT user_id FROM users WHERE user_id = $1 FOR UPDATE")
	queryCart     = regexp.QuoteMeta("FROM shopping_cart sc")
	insertOrder   = regexp.QuoteMeta("INSERT INTO orders")
	insertLine    = regexp.QuoteMeta("INSERT INTO order_line_items")
	deleteCart    = regexp.QuoteMeta("DELETE FROM shopping_cart WHERE user_id = $1")
)

var cartColumns = []string{
	"quantity", "discount_percent",
	"product_id", "name", "price", "category_id", "description",
	"color", "stock", "featured", "image_url",
}

var testShipping = config.CheckoutConfig{
	Address:        "123 Main Street",
	City:           "Dallas",
	State:          "TX",
	Zip:            "75001",
	ShippingAmount: decimal.Zero,
}

func newTestOrderService(t *testing.T) (*OrderService, sqlmock.Sqlmock, *test.Hook) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger, hook := test.NewNullLogger()
	svc := NewOrderService(db, testShipping, logger)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }

	return svc, mock, hook
}

func expectUser(mock sqlmock.Sqlmock, username string, id int64) {
	mock.ExpectQuery(queryUserID).
		WithArgs(username).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(id))
}

func TestCheckoutCreatesOrderLineItemsAndClearsCart(t *testing.T) {
	svc, mock, hook := newTestOrderService(t)

	expectUser(mock, "gary", 1)
	mock.ExpectBegin()
	mock.ExpectQuery(queryLockUser).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(int64(1)))
	mock.ExpectQuery(queryCart).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(cartColumns).
			AddRow(2, "0", int64(100), "Women's Dress", "49.99", int64(2), "", "Red", 75, true, ""))
	mock.ExpectQuery(insertOrder).
		WithArgs(int64(1), svc.now(), "123 Main Street", "Dallas", "TX", "75001", "0").
		WillReturnRows(sqlmock.NewRows([]string{"order_id"}).AddRow(int64(10)))
	mock.ExpectExec(insertLine).
		WithArgs(int64(10), int64(100), "49.99", 2, "0").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(deleteCart).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	order, err := svc.Checkout(context.Background(), "gary")
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	if order.ID != 10 {
		t.Errorf("Expected order id 10, got %d", order.ID)
	}
	if len(order.LineItems) != 1 {
		t.Fatalf("Expected 1 line item, got %d", len(order.LineItems))
	}
	li := order.LineItems[0]
	if li.ProductID != 100 || li.Quantity != 2 || !li.Discount.IsZero() ||
		!li.SalesPrice.Equal(decimal.RequireFromString("49.99")) {
		t.Errorf("Unexpected line item: %+v", li)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}

	if entry := hook.LastEntry(); entry == nil || entry.Level != logrus.InfoLevel || entry.Data["order_id"] != int64(10) {
		t.Errorf("Expected order creation to be logged, got %+v", entry)
	}
}

func TestCheckoutUsesCurrentCatalogPriceForEveryItem(t *testing.T) {
	svc, mock, _ := newTestOrderService(t)

	expectUser(mock, "gary", 1)
	mock.ExpectBegin()
	mock.ExpectQuery(queryLockUser).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(int64(1)))
	mock.ExpectQuery(queryCart).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(cartColumns).
			AddRow(1, "0", int64(3), "Headphones", "89.99", int64(1), "", "White", 100, true, "").
			AddRow(4, "15", int64(7), "Coffee Maker", "79.99", int64(3), "", "Black", 60, true, ""))
	mock.ExpectQuery(insertOrder).
		WillReturnRows(sqlmock.NewRows([]string{"order_id"}).AddRow(int64(11)))
	mock.ExpectExec(insertLine).
		WithArgs(int64(11), int64(3), "89.99", 1, "0").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(insertLine).
		WithArgs(int64(11), int64(7), "79.99", 4, "0").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectExec(deleteCart).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	order, err := svc.Checkout(context.Background(), "gary")
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if len(order.LineItems) != 2 {
		t.Errorf("Expected 2 line items, got %d", len(order.LineItems))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCheckoutEmptyCartIsBadRequestWithoutWrites(t *testing.T) {
	svc, mock, _ := newTestOrderService(t)

	expectUser(mock, "gary", 1)
	mock.ExpectBegin()
	mock.ExpectQuery(queryLockUser).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(int64(1)))
	mock.ExpectQuery(queryCart).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(cartColumns))
	mock.ExpectRollback()

	_, err := svc.Checkout(context.Background(), "gary")
	if kind := apperr.KindOf(err); kind != apperr.BadRequest {
		t.Fatalf("Expected BadRequest, got %s (%v)", kind, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCheckoutUnknownUserIsNotFoundWithoutWrites(t *testing.T) {
	svc, mock, _ := newTestOrderService(t)

	mock.ExpectQuery(queryUserID).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := svc.Checkout(context.Background(), "ghost")
	if kind := apperr.KindOf(err); kind != apperr.NotFound {
		t.Fatalf("Expected NotFound, got %s (%v)", kind, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCheckoutLineItemFailureRollsBack(t *testing.T) {
	svc, mock, _ := newTestOrderService(t)

	expectUser(mock, "gary", 1)
	mock.ExpectBegin()
	mock.ExpectQuery(queryLockUser).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(int64(1)))
	mock.ExpectQuery(queryCart).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(cartColumns).
			AddRow(1, "0", int64(3), "Headphones", "99.99", int64(1), "", "White", 100, true, "").
			AddRow(1, "0", int64(7), "Coffee Maker", "79.99", int64(3), "", "Black", 60, true, ""))
	mock.ExpectQuery(insertOrder).
		WillReturnRows(sqlmock.NewRows([]string{"order_id"}).AddRow(int64(12)))
	mock.ExpectExec(insertLine).
		WithArgs(int64(12), int64(3), "99.99", 1, "0").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(insertLine).
		WithArgs(int64(12), int64(7), "79.99", 1, "0").
		WillReturnError(errors.New("connection reset by peer"))
	mock.ExpectRollback()

	_, err := svc.Checkout(context.Background(), "gary")
	if kind := apperr.KindOf(err); kind != apperr.Internal {
		t.Fatalf("Expected Internal, got %s (%v)", kind, err)
	}
	if msg := apperr.MessageOf(err); msg != "checkout failed" {
		t.Errorf("Expected generic message, got %q", msg)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCheckoutClearFailureRollsBack(t *testing.T) {
	svc, mock, _ := newTestOrderService(t)

	expectUser(mock, "gary", 1)
	mock.ExpectBegin()
	mock.ExpectQuery(queryLockUser).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(int64(1)))
	mock.ExpectQuery(queryCart).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(cartColumns).
			AddRow(1, "0", int64(3), "Headphones", "99.99", int64(1), "", "White", 100, true, ""))
	mock.ExpectQuery(insertOrder).
		WillReturnRows(sqlmock.NewRows([]string{"order_id"}).AddRow(int64(13)))
	mock.ExpectExec(insertLine).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(deleteCart).
		WithArgs(int64(1)).
		WillReturnError(errors.New("deadlock detected"))
	mock.ExpectRollback()

	_, err := svc.Checkout(context.Background(), "gary")
	if kind := apperr.KindOf(err); kind != apperr.Internal {
		t.Fatalf("Expected Internal, got %s (%v)", kind, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSecondCheckoutFindsEmptyCart(t *testing.T) {
	svc, mock, _ := newTestOrderService(t)

	expectUser(mock, "gary", 1)
	mock.ExpectBegin()
	mock.ExpectQuery(queryLockUser).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(int64(1)))
	mock.ExpectQuery(queryCart).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(cartColumns).
			AddRow(2, "0", int64(100), "Women's Dress", "49.99", int64(2), "", "Red", 75, true, ""))
	mock.ExpectQuery(insertOrder).
		WillReturnRows(sqlmock.NewRows([]string{"order_id"}).AddRow(int64(10)))
	mock.ExpectExec(insertLine).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(deleteCart).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	expectUser(mock, "gary", 1)
	mock.ExpectBegin()
	mock.ExpectQuery(queryLockUser).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(int64(1)))
	mock.ExpectQuery(queryCart).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(cartColumns))
	mock.ExpectRollback()

	if _, err := svc.Checkout(context.Background(), "gary"); err != nil {
		t.Fatalf("first Checkout: %v", err)
	}

	_, err := svc.Checkout(context.Background(), "gary")
	if kind := apperr.KindOf(err); kind != apperr.BadRequest {
		t.Fatalf("Expected second checkout to be BadRequest, got %s (%v)", kind, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
