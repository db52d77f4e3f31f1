package service

import (
	"context"
	"math"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/safar/shopfront/internal/apperr"
	"github.com/safar/shopfront/internal/store"
	"github.com/shopspring/decimal"
)

func TestSearchProductsRejectsInvertedRange(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	lo, hi := decimal.NewFromInt(50), decimal.NewFromInt(10)
	_, err = NewCatalogService(db).SearchProducts(context.Background(),
		store.ProductFilter{MinPrice: &lo, MaxPrice: &hi}, 1, 20)
	if kind := apperr.KindOf(err); kind != apperr.BadRequest {
		t.Fatalf("Expected BadRequest, got %s (%v)", kind, err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSearchProductsRejectsPageBeyondLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer db.Close()

	for _, page := range []int{0, MaxProductPage + 1, math.MaxInt} {
		_, err = NewCatalogService(db).SearchProducts(context.Background(), store.ProductFilter{}, page, 100)
		if kind := apperr.KindOf(err); kind != apperr.BadRequest {
			t.Errorf("page %d: expected BadRequest, got %s (%v)", page, kind, err)
		}
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
