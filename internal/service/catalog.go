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

// MaxProductPage bounds page so (page-1)*pageSize stays a valid OFFSET.
const MaxProductPage = 100_000

type CatalogService struct {
	db *sql.DB
}

func NewCatalogService(db *sql.DB) *CatalogService {
	return &CatalogService{db: db}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := store.ListCategories(ctx, s.db)
	if err != nil {
		return nil, apperr.Wrap("catalog.ListCategories", "unable to list categories", err)
	}
	return categories, nil
}

func (s *CatalogService) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	const op = "catalog.GetCategory"

	category, err := store.GetCategory(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, database.ErrCategoryNotFound) {
			return nil, apperr.NotFoundf(op, "category %d not found", id)
		}
		return nil, apperr.Wrap(op, "unable to load category", err)
	}
	return category, nil
}

func (s *CatalogService) ProductsInCategory(ctx context.Context, categoryID int64) ([]models.Product, error) {
	products, err := store.ListProductsByCategory(ctx, s.db, categoryID)
	if err != nil {
		return nil, apperr.Wrap("catalog.ProductsInCategory", "unable to list products", err)
	}
	return products, nil
}

func (s *CatalogService) SearchProducts(ctx context.Context, filter store.ProductFilter, page, pageSize int) (*store.OffsetPage, error) {
	const op = "catalog.SearchProducts"

	if page < 1 || page > MaxProductPage {
		return nil, apperr.BadRequestf(op, "page must be between 1 and %d", MaxProductPage)
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil && filter.MinPrice.GreaterThan(*filter.MaxPrice) {
		return nil, apperr.BadRequestf(op, "minPrice must not exceed maxPrice")
	}

	result, err := store.SearchProducts(ctx, s.db, filter, page, pageSize)
	if err != nil {
		return nil, apperr.Wrap(op, "unable to search products", err)
	}
	return result, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	const op = "catalog.GetProduct"

	product, err := store.GetProduct(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, database.ErrProductNotFound) {
			return nil, apperr.NotFoundf(op, "product %d not found", id)
		}
		return nil, apperr.Wrap(op, "unable to load product", err)
	}
	return product, nil
}
