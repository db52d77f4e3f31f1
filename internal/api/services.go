package api

import (
	"context"

	"github.com/safar/shopfront/internal/auth"
	"github.com/safar/shopfront/internal/models"
	"github.com/safar/shopfront/internal/service"
	"github.com/safar/shopfront/internal/store"
)

// The handlers depend on these instead of the concrete services so they can
// be tested without a database.

type CartService interface {
	GetCart(ctx context.Context, username string) (*models.Cart, error)
	AddProduct(ctx context.Context, username string, productID int64) (*models.Cart, error)
	UpdateQuantity(ctx context.Context, username string, productID int64, quantity int) error
	RemoveProduct(ctx context.Context, username string, productID int64) (*models.Cart, error)
	Clear(ctx context.Context, username string) error
}

type OrderService interface {
	Checkout(ctx context.Context, username string) (*models.Order, error)
	ListOrders(ctx context.Context, username, cursor string, limit int) (*store.CursorPage, error)
	GetOrder(ctx context.Context, username string, orderID int64) (*models.Order, error)
}

type ProfileService interface {
	GetProfile(ctx context.Context, username string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, username string, profile models.Profile) error
}

type CatalogService interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id int64) (*models.Category, error)
	ProductsInCategory(ctx context.Context, categoryID int64) ([]models.Product, error)
	SearchProducts(ctx context.Context, filter store.ProductFilter, page, pageSize int) (*store.OffsetPage, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
}

type AuthService interface {
	Register(ctx context.Context, req service.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, username, password string) (*service.LoginResult, error)
}

type TokenParser interface {
	Parse(token string) (auth.Principal, error)
}

// HealthCheck reports whether the service can reach its dependencies.
type HealthCheck func(ctx context.Context) error

var (
	_ CartService    = (*service.CartService)(nil)
	_ OrderService   = (*service.OrderService)(nil)
	_ ProfileService = (*service.ProfileService)(nil)
	_ CatalogService = (*service.CatalogService)(nil)
	_ AuthService    = (*service.AuthService)(nil)
	_ TokenParser    = (*auth.TokenManager)(nil)
)
