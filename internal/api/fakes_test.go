package api

import (
	"context"

	"github.com/safar/shopfront/internal/models"
	"github.com/safar/shopfront/internal/service"
	"github.com/safar/shopfront/internal/store"
)

type fakeCart struct {
	cart     *models.Cart
	err      error
	quantity int
	calls    []string
}

func (f *fakeCart) GetCart(ctx context.Context, username string) (*models.Cart, error) {
	f.calls = append(f.calls, "get:"+username)
	return f.cart, f.err
}

func (f *fakeCart) AddProduct(ctx context.Context, username string, productID int64) (*models.Cart, error) {
	f.calls = append(f.calls, "add:"+username)
	return f.cart, f.err
}

func (f *fakeCart) UpdateQuantity(ctx context.Context, username string, productID int64, quantity int) error {
	f.calls = append(f.calls, "update:"+username)
	f.quantity = quantity
	return f.err
}

func (f *fakeCart) RemoveProduct(ctx context.Context, username string, productID int64) (*models.Cart, error) {
	f.calls = append(f.calls, "remove:"+username)
	return f.cart, f.err
}

func (f *fakeCart) Clear(ctx context.Context, username string) error {
	f.calls = append(f.calls, "clear:"+username)
	return f.err
}

type fakeOrders struct {
	order *models.Order
	page  *store.CursorPage
	err   error
	users []string
}

func (f *fakeOrders) Checkout(ctx context.Context, username string) (*models.Order, error) {
	f.users = append(f.users, username)
	return f.order, f.err
}

func (f *fakeOrders) ListOrders(ctx context.Context, username, cursor string, limit int) (*store.CursorPage, error) {
	f.users = append(f.users, username)
	return f.page, f.err
}

func (f *fakeOrders) GetOrder(ctx context.Context, username string, orderID int64) (*models.Order, error) {
	f.users = append(f.users, username)
	return f.order, f.err
}

type fakeProfiles struct {
	profile *models.Profile
	saved   models.Profile
	err     error
}

func (f *fakeProfiles) GetProfile(ctx context.Context, username string) (*models.Profile, error) {
	return f.profile, f.err
}

func (f *fakeProfiles) UpdateProfile(ctx context.Context, username string, profile models.Profile) error {
	f.saved = profile
	return f.err
}

type fakeCatalog struct {
	filter   store.ProductFilter
	page     int
	pageSize int
	product  *models.Product
	err      error
}

func (f *fakeCatalog) ListCategories(ctx context.Context) ([]models.Category, error) {
	return []models.Category{{ID: 1, Name: "Electronics"}}, f.err
}

func (f *fakeCatalog) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	return &models.Category{ID: id}, f.err
}

func (f *fakeCatalog) ProductsInCategory(ctx context.Context, categoryID int64) ([]models.Product, error) {
	return []models.Product{}, f.err
}

func (f *fakeCatalog) SearchProducts(ctx context.Context, filter store.ProductFilter, page, pageSize int) (*store.OffsetPage, error) {
	f.filter, f.page, f.pageSize = filter, page, pageSize
	return &store.OffsetPage{Items: []models.Product{}, Page: page, PageSize: pageSize}, f.err
}

func (f *fakeCatalog) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	return f.product, f.err
}

type fakeAuth struct {
	user   *models.User
	result *service.LoginResult
	err    error
}

func (f *fakeAuth) Register(ctx context.Context, req service.RegisterRequest) (*models.User, error) {
	return f.user, f.err
}

func (f *fakeAuth) Login(ctx context.Context, username, password string) (*service.LoginResult, error) {
	return f.result, f.err
}
