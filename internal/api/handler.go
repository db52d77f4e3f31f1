package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/safar/shopfront/internal/auth"
	"github.com/sirupsen/logrus"
)

type Services struct {
	Cart     CartService
	Orders   OrderService
	Profiles ProfileService
	Catalog  CatalogService
	Auth     AuthService
	Tokens   TokenParser
	Health   HealthCheck
}

// Handler is the HTTP layer over the services.
type Handler struct {
	cart     CartService
	orders   OrderService
	profiles ProfileService
	catalog  CatalogService
	auth     AuthService
	tokens   TokenParser
	health   HealthCheck
	log      logrus.FieldLogger
}

func NewHandler(s Services, log logrus.FieldLogger) *Handler {
	return &Handler{
		cart:     s.Cart,
		orders:   s.Orders,
		profiles: s.Profiles,
		catalog:  s.Catalog,
		auth:     s.Auth,
		tokens:   s.Tokens,
		health:   s.Health,
		log:      log,
	}
}

// RegisterRoutes registers all routes on the provided router
func (h *Handler) RegisterRoutes(r *mux.Router) {
	authed := func(f http.HandlerFunc) http.Handler {
		return RequireAuth(h.tokens)(f)
	}

	r.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)

	// Authentication
	r.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	r.HandleFunc("/register", h.Register).Methods(http.MethodPost)

	// Catalog
	r.HandleFunc("/categories", h.ListCategories).Methods(http.MethodGet)
	r.HandleFunc("/categories/{categoryId}", h.GetCategory).Methods(http.MethodGet)
	r.HandleFunc("/categories/{categoryId}/products", h.ProductsInCategory).Methods(http.MethodGet)
	r.HandleFunc("/products", h.SearchProducts).Methods(http.MethodGet)
	r.HandleFunc("/products/{productId}", h.GetProduct).Methods(http.MethodGet)

	// Cart
	r.Handle("/cart", authed(h.GetCart)).Methods(http.MethodGet)
	r.Handle("/cart", authed(h.ClearCart)).Methods(http.MethodDelete)
	r.Handle("/cart/products/{productId}", authed(h.AddToCart)).Methods(http.MethodPost)
	r.Handle("/cart/products/{productId}", authed(h.UpdateCartItem)).Methods(http.MethodPut)
	r.Handle("/cart/products/{productId}", authed(h.RemoveFromCart)).Methods(http.MethodDelete)

	// Orders
	r.Handle("/orders", authed(h.Checkout)).Methods(http.MethodPost)
	r.Handle("/orders", authed(h.ListOrders)).Methods(http.MethodGet)
	r.Handle("/orders/{orderId}", authed(h.GetOrder)).Methods(http.MethodGet)

	// Profile
	r.Handle("/profile", authed(h.GetProfile)).Methods(http.MethodGet)
	r.Handle("/profile", authed(h.UpdateProfile)).Methods(http.MethodPut)
}

// NewRouter wires the routes behind the request id and logging middleware.
func NewRouter(h *Handler, log logrus.FieldLogger, logAll bool) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestID, Logging(log, logAll))
	h.RegisterRoutes(r)
	return r
}

// username returns the authenticated caller. RequireAuth guarantees it is set
// on every protected route.
func username(w http.ResponseWriter, r *http.Request) (string, bool) {
	p, ok := auth.PrincipalFrom(r.Context())
	if !ok || p.Username == "" {
		writeErr(w, http.StatusUnauthorized, "authentication required")
		return "", false
	}
	return p.Username, true
}
