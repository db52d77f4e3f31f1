package api

import (
	"net/http"
	"strconv"

	"github.com/safar/shopfront/internal/service"
	"github.com/safar/shopfront/internal/store"
	"github.com/shopspring/decimal"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListCategories handles GET /categories
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// GetCategory handles GET /categories/{categoryId}
func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "categoryId")
	if !ok {
		writeErr(w, http.StatusBadRequest, "invalid category id")
		return
	}

	category, err := h.catalog.GetCategory(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

// ProductsInCategory handles GET /categories/{categoryId}/products
func (h *Handler) ProductsInCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "categoryId")
	if !ok {
		writeErr(w, http.StatusBadRequest, "invalid category id")
		return
	}

	products, err := h.catalog.ProductsInCategory(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// SearchProducts handles GET /products?cat=&minPrice=&maxPrice=&color=&page=&page_size=
func (h *Handler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var filter store.ProductFilter
	if raw := q.Get("cat"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeErr(w, http.StatusBadRequest, "invalid cat")
			return
		}
		filter.CategoryID = &id
	}
	for _, p := range []struct {
		name string
		dst  **decimal.Decimal
	}{
		{"minPrice", &filter.MinPrice},
		{"maxPrice", &filter.MaxPrice},
	} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			writeErr(w, http.StatusBadRequest, "invalid "+p.name)
			return
		}
		*p.dst = &d
	}
	filter.Color = q.Get("color")

	page, ok := queryInt(r, "page", 1)
	if !ok || page < 1 || page > service.MaxProductPage {
		writeErr(w, http.StatusBadRequest, "invalid page")
		return
	}
	pageSize, ok := queryInt(r, "page_size", defaultPageSize)
	if !ok || pageSize < 1 {
		writeErr(w, http.StatusBadRequest, "invalid page_size")
		return
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	result, err := h.catalog.SearchProducts(r.Context(), filter, page, pageSize)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetProduct handles GET /products/{productId}
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "productId")
	if !ok {
		writeErr(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}
