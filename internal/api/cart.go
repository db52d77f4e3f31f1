package api

import (
	"encoding/json"
	"net/http"

	"github.com/safar/shopfront/internal/models"
	"github.com/shopspring/decimal"
)

type cartResponse struct {
	Items map[int64]models.CartItem `json:"items"`
	Total decimal.Decimal           `json:"total"`
}

func newCartResponse(c *models.Cart) cartResponse {
	resp := cartResponse{Items: map[int64]models.CartItem{}, Total: decimal.Zero}
	if c != nil && c.Items != nil {
		resp.Items = c.Items
		resp.Total = c.Total()
	}
	return resp
}

type updateQuantityReq struct {
	Quantity int `json:"quantity"`
}

// GetCart handles GET /cart
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	user, ok := username(w, r)
	if !ok {
		return
	}

	cart, err := h.cart.GetCart(r.Context(), user)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, newCartResponse(cart))
}

// AddToCart handles POST /cart/products/{productId}
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	user, ok := username(w, r)
	if !ok {
		return
	}
	productID, ok := pathID(r, "productId")
	if !ok {
		writeErr(w, http.StatusBadRequest, "invalid product id")
		return
	}

	cart, err := h.cart.AddProduct(r.Context(), user, productID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, newCartResponse(cart))
}

// UpdateCartItem handles PUT /cart/products/{productId}
// body: { "quantity": 3 }
func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	user, ok := username(w, r)
	if !ok {
		return
	}
	productID, ok := pathID(r, "productId")
	if !ok {
		writeErr(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req updateQuantityReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.cart.UpdateQuantity(r.Context(), user, productID, req.Quantity); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// RemoveFromCart handles DELETE /cart/products/{productId}
func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	user, ok := username(w, r)
	if !ok {
		return
	}
	productID, ok := pathID(r, "productId")
	if !ok {
		writeErr(w, http.StatusBadRequest, "invalid product id")
		return
	}

	cart, err := h.cart.RemoveProduct(r.Context(), user, productID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, newCartResponse(cart))
}

// ClearCart handles DELETE /cart
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	user, ok := username(w, r)
	if !ok {
		return
	}

	if err := h.cart.Clear(r.Context(), user); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
