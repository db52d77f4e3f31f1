package api

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

// Checkout handles POST /orders. The created order is not returned; the
// client reads it back from GET /orders.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	user, ok := username(w, r)
	if !ok {
		return
	}

	order, err := h.orders.Checkout(r.Context(), user)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	h.log.WithFields(logrus.Fields{
		"request_id": RequestIDFrom(r.Context()),
		"order_id":   order.ID,
	}).Debug("checkout complete")
	w.WriteHeader(http.StatusOK)
}

// ListOrders handles GET /orders?cursor=...&limit=...
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	user, ok := username(w, r)
	if !ok {
		return
	}
	limit, ok := queryInt(r, "limit", 0)
	if !ok {
		writeErr(w, http.StatusBadRequest, "invalid limit")
		return
	}

	page, err := h.orders.ListOrders(r.Context(), user, r.URL.Query().Get("cursor"), limit)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// GetOrder handles GET /orders/{orderId}
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := username(w, r)
	if !ok {
		return
	}
	orderID, ok := pathID(r, "orderId")
	if !ok {
		writeErr(w, http.StatusBadRequest, "invalid order id")
		return
	}

	order, err := h.orders.GetOrder(r.Context(), user, orderID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}
