package api

import (
	"encoding/json"
	"net/http"

	"github.com/safar/shopfront/internal/models"
)

// GetProfile handles GET /profile
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := username(w, r)
	if !ok {
		return
	}

	profile, err := h.profiles.GetProfile(r.Context(), user)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// UpdateProfile handles PUT /profile
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := username(w, r)
	if !ok {
		return
	}

	var profile models.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.profiles.UpdateProfile(r.Context(), user, profile); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
