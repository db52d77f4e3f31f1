package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/safar/shopfront/internal/apperr"
	"github.com/sirupsen/logrus"
)

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func statusOf(kind apperr.Kind) int {
	switch kind {
	case apperr.NotFound:
		return http.StatusNotFound
	case apperr.BadRequest:
		return http.StatusBadRequest
	case apperr.Unauthorized:
		return http.StatusUnauthorized
	case apperr.Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps a service error onto a status code. Internal failures are
// logged with their cause; the client only sees a generic message.
func writeError(w http.ResponseWriter, r *http.Request, log logrus.FieldLogger, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.Internal {
		log.WithError(err).
			WithField("request_id", RequestIDFrom(r.Context())).
			WithField("path", r.URL.Path).
			Error("request failed")
	}
	writeErr(w, statusOf(kind), apperr.MessageOf(err))
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func queryInt(r *http.Request, name string, fallback int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}
