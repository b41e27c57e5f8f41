package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/reclaimhq/reclaim/internal/items"
	"github.com/reclaimhq/reclaim/internal/store"
)

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// writeError writes a JSON error response with the given HTTP status code.
func writeError(w http.ResponseWriter, status int, message, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorBody{Error: message, Code: code})
}

// writeJSON writes a JSON response with the given HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeServiceError maps item service errors onto the HTTP error taxonomy.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, items.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "login required", "UNAUTHENTICATED")
	case errors.Is(err, items.ErrForbidden):
		writeError(w, http.StatusForbidden, "not authorized", "FORBIDDEN")
	case errors.Is(err, items.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error(), "INVALID_INPUT")
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "item not found", "NOT_FOUND")
	case store.IsBusyError(err):
		writeError(w, http.StatusServiceUnavailable, "server is busy, please retry", "DB_BUSY")
	default:
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
	}
}

// logServerError logs errors that are not part of the client-facing
// taxonomy. Denials and missing items are normal outcomes, not log noise.
func logServerError(op string, err error) {
	if errors.Is(err, items.ErrUnauthenticated) ||
		errors.Is(err, items.ErrForbidden) ||
		errors.Is(err, items.ErrInvalidInput) ||
		errors.Is(err, store.ErrNotFound) {
		return
	}
	log.Printf("api: %s: %v", op, err)
}
