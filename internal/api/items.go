package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/reclaimhq/reclaim/internal/auth"
	"github.com/reclaimhq/reclaim/internal/items"
	"github.com/reclaimhq/reclaim/internal/metrics"
)

// itemsHandler provides the REST handlers for the item lifecycle.
type itemsHandler struct {
	svc *items.Service
}

// registerItemRoutes registers item routes on r.
func registerItemRoutes(r chi.Router, svc *items.Service) {
	h := &itemsHandler{svc: svc}
	r.Get("/items", h.List)
	r.Post("/items", h.Create)
	r.Post("/items/{id}/report", h.Report)
	r.Delete("/items/{id}", h.Delete)
}

// List returns all items. No login required.
// GET /items
func (h *itemsHandler) List(w http.ResponseWriter, r *http.Request) {
	all, err := h.svc.List(r.Context())
	if err != nil {
		log.Printf("api: list items: %v", err)
		writeServiceError(w, err)
		return
	}

	resp := make([]ItemResponse, 0, len(all))
	for _, it := range all {
		resp = append(resp, toItemResponse(it))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Create adds a new item owned by the caller.
// POST /items
func (h *itemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}

	err := h.svc.Create(r.Context(), auth.IdentityFromContext(r.Context()), items.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Location:    req.Location,
		Date:        req.Date,
	})
	if err != nil {
		logServerError("create item", err)
		writeServiceError(w, err)
		return
	}

	metrics.ItemsCreatedTotal.Inc()
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Item added"})
}

// Report marks an item as reported by the caller.
// POST /items/{id}/report
func (h *itemsHandler) Report(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}

	if _, err := h.svc.Report(r.Context(), auth.IdentityFromContext(r.Context()), id); err != nil {
		logServerError("report item", err)
		writeServiceError(w, err)
		return
	}

	metrics.ItemsReportedTotal.Inc()
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Item reported"})
}

// Delete permanently removes an item.
// DELETE /items/{id}
func (h *itemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), auth.IdentityFromContext(r.Context()), id); err != nil {
		if errors.Is(err, items.ErrForbidden) {
			metrics.ForbiddenTotal.WithLabelValues("delete").Inc()
		}
		logServerError("delete item", err)
		writeServiceError(w, err)
		return
	}

	metrics.ItemsDeletedTotal.Inc()
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Item deleted"})
}

// itemID parses the {id} route parameter. A non-numeric id is a 404, same as
// an id that points at nothing.
func itemID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "item not found", "NOT_FOUND")
		return 0, false
	}
	return id, true
}
