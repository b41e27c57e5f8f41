package api

import "github.com/reclaimhq/reclaim/internal/store"

// CreateItemRequest is the request body for POST /items.
type CreateItemRequest struct {
	Title       string `json:"title"`
	Status      string `json:"status"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	Date        string `json:"date,omitempty"`
}

// ItemResponse is the JSON projection of a single item. The owner email is
// intentionally absent; only the reporter is exposed.
type ItemResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Location    string `json:"location"`
	Date        string `json:"date"`
	Reported    bool   `json:"reported"`
	ReportedBy  string `json:"reported_by"`
}

// MessageResponse confirms a mutation without returning the record.
type MessageResponse struct {
	Message string `json:"message"`
}

func toItemResponse(it *store.Item) ItemResponse {
	return ItemResponse{
		ID:          it.ID,
		Title:       it.Title,
		Description: it.Description,
		Status:      it.Status,
		Location:    it.Location,
		Date:        it.Date,
		Reported:    it.Reported,
		ReportedBy:  it.ReportedBy,
	}
}
