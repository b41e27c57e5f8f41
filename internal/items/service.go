// Package items holds the authorization and lifecycle rules for items.
// Every operation takes the caller's identity as an explicit argument; a nil
// identity means anonymous. The service never reads ambient session state.
package items

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/reclaimhq/reclaim/internal/auth"
	"github.com/reclaimhq/reclaim/internal/store"
)

var (
	// ErrUnauthenticated is returned when an operation requires a login and
	// the caller has none.
	ErrUnauthenticated = errors.New("login required")

	// ErrForbidden is returned when an authenticated caller lacks the rights
	// for the operation.
	ErrForbidden = errors.New("not authorized")

	// ErrInvalidInput is returned when a required field is missing or empty.
	ErrInvalidInput = errors.New("missing required field")
)

// CreateInput is the validated payload for creating an item. Title and
// Status are required; the rest are optional free-form strings. Date is
// caller-supplied and deliberately not parsed.
type CreateInput struct {
	Title       string
	Description string
	Status      string
	Location    string
	Date        string
}

// Service decides ALLOW or DENY for each item operation and applies the
// resulting mutation through the item store as one atomic unit.
type Service struct {
	items store.ItemStoreIface
}

func NewService(items store.ItemStoreIface) *Service {
	return &Service{items: items}
}

// List returns all items. No identity required; callers see every item.
// The owner email never leaves this layer's persistence boundary via the
// API projection.
func (s *Service) List(ctx context.Context) ([]*store.Item, error) {
	return s.items.ListAll(ctx)
}

// Create persists a new item owned by the caller. Anonymous callers are
// denied; title and status must be present.
func (s *Service) Create(ctx context.Context, identity *auth.Identity, in CreateInput) error {
	if identity == nil {
		return ErrUnauthenticated
	}
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Status) == "" {
		return fmt.Errorf("%w: status", ErrInvalidInput)
	}

	_, err := s.items.Create(ctx, in.Title, in.Description, in.Status, in.Location, in.Date, identity.Email)
	return err
}

// Report marks the item as reported by the caller. Any authenticated
// identity may report, including the item's owner and previous reporters;
// the latest reporter wins and earlier reporters are forgotten.
func (s *Service) Report(ctx context.Context, identity *auth.Identity, id int64) (*store.Item, error) {
	if identity == nil {
		return nil, ErrUnauthenticated
	}
	return s.items.Report(ctx, id, identity.Email)
}

// Delete permanently removes the item. Allowed for admins and for the
// identity recorded in reported_by. Note the rule is keyed on the reporter,
// not the owner: a non-admin owner cannot delete their own unreported item.
func (s *Service) Delete(ctx context.Context, identity *auth.Identity, id int64) error {
	if identity == nil {
		return ErrUnauthenticated
	}

	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !canDelete(identity, item) {
		return ErrForbidden
	}

	return s.items.Delete(ctx, item.ID)
}

// canDelete is the delete authorization rule: admin, or the recorded
// reporter of the item.
func canDelete(identity *auth.Identity, item *store.Item) bool {
	if identity.IsAdmin {
		return true
	}
	return item.ReportedBy != "" && identity.Email == item.ReportedBy
}
