package store

import (
	"context"
	"errors"
	"strings"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ItemStoreIface exposes all item data operations.
// No handler may query the DB directly; all access goes through this interface.
type ItemStoreIface interface {
	Create(ctx context.Context, title, description, status, location, date, ownerEmail string) (*Item, error)
	GetByID(ctx context.Context, id int64) (*Item, error)
	ListAll(ctx context.Context) ([]*Item, error)
	Report(ctx context.Context, id int64, reporterEmail string) (*Item, error)
	Delete(ctx context.Context, id int64) error
}

// IsBusyError checks whether err indicates the database was locked or busy.
// Under SQLite concurrent writers surface as SQLITE_BUSY; callers translate
// this into a retryable response rather than a hard failure.
func IsBusyError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked") ||
		strings.Contains(msg, "sqlite_busy")
}
