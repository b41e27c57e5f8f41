package store

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// Item represents a row in the items table. OwnerEmail is recorded at
// creation for provenance and is never exposed through the API; only
// ReportedBy is.
type Item struct {
	ID          int64  `db:"id"`
	Title       string `db:"title"`
	Description string `db:"description"`
	Status      string `db:"status"`
	Location    string `db:"location"`
	Date        string `db:"date"`
	Reported    bool   `db:"reported"`
	ReportedBy  string `db:"reported_by"`
	OwnerEmail  string `db:"owner_email"`
}

// ItemStore is the sqlx-backed implementation of ItemStoreIface.
//
// TODO: Placeholder `?` works for SQLite and MySQL but PostgreSQL needs `$1`,
// `$2`, etc., and LastInsertId needs RETURNING there. In production, use a
// DB-agnostic query builder or separate query files per driver.
type ItemStore struct {
	db *sqlx.DB
}

func NewItemStore(db *sqlx.DB) *ItemStore {
	return &ItemStore{db: db}
}

// Create inserts a new item owned by ownerEmail. New items always start
// unreported.
func (s *ItemStore) Create(ctx context.Context, title, description, status, location, date, ownerEmail string) (*Item, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO items (title, description, status, location, date, reported, reported_by, owner_email)
		VALUES (?, ?, ?, ?, ?, 0, '', ?)
	`, title, description, status, location, date, ownerEmail)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// GetByID returns the item matching id, or ErrNotFound.
func (s *ItemStore) GetByID(ctx context.Context, id int64) (*Item, error) {
	var it Item
	err := s.db.GetContext(ctx, &it, `SELECT * FROM items WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// ListAll returns all items ordered by id.
func (s *ItemStore) ListAll(ctx context.Context) ([]*Item, error) {
	items := []*Item{}
	err := s.db.SelectContext(ctx, &items, `SELECT * FROM items ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Report marks the item as reported by reporterEmail as one atomic unit.
// Re-reporting overwrites reported_by with the latest reporter; no history
// is kept. Returns ErrNotFound if the item does not exist.
func (s *ItemStore) Report(ctx context.Context, id int64, reporterEmail string) (*Item, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var it Item
	err = tx.GetContext(ctx, &it, `SELECT * FROM items WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `UPDATE items SET reported = 1, reported_by = ? WHERE id = ?`,
		reporterEmail, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	it.Reported = true
	it.ReportedBy = reporterEmail
	return &it, nil
}

// Delete removes the item permanently. Returns ErrNotFound if no row matched.
func (s *ItemStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
