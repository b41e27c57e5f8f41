package migrations

// This is a Go migration because autoincrement primary key DDL differs by
// database driver (INTEGER PRIMARY KEY AUTOINCREMENT for SQLite, BIGSERIAL
// for PostgreSQL, BIGINT AUTO_INCREMENT for MySQL).

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateItems, downCreateItems)
}

func upCreateItems(ctx context.Context, tx *sql.Tx) error {
	var ddl string
	switch dialect {
	case "postgres":
		ddl = `CREATE TABLE IF NOT EXISTS items (
    id          BIGSERIAL PRIMARY KEY,
    title       VARCHAR(150) NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    status      VARCHAR(10) NOT NULL,
    location    VARCHAR(100) NOT NULL DEFAULT '',
    date        VARCHAR(20) NOT NULL DEFAULT '',
    reported    BOOLEAN NOT NULL DEFAULT FALSE,
    reported_by VARCHAR(120) NOT NULL DEFAULT '',
    owner_email VARCHAR(120) NOT NULL
)`
	case "mysql":
		ddl = `CREATE TABLE IF NOT EXISTS items (
    id          BIGINT AUTO_INCREMENT PRIMARY KEY,
    title       VARCHAR(150) NOT NULL,
    description TEXT NOT NULL,
    status      VARCHAR(10) NOT NULL,
    location    VARCHAR(100) NOT NULL DEFAULT '',
    date        VARCHAR(20) NOT NULL DEFAULT '',
    reported    BOOLEAN NOT NULL DEFAULT FALSE,
    reported_by VARCHAR(120) NOT NULL DEFAULT '',
    owner_email VARCHAR(120) NOT NULL
)`
	default: // sqlite3
		ddl = `CREATE TABLE IF NOT EXISTS items (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    title       TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    status      TEXT NOT NULL,
    location    TEXT NOT NULL DEFAULT '',
    date        TEXT NOT NULL DEFAULT '',
    reported    INTEGER NOT NULL DEFAULT 0,
    reported_by TEXT NOT NULL DEFAULT '',
    owner_email TEXT NOT NULL
)`
	}
	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create items table: %w", err)
	}
	return nil
}

func downCreateItems(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS items`)
	return err
}
