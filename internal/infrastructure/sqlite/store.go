// Package sqlite implements the catalog and cart repositories on an embedded
// sqlite database, standing in for the hosted database the kiosk UI talks to.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Store holds the database handle and implements domain.CatalogRepository and
// domain.CartRepository.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the database at path and ensures the
// schema exists. An empty catalog is seeded with the default vegetable list.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	if err := store.seedIfEmpty(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to seed catalog: %w", err)
	}

	return store, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	schema := `
CREATE TABLE IF NOT EXISTS vegetables (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL COLLATE NOCASE UNIQUE,
  pricing_mode TEXT NOT NULL,
  price_per_500g REAL NOT NULL DEFAULT 0,
  price_per_unit REAL NOT NULL DEFAULT 0,
  price_per_packet REAL NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_vegetables_name ON vegetables(name);

CREATE TABLE IF NOT EXISTS checkout_items (
  id TEXT PRIMARY KEY,
  session_id TEXT NOT NULL,
  vegetable_id TEXT,
  vegetable_name TEXT NOT NULL,
  weight_g REAL NOT NULL,
  unit_price REAL NOT NULL,
  total_price REAL NOT NULL,
  confidence_score INTEGER NOT NULL DEFAULT 0,
  created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_checkout_items_session ON checkout_items(session_id);
`

	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	return nil
}
