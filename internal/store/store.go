// Package store manages the two transient SQLite stores of a build run:
// an on-disk source store holding the ingested EPSG registry and an
// in-memory destination store holding the proj.db schema.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // pure go sqlite driver
)

// SourceStore is an on-disk SQLite store created fresh for a single run.
// The backing file lives in the OS temp directory under a unique name and
// is removed by Close unless keep is set.
type SourceStore struct {
	db   *sql.DB
	path string
	keep bool
}

// NewSourceStore creates the temporary source store.
// If keep is true, Close leaves the backing file in place for inspection.
func NewSourceStore(keep bool) (*SourceStore, error) {
	path := filepath.Join(os.TempDir(), fmt.Sprintf("tmp_epsg-%s.db", uuid.NewString()))

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open source store: %w", err)
	}
	// One connection: the load is single-writer and ATTACH from the
	// destination store requires a stable on-disk image.
	db.SetMaxOpenConns(1)

	// The store is discarded after every run; journaling only slows the load.
	if _, err := db.Exec("PRAGMA journal_mode = OFF;"); err != nil {
		_ = db.Close()
		_ = os.Remove(path)
		return nil, fmt.Errorf("configure source store: %w", err)
	}

	return &SourceStore{db: db, path: path, keep: keep}, nil
}

// DB returns the underlying database handle.
func (s *SourceStore) DB() *sql.DB { return s.db }

// Path returns the location of the backing file.
func (s *SourceStore) Path() string { return s.path }

// Close releases the database handle and deletes the backing file unless
// the store was created with keep. Safe to call on all exit paths.
func (s *SourceStore) Close() error {
	err := s.db.Close()
	if s.keep {
		return err
	}
	if rmErr := os.Remove(s.path); rmErr != nil && !os.IsNotExist(rmErr) && err == nil {
		err = rmErr
	}
	return err
}

// DestStore is the in-memory SQLite store holding the destination schema.
type DestStore struct {
	db *sql.DB
}

// NewDestStore creates an empty in-memory destination store.
func NewDestStore() (*DestStore, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open destination store: %w", err)
	}
	// database/sql pools connections and every new connection to
	// ":memory:" would be a fresh empty database. Pin to one.
	db.SetMaxOpenConns(1)

	return &DestStore{db: db}, nil
}

// DB returns the underlying database handle.
func (d *DestStore) DB() *sql.DB { return d.db }

// AttachSource attaches the source store under the "epsg" schema name so
// transformation statements can select across both stores.
func (d *DestStore) AttachSource(ctx context.Context, src *SourceStore) error {
	quoted := strings.ReplaceAll(src.Path(), "'", "''")
	if _, err := d.db.ExecContext(ctx, fmt.Sprintf("ATTACH DATABASE '%s' AS epsg;", quoted)); err != nil {
		return fmt.Errorf("attach source store %s: %w", src.Path(), err)
	}
	return nil
}

// Close drops the in-memory store.
func (d *DestStore) Close() error {
	return d.db.Close()
}
