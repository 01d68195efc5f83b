// Package dump serializes populated destination tables into per-table SQL
// fixture files consumed by the runtime as static data.
package dump

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	"github.com/vvka-141/projdb/internal/checksum"
	"github.com/vvka-141/projdb/internal/files/filesystem"
	"github.com/vvka-141/projdb/pkg/projdb"
)

// Writer dumps every populated destination table to its own output file.
type Writer struct {
	fs     filesystem.FileSystem
	calc   checksum.Calculator
	logger projdb.Logger
}

// NewWriter creates a dump writer.
// Panics if any dependency is nil: missing wiring is a programmer error
// that should fail at startup, not during the run.
func NewWriter(fs filesystem.FileSystem, calc checksum.Calculator, logger projdb.Logger) *Writer {
	if fs == nil {
		panic("fs cannot be nil")
	}
	if calc == nil {
		panic("calc cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Writer{fs: fs, calc: calc, logger: logger}
}

// WriteAll writes `<dir>/<table>.sql` for every populated table in the
// store's main schema, preserving the store's natural row order, and
// returns the written paths. Empty tables produce no file.
func (w *Writer) WriteAll(ctx context.Context, db *sql.DB, dir string) ([]string, error) {
	tables, err := listTables(ctx, db)
	if err != nil {
		return nil, err
	}

	var written []string
	for _, table := range tables {
		path, err := w.writeTable(ctx, db, dir, table)
		if err != nil {
			return written, fmt.Errorf("dumping %s: %w", table, err)
		}
		if path != "" {
			written = append(written, path)
		}
	}
	return written, nil
}

// listTables returns the tables of the main schema in creation order,
// which is the order the destination DDL declares them in. sqlite's own
// dump walks sqlite_master the same way.
func listTables(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT name FROM main.sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'`)
	if err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// writeTable dumps one table, returning the written path or "" if the
// table holds no rows.
func (w *Writer) writeTable(ctx context.Context, db *sql.DB, dir, table string) (string, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %q", table))
	if err != nil {
		return "", err
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return "", err
	}

	var buf *bytes.Buffer
	count := 0
	for rows.Next() {
		vals := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return "", err
		}

		// The file is created lazily on the first row so empty tables
		// leave no artifact behind.
		if buf == nil {
			buf = &bytes.Buffer{}
			buf.WriteString(projdb.GeneratedHeader)
		}
		buf.WriteString(renderInsert(table, vals))
		buf.WriteByte('\n')
		count++
	}
	if err := rows.Err(); err != nil {
		return "", err
	}
	if buf == nil {
		return "", nil
	}

	path := filepath.Join(dir, table+".sql")
	if err := w.fs.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	w.logger.Verbose("wrote %s (%d rows, sha256 %s)", path, count, w.calc.Calculate(buf.Bytes()))
	return path, nil
}
