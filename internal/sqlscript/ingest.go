package sqlscript

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"

	"github.com/vvka-141/projdb/pkg/projdb"
)

// Execer is the subset of database/sql used to apply dump statements.
// Both *sql.DB and *sql.Tx satisfy it.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// commitStatement is recognized and skipped during ingestion. The load is
// single-writer and one-shot, so source transaction boundaries are noise.
const commitStatement = "COMMIT;"

// Ingest reads SQL dump text from r line by line, executing each complete
// statement group against db. It returns the number of executed
// statement groups.
//
// A non-empty buffer remaining at end of input means the dump was
// truncated mid-statement; Ingest reports this as projdb.ErrIncompleteStatement.
func Ingest(ctx context.Context, db Execer, r io.Reader) (int, error) {
	reader := bufio.NewReader(r)
	var buf strings.Builder
	executed := 0

	for {
		line, readErr := reader.ReadString('\n')
		buf.WriteString(line)

		if Complete(buf.String()) {
			stmt := strings.TrimSpace(buf.String())
			buf.Reset()
			if stmt != commitStatement {
				if _, err := db.ExecContext(ctx, stmt); err != nil {
					return executed, fmt.Errorf("executing %q: %v: %w",
						preview(stmt), err, projdb.ErrIngestFailed)
				}
				executed++
			}
		}

		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return executed, fmt.Errorf("reading dump: %w", readErr)
		}
	}

	if trailing := strings.TrimSpace(buf.String()); trailing != "" {
		return executed, fmt.Errorf("dump ends with %q: %w",
			preview(trailing), projdb.ErrIncompleteStatement)
	}
	return executed, nil
}

// preview truncates a statement for error messages.
func preview(stmt string) string {
	if len(stmt) <= projdb.MaxErrorPreviewLength {
		return stmt
	}
	return stmt[:projdb.MaxErrorPreviewLength] + "..."
}
