package transform

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/vvka-141/projdb/pkg/projdb"
)

// quoteList renders a string slice as a SQL IN list.
func quoteList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + strings.ReplaceAll(v, "'", "''") + "'"
	}
	return strings.Join(quoted, ", ")
}

// checkDatumKinds aborts when epsg_datum carries a datum_type outside the
// known kinds. The mapping routes each kind to a dedicated destination
// table, so an unknown kind would be silently lost.
func checkDatumKinds(ctx context.Context, db *sql.DB) error {
	query := fmt.Sprintf(
		`SELECT DISTINCT datum_code, datum_name, datum_type FROM epsg.epsg_datum WHERE datum_type NOT IN (%s)`,
		quoteList(projdb.DatumKinds))

	offending, err := collectOffending(ctx, db, query)
	if err != nil {
		return err
	}
	if len(offending) > 0 {
		return fmt.Errorf("unexpected datum_type in epsg_datum: %s: %w",
			strings.Join(offending, "; "), projdb.ErrValidationFailed)
	}
	return nil
}

// checkCRSKinds aborts when epsg_coordinatereferencesystem carries a
// coord_ref_sys_kind outside the known kinds.
func checkCRSKinds(ctx context.Context, db *sql.DB) error {
	query := fmt.Sprintf(
		`SELECT DISTINCT coord_ref_sys_code, coord_ref_sys_name, coord_ref_sys_kind FROM epsg.epsg_coordinatereferencesystem WHERE coord_ref_sys_kind NOT IN (%s)`,
		quoteList(projdb.CRSKinds))

	offending, err := collectOffending(ctx, db, query)
	if err != nil {
		return err
	}
	if len(offending) > 0 {
		return fmt.Errorf("unexpected coord_ref_sys_kind in epsg_coordinatereferencesystem: %s: %w",
			strings.Join(offending, "; "), projdb.ErrValidationFailed)
	}
	return nil
}

// collectOffending runs a (code, name, kind) gate query and formats each
// offending row for the error report.
func collectOffending(ctx context.Context, db *sql.DB, query string) ([]string, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var offending []string
	for rows.Next() {
		var (
			code int64
			name sql.NullString
			kind sql.NullString
		)
		if err := rows.Scan(&code, &name, &kind); err != nil {
			return nil, err
		}
		offending = append(offending, fmt.Sprintf("(%d, %q, %q)", code, name.String, kind.String))
	}
	return offending, rows.Err()
}
