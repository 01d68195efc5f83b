package transform

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Step is a single transformation populating one destination table group.
type Step struct {
	// Name is the primary destination table the step populates.
	Name string

	// Run executes the step against the destination store, which must
	// have the source store attached under the "epsg" schema name.
	Run func(ctx context.Context, db *sql.DB) error
}

// Steps returns the transformation sequence in dependency order.
func Steps() []Step {
	return []Step{
		{"unit_of_measure", fillUnitOfMeasure},
		{"ellipsoid", fillEllipsoid},
		{"area", fillArea},
		{"prime_meridian", fillPrimeMeridian},
		{"geodetic_datum", fillGeodeticDatum},
		{"vertical_datum", fillVerticalDatum},
		{"coordinate_system", fillCoordinateSystem},
		{"axis", fillAxis},
		{"geodetic_crs", fillGeodeticCRS},
		{"vertical_crs", fillVerticalCRS},
		{"conversion", fillConversion},
		{"projected_crs", fillProjectedCRS},
		{"compound_crs", fillCompoundCRS},
	}
}

// Run executes all steps in order, stopping at the first failure.
func Run(ctx context.Context, db *sql.DB) error {
	for _, step := range Steps() {
		if err := step.Run(ctx, db); err != nil {
			return fmt.Errorf("filling %s: %w", step.Name, err)
		}
	}
	return nil
}

func fillUnitOfMeasure(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO unit_of_measure SELECT 'EPSG', uom_code, unit_of_meas_name, unit_of_meas_type, factor_b / factor_c, deprecated FROM epsg.epsg_unitofmeasure`)
	return err
}

func fillEllipsoid(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO ellipsoid SELECT 'EPSG', ellipsoid_code, ellipsoid_name, semi_major_axis, 'EPSG', uom_code, inv_flattening, semi_minor_axis, deprecated FROM epsg.epsg_ellipsoid`)
	return err
}

func fillArea(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO area SELECT 'EPSG', area_code, area_name, area_of_use, area_south_bound_lat, area_north_bound_lat, area_west_bound_lon, area_east_bound_lon, deprecated FROM epsg.epsg_area`)
	return err
}

func fillPrimeMeridian(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO prime_meridian SELECT 'EPSG', prime_meridian_code, prime_meridian_name, greenwich_longitude, 'EPSG', uom_code, deprecated FROM epsg.epsg_primemeridian`)
	return err
}

func fillGeodeticDatum(ctx context.Context, db *sql.DB) error {
	if err := checkDatumKinds(ctx, db); err != nil {
		return err
	}
	_, err := db.ExecContext(ctx,
		`INSERT INTO geodetic_datum SELECT 'EPSG', datum_code, datum_name, 'EPSG', ellipsoid_code, 'EPSG', prime_meridian_code, 'EPSG', area_of_use_code, deprecated FROM epsg.epsg_datum WHERE datum_type = 'geodetic'`)
	return err
}

func fillVerticalDatum(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO vertical_datum SELECT 'EPSG', datum_code, datum_name, 'EPSG', area_of_use_code, deprecated FROM epsg.epsg_datum WHERE datum_type = 'vertical'`)
	return err
}

func fillCoordinateSystem(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO coordinate_system SELECT 'EPSG', coord_sys_code, dimension FROM epsg.epsg_coordinatesystem`)
	return err
}

func fillAxis(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO axis SELECT 'EPSG', coord_axis_code, coord_axis_name, coord_axis_abbreviation, coord_axis_orientation, 'EPSG', coord_sys_code, coord_axis_order, 'EPSG', uom_code FROM epsg.epsg_coordinateaxis ca LEFT JOIN epsg.epsg_coordinateaxisname can ON ca.coord_axis_name_code = can.coord_axis_name_code`)
	return err
}

func fillGeodeticCRS(ctx context.Context, db *sql.DB) error {
	if err := checkCRSKinds(ctx, db); err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx,
		`INSERT INTO crs SELECT 'EPSG', coord_ref_sys_code, coord_ref_sys_kind FROM epsg.epsg_coordinatereferencesystem WHERE coord_ref_sys_kind IN ('geographic 2D', 'geographic 3D', 'geocentric') AND datum_code IS NOT NULL`); err != nil {
		return err
	}
	_, err := db.ExecContext(ctx,
		`INSERT INTO geodetic_crs SELECT 'EPSG', coord_ref_sys_code, coord_ref_sys_name, coord_ref_sys_kind, 'EPSG', coord_sys_code, 'EPSG', datum_code, 'EPSG', area_of_use_code, deprecated FROM epsg.epsg_coordinatereferencesystem WHERE coord_ref_sys_kind IN ('geographic 2D', 'geographic 3D', 'geocentric') AND datum_code IS NOT NULL`)
	return err
}

func fillVerticalCRS(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx,
		`INSERT INTO crs SELECT 'EPSG', coord_ref_sys_code, coord_ref_sys_kind FROM epsg.epsg_coordinatereferencesystem WHERE coord_ref_sys_kind IN ('vertical') AND datum_code IS NOT NULL`); err != nil {
		return err
	}
	_, err := db.ExecContext(ctx,
		`INSERT INTO vertical_crs SELECT 'EPSG', coord_ref_sys_code, coord_ref_sys_name, 'EPSG', coord_sys_code, 'EPSG', datum_code, 'EPSG', area_of_use_code, deprecated FROM epsg.epsg_coordinatereferencesystem WHERE coord_ref_sys_kind IN ('vertical') AND datum_code IS NOT NULL`)
	return err
}

func fillCompoundCRS(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx,
		`INSERT INTO crs SELECT 'EPSG', coord_ref_sys_code, coord_ref_sys_kind FROM epsg.epsg_coordinatereferencesystem WHERE coord_ref_sys_kind IN ('compound')`); err != nil {
		return err
	}
	_, err := db.ExecContext(ctx,
		`INSERT INTO compound_crs SELECT 'EPSG', coord_ref_sys_code, coord_ref_sys_name, 'EPSG', cmpd_horizcrs_code, 'EPSG', cmpd_vertcrs_code, 'EPSG', area_of_use_code, deprecated FROM epsg.epsg_coordinatereferencesystem WHERE coord_ref_sys_kind IN ('compound')`)
	return err
}

// fillProjectedCRS inserts projected CRSs row by row. A projected CRS is
// only emitted when its base geodetic CRS was classified as geographic or
// geocentric; the registry carries projected systems whose base is itself
// deprecated out of those kinds.
func fillProjectedCRS(ctx context.Context, db *sql.DB) error {
	rows, err := db.QueryContext(ctx,
		`SELECT 'EPSG', coord_ref_sys_code, coord_ref_sys_name, 'EPSG', coord_sys_code, 'EPSG', source_geogcrs_code, 'EPSG', projection_conv_code, 'EPSG', area_of_use_code, deprecated FROM epsg.epsg_coordinatereferencesystem WHERE coord_ref_sys_kind IN ('projected')`)
	if err != nil {
		return err
	}

	// The store runs on a single connection, so the result set must be
	// collected before issuing the per-row existence checks.
	var candidates [][]interface{}
	for rows.Next() {
		vals := make([]interface{}, 12)
		ptrs := make([]interface{}, 12)
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			_ = rows.Close()
			return err
		}
		candidates = append(candidates, vals)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if err := rows.Close(); err != nil {
		return err
	}

	for _, row := range candidates {
		code := row[1]
		geodeticCRSCode := row[6]

		var one int
		err := db.QueryRowContext(ctx,
			`SELECT 1 FROM epsg.epsg_coordinatereferencesystem WHERE coord_ref_sys_code = ? AND coord_ref_sys_kind IN ('geographic 2D', 'geographic 3D', 'geocentric')`,
			geodeticCRSCode).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return err
		}

		if _, err := db.ExecContext(ctx,
			`INSERT INTO crs VALUES ('EPSG', ?, 'projected')`, code); err != nil {
			return err
		}
		if _, err := db.ExecContext(ctx,
			`INSERT INTO projected_crs VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`, row...); err != nil {
			return err
		}
	}
	return nil
}
