package transform

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/vvka-141/projdb/pkg/projdb"
)

// conversionOp is a coordinate operation classified as a conversion.
type conversionOp struct {
	code       int64
	name       string
	methodCode int64
	methodName sql.NullString
}

// conversionParam is one positional parameter of a conversion.
type conversionParam struct {
	order int64
	code  int64
	name  sql.NullString
	value sql.NullFloat64
	uom   sql.NullInt64
}

// conversionColumns is the total column count of the destination
// conversion table: the identity triple, the method triple and the
// fixed positional parameter slots of six columns each.
const conversionColumns = 6 + 6*projdb.MaxConversionParams

// fillConversion pivots each conversion's ordered parameter list into the
// fixed positional slots of the destination conversion table.
//
// Operations named "...to DMSH" are axis-swap pseudo conversions with no
// projection semantics, and operations without a method code cannot be
// pivoted; both are excluded, matching the registry consumers' contract.
func fillConversion(ctx context.Context, db *sql.DB) error {
	ops, err := selectConversionOps(ctx, db)
	if err != nil {
		return err
	}

	insert := fmt.Sprintf("INSERT INTO conversion VALUES (%s)",
		strings.TrimSuffix(strings.Repeat("?,", conversionColumns), ","))

	for _, op := range ops {
		params, err := selectConversionParams(ctx, db, op)
		if err != nil {
			return err
		}

		slots, err := pivotParams(op, params)
		if err != nil {
			return err
		}

		args := make([]interface{}, 0, conversionColumns)
		args = append(args, projdb.Authority, op.code, op.name,
			projdb.Authority, op.methodCode, op.methodName)
		args = append(args, slots...)

		if _, err := db.ExecContext(ctx, insert, args...); err != nil {
			return fmt.Errorf("inserting conversion %d: %w", op.code, err)
		}
	}
	return nil
}

func selectConversionOps(ctx context.Context, db *sql.DB) ([]conversionOp, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT coord_op_code, coord_op_name, coord_op_method_code, coord_op_method_name FROM epsg.epsg_coordoperation LEFT JOIN epsg.epsg_coordoperationmethod USING (coord_op_method_code) WHERE coord_op_type = 'conversion' AND coord_op_name NOT LIKE '%to DMSH' AND coord_op_method_code IS NOT NULL`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var ops []conversionOp
	for rows.Next() {
		var op conversionOp
		if err := rows.Scan(&op.code, &op.name, &op.methodCode, &op.methodName); err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, rows.Err()
}

func selectConversionParams(ctx context.Context, db *sql.DB, op conversionOp) ([]conversionParam, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT copu.sort_order, cop.parameter_code, cop.parameter_name, copv.parameter_value, copv.uom_code
		 FROM epsg.epsg_coordoperationparamusage copu
		 JOIN epsg.epsg_coordoperationparam cop ON cop.parameter_code = copu.parameter_code
		 JOIN epsg.epsg_coordoperationparamvalue copv ON copv.parameter_code = copu.parameter_code AND copv.coord_op_method_code = copu.coord_op_method_code
		 WHERE copv.coord_op_code = ? AND copu.coord_op_method_code = ?
		 ORDER BY copu.sort_order`,
		op.code, op.methodCode)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var params []conversionParam
	for rows.Next() {
		var p conversionParam
		if err := rows.Scan(&p.order, &p.code, &p.name, &p.value, &p.uom); err != nil {
			return nil, err
		}
		params = append(params, p)
	}
	return params, rows.Err()
}

// pivotParams flattens ordered parameters into the fixed slot columns,
// enforcing that sort_order runs contiguously from 1. The Krovak methods
// (1042, 1043) carry a redundant 8th parameter that is dropped; for every
// other method an out-of-range order is a hard failure against malformed
// upstream data.
func pivotParams(op conversionOp, params []conversionParam) ([]interface{}, error) {
	slots := make([]interface{}, 6*projdb.MaxConversionParams)

	expected := int64(1)
	for _, p := range params {
		if p.order == projdb.MaxConversionParams+1 && hasKnownExtraParam(op.methodCode) {
			break
		}
		if p.order > projdb.MaxConversionParams {
			return nil, fmt.Errorf(
				"conversion %d (method %d) has parameter at sort_order %d, limit is %d: %w",
				op.code, op.methodCode, p.order, projdb.MaxConversionParams, projdb.ErrParameterOrder)
		}
		if p.order != expected {
			return nil, fmt.Errorf(
				"conversion %d (method %d) has parameter at sort_order %d, expected %d: %w",
				op.code, op.methodCode, p.order, expected, projdb.ErrParameterOrder)
		}

		base := (p.order - 1) * 6
		slots[base] = projdb.Authority
		slots[base+1] = p.code
		slots[base+2] = p.name
		slots[base+3] = p.value
		slots[base+4] = projdb.Authority
		slots[base+5] = p.uom
		expected++
	}
	return slots, nil
}

func hasKnownExtraParam(methodCode int64) bool {
	for _, code := range projdb.ExtraParamMethodCodes {
		if methodCode == code {
			return true
		}
	}
	return false
}
