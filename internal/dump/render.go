package dump

import (
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// renderValue formats a scanned database value as a SQL literal, matching
// the rendering of sqlite's .dump so regenerated fixtures stay
// byte-compatible with previously shipped ones.
func renderValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return renderFloat(val)
	case string:
		return "'" + strings.ReplaceAll(val, "'", "''") + "'"
	case []byte:
		return "X'" + hex.EncodeToString(val) + "'"
	case bool:
		if val {
			return "1"
		}
		return "0"
	default:
		return "'" + strings.ReplaceAll(fmt.Sprint(val), "'", "''") + "'"
	}
}

// renderFloat keeps the REAL marker on integral values: a conversion
// factor of one must read 1.0, not 1, so consumers and diffs see the
// column affinity. Fixed-point notation is used for magnitudes in
// [1e-4, 1e16) so an ellipsoid axis reads 6378137.0, not 6.378137e+06;
// exponent notation only appears outside that range.
func renderFloat(f float64) string {
	abs := math.Abs(f)
	var s string
	if f != 0 && (abs < 1e-4 || abs >= 1e16) {
		s = strconv.FormatFloat(f, 'g', -1, 64)
	} else {
		s = strconv.FormatFloat(f, 'f', -1, 64)
	}
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// renderInsert formats one row as a literal INSERT statement in the
// store's dump style.
func renderInsert(table string, values []interface{}) string {
	rendered := make([]string, len(values))
	for i, v := range values {
		rendered[i] = renderValue(v)
	}
	return fmt.Sprintf("INSERT INTO %q VALUES(%s);", table, strings.Join(rendered, ","))
}
