package services

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/projdb/internal/checksum"
	"github.com/vvka-141/projdb/internal/files/filesystem"
	"github.com/vvka-141/projdb/internal/logging"
	"github.com/vvka-141/projdb/pkg/projdb"
)

// tableScript is a miniature EPSG registry DDL dump in the shape the
// registry distribution uses, with statements split across lines.
const tableScript = `CREATE TABLE epsg_unitofmeasure (
  uom_code INTEGER,
  unit_of_meas_name TEXT,
  unit_of_meas_type TEXT,
  factor_b DOUBLE PRECISION,
  factor_c DOUBLE PRECISION,
  deprecated SMALLINT
);
CREATE TABLE epsg_ellipsoid (ellipsoid_code INTEGER, ellipsoid_name TEXT, semi_major_axis DOUBLE PRECISION, uom_code INTEGER, inv_flattening DOUBLE PRECISION, semi_minor_axis DOUBLE PRECISION, deprecated SMALLINT);
CREATE TABLE epsg_area (area_code INTEGER, area_name TEXT, area_of_use TEXT, area_south_bound_lat DOUBLE PRECISION, area_north_bound_lat DOUBLE PRECISION, area_west_bound_lon DOUBLE PRECISION, area_east_bound_lon DOUBLE PRECISION, deprecated SMALLINT);
CREATE TABLE epsg_primemeridian (prime_meridian_code INTEGER, prime_meridian_name TEXT, greenwich_longitude DOUBLE PRECISION, uom_code INTEGER, deprecated SMALLINT);
CREATE TABLE epsg_datum (datum_code INTEGER, datum_name TEXT, datum_type TEXT, ellipsoid_code INTEGER, prime_meridian_code INTEGER, area_of_use_code INTEGER, deprecated SMALLINT);
CREATE TABLE epsg_coordinatesystem (coord_sys_code INTEGER, coord_sys_name TEXT, dimension SMALLINT);
CREATE TABLE epsg_coordinateaxis (coord_axis_code INTEGER, coord_sys_code INTEGER, coord_axis_name_code INTEGER, coord_axis_orientation TEXT, coord_axis_abbreviation TEXT, uom_code INTEGER, coord_axis_order SMALLINT);
CREATE TABLE epsg_coordinateaxisname (coord_axis_name_code INTEGER, coord_axis_name TEXT);
CREATE TABLE epsg_coordinatereferencesystem (coord_ref_sys_code INTEGER, coord_ref_sys_name TEXT, coord_ref_sys_kind TEXT, coord_sys_code INTEGER, datum_code INTEGER, source_geogcrs_code INTEGER, projection_conv_code INTEGER, cmpd_horizcrs_code INTEGER, cmpd_vertcrs_code INTEGER, area_of_use_code INTEGER, deprecated SMALLINT);
CREATE TABLE epsg_coordoperation (coord_op_code INTEGER, coord_op_name TEXT, coord_op_type TEXT, coord_op_method_code INTEGER);
CREATE TABLE epsg_coordoperationmethod (coord_op_method_code INTEGER, coord_op_method_name TEXT);
CREATE TABLE epsg_coordoperationparam (parameter_code INTEGER, parameter_name TEXT);
CREATE TABLE epsg_coordoperationparamusage (coord_op_method_code INTEGER, parameter_code INTEGER, sort_order SMALLINT);
CREATE TABLE epsg_coordoperationparamvalue (coord_op_code INTEGER, coord_op_method_code INTEGER, parameter_code INTEGER, parameter_value DOUBLE PRECISION, uom_code INTEGER);
COMMIT;
`

const dataScript = `INSERT INTO epsg_unitofmeasure
VALUES (9102, 'degree', 'angle',
  1, 1, 0);
INSERT INTO epsg_unitofmeasure VALUES (9001, 'metre', 'length', 1, 1, 0);
INSERT INTO epsg_ellipsoid VALUES (7030, 'WGS 84', 6378137, 9001, 298.257223563, NULL, 0);
INSERT INTO epsg_area VALUES (1262, 'World', 'World.', -90, 90, -180, 180, 0);
INSERT INTO epsg_primemeridian VALUES (8901, 'Greenwich', 0, 9102, 0);
INSERT INTO epsg_datum VALUES (6326, 'World Geodetic System 1984', 'geodetic', 7030, 8901, 1262, 0);
INSERT INTO epsg_coordinatesystem VALUES (6422, 'Ellipsoidal 2D', 2);
INSERT INTO epsg_coordinateaxis VALUES (106, 6422, 9901, 'north', 'Lat', 9102, 1);
INSERT INTO epsg_coordinateaxisname VALUES (9901, 'Geodetic latitude');
INSERT INTO epsg_coordinatereferencesystem VALUES (4326, 'WGS 84', 'geographic 2D', 6422, 6326, NULL, NULL, NULL, NULL, 1262, 0);
COMMIT;
`

func newFixtureFS(t *testing.T) *filesystem.MemoryFileSystem {
	t.Helper()
	mfs := filesystem.NewMemoryFileSystem()

	require.NoError(t, mfs.WriteFile("src/"+projdb.TableScriptFile, []byte(tableScript), 0o644))
	require.NoError(t, mfs.WriteFile("src/"+projdb.DataScriptFile, []byte(dataScript), 0o644))

	defs, err := os.ReadFile("../../data/sql/proj_db_table_defs.sql")
	require.NoError(t, err)
	require.NoError(t, mfs.WriteFile("sql/"+projdb.SchemaDefFile, defs, 0o644))

	return mfs
}

func newService(mfs *filesystem.MemoryFileSystem) *BuildService {
	return NewBuildService(mfs, checksum.New(), logging.NewNullLogger())
}

func buildConfig() projdb.BuildConfig {
	return projdb.BuildConfig{SourceDir: "src", SQLDir: "sql"}
}

func TestBuildEndToEnd(t *testing.T) {
	mfs := newFixtureFS(t)
	svc := newService(mfs)

	require.NoError(t, svc.Build(context.Background(), buildConfig()))

	content, err := mfs.ReadFile("sql/unit_of_measure.sql")
	require.NoError(t, err)

	text := string(content)
	assert.True(t, strings.HasPrefix(text, projdb.GeneratedHeader))
	assert.Equal(t, 1, strings.Count(text, "9102"))
	assert.Contains(t, text,
		`INSERT INTO "unit_of_measure" VALUES('EPSG',9102,'degree','angle',1.0,0);`)

	// Populated destination tables each got a file; empty ones did not.
	paths := mfs.Paths()
	assert.Contains(t, paths, "sql/ellipsoid.sql")
	assert.Contains(t, paths, "sql/geodetic_datum.sql")
	assert.Contains(t, paths, "sql/geodetic_crs.sql")
	assert.Contains(t, paths, "sql/crs.sql")
	assert.NotContains(t, paths, "sql/vertical_datum.sql")
	assert.NotContains(t, paths, "sql/projected_crs.sql")
	assert.NotContains(t, paths, "sql/conversion.sql")
}

func TestBuildIdempotent(t *testing.T) {
	mfs := newFixtureFS(t)
	svc := newService(mfs)
	ctx := context.Background()

	require.NoError(t, svc.Build(ctx, buildConfig()))
	first, err := mfs.ReadFile("sql/geodetic_crs.sql")
	require.NoError(t, err)

	require.NoError(t, svc.Build(ctx, buildConfig()))
	second, err := mfs.ReadFile("sql/geodetic_crs.sql")
	require.NoError(t, err)

	assert.Equal(t, first, second,
		"re-running on unchanged source dumps must produce byte-identical output")
}

func TestBuildMissingInputAbortsBeforeAnyWork(t *testing.T) {
	mfs := newFixtureFS(t)
	svc := newService(mfs)

	err := svc.Build(context.Background(), projdb.BuildConfig{SourceDir: "elsewhere", SQLDir: "sql"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, projdb.ErrMissingInput))

	// No output file may exist.
	for _, p := range mfs.Paths() {
		assert.False(t, strings.HasSuffix(p, "_crs.sql"), "unexpected output %s", p)
	}
}

func TestBuildMissingSchemaDefs(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem()
	require.NoError(t, mfs.WriteFile("src/"+projdb.TableScriptFile, []byte(tableScript), 0o644))
	require.NoError(t, mfs.WriteFile("src/"+projdb.DataScriptFile, []byte(dataScript), 0o644))

	err := newService(mfs).Build(context.Background(), buildConfig())
	require.Error(t, err)
	assert.True(t, errors.Is(err, projdb.ErrSchemaDefMissing))
}

func TestBuildUnexpectedDatumKindWritesNothing(t *testing.T) {
	mfs := newFixtureFS(t)
	broken := dataScript + "INSERT INTO epsg_datum VALUES (9999, 'Broken', 'foo', NULL, NULL, 1262, 0);\n"
	require.NoError(t, mfs.WriteFile("src/"+projdb.DataScriptFile, []byte(broken), 0o644))

	err := newService(mfs).Build(context.Background(), buildConfig())
	require.Error(t, err)
	assert.True(t, errors.Is(err, projdb.ErrValidationFailed))

	// The run aborted before the dump stage: no datum file was written.
	_, err = mfs.ReadFile("sql/geodetic_datum.sql")
	assert.Error(t, err)
	_, err = mfs.ReadFile("sql/vertical_datum.sql")
	assert.Error(t, err)
}

func TestBuildTruncatedDumpFatal(t *testing.T) {
	mfs := newFixtureFS(t)
	truncated := strings.TrimSuffix(dataScript, "COMMIT;\n") + "INSERT INTO epsg_area VALUES (3262, 'Half\n"
	require.NoError(t, mfs.WriteFile("src/"+projdb.DataScriptFile, []byte(truncated), 0o644))

	err := newService(mfs).Build(context.Background(), buildConfig())
	require.Error(t, err)
	assert.True(t, errors.Is(err, projdb.ErrIncompleteStatement))
}

func TestBuildInvalidConfig(t *testing.T) {
	mfs := newFixtureFS(t)

	err := newService(mfs).Build(context.Background(), projdb.BuildConfig{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, projdb.ErrInvalidConfig))
}
