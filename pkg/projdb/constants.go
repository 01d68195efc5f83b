package projdb

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess          = 0  // Build completed successfully
	ExitGeneralError     = 1  // Unknown or unclassified error
	ExitUsageError       = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic            = 3  // Internal panic (unexpected crash)
	ExitConfigError      = 10 // Invalid configuration
	ExitMissingInput     = 11 // Required source dump file not found
	ExitIngestFailed     = 12 // Loading a SQL dump into a store failed
	ExitValidationFailed = 13 // Source data violated a registry invariant
	ExitSchemaDefMissing = 14 // Destination schema script not found
)

const (
	// Authority is the namespace injected as auth_name into every
	// destination row. All source codes originate from the EPSG registry.
	Authority = "EPSG"

	// TableScriptFile is the source DDL dump expected in the source directory.
	TableScriptFile = "PostgreSQL_Table_Script.sql"

	// DataScriptFile is the source data dump expected in the source directory.
	DataScriptFile = "PostgreSQL_Data_Script.sql"

	// SchemaDefFile is the destination schema script, resolved relative
	// to the SQL output directory.
	SchemaDefFile = "proj_db_table_defs.sql"

	// DefaultSQLDir is the default directory holding SchemaDefFile and
	// receiving the generated per-table dump files.
	DefaultSQLDir = "data/sql"

	// GeneratedHeader is written at the top of every generated dump file.
	// Consumers treat files carrying it as build artifacts.
	GeneratedHeader = "--- This file has been generated by projdb build. DO NOT EDIT !\n\n"

	// MaxErrorPreviewLength is the maximum number of characters shown
	// in error messages when previewing failed SQL statements.
	// This prevents overwhelming the console with large dump lines.
	MaxErrorPreviewLength = 200

	// MaxConversionParams is the number of positional parameter slots in
	// the destination conversion table. The destination schema has fixed
	// columns for exactly this many parameters; methods needing more are
	// rejected at build time.
	MaxConversionParams = 7
)

// DatumKinds are the datum_type values the source registry may carry.
// Any other value aborts the build.
var DatumKinds = []string{"geodetic", "vertical", "engineering"}

// CRSKinds are the coord_ref_sys_kind values the source registry may carry.
// Any other value aborts the build.
var CRSKinds = []string{
	"geographic 2D",
	"geographic 3D",
	"geocentric",
	"projected",
	"vertical",
	"compound",
	"engineering",
}

// ExtraParamMethodCodes are coordinate-operation method codes whose 8th
// parameter is known redundant and silently dropped during the conversion
// pivot: 1042 (Krovak Modified) and 1043 (Krovak Modified North Oriented).
// Every other method is limited to MaxConversionParams parameters.
var ExtraParamMethodCodes = []int64{1042, 1043}
