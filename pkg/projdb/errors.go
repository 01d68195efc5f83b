package projdb

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	err := builder.Build(ctx, config)
//	if errors.Is(err, projdb.ErrValidationFailed) {
//	    // Source registry carried an unexpected categorical value
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrMissingInput indicates a required source dump file was not found.
	ErrMissingInput = errors.New("missing input file")

	// ErrSchemaDefMissing indicates the destination schema script was not found.
	ErrSchemaDefMissing = errors.New("destination schema script not found")

	// ErrIncompleteStatement indicates a SQL dump ended with a trailing
	// statement that never reached a completion boundary.
	ErrIncompleteStatement = errors.New("incomplete trailing SQL statement")

	// ErrIngestFailed indicates executing a dump statement against a store failed.
	ErrIngestFailed = errors.New("dump ingestion failed")

	// ErrValidationFailed indicates source data violated a registry invariant.
	ErrValidationFailed = errors.New("source data validation failed")

	// ErrParameterOrder indicates a conversion's parameters were not
	// contiguously ordered, or exceeded the positional slot limit.
	ErrParameterOrder = errors.New("conversion parameter ordering violation")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrMissingInput):
		return ExitMissingInput
	case errors.Is(err, ErrSchemaDefMissing):
		return ExitSchemaDefMissing
	case errors.Is(err, ErrIncompleteStatement), errors.Is(err, ErrIngestFailed):
		return ExitIngestFailed
	case errors.Is(err, ErrValidationFailed), errors.Is(err, ErrParameterOrder):
		return ExitValidationFailed
	}

	// Check for cobra usage error patterns
	errStr := err.Error()
	if strings.HasPrefix(errStr, "unknown flag") ||
		strings.HasPrefix(errStr, "unknown shorthand flag") ||
		strings.HasPrefix(errStr, "unknown command") ||
		strings.Contains(errStr, "accepts at most") ||
		strings.Contains(errStr, "arg(s), received") ||
		strings.Contains(errStr, "invalid argument") {
		return ExitUsageError
	}

	return ExitGeneralError
}
