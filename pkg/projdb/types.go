package projdb

import (
	"context"
	"fmt"
)

// BuildConfig contains all parameters needed for a build run.
type BuildConfig struct {
	// SourceDir is the directory holding the EPSG registry dumps
	// (TableScriptFile and DataScriptFile).
	SourceDir string

	// SQLDir is the directory holding SchemaDefFile and receiving the
	// generated per-table dump files.
	SQLDir string

	// KeepTemp retains the temporary source store file after the run,
	// for inspection with a sqlite shell. The path is logged.
	KeepTemp bool

	// Verbose enables detailed logging.
	Verbose bool
}

// Validate checks if the BuildConfig has all required fields.
func (c *BuildConfig) Validate() error {
	var errs []error

	if c.SourceDir == "" {
		errs = append(errs, fmt.Errorf("SourceDir is required: %w", ErrInvalidConfig))
	}
	if c.SQLDir == "" {
		errs = append(errs, fmt.Errorf("SQLDir is required: %w", ErrInvalidConfig))
	}

	if len(errs) > 0 {
		return combineErrors(errs)
	}
	return nil
}

// combineErrors joins multiple validation errors into one.
func combineErrors(errs []error) error {
	if len(errs) == 1 {
		return errs[0]
	}
	combined := errs[0]
	for _, err := range errs[1:] {
		combined = fmt.Errorf("%w; %w", combined, err)
	}
	return combined
}

// Builder runs the full EPSG-to-proj.db build pipeline.
type Builder interface {
	// Build ingests the source dumps, populates the destination schema
	// and writes one dump file per populated destination table.
	Build(ctx context.Context, config BuildConfig) error
}
