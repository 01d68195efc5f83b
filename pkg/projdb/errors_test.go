package projdb_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/vvka-141/projdb/pkg/projdb"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, projdb.ExitSuccess},
		{"general error", errors.New("something went wrong"), projdb.ExitGeneralError},
		{"invalid config", projdb.ErrInvalidConfig, projdb.ExitConfigError},
		{"missing input", projdb.ErrMissingInput, projdb.ExitMissingInput},
		{"schema defs missing", projdb.ErrSchemaDefMissing, projdb.ExitSchemaDefMissing},
		{"incomplete statement", projdb.ErrIncompleteStatement, projdb.ExitIngestFailed},
		{"ingest failed", projdb.ErrIngestFailed, projdb.ExitIngestFailed},
		{"validation failed", projdb.ErrValidationFailed, projdb.ExitValidationFailed},
		{"parameter order", projdb.ErrParameterOrder, projdb.ExitValidationFailed},
		{"wrapped sentinel", fmt.Errorf("step geodetic_datum: %w", projdb.ErrValidationFailed), projdb.ExitValidationFailed},
		{"unknown flag", errors.New("unknown flag --foo"), projdb.ExitUsageError},
		{"unknown shorthand flag", errors.New("unknown shorthand flag: 'x'"), projdb.ExitUsageError},
		{"accepts args", errors.New("accepts 1 arg(s), received 2"), projdb.ExitUsageError},
		{"invalid argument", errors.New("invalid argument \"abc\" for \"--port\""), projdb.ExitUsageError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := projdb.ExitCodeForError(tt.err); got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestBuildConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  projdb.BuildConfig
		wantErr bool
	}{
		{"valid", projdb.BuildConfig{SourceDir: ".", SQLDir: "data/sql"}, false},
		{"missing source dir", projdb.BuildConfig{SQLDir: "data/sql"}, true},
		{"missing sql dir", projdb.BuildConfig{SourceDir: "."}, true},
		{"empty", projdb.BuildConfig{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				if !errors.Is(err, projdb.ErrInvalidConfig) {
					t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
				}
			} else if err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}
