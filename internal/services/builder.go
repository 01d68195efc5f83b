// Package services contains the build orchestration service.
package services

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/vvka-141/projdb/internal/checksum"
	"github.com/vvka-141/projdb/internal/dump"
	"github.com/vvka-141/projdb/internal/files/filesystem"
	"github.com/vvka-141/projdb/internal/sqlscript"
	"github.com/vvka-141/projdb/internal/store"
	"github.com/vvka-141/projdb/internal/transform"
	"github.com/vvka-141/projdb/pkg/projdb"
)

// BuildService implements the projdb.Builder interface: it runs the three
// build stages in sequence against two transient stores.
//
// Thread-Safety: NOT safe for concurrent Build() calls on the same
// instance. Create separate instances for concurrent builds.
type BuildService struct {
	fs     filesystem.FileSystem
	calc   checksum.Calculator
	logger projdb.Logger
}

// NewBuildService creates a new BuildService with all dependencies injected.
//
// Panics on nil dependencies: these are programmer errors that should
// fail loudly at application startup. Runtime conditions (missing files,
// malformed source data) are returned as errors from Build.
func NewBuildService(fs filesystem.FileSystem, calc checksum.Calculator, logger projdb.Logger) *BuildService {
	if fs == nil {
		panic("fs cannot be nil")
	}
	if calc == nil {
		panic("calc cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &BuildService{fs: fs, calc: calc, logger: logger}
}

// Build runs the full pipeline: ingest the registry dumps into a
// temporary source store, populate the destination schema and write one
// dump file per populated destination table.
func (s *BuildService) Build(ctx context.Context, config projdb.BuildConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}

	tableScript := filepath.Join(config.SourceDir, projdb.TableScriptFile)
	dataScript := filepath.Join(config.SourceDir, projdb.DataScriptFile)
	schemaDefs := filepath.Join(config.SQLDir, projdb.SchemaDefFile)

	// All inputs are checked up front so a missing file aborts before
	// any work begins.
	for _, path := range []string{dataScript, tableScript} {
		if _, err := s.fs.Stat(path); err != nil {
			return fmt.Errorf("%s: %w", path, projdb.ErrMissingInput)
		}
	}
	if _, err := s.fs.Stat(schemaDefs); err != nil {
		return fmt.Errorf("%s: %w", schemaDefs, projdb.ErrSchemaDefMissing)
	}

	src, err := store.NewSourceStore(config.KeepTemp)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := src.Close(); closeErr != nil {
			s.logger.Error("closing source store: %v", closeErr)
		}
	}()
	s.logger.Verbose("source store at %s", src.Path())
	if config.KeepTemp {
		s.logger.Info("keeping temporary source store at %s", src.Path())
	}

	if err := s.ingestFile(ctx, src.DB(), tableScript); err != nil {
		return err
	}
	if err := s.ingestFile(ctx, src.DB(), dataScript); err != nil {
		return err
	}

	dest, err := store.NewDestStore()
	if err != nil {
		return err
	}
	defer func() { _ = dest.Close() }()

	if err := s.ingestFile(ctx, dest.DB(), schemaDefs); err != nil {
		return err
	}
	if err := dest.AttachSource(ctx, src); err != nil {
		return err
	}

	s.logger.Verbose("transforming source registry")
	if err := transform.Run(ctx, dest.DB()); err != nil {
		return err
	}

	writer := dump.NewWriter(s.fs, s.calc, s.logger)
	written, err := writer.WriteAll(ctx, dest.DB(), config.SQLDir)
	if err != nil {
		return err
	}
	s.logger.Info("wrote %d table dump files to %s", len(written), config.SQLDir)
	return nil
}

// ingestFile loads one SQL script into the given store.
func (s *BuildService) ingestFile(ctx context.Context, db sqlscript.Execer, path string) error {
	content, err := s.fs.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	n, err := sqlscript.Ingest(ctx, db, bytes.NewReader(content))
	if err != nil {
		return fmt.Errorf("ingesting %s: %w", path, err)
	}
	s.logger.Verbose("ingested %s (%d statement groups)", path, n)
	return nil
}
