// Package filesystem provides a filesystem abstraction so file-touching
// components can be tested against an in-memory implementation.
package filesystem

import (
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
// This provides compatibility with the fs.FS ecosystem while maintaining
// a stable local type for our abstraction layer.
type FileInfo = fs.FileInfo

// FileSystem is the set of filesystem operations the build pipeline
// performs: probing for required inputs, reading SQL scripts and writing
// generated dump files.
type FileSystem interface {
	// ReadFile reads the file at the given path.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to the given path, creating or truncating it.
	WriteFile(path string, data []byte, perm fs.FileMode) error

	// Stat returns file information for the given path.
	Stat(path string) (FileInfo, error)
}
