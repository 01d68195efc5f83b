// Package checksum computes content checksums for generated dump files.
//
// Checksums never appear inside the generated files themselves; they are
// logged in verbose mode so a release pipeline can compare two runs, and
// they back the idempotence assertions in the test suite.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
)

// Calculator is an interface for computing content checksums.
// This abstraction allows for different checksum algorithms.
type Calculator interface {
	// Calculate computes a checksum of the raw, unmodified content.
	Calculate(content []byte) string
}

// SHA256 implements checksum calculation using SHA-256.
// SHA256 is a zero-size type and is safe for concurrent use by multiple
// goroutines. Using value semantics eliminates heap allocations.
type SHA256 struct{}

// New creates a new SHA-256 based calculator.
// Returns by value to avoid heap allocation (SHA256 is a zero-size type).
func New() SHA256 {
	return SHA256{}
}

// Calculate computes SHA-256 of raw content as a lowercase hex string.
func (c SHA256) Calculate(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}
