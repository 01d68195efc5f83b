// Package sqlscript loads SQL dump files into a relational store.
//
// Dump files carry statements split arbitrarily across lines. The package
// accumulates lines into a buffer and, after each line, tests whether the
// buffer holds one or more syntactically complete statements using a
// lexer that tracks string literals and comments. Complete buffers are
// executed against the target store; a literal COMMIT; is recognized and
// skipped since transactions carry no meaning for a one-shot,
// single-writer load.
//
// A buffer that never reaches a completion boundary by end of input is
// surfaced as a fatal error rather than silently discarded, so truncated
// dumps cannot produce a partially loaded store that looks healthy.
package sqlscript
