// Package transform populates the destination proj.db schema from an
// attached EPSG source store.
//
// The transformation is a fixed, ordered sequence of steps, each either a
// bulk INSERT ... SELECT remap with the 'EPSG' authority injected, or a
// row-by-row pivot. Order matters: reference tables come before datums,
// datums before CRSs, geodetic CRSs and conversions before projected CRSs.
//
// Validation gates run before the corresponding inserts and abort the
// whole build when the source registry carries a categorical value this
// mapping does not understand. An unknown datum or CRS kind is not
// recoverable: silently dropping such rows would ship an incomplete
// registry to every downstream consumer.
package transform
