// Package errors provides structured, coded errors for the loot engine.
//
// Errors carry a Code, a human-readable message, an optional wrapped cause,
// and free-form metadata. Codes map onto HTTP statuses at the serving
// surface. The ValidationBuilder accumulates per-field configuration
// validation failures into a single INVALID_ARGUMENT error.
//
// The generation pass distinguishes recoverable conditions (missing content
// tables, under-supplied pools, exhausted grid placement), which are absorbed
// with a diagnostic log, from fatal ones (corrupt preset data, DATA_LOSS),
// which abort the pass.
package errors
