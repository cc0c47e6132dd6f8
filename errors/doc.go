// Package errors provides structured error types for the petscii library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: field path, the mapping table involved, the
// offending value, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseConfig, errors.KindInvalidData).
//		Path("charmap", "screen_to_unicode", "1").
//		Detail("value out of range").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Oversize(errors.PhaseBuffer, 4, 3)
//	err := errors.CorruptTable("petscii_unshifted_to_screen", 200, "screen code out of range")
//
// All errors implement the standard error interface and support errors.Is/As.
// The package sentinels ErrOversize and ErrCorruptTable match by kind alone,
// regardless of phase.
package errors
