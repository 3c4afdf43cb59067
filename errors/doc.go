// Package errors provides structured error types for the binlayout module.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: field path, Go type, codec description and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhasePack, errors.KindValueEncoding).
//		Path("[1]", "[0]").
//		GoType("string").
//		Codec("int16le").
//		Detail("cannot convert string to integer").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.ArgumentCount(errors.PhasePack, path, "struct", 3, 2)
//	err := errors.BufferTooSmall(errors.PhaseUnpack, "uint32be", 4, 2, 0, true)
//
// All errors implement the standard error interface and support errors.Is/As.
// The package-level sentinels match by Kind only:
//
//	if errors.Is(err, errors.ErrBufferTooSmall) { ... }
package errors
