// Package errors provides structured error types for the mex-bridge kit.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes rich context: element/field path, Go type
// and foreign class names, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindConversion).
//		Path("record", "age").
//		GoType("int32").
//		Class("cell").
//		Detail("cannot read a scalar from a cell array").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Conversion(errors.PhaseDecode, path, "int32", "cell")
//	err := errors.Index(errors.PhaseOutput, path, 10, 5)
//
// Every error in this taxonomy is fatal to the call that raised it: nothing in
// the kit retries or recovers locally, the error propagates to the foreign
// caller as a call failure. All errors implement the standard error interface
// and support errors.Is/As.
package errors
