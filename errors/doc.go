// Package errors provides structured error types for the structree library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes rich context: the offending Go type and
// field names, a detail message, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseRegister, errors.KindFieldOrderMismatch).
//		GoType("mypkg.Point").
//		Detail("declared fields diverge from effective fields").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.AbstractType("mypkg.Point")
//	err := errors.UninitializedField(errors.PhaseConstruct, "mypkg.Point", "X")
//
// All errors implement the standard error interface and support errors.Is/As.
// Two errors match under errors.Is when their Phase and Kind agree.
package errors
