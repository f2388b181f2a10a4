// Package errors provides structured error types for the Lua value codec.
//
// Errors are categorized by Phase (which direction of the conversion failed)
// and Kind (error category). The Error type includes rich context: field path,
// Go/Lua type names, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
//		Path("user", "age").
//		GoType("int").
//		LuaType("string").
//		Detail("cannot convert string to integer").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.TypeMismatch(errors.PhaseDecode, path, "int", "string")
//	err := errors.LengthMismatch(errors.PhaseDecode, path, 2, 3)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
