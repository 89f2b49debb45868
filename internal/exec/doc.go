// Package exec implements the host dynamic-code-execution capability.
//
// The compiler core does not run code; it hands a lowered Program to an
// Engine, which registers it under an opaque Handle and can later invoke
// it with named argument values. The Engine is the only boundary between
// compilation and execution: callers supplying their own backend simply
// never register the program.
//
// Execution is a straightforward tree walk over the lowered statement
// forms. Values are constrained to Int, Bool, and Vec - no floats,
// matching the IR. Vectors are mutable: an invoked program writes
// through indexed assignment targets into caller-supplied storage, and
// the caller reads results back out of the returned environment.
//
// The Engine serializes registration and lookup with a mutex so handles
// may be created from multiple goroutines, but a single Program
// invocation is synchronous and runs entirely on the calling goroutine.
package exec
