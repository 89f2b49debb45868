// Package codegen lowers a scheduled kernel into an executable program.
//
// The constructor is the last pipeline stage: it consumes the nested
// order produced by the compiler, lowers each node recursively (a
// domain becomes a bounded loop statement, an instruction becomes its
// body expression), wraps the result in a uniquely named program whose
// parameters are the kernel's free variables, and registers it with an
// exec.Engine. CompileToTree stops before registration for callers
// feeding a different backend.
package codegen
