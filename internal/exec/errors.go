package exec

import (
	"errors"
	"fmt"
)

// RuntimeErrorCode categorizes execution errors.
type RuntimeErrorCode string

const (
	// ErrCodeUnboundIdent indicates a read of an identifier with no
	// binding in the current environment.
	ErrCodeUnboundIdent RuntimeErrorCode = "UNBOUND_IDENT"

	// ErrCodeUnknownCallee indicates a call to a name with no
	// registered builtin.
	ErrCodeUnknownCallee RuntimeErrorCode = "UNKNOWN_CALLEE"

	// ErrCodeUnknownOp indicates an Op tag the evaluator does not
	// implement.
	ErrCodeUnknownOp RuntimeErrorCode = "UNKNOWN_OP"

	// ErrCodeBadIndex indicates an out-of-range or non-integer index.
	ErrCodeBadIndex RuntimeErrorCode = "BAD_INDEX"

	// ErrCodeBadArgs indicates an Invoke argument map that does not
	// match the program's parameter list exactly.
	ErrCodeBadArgs RuntimeErrorCode = "BAD_ARGS"

	// ErrCodeTypeMismatch indicates an operand of the wrong value kind.
	ErrCodeTypeMismatch RuntimeErrorCode = "TYPE_MISMATCH"

	// ErrCodeUnknownProgram indicates a handle that resolves to no
	// registered program.
	ErrCodeUnknownProgram RuntimeErrorCode = "UNKNOWN_PROGRAM"

	// ErrCodeDuplicateProgram indicates a Register with an
	// already-taken program name.
	ErrCodeDuplicateProgram RuntimeErrorCode = "DUPLICATE_PROGRAM"

	// ErrCodeDivByZero indicates integer division or modulo by zero.
	ErrCodeDivByZero RuntimeErrorCode = "DIV_BY_ZERO"
)

// RuntimeError represents an error detected during program execution
// or registry manipulation. It carries the program name when known so
// a failure inside a generated kernel can be traced back to its
// compilation.
type RuntimeError struct {
	Code    RuntimeErrorCode
	Message string
	Program string
}

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	if e.Program != "" {
		return fmt.Sprintf("%s: %s (program=%s)", e.Code, e.Message, e.Program)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsRuntimeError returns true with the code if the error is a
// RuntimeError. Uses errors.As to handle wrapped errors.
func IsRuntimeError(err error) (RuntimeErrorCode, bool) {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Code, true
	}
	return "", false
}

func runtimeErrf(code RuntimeErrorCode, program, format string, args ...any) *RuntimeError {
	return &RuntimeError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Program: program,
	}
}
