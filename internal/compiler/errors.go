package compiler

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode categorizes compilation errors.
type ErrorCode string

const (
	// ErrCodeUnresolved indicates items whose dependencies never became
	// satisfiable: a true cycle or a reference to a missing iname. The
	// two cases are not distinguished.
	ErrCodeUnresolved ErrorCode = "UNRESOLVED_DEPENDENCY"

	// ErrCodeMalformedTarget indicates an assignment left-hand side
	// that cannot be descended to a bare identifier.
	ErrCodeMalformedTarget ErrorCode = "MALFORMED_TARGET"

	// ErrCodeDuplicateIName indicates two kernel nodes sharing an iname.
	// Instructions and domains share one namespace.
	ErrCodeDuplicateIName ErrorCode = "DUPLICATE_INAME"

	// ErrCodeBadShape indicates a structurally invalid kernel node,
	// e.g. a nil body or missing bound expression.
	ErrCodeBadShape ErrorCode = "BAD_SHAPE"
)

// ScheduleError is the fatal error raised when the DAG builder stalls:
// items remain whose dependencies never resolve. Stuck lists the inames
// of every unplaced item so the caller sees the whole residue, not just
// the first offender.
type ScheduleError struct {
	Code    ErrorCode
	Message string
	Stuck   []string
}

// Error implements the error interface.
func (e *ScheduleError) Error() string {
	if len(e.Stuck) > 0 {
		return fmt.Sprintf("%s: %s: [%s]", e.Code, e.Message, strings.Join(e.Stuck, ", "))
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewUnresolvedError creates a ScheduleError for a stalled DAG build.
func NewUnresolvedError(stuck []string) *ScheduleError {
	return &ScheduleError{
		Code:    ErrCodeUnresolved,
		Message: "dependencies never resolve (cycle or missing iname)",
		Stuck:   stuck,
	}
}

// IsUnresolvedError returns true if the error is a stalled-schedule
// error. Uses errors.As to handle wrapped errors.
func IsUnresolvedError(err error) bool {
	var se *ScheduleError
	if errors.As(err, &se) {
		return se.Code == ErrCodeUnresolved
	}
	return false
}

// ShapeError is the fatal error raised when a kernel node is
// structurally invalid: a left-hand side that never reaches a bare
// identifier, a duplicate iname, or a missing expression.
type ShapeError struct {
	Code    ErrorCode
	IName   string
	Message string
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	if e.IName != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.IName, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsShapeError returns true if the error is a structural kernel error.
func IsShapeError(err error) bool {
	var se *ShapeError
	return errors.As(err, &se)
}
