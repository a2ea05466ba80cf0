// Package errz defines the structured error types reported by the Ember
// virtual machine and its tooling.
package errz

import "fmt"

// ErrorKind represents the category of an error.
type ErrorKind int

const (
	// ErrCompile indicates the input could not be compiled into a chunk.
	// Reserved for a future front end; the VM core never produces it.
	ErrCompile ErrorKind = iota
	// ErrRuntime indicates a fault detected while executing a chunk, such
	// as stack underflow or an unknown opcode.
	ErrRuntime
)

// String returns the string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrCompile:
		return "compile error"
	case ErrRuntime:
		return "runtime error"
	default:
		return "error"
	}
}

// StructuredError is an error carrying its category and the source line of
// the instruction that faulted, for actionable diagnostics.
type StructuredError struct {
	Message string
	Kind    ErrorKind
	Line    int
	Cause   error
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	if e.Line <= 0 {
		return fmt.Sprintf("%s: %s", e.Kind.String(), e.Message)
	}
	return fmt.Sprintf("%s: %s (line %d)", e.Kind.String(), e.Message, e.Line)
}

// Unwrap returns the underlying cause of the error.
func (e *StructuredError) Unwrap() error {
	return e.Cause
}

// WithCause wraps the error with a cause.
func (e *StructuredError) WithCause(cause error) *StructuredError {
	e.Cause = cause
	return e
}

// New creates a StructuredError with the given parameters.
func New(kind ErrorKind, line int, message string) *StructuredError {
	return &StructuredError{Kind: kind, Line: line, Message: message}
}

// RuntimeErrorf creates a runtime error at the given source line.
func RuntimeErrorf(line int, format string, args ...any) *StructuredError {
	return &StructuredError{
		Kind:    ErrRuntime,
		Line:    line,
		Message: fmt.Sprintf(format, args...),
	}
}

// CompileErrorf creates a compile error at the given source line.
func CompileErrorf(line int, format string, args ...any) *StructuredError {
	return &StructuredError{
		Kind:    ErrCompile,
		Line:    line,
		Message: fmt.Sprintf(format, args...),
	}
}
