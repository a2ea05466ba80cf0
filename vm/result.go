package vm

import (
	"errors"

	"github.com/ember-lang/ember/bytecode"
	"github.com/ember-lang/ember/errz"
)

// Result is the terminal state of one Interpret call.
type Result int

const (
	// OK means the chunk ran to completion.
	OK Result = iota
	// CompileError is reserved for a future source-text front end; the VM
	// core alone never produces it.
	CompileError
	// RuntimeError means a fault (stack underflow or overflow, unknown
	// opcode) terminated execution.
	RuntimeError
)

// String returns the name of the result.
func (r Result) String() string {
	switch r {
	case OK:
		return "OK"
	case CompileError:
		return "COMPILE_ERROR"
	case RuntimeError:
		return "RUNTIME_ERROR"
	default:
		return "UNKNOWN"
	}
}

// ExitCode maps the result to the conventional interpreter process exit
// code: 0 for success, 65 for compile errors, 70 for runtime faults.
func (r Result) ExitCode() int {
	switch r {
	case CompileError:
		return 65
	case RuntimeError:
		return 70
	default:
		return 0
	}
}

// Interpret runs the chunk and reports the terminal state, folding error
// details into the Result classification. Use Run directly to receive the
// program result value and the structured error.
func (vm *VirtualMachine) Interpret(chunk *bytecode.Chunk) Result {
	if _, err := vm.Run(chunk); err != nil {
		var structured *errz.StructuredError
		if errors.As(err, &structured) && structured.Kind == errz.ErrCompile {
			return CompileError
		}
		return RuntimeError
	}
	return OK
}
