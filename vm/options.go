package vm

import (
	"io"

	"github.com/rs/zerolog"
)

// Option is a configuration function for a Virtual Machine.
type Option func(*VirtualMachine)

// WithOutput sets the writer that receives the program result reported by
// RETURN. The default discards it; the result is also returned from Run.
func WithOutput(w io.Writer) Option {
	return func(vm *VirtualMachine) {
		vm.out = w
	}
}

// WithLogger sets the logger used for diagnostics and the execution
// trace. The VM's id is added to the logger context. The default logger
// discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(vm *VirtualMachine) {
		vm.logger = logger
	}
}

// WithObserver sets an observer for VM execution events. The observer is
// called synchronously before each instruction dispatch, so
// implementations should be fast. Returning false from OnStep halts
// execution.
func WithObserver(observer Observer) Option {
	return func(vm *VirtualMachine) {
		vm.observer = observer
	}
}

// WithTracing enables a per-instruction debug log line showing the
// offset, opcode, source line, and stack contents.
func WithTracing(enabled bool) Option {
	return func(vm *VirtualMachine) {
		vm.tracing = enabled
	}
}
