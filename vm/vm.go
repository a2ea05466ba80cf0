// Package vm provides a VirtualMachine that executes Ember bytecode chunks.
package vm

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog"

	"github.com/ember-lang/ember/bytecode"
	"github.com/ember-lang/ember/errz"
	"github.com/ember-lang/ember/object"
	"github.com/ember-lang/ember/op"
)

// MaxStackDepth is the fixed capacity of the value stack. Pushing past it
// is a runtime error, not a trigger for reallocation: the static bound is
// part of the machine's contract and keeps push and pop free of growth
// checks.
const MaxStackDepth = 256

// VirtualMachine executes one chunk at a time using a fetch-decode-execute
// loop over a fixed-capacity value stack. A VirtualMachine is reusable
// across Run calls with different chunks; it borrows each chunk only for
// the duration of the call and never mutates it.
//
// Execution is single-threaded: a VirtualMachine must not be shared by
// concurrent Run calls, and a mutex-guarded running flag turns any such
// misuse into an explicit error.
type VirtualMachine struct {
	id       string
	ip       int // instruction pointer
	sp       int // top-of-stack index; -1 when empty
	stack    [MaxStackDepth]object.Value
	chunk    *bytecode.Chunk
	out      io.Writer
	logger   zerolog.Logger
	observer Observer
	tracing  bool
	running  bool
	runMutex sync.Mutex
}

// New creates a new VirtualMachine.
func New(options ...Option) *VirtualMachine {
	vm := &VirtualMachine{
		id:     uuid.Must(uuid.NewV4()).String(),
		sp:     -1,
		out:    io.Discard,
		logger: zerolog.Nop(),
	}
	for _, opt := range options {
		opt(vm)
	}
	vm.logger = vm.logger.With().Str("vm_id", vm.id).Logger()
	return vm
}

// ID returns the identifier carried in this VM's diagnostic context.
func (vm *VirtualMachine) ID() string {
	return vm.id
}

func (vm *VirtualMachine) start() error {
	vm.runMutex.Lock()
	defer vm.runMutex.Unlock()
	if vm.running {
		return fmt.Errorf("vm is already running")
	}
	vm.running = true
	return nil
}

func (vm *VirtualMachine) stop() {
	vm.runMutex.Lock()
	defer vm.runMutex.Unlock()
	vm.running = false
}

// Run executes the chunk from its first byte to a terminal state and
// returns the program result popped by RETURN. The instruction pointer
// and stack are fully reset on entry, so a VM that previously reported a
// runtime error can run another chunk independently.
//
// Errors are *errz.StructuredError values carrying the source line of the
// faulting instruction. The stack is reset before an error returns,
// leaving the VM ready for a subsequent call.
func (vm *VirtualMachine) Run(chunk *bytecode.Chunk) (object.Value, error) {
	if chunk == nil {
		return object.Value{}, errz.RuntimeErrorf(0, "no chunk to run")
	}
	if err := vm.start(); err != nil {
		return object.Value{}, err
	}
	defer vm.stop()

	vm.chunk = chunk
	defer func() { vm.chunk = nil }()
	vm.ip = 0
	vm.resetStack()

	logger := vm.logger.With().Str("chunk_id", chunk.ID()).Logger()
	logger.Debug().Int("bytes", chunk.Len()).Msg("run")

	for vm.ip < chunk.Len() {
		offset := vm.ip
		opcode := op.Code(chunk.Byte(offset))
		vm.ip++

		if vm.tracing {
			logger.Debug().
				Int("offset", offset).
				Str("op", opcode.String()).
				Int("line", chunk.Line(offset)).
				Str("stack", vm.stackString()).
				Msg("step")
		}
		if vm.observer != nil {
			event := StepEvent{
				Offset:     offset,
				Opcode:     opcode,
				OpcodeName: opcode.String(),
				Line:       chunk.Line(offset),
				StackDepth: vm.sp + 1,
			}
			if !vm.observer.OnStep(event) {
				return vm.fail(logger, offset, "execution halted by observer")
			}
		}

		switch opcode {
		case op.Constant:
			idx := int(vm.fetch())
			if !vm.push(chunk.Constant(idx)) {
				return vm.fail(logger, offset, "stack overflow")
			}
		case op.Add, op.Subtract, op.Multiply, op.Divide:
			b, ok := vm.pop()
			if !ok {
				return vm.fail(logger, offset, "stack underflow")
			}
			a, ok := vm.pop()
			if !ok {
				return vm.fail(logger, offset, "stack underflow")
			}
			if !a.IsNumber() || !b.IsNumber() {
				return vm.fail(logger, offset, "operands must be numbers")
			}
			vm.push(binaryOp(opcode, a.Number(), b.Number()))
		case op.Negate:
			v, ok := vm.pop()
			if !ok {
				return vm.fail(logger, offset, "stack underflow")
			}
			if !v.IsNumber() {
				return vm.fail(logger, offset, "operand must be a number")
			}
			vm.push(object.NewNumber(-v.Number()))
		case op.Return:
			result, ok := vm.pop()
			if !ok {
				return vm.fail(logger, offset, "stack underflow")
			}
			fmt.Fprintln(vm.out, result.Inspect())
			return result, nil
		default:
			return vm.fail(logger, offset, "unknown opcode %d", byte(opcode))
		}
	}
	// Ran off the end of the stream without RETURN: terminate cleanly
	// with no result.
	return object.Value{}, nil
}

// binaryOp applies an arithmetic opcode with a as the left operand.
// Division by zero follows IEEE-754 semantics (Inf/NaN), not a fault.
func binaryOp(opcode op.Code, a, b float64) object.Value {
	switch opcode {
	case op.Add:
		return object.NewNumber(a + b)
	case op.Subtract:
		return object.NewNumber(a - b)
	case op.Multiply:
		return object.NewNumber(a * b)
	default:
		return object.NewNumber(a / b)
	}
}

// fetch returns the byte at ip and advances ip by one. Callers guarantee
// the operand byte exists; a chunk that encodes otherwise is a writer bug
// surfaced by bytecode.Validate.
func (vm *VirtualMachine) fetch() byte {
	b := vm.chunk.Byte(vm.ip)
	vm.ip++
	return b
}

// push places v on top of the stack, reporting false on overflow.
func (vm *VirtualMachine) push(v object.Value) bool {
	if vm.sp+1 >= MaxStackDepth {
		return false
	}
	vm.sp++
	vm.stack[vm.sp] = v
	return true
}

// pop removes and returns the top of the stack, reporting false on
// underflow.
func (vm *VirtualMachine) pop() (object.Value, bool) {
	if vm.sp < 0 {
		return object.Value{}, false
	}
	v := vm.stack[vm.sp]
	vm.stack[vm.sp] = object.Value{}
	vm.sp--
	return v, true
}

// StackDepth returns the number of values currently on the stack.
func (vm *VirtualMachine) StackDepth() int {
	return vm.sp + 1
}

func (vm *VirtualMachine) resetStack() {
	for i := 0; i <= vm.sp; i++ {
		vm.stack[i] = object.Value{}
	}
	vm.sp = -1
}

// fail records a runtime fault at the instruction that began at offset,
// emits a diagnostic with its source line, and resets the stack so the VM
// is ready for a subsequent Run call.
func (vm *VirtualMachine) fail(logger zerolog.Logger, offset int, format string, args ...any) (object.Value, error) {
	line := vm.chunk.Line(offset)
	err := errz.RuntimeErrorf(line, format, args...)
	logger.Error().
		Int("line", line).
		Int("offset", offset).
		Msg(err.Message)
	vm.resetStack()
	return object.Value{}, err
}

func (vm *VirtualMachine) stackString() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i := 0; i <= vm.sp; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(vm.stack[i].Inspect())
	}
	sb.WriteByte(']')
	return sb.String()
}
