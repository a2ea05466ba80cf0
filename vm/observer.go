package vm

import "github.com/ember-lang/ember/op"

// StepEvent describes one instruction about to be dispatched.
type StepEvent struct {
	Offset     int
	Opcode     op.Code
	OpcodeName string
	Line       int
	StackDepth int
}

// Observer receives callbacks for VM execution events. Profilers,
// debuggers, and execution tracers can hook the machine without changes
// to its core loop. Methods are called synchronously during execution.
type Observer interface {
	// OnStep is called before each instruction is dispatched. Returning
	// false halts execution with a runtime error.
	OnStep(event StepEvent) bool
}

// NoOpObserver is an Observer that does nothing. Embed it to implement
// only the callbacks of interest as the interface grows.
type NoOpObserver struct{}

func (NoOpObserver) OnStep(StepEvent) bool { return true }
