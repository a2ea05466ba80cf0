// Package op defines the opcodes understood by the Ember virtual machine.
package op

// Code is a single-byte opcode that indicates an operation to execute.
// An opcode may be followed by a fixed number of single-byte operands.
//
// The numeric values below are frozen. Compiled chunks, the disassembler,
// and any external tooling all rely on this exact encoding, so new opcodes
// must be appended with new values and existing values never reassigned.
type Code byte

const (
	Invalid Code = 0

	// Constant pushes a value from the chunk's constant pool. It carries
	// one operand byte: the pool index (0-255).
	Constant Code = 1

	// Arithmetic. Each pops two operands (top of stack is the right-hand
	// side) and pushes the result.
	Add      Code = 2
	Subtract Code = 3
	Multiply Code = 4
	Divide   Code = 5

	// Negate pops one value and pushes its arithmetic negation.
	Negate Code = 6

	// Return pops the top of stack as the program result and halts.
	Return Code = 7
)

// Info contains information about an opcode.
type Info struct {
	Code         Code
	Name         string
	OperandCount int
}

var infos = make([]Info, 256)

func init() {
	type opInfo struct {
		op    Code
		name  string
		count int
	}
	ops := []opInfo{
		{Constant, "CONSTANT", 1},
		{Add, "ADD", 0},
		{Subtract, "SUBTRACT", 0},
		{Multiply, "MULTIPLY", 0},
		{Divide, "DIVIDE", 0},
		{Negate, "NEGATE", 0},
		{Return, "RETURN", 0},
	}
	for _, o := range ops {
		infos[o.op] = Info{
			Code:         o.op,
			Name:         o.name,
			OperandCount: o.count,
		}
	}
}

// GetInfo returns information about the given opcode. Bytes that do not
// correspond to a defined opcode yield a zero Info with an empty name.
func GetInfo(op Code) Info {
	return infos[op]
}

// Width returns the total instruction width in bytes for the given opcode,
// including the opcode byte itself.
func Width(op Code) int {
	return 1 + infos[op].OperandCount
}

// IsValid reports whether the byte corresponds to a defined opcode.
func IsValid(op Code) bool {
	return infos[op].Name != ""
}

// String returns the opcode mnemonic, or "UNKNOWN" for undefined bytes.
func (c Code) String() string {
	if info := infos[c]; info.Name != "" {
		return info.Name
	}
	return "UNKNOWN"
}
