// Package bytecode defines the Chunk, a compiled bytecode program made of
// an instruction stream, a constant pool, and a per-instruction source
// line table.
package bytecode

import (
	"github.com/gofrs/uuid"

	"github.com/ember-lang/ember/internal/array"
	"github.com/ember-lang/ember/object"
	"github.com/ember-lang/ember/op"
)

// Chunk is one compiled bytecode program. It is built incrementally by its
// owner (a driver or future compiler) and is read-only once handed to the
// VM or disassembler. The chunk owns its three arrays exclusively.
//
// Invariant: the lines array holds exactly one entry per code byte, so
// lines[i] is the originating source line of code[i].
type Chunk struct {
	id        string
	code      array.Array[byte]
	lines     array.Array[int]
	constants array.Array[object.Value]
}

// New returns an empty chunk with a unique identifier.
func New() *Chunk {
	return &Chunk{id: uuid.Must(uuid.NewV4()).String()}
}

// ID returns the unique identifier for this chunk, used to correlate
// diagnostics and log entries.
func (c *Chunk) ID() string {
	return c.id
}

// Write appends one byte to the instruction stream, recording the source
// line it originated from. The chunk does not validate opcode
// well-formedness; operand arity is the writer's responsibility.
func (c *Chunk) Write(b byte, line int) {
	c.code.Append(b)
	c.lines.Append(line)
}

// WriteOp appends an opcode byte. Any operand bytes must follow via Write.
func (c *Chunk) WriteOp(code op.Code, line int) {
	c.Write(byte(code), line)
}

// AddConstant appends a value to the constant pool and returns its index,
// for the caller to embed as an operand byte.
func (c *Chunk) AddConstant(v object.Value) int {
	c.constants.Append(v)
	return c.constants.Count() - 1
}

// Free releases the code, line, and constant arrays. Safe to call more
// than once.
func (c *Chunk) Free() {
	c.code.Free()
	c.lines.Free()
	c.constants.Free()
}

// Len returns the number of bytes in the instruction stream.
func (c *Chunk) Len() int {
	return c.code.Count()
}

// Byte returns the instruction stream byte at the given offset.
func (c *Chunk) Byte(offset int) byte {
	return c.code.Get(offset)
}

// Line returns the source line of the byte at the given offset.
func (c *Chunk) Line(offset int) int {
	return c.lines.Get(offset)
}

// ConstantCount returns the number of values in the constant pool.
func (c *Chunk) ConstantCount() int {
	return c.constants.Count()
}

// Constant returns the constant pool value at the given index.
func (c *Chunk) Constant(i int) object.Value {
	return c.constants.Get(i)
}
