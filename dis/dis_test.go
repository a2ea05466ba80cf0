package dis

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ember-lang/ember/bytecode"
	"github.com/ember-lang/ember/object"
	"github.com/ember-lang/ember/op"
)

func arithmeticChunk() *bytecode.Chunk {
	chunk := bytecode.New()
	a := chunk.AddConstant(object.NewNumber(1.2))
	b := chunk.AddConstant(object.NewNumber(3.4))
	chunk.WriteOp(op.Constant, 1)
	chunk.Write(byte(a), 1)
	chunk.WriteOp(op.Constant, 1)
	chunk.Write(byte(b), 1)
	chunk.WriteOp(op.Add, 1)
	chunk.WriteOp(op.Return, 2)
	return chunk
}

func TestDisassembleArithmetic(t *testing.T) {
	instructions := Disassemble(arithmeticChunk())
	require.Len(t, instructions, 4)

	names := make([]string, 0, 4)
	for _, instr := range instructions {
		names = append(names, instr.Name)
	}
	assert.Equal(t, []string{"CONSTANT", "CONSTANT", "ADD", "RETURN"}, names)

	require.NotNil(t, instructions[0].Constant)
	assert.Equal(t, 1.2, instructions[0].Constant.Number())
	assert.Equal(t, "1.2", instructions[0].Annotation)
	require.NotNil(t, instructions[1].Constant)
	assert.Equal(t, 3.4, instructions[1].Constant.Number())
	assert.Equal(t, "3.4", instructions[1].Annotation)

	// Offsets advance by instruction width.
	assert.Equal(t, 0, instructions[0].Offset)
	assert.Equal(t, 2, instructions[1].Offset)
	assert.Equal(t, 4, instructions[2].Offset)
	assert.Equal(t, 5, instructions[3].Offset)

	// Lines come from the chunk's line table.
	assert.Equal(t, 1, instructions[2].Line)
	assert.Equal(t, 2, instructions[3].Line)
}

func TestDisassembleUnknownOpcode(t *testing.T) {
	chunk := bytecode.New()
	chunk.Write(200, 1)
	chunk.WriteOp(op.Return, 1)

	instructions := Disassemble(chunk)
	require.Len(t, instructions, 2)
	assert.Equal(t, "UNKNOWN", instructions[0].Name)
	assert.Equal(t, "byte 200", instructions[0].Annotation)
	assert.Equal(t, "RETURN", instructions[1].Name)
	assert.Equal(t, 1, instructions[1].Offset)
}

func TestDisassembleTruncatedOperand(t *testing.T) {
	chunk := bytecode.New()
	chunk.WriteOp(op.Constant, 1)
	// no operand byte follows

	instructions := Disassemble(chunk)
	require.Len(t, instructions, 1)
	assert.Equal(t, "CONSTANT", instructions[0].Name)
	assert.Equal(t, "truncated", instructions[0].Annotation)
	assert.Empty(t, instructions[0].Operands)
}

func TestDisassembleBadConstantIndex(t *testing.T) {
	chunk := bytecode.New()
	chunk.WriteOp(op.Constant, 1)
	chunk.Write(9, 1)

	instructions := Disassemble(chunk)
	require.Len(t, instructions, 1)
	assert.Nil(t, instructions[0].Constant)
	assert.Equal(t, "<bad constant index>", instructions[0].Annotation)
}

func TestDisassembleEmptyChunk(t *testing.T) {
	assert.Empty(t, Disassemble(bytecode.New()))
}

func TestPrint(t *testing.T) {
	restore := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = restore }()

	var buf bytes.Buffer
	Print(Disassemble(arithmeticChunk()), &buf)

	result := buf.String()
	expected := strings.TrimSpace(`
+--------+------+----------+----------+------+
| OFFSET | LINE |  OPCODE  | OPERANDS | INFO |
+--------+------+----------+----------+------+
|      0 |    1 | CONSTANT |        0 | 1.2  |
|      2 |    | | CONSTANT |        1 | 3.4  |
|      4 |    | | ADD      |          |      |
|      5 |    2 | RETURN   |          |      |
+--------+------+----------+----------+------+
`)
	assert.Equal(t, expected+"\n", result)
}

func TestDump(t *testing.T) {
	restore := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = restore }()

	var buf bytes.Buffer
	Dump(arithmeticChunk(), "test chunk", &buf)

	result := buf.String()
	assert.True(t, strings.HasPrefix(result, "== test chunk ==\n"))
	assert.Contains(t, result, "CONSTANT")
	assert.Contains(t, result, "RETURN")
}
