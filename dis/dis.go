// Package dis supports analysis of Ember bytecode by disassembling it.
// Disassembly is strictly diagnostic: it never mutates the chunk and never
// fails hard, even on malformed input.
package dis

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/ember-lang/ember/bytecode"
	"github.com/ember-lang/ember/internal/table"
	"github.com/ember-lang/ember/object"
	"github.com/ember-lang/ember/op"
)

// Instruction represents a single decoded instruction and its operands.
type Instruction struct {
	Offset     int
	Line       int
	Name       string
	Opcode     op.Code
	Operands   []byte
	Annotation string
	Constant   *object.Value
}

// Disassemble decodes the chunk's instruction stream from offset zero,
// advancing by each instruction's total width. Unknown opcode bytes decode
// to an UNKNOWN instruction of width one, and an instruction truncated by
// the end of the stream is annotated as such, so disassembly of partially
// malformed input always terminates.
func Disassemble(chunk *bytecode.Chunk) []Instruction {
	var instructions []Instruction
	for offset := 0; offset < chunk.Len(); {
		code := op.Code(chunk.Byte(offset))
		info := op.GetInfo(code)
		instr := Instruction{
			Offset: offset,
			Line:   chunk.Line(offset),
			Opcode: code,
		}
		if info.Name == "" {
			instr.Name = "UNKNOWN"
			instr.Annotation = fmt.Sprintf("byte %d", byte(code))
			instructions = append(instructions, instr)
			offset++
			continue
		}
		instr.Name = info.Name

		avail := chunk.Len() - offset - 1
		count := info.OperandCount
		if count > avail {
			count = avail
			instr.Annotation = "truncated"
		}
		for i := 1; i <= count; i++ {
			instr.Operands = append(instr.Operands, chunk.Byte(offset+i))
		}

		if code == op.Constant && len(instr.Operands) == 1 {
			idx := int(instr.Operands[0])
			if idx < chunk.ConstantCount() {
				v := chunk.Constant(idx)
				instr.Constant = &v
				instr.Annotation = v.Inspect()
			} else {
				instr.Annotation = "<bad constant index>"
			}
		}

		instructions = append(instructions, instr)
		offset += 1 + count
	}
	return instructions
}

// Print writes a table rendering of the instructions to the writer. When
// consecutive instructions share a source line, the repeats are shown as
// "|" to make line boundaries easy to scan.
func Print(instructions []Instruction, writer io.Writer) {
	bold := color.New(color.Bold)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)

	var lines [][]string
	for i, instr := range instructions {
		lineCol := strconv.Itoa(instr.Line)
		if i > 0 && instructions[i-1].Line == instr.Line {
			lineCol = "|"
		}
		name := bold.Sprint(instr.Name)
		if instr.Name == "UNKNOWN" {
			name = red.Sprint(instr.Name)
		}
		info := instr.Annotation
		if instr.Constant != nil {
			info = yellow.Sprint(instr.Annotation)
		}
		lines = append(lines, []string{
			strconv.Itoa(instr.Offset),
			lineCol,
			name,
			formatOperands(instr.Operands),
			info,
		})
	}

	table.NewTable(writer).
		WithHeader([]string{"OFFSET", "LINE", "OPCODE", "OPERANDS", "INFO"}).
		WithColumnAlignment([]table.Alignment{
			table.AlignRight,
			table.AlignRight,
			table.AlignLeft,
			table.AlignRight,
			table.AlignLeft,
		}).
		WithHeaderAlignment([]table.Alignment{
			table.AlignCenter,
			table.AlignCenter,
			table.AlignCenter,
			table.AlignCenter,
			table.AlignCenter,
		}).
		WithRows(lines).
		Render()
}

// Dump disassembles the chunk and writes it to the writer under a named
// header. This is the one-call inspection entry point for drivers.
func Dump(chunk *bytecode.Chunk, name string, writer io.Writer) {
	fmt.Fprintf(writer, "== %s ==\n", name)
	Print(Disassemble(chunk), writer)
}

func formatOperands(operands []byte) string {
	var sb strings.Builder
	for i, b := range operands {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.Itoa(int(b)))
	}
	return sb.String()
}
