// Command ember hand-assembles a demonstration chunk, optionally dumps
// its disassembly, and runs it on the virtual machine. It exists as
// driver glue until a source-text front end produces chunks instead.
package main

import (
	"flag"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/ember-lang/ember/bytecode"
	"github.com/ember-lang/ember/dis"
	"github.com/ember-lang/ember/object"
	"github.com/ember-lang/ember/op"
	"github.com/ember-lang/ember/vm"
)

// demoChunk assembles the bytecode for -((1.2 + 3.4) / 5.6).
func demoChunk() *bytecode.Chunk {
	chunk := bytecode.New()

	writeConstant(chunk, 1.2, 123)
	writeConstant(chunk, 3.4, 123)
	chunk.WriteOp(op.Add, 123)

	writeConstant(chunk, 5.6, 123)
	chunk.WriteOp(op.Divide, 123)
	chunk.WriteOp(op.Negate, 123)

	chunk.WriteOp(op.Return, 123)
	return chunk
}

func writeConstant(chunk *bytecode.Chunk, v float64, line int) {
	idx := chunk.AddConstant(object.NewNumber(v))
	chunk.WriteOp(op.Constant, line)
	chunk.Write(byte(idx), line)
}

func main() {
	showDis := flag.Bool("dis", false, "print the chunk disassembly before running")
	trace := flag.Bool("trace", false, "log every instruction as it executes")
	quiet := flag.Bool("quiet", false, "suppress the program result")
	flag.Parse()

	level := zerolog.InfoLevel
	if *trace {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	chunk := demoChunk()
	defer chunk.Free()

	if err := chunk.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("malformed chunk")
	}
	if *showDis {
		dis.Dump(chunk, "demo", os.Stdout)
	}

	out := io.Writer(os.Stdout)
	if *quiet {
		out = io.Discard
	}
	machine := vm.New(
		vm.WithOutput(out),
		vm.WithLogger(logger),
		vm.WithTracing(*trace),
	)
	os.Exit(machine.Interpret(chunk).ExitCode())
}
