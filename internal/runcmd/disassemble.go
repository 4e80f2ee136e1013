package runcmd

import (
	"fmt"
	"io"
	"os"

	"github.com/mna/mainer"

	"github.com/arzelion/wisp/lang/compiler"
	"github.com/arzelion/wisp/lang/debug"
	"github.com/arzelion/wisp/lang/gc"
	"github.com/arzelion/wisp/lang/intern"
	"github.com/arzelion/wisp/lang/value"
	"github.com/arzelion/wisp/lang/vm"
)

// disassemble compiles each file (without running it) and prints every
// function's bytecode, recursing into each nested function found in a
// constant pool so the whole compiled program is shown, not just its
// top-level script body.
func (c *Cmd) disassemble(stdio mainer.Stdio, files []string) mainer.ExitCode {
	if len(files) == 0 {
		fmt.Fprintln(stdio.Stderr, "disassemble: at least one file must be provided")
		return mainer.InvalidArgs
	}

	for _, path := range files {
		src, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(stdio.Stderr, "%s: %s\n", path, err)
			return mainer.Failure
		}

		fn, err := compiler.Compile(string(src), gc.NewHeap(), intern.New())
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			return mainer.ExitCode(vm.CompileError)
		}

		disassembleTree(stdio.Stdout, fn, make(map[*value.ObjFunction]bool))
	}
	return mainer.Success
}

func disassembleTree(w io.Writer, fn *value.ObjFunction, seen map[*value.ObjFunction]bool) {
	if seen[fn] {
		return
	}
	seen[fn] = true

	debug.DisassembleChunk(w, fn.Chunk, fn.DisplayName())
	for _, constant := range fn.Chunk.Constants {
		if constant.Is(value.ObjTypeFunction) {
			disassembleTree(w, constant.AsObj().(*value.ObjFunction), seen)
		}
	}
}
