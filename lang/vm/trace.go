package vm

import (
	"fmt"
	"strings"

	"github.com/arzelion/wisp/lang/debug"
)

// printTrace writes the operand stack followed by the disassembly of the
// instruction about to execute: stack first, then the instruction.
func (vm *VM) printTrace(frame *callFrame) {
	var b strings.Builder
	b.WriteString("          ")
	for i := 0; i < vm.stackTop; i++ {
		fmt.Fprintf(&b, "[ %s ]", vm.stack[i].String())
	}
	fmt.Fprintln(vm.thread.errOut(), b.String())
	debug.DisassembleInstruction(vm.thread.errOut(), frame.closure.Fn.Chunk, frame.ip)
}
