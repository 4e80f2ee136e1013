package vm

import "fmt"

// runtimeError formats msg, prints it with a full stack trace (innermost
// frame first) to the thread's stderr, resets the stack so the VM is left
// in a consistent state, and returns an error the caller (run, or
// Interpret for errors raised before the dispatch loop starts) should
// surface as RuntimeError.
func (vm *VM) runtimeError(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(vm.thread.errOut(), msg)

	for i := vm.frameCount - 1; i >= 0; i-- {
		frame := &vm.frames[i]
		fn := frame.closure.Fn
		line := fn.Chunk.LineFor(frame.ip - 1)
		fmt.Fprintf(vm.thread.errOut(), "[line %d] in %s\n", line, fn.DisplayName())
	}

	vm.resetStack()
	return fmt.Errorf("%s", msg)
}
