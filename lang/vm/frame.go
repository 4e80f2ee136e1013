package vm

import "github.com/arzelion/wisp/lang/value"

// callFrame is one activation record: the closure being executed, its
// instruction pointer into that closure's chunk, and the stack index of
// local slot 0 for this call (slotsBase).
type callFrame struct {
	closure   *value.ObjClosure
	ip        int
	slotsBase int
}
