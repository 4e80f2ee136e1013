package vm

import "github.com/arzelion/wisp/lang/value"

// captureUpvalue returns the open upvalue for the stack slot stackIndex,
// reusing an existing one if the list already has an entry for that slot
// (two closures capturing the same local must share one cell), and
// otherwise allocating a new one and splicing it into the list, which is
// kept sorted by descending StackIndex.
func (vm *VM) captureUpvalue(stackIndex int) *value.ObjUpvalue {
	var prev *value.ObjUpvalue
	uv := vm.openUpvalues
	for uv != nil && uv.StackIndex > stackIndex {
		prev = uv
		uv = uv.NextOpen
	}
	if uv != nil && uv.StackIndex == stackIndex {
		return uv
	}

	created := value.NewUpvalue(stackIndex, &vm.stack[stackIndex])
	// Splice created into the open-upvalue list, which MarkRoots walks,
	// before track, which is what can trigger a collection.
	created.NextOpen = uv
	if prev == nil {
		vm.openUpvalues = created
	} else {
		prev.NextOpen = created
	}
	vm.track(created, 32)
	return created
}

// closeUpvalues closes every open upvalue referencing a stack slot at or
// above fromIndex, copying each one's value out of the stack before that
// slot is discarded by a scope exit or a return.
func (vm *VM) closeUpvalues(fromIndex int) {
	for vm.openUpvalues != nil && vm.openUpvalues.StackIndex >= fromIndex {
		uv := vm.openUpvalues
		uv.Close()
		vm.openUpvalues = uv.NextOpen
	}
}
