package vm

import "github.com/arzelion/wisp/lang/value"

// getProperty implements OpGetProperty: a field lookup on the instance
// currently on top of the stack, falling back to bind_method against its
// class if no field by that name exists.
func (vm *VM) getProperty(name string) error {
	v := vm.peek(0)
	if !v.Is(value.ObjTypeInstance) {
		return vm.runtimeError("Only instances have properties.")
	}
	inst := v.AsObj().(*value.ObjInstance)

	if field, ok := inst.Fields.Get(name); ok {
		vm.pop()
		vm.push(field)
		return nil
	}

	bound, ok := vm.bindMethod(inst.Class, name)
	if !ok {
		return vm.runtimeError("Undefined property '%s'.", name)
	}
	vm.pop()
	vm.push(bound)
	return nil
}

// setProperty implements OpSetProperty: replaces the instance and value
// pair on top of the stack with the stored value, so the assignment
// expression itself evaluates to the assigned value.
func (vm *VM) setProperty(name string) error {
	target := vm.peek(1)
	if !target.Is(value.ObjTypeInstance) {
		return vm.runtimeError("Only instances have fields.")
	}
	inst := target.AsObj().(*value.ObjInstance)
	val := vm.peek(0)
	inst.Fields.Set(name, val)

	vm.pop() // value
	vm.pop() // instance
	vm.push(val)
	return nil
}

// indexGet implements OpIndexGet over arrays and maps.
func (vm *VM) indexGet() error {
	idx := vm.pop()
	container := vm.pop()

	switch {
	case container.Is(value.ObjTypeArray):
		arr := container.AsObj().(*value.ObjArray)
		if !idx.IsNumber() {
			return vm.runtimeError("Array index must be a number.")
		}
		i := int(idx.AsNumber())
		if i < 0 || i >= len(arr.Items) {
			return vm.runtimeError("Array index out of bounds.")
		}
		vm.push(arr.Items[i])
		return nil

	case container.Is(value.ObjTypeMap):
		m := container.AsObj().(*value.ObjMap)
		if !idx.Is(value.ObjTypeString) {
			return vm.runtimeError("Map key must be a string.")
		}
		v, ok := m.Table.Get(idx.AsObj().(*value.ObjString).Chars)
		if !ok {
			vm.push(value.Nil)
			return nil
		}
		vm.push(v)
		return nil

	default:
		return vm.runtimeError("Only arrays and maps can be indexed.")
	}
}

// indexSet implements OpIndexSet over arrays and maps. Writing nil to a map
// key deletes it; both branches leave the written value on top of the
// stack.
func (vm *VM) indexSet() error {
	val := vm.pop()
	idx := vm.pop()
	container := vm.pop()

	switch {
	case container.Is(value.ObjTypeArray):
		arr := container.AsObj().(*value.ObjArray)
		if !idx.IsNumber() {
			return vm.runtimeError("Array index must be a number.")
		}
		i := int(idx.AsNumber())
		if i < 0 || i >= len(arr.Items) {
			return vm.runtimeError("Array index out of bounds.")
		}
		arr.Items[i] = val
		vm.push(val)
		return nil

	case container.Is(value.ObjTypeMap):
		m := container.AsObj().(*value.ObjMap)
		if !idx.Is(value.ObjTypeString) {
			return vm.runtimeError("Map key must be a string.")
		}
		key := idx.AsObj().(*value.ObjString).Chars
		if val.IsNil() {
			m.Table.Delete(key)
		} else {
			m.Table.Set(key, val)
		}
		vm.push(val)
		return nil

	default:
		return vm.runtimeError("Only arrays and maps can be indexed.")
	}
}
