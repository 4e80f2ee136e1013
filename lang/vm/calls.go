package vm

import "github.com/arzelion/wisp/lang/value"

// callClosure pushes a new frame for closure, after checking arity and the
// call-depth limit.
func (vm *VM) callClosure(closure *value.ObjClosure, argc int) error {
	if argc != closure.Fn.Arity {
		return vm.runtimeError("Expected %d arguments but got %d.", closure.Fn.Arity, argc)
	}
	if vm.frameCount == maxFrames {
		return vm.runtimeError("Stack overflow.")
	}

	frame := &vm.frames[vm.frameCount]
	frame.closure = closure
	frame.ip = 0
	frame.slotsBase = vm.stackTop - argc - 1
	vm.frameCount++
	return nil
}

// callValue dispatches Call(argc) over whatever callee turns out to be:
// a closure, a native, a class (constructing an instance and running its
// init method if one exists), or a bound method.
func (vm *VM) callValue(callee value.Value, argc int) error {
	if callee.IsObj() {
		switch obj := callee.AsObj().(type) {
		case *value.ObjClosure:
			return vm.callClosure(obj, argc)

		case *value.ObjNative:
			args := vm.stack[vm.stackTop-argc : vm.stackTop]
			result, err := obj.Fn(args)
			if err != nil {
				return vm.runtimeError("%s", err.Error())
			}
			vm.stackTop -= argc + 1
			vm.push(result)
			return nil

		case *value.ObjClass:
			inst := value.NewInstance(obj)
			// Root inst by writing it into the callee's stack slot before
			// track, which is what can trigger a collection.
			vm.stack[vm.stackTop-argc-1] = value.FromObj(inst)
			vm.track(inst, 48)
			if initMethod, ok := obj.Methods.Get(vm.initString.Chars); ok {
				return vm.callClosure(initMethod.AsObj().(*value.ObjClosure), argc)
			}
			if argc != 0 {
				return vm.runtimeError("Expected 0 arguments but got %d.", argc)
			}
			return nil

		case *value.ObjBoundMethod:
			vm.stack[vm.stackTop-argc-1] = obj.Receiver
			return vm.callClosure(obj.Method, argc)
		}
	}
	return vm.runtimeError("Can only call functions and classes.")
}

// invoke fuses GetProperty+Call for the common `receiver.name(args)` shape:
// a field holding a callable takes priority over a method of the same name.
func (vm *VM) invoke(name string, argc int) error {
	receiver := vm.peek(argc)
	if !receiver.Is(value.ObjTypeInstance) {
		return vm.runtimeError("Only instances have methods.")
	}
	inst := receiver.AsObj().(*value.ObjInstance)

	if field, ok := inst.Fields.Get(name); ok {
		vm.stack[vm.stackTop-argc-1] = field
		return vm.callValue(field, argc)
	}

	return vm.invokeFromClass(inst.Class, name, argc)
}

func (vm *VM) invokeFromClass(class *value.ObjClass, name string, argc int) error {
	m, ok := class.Methods.Get(name)
	if !ok {
		return vm.runtimeError("Undefined property '%s'.", name)
	}
	return vm.callClosure(m.AsObj().(*value.ObjClosure), argc)
}

// bindMethod looks up name on class and, if found, wraps it with the value
// currently on top of the stack (the instance) as a BoundMethod.
func (vm *VM) bindMethod(class *value.ObjClass, name string) (value.Value, bool) {
	m, ok := class.Methods.Get(name)
	if !ok {
		return value.Nil, false
	}
	bound := value.NewBoundMethod(vm.peek(0), m.AsObj().(*value.ObjClosure))
	// Root bound by overwriting the receiver slot it was built from (still
	// on the stack, no longer needed by either caller) before track, which
	// is what can trigger a collection.
	vm.stack[vm.stackTop-1] = value.FromObj(bound)
	vm.track(bound, 32)
	return value.FromObj(bound), true
}

// defineMethod attaches the closure on top of the stack to the class just
// beneath it under name, leaving the class on the stack for further method
// definitions or the final Pop that ends the class body.
func (vm *VM) defineMethod(name string) {
	method := vm.peek(0)
	class := vm.peek(1).AsObj().(*value.ObjClass)
	class.Methods.Set(name, method)
	vm.pop()
}
