package vm

import (
	"fmt"

	"github.com/arzelion/wisp/lang/chunk"
	"github.com/arzelion/wisp/lang/debug"
	"github.com/arzelion/wisp/lang/value"
)

// run drives the fetch-decode-execute loop over the active call frame,
// re-fetching the frame pointer after any opcode that can push or pop a
// frame (Call, Invoke, SuperInvoke, Return): a frame-local cache refreshed
// at the handful of places where it can go stale, rather than re-indexing
// vm.frames on every instruction.
func (vm *VM) run() (InterpretResult, error) {
	frame := &vm.frames[vm.frameCount-1]

	for {
		if vm.Trace {
			vm.printTrace(frame)
		}

		op := chunk.OpCode(frame.closure.Fn.Chunk.Code[frame.ip])
		frame.ip++

		switch op {
		case chunk.OpConstant:
			vm.push(vm.readConstant(frame))

		case chunk.OpNil:
			vm.push(value.Nil)
		case chunk.OpTrue:
			vm.push(value.Bool(true))
		case chunk.OpFalse:
			vm.push(value.Bool(false))

		case chunk.OpPop:
			vm.pop()

		case chunk.OpGetLocal:
			idx := vm.readByte(frame)
			vm.push(vm.stack[frame.slotsBase+int(idx)])
		case chunk.OpSetLocal:
			idx := vm.readByte(frame)
			vm.stack[frame.slotsBase+int(idx)] = vm.peek(0)

		case chunk.OpGetGlobal:
			name := vm.readString(frame)
			v, ok := vm.globals.Get(name.Chars)
			if !ok {
				return vm.fail(vm.runtimeError("Undefined variable '%s'.", name.Chars))
			}
			vm.push(v)
		case chunk.OpDefineGlobal:
			name := vm.readString(frame)
			vm.globals.Set(name.Chars, vm.peek(0))
			vm.pop()
		case chunk.OpSetGlobal:
			// Checking Has before Set, rather than inserting and rolling
			// back, gets the same never-leave-a-zombie-entry guarantee
			// without needing a Table primitive that reports whether a key
			// was already present.
			name := vm.readString(frame)
			if !vm.globals.Has(name.Chars) {
				return vm.fail(vm.runtimeError("Undefined variable '%s'.", name.Chars))
			}
			vm.globals.Set(name.Chars, vm.peek(0))

		case chunk.OpGetUpvalue:
			idx := vm.readByte(frame)
			vm.push(*frame.closure.Upvalues[idx].Location)
		case chunk.OpSetUpvalue:
			idx := vm.readByte(frame)
			*frame.closure.Upvalues[idx].Location = vm.peek(0)

		case chunk.OpEqual:
			b := vm.pop()
			a := vm.pop()
			vm.push(value.Bool(value.Equal(a, b)))
		case chunk.OpGreater, chunk.OpLess:
			if err := vm.compare(op); err != nil {
				return vm.fail(err)
			}

		case chunk.OpAdd:
			if err := vm.add(); err != nil {
				return vm.fail(err)
			}
		case chunk.OpSubtract, chunk.OpMultiply, chunk.OpDivide, chunk.OpModulo:
			if err := vm.arithmetic(op); err != nil {
				return vm.fail(err)
			}
		case chunk.OpNegate:
			if !vm.peek(0).IsNumber() {
				return vm.fail(vm.runtimeError("Operand must be a number."))
			}
			vm.push(value.Number(-vm.pop().AsNumber()))
		case chunk.OpNot:
			vm.push(value.Bool(!vm.pop().Truthy()))

		case chunk.OpJump:
			off := vm.readShort(frame)
			frame.ip += int(off)
		case chunk.OpJumpIfFalse:
			off := vm.readShort(frame)
			if !vm.peek(0).Truthy() {
				frame.ip += int(off)
			}
		case chunk.OpLoop:
			off := vm.readShort(frame)
			frame.ip -= int(off)

		case chunk.OpCall:
			argc := int(vm.readByte(frame))
			if err := vm.callValue(vm.peek(argc), argc); err != nil {
				return vm.fail(err)
			}
			frame = &vm.frames[vm.frameCount-1]

		case chunk.OpInvoke:
			name := vm.readString(frame)
			argc := int(vm.readByte(frame))
			if err := vm.invoke(name.Chars, argc); err != nil {
				return vm.fail(err)
			}
			frame = &vm.frames[vm.frameCount-1]

		case chunk.OpSuperInvoke:
			name := vm.readString(frame)
			argc := int(vm.readByte(frame))
			superclass := vm.pop().AsObj().(*value.ObjClass)
			if err := vm.invokeFromClass(superclass, name.Chars, argc); err != nil {
				return vm.fail(err)
			}
			frame = &vm.frames[vm.frameCount-1]

		case chunk.OpClosure:
			fn := vm.readConstant(frame).AsObj().(*value.ObjFunction)
			closure := value.NewClosure(fn)
			// Root closure before track, which is what can trigger a
			// collection; its Upvalues are filled in afterward, which is
			// safe since a partially-filled slice has only nil entries.
			vm.push(value.FromObj(closure))
			vm.track(closure, 32)
			for i := 0; i < fn.UpvalueCount; i++ {
				isLocal := vm.readByte(frame)
				index := vm.readByte(frame)
				if isLocal == 1 {
					closure.Upvalues[i] = vm.captureUpvalue(frame.slotsBase + int(index))
				} else {
					closure.Upvalues[i] = frame.closure.Upvalues[index]
				}
			}

		case chunk.OpCloseUpvalue:
			vm.closeUpvalues(vm.stackTop - 1)
			vm.pop()

		case chunk.OpReturn:
			result := vm.pop()
			vm.closeUpvalues(frame.slotsBase)
			vm.frameCount--
			if vm.frameCount == 0 {
				vm.pop() // the top-level script closure
				return Ok, nil
			}
			vm.stackTop = frame.slotsBase
			vm.push(result)
			frame = &vm.frames[vm.frameCount-1]

		case chunk.OpClass:
			name := vm.readString(frame)
			class := value.NewClass(name)
			vm.push(value.FromObj(class))
			vm.track(class, 64)

		case chunk.OpInherit:
			superVal := vm.peek(1)
			if !superVal.Is(value.ObjTypeClass) {
				return vm.fail(vm.runtimeError("Superclass must be a class."))
			}
			superclass := superVal.AsObj().(*value.ObjClass)
			subclass := vm.peek(0).AsObj().(*value.ObjClass)
			superclass.Methods.Each(func(k string, v value.Value) bool {
				subclass.Methods.Set(k, v)
				return true
			})
			vm.pop() // subclass; superclass remains bound as the "super" local

		case chunk.OpMethod:
			name := vm.readString(frame)
			vm.defineMethod(name.Chars)

		case chunk.OpGetProperty:
			name := vm.readString(frame)
			if err := vm.getProperty(name.Chars); err != nil {
				return vm.fail(err)
			}
		case chunk.OpSetProperty:
			name := vm.readString(frame)
			if err := vm.setProperty(name.Chars); err != nil {
				return vm.fail(err)
			}
		case chunk.OpGetSuper:
			name := vm.readString(frame)
			superclass := vm.pop().AsObj().(*value.ObjClass)
			bound, ok := vm.bindMethod(superclass, name.Chars)
			if !ok {
				return vm.fail(vm.runtimeError("Undefined property '%s'.", name.Chars))
			}
			vm.pop() // the "this" instance pushed before the super lookup
			vm.push(bound)

		case chunk.OpArrayBuild:
			n := int(vm.readByte(frame))
			items := make([]value.Value, n)
			copy(items, vm.stack[vm.stackTop-n:vm.stackTop])
			vm.stackTop -= n
			arr := value.NewArray(items)
			// Root arr before track, which is what can trigger a collection.
			vm.push(value.FromObj(arr))
			vm.track(arr, 16+8*n)

		case chunk.OpMapBuild:
			n := int(vm.readByte(frame))
			base := vm.stackTop - 2*n
			m := value.NewMap()
			for i := 0; i < n; i++ {
				key := vm.stack[base+2*i].AsObj().(*value.ObjString).Chars
				m.Table.Set(key, vm.stack[base+2*i+1])
			}
			vm.stackTop = base
			// Root m before track, which is what can trigger a collection.
			vm.push(value.FromObj(m))
			vm.track(m, 32)

		case chunk.OpIndexGet:
			if err := vm.indexGet(); err != nil {
				return vm.fail(err)
			}
		case chunk.OpIndexSet:
			if err := vm.indexSet(); err != nil {
				return vm.fail(err)
			}

		case chunk.OpPrint:
			fmt.Fprintln(vm.thread.out(), vm.pop().String())

		default:
			return vm.fail(vm.runtimeError("Unknown opcode %v.", op))
		}
	}
}

func (vm *VM) fail(err error) (InterpretResult, error) {
	return RuntimeError, err
}
