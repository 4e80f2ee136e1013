package vm

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/arzelion/wisp/lang/value"
)

// defineNatives installs every built-in global function: clock, len,
// push, pop, delete, floor, printf, typeof.
func (vm *VM) defineNatives() {
	vm.defineNative("clock", vm.nativeClock())
	vm.defineNative("len", nativeLen)
	vm.defineNative("push", nativePush)
	vm.defineNative("pop", nativePop)
	vm.defineNative("delete", nativeDelete)
	vm.defineNative("floor", nativeFloor)
	vm.defineNative("printf", vm.nativePrintf())
	vm.defineNative("typeof", vm.nativeTypeof())
}

func (vm *VM) defineNative(name string, fn value.NativeFn) {
	native := value.NewNative(name, fn)
	// Root native in globals, which MarkRoots scans, before track, which is
	// what can trigger a collection (stress mode collects on every Track,
	// and these run before any native is reachable any other way).
	vm.globals.Set(name, value.FromObj(native))
	vm.track(native, 32)
}

// nativeClock returns seconds elapsed since this VM was created, closing
// over vm since the native contract (args []Value) (Value, error) carries
// no VM handle of its own.
func (vm *VM) nativeClock() value.NativeFn {
	return func(args []value.Value) (value.Value, error) {
		return value.Number(time.Since(vm.startTime).Seconds()), nil
	}
}

func nativeLen(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return value.Nil, fmt.Errorf("len() takes exactly 1 argument.")
	}
	switch {
	case args[0].Is(value.ObjTypeString):
		return value.Number(float64(len(args[0].AsObj().(*value.ObjString).Chars))), nil
	case args[0].Is(value.ObjTypeArray):
		return value.Number(float64(len(args[0].AsObj().(*value.ObjArray).Items))), nil
	default:
		return value.Nil, fmt.Errorf("len() expects a string or array.")
	}
}

// nativePush appends v to arr in place and returns v, so that a later pop(a)
// retrieves exactly what was just pushed.
func nativePush(args []value.Value) (value.Value, error) {
	if len(args) != 2 || !args[0].Is(value.ObjTypeArray) {
		return value.Nil, fmt.Errorf("push() expects (array, value).")
	}
	arr := args[0].AsObj().(*value.ObjArray)
	arr.Items = append(arr.Items, args[1])
	return args[1], nil
}

func nativePop(args []value.Value) (value.Value, error) {
	if len(args) != 1 || !args[0].Is(value.ObjTypeArray) {
		return value.Nil, fmt.Errorf("pop() expects an array.")
	}
	arr := args[0].AsObj().(*value.ObjArray)
	if len(arr.Items) == 0 {
		return value.Nil, fmt.Errorf("pop() called on an empty array.")
	}
	last := len(arr.Items) - 1
	v := arr.Items[last]
	arr.Items = arr.Items[:last]
	return v, nil
}

func nativeDelete(args []value.Value) (value.Value, error) {
	if len(args) != 2 || !args[0].Is(value.ObjTypeArray) || !args[1].IsNumber() {
		return value.Nil, fmt.Errorf("delete() expects (array, index).")
	}
	arr := args[0].AsObj().(*value.ObjArray)
	i := int(args[1].AsNumber())
	if i < 0 || i >= len(arr.Items) {
		return value.Nil, fmt.Errorf("delete() index out of bounds.")
	}
	removed := arr.Items[i]
	arr.Items = append(arr.Items[:i], arr.Items[i+1:]...)
	return removed, nil
}

func nativeFloor(args []value.Value) (value.Value, error) {
	if len(args) != 1 || !args[0].IsNumber() {
		return value.Nil, fmt.Errorf("floor() expects a number.")
	}
	return value.Number(math.Floor(args[0].AsNumber())), nil
}

// nativePrintf concatenates the string form of every argument, with no
// separator or trailing newline, and writes it to the thread's stdout —
// the unformatted, variadic sibling of the print statement.
func (vm *VM) nativePrintf() value.NativeFn {
	return func(args []value.Value) (value.Value, error) {
		var b strings.Builder
		for _, a := range args {
			b.WriteString(a.String())
		}
		fmt.Fprint(vm.thread.out(), b.String())
		return value.Nil, nil
	}
}

func (vm *VM) nativeTypeof() value.NativeFn {
	return func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return value.Nil, fmt.Errorf("typeof() takes exactly 1 argument.")
		}
		s := vm.internString(args[0].TypeName())
		return value.FromObj(s), nil
	}
}
