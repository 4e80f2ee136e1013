package vm

import (
	"math"

	"github.com/arzelion/wisp/lang/chunk"
	"github.com/arzelion/wisp/lang/value"
)

// add implements OpAdd's dual contract: number+number, or string+string
// concatenation. Both operands stay rooted on the operand stack (peeked,
// not popped) until after the concatenated string has been interned and
// tracked, since interning may itself trigger a collection.
func (vm *VM) add() error {
	a := vm.peek(1)
	b := vm.peek(0)

	switch {
	case a.IsNumber() && b.IsNumber():
		vm.pop()
		vm.pop()
		vm.push(value.Number(a.AsNumber() + b.AsNumber()))
		return nil

	case a.Is(value.ObjTypeString) && b.Is(value.ObjTypeString):
		as := a.AsObj().(*value.ObjString).Chars
		bs := b.AsObj().(*value.ObjString).Chars
		s := vm.internString(as + bs)
		vm.pop()
		vm.pop()
		vm.push(value.FromObj(s))
		return nil

	default:
		return vm.runtimeError("Operands must be two numbers or two strings.")
	}
}

// arithmetic implements Subtract/Multiply/Divide/Modulo, all of which
// require both operands to be numbers. Modulo uses Go's math.Mod
// (sign-of-dividend) rather than a mathematical modulo.
func (vm *VM) arithmetic(op chunk.OpCode) error {
	if !vm.peek(0).IsNumber() || !vm.peek(1).IsNumber() {
		return vm.runtimeError("Operands must be numbers.")
	}
	b := vm.pop().AsNumber()
	a := vm.pop().AsNumber()

	var result float64
	switch op {
	case chunk.OpSubtract:
		result = a - b
	case chunk.OpMultiply:
		result = a * b
	case chunk.OpDivide:
		result = a / b
	case chunk.OpModulo:
		result = math.Mod(a, b)
	}
	vm.push(value.Number(result))
	return nil
}

// compare implements Greater/Less, both of which require numeric operands;
// GE/LE/NE/BANGEQ are synthesized by the compiler from these plus Not.
func (vm *VM) compare(op chunk.OpCode) error {
	if !vm.peek(0).IsNumber() || !vm.peek(1).IsNumber() {
		return vm.runtimeError("Operands must be numbers.")
	}
	b := vm.pop().AsNumber()
	a := vm.pop().AsNumber()

	var result bool
	if op == chunk.OpGreater {
		result = a > b
	} else {
		result = a < b
	}
	vm.push(value.Bool(result))
	return nil
}
