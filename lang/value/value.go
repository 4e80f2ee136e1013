// Package value implements wisp's runtime value representation: a small
// tagged union (Value) for nil/bool/number, and a family of heap object
// types sharing a common Header for everything else (strings, functions,
// closures, classes, instances, arrays, maps). The common Header is what
// lets lang/gc walk the heap generically (mark bit, intrusive allocation-list
// pointer) while call sites keep working with concrete types.
package value

import "fmt"

// Kind tags the variant held by a Value.
type Kind uint8

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindObj
)

// Value is wisp's tagged union of runtime values. It is deliberately a small
// value type (copied by assignment) rather than a pure interface, so that
// the operand stack is a flat array with no extra allocation for the common
// nil/bool/number cases.
type Value struct {
	kind Kind
	b    bool
	n    float64
	o    Obj
}

// Nil is the singular nil value.
var Nil = Value{kind: KindNil}

// Bool returns the boolean value b.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns the numeric value n.
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// FromObj wraps a heap object reference as a Value.
func FromObj(o Obj) Value { return Value{kind: KindObj, o: o} }

func (v Value) IsNil() bool    { return v.kind == KindNil }
func (v Value) IsBool() bool   { return v.kind == KindBool }
func (v Value) IsNumber() bool { return v.kind == KindNumber }
func (v Value) IsObj() bool    { return v.kind == KindObj }

func (v Value) AsBool() bool   { return v.b }
func (v Value) AsNumber() float64 { return v.n }
func (v Value) AsObj() Obj     { return v.o }

// Is reports whether v holds a heap object of kind t.
func (v Value) Is(t ObjType) bool { return v.kind == KindObj && v.o.Kind() == t }

// Truthy implements wisp's truthiness rule: false and nil are falsy, every
// other value (including 0 and the empty string) is truthy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNil:
		return false
	case KindBool:
		return v.b
	default:
		return true
	}
}

// TypeName returns the name reported by the typeof() native.
func (v Value) TypeName() string {
	switch v.kind {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindObj:
		switch v.o.Kind() {
		case ObjTypeString:
			return "string"
		case ObjTypeArray:
			return "array"
		case ObjTypeMap:
			return "map"
		case ObjTypeFunction, ObjTypeClosure:
			return "function"
		case ObjTypeNative:
			return "native"
		case ObjTypeClass:
			return "class"
		case ObjTypeInstance:
			return "instance"
		case ObjTypeBoundMethod:
			return "bound method"
		}
	}
	return "unknown"
}

// String renders v the way the print statement does.
func (v Value) String() string {
	switch v.kind {
	case KindNil:
		return "nil"
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindNumber:
		return formatNumber(v.n)
	case KindObj:
		return objString(v.o)
	}
	return "<invalid>"
}

func formatNumber(n float64) string {
	return fmt.Sprintf("%g", n)
}

// Equal implements wisp's equality: nil==nil, bools and numbers compare by
// value, and every heap object (including strings, thanks to interning)
// compares by reference identity.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNil:
		return true
	case KindBool:
		return a.b == b.b
	case KindNumber:
		return a.n == b.n
	case KindObj:
		return a.o == b.o
	}
	return false
}
