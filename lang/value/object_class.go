package value

import "github.com/arzelion/wisp/lang/htable"

// ObjClass is a class: a name and an append-only-at-prologue method table
// mapping method name to the *ObjClosure implementing it.
type ObjClass struct {
	Header
	Name    *ObjString
	Methods *htable.Table[Value]
}

var _ Obj = (*ObjClass)(nil)

func NewClass(name *ObjString) *ObjClass {
	return &ObjClass{Header: Header{Type: ObjTypeClass}, Name: name, Methods: htable.New[Value](0)}
}

// ObjInstance is a runtime object: a reference to its class and a mutable
// field table.
type ObjInstance struct {
	Header
	Class  *ObjClass
	Fields *htable.Table[Value]
}

var _ Obj = (*ObjInstance)(nil)

func NewInstance(class *ObjClass) *ObjInstance {
	return &ObjInstance{Header: Header{Type: ObjTypeInstance}, Class: class, Fields: htable.New[Value](0)}
}

// ObjBoundMethod pairs a receiver value with the method closure it was
// looked up from, so the method body sees "this" bound to the receiver
// without the call site needing to track it separately.
type ObjBoundMethod struct {
	Header
	Receiver Value
	Method   *ObjClosure
}

var _ Obj = (*ObjBoundMethod)(nil)

func NewBoundMethod(receiver Value, method *ObjClosure) *ObjBoundMethod {
	return &ObjBoundMethod{Header: Header{Type: ObjTypeBoundMethod}, Receiver: receiver, Method: method}
}
