package value

// ObjClosure wraps a Function together with the fixed-length array of
// upvalues it captured at creation time.
type ObjClosure struct {
	Header
	Fn       *ObjFunction
	Upvalues []*ObjUpvalue
}

var _ Obj = (*ObjClosure)(nil)

func NewClosure(fn *ObjFunction) *ObjClosure {
	return &ObjClosure{
		Header:   Header{Type: ObjTypeClosure},
		Fn:       fn,
		Upvalues: make([]*ObjUpvalue, fn.UpvalueCount),
	}
}

// ObjUpvalue is an indirection cell shared between a local variable's
// declaring frame and every closure that captured it. While open, Location
// aliases a live slot on the VM's operand stack (StackIndex records that
// slot for the open-upvalue list's descending-address ordering, since Go
// gives no portable way to compare raw slice-element addresses once the
// backing array is only known by index). Closing copies the value into
// Closed and repoints Location at Closed itself.
type ObjUpvalue struct {
	Header
	StackIndex int
	Location   *Value
	Closed     Value
	NextOpen   *ObjUpvalue // next entry in the VM's open-upvalues list
}

var _ Obj = (*ObjUpvalue)(nil)

func NewUpvalue(stackIndex int, location *Value) *ObjUpvalue {
	return &ObjUpvalue{Header: Header{Type: ObjTypeUpvalue}, StackIndex: stackIndex, Location: location}
}

// Close transitions the upvalue from open to closed: it copies the current
// value out of the stack slot it was aliasing and repoints Location at its
// own Closed field, which remains valid after the enclosing frame is popped.
func (u *ObjUpvalue) Close() {
	u.Closed = *u.Location
	u.Location = &u.Closed
}
