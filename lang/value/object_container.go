package value

import "github.com/arzelion/wisp/lang/htable"

// ObjArray is a growable, ordered sequence of Values.
type ObjArray struct {
	Header
	Items []Value
}

var _ Obj = (*ObjArray)(nil)

func NewArray(items []Value) *ObjArray {
	return &ObjArray{Header: Header{Type: ObjTypeArray}, Items: items}
}

// ObjMap is a hash table keyed by string, backed by the same lang/htable
// implementation used for globals, instance fields, and method tables.
type ObjMap struct {
	Header
	Table *htable.Table[Value]
}

var _ Obj = (*ObjMap)(nil)

func NewMap() *ObjMap {
	return &ObjMap{Header: Header{Type: ObjTypeMap}, Table: htable.New[Value](0)}
}
