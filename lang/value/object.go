package value

import "strconv"

// ObjType tags the concrete variant of a heap object.
type ObjType uint8

const (
	ObjTypeString ObjType = iota
	ObjTypeFunction
	ObjTypeNative
	ObjTypeClosure
	ObjTypeUpvalue
	ObjTypeClass
	ObjTypeInstance
	ObjTypeBoundMethod
	ObjTypeArray
	ObjTypeMap
)

// Obj is implemented by every heap-allocated value. lang/gc walks the heap
// entirely through this interface: it never needs to know about ObjString,
// ObjClosure, etc. directly for bookkeeping purposes (only for blackening,
// where it type-switches to find outgoing references).
type Obj interface {
	Kind() ObjType
	IsMarked() bool
	SetMarked(bool)
	NextObj() Obj
	SetNextObj(Obj)
}

// Header is the common bookkeeping every heap object embeds: its type tag,
// GC mark bit, and the intrusive next-pointer threading it onto the
// allocator's global allocation list. It is the Go expression of clox's
// `Obj obj;` first struct member.
type Header struct {
	Type   ObjType
	marked bool
	next   Obj
}

func (h *Header) Kind() ObjType     { return h.Type }
func (h *Header) IsMarked() bool    { return h.marked }
func (h *Header) SetMarked(m bool)  { h.marked = m }
func (h *Header) NextObj() Obj      { return h.next }
func (h *Header) SetNextObj(o Obj)  { h.next = o }

func objString(o Obj) string {
	switch x := o.(type) {
	case *ObjString:
		return x.Chars
	case *ObjFunction:
		if x.Name == nil {
			return "<script>"
		}
		return "<fn " + x.Name.Chars + ">"
	case *ObjNative:
		return "<native fn " + x.Name + ">"
	case *ObjClosure:
		return objString(x.Fn)
	case *ObjUpvalue:
		return "<upvalue>"
	case *ObjClass:
		return x.Name.Chars
	case *ObjInstance:
		return x.Class.Name.Chars + " instance"
	case *ObjBoundMethod:
		return objString(x.Method)
	case *ObjArray:
		return arrayString(x)
	case *ObjMap:
		return "map(" + strconv.Itoa(x.Table.Len()) + " entries)"
	}
	return "<obj>"
}

func arrayString(a *ObjArray) string {
	s := "["
	for i, item := range a.Items {
		if i > 0 {
			s += ", "
		}
		s += item.String()
	}
	return s + "]"
}
