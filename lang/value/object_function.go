package value

import "github.com/arzelion/wisp/lang/chunk"

// ObjFunction is a compiled function: its arity, how many upvalues it
// captures, an optional name (nil for the top-level script), and its
// compiled Chunk.
type ObjFunction struct {
	Header
	Arity        int
	UpvalueCount int
	Name         *ObjString // nil for the top-level script
	Chunk        *chunk.Chunk[Value]
}

var _ Obj = (*ObjFunction)(nil)

// NewFunction returns a function with a fresh, empty chunk.
func NewFunction() *ObjFunction {
	return &ObjFunction{
		Header: Header{Type: ObjTypeFunction},
		Chunk:  &chunk.Chunk[Value]{},
	}
}

// DisplayName returns the name used in stack traces: the function's name,
// or "script" for the implicit top-level function.
func (f *ObjFunction) DisplayName() string {
	if f.Name == nil {
		return "script"
	}
	return f.Name.Chars
}

// NativeFn is the signature of a built-in callable. A non-nil error
// surfaces through the VM's unified runtime-error path, and its returned
// Value is ignored in that case.
type NativeFn func(args []Value) (Value, error)

// ObjNative wraps a built-in function value.
type ObjNative struct {
	Header
	Name string
	Fn   NativeFn
}

var _ Obj = (*ObjNative)(nil)

func NewNative(name string, fn NativeFn) *ObjNative {
	return &ObjNative{Header: Header{Type: ObjTypeNative}, Name: name, Fn: fn}
}
