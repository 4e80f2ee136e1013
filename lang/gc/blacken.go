package gc

import "github.com/arzelion/wisp/lang/value"

// blacken marks every Value directly reachable from obj, one case per heap
// object kind. Strings and natives have no outgoing references and so fall
// through to the default no-op case.
func blacken(obj value.Obj, mark func(value.Value)) {
	switch o := obj.(type) {
	case *value.ObjClosure:
		mark(value.FromObj(o.Fn))
		for _, uv := range o.Upvalues {
			if uv != nil {
				mark(value.FromObj(uv))
			}
		}

	case *value.ObjFunction:
		if o.Name != nil {
			mark(value.FromObj(o.Name))
		}
		for _, c := range o.Chunk.Constants {
			mark(c)
		}

	case *value.ObjUpvalue:
		mark(o.Closed)

	case *value.ObjInstance:
		mark(value.FromObj(o.Class))
		o.Fields.Each(func(_ string, v value.Value) bool {
			mark(v)
			return true
		})

	case *value.ObjClass:
		mark(value.FromObj(o.Name))
		o.Methods.Each(func(_ string, v value.Value) bool {
			mark(v)
			return true
		})

	case *value.ObjBoundMethod:
		mark(o.Receiver)
		mark(value.FromObj(o.Method))

	case *value.ObjArray:
		for _, v := range o.Items {
			mark(v)
		}

	case *value.ObjMap:
		o.Table.Each(func(_ string, v value.Value) bool {
			mark(v)
			return true
		})

	case *value.ObjString, *value.ObjNative:
		// No outgoing references.
	}
}

// estimateSize returns a logical byte count for obj, used purely to drive
// the bytes_allocated/next_gc heuristic; it is not required to match Go's
// actual allocation size.
func estimateSize(obj value.Obj) int {
	const headerSize = 16

	switch o := obj.(type) {
	case *value.ObjString:
		return headerSize + len(o.Chars)
	case *value.ObjFunction:
		return headerSize + 32 + len(o.Chunk.Code)
	case *value.ObjNative:
		return headerSize + 16
	case *value.ObjClosure:
		return headerSize + 8*len(o.Upvalues)
	case *value.ObjUpvalue:
		return headerSize + 16
	case *value.ObjClass:
		return headerSize + 32
	case *value.ObjInstance:
		return headerSize + 16
	case *value.ObjBoundMethod:
		return headerSize + 16
	case *value.ObjArray:
		return headerSize + 16*len(o.Items)
	case *value.ObjMap:
		return headerSize + 16*o.Table.Len()
	default:
		return headerSize
	}
}
