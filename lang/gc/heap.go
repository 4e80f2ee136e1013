// Package gc implements wisp's tracing garbage collector: a stop-the-world,
// tri-color mark-sweep collector over the heap of lang/value.Obj instances,
// driven by allocation pressure rather than a fixed interval.
package gc

import "github.com/arzelion/wisp/lang/value"

// InitialThreshold is the bytes_allocated level that triggers the first
// collection.
const InitialThreshold = 1 << 20 // 1 MiB

// GrowthFactor is the multiplier applied to bytes_allocated, after a
// collection, to compute the next threshold.
const GrowthFactor = 2

// WeakSet is implemented by the string intern pool: it must be able to drop
// entries whose value is unmarked when asked, between the mark and sweep
// phases of a collection.
type WeakSet interface {
	SweepUnmarked()
}

// RootMarker is implemented by the VM. MarkRoots must call mark once for
// every Value directly reachable as a root: every slot on the operand
// stack, every active frame's closure, every open upvalue, every global,
// the cached "init" string, and the Function (and its enclosing chain) of
// any in-progress compilation.
type RootMarker interface {
	MarkRoots(mark func(value.Value))
}

// Heap owns the allocation list and the bytes_allocated/next_gc accounting
// that decides when a collection is due. It does not decide what counts as
// a root — that is supplied by a RootMarker at collection time — which
// keeps this package free of any dependency on lang/vm.
type Heap struct {
	head           value.Obj
	bytesAllocated int
	nextGC         int

	// StressMode, when true, makes every Track call eligible to trigger a
	// collection regardless of the threshold. Exercised by tests and by the
	// VM's -stress-gc flag to shake out GC bugs that only show up under
	// maximum collection pressure.
	StressMode bool

	// Collections counts how many mark-sweep cycles have run, for
	// diagnostics and tests.
	Collections int
}

// NewHeap returns an empty heap with the initial GC threshold.
func NewHeap() *Heap {
	return &Heap{nextGC: InitialThreshold}
}

// NewHeapWithThreshold returns an empty heap whose first collection fires
// at initialThreshold bytes rather than InitialThreshold, letting an
// embedding CLI raise or lower the collection cadence.
func NewHeapWithThreshold(initialThreshold int) *Heap {
	if initialThreshold <= 0 {
		initialThreshold = InitialThreshold
	}
	return &Heap{nextGC: initialThreshold}
}

// Track links a newly allocated object onto the allocation list and charges
// its estimated size against bytes_allocated. Callers are responsible for
// calling ShouldCollect (and running a collection if it returns true)
// themselves, since only they know the current GC roots; Track does not
// collect on their behalf.
//
// A newly Track-ed object is not, by itself, at risk from a collection
// triggered by this same call (it is linked before the caller can possibly
// allocate again), but a routine that allocates more than once while
// holding references only on the native call stack must keep every interim
// object reachable from a root (usually by pushing it on the operand
// stack) before allocating again.
func (h *Heap) Track(obj value.Obj, size int) {
	h.bytesAllocated += size
	obj.SetNextObj(h.head)
	h.head = obj
}

// BytesAllocated returns the current logical heap size.
func (h *Heap) BytesAllocated() int { return h.bytesAllocated }

// NextGC returns the threshold that will trigger the next collection.
func (h *Heap) NextGC() int { return h.nextGC }

// ShouldCollect reports whether a collection is due: bytes_allocated has
// exceeded next_gc, or StressMode forces a collection before every
// allocation.
func (h *Heap) ShouldCollect() bool {
	return h.StressMode || h.bytesAllocated > h.nextGC
}

// Collect runs one full mark-sweep cycle: mark roots, trace the gray
// worklist to exhaustion, let interner drop now-unreachable entries, sweep
// the allocation list, and reschedule next_gc.
func (h *Heap) Collect(roots RootMarker, interner WeakSet) {
	var gray []value.Obj
	mark := func(v value.Value) {
		markValue(v, &gray)
	}

	roots.MarkRoots(mark)
	for len(gray) > 0 {
		n := len(gray) - 1
		obj := gray[n]
		gray = gray[:n]
		blacken(obj, mark)
	}

	if interner != nil {
		interner.SweepUnmarked()
	}

	h.sweep()
	h.nextGC = h.bytesAllocated * GrowthFactor
	if h.nextGC < InitialThreshold {
		h.nextGC = InitialThreshold
	}
	h.Collections++
}

func markValue(v value.Value, gray *[]value.Obj) {
	if !v.IsObj() {
		return
	}
	o := v.AsObj()
	if o == nil || o.IsMarked() {
		return
	}
	o.SetMarked(true)
	*gray = append(*gray, o)
}

// sweep walks the allocation list, freeing (unlinking) every unmarked
// object and clearing the mark bit of every object that survives, ready for
// the next cycle.
func (h *Heap) sweep() {
	var prev value.Obj
	obj := h.head
	for obj != nil {
		if obj.IsMarked() {
			obj.SetMarked(false)
			prev = obj
			obj = obj.NextObj()
			continue
		}

		unreached := obj
		obj = obj.NextObj()
		if prev != nil {
			prev.SetNextObj(obj)
		} else {
			h.head = obj
		}
		h.bytesAllocated -= estimateSize(unreached)
		if h.bytesAllocated < 0 {
			h.bytesAllocated = 0
		}
	}
}

// Live calls fn for every object currently on the allocation list, in list
// order. It exists for tests that want to assert on post-sweep heap shape.
func (h *Heap) Live(fn func(value.Obj)) {
	for obj := h.head; obj != nil; obj = obj.NextObj() {
		fn(obj)
	}
}
