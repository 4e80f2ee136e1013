// Package vm implements wisp's stack-based virtual machine: call frames,
// the operand stack, globals, open upvalues, and the opcode dispatch loop
// that executes a Function compiled by lang/compiler. Its shape — a fixed
// frame array, a for+switch dispatch loop, a Thread carrying
// Stdout/Stderr/Stdin — mirrors a conventional register-free bytecode
// interpreter; the instruction set and calling convention are clox-style.
package vm

import (
	"fmt"
	"time"

	"github.com/arzelion/wisp/lang/compiler"
	"github.com/arzelion/wisp/lang/debug"
	"github.com/arzelion/wisp/lang/gc"
	"github.com/arzelion/wisp/lang/htable"
	"github.com/arzelion/wisp/lang/intern"
	"github.com/arzelion/wisp/lang/value"
)

const (
	maxFrames = 64
	stackMax  = maxFrames * 256
)

// VM is one complete execution context: its own heap, intern pool, globals,
// call-frame stack, and operand stack. Nothing is shared between VMs.
type VM struct {
	thread *Thread

	heap     *gc.Heap
	interner *intern.Pool
	globals  *htable.Table[value.Value]

	frames     [maxFrames]callFrame
	frameCount int

	stack    [stackMax]value.Value
	stackTop int

	openUpvalues *value.ObjUpvalue

	// initString is the cached "init" constructor name, looked up on every
	// class instantiation; interning it once avoids re-hashing "init" for
	// every construction call, and it is part of the GC root set.
	initString *value.ObjString

	startTime time.Time

	// Trace, when true, writes one debug.DisassembleInstruction line plus a
	// rendering of the operand stack to the thread's stderr before every
	// instruction executes.
	Trace bool
}

var _ gc.RootMarker = (*VM)(nil)

// Option configures a VM at construction time, applied in order before the
// cached "init" string and native builtins are installed.
type Option func(*VM)

// WithHeap replaces the VM's default heap, letting a caller pick a
// different initial GC threshold via gc.NewHeapWithThreshold.
func WithHeap(h *gc.Heap) Option {
	return func(vm *VM) {
		if h != nil {
			vm.heap = h
		}
	}
}

// WithStressGC enables StressMode on the VM's heap, forcing a collection
// before every allocation.
func WithStressGC(enabled bool) Option {
	return func(vm *VM) { vm.heap.StressMode = enabled }
}

// WithTrace enables per-instruction execution tracing.
func WithTrace(enabled bool) Option {
	return func(vm *VM) { vm.Trace = enabled }
}

// New returns a fresh VM attached to th (nil uses os.Stdout/Stderr/Stdin).
func New(th *Thread, opts ...Option) *VM {
	vm := &VM{
		thread:    th,
		heap:      gc.NewHeap(),
		interner:  intern.New(),
		globals:   htable.New[value.Value](0),
		startTime: time.Now(),
	}
	for _, opt := range opts {
		opt(vm)
	}
	vm.initString = vm.internString("init")
	vm.defineNatives()
	return vm
}

// Heap exposes the VM's heap so an embedding CLI can toggle StressMode
// without the vm package needing its own flag type.
func (vm *VM) Heap() *gc.Heap { return vm.heap }

// Interpret compiles and runs source on this VM, returning the matching
// InterpretResult alongside the first error encountered (nil on Ok).
func (vm *VM) Interpret(source string) (InterpretResult, error) {
	fn, err := compiler.Compile(source, vm.heap, vm.interner)
	if err != nil {
		fmt.Fprintln(vm.thread.errOut(), err)
		return CompileError, err
	}

	// Root the raw Function on the stack before allocating the Closure
	// that wraps it, so a collection triggered by that allocation can't
	// reclaim it first; then root the Closure itself before tracking it,
	// since track is what can actually trigger that collection.
	vm.push(value.FromObj(fn))
	closure := value.NewClosure(fn)
	vm.pop()
	vm.push(value.FromObj(closure))
	vm.track(closure, 32)

	if err := vm.callClosure(closure, 0); err != nil {
		return RuntimeError, err
	}

	return vm.run()
}

// --- allocation -------------------------------------------------------------

func (vm *VM) track(obj value.Obj, size int) {
	vm.heap.Track(obj, size)
	if vm.heap.ShouldCollect() {
		vm.heap.Collect(vm, vm.interner)
	}
}

func (vm *VM) internString(chars string) *value.ObjString {
	var tracked *value.ObjString
	s := vm.interner.Intern(chars, func(obj *value.ObjString) {
		tracked = obj
	})
	if tracked != nil {
		// Root the new string on the stack before track, which is what can
		// trigger the collection that would otherwise sweep it right back
		// out of the intern pool it was just added to.
		vm.push(value.FromObj(tracked))
		vm.track(tracked, len(chars)+16)
		vm.pop()
	}
	return s
}

// MarkRoots marks every Value reachable without going through another heap
// object: the live operand stack, every active frame's closure, every open
// upvalue, every global, and the cached "init" string.
func (vm *VM) MarkRoots(mark func(value.Value)) {
	for i := 0; i < vm.stackTop; i++ {
		mark(vm.stack[i])
	}
	for i := 0; i < vm.frameCount; i++ {
		mark(value.FromObj(vm.frames[i].closure))
	}
	for uv := vm.openUpvalues; uv != nil; uv = uv.NextOpen {
		mark(value.FromObj(uv))
	}
	vm.globals.Each(func(_ string, v value.Value) bool {
		mark(v)
		return true
	})
	if vm.initString != nil {
		mark(value.FromObj(vm.initString))
	}
}

// --- operand stack -----------------------------------------------------------

func (vm *VM) push(v value.Value) {
	vm.stack[vm.stackTop] = v
	vm.stackTop++
}

func (vm *VM) pop() value.Value {
	vm.stackTop--
	return vm.stack[vm.stackTop]
}

func (vm *VM) peek(distance int) value.Value {
	return vm.stack[vm.stackTop-1-distance]
}

func (vm *VM) resetStack() {
	vm.stackTop = 0
	vm.frameCount = 0
	vm.openUpvalues = nil
}

// --- bytecode stream helpers --------------------------------------------------

func (vm *VM) readByte(frame *callFrame) byte {
	b := frame.closure.Fn.Chunk.Code[frame.ip]
	frame.ip++
	return b
}

func (vm *VM) readShort(frame *callFrame) uint16 {
	hi := vm.readByte(frame)
	lo := vm.readByte(frame)
	return uint16(hi)<<8 | uint16(lo)
}

func (vm *VM) readConstant(frame *callFrame) value.Value {
	idx := vm.readByte(frame)
	return frame.closure.Fn.Chunk.Constants[idx]
}

func (vm *VM) readString(frame *callFrame) *value.ObjString {
	return vm.readConstant(frame).AsObj().(*value.ObjString)
}
