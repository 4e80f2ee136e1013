// Package compiler implements wisp's single-pass Pratt compiler: it consumes
// tokens directly from lang/scanner and emits bytecode directly into a
// lang/chunk.Chunk, with no intermediate AST — locals, upvalues, and scope
// bookkeeping live in compiler-local arrays rather than a resolver pass over
// a separate syntax tree, and jump targets are patched in place as each
// construct closes rather than assembled from a CFG.
package compiler

import (
	gotoken "go/token"

	goscanner "go/scanner"

	"github.com/arzelion/wisp/lang/chunk"
	"github.com/arzelion/wisp/lang/gc"
	"github.com/arzelion/wisp/lang/intern"
	"github.com/arzelion/wisp/lang/scanner"
	"github.com/arzelion/wisp/lang/token"
	"github.com/arzelion/wisp/lang/value"
)

// FunctionKind distinguishes the handful of compile-time contexts that need
// slightly different implicit-return and slot-0 handling.
type FunctionKind uint8

const (
	KindScript FunctionKind = iota
	KindFunction
	KindMethod
	KindInitializer
)

const (
	maxLocals   = 256
	maxUpvalues = 256
	maxParams   = 255
)

// local is one entry in a funcState's fixed local-variable array, indexed by
// the stack slot it will occupy.
type local struct {
	name       string
	depth      int // -1 while the declaring initializer is still being compiled
	isCaptured bool
}

// upvalueRef records, for one funcState, how to resolve upvalue slot N at
// closure-construction time: either by capturing a slot of the immediately
// enclosing function's frame (isLocal) or by copying an upvalue the
// enclosing function already captured.
type upvalueRef struct {
	index   int
	isLocal bool
}

// funcState is one entry in the compiler's stack of lexically nested
// functions being compiled. The chain from the current funcState through
// its enclosing pointers is the compiler's "compiler stack", and also the
// GC root set for in-progress compilation.
type funcState struct {
	enclosing *funcState
	fn        *value.ObjFunction
	kind      FunctionKind

	locals     [maxLocals]local
	localCount int

	upvalues   [maxUpvalues]upvalueRef
	scopeDepth int
}

// classState is one entry in the compiler's stack of nested class bodies
// being compiled, tracking only what the compiler needs to validate `super`
// usage.
type classState struct {
	enclosing     *classState
	hasSuperclass bool
}

// Compiler holds all single-pass compilation state: the token stream, the
// current funcState/classState chain, and the shared heap/intern pool that
// every compile-time allocation (function objects, interned string
// constants) is tracked and deduplicated through.
type Compiler struct {
	sc *scanner.Scanner

	current, previous token.Token
	errs               goscanner.ErrorList
	panicMode          bool

	fs *funcState
	cs *classState

	heap     *gc.Heap
	interner *intern.Pool

	// pendingIntern roots a string between its Intern() and its own track
	// call: the compiler has no operand stack to push a new allocation onto
	// the way the VM does, so this is its equivalent hold-it-here slot.
	pendingIntern *value.ObjString
}

var _ gc.RootMarker = (*Compiler)(nil)

// MarkRoots marks the Function of every funcState currently being compiled,
// from the innermost outward, plus any string interned but not yet attached
// anywhere (see pendingIntern). Each Function's constant pool (already-added
// constants) is then reached by lang/gc's normal blackening of ObjFunction,
// so no separate bookkeeping is needed here for constants added so far.
func (c *Compiler) MarkRoots(mark func(value.Value)) {
	for fs := c.fs; fs != nil; fs = fs.enclosing {
		mark(value.FromObj(fs.fn))
	}
	if c.pendingIntern != nil {
		mark(value.FromObj(c.pendingIntern))
	}
}

// Compile compiles source into a top-level script Function, or returns the
// accumulated compile errors. heap and interner are shared with the VM
// that will eventually run the result, so
// that constants created at compile time (interned strings, the Function
// objects of nested declarations) live in the same GC-managed heap as
// everything allocated at runtime.
func Compile(source string, heap *gc.Heap, interner *intern.Pool) (*value.ObjFunction, error) {
	c := &Compiler{heap: heap, interner: interner}
	c.sc = scanner.New(source)

	topFn := value.NewFunction()
	// Root topFn via c.fs, which MarkRoots walks, before track, which is
	// what can trigger a collection.
	c.fs = &funcState{fn: topFn, kind: KindScript}
	c.fs.localCount = 1 // slot 0 reserved, matching every other frame's layout
	c.track(topFn, 64)

	c.advance()
	for !c.match(token.EOF) {
		c.declaration()
	}

	finished := c.endFunction()
	if err := c.errs.Err(); err != nil {
		return nil, err
	}
	return finished.fn, nil
}

// track links a compile-time allocation onto the shared heap and runs a
// collection immediately if that pushed bytes_allocated over threshold,
// using this Compiler itself as the GC root source (see MarkRoots).
func (c *Compiler) track(obj value.Obj, size int) {
	c.heap.Track(obj, size)
	if c.heap.ShouldCollect() {
		c.heap.Collect(c, c.interner)
	}
}

// internString interns chars, tracking a freshly allocated ObjString on the
// shared heap if this exact content has never been seen before.
func (c *Compiler) internString(chars string) *value.ObjString {
	var tracked *value.ObjString
	s := c.interner.Intern(chars, func(obj *value.ObjString) {
		tracked = obj
	})
	if tracked != nil {
		// Root tracked via pendingIntern before track, which is what can
		// trigger a collection, since the caller hasn't attached it
		// anywhere (a funcState's Name field, a constant pool) yet.
		c.pendingIntern = tracked
		c.track(tracked, len(chars)+16)
		c.pendingIntern = nil
	}
	return s
}

// --- token stream ---------------------------------------------------------

func (c *Compiler) advance() {
	c.previous = c.current
	for {
		c.current = c.sc.Next()
		if c.current.Kind != token.ILLEGAL {
			break
		}
		c.errorAtCurrent(c.current.Lexeme)
	}
}

func (c *Compiler) check(kind token.Kind) bool { return c.current.Kind == kind }

func (c *Compiler) match(kind token.Kind) bool {
	if !c.check(kind) {
		return false
	}
	c.advance()
	return true
}

func (c *Compiler) consume(kind token.Kind, msg string) {
	if c.check(kind) {
		c.advance()
		return
	}
	c.errorAtCurrent(msg)
}

// --- error reporting --------------------------------------------------------

func (c *Compiler) errorAtCurrent(msg string)  { c.errorAt(c.current, msg) }
func (c *Compiler) errorAtPrevious(msg string) { c.errorAt(c.previous, msg) }

func (c *Compiler) errorAt(tok token.Token, msg string) {
	if c.panicMode {
		return
	}
	c.panicMode = true
	c.errs.Add(gotoken.Position{Line: tok.Line}, msg)
}

func (c *Compiler) synchronize() {
	c.panicMode = false
	for c.current.Kind != token.EOF {
		if c.previous.Kind == token.SEMI {
			return
		}
		switch c.current.Kind {
		case token.CLASS, token.FUN, token.VAR, token.FOR, token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}
		c.advance()
	}
}

// --- emission ---------------------------------------------------------------

func (c *Compiler) currentChunk() *chunk.Chunk[value.Value] { return c.fs.fn.Chunk }

func (c *Compiler) emitByte(b byte)            { c.currentChunk().Write(b, c.previous.Line) }
func (c *Compiler) emitOp(op chunk.OpCode)      { c.currentChunk().WriteOp(op, c.previous.Line) }
func (c *Compiler) emitBytes(op chunk.OpCode, b byte) {
	c.emitOp(op)
	c.emitByte(b)
}

func (c *Compiler) emitJump(op chunk.OpCode) int {
	return c.currentChunk().EmitJump(op, c.previous.Line)
}

func (c *Compiler) patchJump(offset int) {
	if err := c.currentChunk().PatchJump(offset); err != nil {
		c.errorAtPrevious(err.Error())
	}
}

func (c *Compiler) emitLoop(loopStart int) {
	if err := c.currentChunk().EmitLoop(loopStart, c.previous.Line); err != nil {
		c.errorAtPrevious(err.Error())
	}
}

func (c *Compiler) emitReturn() {
	if c.fs.kind == KindInitializer {
		c.emitBytes(chunk.OpGetLocal, 0)
	} else {
		c.emitOp(chunk.OpNil)
	}
	c.emitOp(chunk.OpReturn)
}

func (c *Compiler) addConstant(v value.Value) int {
	idx, err := c.currentChunk().AddConstant(v)
	if err != nil {
		c.errorAtPrevious(err.Error())
		return 0
	}
	return idx
}

func (c *Compiler) emitConstant(v value.Value) {
	c.emitBytes(chunk.OpConstant, byte(c.addConstant(v)))
}

// endFunction closes the current funcState: emits the implicit return,
// restores c.fs to the enclosing funcState, and returns the just-finished
// funcState so the caller (function(), or Compile() for the top level) can
// read its compiled Function and recorded upvalues.
func (c *Compiler) endFunction() *funcState {
	c.emitReturn()
	fs := c.fs
	c.fs = fs.enclosing
	return fs
}
