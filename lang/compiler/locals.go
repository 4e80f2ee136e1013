package compiler

import (
	"github.com/arzelion/wisp/lang/chunk"
	"github.com/arzelion/wisp/lang/token"
	"github.com/arzelion/wisp/lang/value"
)

// declareVariable registers the just-consumed identifier (c.previous) as a
// local in the current scope; it is a no-op at global scope, where
// identifiers are resolved at runtime via the globals table instead.
func (c *Compiler) declareVariable() {
	if c.fs.scopeDepth == 0 {
		return
	}

	name := c.previous.Lexeme
	for i := c.fs.localCount - 1; i >= 0; i-- {
		l := c.fs.locals[i]
		if l.depth != -1 && l.depth < c.fs.scopeDepth {
			break
		}
		if name == l.name {
			c.errorAtPrevious("Already a variable with this name in this scope.")
		}
	}
	c.addLocal(name)
}

func (c *Compiler) addLocal(name string) {
	if c.fs.localCount == maxLocals {
		c.errorAtPrevious("Too many local variables in function.")
		return
	}
	c.fs.locals[c.fs.localCount] = local{name: name, depth: -1}
	c.fs.localCount++
}

// resolveLocal searches fs's own locals, innermost declaration first.
func resolveLocal(fs *funcState, name string) int {
	for i := fs.localCount - 1; i >= 0; i-- {
		if fs.locals[i].name == name {
			return i
		}
	}
	return -1
}

// resolveLocalChecked is resolveLocal plus the "own initializer" check that
// only applies when resolving a variable reference (not a declaration).
func (c *Compiler) resolveLocalChecked(fs *funcState, name string) int {
	idx := resolveLocal(fs, name)
	if idx != -1 && fs.locals[idx].depth == -1 {
		c.errorAtPrevious("Can't read local variable in its own initializer.")
	}
	return idx
}

// resolveUpvalue searches enclosing funcStates transitively, building (and
// deduplicating) an upvalue chain as it goes.
func (c *Compiler) resolveUpvalue(fs *funcState, name string) int {
	if fs.enclosing == nil {
		return -1
	}

	if local := resolveLocal(fs.enclosing, name); local != -1 {
		fs.enclosing.locals[local].isCaptured = true
		return c.addUpvalue(fs, local, true)
	}

	if up := c.resolveUpvalue(fs.enclosing, name); up != -1 {
		return c.addUpvalue(fs, up, false)
	}

	return -1
}

func (c *Compiler) addUpvalue(fs *funcState, index int, isLocal bool) int {
	for i := 0; i < fs.fn.UpvalueCount; i++ {
		uv := fs.upvalues[i]
		if uv.index == index && uv.isLocal == isLocal {
			return i
		}
	}

	if fs.fn.UpvalueCount == maxUpvalues {
		c.errorAtPrevious("Too many closure variables in function.")
		return 0
	}

	idx := fs.fn.UpvalueCount
	fs.upvalues[idx] = upvalueRef{index: index, isLocal: isLocal}
	fs.fn.UpvalueCount++
	return idx
}

func (c *Compiler) markInitialized() {
	if c.fs.scopeDepth == 0 {
		return
	}
	c.fs.locals[c.fs.localCount-1].depth = c.fs.scopeDepth
}

// parseVariable consumes an identifier token, declares it as a local if
// inside a scope, and otherwise returns the constant-pool index of its
// interned name for a later DefineGlobal.
func (c *Compiler) parseVariable(errMsg string) int {
	c.consume(token.IDENT, errMsg)
	c.declareVariable()
	if c.fs.scopeDepth > 0 {
		return 0
	}
	return c.identifierConstant(c.previous.Lexeme)
}

func (c *Compiler) identifierConstant(name string) int {
	s := c.internString(name)
	return c.addConstant(value.FromObj(s))
}

// defineVariable finalizes a declaration begun by parseVariable: locals are
// simply marked initialized (they already live at their stack slot); globals
// are bound to the value currently on top of the stack.
func (c *Compiler) defineVariable(global int) {
	if c.fs.scopeDepth > 0 {
		c.markInitialized()
		return
	}
	c.emitBytes(chunk.OpDefineGlobal, byte(global))
}

func (c *Compiler) beginScope() { c.fs.scopeDepth++ }

func (c *Compiler) endScope() {
	c.fs.scopeDepth--
	for c.fs.localCount > 0 && c.fs.locals[c.fs.localCount-1].depth > c.fs.scopeDepth {
		if c.fs.locals[c.fs.localCount-1].isCaptured {
			c.emitOp(chunk.OpCloseUpvalue)
		} else {
			c.emitOp(chunk.OpPop)
		}
		c.fs.localCount--
	}
}
