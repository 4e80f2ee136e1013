package compiler

import (
	"github.com/arzelion/wisp/lang/chunk"
	"github.com/arzelion/wisp/lang/token"
	"github.com/arzelion/wisp/lang/value"
)

func (c *Compiler) declaration() {
	switch {
	case c.match(token.CLASS):
		c.classDeclaration()
	case c.match(token.FUN):
		c.funDeclaration()
	case c.match(token.VAR):
		c.varDeclaration()
	default:
		c.statement()
	}
	if c.panicMode {
		c.synchronize()
	}
}

func (c *Compiler) varDeclaration() {
	global := c.parseVariable("Expect variable name.")
	if c.match(token.EQ) {
		c.expression()
	} else {
		c.emitOp(chunk.OpNil)
	}
	c.consume(token.SEMI, "Expect ';' after variable declaration.")
	c.defineVariable(global)
}

func (c *Compiler) funDeclaration() {
	global := c.parseVariable("Expect function name.")
	name := c.previous.Lexeme
	c.markInitialized()
	c.function(KindFunction, name)
	c.defineVariable(global)
}

// function compiles one function body (or method, for kind Method/
// Initializer) into a fresh Function and emits the Closure instruction (plus
// its upvalue-capture byte pairs) into the enclosing chunk.
func (c *Compiler) function(kind FunctionKind, name string) {
	fn := value.NewFunction()
	fn.Name = c.internString(name)

	fs := &funcState{enclosing: c.fs, fn: fn, kind: kind}
	if kind != KindFunction && kind != KindScript {
		fs.locals[0] = local{name: "this", depth: 0}
	} else {
		fs.locals[0] = local{name: "", depth: 0}
	}
	fs.localCount = 1
	// Root fn via c.fs, which MarkRoots walks, before track, which is what
	// can trigger a collection.
	c.fs = fs
	c.track(fn, 64)

	c.beginScope()
	c.consume(token.LPAREN, "Expect '(' after function name.")
	if !c.check(token.RPAREN) {
		for {
			fn.Arity++
			if fn.Arity > maxParams {
				c.errorAtCurrent("Can't have more than 255 parameters.")
			}
			paramConst := c.parseVariable("Expect parameter name.")
			c.defineVariable(paramConst)
			if !c.match(token.COMMA) {
				break
			}
		}
	}
	c.consume(token.RPAREN, "Expect ')' after parameters.")
	c.consume(token.LBRACE, "Expect '{' before function body.")
	c.block()

	finished := c.endFunction()
	idx := c.addConstant(value.FromObj(finished.fn))
	c.emitBytes(chunk.OpClosure, byte(idx))
	for i := 0; i < finished.fn.UpvalueCount; i++ {
		uv := finished.upvalues[i]
		c.emitByte(boolByte(uv.isLocal))
		c.emitByte(byte(uv.index))
	}
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func (c *Compiler) method() {
	c.consume(token.IDENT, "Expect method name.")
	name := c.previous.Lexeme
	nameConst := c.identifierConstant(name)

	kind := KindMethod
	if name == "init" {
		kind = KindInitializer
	}
	c.function(kind, name)
	c.emitBytes(chunk.OpMethod, byte(nameConst))
}

func (c *Compiler) classDeclaration() {
	c.consume(token.IDENT, "Expect class name.")
	className := c.previous.Lexeme
	nameConst := c.identifierConstant(className)
	c.declareVariable()

	c.emitBytes(chunk.OpClass, byte(nameConst))
	c.defineVariable(nameConst)

	cs := &classState{enclosing: c.cs}
	c.cs = cs

	if c.match(token.LT) {
		c.consume(token.IDENT, "Expect superclass name.")
		superName := c.previous.Lexeme
		if superName == className {
			c.errorAtPrevious("A class can't inherit from itself.")
		}
		c.namedVariable(superName, false)

		c.beginScope()
		c.addLocal("super")
		c.defineVariable(0)

		c.namedVariable(className, false)
		c.emitOp(chunk.OpInherit)
		cs.hasSuperclass = true
	}

	c.namedVariable(className, false)
	c.consume(token.LBRACE, "Expect '{' before class body.")
	for !c.check(token.RBRACE) && !c.check(token.EOF) {
		c.method()
	}
	c.consume(token.RBRACE, "Expect '}' after class body.")
	c.emitOp(chunk.OpPop)

	if cs.hasSuperclass {
		c.endScope()
	}
	c.cs = cs.enclosing
}

func (c *Compiler) statement() {
	switch {
	case c.match(token.PRINT):
		c.printStatement()
	case c.match(token.IF):
		c.ifStatement()
	case c.match(token.RETURN):
		c.returnStatement()
	case c.match(token.WHILE):
		c.whileStatement()
	case c.match(token.FOR):
		c.forStatement()
	case c.match(token.LBRACE):
		c.beginScope()
		c.block()
		c.endScope()
	default:
		c.expressionStatement()
	}
}

func (c *Compiler) block() {
	for !c.check(token.RBRACE) && !c.check(token.EOF) {
		c.declaration()
	}
	c.consume(token.RBRACE, "Expect '}' after block.")
}

func (c *Compiler) printStatement() {
	c.expression()
	c.consume(token.SEMI, "Expect ';' after value.")
	c.emitOp(chunk.OpPrint)
}

func (c *Compiler) expressionStatement() {
	c.expression()
	c.consume(token.SEMI, "Expect ';' after expression.")
	c.emitOp(chunk.OpPop)
}

func (c *Compiler) ifStatement() {
	c.consume(token.LPAREN, "Expect '(' after 'if'.")
	c.expression()
	c.consume(token.RPAREN, "Expect ')' after condition.")

	thenJump := c.emitJump(chunk.OpJumpIfFalse)
	c.emitOp(chunk.OpPop)
	c.statement()

	elseJump := c.emitJump(chunk.OpJump)
	c.patchJump(thenJump)
	c.emitOp(chunk.OpPop)

	if c.match(token.ELSE) {
		c.statement()
	}
	c.patchJump(elseJump)
}

func (c *Compiler) whileStatement() {
	loopStart := c.currentChunk().Len()
	c.consume(token.LPAREN, "Expect '(' after 'while'.")
	c.expression()
	c.consume(token.RPAREN, "Expect ')' after condition.")

	exitJump := c.emitJump(chunk.OpJumpIfFalse)
	c.emitOp(chunk.OpPop)
	c.statement()
	c.emitLoop(loopStart)

	c.patchJump(exitJump)
	c.emitOp(chunk.OpPop)
}

func (c *Compiler) forStatement() {
	c.beginScope()
	c.consume(token.LPAREN, "Expect '(' after 'for'.")

	switch {
	case c.match(token.SEMI):
		// no initializer
	case c.match(token.VAR):
		c.varDeclaration()
	default:
		c.expressionStatement()
	}

	loopStart := c.currentChunk().Len()
	exitJump := -1
	if !c.match(token.SEMI) {
		c.expression()
		c.consume(token.SEMI, "Expect ';' after loop condition.")
		exitJump = c.emitJump(chunk.OpJumpIfFalse)
		c.emitOp(chunk.OpPop)
	}

	if !c.match(token.RPAREN) {
		bodyJump := c.emitJump(chunk.OpJump)
		incrementStart := c.currentChunk().Len()
		c.expression()
		c.emitOp(chunk.OpPop)
		c.consume(token.RPAREN, "Expect ')' after for clauses.")

		c.emitLoop(loopStart)
		loopStart = incrementStart
		c.patchJump(bodyJump)
	}

	c.statement()
	c.emitLoop(loopStart)

	if exitJump != -1 {
		c.patchJump(exitJump)
		c.emitOp(chunk.OpPop)
	}
	c.endScope()
}

func (c *Compiler) returnStatement() {
	if c.fs.kind == KindScript {
		c.errorAtPrevious("Can't return from top-level code.")
	}

	if c.match(token.SEMI) {
		c.emitReturn()
		return
	}

	if c.fs.kind == KindInitializer {
		c.errorAtPrevious("Can't return a value from an initializer.")
	}
	c.expression()
	c.consume(token.SEMI, "Expect ';' after return value.")
	c.emitOp(chunk.OpReturn)
}
