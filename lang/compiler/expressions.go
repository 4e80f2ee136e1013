package compiler

import (
	"strconv"
	"strings"

	"github.com/arzelion/wisp/lang/chunk"
	"github.com/arzelion/wisp/lang/token"
	"github.com/arzelion/wisp/lang/value"
)

func number(c *Compiler, _ bool) {
	n, _ := strconv.ParseFloat(c.previous.Lexeme, 64)
	c.emitConstant(value.Number(n))
}

// unescape interprets the string-literal escape set: `\\ \' \" \n \t`, plus
// backslash-newline elision (the backslash and the newline it precedes are
// both dropped, letting a literal continue onto the next source line
// without embedding the break). The scanner leaves these untouched
// (lang/scanner/string.go): it only finds where the token ends.
func unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch != '\\' || i+1 >= len(s) {
			b.WriteByte(ch)
			continue
		}
		i++
		switch s[i] {
		case '\\':
			b.WriteByte('\\')
		case '\'':
			b.WriteByte('\'')
		case '"':
			b.WriteByte('"')
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case '\n':
			// backslash-newline elision: contributes nothing
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func stringLiteral(c *Compiler, _ bool) {
	chars := unescape(c.previous.Lexeme)
	s := c.internString(chars)
	c.emitConstant(value.FromObj(s))
}

func literalTrue(c *Compiler, _ bool)  { c.emitOp(chunk.OpTrue) }
func literalFalse(c *Compiler, _ bool) { c.emitOp(chunk.OpFalse) }
func literalNil(c *Compiler, _ bool)   { c.emitOp(chunk.OpNil) }

func grouping(c *Compiler, _ bool) {
	c.expression()
	c.consume(token.RPAREN, "Expect ')' after expression.")
}

func unary(c *Compiler, _ bool) {
	opKind := c.previous.Kind
	c.parsePrecedence(PrecUnary)
	switch opKind {
	case token.MINUS:
		c.emitOp(chunk.OpNegate)
	case token.BANG:
		c.emitOp(chunk.OpNot)
	}
}

func binary(c *Compiler, _ bool) {
	opKind := c.previous.Kind
	r := getRule(opKind)
	c.parsePrecedence(r.prec + 1)

	switch opKind {
	case token.PLUS:
		c.emitOp(chunk.OpAdd)
	case token.MINUS:
		c.emitOp(chunk.OpSubtract)
	case token.STAR:
		c.emitOp(chunk.OpMultiply)
	case token.SLASH:
		c.emitOp(chunk.OpDivide)
	case token.PERCENT:
		c.emitOp(chunk.OpModulo)
	case token.EQEQ:
		c.emitOp(chunk.OpEqual)
	case token.BANGEQ:
		c.emitOp(chunk.OpEqual)
		c.emitOp(chunk.OpNot)
	case token.GT:
		c.emitOp(chunk.OpGreater)
	case token.GE:
		c.emitOp(chunk.OpLess)
		c.emitOp(chunk.OpNot)
	case token.LT:
		c.emitOp(chunk.OpLess)
	case token.LE:
		c.emitOp(chunk.OpGreater)
		c.emitOp(chunk.OpNot)
	}
}

func and_(c *Compiler, _ bool) {
	endJump := c.emitJump(chunk.OpJumpIfFalse)
	c.emitOp(chunk.OpPop)
	c.parsePrecedence(PrecAnd)
	c.patchJump(endJump)
}

func or_(c *Compiler, _ bool) {
	elseJump := c.emitJump(chunk.OpJumpIfFalse)
	endJump := c.emitJump(chunk.OpJump)
	c.patchJump(elseJump)
	c.emitOp(chunk.OpPop)
	c.parsePrecedence(PrecOr)
	c.patchJump(endJump)
}

func (c *Compiler) argumentList() int {
	argc := 0
	if !c.check(token.RPAREN) {
		for {
			c.expression()
			if argc == 255 {
				c.errorAtPrevious("Can't have more than 255 arguments.")
			}
			argc++
			if !c.match(token.COMMA) {
				break
			}
		}
	}
	c.consume(token.RPAREN, "Expect ')' after arguments.")
	return argc
}

func call(c *Compiler, _ bool) {
	argc := c.argumentList()
	c.emitBytes(chunk.OpCall, byte(argc))
}

func dot(c *Compiler, canAssign bool) {
	c.consume(token.IDENT, "Expect property name after '.'.")
	nameConst := c.identifierConstant(c.previous.Lexeme)

	switch {
	case canAssign && c.match(token.EQ):
		c.expression()
		c.emitBytes(chunk.OpSetProperty, byte(nameConst))
	case c.match(token.LPAREN):
		argc := c.argumentList()
		c.emitBytes(chunk.OpInvoke, byte(nameConst))
		c.emitByte(byte(argc))
	default:
		c.emitBytes(chunk.OpGetProperty, byte(nameConst))
	}
}

func indexExpr(c *Compiler, canAssign bool) {
	c.expression()
	c.consume(token.RBRACK, "Expect ']' after index.")
	if canAssign && c.match(token.EQ) {
		c.expression()
		c.emitOp(chunk.OpIndexSet)
	} else {
		c.emitOp(chunk.OpIndexGet)
	}
}

func arrayLiteral(c *Compiler, _ bool) {
	count := 0
	if !c.check(token.RBRACK) {
		for {
			c.expression()
			if count == 255 {
				c.errorAtPrevious("Can't have more than 255 array items.")
			}
			count++
			if !c.match(token.COMMA) {
				break
			}
		}
	}
	c.consume(token.RBRACK, "Expect ']' after array items.")
	c.emitBytes(chunk.OpArrayBuild, byte(count))
}

func mapLiteral(c *Compiler, _ bool) {
	count := 0
	if !c.check(token.RBRACE) {
		for {
			c.consume(token.STRING, "Expect string key.")
			key := unescape(c.previous.Lexeme)
			s := c.internString(key)
			c.emitConstant(value.FromObj(s))
			c.consume(token.COLON, "Expect ':' after map key.")
			c.expression()
			if count == 255 {
				c.errorAtPrevious("Can't have more than 255 map entries.")
			}
			count++
			if !c.match(token.COMMA) {
				break
			}
		}
	}
	c.consume(token.RBRACE, "Expect '}' after map entries.")
	c.emitBytes(chunk.OpMapBuild, byte(count))
}

func variable(c *Compiler, canAssign bool) {
	c.namedVariable(c.previous.Lexeme, canAssign)
}

func (c *Compiler) namedVariable(name string, canAssign bool) {
	var getOp, setOp chunk.OpCode
	var arg int

	if local := c.resolveLocalChecked(c.fs, name); local != -1 {
		arg, getOp, setOp = local, chunk.OpGetLocal, chunk.OpSetLocal
	} else if up := c.resolveUpvalue(c.fs, name); up != -1 {
		arg, getOp, setOp = up, chunk.OpGetUpvalue, chunk.OpSetUpvalue
	} else {
		arg, getOp, setOp = c.identifierConstant(name), chunk.OpGetGlobal, chunk.OpSetGlobal
	}

	if canAssign && c.match(token.EQ) {
		c.expression()
		c.emitBytes(setOp, byte(arg))
	} else {
		c.emitBytes(getOp, byte(arg))
	}
}

func this_(c *Compiler, _ bool) {
	if c.cs == nil {
		c.errorAtPrevious("Can't use 'this' outside of a class.")
		return
	}
	c.namedVariable("this", false)
}

func super_(c *Compiler, _ bool) {
	switch {
	case c.cs == nil:
		c.errorAtPrevious("Can't use 'super' outside of a class.")
	case !c.cs.hasSuperclass:
		c.errorAtPrevious("Can't use 'super' in a class with no superclass.")
	}

	c.consume(token.DOT, "Expect '.' after 'super'.")
	c.consume(token.IDENT, "Expect superclass method name.")
	nameConst := c.identifierConstant(c.previous.Lexeme)

	c.namedVariable("this", false)
	if c.match(token.LPAREN) {
		argc := c.argumentList()
		c.namedVariable("super", false)
		c.emitBytes(chunk.OpSuperInvoke, byte(nameConst))
		c.emitByte(byte(argc))
	} else {
		c.namedVariable("super", false)
		c.emitBytes(chunk.OpGetSuper, byte(nameConst))
	}
}
