package compiler

import "github.com/arzelion/wisp/lang/token"

// Precedence orders the binding power of infix operators, lowest to
// highest.
type Precedence int

const (
	PrecNone Precedence = iota
	PrecAssignment
	PrecOr
	PrecAnd
	PrecEquality
	PrecComparison
	PrecTerm
	PrecFactor
	PrecUnary
	PrecCall
	PrecPrimary
)

type parseFn func(c *Compiler, canAssign bool)

type rule struct {
	prefix parseFn
	infix  parseFn
	prec   Precedence
}

// getRule looks up the Pratt rule for a token kind by a plain switch rather
// than a table indexed by token.Kind, avoiding the need to export
// lang/token's sentinel kind count just to size an array.
func getRule(kind token.Kind) rule {
	switch kind {
	case token.LPAREN:
		return rule{prefix: grouping, infix: call, prec: PrecCall}
	case token.LBRACK:
		return rule{prefix: arrayLiteral, infix: indexExpr, prec: PrecCall}
	case token.LBRACE:
		return rule{prefix: mapLiteral}
	case token.DOT:
		return rule{infix: dot, prec: PrecCall}
	case token.MINUS:
		return rule{prefix: unary, infix: binary, prec: PrecTerm}
	case token.PLUS:
		return rule{infix: binary, prec: PrecTerm}
	case token.SLASH, token.STAR, token.PERCENT:
		return rule{infix: binary, prec: PrecFactor}
	case token.BANG:
		return rule{prefix: unary}
	case token.BANGEQ, token.EQEQ:
		return rule{infix: binary, prec: PrecEquality}
	case token.GT, token.GE, token.LT, token.LE:
		return rule{infix: binary, prec: PrecComparison}
	case token.IDENT:
		return rule{prefix: variable}
	case token.STRING:
		return rule{prefix: stringLiteral}
	case token.NUMBER:
		return rule{prefix: number}
	case token.AND:
		return rule{infix: and_, prec: PrecAnd}
	case token.OR:
		return rule{infix: or_, prec: PrecOr}
	case token.FALSE:
		return rule{prefix: literalFalse}
	case token.TRUE:
		return rule{prefix: literalTrue}
	case token.NIL:
		return rule{prefix: literalNil}
	case token.THIS:
		return rule{prefix: this_}
	case token.SUPER:
		return rule{prefix: super_}
	}
	return rule{}
}

func (c *Compiler) expression() { c.parsePrecedence(PrecAssignment) }

// parsePrecedence is the Pratt driver: prefix rule, then infix rules while
// the lookahead token binds at least as tightly as prec, then a trailing
// check that an unconsumed `=` wasn't a misplaced assignment target.
func (c *Compiler) parsePrecedence(prec Precedence) {
	c.advance()
	prefixRule := getRule(c.previous.Kind).prefix
	if prefixRule == nil {
		c.errorAtPrevious("Expect expression.")
		return
	}

	canAssign := prec <= PrecAssignment
	prefixRule(c, canAssign)

	for prec <= getRule(c.current.Kind).prec {
		c.advance()
		infixRule := getRule(c.previous.Kind).infix
		infixRule(c, canAssign)
	}

	if canAssign && c.match(token.EQ) {
		c.errorAtPrevious("Invalid assignment target.")
	}
}
