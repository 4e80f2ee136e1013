package chunk

import "fmt"

// OpCode is a single bytecode instruction. Operand widths are fixed per op
// (see operandWidths) rather than varint-encoded: most operands are one
// byte, jump targets are two bytes big-endian, and Closure is followed by a
// variable number of upvalue-capture byte pairs that the compiler, not the
// Chunk, accounts for.
type OpCode uint8

//nolint:revive
const (
	OpConstant OpCode = iota
	OpNil
	OpTrue
	OpFalse

	OpPop

	OpGetLocal
	OpSetLocal
	OpGetGlobal
	OpSetGlobal
	OpDefineGlobal
	OpGetUpvalue
	OpSetUpvalue

	OpEqual
	OpGreater
	OpLess

	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpModulo
	OpNegate
	OpNot

	OpJump
	OpJumpIfFalse
	OpLoop

	OpCall
	OpInvoke
	OpSuperInvoke
	OpClosure
	OpCloseUpvalue
	OpReturn

	OpClass
	OpInherit
	OpMethod
	OpGetProperty
	OpSetProperty
	OpGetSuper

	OpArrayBuild
	OpMapBuild
	OpIndexGet
	OpIndexSet

	OpPrint

	opCodeCount
)

var opNames = [opCodeCount]string{
	OpConstant:     "OP_CONSTANT",
	OpNil:          "OP_NIL",
	OpTrue:         "OP_TRUE",
	OpFalse:        "OP_FALSE",
	OpPop:          "OP_POP",
	OpGetLocal:     "OP_GET_LOCAL",
	OpSetLocal:     "OP_SET_LOCAL",
	OpGetGlobal:    "OP_GET_GLOBAL",
	OpSetGlobal:    "OP_SET_GLOBAL",
	OpDefineGlobal: "OP_DEFINE_GLOBAL",
	OpGetUpvalue:   "OP_GET_UPVALUE",
	OpSetUpvalue:   "OP_SET_UPVALUE",
	OpEqual:        "OP_EQUAL",
	OpGreater:      "OP_GREATER",
	OpLess:         "OP_LESS",
	OpAdd:          "OP_ADD",
	OpSubtract:     "OP_SUBTRACT",
	OpMultiply:     "OP_MULTIPLY",
	OpDivide:       "OP_DIVIDE",
	OpModulo:       "OP_MODULO",
	OpNegate:       "OP_NEGATE",
	OpNot:          "OP_NOT",
	OpJump:         "OP_JUMP",
	OpJumpIfFalse:  "OP_JUMP_IF_FALSE",
	OpLoop:         "OP_LOOP",
	OpCall:         "OP_CALL",
	OpInvoke:       "OP_INVOKE",
	OpSuperInvoke:  "OP_SUPER_INVOKE",
	OpClosure:      "OP_CLOSURE",
	OpCloseUpvalue: "OP_CLOSE_UPVALUE",
	OpReturn:       "OP_RETURN",
	OpClass:        "OP_CLASS",
	OpInherit:      "OP_INHERIT",
	OpMethod:       "OP_METHOD",
	OpGetProperty:  "OP_GET_PROPERTY",
	OpSetProperty:  "OP_SET_PROPERTY",
	OpGetSuper:     "OP_GET_SUPER",
	OpArrayBuild:   "OP_ARRAY_BUILD",
	OpMapBuild:     "OP_MAP_BUILD",
	OpIndexGet:     "OP_INDEX_GET",
	OpIndexSet:     "OP_INDEX_SET",
	OpPrint:        "OP_PRINT",
}

func (op OpCode) String() string {
	if op < opCodeCount {
		if s := opNames[op]; s != "" {
			return s
		}
	}
	return fmt.Sprintf("OP_ILLEGAL(%d)", uint8(op))
}

// operandWidths gives the number of operand bytes following the opcode byte
// itself, not counting the opcode byte. Jumps use 2 (a big-endian uint16
// distance). Closure's encoding is variable (1 + 2 per upvalue) and is
// handled specially by the compiler and disassembler, so it is recorded as 1
// here (the function constant index) with the upvalue pairs read separately.
var operandWidths = [opCodeCount]int{
	OpConstant:     1,
	OpGetLocal:     1,
	OpSetLocal:     1,
	OpGetGlobal:    1,
	OpSetGlobal:    1,
	OpDefineGlobal: 1,
	OpGetUpvalue:   1,
	OpSetUpvalue:   1,
	OpJump:         2,
	OpJumpIfFalse:  2,
	OpLoop:         2,
	OpCall:         1,
	OpInvoke:       2,
	OpSuperInvoke:  2,
	OpClosure:      1,
	OpClass:        1,
	OpMethod:       1,
	OpGetProperty:  1,
	OpSetProperty:  1,
	OpGetSuper:     1,
	OpArrayBuild:   1,
	OpMapBuild:     1,
}

// OperandWidth returns the number of fixed operand bytes that follow op (not
// including any variable-length upvalue-capture suffix emitted after
// OpClosure, which the compiler tracks separately via the function's
// upvalue count).
func OperandWidth(op OpCode) int { return operandWidths[op] }
