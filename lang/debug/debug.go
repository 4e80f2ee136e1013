// Package debug renders a compiled Chunk and, instruction by instruction,
// a running VM's execution trace. DisassembleInstruction returns the
// offset of the next instruction, so callers can drive a loop over an
// entire chunk without duplicating per-opcode operand-width knowledge; the
// chunk-of-generics is threaded through via lang/chunk.Chunk[value.Value]
// and lang/value.Value's own String method stands in for a printValue.
package debug

import (
	"fmt"
	"io"

	"github.com/arzelion/wisp/lang/chunk"
	"github.com/arzelion/wisp/lang/value"
)

// DisassembleChunk writes a human-readable rendering of every instruction
// in c to w, labeled with name (typically the enclosing function's display
// name).
func DisassembleChunk(w io.Writer, c *chunk.Chunk[value.Value], name string) {
	fmt.Fprintf(w, "== %s ==\n", name)
	for offset := 0; offset < c.Len(); {
		offset = DisassembleInstruction(w, c, offset)
	}
}

// DisassembleInstruction writes one instruction at offset and returns the
// offset of the instruction that follows it (instructions are variable
// length, so the caller cannot just add a constant).
func DisassembleInstruction(w io.Writer, c *chunk.Chunk[value.Value], offset int) int {
	fmt.Fprintf(w, "%04d ", offset)
	if offset > 0 && c.LineFor(offset) == c.LineFor(offset-1) {
		fmt.Fprint(w, "   | ")
	} else {
		fmt.Fprintf(w, "%4d ", c.LineFor(offset))
	}

	op := chunk.OpCode(c.Code[offset])
	switch op {
	case chunk.OpGetLocal, chunk.OpSetLocal, chunk.OpGetUpvalue, chunk.OpSetUpvalue, chunk.OpCall:
		return byteInstruction(w, op, c, offset)
	case chunk.OpJump, chunk.OpJumpIfFalse:
		return jumpInstruction(w, op, 1, c, offset)
	case chunk.OpLoop:
		return jumpInstruction(w, op, -1, c, offset)
	case chunk.OpConstant, chunk.OpGetGlobal, chunk.OpSetGlobal, chunk.OpDefineGlobal,
		chunk.OpClass, chunk.OpMethod, chunk.OpGetProperty, chunk.OpSetProperty, chunk.OpGetSuper:
		return constantInstruction(w, op, c, offset)
	case chunk.OpInvoke, chunk.OpSuperInvoke:
		return invokeInstruction(w, op, c, offset)
	case chunk.OpClosure:
		return closureInstruction(w, c, offset)
	case chunk.OpArrayBuild, chunk.OpMapBuild:
		return byteInstruction(w, op, c, offset)
	default:
		return simpleInstruction(w, op, offset)
	}
}

func simpleInstruction(w io.Writer, op chunk.OpCode, offset int) int {
	fmt.Fprintf(w, "%s\n", op)
	return offset + 1
}

func byteInstruction(w io.Writer, op chunk.OpCode, c *chunk.Chunk[value.Value], offset int) int {
	slot := c.Code[offset+1]
	fmt.Fprintf(w, "%-16s %4d\n", op, slot)
	return offset + 2
}

func jumpInstruction(w io.Writer, op chunk.OpCode, sign int, c *chunk.Chunk[value.Value], offset int) int {
	dist := int(c.Code[offset+1])<<8 | int(c.Code[offset+2])
	fmt.Fprintf(w, "%-16s %4d -> %d\n", op, offset, offset+3+sign*dist)
	return offset + 3
}

func constantInstruction(w io.Writer, op chunk.OpCode, c *chunk.Chunk[value.Value], offset int) int {
	idx := c.Code[offset+1]
	fmt.Fprintf(w, "%-16s %4d '%s'\n", op, idx, c.Constants[idx].String())
	return offset + 2
}

func invokeInstruction(w io.Writer, op chunk.OpCode, c *chunk.Chunk[value.Value], offset int) int {
	idx := c.Code[offset+1]
	argc := c.Code[offset+2]
	fmt.Fprintf(w, "%-16s (%d args) %4d '%s'\n", op, argc, idx, c.Constants[idx].String())
	return offset + 3
}

func closureInstruction(w io.Writer, c *chunk.Chunk[value.Value], offset int) int {
	offset++
	idx := c.Code[offset]
	offset++
	fmt.Fprintf(w, "%-16s %4d '%s'\n", chunk.OpClosure, idx, c.Constants[idx].String())

	fn := c.Constants[idx].AsObj().(*value.ObjFunction)
	for i := 0; i < fn.UpvalueCount; i++ {
		isLocal := c.Code[offset]
		index := c.Code[offset+1]
		kind := "upvalue"
		if isLocal == 1 {
			kind = "local"
		}
		fmt.Fprintf(w, "%04d      |                     %s %d\n", offset, kind, index)
		offset += 2
	}
	return offset
}
