package chunk_test

import (
	"testing"

	"github.com/arzelion/wisp/lang/chunk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddConstantLimit(t *testing.T) {
	c := &chunk.Chunk[int]{}
	for i := 0; i < chunk.MaxConstants; i++ {
		idx, err := c.AddConstant(i)
		require.NoError(t, err)
		assert.Equal(t, i, idx)
	}
	_, err := c.AddConstant(999)
	assert.EqualError(t, err, "Too many constants in one chunk.")
}

func TestJumpPatchRoundTrip(t *testing.T) {
	c := &chunk.Chunk[int]{}
	off := c.EmitJump(chunk.OpJump, 1)
	c.WriteOp(chunk.OpPop, 1)
	c.WriteOp(chunk.OpPop, 1)
	require.NoError(t, c.PatchJump(off))

	dist := int(c.Code[off])<<8 | int(c.Code[off+1])
	assert.Equal(t, 2, dist)
}

func TestLoopTooLarge(t *testing.T) {
	c := &chunk.Chunk[int]{}
	loopStart := c.Len()
	c.Code = make([]byte, chunk.MaxJumpDistance+10)
	c.Lines = make([]int, len(c.Code))
	err := c.EmitLoop(loopStart, 1)
	assert.EqualError(t, err, "Loop body too large.")
}

func TestLineTracking(t *testing.T) {
	c := &chunk.Chunk[int]{}
	c.WriteOp(chunk.OpNil, 3)
	c.WriteOp(chunk.OpTrue, 4)
	assert.Equal(t, 3, c.LineFor(0))
	assert.Equal(t, 4, c.LineFor(1))
	assert.Equal(t, -1, c.LineFor(99))
}
