package intern_test

import (
	"testing"

	"github.com/arzelion/wisp/lang/intern"
	"github.com/arzelion/wisp/lang/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInternDeduplicatesByContent(t *testing.T) {
	p := intern.New()
	var newCalls int
	newObj := func(*value.ObjString) { newCalls++ }

	a := p.Intern("hello", newObj)
	b := p.Intern("hello", newObj)

	assert.Same(t, a, b)
	assert.Equal(t, 1, newCalls)
	assert.Equal(t, 1, p.Len())
}

func TestInternDistinguishesDistinctContent(t *testing.T) {
	p := intern.New()
	a := p.Intern("foo", nil)
	b := p.Intern("bar", nil)

	assert.NotSame(t, a, b)
	assert.Equal(t, 2, p.Len())
}

func TestSweepUnmarkedDropsOnlyUnmarkedEntries(t *testing.T) {
	p := intern.New()
	kept := p.Intern("kept", nil)
	garbage := p.Intern("garbage", nil)

	kept.SetMarked(true)
	garbage.SetMarked(false)

	p.SweepUnmarked()

	require.Equal(t, 1, p.Len())
	again := p.Intern("kept", nil)
	assert.Same(t, kept, again)
}
