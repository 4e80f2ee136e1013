package compiler_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/arzelion/wisp/lang/chunk"
	"github.com/arzelion/wisp/lang/compiler"
	"github.com/arzelion/wisp/lang/gc"
	"github.com/arzelion/wisp/lang/intern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileSimpleExpression(t *testing.T) {
	fn, err := compiler.Compile(`print 1+2*3;`, gc.NewHeap(), intern.New())
	require.NoError(t, err)
	require.NotNil(t, fn)
	assert.Equal(t, 0, fn.Arity)
	assert.NotZero(t, len(fn.Chunk.Code))
}

func TestCompileErrorReturnsCompileErrorWithMessage(t *testing.T) {
	_, err := compiler.Compile(`var = 1;`, gc.NewHeap(), intern.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Expect")
}

func TestPanicModeSuppressesFollowOnErrors(t *testing.T) {
	// Three consecutive bogus "=" tokens on one bad statement should
	// produce exactly one reported error: panic_mode, once set by the
	// first, suppresses the rest until synchronize() finds the semicolon.
	_, err := compiler.Compile(`var = = = ; print 1;`, gc.NewHeap(), intern.New())
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "more errors")
}

func TestTooManyLocalsErrors(t *testing.T) {
	var b strings.Builder
	b.WriteString("fun f() {")
	for i := 0; i < 257; i++ {
		b.WriteString("var v")
		b.WriteString(strconv.Itoa(i))
		b.WriteString(";")
	}
	b.WriteString("}")
	_, err := compiler.Compile(b.String(), gc.NewHeap(), intern.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Too many local variables in function.")
}

func TestRedeclarationInSameScopeErrors(t *testing.T) {
	_, err := compiler.Compile(`{ var a = 1; var a = 2; }`, gc.NewHeap(), intern.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Already a variable with this name in this scope.")
}

func TestReadLocalInOwnInitializerErrors(t *testing.T) {
	_, err := compiler.Compile(`{ var a = a; }`, gc.NewHeap(), intern.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can't read local variable in its own initializer.")
}

func TestUpvalueCaptureCompiles(t *testing.T) {
	fn, err := compiler.Compile(`fun make(x) { fun inner() { return x; } return inner; }`, gc.NewHeap(), intern.New())
	require.NoError(t, err)
	require.NotNil(t, fn)

	var foundClosure bool
	for _, op := range fn.Chunk.Code {
		if chunk.OpCode(op) == chunk.OpClosure {
			foundClosure = true
			break
		}
	}
	assert.True(t, foundClosure, "expected a Closure opcode in the top-level chunk")
}

func TestInvalidAssignmentTargetErrors(t *testing.T) {
	_, err := compiler.Compile(`1 + 2 = 3;`, gc.NewHeap(), intern.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid assignment target.")
}

func TestClassWithSelfInheritanceErrors(t *testing.T) {
	_, err := compiler.Compile(`class A < A {}`, gc.NewHeap(), intern.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "A class can't inherit from itself.")
}

