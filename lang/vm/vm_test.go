package vm_test

import (
	"bytes"
	"testing"

	"github.com/arzelion/wisp/lang/vm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, source string) (stdout, stderr string, result vm.InterpretResult) {
	t.Helper()
	var out, errOut bytes.Buffer
	machine := vm.New(&vm.Thread{Stdout: &out, Stderr: &errOut})
	res, _ := machine.Interpret(source)
	return out.String(), errOut.String(), res
}

func TestArithmeticPrecedence(t *testing.T) {
	out, _, res := run(t, `print 1+2*3;`)
	require.Equal(t, vm.Ok, res)
	assert.Equal(t, "7\n", out)
}

func TestStringConcatenationInterns(t *testing.T) {
	out, _, res := run(t, `var a="foo"; var b="bar"; print a+b;`)
	require.Equal(t, vm.Ok, res)
	assert.Equal(t, "foobar\n", out)
}

func TestClosureCapturesUpvalue(t *testing.T) {
	out, _, res := run(t, `fun make(x) { fun inner() { return x; } return inner; } var f = make(42); print f();`)
	require.Equal(t, vm.Ok, res)
	assert.Equal(t, "42\n", out)
}

func TestClassInheritance(t *testing.T) {
	out, _, res := run(t, `class A { greet() { return "hi"; } } class B < A {} print B().greet();`)
	require.Equal(t, vm.Ok, res)
	assert.Equal(t, "hi\n", out)
}

func TestInstanceFieldsAndInit(t *testing.T) {
	out, _, res := run(t, `class Counter { init(n) { this.n = n; } bump() { this.n = this.n + 1; return this.n; } } var c = Counter(10); print c.bump(); print c.bump();`)
	require.Equal(t, vm.Ok, res)
	assert.Equal(t, "11\n12\n", out)
}

func TestArrayIndexing(t *testing.T) {
	out, _, res := run(t, `var a = [10,20,30]; a[1] = 99; print a[0]+a[1]+a[2];`)
	require.Equal(t, vm.Ok, res)
	assert.Equal(t, "139\n", out)
}

func TestMapNilDeletesKey(t *testing.T) {
	out, _, res := run(t, `var m = {"k": 1}; m["k"] = nil; print m["k"];`)
	require.Equal(t, vm.Ok, res)
	assert.Equal(t, "nil\n", out)
}

func TestRuntimeTypeErrorOnAdd(t *testing.T) {
	_, errOut, res := run(t, `print "a" + 1;`)
	assert.Equal(t, vm.RuntimeError, res)
	assert.Contains(t, errOut, "Operands must be two numbers or two strings.")
}

func TestCallingNonCallableErrors(t *testing.T) {
	_, errOut, res := run(t, `var x = 1; x();`)
	assert.Equal(t, vm.RuntimeError, res)
	assert.Contains(t, errOut, "Can only call functions and classes.")
}

func TestArityMismatchErrors(t *testing.T) {
	_, errOut, res := run(t, `fun f(a,b) { return a+b; } f(1);`)
	assert.Equal(t, vm.RuntimeError, res)
	assert.Contains(t, errOut, "Expected 2 arguments but got 1.")
}

func TestArrayOutOfBoundsErrors(t *testing.T) {
	_, errOut, res := run(t, `var a = [1,2]; print a[5];`)
	assert.Equal(t, vm.RuntimeError, res)
	assert.NotEmpty(t, errOut)
}

func TestUndefinedGlobalErrors(t *testing.T) {
	_, errOut, res := run(t, `print nope;`)
	assert.Equal(t, vm.RuntimeError, res)
	assert.Contains(t, errOut, "Undefined variable 'nope'.")
}

func TestAssigningUndefinedGlobalErrors(t *testing.T) {
	_, errOut, res := run(t, `nope = 1;`)
	assert.Equal(t, vm.RuntimeError, res)
	assert.Contains(t, errOut, "Undefined variable 'nope'.")
}

func TestAssignmentExpressionEvaluatesToAssignedValue(t *testing.T) {
	out, _, res := run(t, `var a; print a = 5;`)
	require.Equal(t, vm.Ok, res)
	assert.Equal(t, "5\n", out)
}

func TestPushPopLenInvariant(t *testing.T) {
	out, _, res := run(t, `var a = [1,2,3]; len(a); print push(a, 4); print len(a); print pop(a); print len(a);`)
	require.Equal(t, vm.Ok, res)
	assert.Equal(t, "4\n4\n4\n3\n", out)
}

func TestAndOrShortCircuit(t *testing.T) {
	out, _, res := run(t, `fun boom() { print "boom"; return true; } print false and boom(); print true or boom();`)
	require.Equal(t, vm.Ok, res)
	assert.Equal(t, "false\ntrue\n", out)
}

func TestForLoopAccumulates(t *testing.T) {
	out, _, res := run(t, `var sum = 0; for (var i = 0; i < 5; i = i + 1) { sum = sum + i; } print sum;`)
	require.Equal(t, vm.Ok, res)
	assert.Equal(t, "10\n", out)
}

func TestSuperInvoke(t *testing.T) {
	out, _, res := run(t, `class A { greet() { return "A"; } } class B < A { greet() { return super.greet() + "B"; } } print B().greet();`)
	require.Equal(t, vm.Ok, res)
	assert.Equal(t, "AB\n", out)
}

func TestStressGCKeepsProgramCorrect(t *testing.T) {
	var out, errOut bytes.Buffer
	machine := vm.New(&vm.Thread{Stdout: &out, Stderr: &errOut}, vm.WithStressGC(true))
	res, _ := machine.Interpret(`
		class Node { init(v) { this.v = v; } }
		var a = Node("a");
		var b = Node("b");
		fun makeClosure(x) { fun inner() { return x; } return inner; }
		var f = makeClosure(a.v + b.v);
		print f();
	`)
	require.Equal(t, vm.Ok, res, errOut.String())
	assert.Equal(t, "ab\n", out.String())
}

func TestStressGCPreservesCompileTimeStringInterningAcrossLiterals(t *testing.T) {
	var out, errOut bytes.Buffer
	machine := vm.New(&vm.Thread{Stdout: &out, Stderr: &errOut}, vm.WithStressGC(true))
	res, _ := machine.Interpret(`
		var a = "duplicate";
		fun noop() { return 1; }
		var b = "duplicate";
		print a == b;
	`)
	require.Equal(t, vm.Ok, res, errOut.String())
	assert.Equal(t, "true\n", out.String())
}

func TestStressGCPreservesRuntimeConcatenationInterning(t *testing.T) {
	var out, errOut bytes.Buffer
	machine := vm.New(&vm.Thread{Stdout: &out, Stderr: &errOut}, vm.WithStressGC(true))
	res, _ := machine.Interpret(`
		var a = "foo" + "bar";
		var throwaway = [1, 2, 3];
		var b = "foo" + "bar";
		print a == b;
	`)
	require.Equal(t, vm.Ok, res, errOut.String())
	assert.Equal(t, "true\n", out.String())
}

func TestPrintfConcatenatesWithoutSeparators(t *testing.T) {
	out, _, res := run(t, `printf("a", 1, true, nil);`)
	require.Equal(t, vm.Ok, res)
	assert.Equal(t, "a1truenil", out)
}

func TestTypeofReportsEachKind(t *testing.T) {
	out, _, res := run(t, `print typeof(1); print typeof("s"); print typeof(nil); print typeof(true); print typeof([1]);`)
	require.Equal(t, vm.Ok, res)
	assert.Equal(t, "number\nstring\nnil\nbool\narray\n", out)
}

func TestFloorTruncatesTowardNegativeInfinity(t *testing.T) {
	out, _, res := run(t, `print floor(1.9); print floor(-1.1);`)
	require.Equal(t, vm.Ok, res)
	assert.Equal(t, "1\n-2\n", out)
}

func TestREPLPersistsGlobalsAcrossInterpretCalls(t *testing.T) {
	var out, errOut bytes.Buffer
	machine := vm.New(&vm.Thread{Stdout: &out, Stderr: &errOut})
	res, _ := machine.Interpret(`var x = 1;`)
	require.Equal(t, vm.Ok, res)
	res, _ = machine.Interpret(`print x + 1;`)
	require.Equal(t, vm.Ok, res)
	assert.Equal(t, "2\n", out.String())
}
