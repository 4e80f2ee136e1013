package runcmd_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mna/mainer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arzelion/wisp/internal/runcmd"
)

func newCmd() *runcmd.Cmd {
	return &runcmd.Cmd{BuildVersion: "test", BuildDate: "test"}
}

func stdio(stdin string, stdout, stderr *bytes.Buffer) mainer.Stdio {
	return mainer.Stdio{
		Stdin:  strings.NewReader(stdin),
		Stdout: stdout,
		Stderr: stderr,
	}
}

func writeScript(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "script.wisp")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestHelpFlagPrintsUsageAndExitsSuccess(t *testing.T) {
	var out, errOut bytes.Buffer
	code := newCmd().Main([]string{"--help"}, stdio("", &out, &errOut))
	assert.Equal(t, mainer.Success, code)
	assert.Contains(t, out.String(), "usage:")
	assert.Empty(t, errOut.String())
}

func TestVersionFlagPrintsBuildVersion(t *testing.T) {
	var out, errOut bytes.Buffer
	code := newCmd().Main([]string{"--version"}, stdio("", &out, &errOut))
	assert.Equal(t, mainer.Success, code)
	assert.Contains(t, out.String(), "test")
}

func TestRunFileExitsOkOnSuccessfulScript(t *testing.T) {
	path := writeScript(t, `print 1 + 2;`)
	var out, errOut bytes.Buffer
	code := newCmd().Main([]string{path}, stdio("", &out, &errOut))
	assert.Equal(t, mainer.ExitCode(0), code)
	assert.Equal(t, "3\n", out.String())
}

func TestRunFileExitsCompileErrorOnBadSyntax(t *testing.T) {
	path := writeScript(t, `var = 1;`)
	var out, errOut bytes.Buffer
	code := newCmd().Main([]string{path}, stdio("", &out, &errOut))
	assert.Equal(t, mainer.ExitCode(65), code)
}

func TestRunFileExitsRuntimeErrorOnRuntimeFault(t *testing.T) {
	path := writeScript(t, `print nope;`)
	var out, errOut bytes.Buffer
	code := newCmd().Main([]string{path}, stdio("", &out, &errOut))
	assert.Equal(t, mainer.ExitCode(70), code)
	assert.Contains(t, errOut.String(), "Undefined variable")
}

func TestRunFileMissingScriptIsRuntimeError(t *testing.T) {
	var out, errOut bytes.Buffer
	code := newCmd().Main([]string{filepath.Join(t.TempDir(), "missing.wisp")}, stdio("", &out, &errOut))
	assert.Equal(t, mainer.ExitCode(70), code)
	assert.NotEmpty(t, errOut.String())
}

func TestTokenizeSubcommandPrintsOneLinePerToken(t *testing.T) {
	path := writeScript(t, `print 1;`)
	var out, errOut bytes.Buffer
	code := newCmd().Main([]string{"tokenize", path}, stdio("", &out, &errOut))
	assert.Equal(t, mainer.Success, code)
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	assert.GreaterOrEqual(t, len(lines), 4)
	assert.Contains(t, out.String(), "end of file")
}

func TestTokenizeSubcommandRequiresAFile(t *testing.T) {
	var out, errOut bytes.Buffer
	code := newCmd().Main([]string{"tokenize"}, stdio("", &out, &errOut))
	assert.Equal(t, mainer.InvalidArgs, code)
	assert.Contains(t, errOut.String(), "at least one file")
}

func TestDisassembleSubcommandPrintsBytecode(t *testing.T) {
	path := writeScript(t, `print 1 + 2;`)
	var out, errOut bytes.Buffer
	code := newCmd().Main([]string{"disassemble", path}, stdio("", &out, &errOut))
	assert.Equal(t, mainer.Success, code)
	assert.Contains(t, out.String(), "== script ==")
	assert.Contains(t, out.String(), "OP_RETURN")
}

func TestDisassembleSubcommandRecursesIntoNestedFunctions(t *testing.T) {
	path := writeScript(t, `fun outer() { fun inner() { return 1; } return inner; }`)
	var out, errOut bytes.Buffer
	code := newCmd().Main([]string{"disassemble", path}, stdio("", &out, &errOut))
	assert.Equal(t, mainer.Success, code)
	assert.Contains(t, out.String(), "outer")
	assert.Contains(t, out.String(), "inner")
}

func TestDisassembleSubcommandExitsCompileErrorOnBadSyntax(t *testing.T) {
	path := writeScript(t, `var = 1;`)
	var out, errOut bytes.Buffer
	code := newCmd().Main([]string{"disassemble", path}, stdio("", &out, &errOut))
	assert.Equal(t, mainer.ExitCode(65), code)
}

func TestReplEchoesPromptAndEvaluatesEachLine(t *testing.T) {
	var out, errOut bytes.Buffer
	code := newCmd().Main(nil, stdio("print 1+1;\n", &out, &errOut))
	assert.Equal(t, mainer.Success, code)
	assert.Contains(t, out.String(), "> ")
	assert.Contains(t, out.String(), "2\n")
}

func TestReplPersistsGlobalsAcrossLines(t *testing.T) {
	var out, errOut bytes.Buffer
	code := newCmd().Main(nil, stdio("var x = 10;\nprint x + 1;\n", &out, &errOut))
	assert.Equal(t, mainer.Success, code)
	assert.Contains(t, out.String(), "11\n")
}

func TestTraceFlagEnablesInstructionTrace(t *testing.T) {
	path := writeScript(t, `print 1;`)
	var out, errOut bytes.Buffer
	code := newCmd().Main([]string{"--trace", path}, stdio("", &out, &errOut))
	assert.Equal(t, mainer.ExitCode(0), code)
	assert.Contains(t, errOut.String(), "OP_")
}

func TestEnvStressGCOverridesDefaultWhenFlagNotPassed(t *testing.T) {
	t.Setenv("WISP_GC_STRESS", "true")
	path := writeScript(t, `var a = [1,2,3]; print len(a);`)
	var out, errOut bytes.Buffer
	code := newCmd().Main([]string{path}, stdio("", &out, &errOut))
	assert.Equal(t, mainer.ExitCode(0), code, errOut.String())
	assert.Equal(t, "3\n", out.String())
}

func TestEnvTraceEnablesInstructionTraceWithoutTheFlag(t *testing.T) {
	t.Setenv("WISP_TRACE", "true")
	path := writeScript(t, `print 1;`)
	var out, errOut bytes.Buffer
	code := newCmd().Main([]string{path}, stdio("", &out, &errOut))
	assert.Equal(t, mainer.ExitCode(0), code)
	assert.Contains(t, errOut.String(), "OP_")
}

func TestInvalidEnvConfigReturnsInvalidArgs(t *testing.T) {
	t.Setenv("WISP_HEAP_MB", "not-a-number")
	path := writeScript(t, `print 1;`)
	var out, errOut bytes.Buffer
	code := newCmd().Main([]string{path}, stdio("", &out, &errOut))
	assert.Equal(t, mainer.InvalidArgs, code)
	assert.Contains(t, errOut.String(), "invalid environment configuration")
}
