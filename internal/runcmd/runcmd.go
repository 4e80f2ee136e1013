// Package runcmd implements wisp's command-line entry point: flag and
// environment parsing, the REPL, file execution, and the tokenize/
// disassemble debugging subcommands.
package runcmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/arzelion/wisp/lang/vm"
)

const binName = "wisp"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] [<script>]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] [<script>]
       %[1]s tokenize <file>
       %[1]s disassemble <file>
       %[1]s -h|--help
       %[1]s -v|--version

Compiler and virtual machine for the %[1]s scripting language. With no
<script>, starts an interactive REPL reading from stdin.

The <command> forms are:
       tokenize <file>           Scan <file> and print its tokens.
       disassemble <file>        Compile <file> and print its bytecode.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
       --trace                   Trace every instruction executed
                                 (env: WISP_TRACE).
       --stress-gc               Collect before every allocation
                                 (env: WISP_GC_STRESS).
       --heap-mb N               Initial GC threshold in MiB
                                 (env: WISP_HEAP_MB).
`, binName)
)

// Cmd holds the parsed command line. Its exported fields are populated by
// mainer.Parser via their flag tags; SetArgs/SetFlags record the remaining
// positional arguments and which flags were explicitly passed, which
// config.go's resolve needs to apply flag-over-environment precedence.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	Trace    bool `flag:"trace"`
	StressGC bool `flag:"stress-gc"`
	HeapMB   int  `flag:"heap-mb"`

	args  []string
	flags map[string]bool
}

func (c *Cmd) SetArgs(args []string)          { c.args = args }
func (c *Cmd) SetFlags(flags map[string]bool) { c.flags = flags }

func (c *Cmd) Validate() error { return nil }

// Main parses args and dispatches to the REPL, a script file, or a
// debugging subcommand, returning the process exit code. Script execution
// exits with the exact InterpretResult code (0/65/70) rather than mainer's
// generic Success/Failure, so a shell script driving wisp can distinguish a
// compile error from a runtime error.
func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	envCfg, err := loadEnvConfig()
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid environment configuration: %s\n", err)
		return mainer.InvalidArgs
	}

	p := mainer.Parser{EnvVars: false, EnvPrefix: binName + "_"}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success
	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	cfg := resolve(c, envCfg)
	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)

	switch {
	case len(c.args) == 0:
		return c.repl(ctx, stdio, cfg)
	case c.args[0] == "tokenize":
		return c.tokenize(stdio, c.args[1:])
	case c.args[0] == "disassemble":
		return c.disassemble(stdio, c.args[1:])
	default:
		return c.runFile(stdio, c.args[0], cfg)
	}
}

func (c *Cmd) runFile(stdio mainer.Stdio, path string, cfg resolvedConfig) mainer.ExitCode {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s: %s\n", path, err)
		return mainer.ExitCode(vm.RuntimeError)
	}

	machine := newVM(stdio, cfg)
	result, _ := machine.Interpret(string(src))
	return mainer.ExitCode(result)
}
