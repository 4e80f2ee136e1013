package runcmd

import (
	"bufio"
	"context"
	"fmt"

	"github.com/mna/mainer"
)

// repl reads one line at a time from stdin and feeds each to a single,
// long-lived VM, so top-level variables and functions persist across lines
// — the conventional REPL shape for a script language with no module
// system. Exits cleanly on EOF or Ctrl+C (ctx canceled by
// mainer.CancelOnSignal).
func (c *Cmd) repl(ctx context.Context, stdio mainer.Stdio, cfg resolvedConfig) mainer.ExitCode {
	machine := newVM(stdio, cfg)
	in := bufio.NewScanner(stdio.Stdin)

	for {
		select {
		case <-ctx.Done():
			return mainer.Success
		default:
		}

		fmt.Fprint(stdio.Stdout, "> ")
		if !in.Scan() {
			return mainer.Success
		}
		line := in.Text()
		if line == "" {
			continue
		}
		machine.Interpret(line)
	}
}
