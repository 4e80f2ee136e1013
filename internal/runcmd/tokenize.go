package runcmd

import (
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/arzelion/wisp/lang/scanner"
	"github.com/arzelion/wisp/lang/token"
)

// tokenize scans each file in turn and prints its tokens, one per line.
func (c *Cmd) tokenize(stdio mainer.Stdio, files []string) mainer.ExitCode {
	if len(files) == 0 {
		fmt.Fprintln(stdio.Stderr, "tokenize: at least one file must be provided")
		return mainer.InvalidArgs
	}

	for _, path := range files {
		src, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(stdio.Stderr, "%s: %s\n", path, err)
			return mainer.Failure
		}

		sc := scanner.New(string(src))
		for {
			tok := sc.Next()
			fmt.Fprintf(stdio.Stdout, "%4d %-12s %q\n", tok.Line, tok.Kind, tok.Lexeme)
			if tok.Kind == token.EOF {
				break
			}
		}
	}
	return mainer.Success
}
