package vm

import (
	"io"
	"os"
)

// Thread bundles the I/O a running program is attached to. A single VM
// drives one Thread (execution is strictly single-threaded), but keeping it
// a distinct type lets the CLI and tests redirect I/O without reaching into
// VM internals.
type Thread struct {
	Name string

	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
}

func (t *Thread) out() io.Writer {
	if t == nil || t.Stdout == nil {
		return os.Stdout
	}
	return t.Stdout
}

func (t *Thread) errOut() io.Writer {
	if t == nil || t.Stderr == nil {
		return os.Stderr
	}
	return t.Stderr
}

func (t *Thread) in() io.Reader {
	if t == nil || t.Stdin == nil {
		return os.Stdin
	}
	return t.Stdin
}
