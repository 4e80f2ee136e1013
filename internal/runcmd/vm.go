package runcmd

import (
	"github.com/mna/mainer"

	"github.com/arzelion/wisp/lang/gc"
	"github.com/arzelion/wisp/lang/vm"
)

func newVM(stdio mainer.Stdio, cfg resolvedConfig) *vm.VM {
	th := &vm.Thread{Stdout: stdio.Stdout, Stderr: stdio.Stderr, Stdin: stdio.Stdin}

	var opts []vm.Option
	if cfg.HeapMB > 0 {
		opts = append(opts, vm.WithHeap(gc.NewHeapWithThreshold(cfg.HeapMB<<20)))
	}
	opts = append(opts, vm.WithStressGC(cfg.GCStress), vm.WithTrace(cfg.Trace))

	return vm.New(th, opts...)
}
