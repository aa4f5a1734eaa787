package sysemu

import (
	"github.com/lunixbochs/sysemu/go/kernel/common"
	"github.com/lunixbochs/sysemu/go/models/cpu"
)

type Thread struct {
	*cpu.Regs

	tid    int
	cursor common.ArgCursor

	// set while the last trap is waiting to be presented again
	pending  bool
	exited   bool
	exitCode int
}

func (t *Thread) Tid() int {
	return t.tid
}

func (t *Thread) Pending() bool {
	return t.pending
}

func (t *Thread) Exited() bool {
	return t.exited
}

var _ common.ThreadContext = (*Thread)(nil)
