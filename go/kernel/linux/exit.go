package linux

import (
	co "github.com/lunixbochs/sysemu/go/kernel/common"
)

func (k *LinuxKernel) ExitGroup(c *co.Call, code int) {
	k.futex.drop(c.Thread.Tid())
	if e, ok := c.Process.(exiter); ok {
		e.Exit(code)
	}
}

// Exit ends the calling thread, clearing and waking its clear_child_tid word.
func (k *LinuxKernel) Exit(c *co.Call, code int) {
	tid := c.Thread.Tid()
	k.futex.exitThread(c.Process, tid)
	if e, ok := c.Process.(threadExiter); ok {
		e.ExitThread(tid, code)
	} else if e, ok := c.Process.(exiter); ok {
		e.Exit(code)
	}
}
