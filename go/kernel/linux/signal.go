package linux

import (
	co "github.com/lunixbochs/sysemu/go/kernel/common"
)

// Signals are never delivered, so handlers and masks are accepted and dropped.

func (k *LinuxKernel) RtSigaction(c *co.Call, sig int, act, oact co.Ptr) {
	c.Warnf("ignoring syscall rt_sigaction(%d, %#x, %#x)", sig, uint64(act), uint64(oact))
}

func (k *LinuxKernel) RtSigprocmask(c *co.Call, how int, set, oset co.Ptr) {
	c.Warnf("ignoring syscall rt_sigprocmask(%d, %#x, %#x)", how, uint64(set), uint64(oset))
}
