package linux

import (
	co "github.com/lunixbochs/sysemu/go/kernel/common"
)

func (k *LinuxKernel) SetTidAddress(c *co.Call, tidptr co.Ptr) int {
	tid := c.Thread.Tid()
	k.futex.setClearTid(tid, uint64(tidptr))
	return tid
}

func (k *LinuxKernel) Gettid(c *co.Call) int {
	return c.Thread.Tid()
}

func (k *LinuxKernel) SetRobustList(c *co.Call, head co.Ptr, size co.Len) {
	c.Warnf("ignoring syscall set_robust_list(%#x, %d)", uint64(head), uint64(size))
}
