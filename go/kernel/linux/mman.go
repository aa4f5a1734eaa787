package linux

import (
	"golang.org/x/sys/unix"

	co "github.com/lunixbochs/sysemu/go/kernel/common"
)

const pageMask = 0xfff

// mapper is guest memory whose layout the guest may change.
type mapper interface {
	MemProt(addr, size uint64, prot int) error
	MemUnmap(addr, size uint64) error
}

func (k *LinuxKernel) Madvise(c *co.Call, addr co.Ptr, size co.Len, advice int) {
	c.Warnf("ignoring syscall madvise(%#x, %d, %d)", uint64(addr), uint64(size), advice)
}

func (k *LinuxKernel) Mprotect(c *co.Call, addr co.Ptr, size co.Len, prot int) co.SyscallReturn {
	m, ok := c.Process.Mem().(mapper)
	if !ok {
		c.Warnf("mprotect: guest memory is fixed")
		return co.Errno(unix.ENOSYS)
	}
	if addr&pageMask != 0 || prot&^(unix.PROT_READ|unix.PROT_WRITE|unix.PROT_EXEC) != 0 {
		return co.Errno(unix.EINVAL)
	}
	if size == 0 {
		return co.Value(0)
	}
	if err := m.MemProt(uint64(addr), uint64(size), prot); err != nil {
		return co.Errno(unix.ENOMEM)
	}
	return co.Value(0)
}

func (k *LinuxKernel) Munmap(c *co.Call, addr co.Ptr, size co.Len) co.SyscallReturn {
	m, ok := c.Process.Mem().(mapper)
	if !ok {
		c.Warnf("munmap: guest memory is fixed")
		return co.Errno(unix.ENOSYS)
	}
	if addr&pageMask != 0 || size == 0 {
		return co.Errno(unix.EINVAL)
	}
	if err := m.MemUnmap(uint64(addr), uint64(size)); err != nil {
		return co.Errno(unix.EINVAL)
	}
	return co.Value(0)
}
