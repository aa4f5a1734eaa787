package linux

import (
	"golang.org/x/sys/unix"

	co "github.com/lunixbochs/sysemu/go/kernel/common"
	"github.com/lunixbochs/sysemu/go/models"
)

func DefaultUname(machine string) models.Uname {
	return models.Uname{
		Sysname:  "Linux",
		Nodename: "sysemu",
		Release:  "5.15.0-sysemu",
		Version:  "#1 SMP",
		Machine:  machine,
	}
}

func (k *LinuxKernel) Uname(buf co.Obuf) co.SyscallReturn {
	if err := buf.Pack(k.Host.Utsname()); err != nil {
		return co.Errno(unix.EFAULT)
	}
	return co.Value(0)
}
