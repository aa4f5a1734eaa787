package linux

import (
	co "github.com/lunixbochs/sysemu/go/kernel/common"
	"github.com/lunixbochs/sysemu/go/kernel/posix"
	"github.com/lunixbochs/sysemu/go/models"
)

type LinuxKernel struct {
	posix.PosixKernel

	// reported by uname
	Host models.Uname

	futex *futexTable
}

func NewKernel(machine string) *LinuxKernel {
	return &LinuxKernel{
		Host:  DefaultUname(machine),
		futex: newFutexTable(),
	}
}

func (k *LinuxKernel) SyscallFlags() map[string]co.Flags {
	return map[string]co.Flags{
		"exit":            co.SuppressReturnValue,
		"exit_group":      co.SuppressReturnValue,
		"set_robust_list": co.WarnOnce,
		"rt_sigaction":    co.WarnOnce,
		"rt_sigprocmask":  co.WarnOnce,
		"madvise":         co.WarnOnce,
	}
}

// exiter is implemented by processes that can end the whole guest.
type exiter interface {
	Exit(code int)
}

// threadExiter is implemented by processes that track threads separately.
type threadExiter interface {
	ExitThread(tid, code int)
}
