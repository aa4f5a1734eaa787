package posix

import (
	co "github.com/lunixbochs/sysemu/go/kernel/common"
)

// PosixKernel passes portable calls through to the host.
type PosixKernel struct {
	co.KernelBase
}

func NewKernel() *PosixKernel {
	return &PosixKernel{}
}

// pider is implemented by processes with their own guest pid.
type pider interface {
	Pid() int
}
