package x86

import (
	"github.com/lunixbochs/ghostrace/ghost/sys/num"

	"github.com/lunixbochs/sysemu/go/kernel/linux"
	"github.com/lunixbochs/sysemu/go/models"
)

var LinuxRegs = []int{EBX, ECX, EDX, ESI, EDI, EBP}

func LinuxKernels() []interface{} {
	return []interface{}{linux.NewKernel("i686")}
}

func init() {
	Arch.RegisterOS(&models.OS{
		Name:     "linux",
		NumReg:   EAX,
		ArgRegs:  LinuxRegs,
		RetReg:   EAX,
		Syscalls: num.Linux_x86,
		Kernels:  LinuxKernels,
	})
}
