package arm

import (
	"github.com/lunixbochs/ghostrace/ghost/sys/num"

	"github.com/lunixbochs/sysemu/go/kernel/linux"
	"github.com/lunixbochs/sysemu/go/models"
)

// EABI: number in r7, arguments in r0-r5
var LinuxRegs = []int{R0, R1, R2, R3, R4, R5}

func LinuxKernels() []interface{} {
	return []interface{}{linux.NewKernel("armv7l")}
}

func init() {
	Arch.RegisterOS(&models.OS{
		Name:     "linux",
		NumReg:   R7,
		ArgRegs:  LinuxRegs,
		RetReg:   R0,
		Syscalls: num.Linux_arm,
		Kernels:  LinuxKernels,
	})
}
