package posix

import (
	"os"

	co "github.com/lunixbochs/sysemu/go/kernel/common"
)

func (k *PosixKernel) Getpid(c *co.Call) int {
	if p, ok := c.Process.(pider); ok {
		return p.Pid()
	}
	return os.Getpid()
}

// Getppid reports the emulator itself as the parent of a guest with its own pid.
func (k *PosixKernel) Getppid(c *co.Call) int {
	if _, ok := c.Process.(pider); ok {
		return os.Getpid()
	}
	return os.Getppid()
}

func (k *PosixKernel) SchedYield() {}
