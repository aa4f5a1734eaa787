package common

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/lunixbochs/sysemu/go/models/cpu"
)

// Every dispatch extracts this many arguments, whatever the syscall's real arity.
const MaxSyscallArgs = 6

type SyscallArgs [MaxSyscallArgs]uint64

func (a SyscallArgs) String() string {
	s := make([]string, len(a))
	for i, v := range a {
		s[i] = fmt.Sprintf("%#x", v)
	}
	return strings.Join(s, ", ")
}

// ArgCursor walks the argument registers of one thread in slot order.
// Each Next reads the current slot and advances.
type ArgCursor struct {
	Regs  []int
	index int
}

func (c *ArgCursor) Reset() {
	c.index = 0
}

func (c *ArgCursor) Index() int {
	return c.index
}

// Next reads the next argument slot. Running past the convention is a simulator bug and panics.
func (c *ArgCursor) Next(r cpu.RegFile) uint64 {
	if c.index >= len(c.Regs) {
		panic(errors.Errorf("syscall argument %d out of range (%d registers)", c.index, len(c.Regs)))
	}
	val, err := r.RegRead(c.Regs[c.index])
	if err != nil {
		panic(errors.Wrapf(err, "reading syscall argument %d", c.index))
	}
	c.index++
	return val
}

// RegArgs reads all argument slots at once without touching any cursor.
func RegArgs(r cpu.RegFile, regs []int) (SyscallArgs, error) {
	var args SyscallArgs
	if len(regs) != MaxSyscallArgs {
		return args, errors.Errorf("need %d argument registers, got %d", MaxSyscallArgs, len(regs))
	}
	for i, reg := range regs {
		val, err := r.RegRead(reg)
		if err != nil {
			return args, errors.Wrapf(err, "reading syscall argument %d", i)
		}
		args[i] = val
	}
	return args, nil
}
