package sysemu

import (
	"github.com/pkg/errors"

	"github.com/lunixbochs/sysemu/go/kernel/common"
)

// Trap services the syscall described by t's registers. A TrapPending result
// means the same trap must be presented again later with the registers untouched.
func (p *Process) Trap(t *Thread) common.TrapState {
	num, err := t.RegRead(p.OS.NumReg)
	if err != nil {
		panic(errors.Wrap(err, "reading syscall number"))
	}
	state := p.Table.Dispatch(int(num), p, t)
	t.pending = state == common.TrapPending
	return state
}

// SetSyscall loads a syscall number and arguments into t, as the guest would before trapping.
func (p *Process) SetSyscall(t *Thread, num int, args ...uint64) error {
	if t.pending {
		return errors.Errorf("thread %d has a pending trap", t.tid)
	}
	if len(args) > len(p.OS.ArgRegs) {
		return errors.Errorf("%d arguments, convention has %d", len(args), len(p.OS.ArgRegs))
	}
	if err := t.RegWrite(p.OS.NumReg, uint64(num)); err != nil {
		return err
	}
	for i, reg := range p.OS.ArgRegs {
		var val uint64
		if i < len(args) {
			val = args[i]
		}
		if err := t.RegWrite(reg, val); err != nil {
			return err
		}
	}
	return nil
}
