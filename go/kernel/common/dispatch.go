package common

import (
	"encoding/binary"

	hclog "github.com/hashicorp/go-hclog"

	"github.com/lunixbochs/sysemu/go/models/cpu"
)

// ThreadContext is the guest thread whose trap is being serviced.
type ThreadContext interface {
	cpu.RegFile
	Tid() int
}

// Process owns the calling convention and memory of the guest.
type Process interface {
	// SyscallArgs extracts all argument slots for a dispatch, slot 0 first.
	SyscallArgs(tc ThreadContext) SyscallArgs
	// SyscallArg reads one argument slot by index, for executors.
	SyscallArg(tc ThreadContext, i int) uint64
	// SetSyscallReturn writes the ABI return location.
	SetSyscallReturn(tc ThreadContext, val uint64)

	Mem() cpu.Memory
	ByteOrder() binary.ByteOrder
	Bits() uint
}

// TrapState is the state of one outstanding syscall trap.
// The caller holds TrapPending between attempts and re-presents the trap later.
type TrapState int

const (
	TrapComplete TrapState = iota
	TrapPending
)

func (s TrapState) String() string {
	if s == TrapPending {
		return "pending"
	}
	return "complete"
}

// argTracer is implemented by executors that can render typed arguments.
type argTracer interface {
	TraceArgs(p Process, args SyscallArgs) string
}

// Dispatch runs one attempt of syscall num for thread tc.
// It reads the arguments, calls the executor once and, unless the result is a retry
// or d has SuppressReturnValue, writes the encoded result back.
// Dispatch keeps no state between attempts.
func (d *SyscallDesc) Dispatch(log hclog.Logger, num int, p Process, tc ThreadContext) TrapState {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	args := p.SyscallArgs(tc)
	if log.IsTrace() {
		kv := []interface{}{"num", num, "tid", tc.Tid(), "args", args.String()}
		if t, ok := d.Executor.(argTracer); ok {
			kv = append(kv, "call", t.TraceArgs(p, args))
		}
		log.Trace(d.Name+" called", kv...)
	}

	ret := d.Executor.Execute(d, num, p, tc)

	if ret.NeedsRetry() {
		log.Trace(d.Name+" needs retry", "tid", tc.Tid())
		return TrapPending
	}
	log.Trace(d.Name+" returns", "tid", tc.Tid(), "ret", ret.ReturnValue())
	if d.Flags&SuppressReturnValue == 0 {
		p.SetSyscallReturn(tc, ret.EncodedValue())
	}
	return TrapComplete
}
