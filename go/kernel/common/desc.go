package common

import (
	"strings"
	"sync/atomic"

	hclog "github.com/hashicorp/go-hclog"

	"github.com/lunixbochs/sysemu/go/log"
)

type Flags uint32

const (
	// never write the executor's result back to the guest
	SuppressReturnValue Flags = 1 << iota
	// NeedWarning returns true at most once
	WarnOnce
)

func (f Flags) String() string {
	var names []string
	if f&SuppressReturnValue != 0 {
		names = append(names, "SuppressReturnValue")
	}
	if f&WarnOnce != 0 {
		names = append(names, "WarnOnce")
	}
	if len(names) == 0 {
		return "0"
	}
	return strings.Join(names, "|")
}

// Executor implements the semantics of one syscall.
// Errors the guest should see are encoded in the SyscallReturn.
type Executor interface {
	Execute(desc *SyscallDesc, num int, p Process, tc ThreadContext) SyscallReturn
}

type ExecutorFunc func(desc *SyscallDesc, num int, p Process, tc ThreadContext) SyscallReturn

func (f ExecutorFunc) Execute(desc *SyscallDesc, num int, p Process, tc ThreadContext) SyscallReturn {
	return f(desc, num, p, tc)
}

// SyscallDesc is the registered metadata and executor for one syscall number.
// Descriptors are shared by every thread using the table and must not be copied.
type SyscallDesc struct {
	Name     string
	Flags    Flags
	Executor Executor
	// receives warnings from the stock executors, set by Table.Register
	Log hclog.Logger

	warned atomic.Bool
}

func NewSyscallDesc(name string, exec Executor, flags Flags) *SyscallDesc {
	if exec == nil {
		panic("syscall " + name + " has no executor")
	}
	return &SyscallDesc{Name: name, Flags: flags, Executor: exec}
}

func (d *SyscallDesc) WarnOnce() bool {
	return d.Flags&WarnOnce != 0
}

// Warned reports whether a warning was ever requested for d.
func (d *SyscallDesc) Warned() bool {
	return d.warned.Load()
}

// NeedWarning records a warning request and reports whether it should be emitted.
// The warned bit is set on every call, even when the answer is false.
// Under concurrent callers a WarnOnce descriptor may warn more than once, never zero times.
func (d *SyscallDesc) NeedWarning() bool {
	prev := d.warned.Swap(true)
	return !(d.WarnOnce() && prev)
}

func (d *SyscallDesc) Warnf(log hclog.Logger, format string, args ...interface{}) {
	if !d.NeedWarning() || log == nil {
		return
	}
	log.Warn(sprintf(format, args...), "syscall", d.Name)
}

// Logger returns d.Log, or the process-wide logger for a descriptor outside any table.
func (d *SyscallDesc) Logger() hclog.Logger {
	if d.Log != nil {
		return d.Log
	}
	return log.L
}

func (d *SyscallDesc) String() string {
	return d.Name
}
