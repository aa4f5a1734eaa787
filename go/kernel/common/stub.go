package common

import (
	"golang.org/x/sys/unix"
)

// Ignore completes with 0 and does nothing else.
var Ignore = ExecutorFunc(func(desc *SyscallDesc, num int, p Process, tc ThreadContext) SyscallReturn {
	return Value(0)
})

// IgnoreWarn completes with 0 after a gated warning.
var IgnoreWarn = ExecutorFunc(func(desc *SyscallDesc, num int, p Process, tc ThreadContext) SyscallReturn {
	desc.Warnf(desc.Logger(), "ignoring syscall %s(%#x, ...)", desc.Name, p.SyscallArg(tc, 0))
	return Value(0)
})

// Unimplemented completes with -ENOSYS after a gated warning.
var Unimplemented = ExecutorFunc(func(desc *SyscallDesc, num int, p Process, tc ThreadContext) SyscallReturn {
	desc.Warnf(desc.Logger(), "unimplemented syscall %s (%d)", desc.Name, num)
	return Errno(unix.ENOSYS)
})

// Fixed completes with v every time.
func Fixed(v int64) Executor {
	ret := Value(v)
	return ExecutorFunc(func(desc *SyscallDesc, num int, p Process, tc ThreadContext) SyscallReturn {
		return ret
	})
}
