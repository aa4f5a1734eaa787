package common

import (
	"fmt"

	"golang.org/x/exp/constraints"
	"golang.org/x/sys/unix"
)

// max errno encodable in a return value, as on Linux
const maxErrno = 4095

// SyscallReturn is either a completed result or a request to retry the trap later.
// A retry carries no value and must never reach guest state.
type SyscallReturn struct {
	value int64
	retry bool
}

func Value[T constraints.Integer](v T) SyscallReturn {
	return SyscallReturn{value: int64(v)}
}

// Errno encodes e as -e.
func Errno(e unix.Errno) SyscallReturn {
	return SyscallReturn{value: -int64(e)}
}

func Retry() SyscallReturn {
	return SyscallReturn{retry: true}
}

func (r SyscallReturn) NeedsRetry() bool {
	return r.retry
}

func (r SyscallReturn) ReturnValue() int64 {
	if r.retry {
		panic("retrying syscall has no return value")
	}
	return r.value
}

func (r SyscallReturn) EncodedValue() uint64 {
	return uint64(r.ReturnValue())
}

func (r SyscallReturn) Successful() bool {
	return !r.retry && (r.value >= 0 || r.value < -maxErrno)
}

// ErrnoValue returns the encoded errno, or 0 for success and retry.
func (r SyscallReturn) ErrnoValue() unix.Errno {
	if r.retry || r.Successful() {
		return 0
	}
	return unix.Errno(-r.value)
}

func (r SyscallReturn) String() string {
	if r.retry {
		return "retry"
	}
	if !r.Successful() {
		return fmt.Sprintf("%d (%s)", r.value, r.ErrnoValue().Error())
	}
	return fmt.Sprintf("%#x", uint64(r.value))
}
