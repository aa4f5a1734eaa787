package posix

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	co "github.com/lunixbochs/sysemu/go/kernel/common"
)

// Errno encodes a host error as a guest return value. Guest and host share errno numbering.
func Errno(err error) co.SyscallReturn {
	if err == nil {
		return co.Value(0)
	}
	if e, ok := errors.Cause(err).(unix.Errno); ok {
		return co.Errno(e)
	}
	return co.Errno(unix.EIO)
}
