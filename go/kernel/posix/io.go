package posix

import (
	"golang.org/x/sys/unix"

	co "github.com/lunixbochs/sysemu/go/kernel/common"
)

// maxRW bounds one host transfer. Larger counts complete short, as they do on Linux.
const maxRW = 1 << 20

func (k *PosixKernel) Read(fd co.Fd, buf co.Obuf, size co.Len) co.SyscallReturn {
	if buf.IsNull() && size > 0 {
		return co.Errno(unix.EFAULT)
	}
	tmp := make([]byte, min(uint64(size), maxRW))
	n, err := unix.Read(int(fd), tmp)
	if err != nil {
		return Errno(err)
	}
	if err := buf.Write(tmp[:n]); err != nil {
		return co.Errno(unix.EFAULT)
	}
	return co.Value(n)
}

func (k *PosixKernel) Write(fd co.Fd, buf co.Buf, size co.Len) co.SyscallReturn {
	if buf.IsNull() && size > 0 {
		return co.Errno(unix.EFAULT)
	}
	tmp, err := buf.Read(min(uint64(size), maxRW))
	if err != nil {
		return co.Errno(unix.EFAULT)
	}
	n, err := unix.Write(int(fd), tmp)
	if err != nil {
		return Errno(err)
	}
	return co.Value(n)
}

func (k *PosixKernel) Close(fd co.Fd) co.SyscallReturn {
	// stdio belongs to the emulator
	if fd >= 0 && fd <= 2 {
		return co.Value(0)
	}
	return Errno(unix.Close(int(fd)))
}

func (k *PosixKernel) Lseek(fd co.Fd, offset co.Off, whence int) co.SyscallReturn {
	off, err := unix.Seek(int(fd), int64(offset), whence)
	if err != nil {
		return Errno(err)
	}
	return co.Value(off)
}
