package posix

import "os"

func (k *PosixKernel) Getegid() int {
	return os.Getegid()
}

func (k *PosixKernel) Getgid() int {
	return os.Getgid()
}

func (k *PosixKernel) Geteuid() int {
	return os.Geteuid()
}

func (k *PosixKernel) Getuid() int {
	return os.Getuid()
}
