package arm64

import (
	"github.com/lunixbochs/sysemu/go/kernel/linux"
	"github.com/lunixbochs/sysemu/go/models"
)

const (
	X0 = iota
	X1
	X2
	X3
	X4
	X5
	X6
	X7
	X8
)

var LinuxRegs = []int{X0, X1, X2, X3, X4, X5}

// asm-generic numbering
var linuxSyscalls = map[int]string{
	17:  "getcwd",
	23:  "dup",
	25:  "fcntl",
	29:  "ioctl",
	56:  "openat",
	57:  "close",
	62:  "lseek",
	63:  "read",
	64:  "write",
	65:  "readv",
	66:  "writev",
	78:  "readlinkat",
	79:  "newfstatat",
	80:  "fstat",
	93:  "exit",
	94:  "exit_group",
	96:  "set_tid_address",
	98:  "futex",
	99:  "set_robust_list",
	101: "nanosleep",
	113: "clock_gettime",
	124: "sched_yield",
	129: "kill",
	134: "rt_sigaction",
	135: "rt_sigprocmask",
	160: "uname",
	172: "getpid",
	173: "getppid",
	174: "getuid",
	175: "geteuid",
	176: "getgid",
	177: "getegid",
	178: "gettid",
	214: "brk",
	215: "munmap",
	220: "clone",
	221: "execve",
	222: "mmap",
	226: "mprotect",
	233: "madvise",
	261: "prlimit64",
	278: "getrandom",
}

func LinuxKernels() []interface{} {
	return []interface{}{linux.NewKernel("aarch64")}
}

func init() {
	Arch.RegisterOS(&models.OS{
		Name:     "linux",
		NumReg:   X8,
		ArgRegs:  LinuxRegs,
		RetReg:   X0,
		Syscalls: linuxSyscalls,
		Kernels:  LinuxKernels,
	})
}
