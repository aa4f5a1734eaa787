package x86_64

import (
	"github.com/lunixbochs/sysemu/go/kernel/linux"
	"github.com/lunixbochs/sysemu/go/models"
)

// r10 replaces rcx, which the syscall instruction clobbers
var LinuxRegs = []int{RDI, RSI, RDX, R10, R8, R9}

var linuxSyscalls = map[int]string{
	0:   "read",
	1:   "write",
	2:   "open",
	3:   "close",
	4:   "stat",
	5:   "fstat",
	6:   "lstat",
	7:   "poll",
	8:   "lseek",
	9:   "mmap",
	10:  "mprotect",
	11:  "munmap",
	12:  "brk",
	13:  "rt_sigaction",
	14:  "rt_sigprocmask",
	16:  "ioctl",
	17:  "pread64",
	18:  "pwrite64",
	19:  "readv",
	20:  "writev",
	21:  "access",
	22:  "pipe",
	24:  "sched_yield",
	28:  "madvise",
	32:  "dup",
	33:  "dup2",
	35:  "nanosleep",
	39:  "getpid",
	56:  "clone",
	57:  "fork",
	59:  "execve",
	60:  "exit",
	61:  "wait4",
	62:  "kill",
	63:  "uname",
	72:  "fcntl",
	79:  "getcwd",
	89:  "readlink",
	96:  "gettimeofday",
	102: "getuid",
	104: "getgid",
	107: "geteuid",
	108: "getegid",
	110: "getppid",
	158: "arch_prctl",
	186: "gettid",
	202: "futex",
	218: "set_tid_address",
	228: "clock_gettime",
	231: "exit_group",
	257: "openat",
	273: "set_robust_list",
	302: "prlimit64",
	318: "getrandom",
}

func LinuxKernels() []interface{} {
	return []interface{}{linux.NewKernel("x86_64")}
}

func init() {
	Arch.RegisterOS(&models.OS{
		Name:     "linux",
		NumReg:   RAX,
		ArgRegs:  LinuxRegs,
		RetReg:   RAX,
		Syscalls: linuxSyscalls,
		Kernels:  LinuxKernels,
	})
}
