package sysemu

import (
	"testing"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/lunixbochs/sysemu/go/arch"
	"github.com/lunixbochs/sysemu/go/arch/x86"
	"github.com/lunixbochs/sysemu/go/arch/x86_64"
	"github.com/lunixbochs/sysemu/go/kernel/common"
	"github.com/lunixbochs/sysemu/go/models"
)

func newProcess(t *testing.T, name string) *Process {
	a, os, err := arch.GetArch(name, "linux")
	require.NoError(t, err)
	p, err := NewProcess(a, os, nil, hclog.NewNullLogger())
	require.NoError(t, err)
	return p
}

func TestNewProcessBadConvention(t *testing.T) {
	a := &models.Arch{Name: "toy", Bits: 64, Regs: map[int]string{0: "a", 1: "b"}}
	os := &models.OS{Name: "linux", NumReg: 0, RetReg: 0, ArgRegs: []int{1}}
	_, err := NewProcess(a, os, nil, nil)
	require.Error(t, err)

	os.ArgRegs = []int{1, 1, 1, 1, 1, 9}
	_, err = NewProcess(a, os, nil, nil)
	require.Error(t, err)
}

func TestSyscallArgs(t *testing.T) {
	p := newProcess(t, "x86_64")
	th := p.NewThread()
	require.Equal(t, DefaultPid, th.Tid())
	require.NoError(t, p.SetSyscall(th, 39, 1, 2, 3, 4, 5, 6))

	args := p.SyscallArgs(th)
	require.Equal(t, common.SyscallArgs{1, 2, 3, 4, 5, 6}, args)
	require.Equal(t, common.MaxSyscallArgs, th.cursor.Index())

	r10, err := th.RegRead(x86_64.R10)
	require.NoError(t, err)
	require.Equal(t, uint64(4), r10)
	require.Equal(t, uint64(4), p.SyscallArg(th, 3))

	// the cursor restarts on every extraction
	require.Equal(t, args, p.SyscallArgs(th))
	require.Equal(t, common.MaxSyscallArgs, th.cursor.Index())

	require.Error(t, p.SetSyscall(th, 39, 1, 2, 3, 4, 5, 6, 7))
}

func TestTrapGetpid(t *testing.T) {
	p := newProcess(t, "x86_64")
	th := p.NewThread()
	require.NoError(t, p.SetSyscall(th, 39))
	require.Equal(t, common.TrapComplete, p.Trap(th))
	rax, err := th.RegRead(x86_64.RAX)
	require.NoError(t, err)
	require.Equal(t, uint64(DefaultPid), rax)
	require.False(t, th.Pending())
}

func TestTrapWrite(t *testing.T) {
	p := newProcess(t, "x86_64")
	var fds [2]int
	require.NoError(t, unix.Pipe(fds[:]))
	defer unix.Close(fds[0])
	defer unix.Close(fds[1])

	addr, err := p.AllocString("hello")
	require.NoError(t, err)
	th := p.NewThread()
	require.NoError(t, p.SetSyscall(th, 1, uint64(fds[1]), addr, 5))
	require.Equal(t, common.TrapComplete, p.Trap(th))
	ret, err := p.ReturnValue(th)
	require.NoError(t, err)
	require.Equal(t, int64(5), ret)

	buf := make([]byte, 16)
	n, err := unix.Read(fds[0], buf)
	require.NoError(t, err)
	require.Equal(t, "hello", string(buf[:n]))
}

func TestTrapExitGroup(t *testing.T) {
	p := newProcess(t, "x86_64")
	th := p.NewThread()
	require.NoError(t, p.SetSyscall(th, 231, 3))
	require.Equal(t, common.TrapComplete, p.Trap(th))

	rax, err := th.RegRead(x86_64.RAX)
	require.NoError(t, err)
	require.Equal(t, uint64(231), rax, "exit_group leaves the return register alone")
	exited, code := p.Exited()
	require.True(t, exited)
	require.Equal(t, 3, code)
	require.True(t, th.Exited())
}

func TestTrapExitThreads(t *testing.T) {
	p := newProcess(t, "x86_64")
	a, b := p.NewThread(), p.NewThread()
	require.Equal(t, a.Tid()+1, b.Tid())
	require.Equal(t, []*Thread{a, b}, p.Threads())

	require.NoError(t, p.SetSyscall(a, 60, 1))
	p.Trap(a)
	require.True(t, a.Exited())
	exited, _ := p.Exited()
	require.False(t, exited)

	require.NoError(t, p.SetSyscall(b, 60, 2))
	p.Trap(b)
	exited, code := p.Exited()
	require.True(t, exited)
	require.Equal(t, 2, code)
}

func TestTrapUnknown(t *testing.T) {
	p := newProcess(t, "x86_64")
	th := p.NewThread()
	require.NoError(t, p.SetSyscall(th, 9999))
	require.Equal(t, common.TrapComplete, p.Trap(th))
	ret, err := p.ReturnValue(th)
	require.NoError(t, err)
	require.Equal(t, -int64(unix.ENOSYS), ret)
	require.True(t, p.Table.Missing.Warned())
}

func TestTrapRetry(t *testing.T) {
	p := newProcess(t, "x86_64")
	word, err := p.Alloc(4)
	require.NoError(t, err)
	th := p.NewThread()
	require.NoError(t, p.SetSyscall(th, 202, word, 0, 0))

	for i := 0; i < 3; i++ {
		require.Equal(t, common.TrapPending, p.Trap(th))
		require.True(t, th.Pending())
		rax, err := th.RegRead(x86_64.RAX)
		require.NoError(t, err)
		require.Equal(t, uint64(202), rax)
	}
	require.Error(t, p.SetSyscall(th, 39))
}

func TestTrap32(t *testing.T) {
	p := newProcess(t, "x86")
	th := p.NewThread()
	// close(123456)
	require.NoError(t, p.SetSyscall(th, 6, 123456))
	p.Trap(th)
	eax, err := th.RegRead(x86.EAX)
	require.NoError(t, err)
	require.Equal(t, uint64(0xfffffff7), eax)
	ret, err := p.ReturnValue(th)
	require.NoError(t, err)
	require.Equal(t, -int64(unix.EBADF), ret)
}

func TestAlloc(t *testing.T) {
	p := newProcess(t, "arm64")
	a, err := p.Alloc(3)
	require.NoError(t, err)
	b, err := p.Alloc(1)
	require.NoError(t, err)
	require.Equal(t, uint64(ScratchBase), a)
	require.Equal(t, a+8, b)

	addr, err := p.AllocString("abc")
	require.NoError(t, err)
	s, err := p.Mem().ReadStrAt(addr)
	require.NoError(t, err)
	require.Equal(t, "abc", s)

	_, err = p.Alloc(ScratchSize)
	require.Error(t, err)
}
