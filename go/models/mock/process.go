// Package mock provides a small 64-bit little-endian guest for kernel tests.
package mock

import (
	"encoding/binary"

	"github.com/lunixbochs/sysemu/go/kernel/common"
	"github.com/lunixbochs/sysemu/go/models/cpu"
)

const (
	RegRet = iota
	RegA0
	RegA1
	RegA2
	RegA3
	RegA4
	RegA5
	RegNum
)

var ArgRegs = []int{RegA0, RegA1, RegA2, RegA3, RegA4, RegA5}

// Scratch memory mapped read/write by NewProcess.
const (
	MemBase = 0x10000
	MemSize = 0x10000
)

// Sentinel is written to the return register of every new thread.
const Sentinel = 0xdeadbeef

type Thread struct {
	*cpu.Regs
	ID int
}

func (t *Thread) Tid() int { return t.ID }

// Ret reads the return register.
func (t *Thread) Ret() uint64 {
	val, _ := t.RegRead(RegRet)
	return val
}

// SetArgs overwrites the argument registers from slot 0.
func (t *Thread) SetArgs(args ...uint64) {
	for i, v := range args {
		t.RegWrite(ArgRegs[i], v)
	}
}

type Process struct {
	Memory *cpu.Mem
	PID    int

	Exited     bool
	ExitCode   int
	ThreadExit map[int]int
}

func NewProcess() *Process {
	mem := cpu.NewMem(64, binary.LittleEndian)
	if err := mem.MemMapProt(MemBase, MemSize, cpu.PROT_READ|cpu.PROT_WRITE); err != nil {
		panic(err)
	}
	return &Process{Memory: mem, PID: 1000, ThreadExit: make(map[int]int)}
}

func (p *Process) NewThread(tid int, args ...uint64) *Thread {
	t := &Thread{Regs: cpu.NewRegs(64, []int{RegRet, RegA0, RegA1, RegA2, RegA3, RegA4, RegA5, RegNum}), ID: tid}
	t.SetArgs(args...)
	t.RegWrite(RegRet, Sentinel)
	return t
}

func (p *Process) SyscallArgs(tc common.ThreadContext) common.SyscallArgs {
	args, err := common.RegArgs(tc, ArgRegs)
	if err != nil {
		panic(err)
	}
	return args
}

func (p *Process) SyscallArg(tc common.ThreadContext, i int) uint64 {
	val, err := tc.RegRead(ArgRegs[i])
	if err != nil {
		panic(err)
	}
	return val
}

func (p *Process) SetSyscallReturn(tc common.ThreadContext, val uint64) {
	if err := tc.RegWrite(RegRet, val); err != nil {
		panic(err)
	}
}

func (p *Process) Mem() cpu.Memory             { return p.Memory }
func (p *Process) ByteOrder() binary.ByteOrder { return binary.LittleEndian }
func (p *Process) Bits() uint                  { return 64 }
func (p *Process) Pid() int                    { return p.PID }

func (p *Process) Exit(code int) {
	p.Exited = true
	p.ExitCode = code
}

func (p *Process) ExitThread(tid, code int) {
	p.ThreadExit[tid] = code
}

var _ common.Process = (*Process)(nil)
