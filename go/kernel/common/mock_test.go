package common

import (
	"bytes"
	"encoding/binary"
	"testing"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/lunixbochs/sysemu/go/models/cpu"
)

const (
	regRet = iota
	regA0
	regA1
	regA2
	regA3
	regA4
	regA5
	regNum
)

var argRegs = []int{regA0, regA1, regA2, regA3, regA4, regA5}

const sentinel = 0xdeadbeef

// errno is the register image of -e.
func errno(e unix.Errno) uint64 {
	return uint64(0) - uint64(e)
}

// countingRegs records every register read.
type countingRegs struct {
	*cpu.Regs
	reads map[int]int
}

func (c *countingRegs) RegRead(enum int) (uint64, error) {
	c.reads[enum]++
	return c.Regs.RegRead(enum)
}

func (c *countingRegs) argReads() int {
	n := 0
	for _, r := range argRegs {
		n += c.reads[r]
	}
	return n
}

type mockThread struct {
	*countingRegs
	tid    int
	cursor ArgCursor
}

func (t *mockThread) Tid() int { return t.tid }

func newThread(t *testing.T, tid int, args ...uint64) *mockThread {
	regs := cpu.NewRegs(64, []int{regRet, regA0, regA1, regA2, regA3, regA4, regA5, regNum})
	th := &mockThread{
		countingRegs: &countingRegs{Regs: regs, reads: make(map[int]int)},
		tid:          tid,
		cursor:       ArgCursor{Regs: argRegs},
	}
	for i, v := range args {
		require.NoError(t, regs.RegWrite(argRegs[i], v))
	}
	require.NoError(t, regs.RegWrite(regRet, sentinel))
	return th
}

func (t *mockThread) ret() uint64 {
	val, _ := t.Regs.RegRead(regRet)
	return val
}

type mockProcess struct {
	mem *cpu.Mem
}

func newProcess(t *testing.T) *mockProcess {
	mem := cpu.NewMem(64, binary.LittleEndian)
	require.NoError(t, mem.MemMapProt(0x1000, 0x2000, cpu.PROT_READ|cpu.PROT_WRITE))
	return &mockProcess{mem: mem}
}

func (p *mockProcess) SyscallArgs(tc ThreadContext) SyscallArgs {
	th := tc.(*mockThread)
	th.cursor.Reset()
	var args SyscallArgs
	for i := range args {
		args[i] = th.cursor.Next(th)
	}
	return args
}

func (p *mockProcess) SyscallArg(tc ThreadContext, i int) uint64 {
	val, err := tc.(*mockThread).Regs.RegRead(argRegs[i])
	if err != nil {
		panic(err)
	}
	return val
}

func (p *mockProcess) SetSyscallReturn(tc ThreadContext, val uint64) {
	if err := tc.RegWrite(regRet, val); err != nil {
		panic(err)
	}
}

func (p *mockProcess) Mem() cpu.Memory             { return p.mem }
func (p *mockProcess) ByteOrder() binary.ByteOrder { return binary.LittleEndian }
func (p *mockProcess) Bits() uint                  { return 64 }

func traceLogger() (hclog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return hclog.New(&hclog.LoggerOptions{Output: &buf, Level: hclog.Trace}), &buf
}
