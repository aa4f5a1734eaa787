package sysemu

import (
	"encoding/binary"
	"sort"
	"sync"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"

	"github.com/lunixbochs/sysemu/go/kernel/common"
	"github.com/lunixbochs/sysemu/go/log"
	"github.com/lunixbochs/sysemu/go/models"
	"github.com/lunixbochs/sysemu/go/models/cpu"
)

// Guest pid; the first thread's tid matches it, as on Linux.
const DefaultPid = 1000

// Process is one guest address space and its threads.
type Process struct {
	Arch  *models.Arch
	OS    *models.OS
	Table *common.Table
	Log   hclog.Logger

	mem     *cpu.Mem
	scratch scratch
	pid     int

	mu       sync.Mutex
	threads  map[int]*Thread
	nextTid  int
	exited   bool
	exitCode int
}

// NewProcess checks the syscall convention of os against a and builds its syscall table.
// A nil logger means log.L.
func NewProcess(a *models.Arch, os *models.OS, config *models.Config, logger hclog.Logger) (*Process, error) {
	if config == nil {
		config = models.DefaultConfig()
	}
	if err := os.Validate(a, common.MaxSyscallArgs); err != nil {
		return nil, errors.Wrap(err, "invalid syscall convention")
	}
	if logger == nil {
		logger = log.L
	}
	if config.TraceSys {
		logger.SetLevel(hclog.Trace)
	}
	var kernels []common.Kernel
	if os.Kernels != nil {
		for _, k := range os.Kernels() {
			kf, ok := k.(common.Kernel)
			if !ok {
				return nil, errors.Errorf("%s/%s: %T is not a kernel", a.Name, os.Name, k)
			}
			base := kf.SysemuKernel()
			base.Log = logger.Named("kernel")
			base.Strsize = config.Strsize
			kernels = append(kernels, kf)
		}
	}
	table, err := common.BuildTable(logger.Named("syscall"), os.Syscalls, nil, kernels...)
	if err != nil {
		return nil, errors.Wrapf(err, "building %s/%s syscall table", a.Name, os.Name)
	}
	p := &Process{
		Arch:    a,
		OS:      os,
		Table:   table,
		Log:     logger,
		mem:     cpu.NewMem(a.Bits, a.Order),
		pid:     DefaultPid,
		threads: make(map[int]*Thread),
		nextTid: DefaultPid,
	}
	if err := p.scratch.init(p.mem); err != nil {
		return nil, err
	}
	return p, nil
}

// NewThread allocates a thread with zeroed registers.
func (p *Process) NewThread() *Thread {
	p.mu.Lock()
	defer p.mu.Unlock()
	t := &Thread{
		Regs:   cpu.NewRegs(p.Arch.Bits, p.Arch.RegEnums()),
		tid:    p.nextTid,
		cursor: common.ArgCursor{Regs: p.OS.ArgRegs},
	}
	p.nextTid++
	p.threads[t.tid] = t
	return t
}

// Threads returns every thread ever created, in tid order.
func (p *Process) Threads() []*Thread {
	p.mu.Lock()
	defer p.mu.Unlock()
	ret := make([]*Thread, 0, len(p.threads))
	for _, t := range p.threads {
		ret = append(ret, t)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].tid < ret[j].tid })
	return ret
}

func (p *Process) thread(tc common.ThreadContext) *Thread {
	t, ok := tc.(*Thread)
	if !ok {
		panic(errors.Errorf("foreign thread context %T", tc))
	}
	return t
}

// NextSyscallArg reads the argument slot under tc's cursor and advances it.
func (p *Process) NextSyscallArg(tc common.ThreadContext) uint64 {
	t := p.thread(tc)
	return t.cursor.Next(t)
}

func (p *Process) SyscallArgs(tc common.ThreadContext) common.SyscallArgs {
	p.thread(tc).cursor.Reset()
	var args common.SyscallArgs
	for i := range args {
		args[i] = p.NextSyscallArg(tc)
	}
	return args
}

func (p *Process) SyscallArg(tc common.ThreadContext, i int) uint64 {
	val, err := tc.RegRead(p.OS.ArgRegs[i])
	if err != nil {
		panic(errors.Wrapf(err, "reading syscall argument %d", i))
	}
	return val
}

func (p *Process) SetSyscallReturn(tc common.ThreadContext, val uint64) {
	if err := tc.RegWrite(p.OS.RetReg, val); err != nil {
		panic(errors.Wrap(err, "writing syscall return"))
	}
}

// ReturnValue reads tc's return register, sign extended from the guest word size.
func (p *Process) ReturnValue(tc common.ThreadContext) (int64, error) {
	val, err := tc.RegRead(p.OS.RetReg)
	if err != nil {
		return 0, err
	}
	shift := 64 - p.Arch.Bits
	return int64(val<<shift) >> shift, nil
}

func (p *Process) Mem() cpu.Memory             { return p.mem }
func (p *Process) ByteOrder() binary.ByteOrder { return p.Arch.Order }
func (p *Process) Bits() uint                  { return p.Arch.Bits }
func (p *Process) Pid() int                    { return p.pid }

// Exit ends the whole guest.
func (p *Process) Exit(code int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.exit(code)
}

func (p *Process) exit(code int) {
	if p.exited {
		return
	}
	p.exited = true
	p.exitCode = code
	for _, t := range p.threads {
		t.exited = true
	}
}

// ExitThread ends one thread. The guest exits with code once no thread is left.
func (p *Process) ExitThread(tid, code int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if t, ok := p.threads[tid]; ok {
		t.exited = true
		t.exitCode = code
	}
	for _, t := range p.threads {
		if !t.exited {
			return
		}
	}
	p.exit(code)
}

// Exited reports whether the guest exited, and its status.
func (p *Process) Exited() (bool, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.exited, p.exitCode
}

var _ common.Process = (*Process)(nil)
