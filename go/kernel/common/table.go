package common

import (
	"sort"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"

	"github.com/lunixbochs/sysemu/go/log"
)

// Table maps syscall numbers to descriptors for one guest ABI.
type Table struct {
	Log hclog.Logger
	// serves numbers with no registered descriptor
	Missing *SyscallDesc

	descs map[int]*SyscallDesc
}

func NewTable(logger hclog.Logger) *Table {
	if logger == nil {
		logger = log.L.Named("syscall")
	}
	missing := NewSyscallDesc("unknown", Unimplemented, WarnOnce)
	missing.Log = logger
	return &Table{
		Log:     logger,
		Missing: missing,
		descs:   make(map[int]*SyscallDesc),
	}
}

func (t *Table) Register(num int, desc *SyscallDesc) error {
	if desc == nil {
		return errors.Wrapf(ErrNilDescriptor, "syscall %d", num)
	}
	if desc.Executor == nil {
		return errors.Errorf("syscall %d (%s) has no executor", num, desc.Name)
	}
	if old, ok := t.descs[num]; ok {
		return errors.Wrapf(ErrDuplicateSyscall, "syscall %d (%s, %s)", num, old.Name, desc.Name)
	}
	if desc.Log == nil {
		desc.Log = t.Log
	}
	t.descs[num] = desc
	return nil
}

func (t *Table) Lookup(num int) *SyscallDesc {
	return t.descs[num]
}

func (t *Table) Len() int {
	return len(t.descs)
}

// Nums returns every registered number in ascending order.
func (t *Table) Nums() []int {
	nums := make([]int, 0, len(t.descs))
	for n := range t.descs {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}

// Dispatch looks up num and runs one attempt of it.
func (t *Table) Dispatch(num int, p Process, tc ThreadContext) TrapState {
	desc := t.Lookup(num)
	if desc == nil {
		desc = t.Missing
	}
	return desc.Dispatch(t.Log, num, p, tc)
}

// flagger lets a kernel attach flags to its syscalls by name.
type flagger interface {
	SyscallFlags() map[string]Flags
}

// BuildTable creates a descriptor for every entry in names.
// Each name is served by the first kernel with a matching method, or Unimplemented.
// Flags from the kernels and from extra are or'd together.
func BuildTable(logger hclog.Logger, names map[int]string, extra map[string]Flags, kernels ...Kernel) (*Table, error) {
	t := NewTable(logger)
	flags := make(map[string]Flags)
	for _, k := range kernels {
		if f, ok := k.(flagger); ok {
			for name, v := range f.SyscallFlags() {
				flags[name] |= v
			}
		}
	}
	for name, v := range extra {
		flags[name] |= v
	}
	nums := make([]int, 0, len(names))
	for num := range names {
		nums = append(nums, num)
	}
	sort.Ints(nums)
	for _, num := range nums {
		name := names[num]
		if name == "" {
			return nil, errors.Errorf("syscall %d has an empty name", num)
		}
		var exec Executor
		for _, k := range kernels {
			if sys := Lookup(k, name); sys != nil {
				exec = sys
				break
			}
		}
		f := flags[name]
		if exec == nil {
			exec = Unimplemented
			f |= WarnOnce
		}
		if err := t.Register(num, NewSyscallDesc(name, exec, f)); err != nil {
			return nil, err
		}
	}
	return t, nil
}
