package sysemu

import (
	"github.com/pkg/errors"

	"github.com/lunixbochs/sysemu/go/kernel/common"
	"github.com/lunixbochs/sysemu/go/models"
)

var (
	ErrDeadlock = errors.New("every remaining thread is blocked")
	ErrMaxSteps = errors.New("step limit reached")
)

// Program supplies the syscalls one thread makes.
type Program interface {
	// Load writes the next syscall into t's registers, or returns false when t has none left.
	Load(p *Process, t *Thread) (bool, error)
}

// Event describes one presented trap.
type Event struct {
	Step   int
	Thread *Thread
	Num    int
	Desc   *common.SyscallDesc
	// argument slots as presented, before the trap could clobber them
	Args  common.SyscallArgs
	State common.TrapState
	// return register after the trap, sign extended
	Ret int64
}

type schedEntry struct {
	thread *Thread
	prog   Program
	done   bool
}

// Scheduler stands in for the simulator's thread loop. Each step presents one trap
// per runnable thread; a pending thread presents the same trap again.
type Scheduler struct {
	Proc   *Process
	OnTrap func(ev *Event)

	entries []*schedEntry
	steps   int
}

func NewScheduler(p *Process) *Scheduler {
	return &Scheduler{Proc: p}
}

// Add schedules t to run prog. Threads run in the order they were added.
func (s *Scheduler) Add(t *Thread, prog Program) {
	s.entries = append(s.entries, &schedEntry{thread: t, prog: prog})
}

func (s *Scheduler) Steps() int {
	return s.steps
}

func (s *Scheduler) idle() bool {
	for _, e := range s.entries {
		if !e.done && !e.thread.Exited() {
			return false
		}
	}
	return true
}

func (s *Scheduler) pending() int {
	n := 0
	for _, e := range s.entries {
		if e.thread.Pending() && !e.thread.Exited() {
			n++
		}
	}
	return n
}

// Step presents one trap for every runnable thread. It reports whether any thread
// made progress, meaning a trap completed or a program finished.
func (s *Scheduler) Step() (bool, error) {
	progress := false
	s.steps++
	for _, e := range s.entries {
		if exited, _ := s.Proc.Exited(); exited {
			return true, nil
		}
		t := e.thread
		if e.done || t.Exited() {
			continue
		}
		if !t.Pending() {
			ok, err := e.prog.Load(s.Proc, t)
			if err != nil {
				return progress, errors.Wrapf(err, "thread %d", t.Tid())
			}
			if !ok {
				e.done = true
				progress = true
				continue
			}
		}
		num, err := t.RegRead(s.Proc.OS.NumReg)
		if err != nil {
			return progress, errors.Wrapf(err, "thread %d", t.Tid())
		}
		var args common.SyscallArgs
		if s.OnTrap != nil {
			if args, err = common.RegArgs(t, s.Proc.OS.ArgRegs); err != nil {
				return progress, errors.Wrapf(err, "thread %d", t.Tid())
			}
		}
		state := s.Proc.Trap(t)
		if state == common.TrapComplete {
			progress = true
		}
		if s.OnTrap != nil {
			ev := &Event{Step: s.steps, Thread: t, Num: int(num), Args: args, State: state}
			if ev.Desc = s.Proc.Table.Lookup(ev.Num); ev.Desc == nil {
				ev.Desc = s.Proc.Table.Missing
			}
			ev.Ret, _ = s.Proc.ReturnValue(t)
			s.OnTrap(ev)
		}
	}
	return progress, nil
}

// Run steps until the guest exits, every program finishes, or maxSteps is reached.
// maxSteps <= 0 means no limit. A guest exit is returned as models.ExitStatus.
func (s *Scheduler) Run(maxSteps int) error {
	for i := 0; maxSteps <= 0 || i < maxSteps; i++ {
		if exited, code := s.Proc.Exited(); exited {
			return models.ExitStatus(code)
		}
		if s.idle() {
			return nil
		}
		progress, err := s.Step()
		if err != nil {
			return err
		}
		if !progress {
			return errors.Wrapf(ErrDeadlock, "%d threads pending", s.pending())
		}
	}
	if exited, code := s.Proc.Exited(); exited {
		return models.ExitStatus(code)
	}
	if s.idle() {
		return nil
	}
	return errors.Wrapf(ErrMaxSteps, "after %d steps", maxSteps)
}
