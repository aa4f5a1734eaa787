package run

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	sysemu "github.com/lunixbochs/sysemu/go"
	"github.com/lunixbochs/sysemu/go/cmd"
	"github.com/lunixbochs/sysemu/go/kernel/common"
	"github.com/lunixbochs/sysemu/go/models"
)

// formatCall renders a trap the way strace would, with typed arguments when the executor knows them.
func formatCall(p *sysemu.Process, ev *sysemu.Event) string {
	if sys, ok := ev.Desc.Executor.(*common.Syscall); ok {
		return sys.TraceArgs(p, ev.Args)
	}
	return fmt.Sprintf("%s(%s)", ev.Desc.Name, ev.Args)
}

type tracer struct {
	c     *cmd.SysemuCmd
	diffs map[int]*models.StatusDiff
}

func (t *tracer) onTrap(ev *sysemu.Event) {
	p, config := t.c.Proc, t.c.Config
	var outcome string
	if ev.State == common.TrapComplete && ev.Desc.Flags&common.SuppressReturnValue != 0 {
		outcome = "= ?"
	} else {
		outcome = models.Outcome(ev.State == common.TrapPending, ev.Ret, config.Color)
	}
	fmt.Fprintf(t.c.Stdout, "[%d] %s %s\n", ev.Thread.Tid(), formatCall(p, ev), outcome)
	if !config.TraceReg {
		return
	}
	regs, err := p.Arch.RegDump(ev.Thread)
	if err != nil {
		fmt.Fprintf(t.c.Stderr, "register dump failed: %v\n", err)
		return
	}
	diff, ok := t.diffs[ev.Thread.Tid()]
	if !ok {
		diff = &models.StatusDiff{Bits: p.Arch.Bits, Color: config.Color}
		t.diffs[ev.Thread.Tid()] = diff
	}
	if s := diff.String(regs, true); s != "" {
		fmt.Fprintln(t.c.Stdout, s)
	}
}

func openScript(name string) (io.ReadCloser, error) {
	if name == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(name)
	return f, errors.Wrap(err, "opening script")
}

func Main(args []string) {
	c := cmd.NewSysemuCmd("<script|->")
	c.RunProcess = func(args []string) error {
		if len(args) != 1 {
			c.Flags.Usage()
			return errors.New("expected one script")
		}
		f, err := openScript(args[0])
		if err != nil {
			return err
		}
		script, err := sysemu.ParseScript(f, c.Proc.OS.Syscalls)
		f.Close()
		if err != nil {
			return err
		}
		t := &tracer{c: c, diffs: make(map[int]*models.StatusDiff)}
		sched := sysemu.NewScheduler(c.Proc)
		sched.OnTrap = t.onTrap
		for _, id := range script.Threads() {
			sched.Add(c.Proc.NewThread(), script.Program(id))
		}
		err = sched.Run(c.Config.MaxSteps)
		if c.Config.Verbose {
			fmt.Fprintf(c.Stderr, "%d steps\n", sched.Steps())
		}
		return err
	}
	c.Run(args)
}

func init() { cmd.Register("run", "replay a syscall script against an emulated kernel", Main) }
