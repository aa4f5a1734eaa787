package sysemu

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/lunixbochs/sysemu/go/kernel/common"
	"github.com/lunixbochs/sysemu/go/models"
)

func runScript(t *testing.T, p *Process, text string, maxSteps int) (*Script, []*Event, error) {
	script, err := ParseScript(strings.NewReader(text), p.OS.Syscalls)
	require.NoError(t, err)
	sched := NewScheduler(p)
	var events []*Event
	sched.OnTrap = func(ev *Event) { events = append(events, ev) }
	for _, id := range script.Threads() {
		sched.Add(p.NewThread(), script.Program(id))
	}
	return script, events, sched.Run(maxSteps)
}

func summarize(events []*Event) []string {
	var out []string
	for _, ev := range events {
		s := fmt.Sprintf("%d %d %s %s", ev.Step, ev.Thread.Tid()-DefaultPid+1, ev.Desc.Name, ev.State)
		if ev.State == common.TrapComplete && ev.Desc.Flags&common.SuppressReturnValue == 0 {
			s += fmt.Sprintf(" %d", ev.Ret)
		}
		out = append(out, s)
	}
	return out
}

func TestFutexHandshake(t *testing.T) {
	p := newProcess(t, "x86_64")
	script, events, err := runScript(t, p, `
# thread 1 waits on a shared word, thread 2 wakes it
1 futex @word 128 0
2 getpid
2 futex @word 129 1
1 exit_group 0
`, 100)
	require.Equal(t, models.ExitStatus(0), err)
	require.Equal(t, []string{
		"1 1 futex pending",
		"1 2 getpid complete 1000",
		"2 1 futex pending",
		"2 2 futex complete 1",
		"3 1 futex complete 0",
		"4 1 exit_group complete",
	}, summarize(events))
	_, ok := script.Cell("word")
	require.True(t, ok)
}

func TestDeadlock(t *testing.T) {
	p := newProcess(t, "x86_64")
	_, events, err := runScript(t, p, "1 futex @w 0 0\n2 gettid\n", 100)
	require.Equal(t, ErrDeadlock, errors.Cause(err))
	// waiter, gettid, waiter, waiter
	require.Len(t, events, 4)
	require.True(t, p.Threads()[0].Pending())
}

func TestMaxSteps(t *testing.T) {
	p := newProcess(t, "x86_64")
	_, events, err := runScript(t, p, strings.Repeat("1 sched_yield\n", 10), 3)
	require.Equal(t, ErrMaxSteps, errors.Cause(err))
	require.Len(t, events, 3)
}

func TestRunFinishes(t *testing.T) {
	p := newProcess(t, "arm64")
	_, events, err := runScript(t, p, "1 getuid\n1 172\n", 0)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, int64(DefaultPid), events[1].Ret)
}

func TestScriptArgs(t *testing.T) {
	p := newProcess(t, "x86_64")
	var fds [2]int
	require.NoError(t, unix.Pipe(fds[:]))
	defer unix.Close(fds[0])
	defer unix.Close(fds[1])

	text := fmt.Sprintf("1 write %d 'hi there\\n' 9\n1 read %d buf:64 64\n", fds[1], fds[0])
	_, events, err := runScript(t, p, text, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, int64(9), events[0].Ret)
	require.Equal(t, int64(9), events[1].Ret)
}

func TestParseScript(t *testing.T) {
	names := map[int]string{0: "read", 1: "write", 39: "getpid"}
	script, err := ParseScript(strings.NewReader("2 getpid\n1 1 -1 0x10 @x buf:8 \"a b\"\n"), names)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, script.Threads())
	call := script.Calls[1]
	require.Equal(t, "write", call.Name)
	require.Equal(t, 2, call.Line)
	require.Equal(t, []ScriptArg{
		{Kind: ArgInt, Val: ^uint64(0)},
		{Kind: ArgInt, Val: 0x10},
		{Kind: ArgCell, Str: "x"},
		{Kind: ArgBuf, Val: 8},
		{Kind: ArgString, Str: "a b"},
	}, call.Args)

	for _, bad := range []string{
		"getpid",
		"x getpid",
		"0 getpid",
		"1 nosuch",
		"1 read 1 2 3 4 5 6 7",
		"1 read buf:zz",
		"1 read 'unterminated",
	} {
		_, err := ParseScript(strings.NewReader(bad), names)
		require.Error(t, err, bad)
	}
}
