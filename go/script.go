package sysemu

import (
	"bufio"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/mattn/go-shellwords"
	"github.com/pkg/errors"

	"github.com/lunixbochs/sysemu/go/kernel/common"
)

// A script is a list of syscalls, one per line:
//
//	<thread> <syscall> [args...]
//
// The syscall is a name or number. Each argument is one of
//
//	123, -1, 0x10   integer
//	@name           address of a zeroed 8-byte word shared by every line naming it
//	buf:N           address of N fresh zeroed bytes
//	anything else   address of a fresh NUL-terminated copy of the string
//
// Lines starting with # are comments.

type ArgKind int

const (
	ArgInt ArgKind = iota
	ArgCell
	ArgBuf
	ArgString
)

type ScriptArg struct {
	Kind ArgKind
	Val  uint64
	Str  string
}

type ScriptCall struct {
	Line   int
	Thread int
	Num    int
	Name   string
	Args   []ScriptArg
}

type Script struct {
	Calls []*ScriptCall

	cells map[string]uint64
}

func parseArg(word string) (ScriptArg, error) {
	if strings.HasPrefix(word, "@") && len(word) > 1 {
		return ScriptArg{Kind: ArgCell, Str: word[1:]}, nil
	}
	if strings.HasPrefix(word, "buf:") {
		n, err := strconv.ParseUint(word[4:], 0, 32)
		if err != nil {
			return ScriptArg{}, errors.Wrapf(err, "bad buffer size %q", word)
		}
		return ScriptArg{Kind: ArgBuf, Val: n}, nil
	}
	if n, err := strconv.ParseInt(word, 0, 64); err == nil {
		return ScriptArg{Kind: ArgInt, Val: uint64(n)}, nil
	}
	if n, err := strconv.ParseUint(word, 0, 64); err == nil {
		return ScriptArg{Kind: ArgInt, Val: n}, nil
	}
	if strings.Contains(word, `\`) {
		if s, err := strconv.Unquote(`"` + word + `"`); err == nil {
			word = s
		}
	}
	return ScriptArg{Kind: ArgString, Str: word}, nil
}

// ParseScript reads a script, resolving syscall names against names.
func ParseScript(r io.Reader, names map[int]string) (*Script, error) {
	byName := make(map[string]int, len(names))
	for num, name := range names {
		if old, ok := byName[name]; !ok || num < old {
			byName[name] = num
		}
	}
	script := &Script{}
	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		words, err := shellwords.Parse(text)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		if len(words) < 2 {
			return nil, errors.Errorf("line %d: want <thread> <syscall> [args...]", line)
		}
		tid, err := strconv.Atoi(words[0])
		if err != nil || tid < 1 {
			return nil, errors.Errorf("line %d: bad thread %q", line, words[0])
		}
		call := &ScriptCall{Line: line, Thread: tid}
		if num, err := strconv.Atoi(words[1]); err == nil {
			call.Num, call.Name = num, names[num]
		} else if num, ok := byName[words[1]]; ok {
			call.Num, call.Name = num, words[1]
		} else {
			return nil, errors.Errorf("line %d: unknown syscall %q", line, words[1])
		}
		if len(words)-2 > common.MaxSyscallArgs {
			return nil, errors.Errorf("line %d: %d arguments, max %d", line, len(words)-2, common.MaxSyscallArgs)
		}
		for _, word := range words[2:] {
			arg, err := parseArg(word)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", line)
			}
			call.Args = append(call.Args, arg)
		}
		script.Calls = append(script.Calls, call)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading script")
	}
	return script, nil
}

// Threads returns the script's thread ids in ascending order.
func (s *Script) Threads() []int {
	seen := make(map[int]bool)
	var ids []int
	for _, c := range s.Calls {
		if !seen[c.Thread] {
			seen[c.Thread] = true
			ids = append(ids, c.Thread)
		}
	}
	sort.Ints(ids)
	return ids
}

func (s *Script) resolve(p *Process, arg ScriptArg) (uint64, error) {
	switch arg.Kind {
	case ArgCell:
		if s.cells == nil {
			s.cells = make(map[string]uint64)
		}
		if addr, ok := s.cells[arg.Str]; ok {
			return addr, nil
		}
		addr, err := p.Alloc(8)
		if err != nil {
			return 0, err
		}
		s.cells[arg.Str] = addr
		return addr, nil
	case ArgBuf:
		return p.Alloc(arg.Val)
	case ArgString:
		return p.AllocString(arg.Str)
	default:
		return arg.Val, nil
	}
}

// Cell returns the address given to @name, if any line used it yet.
func (s *Script) Cell(name string) (uint64, bool) {
	addr, ok := s.cells[name]
	return addr, ok
}

type threadScript struct {
	script *Script
	calls  []*ScriptCall
	// the call loaded last
	Current *ScriptCall
}

// Program returns the calls of one script thread.
func (s *Script) Program(thread int) Program {
	ts := &threadScript{script: s}
	for _, c := range s.Calls {
		if c.Thread == thread {
			ts.calls = append(ts.calls, c)
		}
	}
	return ts
}

func (ts *threadScript) Load(p *Process, t *Thread) (bool, error) {
	if len(ts.calls) == 0 {
		return false, nil
	}
	call := ts.calls[0]
	ts.calls = ts.calls[1:]
	ts.Current = call
	args := make([]uint64, len(call.Args))
	for i, arg := range call.Args {
		val, err := ts.script.resolve(p, arg)
		if err != nil {
			return false, errors.Wrapf(err, "line %d", call.Line)
		}
		args[i] = val
	}
	return true, errors.Wrapf(p.SetSyscall(t, call.Num, args...), "line %d", call.Line)
}
