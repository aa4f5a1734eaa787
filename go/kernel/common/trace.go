package common

import (
	"fmt"
	"strings"
)

func repr(p []byte, strsize int) string {
	if strsize > 0 && len(p) > strsize {
		return fmt.Sprintf("%+q...", p[:strsize])
	}
	return fmt.Sprintf("%+q", p)
}

func hex(a interface{}) string {
	tmp := fmt.Sprintf("0x%x", a)
	if strings.HasPrefix(tmp, "0x-") {
		tmp = "-0x" + tmp[3:]
	}
	return tmp
}

func (s *Syscall) traceArg(args ...interface{}) string {
	switch arg := args[0].(type) {
	case Obuf:
		return hex(arg.Addr)
	case Buf:
		if len(args) > 1 {
			if length, ok := args[1].(Len); ok {
				mem, err := arg.Read(uint64(length))
				if err == nil {
					return repr(mem, s.Kernel.Strsize)
				}
			}
		}
		return hex(arg.Addr)
	case Off:
		return hex(int64(arg))
	case Ptr:
		return hex(uint64(arg))
	case Len:
		return fmt.Sprintf("%d", uint64(arg))
	case Fd:
		return fmt.Sprintf("%d", int32(arg))
	case string:
		return repr([]byte(arg), s.Kernel.Strsize)
	case uint64:
		return hex(arg)
	default:
		return fmt.Sprintf("%v", arg)
	}
}

// TraceArgs renders the call the way the method sees it, e.g. write(1, "hi\n", 3).
func (s *Syscall) TraceArgs(p Process, regs SyscallArgs) string {
	inRef, err := s.convert(p, regs[:])
	if err != nil {
		return fmt.Sprintf("%s(<%s>)", s.Name, err)
	}
	in := make([]interface{}, len(inRef))
	for i, val := range inRef {
		in[i] = val.Interface()
	}
	out := make([]string, len(in))
	for i := range in {
		out[i] = s.traceArg(in[i:]...)
	}
	return fmt.Sprintf("%s(%s)", s.Name, strings.Join(out, ", "))
}
