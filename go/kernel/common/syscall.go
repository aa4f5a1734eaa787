package common

import (
	"reflect"

	"github.com/lunixbochs/argjoy"
	"golang.org/x/sys/unix"
)

// Syscall is a kernel method bound as an Executor.
type Syscall struct {
	Name     string
	Kernel   *KernelBase
	Instance reflect.Value
	Method   reflect.Method
	In       []reflect.Type
	Out      []reflect.Type
	CallArg  bool
}

func (sys *Syscall) convert(p Process, args []uint64) ([]reflect.Value, error) {
	var aj argjoy.Argjoy
	aj.Register(argCodec(p))
	aj.Register(argjoy.IntToInt)
	return aj.Convert(sys.In, false, args[:len(sys.In)])
}

// Execute reads only the argument slots the method declares.
// A parameter that cannot be read from guest memory fails the call with -EFAULT.
func (sys *Syscall) Execute(desc *SyscallDesc, num int, p Process, tc ThreadContext) SyscallReturn {
	raw := make([]uint64, len(sys.In))
	for i := range raw {
		raw[i] = p.SyscallArg(tc, i)
	}
	converted, err := sys.convert(p, raw)
	if err != nil {
		sys.Kernel.Log.Warn("bad syscall arguments", "syscall", sys.Name, "tid", tc.Tid(), "err", err)
		return Errno(unix.EFAULT)
	}
	in := make([]reflect.Value, 0, len(converted)+2)
	in = append(in, sys.Instance)
	if sys.CallArg {
		in = append(in, reflect.ValueOf(&Call{
			Desc:    desc,
			Num:     num,
			Process: p,
			Thread:  tc,
			Log:     sys.Kernel.Log,
		}))
	}
	in = append(in, converted...)
	return toReturn(sys.Method.Func.Call(in))
}

func toReturn(out []reflect.Value) SyscallReturn {
	if len(out) == 0 {
		return Value(0)
	}
	v := out[0]
	if r, ok := v.Interface().(SyscallReturn); ok {
		return r
	}
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Value(v.Int())
	default:
		return Value(v.Uint())
	}
}
