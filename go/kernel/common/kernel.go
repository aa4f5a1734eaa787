package common

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	hclog "github.com/hashicorp/go-hclog"

	"github.com/lunixbochs/sysemu/go/log"
)

// KernelBase turns the exported methods of an embedding kernel into syscalls.
// Method FooBar serves syscall foo_bar. A Literal prefix is stripped first.
type KernelBase struct {
	Syscalls map[string]*Syscall
	Log      hclog.Logger
	// max bytes shown per buffer in traces
	Strsize int
}

func (k *KernelBase) SysemuKernel() *KernelBase {
	return k
}

type Kernel interface {
	SysemuKernel() *KernelBase
}

// Call is passed to kernel methods whose first parameter is *Call.
type Call struct {
	Desc    *SyscallDesc
	Num     int
	Process Process
	Thread  ThreadContext
	Log     hclog.Logger
}

func (c *Call) Warnf(format string, args ...interface{}) {
	c.Desc.Warnf(c.Log, format, args...)
}

var (
	callType   = reflect.TypeOf(&Call{})
	returnType = reflect.TypeOf(SyscallReturn{})
)

// methods never exposed as syscalls
var reserved = map[string]bool{"SyscallFlags": true}

func init() {
	typ := reflect.TypeOf(&KernelBase{})
	for i := 0; i < typ.NumMethod(); i++ {
		reserved[typ.Method(i).Name] = true
	}
}

func camelToSnakeCase(name string) string {
	var words []string
	last := 0
	for i, c := range name {
		if unicode.IsUpper(c) {
			if i > 0 {
				words = append(words, name[last:i])
			}
			last = i
		}
	}
	words = append(words, name[last:])
	return strings.ToLower(strings.Join(words, "_"))
}

func validReturn(out []reflect.Type) bool {
	if len(out) == 0 {
		return true
	}
	if out[0] == returnType {
		return true
	}
	switch out[0].Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

// initKernel panics on methods that cannot be served, since that is a table configuration error.
func initKernel(kf Kernel) {
	k := kf.SysemuKernel()
	if k.Log == nil {
		k.Log = log.L.Named("kernel")
	}
	if k.Strsize == 0 {
		k.Strsize = 30
	}
	k.Syscalls = make(map[string]*Syscall)
	instance := reflect.ValueOf(kf)
	typ := instance.Type()
	for i := 0; i < typ.NumMethod(); i++ {
		method := typ.Method(i)
		name := method.Name
		if reserved[name] {
			continue
		}
		if strings.HasPrefix(name, "Literal") {
			name = strings.Replace(name, "Literal", "", 1)
		} else if r, size := utf8.DecodeRuneInString(name); size <= 0 || !unicode.IsUpper(r) {
			continue
		}
		name = camelToSnakeCase(name)
		in := make([]reflect.Type, method.Type.NumIn()-1)
		for j := 1; j < method.Type.NumIn(); j++ {
			in[j-1] = method.Type.In(j)
		}
		callArg := len(in) > 0 && in[0] == callType
		if callArg {
			in = in[1:]
		}
		if len(in) > MaxSyscallArgs {
			panic(fmt.Sprintf("%T.%s takes %d syscall arguments (max %d)", kf, method.Name, len(in), MaxSyscallArgs))
		}
		out := make([]reflect.Type, method.Type.NumOut())
		for j := range out {
			out[j] = method.Type.Out(j)
		}
		if !validReturn(out) {
			panic(fmt.Sprintf("%T.%s returns %v, want an integer or SyscallReturn", kf, method.Name, out[0]))
		}
		k.Syscalls[name] = &Syscall{
			Name:     name,
			Kernel:   k,
			Instance: instance,
			Method:   method,
			In:       in,
			Out:      out,
			CallArg:  callArg,
		}
	}
}

// Lookup finds the method serving name on kf, or nil.
func Lookup(kf Kernel, name string) *Syscall {
	k := kf.SysemuKernel()
	if k.Syscalls == nil {
		initKernel(kf)
	}
	return k.Syscalls[name]
}
