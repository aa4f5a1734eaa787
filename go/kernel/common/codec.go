package common

import (
	"reflect"

	"github.com/lunixbochs/argjoy"
)

// argCodec converts raw argument registers into typed parameters for p.
func argCodec(p Process) func(arg interface{}, vals []interface{}) error {
	return func(arg interface{}, vals []interface{}) error {
		reg, ok := vals[0].(uint64)
		if !ok {
			return argjoy.NoMatch
		}
		switch v := arg.(type) {
		case *Buf:
			*v = NewBuf(p, reg)
		case *Obuf:
			*v = Obuf{NewBuf(p, reg)}
		case *Len:
			*v = Len(reg)
		case *Off:
			*v = Off(reg)
		case *Fd:
			*v = Fd(reg)
		case *Ptr:
			*v = Ptr(reg)
		case *string:
			s, err := p.Mem().ReadStrAt(reg)
			if err != nil {
				return err
			}
			*v = s
		default:
			return unpackStruct(p, arg, reg)
		}
		return nil
	}
}

// unpackStruct fills a *T parameter, where T is a struct, from guest memory at reg.
// A null guest pointer leaves the parameter nil.
func unpackStruct(p Process, arg interface{}, reg uint64) error {
	rv := reflect.ValueOf(arg)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Ptr || rv.Elem().Type().Elem().Kind() != reflect.Struct {
		return argjoy.NoMatch
	}
	if reg == 0 {
		return nil
	}
	val := reflect.New(rv.Elem().Type().Elem())
	if err := NewBuf(p, reg).Unpack(val.Interface()); err != nil {
		return err
	}
	rv.Elem().Set(val)
	return nil
}
