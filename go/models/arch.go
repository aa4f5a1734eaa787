package models

import (
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/lunixbochs/fvbommel-util/sortorder"
	"github.com/pkg/errors"

	"github.com/lunixbochs/sysemu/go/models/cpu"
)

type Reg struct {
	Enum int
	Name string
}

type RegVal struct {
	Reg
	Val uint64
}

type regList []Reg

func (r regList) Len() int           { return len(r) }
func (r regList) Swap(i, j int)      { r[i], r[j] = r[j], r[i] }
func (r regList) Less(i, j int) bool { return sortorder.NaturalLess(r[i].Name, r[j].Name) }

type regMap map[int]string

func (r regMap) Items() regList {
	ret := make(regList, 0, len(r))
	for e, n := range r {
		ret = append(ret, Reg{e, n})
	}
	return ret
}

// Arch describes a guest register file and the OS calling conventions it supports.
type Arch struct {
	Name  string
	Bits  uint
	Order binary.ByteOrder
	Regs  regMap
	OS    map[string]*OS

	// sorted for RegDump
	regList regList
}

func (a *Arch) RegisterOS(os *OS) {
	if a.OS == nil {
		a.OS = make(map[string]*OS)
	}
	if _, ok := a.OS[os.Name]; ok {
		panic("Duplicate OS " + os.Name)
	}
	a.OS[os.Name] = os
}

func (a *Arch) sorted() regList {
	if a.regList == nil {
		rl := a.Regs.Items()
		sort.Sort(rl)
		a.regList = rl
	}
	return a.regList
}

// RegEnums returns every register enum in natural name order.
func (a *Arch) RegEnums() []int {
	rl := a.sorted()
	ret := make([]int, len(rl))
	for i, r := range rl {
		ret[i] = r.Enum
	}
	return ret
}

func (a *Arch) RegName(enum int) string {
	if name, ok := a.Regs[enum]; ok {
		return name
	}
	return fmt.Sprintf("r%d", enum)
}

func (a *Arch) RegDump(r cpu.RegFile) ([]RegVal, error) {
	rl := a.sorted()
	ret := make([]RegVal, len(rl))
	for i, reg := range rl {
		val, err := r.RegRead(reg.Enum)
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", reg.Name)
		}
		ret[i] = RegVal{reg, val}
	}
	return ret, nil
}

// OS is a syscall calling convention on one Arch.
type OS struct {
	Name string
	// register holding the syscall number on trap
	NumReg int
	// registers holding syscall arguments, in slot order
	ArgRegs []int
	// register receiving the encoded return value
	RetReg int
	// syscall number -> name
	Syscalls map[int]string
	// method kernels serving this OS, most specific first
	Kernels func() []interface{}
}

func (o *OS) String() string {
	return fmt.Sprintf("<OS %s>", o.Name)
}

// Validate checks that every register the convention names exists on a.
func (o *OS) Validate(a *Arch, nargs int) error {
	if len(o.ArgRegs) != nargs {
		return errors.Errorf("%s/%s: %d argument registers, need %d", a.Name, o.Name, len(o.ArgRegs), nargs)
	}
	regs := append([]int{o.NumReg, o.RetReg}, o.ArgRegs...)
	for _, r := range regs {
		if _, ok := a.Regs[r]; !ok {
			return errors.Errorf("%s/%s: register %d not in register file", a.Name, o.Name, r)
		}
	}
	return nil
}
