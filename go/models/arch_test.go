package models

import (
	"encoding/binary"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lunixbochs/sysemu/go/models/cpu"
)

func testArch() *Arch {
	a := &Arch{
		Name:  "toy",
		Bits:  32,
		Order: binary.LittleEndian,
		Regs:  map[int]string{0: "r10", 1: "r2", 2: "r1", 3: "pc"},
	}
	a.RegisterOS(&OS{Name: "linux", NumReg: 3, RetReg: 2, ArgRegs: []int{2, 1}})
	return a
}

func TestRegDump(t *testing.T) {
	a := testArch()
	require.Equal(t, []int{3, 2, 1, 0}, a.RegEnums())
	require.Equal(t, "r2", a.RegName(1))
	require.Equal(t, "r9", a.RegName(9))

	regs := cpu.NewRegs(a.Bits, a.RegEnums())
	require.NoError(t, regs.RegWrite(0, 10))
	dump, err := a.RegDump(regs)
	require.NoError(t, err)
	require.Len(t, dump, 4)
	require.Equal(t, "r10", dump[3].Name)
	require.Equal(t, uint64(10), dump[3].Val)

	_, err = a.RegDump(cpu.NewRegs(a.Bits, []int{0}))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	a := testArch()
	os := a.OS["linux"]
	require.Equal(t, "<OS linux>", os.String())
	require.NoError(t, os.Validate(a, 2))
	require.Error(t, os.Validate(a, 6))

	os.RetReg = 42
	require.Error(t, os.Validate(a, 2))
	require.Panics(t, func() { a.RegisterOS(&OS{Name: "linux"}) })
}

func TestConfig(t *testing.T) {
	c := DefaultConfig()
	require.NoError(t, c.LoadJSON([]byte(`{"arch": "arm64", "trace_sys": true}`)))
	require.Equal(t, "arm64", c.Arch)
	require.Equal(t, "linux", c.OS)
	require.True(t, c.TraceSys)
	require.Equal(t, 30, c.Strsize)
	require.Error(t, c.LoadJSON([]byte(`{`)))
}

func TestUnameStruc(t *testing.T) {
	mem := cpu.NewMem(64, binary.LittleEndian)
	require.NoError(t, mem.MemMapProt(0x1000, 0x1000, cpu.PROT_READ|cpu.PROT_WRITE))
	u := &Uname{Sysname: "Linux", Machine: "aarch64", Release: strings.Repeat("x", 100)}
	uts := u.Utsname()
	require.Equal(t, byte('x'), uts.Release[63])
	require.Equal(t, byte(0), uts.Release[64])

	s := NewStrucStream(mem, 0x1000, binary.LittleEndian)
	n, err := s.Sizeof(uts)
	require.NoError(t, err)
	require.Equal(t, 6*65, n)
	require.NoError(t, s.Pack(uts))

	name, err := mem.ReadStrAt(0x1000 + 4*65)
	require.NoError(t, err)
	require.Equal(t, "aarch64", name)

	var out Utsname
	require.NoError(t, NewStrucStream(mem, 0x1000, binary.LittleEndian).Unpack(&out))
	require.Equal(t, *uts, out)
}

func TestMemStream(t *testing.T) {
	mem := cpu.NewMem(32, binary.BigEndian)
	require.NoError(t, mem.MemMapProt(0x1000, 0x1000, cpu.PROT_READ|cpu.PROT_WRITE))
	s := &MemStream{Mem: mem, Addr: 0x1ffe}
	n, err := s.Write([]byte{1, 2})
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, uint64(0x2000), s.Addr)
	_, err = s.Write([]byte{3})
	require.Error(t, err)
}
