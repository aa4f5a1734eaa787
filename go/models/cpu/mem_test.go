package cpu

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

var asdf = []byte("asdf")

func TestMem8(t *testing.T) {
	mem := NewMem(8, binary.LittleEndian)
	require.NoError(t, mem.MemMapProt(0x10, 0x10, 0))
	require.Error(t, mem.MemMapProt(0x0, 0x1000, 0), "mapped memory outside range")
	require.Error(t, mem.MemWrite(0x1000, asdf), "write succeeded above mapped memory")
}

func TestMem(t *testing.T) {
	mappings := [][]uint64{
		{0x1000, 0x1000, PROT_READ | PROT_WRITE | PROT_EXEC},
		{0x2000, 0x1000, PROT_READ},
		{0x3000, 0x1000, PROT_READ | PROT_WRITE},
		{0x4000, 0x1000, PROT_READ | PROT_EXEC},
	}

	mem := NewMem(16, binary.LittleEndian)
	for _, v := range mappings {
		require.NoError(t, mem.MemMapProt(v[0], v[1], int(v[2])))
	}
	require.Error(t, mem.MemWrite(0, asdf), "write succeeded below mapped memory")
	require.Error(t, mem.MemWrite(0x6000, asdf), "write succeeded above mapped memory")
	for _, v := range mappings {
		require.NoError(t, mem.MemWrite(v[0], asdf))
		tmp, err := mem.MemRead(v[0], uint64(len(asdf)))
		require.NoError(t, err)
		require.Equal(t, asdf, tmp)
	}
	for _, v := range mappings {
		_, err := mem.ReadProt(v[0], v[1], int(v[2]))
		require.NoError(t, err)
		_, err = mem.ReadProt(v[0], v[1], 8)
		require.Error(t, err)
	}
}

func TestMemReadStr(t *testing.T) {
	mem := NewMem(32, binary.LittleEndian)
	require.NoError(t, mem.MemMapProt(0x1000, 0x1000, PROT_ALL))
	require.NoError(t, mem.MemMapProt(0x2000, 0x1000, PROT_ALL))

	// crosses a page boundary
	require.NoError(t, mem.MemWrite(0x1ffe, []byte("hello\x00")))
	s, err := mem.ReadStrAt(0x1ffe)
	require.NoError(t, err)
	require.Equal(t, "hello", s)

	_, err = mem.ReadStrAt(0x8000)
	require.Error(t, err)
}

func TestMemUint(t *testing.T) {
	rawtest := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	ltable := map[int]uint64{
		1: 0x1,
		2: 0x0201,
		4: 0x04030201,
		8: 0x0807060504030201,
	}
	btable := map[int]uint64{
		1: 0x1,
		2: 0x0102,
		4: 0x01020304,
		8: 0x0102030405060708,
	}

	meml := NewMem(32, binary.LittleEndian)
	memb := NewMem(32, binary.BigEndian)
	require.NoError(t, meml.MemMapProt(0x1000, 0x1000, PROT_READ|PROT_WRITE))
	require.NoError(t, memb.MemMapProt(0x1000, 0x1000, PROT_READ|PROT_WRITE))
	require.NoError(t, meml.MemWrite(0x1000, rawtest))
	require.NoError(t, memb.MemWrite(0x1000, rawtest))

	for size, val := range ltable {
		n, err := meml.ReadUint(0x1000, size, PROT_READ)
		require.NoError(t, err)
		require.Equal(t, val, n)
	}
	for size, val := range btable {
		n, err := memb.ReadUint(0x1000, size, PROT_READ)
		require.NoError(t, err)
		require.Equal(t, val, n)
	}
	for size, val := range ltable {
		require.NoError(t, meml.WriteUint(0x1000, size, PROT_WRITE, val))
		n, err := meml.ReadUint(0x1000, size, PROT_READ)
		require.NoError(t, err)
		require.Equal(t, val, n)
	}
	_, err := meml.ReadUint(0x1000, 3, PROT_READ)
	require.Error(t, err)
}

func TestMemReadOversize(t *testing.T) {
	mem := NewMem(64, binary.LittleEndian)
	require.NoError(t, mem.MemMapProt(0x1000, 0x1000, PROT_READ))
	require.NotPanics(t, func() {
		_, err := mem.MemRead(0x1000, ^uint64(0))
		require.Error(t, err)
		_, err = mem.ReadProt(0x1000, 0x2000, PROT_READ)
		require.Error(t, err)
	})
	mapped, _ := mem.sim.RangeValid(0x1800, ^uint64(0)-0x100, 0)
	require.False(t, mapped, "wrapped range reported mapped")
}
