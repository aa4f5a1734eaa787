package cpu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPageFind(t *testing.T) {
	mem := Pages{
		&Page{Addr: 0x1000, Size: 0x1000},
		&Page{Addr: 0x2000, Size: 0x1000},
		&Page{Addr: 0x4000, Size: 0x2000},
		&Page{Addr: 0x6000, Size: 0x2000},
	}
	require.Equal(t, mem[0], mem.Find(0x1000))
	require.Equal(t, mem[0], mem.Find(0x1fff))
	require.Equal(t, mem[1], mem.Find(0x2000))
	require.Equal(t, mem[3], mem.Find(0x7fff))
	require.Nil(t, mem.Find(0x3000))
	require.Nil(t, mem.Find(0x1))
	require.Nil(t, mem.Find(0x10000))
}

func TestPageSplit(t *testing.T) {
	p := &Page{Addr: 0x1000, Size: 0x3000, Prot: PROT_READ, Data: make([]byte, 0x3000)}
	p.Data[0x1000] = 0xaa
	left, right := p.Split(0x2000, 0x1000)
	require.NotNil(t, left)
	require.NotNil(t, right)
	require.Equal(t, uint64(0x1000), left.Addr)
	require.Equal(t, uint64(0x1000), left.Size)
	require.Equal(t, uint64(0x3000), right.Addr)
	require.Equal(t, uint64(0x2000), p.Addr)
	require.Len(t, p.Data, 0x1000)
	require.Equal(t, byte(0xaa), p.Data[0])
	require.Equal(t, "0x2000-0x3000 r--", p.String())
}
