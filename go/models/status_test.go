package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChangeMask(t *testing.T) {
	c := &Change{Old: 0x1200, New: 0x1234, Name: "rax"}
	require.True(t, c.Changed())
	masks := c.Mask(4)
	require.Equal(t, []ChangeMask{
		{New: "12", Old: "12", Changed: false},
		{New: "34", Old: "00", Changed: true},
	}, masks)
	require.Equal(t, "+ rax 0x1234", c.String(4, false))
}

func TestStatusDiff(t *testing.T) {
	s := &StatusDiff{Bits: 16}
	regs := []RegVal{{Reg{1, "rax"}, 1}, {Reg{2, "rdi"}, 2}}
	require.Empty(t, s.Changes(regs, true))

	regs[0].Val = 5
	cs := s.Changes(regs, true)
	require.Len(t, cs, 1)
	require.Equal(t, "rax", cs[0].Name)
	require.Equal(t, uint64(1), cs[0].Old)
}

func TestOutcome(t *testing.T) {
	require.Equal(t, "(pending)", Outcome(true, 0, false))
	require.Equal(t, "= -38", Outcome(false, -38, false))
	require.Equal(t, "= 0x1000", Outcome(false, 0x1000, false))
}
