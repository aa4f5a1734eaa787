package models

import (
	"fmt"
	"strings"

	"github.com/mgutz/ansi"
)

var (
	chSame    = ansi.ColorCode("default:default")
	chNew     = ansi.ColorCode("default+bu:default")
	chPending = ansi.ColorCode("yellow")
	chError   = ansi.ColorCode("red")
	chOk      = ansi.ColorCode("green")
)

type ChangeMask struct {
	Old, New string
	Changed  bool
}

type Change struct {
	Old, New uint64
	Enum     int
	Name     string
}

func (c *Change) Changed() bool {
	return c.Old != c.New
}

// Mask splits the hex rendering of New into runs that differ from Old.
func (c *Change) Mask(digits int) []ChangeMask {
	hexFmt := fmt.Sprintf("%%0%dx", digits)
	s1, s2 := fmt.Sprintf(hexFmt, c.New), fmt.Sprintf(hexFmt, c.Old)
	if len(s1) != len(s2) {
		return []ChangeMask{{New: s1, Old: s2, Changed: true}}
	}
	var masks []ChangeMask
	pos, matching := 0, true
	for i := range s1 {
		if (s1[i] == s2[i]) != matching {
			if i > pos {
				masks = append(masks, ChangeMask{New: s1[pos:i], Old: s2[pos:i], Changed: !matching})
				pos = i
			}
			matching = !matching
		}
	}
	if pos < len(s1) {
		masks = append(masks, ChangeMask{New: s1[pos:], Old: s2[pos:], Changed: !matching})
	}
	return masks
}

func (c *Change) String(digits int, color bool) string {
	hexFmt := fmt.Sprintf("%%0%dx", digits)
	if !c.Changed() {
		return fmt.Sprintf(" %4s 0x"+hexFmt, c.Name, c.New)
	}
	if !color {
		return fmt.Sprintf("+%4s 0x"+hexFmt, c.Name, c.New)
	}
	out := []string{fmt.Sprintf(" %s%4s%s 0x", chNew, c.Name, ansi.Reset)}
	for _, mask := range c.Mask(digits) {
		col := chSame
		if mask.Changed {
			col = chNew
		}
		out = append(out, col+mask.New)
	}
	out = append(out, ansi.Reset)
	return strings.Join(out, "")
}

// StatusDiff remembers the last register dump so it can report what a syscall changed.
type StatusDiff struct {
	Bits    uint
	Color   bool
	oldRegs map[int]uint64
}

func (s *StatusDiff) Changes(regs []RegVal, onlyChanged bool) []*Change {
	cs := make([]*Change, 0, len(regs))
	for _, reg := range regs {
		c := &Change{New: reg.Val, Enum: reg.Enum, Name: reg.Name}
		if s.oldRegs != nil {
			c.Old = s.oldRegs[reg.Enum]
		} else {
			c.Old = reg.Val
		}
		if !onlyChanged || c.Changed() {
			cs = append(cs, c)
		}
	}
	s.oldRegs = make(map[int]uint64, len(regs))
	for _, r := range regs {
		s.oldRegs[r.Enum] = r.Val
	}
	return cs
}

func (s *StatusDiff) String(regs []RegVal, onlyChanged bool) string {
	var out []string
	for _, c := range s.Changes(regs, onlyChanged) {
		out = append(out, c.String(int(s.Bits/4), s.Color))
	}
	return strings.Join(out, "\n")
}

// Outcome renders the result column of a trap line.
func Outcome(pending bool, ret int64, color bool) string {
	var s, col string
	switch {
	case pending:
		s, col = "(pending)", chPending
	case ret < 0 && ret > -4096:
		s, col = fmt.Sprintf("= %d", ret), chError
	default:
		s, col = fmt.Sprintf("= %#x", uint64(ret)), chOk
	}
	if color {
		return col + s + ansi.Reset
	}
	return s
}
