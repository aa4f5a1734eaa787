package cpu

import (
	"fmt"
	"sort"
)

type MemError struct {
	Addr uint64
	Size int
	Enum int
}

func (m *MemError) Error() string {
	reason := "memory error"
	switch m.Enum {
	case MEM_READ_UNMAPPED:
		reason = "unmapped read"
	case MEM_WRITE_UNMAPPED:
		reason = "unmapped write"
	case MEM_READ_PROT:
		reason = "protected read"
	case MEM_WRITE_PROT:
		reason = "protected write"
	}
	return fmt.Sprintf("%s at %#x(%d)", reason, m.Addr, m.Size)
}

// MemSim is a sorted list of non-overlapping pages.
type MemSim struct {
	Mem Pages
}

// RangeValid reports whether addr:addr+size is fully mapped, and whether every
// page covering it grants the whole prot mask.
func (m *MemSim) RangeValid(addr, size uint64, prot int) (mapGood bool, protGood bool) {
	end := addr + size
	if end < addr {
		return false, false
	}
	first := m.Mem.bsearch(addr)
	if first == -1 {
		return false, false
	}
	protGood = true
	for _, mm := range m.Mem[first:] {
		if !mm.Contains(addr) {
			break
		}
		if prot > 0 && mm.Prot&prot != prot {
			protGood = false
		}
		if addr = mm.Addr + mm.Size; addr >= end {
			break
		}
	}
	return addr >= end, protGood
}

// Map adds addr:addr+size with prot, replacing any overlap.
// Unless zero is set, bytes already mapped in the range are carried over.
func (m *MemSim) Map(addr, size uint64, prot int, zero bool) *Page {
	data := make([]byte, size)
	if !zero {
		m.copyOut(addr, data)
	}
	m.Unmap(addr, size)
	page := &Page{Addr: addr, Size: size, Prot: prot, Data: data}
	m.Mem = append(m.Mem, page)
	sort.Sort(m.Mem)
	return page
}

func (m *MemSim) Unmap(addr, size uint64) {
	m.Mem = m.carve(addr, size, func(*Page) bool { return false })
}

func (m *MemSim) Prot(addr, size uint64, prot int) {
	m.Mem = m.carve(addr, size, func(mm *Page) bool {
		mm.Prot = prot
		return true
	})
}

// carve splits every page overlapping addr:addr+size at the range boundaries.
// keep decides whether the overlapping middle piece stays mapped.
func (m *MemSim) carve(addr, size uint64, keep func(*Page) bool) Pages {
	tmp := make(Pages, 0, len(m.Mem))
	for _, mm := range m.Mem {
		oaddr, osize, ok := mm.Intersect(addr, size)
		if !ok {
			tmp = append(tmp, mm)
			continue
		}
		left, right := mm.Split(oaddr, osize)
		if left != nil {
			tmp = append(tmp, left)
		}
		if keep(mm) {
			tmp = append(tmp, mm)
		}
		if right != nil {
			tmp = append(tmp, right)
		}
	}
	return tmp
}

// copyOut copies whatever is mapped in addr:addr+len(p), leaving holes untouched.
func (m *MemSim) copyOut(addr uint64, p []byte) {
	for _, mm := range m.Mem {
		if oaddr, osize, ok := mm.Intersect(addr, uint64(len(p))); ok {
			copy(p[oaddr-addr:oaddr-addr+osize], mm.Data[oaddr-mm.Addr:])
		}
	}
}

func (m *MemSim) Read(addr uint64, p []byte, prot int) error {
	if gmap, gprot := m.RangeValid(addr, uint64(len(p)), prot); !gmap {
		return &MemError{Addr: addr, Size: len(p), Enum: MEM_READ_UNMAPPED}
	} else if !gprot {
		return &MemError{Addr: addr, Size: len(p), Enum: MEM_READ_PROT}
	}
	for _, mm := range m.Mem[m.Mem.bsearch(addr):] {
		if len(p) == 0 || !mm.Contains(addr) {
			break
		}
		n := copy(p, mm.Data[addr-mm.Addr:])
		addr, p = addr+uint64(n), p[n:]
	}
	return nil
}

func (m *MemSim) Write(addr uint64, p []byte, prot int) error {
	if gmap, gprot := m.RangeValid(addr, uint64(len(p)), prot); !gmap {
		return &MemError{Addr: addr, Size: len(p), Enum: MEM_WRITE_UNMAPPED}
	} else if !gprot {
		return &MemError{Addr: addr, Size: len(p), Enum: MEM_WRITE_PROT}
	}
	for _, mm := range m.Mem[m.Mem.bsearch(addr):] {
		if len(p) == 0 || !mm.Contains(addr) {
			break
		}
		n := copy(mm.Data[addr-mm.Addr:], p)
		addr, p = addr+uint64(n), p[n:]
	}
	return nil
}
