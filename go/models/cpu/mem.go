package cpu

import (
	"bytes"
	"encoding/binary"

	"github.com/pkg/errors"
)

// Mem is guest memory for a process with a fixed address width and byte order.
type Mem struct {
	bits  uint
	mask  uint64
	sim   *MemSim
	order binary.ByteOrder
}

func NewMem(bits uint, order binary.ByteOrder) *Mem {
	return &Mem{
		bits:  bits,
		mask:  ^uint64(0) >> (64 - bits),
		sim:   &MemSim{},
		order: order,
	}
}

func (m *Mem) Bits() uint                  { return m.bits }
func (m *Mem) ByteOrder() binary.ByteOrder { return m.order }
func (m *Mem) Mappings() Pages             { return m.sim.Mem }

func (m *Mem) MemMapProt(addr, size uint64, prot int) error {
	if (addr+size)&m.mask != addr+size {
		return errors.Errorf("region %#x-%#x outside %d-bit memory range", addr, addr+size, m.bits)
	}
	m.sim.Map(addr, size, prot, false)
	return nil
}

func (m *Mem) MemProt(addr, size uint64, prot int) error {
	if mapped, _ := m.sim.RangeValid(addr, size, 0); !mapped {
		return errors.New("range not mapped")
	}
	m.sim.Prot(addr, size, prot)
	return nil
}

// MemUnmap drops whatever is mapped in addr:addr+size. Holes in the range are fine.
func (m *Mem) MemUnmap(addr, size uint64) error {
	if addr+size < addr {
		return errors.Errorf("region %#x+%#x wraps", addr, size)
	}
	m.sim.Unmap(addr, size)
	return nil
}

func (m *Mem) MemReadInto(p []byte, addr uint64) error {
	return m.sim.Read(addr, p, 0)
}

// checkRead fails before a buffer of size bytes is allocated for an unreadable range.
func (m *Mem) checkRead(addr, size uint64, prot int) error {
	if gmap, gprot := m.sim.RangeValid(addr, size, prot); !gmap {
		return &MemError{Addr: addr, Size: int(size), Enum: MEM_READ_UNMAPPED}
	} else if !gprot {
		return &MemError{Addr: addr, Size: int(size), Enum: MEM_READ_PROT}
	}
	return nil
}

func (m *Mem) MemRead(addr, size uint64) ([]byte, error) {
	if err := m.checkRead(addr, size, 0); err != nil {
		return nil, err
	}
	p := make([]byte, size)
	if err := m.MemReadInto(p, addr); err != nil {
		return nil, err
	}
	return p, nil
}

func (m *Mem) MemWrite(addr uint64, p []byte) error {
	return m.sim.Write(addr, p, 0)
}

// ReadStrAt reads a NUL-terminated string, one page-sized chunk at a time.
func (m *Mem) ReadStrAt(addr uint64) (string, error) {
	var out []byte
	for {
		page := m.sim.Mem.Find(addr)
		if page == nil {
			return "", &MemError{Addr: addr, Size: 1, Enum: MEM_READ_UNMAPPED}
		}
		chunk := page.Data[addr-page.Addr:]
		if i := bytes.IndexByte(chunk, 0); i >= 0 {
			return string(append(out, chunk[:i]...)), nil
		}
		out = append(out, chunk...)
		addr = page.Addr + page.Size
	}
}

// Read while checking protections.
func (m *Mem) ReadProt(addr, size uint64, prot int) ([]byte, error) {
	if err := m.checkRead(addr, size, prot); err != nil {
		return nil, err
	}
	p := make([]byte, size)
	if err := m.sim.Read(addr, p, prot); err != nil {
		return nil, err
	}
	return p, nil
}

// Write while checking protections.
func (m *Mem) WriteProt(addr uint64, p []byte, prot int) error {
	return m.sim.Write(addr, p, prot)
}

func (m *Mem) ReadUint(addr uint64, size, prot int) (uint64, error) {
	if size > 8 {
		return 0, errors.Errorf("ReadUint size too large: %d > 8", size)
	}
	p, err := m.ReadProt(addr, uint64(size), prot)
	if err != nil {
		return 0, err
	}
	return UnpackUint(m.order, size, p)
}

func (m *Mem) WriteUint(addr uint64, size, prot int, val uint64) error {
	var buf [8]byte
	if size > 8 {
		return errors.Errorf("WriteUint size too large: %d > 8", size)
	}
	if _, err := PackUint(m.order, size, buf[:], val); err != nil {
		return err
	}
	return m.WriteProt(addr, buf[:size], prot)
}
