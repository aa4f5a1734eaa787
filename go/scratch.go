package sysemu

import (
	"github.com/pkg/errors"

	"github.com/lunixbochs/sysemu/go/models/cpu"
)

// Guest memory handed out to syscall arguments built outside the guest.
const (
	ScratchBase = 0x10000000
	ScratchSize = 0x100000
)

type scratch struct {
	mem  *cpu.Mem
	next uint64
}

func (s *scratch) init(mem *cpu.Mem) error {
	s.mem = mem
	s.next = ScratchBase
	return errors.Wrap(mem.MemMapProt(ScratchBase, ScratchSize, cpu.PROT_READ|cpu.PROT_WRITE), "mapping scratch memory")
}

// Alloc reserves size zeroed bytes of guest memory, 8-byte aligned.
func (p *Process) Alloc(size uint64) (uint64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := &p.scratch
	if size == 0 {
		size = 1
	}
	size = (size + 7) &^ 7
	if s.next+size > ScratchBase+ScratchSize {
		return 0, errors.Errorf("scratch memory exhausted allocating %d bytes", size)
	}
	addr := s.next
	s.next += size
	return addr, nil
}

// AllocBytes copies p into fresh guest memory.
func (p *Process) AllocBytes(data []byte) (uint64, error) {
	addr, err := p.Alloc(uint64(len(data)))
	if err != nil {
		return 0, err
	}
	return addr, p.mem.MemWrite(addr, data)
}

// AllocString copies s into guest memory with a trailing NUL.
func (p *Process) AllocString(s string) (uint64, error) {
	return p.AllocBytes(append([]byte(s), 0))
}
