package models

import (
	"github.com/lunixbochs/sysemu/go/models/cpu"
)

// MemStream is a sequential reader/writer over guest memory starting at Addr.
type MemStream struct {
	Mem  cpu.Memory
	Addr uint64
}

func (m *MemStream) Read(p []byte) (int, error) {
	if err := m.Mem.MemReadInto(p, m.Addr); err != nil {
		return 0, err
	}
	m.Addr += uint64(len(p))
	return len(p), nil
}

func (m *MemStream) Write(p []byte) (int, error) {
	if err := m.Mem.MemWrite(m.Addr, p); err != nil {
		return 0, err
	}
	m.Addr += uint64(len(p))
	return len(p), nil
}
