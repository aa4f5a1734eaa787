package models

import (
	"encoding/binary"
	"io"

	"github.com/lunixbochs/struc"

	"github.com/lunixbochs/sysemu/go/models/cpu"
)

type StrucStream struct {
	Stream io.ReadWriter
	Order  binary.ByteOrder
}

func NewStrucStream(mem cpu.Memory, addr uint64, order binary.ByteOrder) *StrucStream {
	return &StrucStream{Stream: &MemStream{Mem: mem, Addr: addr}, Order: order}
}

func (s *StrucStream) Pack(i interface{}) error {
	return struc.PackWithOrder(s.Stream, i, s.Order)
}

func (s *StrucStream) Unpack(i interface{}) error {
	return struc.UnpackWithOrder(s.Stream, i, s.Order)
}

func (s *StrucStream) Sizeof(i interface{}) (int, error) {
	return struc.Sizeof(i)
}
