package common

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/lunixbochs/sysemu/go/models"
	"github.com/lunixbochs/sysemu/go/models/cpu"
)

// Typed syscall parameters for method kernels.
type (
	// guest pointer the kernel reads from
	Buf struct {
		Addr  uint64
		Mem   cpu.Memory
		Order binary.ByteOrder
	}
	// guest pointer the kernel writes to
	Obuf struct{ Buf }
	Len  uint64
	Off  int64
	Fd   int32
	Ptr  uint64
)

func NewBuf(p Process, addr uint64) Buf {
	return Buf{Addr: addr, Mem: p.Mem(), Order: p.ByteOrder()}
}

func (b Buf) IsNull() bool {
	return b.Addr == 0
}

func (b Buf) Struc() *models.StrucStream {
	return models.NewStrucStream(b.Mem, b.Addr, b.Order)
}

func (b Buf) Pack(i interface{}) error {
	return errors.Wrap(b.Struc().Pack(i), "struc.Pack() failed")
}

func (b Buf) Unpack(i interface{}) error {
	return errors.Wrap(b.Struc().Unpack(i), "struc.Unpack() failed")
}

func (b Buf) Sizeof(i interface{}) (int, error) {
	n, err := b.Struc().Sizeof(i)
	return n, errors.Wrap(err, "struc.Sizeof() failed")
}

func (b Buf) Read(n uint64) ([]byte, error) {
	return b.Mem.MemRead(b.Addr, n)
}

func (b Buf) Write(p []byte) error {
	return b.Mem.MemWrite(b.Addr, p)
}

func (b Buf) Uint32() (uint32, error) {
	p, err := b.Read(4)
	if err != nil {
		return 0, err
	}
	return b.Order.Uint32(p), nil
}
