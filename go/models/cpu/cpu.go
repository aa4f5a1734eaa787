package cpu

// Memory is the guest memory surface syscall executors are allowed to touch.
type Memory interface {
	MemRead(addr, size uint64) ([]byte, error)
	MemReadInto(p []byte, addr uint64) error
	MemWrite(addr uint64, p []byte) error
	ReadStrAt(addr uint64) (string, error)
}

// RegFile is the register surface of one guest thread.
type RegFile interface {
	RegRead(reg int) (uint64, error)
	RegWrite(reg int, val uint64) error
}

var (
	_ Memory  = (*Mem)(nil)
	_ RegFile = (*Regs)(nil)
)
