package cpu

import (
	"github.com/pkg/errors"
)

// Regs is a guest register file. Values are masked to the register width on write.
// Enums are kept in registration order so a dump is stable.
type Regs struct {
	mask  uint64
	enums []int
	vals  map[int]uint64
}

func NewRegs(bits uint, enums []int) *Regs {
	r := &Regs{
		mask:  ^uint64(0) >> (64 - bits),
		enums: append([]int(nil), enums...),
		vals:  make(map[int]uint64, len(enums)),
	}
	for _, e := range enums {
		r.vals[e] = 0
	}
	return r
}

func (r *Regs) Has(enum int) bool {
	_, ok := r.vals[enum]
	return ok
}

func (r *Regs) Enums() []int {
	return r.enums
}

func (r *Regs) RegRead(enum int) (uint64, error) {
	val, ok := r.vals[enum]
	if !ok {
		return 0, errors.Errorf("invalid register: %d", enum)
	}
	return val, nil
}

func (r *Regs) RegWrite(enum int, val uint64) error {
	if _, ok := r.vals[enum]; !ok {
		return errors.Errorf("invalid register: %d", enum)
	}
	r.vals[enum] = val & r.mask
	return nil
}

// ReadRegs reads a list of registers in order, stopping at the first invalid one.
func (r *Regs) ReadRegs(enums []int) ([]uint64, error) {
	ret := make([]uint64, len(enums))
	for i, e := range enums {
		val, err := r.RegRead(e)
		if err != nil {
			return nil, err
		}
		ret[i] = val
	}
	return ret, nil
}

// Snapshot copies every register value. Pass a previous snapshot as reuse to avoid an allocation.
func (r *Regs) Snapshot(reuse map[int]uint64) map[int]uint64 {
	if reuse == nil {
		reuse = make(map[int]uint64, len(r.vals))
	}
	for k, v := range r.vals {
		reuse[k] = v
	}
	return reuse
}

func (r *Regs) Restore(snap map[int]uint64) error {
	for k := range snap {
		if _, ok := r.vals[k]; !ok {
			return errors.Errorf("snapshot has unknown register: %d", k)
		}
	}
	for k, v := range snap {
		r.vals[k] = v & r.mask
	}
	return nil
}
