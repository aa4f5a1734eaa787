package arm

import (
	"encoding/binary"
	"fmt"

	"github.com/lunixbochs/sysemu/go/models"
)

const (
	R0 = iota
	R1
	R2
	R3
	R4
	R5
	R6
	R7
	R8
	R9
	R10
	R11
	R12
	SP
	LR
	PC
	CPSR
)

var Arch = &models.Arch{
	Name:  "arm",
	Bits:  32,
	Order: binary.LittleEndian,
	Regs: map[int]string{
		SP:   "sp",
		LR:   "lr",
		PC:   "pc",
		CPSR: "cpsr",
	},
}

func init() {
	for i := R0; i <= R12; i++ {
		Arch.Regs[i] = fmt.Sprintf("r%d", i)
	}
}
