package arm64

import (
	"encoding/binary"
	"fmt"

	"github.com/lunixbochs/sysemu/go/models"
)

// X0-X30 are 0-30
const (
	SP = 31 + iota
	PC
	NZCV
)

var Arch = &models.Arch{
	Name:  "arm64",
	Bits:  64,
	Order: binary.LittleEndian,
	Regs: map[int]string{
		SP:   "sp",
		PC:   "pc",
		NZCV: "nzcv",
	},
}

func init() {
	for i := 0; i <= 30; i++ {
		Arch.Regs[i] = fmt.Sprintf("x%d", i)
	}
}
