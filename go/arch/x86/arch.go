package x86

import (
	"encoding/binary"

	"github.com/lunixbochs/sysemu/go/models"
)

const (
	EAX = iota
	EBX
	ECX
	EDX
	ESI
	EDI
	EBP
	ESP
	EIP
	EFLAGS
)

var Arch = &models.Arch{
	Name:  "x86",
	Bits:  32,
	Order: binary.LittleEndian,
	Regs: map[int]string{
		EAX:    "eax",
		EBX:    "ebx",
		ECX:    "ecx",
		EDX:    "edx",
		ESI:    "esi",
		EDI:    "edi",
		EBP:    "ebp",
		ESP:    "esp",
		EIP:    "eip",
		EFLAGS: "eflags",
	},
}
