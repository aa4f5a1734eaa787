package x86_64

import (
	"encoding/binary"

	"github.com/lunixbochs/sysemu/go/models"
)

const (
	RAX = iota
	RBX
	RCX
	RDX
	RSI
	RDI
	RBP
	RSP
	R8
	R9
	R10
	R11
	R12
	R13
	R14
	R15
	RIP
	EFLAGS
)

var Arch = &models.Arch{
	Name:  "x86_64",
	Bits:  64,
	Order: binary.LittleEndian,
	Regs: map[int]string{
		RAX:    "rax",
		RBX:    "rbx",
		RCX:    "rcx",
		RDX:    "rdx",
		RSI:    "rsi",
		RDI:    "rdi",
		RBP:    "rbp",
		RSP:    "rsp",
		R8:     "r8",
		R9:     "r9",
		R10:    "r10",
		R11:    "r11",
		R12:    "r12",
		R13:    "r13",
		R14:    "r14",
		R15:    "r15",
		RIP:    "rip",
		EFLAGS: "eflags",
	},
}
