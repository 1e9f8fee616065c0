package isa

import (
	"fmt"
)

// Arg is an instruction operand.
//
// The set of implementations is closed: Reg8, Reg16, Sreg, Imm8, Uimm8,
// Imm16, Uimm16 and Mem. Consumers select on the concrete type.
type Arg interface {
	fmt.Stringer
	// Bits is the width of the operand, 8 or 16.
	Bits() int
	isArg()
}

// Reg8 selects one of the eight byte registers.
type Reg8 int

//go:generate go tool stringer -linecomment -type=Reg8
const (
	REG8_AL = Reg8(0) // al
	REG8_CL = Reg8(1) // cl
	REG8_DL = Reg8(2) // dl
	REG8_BL = Reg8(3) // bl
	REG8_AH = Reg8(4) // ah
	REG8_CH = Reg8(5) // ch
	REG8_DH = Reg8(6) // dh
	REG8_BH = Reg8(7) // bh
)

// Reg16 selects one of the eight word registers.
type Reg16 int

//go:generate go tool stringer -linecomment -type=Reg16
const (
	REG16_AX = Reg16(0) // ax
	REG16_CX = Reg16(1) // cx
	REG16_DX = Reg16(2) // dx
	REG16_BX = Reg16(3) // bx
	REG16_SP = Reg16(4) // sp
	REG16_BP = Reg16(5) // bp
	REG16_SI = Reg16(6) // si
	REG16_DI = Reg16(7) // di
)

// Sreg selects one of the four segment registers.
type Sreg int

//go:generate go tool stringer -linecomment -type=Sreg
const (
	SREG_ES = Sreg(0) // es
	SREG_CS = Sreg(1) // cs
	SREG_SS = Sreg(2) // ss
	SREG_DS = Sreg(3) // ds
)

// Reg8Of returns the byte register for a 3-bit selector.
func Reg8Of(sel byte) Reg8 {
	return Reg8(sel & 7)
}

// Reg16Of returns the word register for a 3-bit selector.
func Reg16Of(sel byte) Reg16 {
	return Reg16(sel & 7)
}

// SregOf returns the segment register for a 2-bit selector.
func SregOf(sel byte) Sreg {
	return Sreg(sel & 3)
}

// Word returns the word register holding the byte register, and whether
// the byte register is the high half.
func (r Reg8) Word() (reg Reg16, high bool) {
	return Reg16(r & 3), r >= REG8_AH
}

func (Reg8) Bits() int  { return 8 }
func (Reg16) Bits() int { return 16 }
func (Sreg) Bits() int  { return 16 }

func (Reg8) isArg()  {}
func (Reg16) isArg() {}
func (Sreg) isArg()  {}

// Imm8 is a signed byte immediate. It reads as a sign-extended word.
type Imm8 int8

// Uimm8 is an unsigned byte immediate.
type Uimm8 uint8

// Imm16 is a signed word immediate.
type Imm16 int16

// Uimm16 is an unsigned word immediate.
type Uimm16 uint16

func (Imm8) Bits() int   { return 8 }
func (Uimm8) Bits() int  { return 8 }
func (Imm16) Bits() int  { return 16 }
func (Uimm16) Bits() int { return 16 }

func (Imm8) isArg()   {}
func (Uimm8) isArg()  {}
func (Imm16) isArg()  {}
func (Uimm16) isArg() {}

func (imm Imm8) String() string   { return fmt.Sprintf("0x%02X", uint8(imm)) }
func (imm Uimm8) String() string  { return fmt.Sprintf("0x%02X", uint8(imm)) }
func (imm Imm16) String() string  { return fmt.Sprintf("0x%04X", uint16(imm)) }
func (imm Uimm16) String() string { return fmt.Sprintf("0x%04X", uint16(imm)) }

// Mem is a memory operand: a base register plus an optional displacement.
type Mem struct {
	Base     Reg16 // Base register.
	Disp     int32 // Displacement, valid when DispBits != 0.
	DispBits int   // Displacement width: 0, 8, 16 or 32.
	Wide     bool  // Set for a word access, clear for a byte access.
}

func (mem Mem) Bits() int {
	if mem.Wide {
		return 16
	}
	return 8
}

func (Mem) isArg() {}

func (mem Mem) String() string {
	switch {
	case mem.DispBits == 0:
		return fmt.Sprintf("[%v]", mem.Base)
	case mem.Disp < 0:
		return fmt.Sprintf("[%v-0x%X]", mem.Base, -int64(mem.Disp))
	default:
		return fmt.Sprintf("[%v+0x%X]", mem.Base, mem.Disp)
	}
}
