package cpu

import (
	"github.com/ezrec/emu86/io"
	"github.com/ezrec/emu86/isa"
)

// Reg8 returns a byte register, the low or high half of ax, cx, dx or bx.
func (cpu *Cpu) Reg8(reg isa.Reg8) uint8 {
	word, high := reg.Word()
	if high {
		return uint8(cpu.Regs[word] >> 8)
	}
	return uint8(cpu.Regs[word])
}

// SetReg8 replaces a byte register, leaving the other half of its word.
func (cpu *Cpu) SetReg8(reg isa.Reg8, value uint8) {
	word, high := reg.Word()
	if high {
		cpu.Regs[word] = (cpu.Regs[word] & 0x00ff) | uint16(value)<<8
	} else {
		cpu.Regs[word] = (cpu.Regs[word] & 0xff00) | uint16(value)
	}
}

// Reg16 returns a word register.
func (cpu *Cpu) Reg16(reg isa.Reg16) uint16 {
	return cpu.Regs[reg]
}

// SetReg16 replaces a word register.
func (cpu *Cpu) SetReg16(reg isa.Reg16, value uint16) {
	cpu.Regs[reg] = value
}

// Sreg returns a segment register.
func (cpu *Cpu) Sreg(reg isa.Sreg) uint16 {
	return cpu.Sregs[reg]
}

// SetSreg replaces a segment register.
func (cpu *Cpu) SetSreg(reg isa.Sreg, value uint16) {
	cpu.Sregs[reg] = value
}

// Linear returns the 20-bit address of seg:off. The sum wraps at 32 bits.
func (cpu *Cpu) Linear(seg isa.Sreg, off uint16) uint32 {
	return Linear(cpu.Sregs[seg], off)
}

// Linear returns the address of the segment value and offset.
func Linear(seg, off uint16) uint32 {
	return uint32(seg)<<4 + uint32(off)
}

// ReadMem reads memory at seg:off. Unmapped memory reads as 0.
func (cpu *Cpu) ReadMem(seg isa.Sreg, off uint16, size io.Size) (value uint16) {
	value, _ = cpu.Memory.Read(cpu.Linear(seg, off), size)
	return
}

// WriteMem writes memory at seg:off. Writes to unmapped memory are dropped.
func (cpu *Cpu) WriteMem(seg isa.Sreg, off uint16, value uint16, size io.Size) {
	cpu.Memory.Write(cpu.Linear(seg, off), value, size)
}

// argSize is the access size of an operand.
func argSize(arg isa.Arg) io.Size {
	if arg.Bits() == 8 {
		return io.SIZE_BYTE
	}
	return io.SIZE_WORD
}

// ReadArg returns the value of an operand. Imm8 is sign extended.
func (cpu *Cpu) ReadArg(arg isa.Arg) (value uint16, err error) {
	switch a := arg.(type) {
	case isa.Reg8:
		value = uint16(cpu.Reg8(a))
	case isa.Reg16:
		value = cpu.Reg16(a)
	case isa.Sreg:
		value = cpu.Sreg(a)
	case isa.Imm8:
		value = uint16(int16(a))
	case isa.Uimm8:
		value = uint16(a)
	case isa.Imm16:
		value = uint16(a)
	case isa.Uimm16:
		value = uint16(a)
	case isa.Mem:
		err = ErrUnimplemented
	default:
		err = ErrOperand
	}
	return
}

// WriteArg stores value into a register operand, truncated to its width.
//
// Immediate operands are never destinations of a decoded instruction, so
// writing one panics.
func (cpu *Cpu) WriteArg(arg isa.Arg, value uint16) (err error) {
	switch a := arg.(type) {
	case isa.Reg8:
		cpu.SetReg8(a, uint8(value))
	case isa.Reg16:
		cpu.SetReg16(a, value)
	case isa.Sreg:
		cpu.SetSreg(a, value)
	case isa.Imm8, isa.Uimm8, isa.Imm16, isa.Uimm16:
		panic(f("cannot write to immediate %v", arg))
	case isa.Mem:
		err = ErrUnimplemented
	default:
		err = ErrOperand
	}
	return
}
