package cpu

import (
	"cmp"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/ezrec/emu86/isa"
)

// Execute executes a single decoded instruction, and advances ip past it.
//
// On error, no register other than those already written is restored, and
// ip is left at the faulting instruction.
func (cpu *Cpu) Execute(inst isa.Inst) (err error) {
	op := inst.Op
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(op), err)
		}
	}()

	if !op.Executable() {
		err = ErrNotExecutable
		return
	}

	next_ip := cpu.Ip + uint16(inst.Size)

	switch op.Mnemonic {
	case isa.OP_NOP:
		// pass
	case isa.OP_ADD, isa.OP_ADC, isa.OP_SBB, isa.OP_SUB,
		isa.OP_AND, isa.OP_OR, isa.OP_XOR, isa.OP_CMP:
		err = cpu.dyadic(op)
	case isa.OP_PUSH:
		var value uint16
		value, err = cpu.ReadArg(op.Args[0])
		if err != nil {
			return
		}
		cpu.Push(value)
	case isa.OP_POP:
		err = cpu.WriteArg(op.Args[0], cpu.Pop())
	case isa.OP_CALL:
		var rel uint16
		rel, err = cpu.ReadArg(op.Args[0])
		if err != nil {
			return
		}
		cpu.Push(next_ip)
		next_ip += rel
	case isa.OP_RET:
		next_ip = cpu.Pop()
		if len(op.Args) == 1 {
			var release uint16
			release, err = cpu.ReadArg(op.Args[0])
			if err != nil {
				return
			}
			cpu.Regs[isa.REG16_SP] += release
		}
	case isa.OP_JMP:
		var rel uint16
		rel, err = cpu.ReadArg(op.Args[0])
		if err != nil {
			return
		}
		next_ip += rel
	case isa.OP_JCC:
		if cpu.Condition(op.Cond) {
			var rel uint16
			rel, err = cpu.ReadArg(op.Args[0])
			if err != nil {
				return
			}
			next_ip += rel
		}
	case isa.OP_JMP_FAR:
		var seg, off uint16
		seg, err = cpu.ReadArg(op.Args[0])
		if err != nil {
			return
		}
		off, err = cpu.ReadArg(op.Args[1])
		if err != nil {
			return
		}
		cpu.SetSreg(isa.SREG_CS, seg)
		next_ip = off
	case isa.OP_AAA:
		cpu.aaa()
	case isa.OP_AAS:
		cpu.aas()
	case isa.OP_AAM, isa.OP_AAD:
		var base uint16
		base, err = cpu.ReadArg(op.Args[0])
		if err != nil {
			return
		}
		if op.Mnemonic == isa.OP_AAM {
			err = cpu.aam(uint8(base))
		} else {
			cpu.aad(uint8(base))
		}
	case isa.OP_DAA:
		cpu.daa()
	case isa.OP_DAS:
		cpu.das()
	case isa.OP_INC, isa.OP_DEC:
		err = cpu.incdec(op)
	case isa.OP_TEST:
		var a, b uint16
		a, err = cpu.ReadArg(op.Args[0])
		if err != nil {
			return
		}
		b, err = cpu.ReadArg(op.Args[1])
		if err != nil {
			return
		}
		cpu.ClearFlag(FLAG_CF)
		cpu.ClearFlag(FLAG_OF)
		cpu.signZero(a&b, op.Args[0].Bits())
	case isa.OP_XCHG:
		var a, b uint16
		a, err = cpu.ReadArg(op.Args[0])
		if err != nil {
			return
		}
		b, err = cpu.ReadArg(op.Args[1])
		if err != nil {
			return
		}
		err = cpu.WriteArg(op.Args[0], b)
		if err != nil {
			return
		}
		err = cpu.WriteArg(op.Args[1], a)
	case isa.OP_MOV:
		var value uint16
		value, err = cpu.ReadArg(op.Args[1])
		if err != nil {
			return
		}
		err = cpu.WriteArg(op.Args[0], value)
	case isa.OP_LEA:
		err = ErrUnimplemented
	case isa.OP_IN:
		var port uint16
		port, err = cpu.ReadArg(op.Args[1])
		if err != nil {
			return
		}
		value, _ := cpu.Ports.Read(port, argSize(op.Args[0]))
		err = cpu.WriteArg(op.Args[0], value)
	case isa.OP_OUT:
		var port, value uint16
		port, err = cpu.ReadArg(op.Args[0])
		if err != nil {
			return
		}
		value, err = cpu.ReadArg(op.Args[1])
		if err != nil {
			return
		}
		cpu.Ports.Write(port, value, argSize(op.Args[1]))
	case isa.OP_CBW:
		al := int8(cpu.Reg8(isa.REG8_AL))
		cpu.SetReg16(isa.REG16_AX, uint16(int16(al)))
	case isa.OP_CWD:
		ax := int16(cpu.Reg16(isa.REG16_AX))
		cpu.SetReg16(isa.REG16_DX, uint16(int32(ax)>>16))
	case isa.OP_HLT:
		logrus.WithFields(logrus.Fields{
			"cs": cpu.Sreg(isa.SREG_CS),
			"ip": cpu.Ip,
		}).Info("cpu: halted")
		cpu.Halted = true
	case isa.OP_CMC:
		cpu.ToggleFlag(FLAG_CF)
	case isa.OP_CLC:
		cpu.ClearFlag(FLAG_CF)
	case isa.OP_STC:
		cpu.SetFlag(FLAG_CF)
	case isa.OP_CLI:
		cpu.ClearFlag(FLAG_IF)
	case isa.OP_STI:
		cpu.SetFlag(FLAG_IF)
	case isa.OP_CLD:
		cpu.ClearFlag(FLAG_DF)
	case isa.OP_STD:
		cpu.SetFlag(FLAG_DF)
	default:
		err = ErrUnimplemented
	}

	if err != nil {
		return
	}

	cpu.Ip = next_ip
	cpu.Ticks++

	return
}

// Condition evaluates a branch condition over the flag word.
//
// The overflow conditions test the carry flag, as no operation computes
// overflow yet.
func (cpu *Cpu) Condition(cond isa.Cond) (taken bool) {
	cf := cpu.IsSet(FLAG_CF)
	zf := cpu.IsSet(FLAG_ZF)
	sf := cpu.IsSet(FLAG_SF)
	of := cpu.IsSet(FLAG_OF)
	pf := cpu.IsSet(FLAG_PF)

	switch cond {
	case isa.COND_O:
		taken = cf
	case isa.COND_NO:
		taken = !cf
	case isa.COND_B:
		taken = cf
	case isa.COND_NB:
		taken = !cf
	case isa.COND_E:
		taken = zf
	case isa.COND_NE:
		taken = !zf
	case isa.COND_BE:
		taken = cf || zf
	case isa.COND_NBE:
		taken = !cf && !zf
	case isa.COND_S:
		taken = sf
	case isa.COND_NS:
		taken = !sf
	case isa.COND_P:
		taken = pf
	case isa.COND_NP:
		taken = !pf
	case isa.COND_L:
		taken = sf != of
	case isa.COND_NL:
		taken = sf == of
	case isa.COND_LE:
		taken = zf || sf != of
	case isa.COND_NLE:
		taken = !zf && sf == of
	}

	return
}

// compareFlags updates the carry and zero flags from an unsigned
// comparison. Only the flag named by the outcome changes: less sets carry,
// equal sets zero, greater clears carry.
func (cpu *Cpu) compareFlags(a, b uint16) {
	switch cmp.Compare(a, b) {
	case -1:
		cpu.SetFlag(FLAG_CF)
	case 0:
		cpu.SetFlag(FLAG_ZF)
	default:
		cpu.ClearFlag(FLAG_CF)
	}
}

// signedFlags updates the sign and zero flags from a comparison of the
// operands as signed words. Byte operands are zero extended, so they never
// compare as negative.
func (cpu *Cpu) signedFlags(a, b uint16) {
	switch cmp.Compare(int16(a), int16(b)) {
	case -1:
		cpu.SetFlag(FLAG_SF)
	case 0:
		cpu.SetFlag(FLAG_ZF)
	default:
		cpu.ClearFlag(FLAG_SF)
	}
}

// signZero sets the sign and zero flags from a result at the operand width.
func (cpu *Cpu) signZero(value uint16, bits int) {
	if bits == 8 {
		value &= 0xff
		cpu.AssignFlag(FLAG_SF, value&0x80 != 0)
	} else {
		cpu.AssignFlag(FLAG_SF, value&0x8000 != 0)
	}
	cpu.AssignFlag(FLAG_ZF, value == 0)
}

func (cpu *Cpu) carry() uint16 {
	if cpu.IsSet(FLAG_CF) {
		return 1
	}
	return 0
}

// dyadic executes the eight arithmetic and logic operations.
func (cpu *Cpu) dyadic(op isa.Op) (err error) {
	dst, src := op.Args[0], op.Args[1]

	a, err := cpu.ReadArg(dst)
	if err != nil {
		return
	}
	b, err := cpu.ReadArg(src)
	if err != nil {
		return
	}

	var result uint16
	switch op.Mnemonic {
	case isa.OP_ADD:
		result = a + b
	case isa.OP_ADC:
		result = a + b + cpu.carry()
	case isa.OP_SBB:
		result = a - b - cpu.carry()
	case isa.OP_SUB, isa.OP_CMP:
		result = a - b
	case isa.OP_AND:
		result = a & b
	case isa.OP_OR:
		result = a | b
	case isa.OP_XOR:
		result = a ^ b
	}

	cpu.compareFlags(a, b)

	if op.Mnemonic == isa.OP_CMP {
		cpu.signedFlags(a, b)
		return
	}

	logrus.WithFields(logrus.Fields{
		"op":     op.Mnemonic.String(),
		"dst":    dst.String(),
		"result": result,
	}).Trace("cpu: dyadic")

	err = cpu.WriteArg(dst, result)
	return
}

// incdec executes inc and dec. The carry flag is preserved.
func (cpu *Cpu) incdec(op isa.Op) (err error) {
	arg := op.Args[0]
	value, err := cpu.ReadArg(arg)
	if err != nil {
		return
	}

	if op.Mnemonic == isa.OP_INC {
		value++
	} else {
		value--
	}

	cpu.signZero(value, arg.Bits())
	err = cpu.WriteArg(arg, value)
	return
}

// aaa adjusts al after an unpacked BCD addition, carrying into ah.
func (cpu *Cpu) aaa() {
	al := cpu.Reg8(isa.REG8_AL)
	ah := cpu.Reg8(isa.REG8_AH)

	adjust := al&0x0f > 9 || cpu.IsSet(FLAG_AF)
	if adjust {
		al += 0x06
		ah += 0x01
	}
	cpu.AssignFlag(FLAG_AF, adjust)
	cpu.AssignFlag(FLAG_CF, adjust)

	cpu.SetReg16(isa.REG16_AX, (uint16(ah)<<8|uint16(al))&0xff0f)
}

// aas adjusts al after an unpacked BCD subtraction, borrowing from ah.
func (cpu *Cpu) aas() {
	al := cpu.Reg8(isa.REG8_AL)
	ah := cpu.Reg8(isa.REG8_AH)

	adjust := al&0x0f > 9 || cpu.IsSet(FLAG_AF)
	if adjust {
		al -= 0x06
		ah -= 0x01
	}
	cpu.AssignFlag(FLAG_AF, adjust)
	cpu.AssignFlag(FLAG_CF, adjust)

	cpu.SetReg16(isa.REG16_AX, (uint16(ah)<<8|uint16(al))&0xff0f)
}

// aam splits al into base digits: ah gets the quotient, al the remainder.
func (cpu *Cpu) aam(base uint8) (err error) {
	if base == 0 {
		err = ErrDivideByZero
		return
	}

	al := cpu.Reg8(isa.REG8_AL)
	cpu.SetReg8(isa.REG8_AH, al/base)
	cpu.SetReg8(isa.REG8_AL, al%base)
	return
}

// aad folds ah into al as a base digit, and clears ah.
func (cpu *Cpu) aad(base uint8) {
	al := cpu.Reg8(isa.REG8_AL)
	ah := cpu.Reg8(isa.REG8_AH)
	cpu.SetReg8(isa.REG8_AL, al+ah*base)
	cpu.SetReg8(isa.REG8_AH, 0)
}

// daa adjusts al after a packed BCD addition.
func (cpu *Cpu) daa() {
	al := cpu.Reg8(isa.REG8_AL)
	old_al := al
	old_cf := cpu.IsSet(FLAG_CF)

	cf := false
	if al&0x0f > 9 || cpu.IsSet(FLAG_AF) {
		cf = old_cf || al > 0xff-0x06
		al += 0x06
		cpu.SetFlag(FLAG_AF)
	} else {
		cpu.ClearFlag(FLAG_AF)
	}

	if old_al > 0x99 || old_cf {
		al += 0x60
		cf = true
	}
	cpu.AssignFlag(FLAG_CF, cf)

	cpu.SetReg8(isa.REG8_AL, al)
	cpu.signZero(uint16(al), 8)
}

// das adjusts al after a packed BCD subtraction.
func (cpu *Cpu) das() {
	al := cpu.Reg8(isa.REG8_AL)
	old_al := al
	old_cf := cpu.IsSet(FLAG_CF)

	cf := false
	if al&0x0f > 9 || cpu.IsSet(FLAG_AF) {
		cf = old_cf || al < 0x06
		al -= 0x06
		cpu.SetFlag(FLAG_AF)
	} else {
		cpu.ClearFlag(FLAG_AF)
	}

	if old_al > 0x99 || old_cf {
		al -= 0x60
		cf = true
	}
	cpu.AssignFlag(FLAG_CF, cf)

	cpu.SetReg8(isa.REG8_AL, al)
	cpu.signZero(uint16(al), 8)
}
