package cpu

import (
	"github.com/sirupsen/logrus"

	"github.com/ezrec/emu86/io"
	"github.com/ezrec/emu86/isa"
)

// Push stores value at ss:sp, then moves sp down by one word.
func (cpu *Cpu) Push(value uint16) {
	sp := cpu.Reg16(isa.REG16_SP)
	cpu.WriteMem(isa.SREG_SS, sp, value, io.SIZE_WORD)
	cpu.SetReg16(isa.REG16_SP, sp-2)

	logrus.WithFields(logrus.Fields{
		"sp":    sp,
		"value": value,
	}).Trace("cpu: push")
}

// Pop moves sp up by one word, then loads the value at the new ss:sp.
func (cpu *Cpu) Pop() (value uint16) {
	sp := cpu.Reg16(isa.REG16_SP) + 2
	cpu.SetReg16(isa.REG16_SP, sp)
	value = cpu.ReadMem(isa.SREG_SS, sp, io.SIZE_WORD)

	logrus.WithFields(logrus.Fields{
		"sp":    sp,
		"value": value,
	}).Trace("cpu: pop")

	return
}

// Peek returns the value Pop would return, leaving sp alone.
func (cpu *Cpu) Peek() (value uint16, ok bool) {
	sp := cpu.Reg16(isa.REG16_SP) + 2
	return cpu.Memory.Read(cpu.Linear(isa.SREG_SS, sp), io.SIZE_WORD)
}
