package cpu

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ezrec/emu86/io"
	"github.com/ezrec/emu86/isa"
)

// Cpu is the simulation context of an 8086.
type Cpu struct {
	Regs   [8]uint16 // General registers, indexed by isa.Reg16.
	Sregs  [4]uint16 // Segment registers, indexed by isa.Sreg.
	Ip     uint16    // Instruction pointer.
	Flags  uint16    // Flag word.
	Halted bool      // Set by hlt.

	Ticks int // Instructions executed since reset.

	Memory *io.MemMap // Memory address space.
	Ports  *io.IoMap  // Port address space.
}

// Fetched is an instruction read from memory.
type Fetched struct {
	Address uint32   // Linear address of the first byte.
	Bytes   []byte   // Bytes read, prefixes included.
	Inst    isa.Inst // Decoded instruction.
}

// NewCpu creates a cpu with empty memory and port maps.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		Memory: &io.MemMap{},
		Ports:  &io.IoMap{},
	}

	return
}

// String returns the register file as two lines of text.
func (cpu *Cpu) String() (text string) {
	text = fmt.Sprintf("AX=%04X BX=%04X CX=%04X DX=%04X SP=%04X BP=%04X SI=%04X DI=%04X\n",
		cpu.Regs[isa.REG16_AX],
		cpu.Regs[isa.REG16_BX],
		cpu.Regs[isa.REG16_CX],
		cpu.Regs[isa.REG16_DX],
		cpu.Regs[isa.REG16_SP],
		cpu.Regs[isa.REG16_BP],
		cpu.Regs[isa.REG16_SI],
		cpu.Regs[isa.REG16_DI],
	)
	text += fmt.Sprintf("CS=%04X DS=%04X SS=%04X ES=%04X IP=%04X FL=%04X %v\n",
		cpu.Sregs[isa.SREG_CS],
		cpu.Sregs[isa.SREG_DS],
		cpu.Sregs[isa.SREG_SS],
		cpu.Sregs[isa.SREG_ES],
		cpu.Ip,
		cpu.Flags,
		FlagString(cpu.Flags),
	)

	return
}

// Reset the CPU state.
// - Clears every register and flag, and the halted state.
// - Zeros the tick counter.
// - Sets cs:ip and sp as given.
func (cpu *Cpu) Reset(cs, ip, sp uint16) {
	logrus.WithFields(logrus.Fields{
		"cs": cs,
		"ip": ip,
		"sp": sp,
	}).Debug("cpu: reset")

	clear(cpu.Regs[:])
	clear(cpu.Sregs[:])
	cpu.Flags = 0
	cpu.Halted = false
	cpu.Ticks = 0

	cpu.Sregs[isa.SREG_CS] = cs
	cpu.Ip = ip
	cpu.Regs[isa.REG16_SP] = sp
}

// Fetch decodes the instruction at cs:ip. Each byte is a separate read
// through the memory map; an unmapped byte ends the instruction stream.
func (cpu *Cpu) Fetch() (fetched Fetched, err error) {
	ip := cpu.Ip
	fetched.Address = cpu.Linear(isa.SREG_CS, ip)

	source := func() (b byte, ok bool) {
		value, ok := cpu.Memory.Read(cpu.Linear(isa.SREG_CS, ip), io.SIZE_BYTE)
		if !ok {
			return
		}
		b = byte(value)
		ip++
		fetched.Bytes = append(fetched.Bytes, b)
		return
	}

	fetched.Inst, err = isa.NewDecoder(source).Next()

	return
}

// Tick executes a single instruction cycle.
func (cpu *Cpu) Tick() (fetched Fetched, err error) {
	if cpu.Halted {
		err = ErrHalted
		return
	}

	fetched, err = cpu.Fetch()
	if err != nil {
		return
	}

	logrus.WithFields(logrus.Fields{
		"addr": fmt.Sprintf("%05X", fetched.Address),
		"inst": fetched.Inst.Op.String(),
	}).Trace("cpu: tick")

	err = cpu.Execute(fetched.Inst)

	return
}

// Run ticks until the cpu halts, returning the first error.
func (cpu *Cpu) Run() (err error) {
	for !cpu.Halted {
		_, err = cpu.Tick()
		if err != nil {
			return
		}
	}
	return
}

// IsFatal reports if err aborts the run, as opposed to a halted cpu.
func IsFatal(err error) bool {
	return err != nil && !errors.Is(err, ErrHalted)
}
