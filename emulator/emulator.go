// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ezrec/emu86/cpu"
	"github.com/ezrec/emu86/disasm"
	"github.com/ezrec/emu86/io"
	"github.com/ezrec/emu86/isa"
)

// Emulator state. CPU + RAM + ROM + console.
type Emulator struct {
	*cpu.Cpu        // Reference to the CPU simulation.
	Config   Config // Machine configuration.

	Ram     *io.Ram    // RAM from address 0, nil when MemorySize is 0.
	Rom     *io.Rom    // ROM image at the load address.
	Console io.Console // Console on the configured port.

	Last cpu.Fetched // Most recently fetched instruction.
}

// NewEmulator loads the image of config, and builds the machine around it.
//
// RAM is registered first, so the ROM shadows any RAM it overlaps.
func NewEmulator(config Config) (emu *Emulator, err error) {
	if len(config.Image) == 0 {
		err = ErrImageMissing
		return
	}

	rom, err := io.LoadRom(config.Image, config.LoadAddress)
	if err != nil {
		return
	}

	emu = &Emulator{
		Cpu:    cpu.NewCpu(),
		Config: config,
		Rom:    rom,
	}

	if config.MemorySize > 0 {
		emu.Ram = io.NewRam(0, int(config.MemorySize))
		err = emu.Memory.Register(0, config.MemorySize, emu.Ram)
		if err != nil {
			return
		}
	}

	start, end := rom.Window()
	err = emu.Memory.Register(start, end, rom)
	if err != nil {
		return
	}

	emu.Ports.Register(config.ConsolePort, &emu.Console)

	emu.Reset()

	return
}

// Reset the emulator state.
// - Clears RAM.
// - Resets the CPU, with cs:ip pointing at the load address.
func (emu *Emulator) Reset() {
	if emu.Ram != nil {
		emu.Ram.Reset()
	}

	load := emu.Config.LoadAddress
	cs := uint16((load & 0xffff0000) >> 4)
	ip := uint16(load & 0xffff)

	emu.Cpu.Reset(cs, ip, emu.Config.StackPointer)
	emu.Last = cpu.Fetched{}
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Tick performs a single tick of the emulator. done is set once the CPU
// has halted.
func (emu *Emulator) Tick() (done bool, err error) {
	if emu.Halted {
		done = true
		return
	}

	addr := emu.Linear(isa.SREG_CS, emu.Ip)
	if logrus.IsLevelEnabled(logrus.TraceLevel) {
		logrus.Trace(emu.Cpu.String())
	}

	defer func() {
		if err != nil {
			err = &ErrRuntime{Address: addr, Err: err}
		}
	}()

	fetched, err := emu.Cpu.Tick()
	emu.Last = fetched
	if err != nil {
		return
	}

	logrus.WithFields(logrus.Fields{
		"addr":  fmt.Sprintf("%05X", fetched.Address),
		"bytes": fmt.Sprintf("% 02x", fetched.Bytes),
	}).Debug(disasm.Format(fetched.Address, fetched.Inst))

	done = emu.Halted

	return
}

// Run ticks until the CPU halts. A limit above zero bounds the ticks taken.
func (emu *Emulator) Run(limit int) (err error) {
	for ticks := 0; limit <= 0 || ticks < limit; ticks++ {
		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}

	err = ErrTickLimit
	return
}
