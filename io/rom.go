package io

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// ROM_WINDOW is the largest span of a ROM image visible in the memory map.
const ROM_WINDOW = 0x10000

// ROM_DUMP_SIZE is the number of image bytes dumped at load time.
const ROM_DUMP_SIZE = 0x40

// Rom is a read-only image starting at Base. Writes are ignored.
type Rom struct {
	Base uint32
	Data []byte
}

var _ Device = (*Rom)(nil)

// LoadRom reads an image file, to be mapped at base.
func LoadRom(filename string, base uint32) (rom *Rom, err error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return
	}
	if len(data) == 0 {
		err = ErrRomEmpty
		return
	}

	rom = &Rom{Base: base, Data: data}

	logrus.WithFields(logrus.Fields{
		"file": filename,
		"size": len(data),
		"base": base,
	}).Info("rom: loaded")

	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		var sb strings.Builder
		_ = Dump(&sb, data[:min(len(data), ROM_DUMP_SIZE)], base)
		logrus.Debug("rom: image\n" + sb.String())
	}

	return
}

// Window returns the half-open address range to register the ROM at.
func (rom *Rom) Window() (start, end uint32) {
	start = rom.Base
	end = start + uint32(min(len(rom.Data), ROM_WINDOW))
	return
}

// Name returns "ROM".
func (rom *Rom) Name() string {
	return "ROM"
}

func (rom *Rom) Read(addr uint32, size Size) (value uint16) {
	offset := int(addr - rom.Base)
	if addr < rom.Base || offset+int(size) > len(rom.Data) {
		logrus.WithFields(logrus.Fields{
			"addr": addr,
			"size": size,
		}).Debug("rom: read out of range")
		return
	}

	value = uint16(rom.Data[offset])
	if size == SIZE_WORD {
		value |= uint16(rom.Data[offset+1]) << 8
	}
	return
}

func (rom *Rom) Write(addr uint32, value uint16, size Size) {
	logrus.WithFields(logrus.Fields{
		"addr":  addr,
		"value": value,
	}).Trace("rom: write ignored")
}
