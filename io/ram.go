package io

import (
	"io"

	"github.com/sirupsen/logrus"
)

// RAM_DEFAULT_SIZE is the size of a Ram with no Size set: the 8086
// address space below the reset segment.
const RAM_DEFAULT_SIZE = 0xF0000

// Ram is a read-write byte store starting at Base.
type Ram struct {
	Base uint32
	Size int

	Data []byte
}

var _ Device = (*Ram)(nil)

// NewRam creates a zeroed Ram of size bytes at base.
func NewRam(base uint32, size int) (ram *Ram) {
	ram = &Ram{Base: base, Size: size}
	ram.Reset()
	return
}

// Reset clears the contents, allocating them if needed.
func (ram *Ram) Reset() {
	if ram.Size == 0 {
		ram.Size = RAM_DEFAULT_SIZE
	}
	if len(ram.Data) != ram.Size {
		ram.Data = make([]byte, ram.Size)
		return
	}
	clear(ram.Data)
}

// Name returns "RAM".
func (ram *Ram) Name() string {
	return "RAM"
}

// offset returns the index of the access, if all its bytes are in range.
func (ram *Ram) offset(addr uint32, size Size) (offset int, ok bool) {
	if addr < ram.Base {
		return
	}
	offset = int(addr - ram.Base)
	ok = offset+int(size) <= len(ram.Data)
	if !ok {
		logrus.WithFields(logrus.Fields{
			"addr": addr,
			"size": size,
		}).Warn("ram: out of bounds")
	}
	return
}

func (ram *Ram) Read(addr uint32, size Size) (value uint16) {
	offset, ok := ram.offset(addr, size)
	if !ok {
		return
	}

	value = uint16(ram.Data[offset])
	if size == SIZE_WORD {
		value |= uint16(ram.Data[offset+1]) << 8
	}
	return
}

func (ram *Ram) Write(addr uint32, value uint16, size Size) {
	offset, ok := ram.offset(addr, size)
	if !ok {
		return
	}

	ram.Data[offset] = byte(value)
	if size == SIZE_WORD {
		ram.Data[offset+1] = byte(value >> 8)
	}
}

// Unmarshal loads a snapshot from a reader, replacing the low bytes of the
// contents. The rest of the contents are cleared.
func (ram *Ram) Unmarshal(file io.Reader) (err error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return
	}

	ram.Reset()
	copy(ram.Data, data)

	return
}

// Marshal writes the whole of the contents to a writer.
func (ram *Ram) Marshal(file io.Writer) (err error) {
	_, err = file.Write(ram.Data)

	return
}
