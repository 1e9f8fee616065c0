package io

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemMap_Priority(t *testing.T) {
	assert := assert.New(t)

	low := NewRam(0, 0x100)
	high := NewRam(0x80, 0x100)

	mm := &MemMap{}
	assert.NoError(mm.Register(0, 0x100, low))
	assert.NoError(mm.Register(0x80, 0x180, high))

	// Write first, then read.
	assert.True(mm.Write(0x90, 0x55, SIZE_BYTE))
	assert.Equal(byte(0), low.Data[0x90])
	assert.Equal(byte(0x55), high.Data[0x10])

	value, ok := mm.Read(0x90, SIZE_BYTE)
	assert.True(ok)
	assert.Equal(uint16(0x55), value)

	// Read first, then write.
	low.Data[0xa0] = 0x11
	high.Data[0x20] = 0x22
	value, ok = mm.Read(0xa0, SIZE_BYTE)
	assert.True(ok)
	assert.Equal(uint16(0x22), value)

	// Below the overlap, the lower device still answers.
	assert.True(mm.Write(0x10, 0x1234, SIZE_WORD))
	assert.Equal([]byte{0x34, 0x12}, low.Data[0x10:0x12])

	dev, ok := mm.Lookup(0x17f)
	assert.True(ok)
	assert.Same(high, dev)
}

func TestMemMap_Unhandled(t *testing.T) {
	assert := assert.New(t)

	mm := &MemMap{}
	assert.NoError(mm.Register(0x100, 0x200, NewRam(0x100, 0x100)))

	_, ok := mm.Read(0x200, SIZE_BYTE)
	assert.False(ok)
	_, ok = mm.Read(0xff, SIZE_WORD)
	assert.False(ok)
	assert.False(mm.Write(0x200, 1, SIZE_BYTE))

	assert.ErrorIs(mm.Register(0x10, 0x10, NewRam(0, 1)), ErrRange)
	assert.Len(mm.Regions(), 1)
}

func TestIoMap(t *testing.T) {
	assert := assert.New(t)

	ram := NewRam(0, 0x10000)
	im := &IoMap{}

	_, ok := im.Read(0x60, SIZE_BYTE)
	assert.False(ok)

	im.Register(0x60, ram)
	assert.True(im.Write(0x60, 0xbeef, SIZE_WORD))
	value, ok := im.Read(0x60, SIZE_WORD)
	assert.True(ok)
	assert.Equal(uint16(0xbeef), value)

	assert.False(im.Write(0x61, 0, SIZE_BYTE))
}
