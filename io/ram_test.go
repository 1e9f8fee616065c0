package io

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRam_ReadWrite(t *testing.T) {
	assert := assert.New(t)

	ram := NewRam(0x1000, 4)

	ram.Write(0x1000, 0xabcd, SIZE_WORD)
	assert.Equal([]byte{0xcd, 0xab, 0, 0}, ram.Data)
	assert.Equal(uint16(0xabcd), ram.Read(0x1000, SIZE_WORD))
	assert.Equal(uint16(0xab), ram.Read(0x1001, SIZE_BYTE))

	// Out of range, including a word straddling the end.
	assert.Equal(uint16(0), ram.Read(0x1004, SIZE_BYTE))
	assert.Equal(uint16(0), ram.Read(0x0fff, SIZE_BYTE))
	ram.Write(0x1003, 0xffff, SIZE_WORD)
	assert.Equal([]byte{0xcd, 0xab, 0, 0}, ram.Data)
	ram.Write(0x1003, 0xffff, SIZE_BYTE)
	assert.Equal(uint16(0), ram.Read(0x1003, SIZE_WORD))
	assert.Equal(uint16(0xff), ram.Read(0x1003, SIZE_BYTE))
}

func TestRam_Marshal(t *testing.T) {
	assert := assert.New(t)

	ram := NewRam(0, 8)
	err := ram.Unmarshal(bytes.NewReader([]byte{1, 2, 3}))
	assert.NoError(err)
	assert.Equal([]byte{1, 2, 3, 0, 0, 0, 0, 0}, ram.Data)

	ram.Write(7, 9, SIZE_BYTE)

	var buf bytes.Buffer
	assert.NoError(ram.Marshal(&buf))
	assert.Equal([]byte{1, 2, 3, 0, 0, 0, 0, 9}, buf.Bytes())

	ram.Reset()
	assert.Equal(make([]byte, 8), ram.Data)

	empty := &Ram{}
	empty.Reset()
	assert.Len(empty.Data, RAM_DEFAULT_SIZE)
}
