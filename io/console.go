package io

import (
	"io"
)

// CONSOLE_PORT is the port the Bochs and QEMU debug consoles listen on.
const CONSOLE_PORT = 0xE9

// Console is a byte-wide port device. Writes send the low byte to Output,
// reads take the next byte of Input.
type Console struct {
	Input  io.Reader
	Output io.Writer
}

var _ Device = (*Console)(nil)

// Name returns "CONSOLE".
func (con *Console) Name() string {
	return "CONSOLE"
}

// Read returns the next input byte, or 0 when Input is absent or exhausted.
func (con *Console) Read(port uint32, size Size) (value uint16) {
	if con.Input == nil {
		return
	}

	var one [1]byte
	_, err := con.Input.Read(one[:])
	if err != nil {
		return
	}

	value = uint16(one[0])
	return
}

// Write sends the low byte of value to Output.
func (con *Console) Write(port uint32, value uint16, size Size) {
	if con.Output == nil {
		return
	}

	_, _ = con.Output.Write([]byte{byte(value)})
}
