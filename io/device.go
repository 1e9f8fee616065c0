// Package io provides the memory and port maps of the 8086 emulator, and the
// devices bound into them: RAM, ROM, and a byte-wide console port.
package io

import (
	"fmt"
	"iter"
	"maps"
)

// Size is the width of a device access.
type Size int

//go:generate go tool stringer -linecomment -type=Size
const (
	SIZE_BYTE = Size(1) // byte
	SIZE_WORD = Size(2) // word
)

// Device is a target of memory or port accesses.
//
// Addresses passed to a device are the absolute addresses of the access.
// Devices check their own bounds: an out-of-range read yields 0, and an
// out-of-range write is dropped. Words are little-endian.
type Device interface {
	// Name identifies the device in logs.
	Name() string
	// Read returns the byte or word at addr.
	Read(addr uint32, size Size) uint16
	// Write stores the byte or word at addr.
	Write(addr uint32, value uint16, size Size)
}

var _io_defines = map[string]string{
	"CONSOLE_PORT":     fmt.Sprintf("0x%X", CONSOLE_PORT),
	"ROM_WINDOW":       fmt.Sprintf("0x%X", ROM_WINDOW),
	"RAM_DEFAULT_SIZE": fmt.Sprintf("0x%X", RAM_DEFAULT_SIZE),
}

// Defines returns the device constants, as name and value text.
func Defines() iter.Seq2[string, string] {
	return maps.All(_io_defines)
}
