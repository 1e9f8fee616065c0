package cpu

import (
	"fmt"
	"iter"
	"maps"
	"strings"
)

// Flag is a bit of the flag word.
type Flag uint16

const (
	FLAG_CF = Flag(1 << 0)  // Carry
	FLAG_PF = Flag(1 << 2)  // Parity
	FLAG_AF = Flag(1 << 4)  // Auxiliary carry
	FLAG_ZF = Flag(1 << 6)  // Zero
	FLAG_SF = Flag(1 << 7)  // Sign
	FLAG_TF = Flag(1 << 8)  // Trap
	FLAG_IF = Flag(1 << 9)  // Interrupt enable
	FLAG_DF = Flag(1 << 10) // Direction
	FLAG_OF = Flag(1 << 11) // Overflow
)

// flagOrder is the display order of the flag letters, most significant first.
var flagOrder = []struct {
	flag   Flag
	letter byte
}{
	{FLAG_OF, 'O'},
	{FLAG_DF, 'D'},
	{FLAG_IF, 'I'},
	{FLAG_TF, 'T'},
	{FLAG_SF, 'S'},
	{FLAG_ZF, 'Z'},
	{FLAG_AF, 'A'},
	{FLAG_PF, 'P'},
	{FLAG_CF, 'C'},
}

// String returns the letter of the flag, or the letters of every bit set.
func (fl Flag) String() string {
	var sb strings.Builder
	for _, entry := range flagOrder {
		if fl&entry.flag != 0 {
			sb.WriteByte(entry.letter)
		}
	}
	return sb.String()
}

// FlagString returns the flag word as letters, with '-' for clear bits.
func FlagString(flags uint16) string {
	text := make([]byte, len(flagOrder))
	for n, entry := range flagOrder {
		if flags&uint16(entry.flag) != 0 {
			text[n] = entry.letter
		} else {
			text[n] = '-'
		}
	}
	return string(text)
}

// SetFlag sets fl.
func (cpu *Cpu) SetFlag(fl Flag) {
	cpu.Flags |= uint16(fl)
}

// ClearFlag clears fl.
func (cpu *Cpu) ClearFlag(fl Flag) {
	cpu.Flags &^= uint16(fl)
}

// ToggleFlag inverts fl.
func (cpu *Cpu) ToggleFlag(fl Flag) {
	cpu.Flags ^= uint16(fl)
}

// IsSet reports if fl is set.
func (cpu *Cpu) IsSet(fl Flag) bool {
	return cpu.Flags&uint16(fl) != 0
}

// AssignFlag sets fl when value is true, and clears it otherwise.
func (cpu *Cpu) AssignFlag(fl Flag, value bool) {
	if value {
		cpu.SetFlag(fl)
	} else {
		cpu.ClearFlag(fl)
	}
}

var _cpu_defines = map[string]string{
	"FLAG_CF": fmt.Sprintf("0x%04X", uint16(FLAG_CF)),
	"FLAG_PF": fmt.Sprintf("0x%04X", uint16(FLAG_PF)),
	"FLAG_AF": fmt.Sprintf("0x%04X", uint16(FLAG_AF)),
	"FLAG_ZF": fmt.Sprintf("0x%04X", uint16(FLAG_ZF)),
	"FLAG_SF": fmt.Sprintf("0x%04X", uint16(FLAG_SF)),
	"FLAG_TF": fmt.Sprintf("0x%04X", uint16(FLAG_TF)),
	"FLAG_IF": fmt.Sprintf("0x%04X", uint16(FLAG_IF)),
	"FLAG_DF": fmt.Sprintf("0x%04X", uint16(FLAG_DF)),
	"FLAG_OF": fmt.Sprintf("0x%04X", uint16(FLAG_OF)),
}

// Defines returns the flag masks, as name and value text.
func Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}
