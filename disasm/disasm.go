// Package disasm renders decoded 8086 instructions as assembly text.
package disasm

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/ezrec/emu86/isa"
)

// AAX_BASE is the base aam and aad take when no operand is written.
const AAX_BASE = 0x0A

// BAD is the text of a byte that does not start a valid instruction.
const BAD = "(bad)"

// Format returns the assembly text of inst, located at pc. Relative branch
// targets are resolved against pc.
func Format(pc uint32, inst isa.Inst) string {
	var sb strings.Builder

	if inst.Lock {
		sb.WriteString("lock ")
	}
	switch inst.Rep {
	case isa.REP_REP:
		sb.WriteString("rep ")
	case isa.REP_REPNE:
		sb.WriteString("repne ")
	}
	if inst.SegmentOverride {
		sb.WriteString(inst.Segment.String() + ": ")
	}

	op := inst.Op
	switch op.Mnemonic {
	case isa.OP_AAD, isa.OP_AAM:
		sb.WriteString(op.Mnemonic.String())
		if base, ok := op.Args[0].(isa.Uimm8); ok && base != AAX_BASE {
			fmt.Fprintf(&sb, " 0x%02x", uint8(base))
		}
	case isa.OP_JCC, isa.OP_JMP, isa.OP_CALL:
		if op.Mnemonic == isa.OP_JCC {
			sb.WriteString("j" + op.Cond.String())
		} else {
			sb.WriteString(op.Mnemonic.String())
		}
		fmt.Fprintf(&sb, " 0x%04x", Target(pc, inst))
	case isa.OP_INVALID:
		sb.WriteString(BAD)
	default:
		sb.WriteString(op.String())
	}

	return sb.String()
}

// Target returns the destination of a relative branch at pc.
func Target(pc uint32, inst isa.Inst) uint32 {
	var disp int32
	switch arg := inst.Op.Args[0].(type) {
	case isa.Imm8:
		disp = int32(arg)
	case isa.Imm16:
		disp = int32(arg)
	}
	return uint32(int32(pc) + int32(inst.Size) + disp)
}

// Line is one line of a listing.
type Line struct {
	Address uint32 // Address of the first byte.
	Bytes   []byte // Bytes of the instruction.
	Text    string // Assembly text, or BAD.
}

// String returns the line as address, bytes and text columns.
func (line Line) String() string {
	return fmt.Sprintf("%05X %-16s %s", line.Address, fmt.Sprintf("% 02x", line.Bytes), line.Text)
}

// Lines disassembles code, which is located at origin. A byte that does not
// start a valid instruction yields a BAD line, and decoding resumes at the
// following byte. The listing stops at an instruction truncated by the end
// of code.
func Lines(code []byte, origin uint32) iter.Seq[Line] {
	return func(yield func(Line) bool) {
		for offset := 0; offset < len(code); {
			pc := origin + uint32(offset)
			inst, err := isa.Decode(code[offset:])
			if errors.Is(err, isa.ErrEndOfStream) {
				return
			}

			line := Line{Address: pc}
			if err != nil {
				line.Bytes = code[offset : offset+1]
				line.Text = BAD
			} else {
				line.Bytes = code[offset : offset+inst.Size]
				line.Text = Format(pc, inst)
			}

			if !yield(line) {
				return
			}
			offset += len(line.Bytes)
		}
	}
}

// Listing writes the disassembly of code to w.
func Listing(w io.Writer, code []byte, origin uint32) (err error) {
	for line := range Lines(code, origin) {
		_, err = fmt.Fprintln(w, line.String())
		if err != nil {
			return
		}
	}
	return
}
