// Package isa implements the instruction set data model and the instruction
// decoder for the 16-bit 8086 family.
//
// The decoder turns a stream of bytes into one Inst at a time. Operands are
// the closed set of Arg implementations (Reg8, Reg16, Sreg, Imm8, Uimm8,
// Imm16, Uimm16 and Mem); operations are an Op tagged by its Mnemonic.
// Only the register-direct ModRM form is decoded, memory forms are reported
// as an ErrInvalid with reason INVALID_ADDRESSING_MODE.
package isa
