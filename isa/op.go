package isa

import (
	"strings"
)

// Mnemonic tags the operation of an Op.
type Mnemonic int

//go:generate go tool stringer -linecomment -type=Mnemonic
const (
	OP_NOP     = Mnemonic(0)  // nop
	OP_ADD     = Mnemonic(1)  // add
	OP_ADC     = Mnemonic(2)  // adc
	OP_SBB     = Mnemonic(3)  // sbb
	OP_SUB     = Mnemonic(4)  // sub
	OP_AND     = Mnemonic(5)  // and
	OP_OR      = Mnemonic(6)  // or
	OP_XOR     = Mnemonic(7)  // xor
	OP_CMP     = Mnemonic(8)  // cmp
	OP_PUSH    = Mnemonic(9)  // push
	OP_POP     = Mnemonic(10) // pop
	OP_AAA     = Mnemonic(11) // aaa
	OP_AAD     = Mnemonic(12) // aad
	OP_AAM     = Mnemonic(13) // aam
	OP_AAS     = Mnemonic(14) // aas
	OP_DAA     = Mnemonic(15) // daa
	OP_DAS     = Mnemonic(16) // das
	OP_INC     = Mnemonic(17) // inc
	OP_DEC     = Mnemonic(18) // dec
	OP_JCC     = Mnemonic(19) // j
	OP_CALL    = Mnemonic(20) // call
	OP_RET     = Mnemonic(21) // ret
	OP_JMP     = Mnemonic(22) // jmp
	OP_JMP_FAR = Mnemonic(23) // jmp far
	OP_TEST    = Mnemonic(24) // test
	OP_XCHG    = Mnemonic(25) // xchg
	OP_MOV     = Mnemonic(26) // mov
	OP_LEA     = Mnemonic(27) // lea
	OP_IN      = Mnemonic(28) // in
	OP_OUT     = Mnemonic(29) // out
	OP_CBW     = Mnemonic(30) // cbw
	OP_CWD     = Mnemonic(31) // cwd
	OP_HLT     = Mnemonic(32) // hlt
	OP_CMC     = Mnemonic(33) // cmc
	OP_CLC     = Mnemonic(34) // clc
	OP_STC     = Mnemonic(35) // stc
	OP_CLI     = Mnemonic(36) // cli
	OP_STI     = Mnemonic(37) // sti
	OP_CLD     = Mnemonic(38) // cld
	OP_STD     = Mnemonic(39) // std
	OP_ERROR   = Mnemonic(40) // error
	OP_INVALID = Mnemonic(41) // invalid
)

// Rep is the repeat prefix of an instruction.
type Rep int

//go:generate go tool stringer -linecomment -type=Rep
const (
	REP_NONE  = Rep(0) // none
	REP_REP   = Rep(1) // rep
	REP_REPNE = Rep(2) // repne
)

// Invalid is the reason an OP_INVALID was produced.
type Invalid int

//go:generate go tool stringer -linecomment -type=Invalid
const (
	INVALID_UNKNOWN           = Invalid(0) // unknown
	INVALID_TOO_MANY_PREFIXES = Invalid(1) // too many prefixes
	INVALID_UNEXPECTED_BYTE   = Invalid(2) // unexpected byte
	INVALID_UNEXPECTED_BYTES  = Invalid(3) // unexpected bytes
	INVALID_ADDRESSING_MODE   = Invalid(4) // addressing mode not implemented
)

// Op is a decoded operation.
//
// Operand layout by mnemonic:
//   - dyadic ops, mov, xchg, test, lea, in, out: destination, source
//   - push, pop, inc, dec: the single operand
//   - OP_JCC, OP_JMP, OP_CALL: relative displacement (Imm8 or Imm16)
//   - OP_JMP_FAR: segment, offset
//   - OP_AAD, OP_AAM: the Uimm8 base
//   - OP_RET: optional Uimm16 count of bytes to release
//   - OP_INVALID: the offending bytes as Uimm8
type Op struct {
	Mnemonic Mnemonic
	Args     []Arg
	Cond     Cond    // Branch condition of OP_JCC.
	Invalid  Invalid // Reason of OP_INVALID.
}

// Executable is false for the OP_ERROR and OP_INVALID variants.
func (op Op) Executable() bool {
	return op.Mnemonic != OP_ERROR && op.Mnemonic != OP_INVALID
}

// String returns the operation in assembly form, with relative
// displacements left unresolved.
func (op Op) String() string {
	var sb strings.Builder

	switch op.Mnemonic {
	case OP_JCC:
		sb.WriteString("j" + op.Cond.String())
	case OP_INVALID:
		sb.WriteString("invalid " + op.Invalid.String())
		return sb.String()
	default:
		sb.WriteString(op.Mnemonic.String())
	}

	sep := " "
	if op.Mnemonic == OP_JMP_FAR {
		sep = ":"
	}
	for n, arg := range op.Args {
		if n == 0 {
			sb.WriteString(" ")
		} else if sep == " " {
			sb.WriteString(", ")
		} else {
			sb.WriteString(sep)
		}
		sb.WriteString(arg.String())
	}

	return sb.String()
}

// Inst is one decoded instruction.
type Inst struct {
	Lock            bool // LOCK prefix seen.
	Rep             Rep  // Repeat prefix, REP_NONE if absent.
	Segment         Sreg // Segment override, valid if SegmentOverride.
	SegmentOverride bool // Segment override prefix seen.
	Op              Op   // Operation.
	Size            int  // Number of bytes consumed, prefixes included.
}
