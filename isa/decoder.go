package isa

import (
	"errors"
	"iter"
	"slices"
)

// Source pulls the next byte of an instruction stream. ok is false once the
// stream is exhausted.
type Source func() (b byte, ok bool)

// Decoder decodes one instruction per call to Next.
//
// Prefix state lives only for the duration of a Next call, so a Decoder can
// be reused across a stream, and two Decoders over the same bytes agree.
type Decoder struct {
	Source Source // Byte stream to decode.

	lock   bool
	rep    Rep
	seg    Sreg
	hasSeg bool
	size   int
}

// aluOps is indexed by bits 5..3 of an ALU opcode or the reg field of the
// 0x80..0x83 group.
var aluOps = [8]Mnemonic{OP_ADD, OP_OR, OP_ADC, OP_SBB, OP_AND, OP_SUB, OP_XOR, OP_CMP}

// NewDecoder creates a decoder pulling bytes from src.
func NewDecoder(src Source) *Decoder {
	return &Decoder{Source: src}
}

// Decode decodes the first instruction of code.
func Decode(code []byte) (inst Inst, err error) {
	next, stop := iter.Pull(slices.Values(code))
	defer stop()

	return NewDecoder(next).Next()
}

// Next decodes the next instruction.
//
// At the end of the stream, it returns ErrEndOfStream and no instruction.
// For a refused encoding it returns both an OP_INVALID instruction, sized to
// the bytes consumed, and an *ErrInvalid.
func (dec *Decoder) Next() (inst Inst, err error) {
	dec.lock = false
	dec.rep = REP_NONE
	dec.seg = SREG_ES
	dec.hasSeg = false
	dec.size = 0

	op, err := dec.nextOp()
	if errors.Is(err, ErrEndOfStream) {
		return
	}

	inst = Inst{
		Lock:            dec.lock,
		Rep:             dec.rep,
		Segment:         dec.seg,
		SegmentOverride: dec.hasSeg,
		Op:              op,
		Size:            dec.size,
	}

	return
}

func (dec *Decoder) nextb() (b byte, err error) {
	b, ok := dec.Source()
	if !ok {
		err = ErrEndOfStream
		return
	}
	dec.size++
	return
}

// nextw reads a little-endian word.
func (dec *Decoder) nextw() (w uint16, err error) {
	lo, err := dec.nextb()
	if err != nil {
		return
	}
	hi, err := dec.nextb()
	if err != nil {
		return
	}
	w = uint16(hi)<<8 | uint16(lo)
	return
}

// invalid builds the OP_INVALID variant and its error.
func invalid(reason Invalid, bytes ...byte) (op Op, err error) {
	args := make([]Arg, len(bytes))
	for n, b := range bytes {
		args[n] = Uimm8(b)
	}
	op = Op{Mnemonic: OP_INVALID, Invalid: reason, Args: args}
	err = &ErrInvalid{Reason: reason, Bytes: slices.Clone(bytes)}
	return
}

// failed converts an error from a helper into the matching result.
func failed(err error) (op Op, _ error) {
	var inv *ErrInvalid
	if errors.As(err, &inv) {
		return invalid(inv.Reason, inv.Bytes...)
	}
	return op, err
}

func unexpected(b0 byte) (Op, error) {
	return invalid(INVALID_UNEXPECTED_BYTE, b0)
}

func regArg(sel byte, wide bool) Arg {
	if wide {
		return Reg16Of(sel)
	}
	return Reg8Of(sel)
}

// modrm reads the ModRM byte following b0 and splits the register-direct
// form into its reg and rm selectors.
func (dec *Decoder) modrm(b0 byte) (b1, reg, rm byte, err error) {
	b1, err = dec.nextb()
	if err != nil {
		return
	}
	if b1>>6 != 3 {
		_, err = invalid(INVALID_ADDRESSING_MODE, b0, b1)
		return
	}
	reg = (b1 >> 3) & 7
	rm = b1 & 7
	return
}

// modrmPair returns the rm and reg operands of a ModRM byte.
func (dec *Decoder) modrmPair(b0 byte, wide bool) (rm, reg Arg, err error) {
	_, r, m, err := dec.modrm(b0)
	if err != nil {
		return
	}
	rm = regArg(m, wide)
	reg = regArg(r, wide)
	return
}

func (dec *Decoder) imm(wide bool) (arg Arg, err error) {
	if wide {
		var w uint16
		w, err = dec.nextw()
		arg = Uimm16(w)
		return
	}
	var b byte
	b, err = dec.nextb()
	arg = Uimm8(b)
	return
}

// alu decodes the six encodings shared by the 0x00..0x3d ALU families.
func (dec *Decoder) alu(b0 byte) (op Op, err error) {
	mn := aluOps[(b0>>3)&7]
	wide := b0&1 == 1

	switch b0 & 7 {
	case 0, 1:
		rm, reg, err := dec.modrmPair(b0, wide)
		if err != nil {
			return failed(err)
		}
		op = Op{Mnemonic: mn, Args: []Arg{rm, reg}}
	case 2, 3:
		rm, reg, err := dec.modrmPair(b0, wide)
		if err != nil {
			return failed(err)
		}
		op = Op{Mnemonic: mn, Args: []Arg{reg, rm}}
	case 4, 5:
		src, err := dec.imm(wide)
		if err != nil {
			return failed(err)
		}
		op = Op{Mnemonic: mn, Args: []Arg{regArg(0, wide), src}}
	default:
		return unexpected(b0)
	}

	return
}

// segment records a segment override prefix and decodes what follows.
func (dec *Decoder) segment(b0 byte, seg Sreg) (Op, error) {
	if dec.hasSeg {
		return invalid(INVALID_TOO_MANY_PREFIXES, b0)
	}
	dec.hasSeg = true
	dec.seg = seg
	return dec.nextOp()
}

func monadic(mn Mnemonic, arg Arg) Op {
	return Op{Mnemonic: mn, Args: []Arg{arg}}
}

func dyadic(mn Mnemonic, dst, src Arg) Op {
	return Op{Mnemonic: mn, Args: []Arg{dst, src}}
}

func (dec *Decoder) next0(b0 byte) (Op, error) {
	switch b0 & 0xf {
	case 0x6:
		return monadic(OP_PUSH, SREG_ES), nil
	case 0x7:
		return monadic(OP_POP, SREG_ES), nil
	case 0xe:
		return monadic(OP_PUSH, SREG_CS), nil
	case 0xf:
		return unexpected(b0)
	}
	return dec.alu(b0)
}

func (dec *Decoder) next1(b0 byte) (Op, error) {
	switch b0 & 0xf {
	case 0x6:
		return monadic(OP_PUSH, SREG_SS), nil
	case 0x7:
		return monadic(OP_POP, SREG_SS), nil
	case 0xe:
		return monadic(OP_PUSH, SREG_DS), nil
	case 0xf:
		return monadic(OP_POP, SREG_DS), nil
	}
	return dec.alu(b0)
}

func (dec *Decoder) next2(b0 byte) (Op, error) {
	switch b0 & 0xf {
	case 0x6:
		return dec.segment(b0, SREG_ES)
	case 0x7:
		return Op{Mnemonic: OP_DAA}, nil
	case 0xe:
		return dec.segment(b0, SREG_CS)
	case 0xf:
		return Op{Mnemonic: OP_DAS}, nil
	}
	return dec.alu(b0)
}

func (dec *Decoder) next3(b0 byte) (Op, error) {
	switch b0 & 0xf {
	case 0x6:
		return dec.segment(b0, SREG_SS)
	case 0x7:
		return Op{Mnemonic: OP_AAA}, nil
	case 0xe:
		return dec.segment(b0, SREG_DS)
	case 0xf:
		return Op{Mnemonic: OP_AAS}, nil
	}
	return dec.alu(b0)
}

func (dec *Decoder) next4(b0 byte) (Op, error) {
	if b0&0x8 == 0 {
		return monadic(OP_INC, Reg16Of(b0)), nil
	}
	return monadic(OP_DEC, Reg16Of(b0)), nil
}

func (dec *Decoder) next5(b0 byte) (Op, error) {
	if b0&0x8 == 0 {
		return monadic(OP_PUSH, Reg16Of(b0)), nil
	}
	return monadic(OP_POP, Reg16Of(b0)), nil
}

// next6 covers pusha, popa, bound and the other 80186 additions.
func (dec *Decoder) next6(b0 byte) (Op, error) {
	return unexpected(b0)
}

func (dec *Decoder) next7(b0 byte) (op Op, err error) {
	disp, err := dec.nextb()
	if err != nil {
		return
	}
	op = Op{Mnemonic: OP_JCC, Cond: CondOf(b0), Args: []Arg{Imm8(int8(disp))}}
	return
}

func (dec *Decoder) next8(b0 byte) (op Op, err error) {
	wide := b0&1 == 1

	switch b0 & 0xf {
	case 0x0, 0x1, 0x2, 0x3:
		// grp1: 80 and 82 are r8,imm8; 81 is r16,imm16; 83 is r16,simm8
		_, reg, rm, err := dec.modrm(b0)
		if err != nil {
			return failed(err)
		}
		var src Arg
		if b0 == 0x83 {
			var b byte
			b, err = dec.nextb()
			src = Imm8(int8(b))
		} else {
			src, err = dec.imm(wide)
		}
		if err != nil {
			return failed(err)
		}
		op = dyadic(aluOps[reg], regArg(rm, wide), src)
	case 0x4, 0x5, 0x6, 0x7, 0x8, 0x9:
		rm, reg, err := dec.modrmPair(b0, wide)
		if err != nil {
			return failed(err)
		}
		mn := OP_MOV
		switch b0 & 0xe {
		case 0x4:
			mn = OP_TEST
		case 0x6:
			mn = OP_XCHG
		}
		op = dyadic(mn, rm, reg)
	case 0xa, 0xb:
		rm, reg, err := dec.modrmPair(b0, wide)
		if err != nil {
			return failed(err)
		}
		op = dyadic(OP_MOV, reg, rm)
	case 0xc, 0xe:
		b1, reg, rm, err := dec.modrm(b0)
		if err != nil {
			return failed(err)
		}
		if reg&4 != 0 {
			return invalid(INVALID_UNEXPECTED_BYTES, b0, b1)
		}
		if b0 == 0x8c {
			op = dyadic(OP_MOV, Reg16Of(rm), SregOf(reg))
		} else {
			op = dyadic(OP_MOV, SregOf(reg), Reg16Of(rm))
		}
	case 0xd:
		_, reg, rm, err := dec.modrm(b0)
		if err != nil {
			return failed(err)
		}
		op = dyadic(OP_LEA, Reg16Of(reg), Reg16Of(rm))
	case 0xf:
		b1, reg, rm, err := dec.modrm(b0)
		if err != nil {
			return failed(err)
		}
		if reg != 0 {
			return invalid(INVALID_UNEXPECTED_BYTES, b0, b1)
		}
		op = monadic(OP_POP, Reg16Of(rm))
	}

	return
}

func (dec *Decoder) next9(b0 byte) (Op, error) {
	switch n := b0 & 0xf; {
	case n == 0x0:
		return Op{Mnemonic: OP_NOP}, nil
	case n <= 0x7:
		return dyadic(OP_XCHG, REG16_AX, Reg16Of(n)), nil
	case n == 0x8:
		return Op{Mnemonic: OP_CBW}, nil
	case n == 0x9:
		return Op{Mnemonic: OP_CWD}, nil
	}
	return unexpected(b0)
}

// nextA covers the string and accumulator/offset forms; only test is decoded.
func (dec *Decoder) nextA(b0 byte) (op Op, err error) {
	switch b0 {
	case 0xa8, 0xa9:
		wide := b0&1 == 1
		src, err := dec.imm(wide)
		if err != nil {
			return failed(err)
		}
		op = dyadic(OP_TEST, regArg(0, wide), src)
	default:
		return unexpected(b0)
	}
	return
}

func (dec *Decoder) nextB(b0 byte) (op Op, err error) {
	wide := b0&0x8 != 0
	src, err := dec.imm(wide)
	if err != nil {
		return failed(err)
	}
	op = dyadic(OP_MOV, regArg(b0, wide), src)
	return
}

func (dec *Decoder) nextC(b0 byte) (op Op, err error) {
	switch b0 {
	case 0xc2:
		w, err := dec.nextw()
		if err != nil {
			return failed(err)
		}
		op = monadic(OP_RET, Uimm16(w))
	case 0xc3:
		op = Op{Mnemonic: OP_RET}
	default:
		return unexpected(b0)
	}
	return
}

func (dec *Decoder) nextD(b0 byte) (op Op, err error) {
	switch b0 {
	case 0xd4, 0xd5:
		base, err := dec.nextb()
		if err != nil {
			return failed(err)
		}
		mn := OP_AAM
		if b0 == 0xd5 {
			mn = OP_AAD
		}
		op = monadic(mn, Uimm8(base))
	default:
		return unexpected(b0)
	}
	return
}

func (dec *Decoder) nextE(b0 byte) (op Op, err error) {
	wide := b0&1 == 1

	switch b0 {
	case 0xe4, 0xe5:
		port, err := dec.nextb()
		if err != nil {
			return failed(err)
		}
		op = dyadic(OP_IN, regArg(0, wide), Uimm8(port))
	case 0xe6, 0xe7:
		port, err := dec.nextb()
		if err != nil {
			return failed(err)
		}
		op = dyadic(OP_OUT, Uimm8(port), regArg(0, wide))
	case 0xe8, 0xe9:
		w, err := dec.nextw()
		if err != nil {
			return failed(err)
		}
		mn := OP_CALL
		if b0 == 0xe9 {
			mn = OP_JMP
		}
		op = monadic(mn, Imm16(int16(w)))
	case 0xea:
		off, err := dec.nextw()
		if err != nil {
			return failed(err)
		}
		seg, err := dec.nextw()
		if err != nil {
			return failed(err)
		}
		op = dyadic(OP_JMP_FAR, Uimm16(seg), Uimm16(off))
	case 0xeb:
		disp, err := dec.nextb()
		if err != nil {
			return failed(err)
		}
		op = monadic(OP_JMP, Imm8(int8(disp)))
	case 0xec, 0xed:
		op = dyadic(OP_IN, regArg(0, wide), REG16_DX)
	case 0xee, 0xef:
		op = dyadic(OP_OUT, REG16_DX, regArg(0, wide))
	default:
		return unexpected(b0)
	}
	return
}

func (dec *Decoder) nextF(b0 byte) (op Op, err error) {
	wide := b0&1 == 1

	switch b0 {
	case 0xf0:
		if dec.lock {
			return invalid(INVALID_TOO_MANY_PREFIXES, b0)
		}
		dec.lock = true
		return dec.nextOp()
	case 0xf2, 0xf3:
		if dec.rep != REP_NONE {
			return invalid(INVALID_TOO_MANY_PREFIXES, b0)
		}
		dec.rep = REP_REP
		if b0 == 0xf2 {
			dec.rep = REP_REPNE
		}
		return dec.nextOp()
	case 0xf4:
		op = Op{Mnemonic: OP_HLT}
	case 0xf5:
		op = Op{Mnemonic: OP_CMC}
	case 0xf6, 0xf7:
		// grp3: only test r, imm is decoded
		b1, reg, rm, err := dec.modrm(b0)
		if err != nil {
			return failed(err)
		}
		if reg != 0 {
			return invalid(INVALID_UNEXPECTED_BYTES, b0, b1)
		}
		src, err := dec.imm(wide)
		if err != nil {
			return failed(err)
		}
		op = dyadic(OP_TEST, regArg(rm, wide), src)
	case 0xf8:
		op = Op{Mnemonic: OP_CLC}
	case 0xf9:
		op = Op{Mnemonic: OP_STC}
	case 0xfa:
		op = Op{Mnemonic: OP_CLI}
	case 0xfb:
		op = Op{Mnemonic: OP_STI}
	case 0xfc:
		op = Op{Mnemonic: OP_CLD}
	case 0xfd:
		op = Op{Mnemonic: OP_STD}
	case 0xfe, 0xff:
		// grp4/grp5: only inc and dec are decoded
		b1, reg, rm, err := dec.modrm(b0)
		if err != nil {
			return failed(err)
		}
		switch reg {
		case 0:
			op = monadic(OP_INC, regArg(rm, wide))
		case 1:
			op = monadic(OP_DEC, regArg(rm, wide))
		default:
			return invalid(INVALID_UNEXPECTED_BYTES, b0, b1)
		}
	default:
		// 0xf1
		return unexpected(b0)
	}
	return
}

// nextOp dispatches on the high nibble of the next byte.
func (dec *Decoder) nextOp() (op Op, err error) {
	b0, err := dec.nextb()
	if err != nil {
		return
	}

	switch b0 >> 4 {
	case 0x0:
		return dec.next0(b0)
	case 0x1:
		return dec.next1(b0)
	case 0x2:
		return dec.next2(b0)
	case 0x3:
		return dec.next3(b0)
	case 0x4:
		return dec.next4(b0)
	case 0x5:
		return dec.next5(b0)
	case 0x6:
		return dec.next6(b0)
	case 0x7:
		return dec.next7(b0)
	case 0x8:
		return dec.next8(b0)
	case 0x9:
		return dec.next9(b0)
	case 0xa:
		return dec.nextA(b0)
	case 0xb:
		return dec.nextB(b0)
	case 0xc:
		return dec.nextC(b0)
	case 0xd:
		return dec.nextD(b0)
	case 0xe:
		return dec.nextE(b0)
	default:
		return dec.nextF(b0)
	}
}
