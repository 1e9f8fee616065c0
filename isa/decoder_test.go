package isa

import (
	"errors"
	"iter"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		code []byte
		op   Op
		size int
	}){
		{"mov_ax_imm", []byte{0xb8, 0x34, 0x12}, dyadic(OP_MOV, REG16_AX, Uimm16(0x1234)), 3},
		{"mov_bh_imm", []byte{0xb7, 0x7f}, dyadic(OP_MOV, REG8_BH, Uimm8(0x7f)), 2},
		{"mov_di_imm", []byte{0xbf, 0xcd, 0xab}, dyadic(OP_MOV, REG16_DI, Uimm16(0xabcd)), 3},
		{"hlt", []byte{0xf4}, Op{Mnemonic: OP_HLT}, 1},
		{"jmp_far", []byte{0xea, 0x00, 0x10, 0x00, 0xf0}, dyadic(OP_JMP_FAR, Uimm16(0xf000), Uimm16(0x1000)), 5},
		{"add_rm_reg", []byte{0x01, 0xd8}, dyadic(OP_ADD, REG16_AX, REG16_BX), 2},
		{"add_reg_rm", []byte{0x03, 0xd8}, dyadic(OP_ADD, REG16_BX, REG16_AX), 2},
		{"sub_al_imm", []byte{0x2c, 0x05}, dyadic(OP_SUB, REG8_AL, Uimm8(5)), 2},
		{"cmp_ax_imm", []byte{0x3d, 0x01, 0x02}, dyadic(OP_CMP, REG16_AX, Uimm16(0x0201)), 3},
		{"xor_cl_dh", []byte{0x30, 0xf1}, dyadic(OP_XOR, REG8_CL, REG8_DH), 2},
		{"grp1_80", []byte{0x80, 0xc1, 0x10}, dyadic(OP_ADD, REG8_CL, Uimm8(0x10)), 3},
		{"grp1_81", []byte{0x81, 0xfb, 0x34, 0x12}, dyadic(OP_CMP, REG16_BX, Uimm16(0x1234)), 4},
		{"grp1_83", []byte{0x83, 0xe8, 0xff}, dyadic(OP_SUB, REG16_AX, Imm8(-1)), 3},
		{"push_es", []byte{0x06}, monadic(OP_PUSH, SREG_ES), 1},
		{"pop_ds", []byte{0x1f}, monadic(OP_POP, SREG_DS), 1},
		{"push_cs", []byte{0x0e}, monadic(OP_PUSH, SREG_CS), 1},
		{"inc_si", []byte{0x46}, monadic(OP_INC, REG16_SI), 1},
		{"dec_bp", []byte{0x4d}, monadic(OP_DEC, REG16_BP), 1},
		{"push_bx", []byte{0x53}, monadic(OP_PUSH, REG16_BX), 1},
		{"pop_cx", []byte{0x59}, monadic(OP_POP, REG16_CX), 1},
		{"jz", []byte{0x74, 0xfe}, Op{Mnemonic: OP_JCC, Cond: COND_E, Args: []Arg{Imm8(-2)}}, 2},
		{"jnle", []byte{0x7f, 0x10}, Op{Mnemonic: OP_JCC, Cond: COND_NLE, Args: []Arg{Imm8(0x10)}}, 2},
		{"test_r8", []byte{0x84, 0xc3}, dyadic(OP_TEST, REG8_BL, REG8_AL), 2},
		{"xchg_r16", []byte{0x87, 0xca}, dyadic(OP_XCHG, REG16_DX, REG16_CX), 2},
		{"mov_rm_reg", []byte{0x89, 0xc3}, dyadic(OP_MOV, REG16_BX, REG16_AX), 2},
		{"mov_reg_rm", []byte{0x8a, 0xc3}, dyadic(OP_MOV, REG8_AL, REG8_BL), 2},
		{"mov_r16_sreg", []byte{0x8c, 0xd8}, dyadic(OP_MOV, REG16_AX, SREG_DS), 2},
		{"mov_sreg_r16", []byte{0x8e, 0xd0}, dyadic(OP_MOV, SREG_SS, REG16_AX), 2},
		{"lea", []byte{0x8d, 0xc3}, dyadic(OP_LEA, REG16_AX, REG16_BX), 2},
		{"pop_rm", []byte{0x8f, 0xc2}, monadic(OP_POP, REG16_DX), 2},
		{"nop", []byte{0x90}, Op{Mnemonic: OP_NOP}, 1},
		{"xchg_ax", []byte{0x93}, dyadic(OP_XCHG, REG16_AX, REG16_BX), 1},
		{"cbw", []byte{0x98}, Op{Mnemonic: OP_CBW}, 1},
		{"cwd", []byte{0x99}, Op{Mnemonic: OP_CWD}, 1},
		{"test_ax", []byte{0xa9, 0x00, 0x80}, dyadic(OP_TEST, REG16_AX, Uimm16(0x8000)), 3},
		{"ret", []byte{0xc3}, Op{Mnemonic: OP_RET}, 1},
		{"ret_imm", []byte{0xc2, 0x04, 0x00}, monadic(OP_RET, Uimm16(4)), 3},
		{"aam", []byte{0xd4, 0x0a}, monadic(OP_AAM, Uimm8(0x0a)), 2},
		{"aad", []byte{0xd5, 0x10}, monadic(OP_AAD, Uimm8(0x10)), 2},
		{"daa", []byte{0x27}, Op{Mnemonic: OP_DAA}, 1},
		{"aas", []byte{0x3f}, Op{Mnemonic: OP_AAS}, 1},
		{"in_al", []byte{0xe4, 0x60}, dyadic(OP_IN, REG8_AL, Uimm8(0x60)), 2},
		{"out_dx", []byte{0xef}, dyadic(OP_OUT, REG16_DX, REG16_AX), 1},
		{"out_imm", []byte{0xe6, 0xe9}, dyadic(OP_OUT, Uimm8(0xe9), REG8_AL), 2},
		{"call", []byte{0xe8, 0xfd, 0xff}, monadic(OP_CALL, Imm16(-3)), 3},
		{"jmp_near", []byte{0xe9, 0x00, 0x01}, monadic(OP_JMP, Imm16(0x100)), 3},
		{"jmp_short", []byte{0xeb, 0x80}, monadic(OP_JMP, Imm8(-128)), 2},
		{"test_grp3", []byte{0xf6, 0xc1, 0x01}, dyadic(OP_TEST, REG8_CL, Uimm8(1)), 3},
		{"inc_r8", []byte{0xfe, 0xc4}, monadic(OP_INC, REG8_AH), 2},
		{"dec_r16", []byte{0xff, 0xcf}, monadic(OP_DEC, REG16_DI), 2},
		{"cmc", []byte{0xf5}, Op{Mnemonic: OP_CMC}, 1},
		{"std", []byte{0xfd}, Op{Mnemonic: OP_STD}, 1},
	}

	for _, entry := range table {
		inst, err := Decode(entry.code)
		if !assert.NoError(err, entry.name) {
			continue
		}
		assert.Equal(entry.op, inst.Op, entry.name)
		assert.Equal(entry.size, inst.Size, entry.name)
		assert.False(inst.Lock, entry.name)
		assert.Equal(REP_NONE, inst.Rep, entry.name)
		assert.False(inst.SegmentOverride, entry.name)
	}
}

func TestDecodePrefix(t *testing.T) {
	assert := assert.New(t)

	inst, err := Decode([]byte{0xf0, 0xf3, 0x2e, 0x90})
	assert.NoError(err)
	assert.True(inst.Lock)
	assert.Equal(REP_REP, inst.Rep)
	assert.True(inst.SegmentOverride)
	assert.Equal(SREG_CS, inst.Segment)
	assert.Equal(OP_NOP, inst.Op.Mnemonic)
	assert.Equal(4, inst.Size)

	inst, err = Decode([]byte{0xf2, 0x90})
	assert.NoError(err)
	assert.Equal(REP_REPNE, inst.Rep)
}

func TestDecodeInvalid(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		code   []byte
		reason Invalid
		bytes  []byte
	}){
		{"lock_lock", []byte{0xf0, 0xf0, 0x90}, INVALID_TOO_MANY_PREFIXES, []byte{0xf0}},
		{"rep_repne", []byte{0xf3, 0xf2, 0x90}, INVALID_TOO_MANY_PREFIXES, []byte{0xf2}},
		{"seg_seg", []byte{0x26, 0x3e, 0x90}, INVALID_TOO_MANY_PREFIXES, []byte{0x3e}},
		{"mem_mode", []byte{0x01, 0x07}, INVALID_ADDRESSING_MODE, []byte{0x01, 0x07}},
		{"mem_mode_grp1", []byte{0x81, 0x47, 0x00, 0x00}, INVALID_ADDRESSING_MODE, []byte{0x81, 0x47}},
		{"two_byte", []byte{0x0f, 0x01}, INVALID_UNEXPECTED_BYTE, []byte{0x0f}},
		{"pusha", []byte{0x60}, INVALID_UNEXPECTED_BYTE, []byte{0x60}},
		{"int3", []byte{0xcc}, INVALID_UNEXPECTED_BYTE, []byte{0xcc}},
		{"icebp", []byte{0xf1}, INVALID_UNEXPECTED_BYTE, []byte{0xf1}},
		{"mov_sreg_bad", []byte{0x8e, 0xe0}, INVALID_UNEXPECTED_BYTES, []byte{0x8e, 0xe0}},
		{"grp3_not", []byte{0xf7, 0xd0}, INVALID_UNEXPECTED_BYTES, []byte{0xf7, 0xd0}},
	}

	for _, entry := range table {
		inst, err := Decode(entry.code)
		assert.ErrorIs(err, ErrDecode, entry.name)

		var inv *ErrInvalid
		if assert.True(errors.As(err, &inv), entry.name) {
			assert.Equal(entry.reason, inv.Reason, entry.name)
			assert.Equal(entry.bytes, inv.Bytes, entry.name)
		}

		assert.Equal(OP_INVALID, inst.Op.Mnemonic, entry.name)
		assert.Equal(entry.reason, inst.Op.Invalid, entry.name)
		assert.False(inst.Op.Executable(), entry.name)
		assert.Len(inst.Op.Args, len(entry.bytes), entry.name)
	}
}

func TestDecodeEndOfStream(t *testing.T) {
	assert := assert.New(t)

	for _, code := range [][]byte{
		{},
		{0xb8, 0x34},
		{0xea, 0x00, 0x10, 0x00},
		{0xf0, 0x2e},
		{0x01},
	} {
		inst, err := Decode(code)
		assert.ErrorIs(err, ErrEndOfStream, "% 02x", code)
		assert.NotErrorIs(err, ErrDecode, "% 02x", code)
		assert.Equal(Inst{}, inst, "% 02x", code)
	}
}

func TestDecoderStream(t *testing.T) {
	assert := assert.New(t)

	code := []byte{0xb8, 0x00, 0xf0, 0x8e, 0xd0, 0xf3, 0x90, 0x06, 0xf4}
	next, stop := iter.Pull(slices.Values(code))
	defer stop()

	dec := NewDecoder(next)

	var ops []string
	total := 0
	for {
		inst, err := dec.Next()
		if errors.Is(err, ErrEndOfStream) {
			break
		}
		assert.NoError(err)
		// prefix state must not leak into the following instruction
		if inst.Op.Mnemonic == OP_PUSH {
			assert.Equal(REP_NONE, inst.Rep)
		}
		ops = append(ops, inst.Op.String())
		total += inst.Size
	}

	assert.Equal([]string{"mov ax, 0xF000", "mov ss, ax", "nop", "push es", "hlt"}, ops)
	assert.Equal(len(code), total)
}

func FuzzDecode(f *testing.F) {
	f.Add([]byte{0xb8, 0x34, 0x12})
	f.Add([]byte{0xf0, 0xf3, 0x26, 0x81, 0xc3, 0x01, 0x02})
	f.Add([]byte{0xea, 0x00, 0x10, 0x00, 0xf0})
	f.Add([]byte{0x8e, 0x06})

	f.Fuzz(func(t *testing.T, code []byte) {
		assert := assert.New(t)

		inst1, err1 := Decode(code)
		inst2, err2 := Decode(code)

		assert.Equal(inst1, inst2)
		assert.Equal(err1, err2)

		if err1 == nil {
			assert.True(inst1.Op.Executable())
			assert.LessOrEqual(inst1.Size, len(code))
			assert.Positive(inst1.Size)
		}
	})
}
