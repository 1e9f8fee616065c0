package isa

// Cond is one of the sixteen branch conditions, in condition-code nibble order.
type Cond int

//go:generate go tool stringer -linecomment -type=Cond
const (
	COND_O   = Cond(0)  // o
	COND_NO  = Cond(1)  // no
	COND_B   = Cond(2)  // b
	COND_NB  = Cond(3)  // nb
	COND_E   = Cond(4)  // e
	COND_NE  = Cond(5)  // ne
	COND_BE  = Cond(6)  // be
	COND_NBE = Cond(7)  // nbe
	COND_S   = Cond(8)  // s
	COND_NS  = Cond(9)  // ns
	COND_P   = Cond(10) // p
	COND_NP  = Cond(11) // np
	COND_L   = Cond(12) // l
	COND_NL  = Cond(13) // nl
	COND_LE  = Cond(14) // le
	COND_NLE = Cond(15) // nle
)

// CondOf returns the condition for the low nibble of a Jcc opcode.
func CondOf(nibble byte) Cond {
	return Cond(nibble & 0xf)
}
