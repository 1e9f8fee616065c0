package cpu

import (
	"errors"

	"github.com/ezrec/emu86/isa"
	"github.com/ezrec/emu86/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrHalted        = errors.New(f("cpu halted"))
	ErrNotExecutable = errors.New(f("instruction not executable"))
	ErrUnimplemented = errors.New(f("not implemented"))
	ErrDivideByZero  = errors.New(f("divide by zero"))
	ErrOperand       = errors.New(f("operand invalid"))
)

// ErrOpcode tags an execution error with the operation that raised it.
type ErrOpcode isa.Op

func (eo ErrOpcode) Error() string {
	return f("bad instruction '%v'", isa.Op(eo).String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}
