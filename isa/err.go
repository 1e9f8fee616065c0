package isa

import (
	"errors"
	"fmt"

	"github.com/ezrec/emu86/translate"
)

var f = translate.From

var (
	// ErrEndOfStream is returned when the byte source runs dry before an
	// instruction is complete. It is not a decode error.
	ErrEndOfStream = errors.New(f("end of stream"))

	// ErrDecode matches every *ErrInvalid via errors.Is.
	ErrDecode = errors.New(f("decode"))
)

// ErrInvalid reports a byte sequence the decoder refused.
type ErrInvalid struct {
	Reason Invalid // Why the bytes were refused.
	Bytes  []byte  // Offending bytes.
}

func (err *ErrInvalid) Error() string {
	return f("decode: %v: %v", err.Reason.String(), fmt.Sprintf("% 02x", err.Bytes))
}

func (err *ErrInvalid) Is(target error) bool {
	return target == ErrDecode
}
