package assembler

import (
	"errors"

	"github.com/ezrec/emu86/translate"
)

var f = translate.From

var (
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
	ErrIncludeSyntax   = errors.New(f(".include syntax"))
	ErrIncludeDepth    = errors.New(f(".include nested too deeply"))
	ErrNotImplemented  = errors.New(f("instruction encoding not implemented"))
)

// ErrSyntax locates an error in the source text.
type ErrSyntax struct {
	Filename string
	LineNo   int
	Line     string
	Err      error
}

func (err ErrSyntax) Error() string {
	return f("%v:%d '%v' %v", err.Filename, err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrIncludeMissing string

func (err ErrIncludeMissing) Error() string {
	return f("'%v' not found in include path", string(err))
}
