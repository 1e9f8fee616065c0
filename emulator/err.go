package emulator

import (
	"errors"

	"github.com/ezrec/emu86/translate"
)

var f = translate.From

var (
	ErrImageMissing = errors.New(f("image missing"))
	ErrTickLimit    = errors.New(f("tick limit reached"))
	ErrRamMissing   = errors.New(f("no RAM configured"))
)

// ErrRuntime indicates the address of a runtime error.
type ErrRuntime struct {
	Address uint32
	Err     error
}

func (err *ErrRuntime) Error() string {
	return f("at %05X %v", err.Address, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrConfig indicates a configuration file that could not be applied.
type ErrConfig struct {
	Filename string
	Err      error
}

func (err *ErrConfig) Error() string {
	return f("config %v: %v", err.Filename, err.Err)
}

func (err *ErrConfig) Unwrap() error {
	return err.Err
}

// ErrConfigValue indicates a configuration global of the wrong type or range.
type ErrConfigValue string

func (err ErrConfigValue) Error() string {
	return f("'%v' has an invalid value", string(err))
}
