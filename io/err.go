package io

import (
	"errors"

	"github.com/ezrec/emu86/translate"
)

var f = translate.From

var (
	// ErrRomEmpty is returned when a ROM image has no content.
	ErrRomEmpty = errors.New(f("rom image empty"))
	// ErrRange is returned when a device range is empty or inverted.
	ErrRange = errors.New(f("invalid address range"))
)
