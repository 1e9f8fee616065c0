package emulator

import (
	"fmt"
	"iter"
	"maps"
	"path/filepath"
	"strconv"

	"github.com/sirupsen/logrus"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/emu86/cpu"
	"github.com/ezrec/emu86/internal"
	"github.com/ezrec/emu86/io"
)

const (
	RESET_SEGMENT = 0xF000 // Segment of the reset vector.
	KB            = 1024
	MB            = 1024 * KB
)

var _emulator_defines = map[string]string{
	"RESET_SEGMENT": fmt.Sprintf("0x%X", RESET_SEGMENT),
	"KB":            fmt.Sprintf("%d", KB),
	"MB":            fmt.Sprintf("%d", MB),
	"DEBUG_PORT":    fmt.Sprintf("0x%X", io.CONSOLE_PORT),
}

// Defines returns an iterator over all of the defines
func Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		cpu.Defines(),
		io.Defines(),
	)
}

// Config is the machine an Emulator builds.
type Config struct {
	Image        string // ROM image file.
	MemorySize   uint32 // Bytes of RAM mapped from address 0.
	LoadAddress  uint32 // Address the image is mapped at, and cs:ip starts from.
	StackPointer uint16 // Initial sp.
	ConsolePort  uint16 // Port of the console device.
}

// DefaultConfig maps the image at the reset segment, above 960KiB of RAM.
var DefaultConfig = Config{
	MemorySize:   0xF0000,
	LoadAddress:  RESET_SEGMENT << 4,
	StackPointer: 0xFFFE,
	ConsolePort:  io.CONSOLE_PORT,
}

// configInt reads an integer global, if present, checking it fits in bits.
func configInt(globals starlark.StringDict, name string, bits int) (value uint64, ok bool, err error) {
	st_value, ok := globals[name]
	if !ok {
		return
	}

	st_int, is_int := st_value.(starlark.Int)
	if !is_int {
		err = ErrConfigValue(name)
		return
	}

	value, in_range := st_int.Uint64()
	if !in_range || (bits < 64 && value >= 1<<bits) {
		err = ErrConfigValue(name)
		return
	}

	return
}

// LoadConfig runs a Starlark configuration file, and updates config from
// the globals it sets: image, memory_size, load_address, stack_pointer and
// console_port. Globals left unset keep their value in config.
//
// Every define is predeclared. A relative image path is resolved against
// the directory of the configuration file.
func LoadConfig(filename string, config *Config) (err error) {
	defer func() {
		if err != nil {
			err = &ErrConfig{Filename: filename, Err: err}
		}
	}()

	pred := starlark.StringDict{}
	for key, str := range Defines() {
		var value int64
		value, err = strconv.ParseInt(str, 0, 64)
		if err != nil {
			return
		}
		pred[key] = starlark.MakeInt64(value)
	}

	thread := starlark.Thread{
		Name: filename,
		Print: func(_ *starlark.Thread, msg string) {
			logrus.WithField("config", filename).Info(msg)
		},
	}
	opts := syntax.FileOptions{}
	globals, err := starlark.ExecFileOptions(&opts, &thread, filename, nil, pred)
	if err != nil {
		return
	}

	if st_image, ok := globals["image"]; ok {
		image, is_str := starlark.AsString(st_image)
		if !is_str {
			err = ErrConfigValue("image")
			return
		}
		if !filepath.IsAbs(image) {
			image = filepath.Join(filepath.Dir(filename), image)
		}
		config.Image = image
	}

	for _, entry := range []struct {
		name  string
		bits  int
		apply func(value uint64)
	}{
		{"memory_size", 21, func(value uint64) { config.MemorySize = uint32(value) }},
		{"load_address", 20, func(value uint64) { config.LoadAddress = uint32(value) }},
		{"stack_pointer", 16, func(value uint64) { config.StackPointer = uint16(value) }},
		{"console_port", 16, func(value uint64) { config.ConsolePort = uint16(value) }},
	} {
		var value uint64
		var ok bool
		value, ok, err = configInt(globals, entry.name, entry.bits)
		if err != nil {
			return
		}
		if ok {
			entry.apply(value)
		}
	}

	logrus.WithFields(logrus.Fields{
		"image":         config.Image,
		"memory_size":   config.MemorySize,
		"load_address":  config.LoadAddress,
		"stack_pointer": config.StackPointer,
		"console_port":  config.ConsolePort,
	}).Debug("config: loaded")

	return
}
