// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/ezrec/emu86/disasm"
	"github.com/ezrec/emu86/emulator"
	"github.com/ezrec/emu86/translate"
)

// stepper waits for the user between cycles.
type stepper struct {
	fd    int
	input *bufio.Reader
}

func newStepper() *stepper {
	return &stepper{
		fd:    int(os.Stdin.Fd()),
		input: bufio.NewReader(os.Stdin),
	}
}

// Wait for a single key on a terminal, or a line otherwise.
func (st *stepper) Wait() (err error) {
	if !term.IsTerminal(st.fd) {
		_, err = st.input.ReadString('\n')
		return
	}

	state, err := term.MakeRaw(st.fd)
	if err != nil {
		return
	}
	defer func() { _ = term.Restore(st.fd, state) }()

	_, err = st.input.ReadByte()

	return
}

// step runs emu one cycle at a time, showing each instruction.
func step(emu *emulator.Emulator, limit int, st *stepper) (err error) {
	for ticks := 0; limit <= 0 || ticks < limit; ticks++ {
		fmt.Print(emu.Cpu.String())
		err = st.Wait()
		if err != nil {
			return
		}

		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}

		fmt.Printf("%05X %v\n", emu.Last.Address, disasm.Format(emu.Last.Address, emu.Last.Inst))
	}

	err = emulator.ErrTickLimit
	return
}

func main() {
	var config_file string
	var memory uint
	var load uint
	var stack uint
	var port uint
	var single bool
	var verbose bool
	var trace bool
	var limit int
	var load_ram string
	var save_ram string

	flag.StringVar(&config_file, "c", "", "Starlark machine description")
	flag.UintVar(&memory, "m", uint(emulator.DefaultConfig.MemorySize), "RAM size in bytes")
	flag.UintVar(&load, "a", uint(emulator.DefaultConfig.LoadAddress), "Image load address")
	flag.UintVar(&stack, "p", uint(emulator.DefaultConfig.StackPointer), "Initial stack pointer")
	flag.UintVar(&port, "e", uint(emulator.DefaultConfig.ConsolePort), "Console port")
	flag.BoolVar(&single, "s", false, "Step mode, wait for a key between cycles")
	flag.BoolVar(&verbose, "v", false, "Verbose mode, log each instruction")
	flag.BoolVar(&trace, "t", false, "Trace mode, log registers and operands")
	flag.IntVar(&limit, "n", 0, "Tick limit per image, 0 for none")
	flag.StringVar(&load_ram, "r", "", "RAM snapshot to load before each image runs")
	flag.StringVar(&save_ram, "w", "", "RAM snapshot to save after each image stops")

	flag.Parse()

	logrus.SetOutput(os.Stderr)
	switch {
	case trace:
		logrus.SetLevel(logrus.TraceLevel)
	case verbose:
		logrus.SetLevel(logrus.DebugLevel)
	}

	config := emulator.DefaultConfig
	if len(config_file) != 0 {
		err := emulator.LoadConfig(config_file, &config)
		if err != nil {
			logrus.Fatal(err)
		}
	}

	// Explicit flags override the machine description.
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "m":
			config.MemorySize = uint32(memory)
		case "a":
			config.LoadAddress = uint32(load)
		case "p":
			config.StackPointer = uint16(stack)
		case "e":
			config.ConsolePort = uint16(port)
		}
	})

	images := flag.Args()
	if len(images) == 0 {
		if len(config.Image) == 0 {
			logrus.Fatalf("%v: no image to run", os.Args[0])
		}
		images = []string{config.Image}
	}

	var st *stepper
	if single {
		st = newStepper()
	}

	failed := 0
	for _, image := range images {
		config.Image = image

		emu, err := emulator.NewEmulator(config)
		if err != nil {
			logrus.WithField("image", image).Error(err)
			failed++
			continue
		}

		if len(load_ram) != 0 {
			err = emu.LoadSnapshot(load_ram)
			if err != nil {
				logrus.WithField("image", image).Error(err)
				failed++
				continue
			}
		}

		emu.Console.Output = os.Stdout
		if st == nil {
			emu.Console.Input = os.Stdin
			err = emu.Run(limit)
		} else {
			err = step(emu, limit, st)
		}

		if len(save_ram) != 0 {
			serr := emu.SaveSnapshot(save_ram)
			if serr != nil {
				logrus.WithField("image", image).Error(serr)
				if err == nil {
					failed++
				}
			}
		}

		if err != nil {
			logrus.WithFields(logrus.Fields{
				"image": image,
				"ticks": emu.Ticks(),
			}).Error(err)
			fmt.Fprint(os.Stderr, emu.Cpu.String())
			failed++
			continue
		}

		logrus.WithFields(logrus.Fields{
			"image": image,
			"ticks": emu.Ticks(),
		}).Info("halted")
	}

	if failed != 0 {
		_, _ = translate.Fprintf(os.Stderr, "%v: %d of %d images failed\n", os.Args[0], failed, len(images))
		os.Exit(1)
	}
}
