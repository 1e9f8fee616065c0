// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ezrec/emu86/assembler"
)

// listFlag collects repeated string flags.
type listFlag []string

func (lf *listFlag) String() string {
	return strings.Join(*lf, ",")
}

func (lf *listFlag) Set(value string) error {
	*lf = append(*lf, value)
	return nil
}

func main() {
	var include listFlag
	var define listFlag
	var preprocess bool
	var output string

	flag.Var(&include, "I", "Directory to search for .include files")
	flag.Var(&define, "D", "Predefine NAME or NAME=VALUE")
	flag.BoolVar(&preprocess, "E", false, "Print the preprocessed source only")
	flag.StringVar(&output, "o", "a.bin", "Binary image to write")

	flag.Parse()

	if flag.NArg() == 0 {
		logrus.Fatalf("%v: no source given", os.Args[0])
	}

	asm := &assembler.Assembler{IncludePath: include}
	for _, def := range define {
		name, value, ok := strings.Cut(def, "=")
		if !ok {
			value = "1"
		}
		asm.Predefine(name, value)
	}

	var image []byte
	for _, source := range flag.Args() {
		inf, err := os.Open(source)
		if err != nil {
			logrus.Fatal(err)
		}

		if preprocess {
			lines, err := asm.Preprocess(source, inf)
			inf.Close()
			if err != nil {
				logrus.Fatal(err)
			}
			for _, line := range lines {
				fmt.Println(line)
			}
			continue
		}

		code, err := asm.Assemble(source, inf)
		inf.Close()
		if err != nil {
			logrus.Fatal(err)
		}
		image = append(image, code...)
	}

	if preprocess {
		return
	}

	err := os.WriteFile(output, image, 0o644)
	if err != nil {
		logrus.Fatal(err)
	}
}
