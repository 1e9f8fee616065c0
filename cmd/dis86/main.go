// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ezrec/emu86/disasm"
)

func main() {
	var origin uint
	var jobs int

	flag.UintVar(&origin, "o", 0, "Address of the first byte of each image")
	flag.IntVar(&jobs, "j", 4, "Images disassembled at once")

	flag.Parse()

	if flag.NArg() == 0 {
		logrus.Fatalf("%v: no images given", os.Args[0])
	}

	images := flag.Args()
	listings := make([]bytes.Buffer, len(images))

	var group errgroup.Group
	group.SetLimit(max(jobs, 1))
	for n, image := range images {
		group.Go(func() (err error) {
			code, err := os.ReadFile(image)
			if err != nil {
				return
			}
			err = disasm.Listing(&listings[n], code, uint32(origin))
			if err != nil {
				err = fmt.Errorf("%v: %w", image, err)
			}
			return
		})
	}

	err := group.Wait()
	if err != nil {
		logrus.Fatal(err)
	}

	for n, image := range images {
		if len(images) > 1 {
			fmt.Printf("%v:\n", image)
		}
		_, err = listings[n].WriteTo(os.Stdout)
		if err != nil {
			logrus.Fatal(err)
		}
	}
}
