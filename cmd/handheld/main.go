// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ezrec/handheld/emulator"
	"github.com/ezrec/handheld/repair"
)

func main() {
	var input string
	var strategy string
	var workers int
	var unique bool
	var verbose bool

	flag.StringVar(&input, "i", "-", "Boot code input")
	flag.StringVar(&strategy, "s", repair.STRATEGY_BRUTE.String(), "Repair strategy (brute, parallel, resume)")
	flag.IntVar(&workers, "j", 0, "Parallel repair workers, 0 for all CPUs")
	flag.BoolVar(&unique, "u", false, "Fail if more than one repair exists")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %v [options] part_1|part_2\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	part := flag.Arg(0)

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.Workers = workers
	emu.Unique = unique

	var err error
	emu.Strategy, err = repair.ParseStrategy(strategy)
	if err != nil {
		log.Fatalf("%v: %v", strategy, err)
	}

	if input == "-" {
		err = emu.Load(os.Stdin)
	} else {
		var inf *os.File
		inf, err = os.Open(input)
		if err != nil {
			log.Fatalf("%v: %v", input, err)
		}
		defer inf.Close()
		err = emu.Load(inf)
	}
	if err != nil {
		log.Fatalf("%v: %v", input, err)
	}

	var acc int
	switch part {
	case "part_1":
		acc, err = emu.Boot()
	case "part_2":
		acc, err = emu.Repair()
	default:
		log.Fatalf("%v: Unknown part: %v", os.Args[0], part)
	}
	if err != nil {
		log.Fatalf("%v: %v", input, err)
	}

	fmt.Println(acc)
}
