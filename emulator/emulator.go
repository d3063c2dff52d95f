// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"io"
	"log"

	"github.com/ezrec/handheld/cpu"
	"github.com/ezrec/handheld/repair"
)

// Emulator state. Boot code program + CPU + repair search settings.
type Emulator struct {
	Verbose bool         // If set, enables verbose logging.
	Program *cpu.Program // Reference to the loaded program.

	Strategy repair.Strategy // Repair search strategy.
	Workers  int             // Concurrent runs for the parallel strategy.
	Unique   bool            // Reject programs with more than one repair.

	Outcome cpu.Outcome // Outcome of the last Boot.
	Fix     repair.Fix  // Result of the last Repair.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{}

	return
}

// Load assembles a program from its text.
func (emu *Emulator) Load(input io.Reader) (err error) {
	asm := &cpu.Assembler{Verbose: emu.Verbose}

	prog, err := asm.Parse(input)
	if err != nil {
		return
	}

	emu.Program = prog

	if emu.Verbose {
		log.Printf("emulator: loaded %d instructions", prog.Len())
	}

	return
}

// LineNo returns the source line number of an instruction, or 0 if the IP
// is outside of the program.
func (emu *Emulator) LineNo(ip int) int {
	if emu.Program == nil || ip < 0 || ip >= emu.Program.Len() {
		return 0
	}

	// One instruction per line.
	return ip + 1
}

// Boot runs the program from reset until it terminates or is about to
// repeat an instruction, and returns the accumulator at that point.
func (emu *Emulator) Boot() (acc int, err error) {
	if emu.Program == nil {
		err = ErrProgramMissing
		return
	}

	cp := cpu.NewCpu(emu.Program)
	cp.Verbose = emu.Verbose

	emu.Outcome = cp.Run()

	switch emu.Outcome.Status {
	case cpu.STATUS_TERMINATED, cpu.STATUS_LOOPED:
		acc = emu.Outcome.Acc
	default:
		err = &ErrRuntime{LineNo: emu.LineNo(emu.Outcome.Last), Err: emu.Outcome.Err()}
	}

	return
}

// Repair finds the single instruction flip that lets the program
// terminate, and returns the accumulator of the repaired program.
func (emu *Emulator) Repair() (acc int, err error) {
	if emu.Program == nil {
		err = ErrProgramMissing
		return
	}

	searcher := &repair.Searcher{
		Verbose:  emu.Verbose,
		Strategy: emu.Strategy,
		Workers:  emu.Workers,
		Unique:   emu.Unique,
	}

	fix, err := searcher.Search(emu.Program)
	if err != nil {
		return
	}

	emu.Fix = fix

	if emu.Verbose {
		log.Printf("emulator: line %d: %v -> %v (%d runs)", emu.LineNo(fix.Ip), fix.From, fix.To, searcher.Runs)
	}

	acc = fix.Acc
	return
}
