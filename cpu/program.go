package cpu

import (
	"iter"
	"slices"
	"strings"
)

// Program is an immutable list of instructions.
type Program struct {
	codes []Instruction
}

// NewProgram creates a program from a copy of the instructions.
func NewProgram(codes ...Instruction) (prog *Program) {
	prog = &Program{
		codes: slices.Clone(codes),
	}

	return
}

// Len returns the number of instructions.
// An IP equal to Len() is the normal exit point.
func (prog *Program) Len() int {
	return len(prog.codes)
}

// At returns the instruction at ip.
func (prog *Program) At(ip int) (code Instruction, ok bool) {
	if ip < 0 || ip >= len(prog.codes) {
		return
	}

	return prog.codes[ip], true
}

// Instructions iterates over the instructions with their IP.
func (prog *Program) Instructions() iter.Seq2[int, Instruction] {
	return func(yield func(ip int, code Instruction) bool) {
		for ip, code := range prog.codes {
			if !yield(ip, code) {
				return
			}
		}
	}
}

// Patch returns a new program with the instruction at ip replaced.
// The receiver is unchanged.
func (prog *Program) Patch(ip int, code Instruction) (patched *Program) {
	if ip < 0 || ip >= len(prog.codes) {
		panic("patch outside of program")
	}

	patched = NewProgram(prog.codes...)
	patched.codes[ip] = code

	return
}

// String disassembles the program, one instruction per line.
func (prog *Program) String() string {
	lines := make([]string, 0, len(prog.codes))
	for _, code := range prog.codes {
		lines = append(lines, code.String())
	}

	return strings.Join(lines, "\n")
}
