// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"io"
	"log"
	"strconv"
	"strings"
)

// Assembler translates boot code text into a Program.
type Assembler struct {
	Verbose bool          // If set, verbosely logs the assembler actions.
	Code    []Instruction // List of instructions from the last Parse.
}

// valueOf returns the value of a signed decimal word.
func (asm *Assembler) valueOf(word string) (value int, err error) {
	v64, err := strconv.ParseInt(word, 10, 32)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	value = int(v64)
	return
}

// parseLine parses a single line as an instruction.
func (asm *Assembler) parseLine(line string) (code Instruction, err error) {
	words := strings.Split(line, " ")

	if len(words[0]) == 0 {
		err = ErrOpcodeMissing
		return
	}

	op, ok := opMap[words[0]]
	if !ok {
		err = ErrOpcodeInvalid
		return
	}

	switch {
	case len(words) > 2:
		err = ErrOpcodeExtraArgs
		return
	case len(words) < 2 || len(words[1]) == 0:
		err = ErrOpcodeValueMissing
		return
	}

	arg, err := asm.valueOf(words[1])
	if err != nil {
		return
	}

	code = Instruction{Op: op, Arg: arg}
	return
}

// Parse parses an input stream into a Program.
// Any malformed line aborts the parse with an *ErrMalformedInstruction.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil && lineno > 0 {
			err = &ErrMalformedInstruction{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Code = asm.Code[:0]

	for scanner.Scan() {
		line = scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, line)
		}

		var code Instruction
		code, err = asm.parseLine(line)
		if err != nil {
			return
		}

		asm.Code = append(asm.Code, code)
	}

	// Read errors are not tied to a line.
	lineno = 0
	err = scanner.Err()
	if err != nil {
		return
	}

	prog = NewProgram(asm.Code...)
	return
}
