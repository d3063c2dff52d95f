package cpu

import (
	"fmt"
)

// Op is an instruction operation.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_ACC = Op(0) // acc
	OP_JMP = Op(1) // jmp
	OP_NOP = Op(2) // nop
)

// opMap is a map of mnemonics to operations.
var opMap = map[string]Op{
	"acc": OP_ACC,
	"jmp": OP_JMP,
	"nop": OP_NOP,
}

// Instruction is a single decoded instruction and its signed argument.
//
// For OP_NOP the argument is unused by the processor, but kept so that a
// flipped OP_JMP can be flipped back.
type Instruction struct {
	Op  Op
	Arg int
}

// MakeAcc creates an accumulator adjust instruction.
func MakeAcc(delta int) Instruction {
	return Instruction{Op: OP_ACC, Arg: delta}
}

// MakeJmp creates a relative jump instruction.
func MakeJmp(offset int) Instruction {
	return Instruction{Op: OP_JMP, Arg: offset}
}

// MakeNop creates a no-op instruction.
func MakeNop(offset int) Instruction {
	return Instruction{Op: OP_NOP, Arg: offset}
}

// Flip swaps jmp and nop, keeping the argument.
// ok is false for instructions that cannot be flipped.
func (code Instruction) Flip() (flipped Instruction, ok bool) {
	switch code.Op {
	case OP_JMP:
		flipped, ok = MakeNop(code.Arg), true
	case OP_NOP:
		flipped, ok = MakeJmp(code.Arg), true
	default:
		flipped = code
	}

	return
}

// String returns the assembly language representation of this instruction.
func (code Instruction) String() string {
	return fmt.Sprintf("%v %+d", code.Op, code.Arg)
}
