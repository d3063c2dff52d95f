package cpu

import (
	"errors"

	"github.com/ezrec/handheld/translate"
)

var f = translate.From

var (
	// Assembler errors
	ErrOpcodeMissing      = errors.New(f("opcode missing"))
	ErrOpcodeInvalid      = errors.New(f("opcode invalid"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
)

// ErrMalformedInstruction is returned by the assembler for a line that is
// not a valid instruction. No program is built.
type ErrMalformedInstruction struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrMalformedInstruction) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrMalformedInstruction) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a signed decimal number", string(err))
}

// ErrInvalidAddress is the IP of a jump that left the program.
type ErrInvalidAddress int

func (err ErrInvalidAddress) Error() string {
	return f("invalid address %d", int(err))
}

func (err ErrInvalidAddress) Is(target error) (ok bool) {
	_, ok = target.(ErrInvalidAddress)
	return
}

// ErrLooped reports the instruction that would have executed twice.
type ErrLooped struct {
	Ip  int
	Acc int
}

func (err ErrLooped) Error() string {
	return f("loop at %d with acc %d", err.Ip, err.Acc)
}

func (err ErrLooped) Is(target error) (ok bool) {
	_, ok = target.(ErrLooped)
	return
}
