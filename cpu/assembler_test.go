package cpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, prog.Len())
}

func TestAssemblerOpcodes(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	program := []string{
		"nop +0",
		"acc +1",
		"jmp +4",
		"acc -3",
		"jmp -3",
		"acc 99",
		"nop -2147483648",
		"jmp +2147483647",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n") + "\n"))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
		return
	}

	expected := []Instruction{
		MakeNop(0),
		MakeAcc(1),
		MakeJmp(4),
		MakeAcc(-3),
		MakeJmp(-3),
		MakeAcc(99),
		MakeNop(-2147483648),
		MakeJmp(2147483647),
	}

	assert.Equal(len(expected), prog.Len())
	for ip, code := range prog.Instructions() {
		assert.Equal(expected[ip], code, program[ip])
	}
	assert.Equal(expected, asm.Code)
}

func TestAssemblerMalformed(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		text   string
		lineno int
		line   string
		err    error
	}){
		{"unknown", "foo +3", 1, "foo +3", ErrOpcodeInvalid},
		{"upper", "acc +1\nJMP +3", 2, "JMP +3", ErrOpcodeInvalid},
		{"blank", "acc +1\n\nacc +2", 2, "", ErrOpcodeMissing},
		{"leading", " acc +1", 1, " acc +1", ErrOpcodeMissing},
		{"no_value", "nop", 1, "nop", ErrOpcodeValueMissing},
		{"empty_value", "nop ", 1, "nop ", ErrOpcodeValueMissing},
		{"extra", "jmp +1 +2", 1, "jmp +1 +2", ErrOpcodeExtraArgs},
		{"double_space", "jmp  +1", 1, "jmp  +1", ErrOpcodeExtraArgs},
		{"trailing", "acc +1 ", 1, "acc +1 ", ErrOpcodeExtraArgs},
		{"hex", "acc 0x10", 1, "acc 0x10", ErrParseNumber("0x10")},
		{"sign_only", "acc +", 1, "acc +", ErrParseNumber("+")},
		{"overflow", "acc +2147483648", 1, "acc +2147483648", ErrParseNumber("+2147483648")},
		{"tab", "acc\t+1", 1, "acc\t+1", ErrOpcodeInvalid},
	}

	for _, entry := range table {
		asm := &Assembler{}
		prog, err := asm.Parse(strings.NewReader(entry.text))
		assert.Nil(prog, entry.name)

		var malformed *ErrMalformedInstruction
		if !assert.True(errors.As(err, &malformed), entry.name) {
			continue
		}
		assert.Equal(entry.lineno, malformed.LineNo, entry.name)
		assert.Equal(entry.line, malformed.Line, entry.name)
		assert.ErrorIs(err, entry.err, entry.name)
	}
}

func TestAssemblerMalformedMessage(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	_, err := asm.Parse(strings.NewReader("foo +3"))
	assert.Equal(&ErrMalformedInstruction{LineNo: 1, Line: "foo +3", Err: ErrOpcodeInvalid}, err)
	assert.Contains(err.Error(), "foo +3")
}

type failReader struct{}

var errRead = errors.New("read failed")

func (failReader) Read(p []byte) (int, error) {
	return 0, errRead
}

func TestAssemblerReadError(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.Parse(failReader{})
	assert.Nil(prog)
	assert.Equal(errRead, err)
}

func TestAssemblerReuse(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	first, err := asm.Parse(strings.NewReader("acc +1\nacc +2"))
	assert.NoError(err)
	second, err := asm.Parse(strings.NewReader("jmp +0"))
	assert.NoError(err)

	assert.Equal(2, first.Len())
	assert.Equal(1, second.Len())
	code, ok := first.At(1)
	assert.True(ok)
	assert.Equal(MakeAcc(2), code)
}
