package emulator

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/handheld/cpu"
	"github.com/ezrec/handheld/repair"
)

var exampleText = strings.Join([]string{
	"nop +0",
	"acc +1",
	"jmp +4",
	"acc +3",
	"jmp -3",
	"acc -99",
	"acc +1",
	"jmp -4",
	"acc +6",
}, "\n") + "\n"

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.Nil(emu.Program)
	assert.Equal(repair.STRATEGY_BRUTE, emu.Strategy)

	_, err := emu.Boot()
	assert.ErrorIs(err, ErrProgramMissing)
	_, err = emu.Repair()
	assert.ErrorIs(err, ErrProgramMissing)
	assert.Equal(0, emu.LineNo(0))
}

func TestEmulatorBoot(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	assert.NoError(emu.Load(strings.NewReader(exampleText)))
	assert.Equal(9, emu.Program.Len())

	acc, err := emu.Boot()
	assert.NoError(err)
	assert.Equal(5, acc)
	assert.Equal(cpu.STATUS_LOOPED, emu.Outcome.Status)
	assert.Equal(2, emu.LineNo(emu.Outcome.Ip))
}

func TestEmulatorRepair(t *testing.T) {
	assert := assert.New(t)

	for _, strategy := range []repair.Strategy{repair.STRATEGY_BRUTE, repair.STRATEGY_PARALLEL, repair.STRATEGY_RESUME} {
		emu := NewEmulator()
		emu.Strategy = strategy
		emu.Unique = true
		assert.NoError(emu.Load(strings.NewReader(exampleText)))

		acc, err := emu.Repair()
		assert.NoError(err, strategy.String())
		assert.Equal(8, acc, strategy.String())
		assert.Equal(8, emu.LineNo(emu.Fix.Ip), strategy.String())
	}
}

func TestEmulatorInvalidAddress(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	assert.NoError(emu.Load(strings.NewReader("acc +1\nnop +0\njmp +5\n")))

	_, err := emu.Boot()
	var runtime *ErrRuntime
	if assert.True(errors.As(err, &runtime)) {
		assert.Equal(3, runtime.LineNo)
	}
	assert.ErrorIs(err, cpu.ErrInvalidAddress(0))
	assert.Equal(7, emu.Outcome.Ip)
}

func TestEmulatorTerminates(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	assert.NoError(emu.Load(strings.NewReader("acc +4\nacc -1\n")))

	acc, err := emu.Boot()
	assert.NoError(err)
	assert.Equal(3, acc)
	assert.Equal(cpu.STATUS_TERMINATED, emu.Outcome.Status)

	_, err = emu.Repair()
	assert.ErrorIs(err, repair.ErrNoRepairFound)
}

func TestEmulatorLoadMalformed(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	err := emu.Load(strings.NewReader("acc +1\nfoo +3\n"))

	var malformed *cpu.ErrMalformedInstruction
	if assert.True(errors.As(err, &malformed)) {
		assert.Equal(2, malformed.LineNo)
		assert.Equal("foo +3", malformed.Line)
	}
	assert.Nil(emu.Program)
}
