// Package cpu implements the boot-code processor and assembler for the
// handheld console.
//
// The processor has a single accumulator and an instruction pointer (IP).
// Three opcodes exist: acc adjusts the accumulator, jmp moves the IP by a
// signed offset, and nop does nothing. Every run tracks the IP values that
// have started executing, so an instruction about to run for a second time
// halts the processor with a loop outcome rather than running forever.
//
// The assembler reads one `<mnemonic> <signed-integer>` instruction per line.
package cpu
