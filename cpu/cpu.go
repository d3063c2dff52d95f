package cpu

import (
	"fmt"
	"log"
	"maps"
)

// Status is the way a run ended.
type Status int

//go:generate go tool stringer -linecomment -type=Status
const (
	STATUS_TERMINATED      = Status(0) // terminated
	STATUS_LOOPED          = Status(1) // looped
	STATUS_INVALID_ADDRESS = Status(2) // invalid-address
)

// State is the start state of a run.
type State struct {
	Ip      int          // Initial instruction pointer.
	Acc     int          // Initial accumulator.
	Visited map[int]bool // IPs treated as already executed.
}

// Outcome is the result of a run.
type Outcome struct {
	Status Status // How the run ended.
	Acc    int    // Accumulator when the run ended.
	Ip     int    // Exit IP, repeated IP, or invalid address.
	Last   int    // Last executed IP, or -1 if none ran.
	Ticks  int    // Instructions executed.
}

// Err returns nil for a terminated run, and the matching runtime error
// otherwise.
func (out Outcome) Err() error {
	switch out.Status {
	case STATUS_LOOPED:
		return ErrLooped{Ip: out.Ip, Acc: out.Acc}
	case STATUS_INVALID_ADDRESS:
		return ErrInvalidAddress(out.Ip)
	}

	return nil
}

// String returns the outcome as text.
func (out Outcome) String() string {
	return fmt.Sprintf("%v ip=%d acc=%d ticks=%d", out.Status, out.Ip, out.Acc, out.Ticks)
}

// Cpu is the simulation context for the boot code processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Program *Program // Program being executed.

	Ip    int // Current instruction pointer.
	Acc   int // Accumulator.
	Last  int // Last executed instruction pointer.
	Ticks int // Instructions executed since reset.

	visited map[int]bool // Loop detector.
}

// NewCpu creates a new CPU for a program, reset to the zero state.
func NewCpu(prog *Program) (cpu *Cpu) {
	cpu = &Cpu{
		Program: prog,
	}

	cpu.Reset(State{})

	return
}

// Run executes a program from a start state to its outcome.
func Run(prog *Program, state State) Outcome {
	cpu := NewCpu(prog)
	cpu.Reset(state)
	return cpu.Run()
}

// Reset the CPU to a start state.
// The visited set is copied; the caller's map is never modified.
func (cpu *Cpu) Reset(state State) {
	if cpu.Verbose {
		log.Printf("cpu: reset ip=%d acc=%d visited=%d", state.Ip, state.Acc, len(state.Visited))
	}

	cpu.Ip = state.Ip
	cpu.Acc = state.Acc
	cpu.Last = -1
	cpu.Ticks = 0

	if state.Visited == nil {
		cpu.visited = make(map[int]bool, cpu.Program.Len())
	} else {
		cpu.visited = maps.Clone(state.Visited)
	}
}

// Visited returns true if the IP has started executing this run.
func (cpu *Cpu) Visited(ip int) bool {
	return cpu.visited[ip]
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("% 5s: %d\n", "ip", cpu.Ip)
	text += fmt.Sprintf("% 5s: %d\n", "acc", cpu.Acc)
	text += fmt.Sprintf("% 5s: %d\n", "last", cpu.Last)
	text += fmt.Sprintf("% 5s: %d\n", "ticks", cpu.Ticks)

	return
}

// outcome builds the outcome for the current state.
func (cpu *Cpu) outcome(status Status) (out Outcome) {
	out = Outcome{
		Status: status,
		Acc:    cpu.Acc,
		Ip:     cpu.Ip,
		Last:   cpu.Last,
		Ticks:  cpu.Ticks,
	}

	if cpu.Verbose {
		log.Printf("cpu: %v", out)
	}

	return
}

// Tick executes a single instruction.
// done is set, and outcome valid, when the run has ended.
func (cpu *Cpu) Tick() (outcome Outcome, done bool) {
	size := cpu.Program.Len()

	switch {
	case cpu.Ip == size:
		return cpu.outcome(STATUS_TERMINATED), true
	case cpu.Ip < 0 || cpu.Ip > size:
		return cpu.outcome(STATUS_INVALID_ADDRESS), true
	case cpu.visited[cpu.Ip]:
		return cpu.outcome(STATUS_LOOPED), true
	}

	code, _ := cpu.Program.At(cpu.Ip)

	if cpu.Verbose {
		log.Printf("%04d: %v (acc %d)", cpu.Ip, code, cpu.Acc)
	}

	cpu.visited[cpu.Ip] = true

	next_ip := cpu.Ip + 1

	switch code.Op {
	case OP_ACC:
		cpu.Acc += code.Arg
	case OP_JMP:
		next_ip = cpu.Ip + code.Arg
	case OP_NOP:
		// pass
	default:
		panic("unknown op")
	}

	cpu.Last = cpu.Ip
	cpu.Ip = next_ip
	cpu.Ticks += 1

	return
}

// Run ticks the CPU until the run ends.
func (cpu *Cpu) Run() (outcome Outcome) {
	for done := false; !done; {
		outcome, done = cpu.Tick()
	}

	return
}
