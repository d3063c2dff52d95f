package repair

import (
	"iter"
	"log"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ezrec/handheld/cpu"
)

// Strategy selects how candidate programs are evaluated.
type Strategy int

//go:generate go tool stringer -linecomment -type=Strategy
const (
	STRATEGY_BRUTE    = Strategy(0) // brute
	STRATEGY_PARALLEL = Strategy(1) // parallel
	STRATEGY_RESUME   = Strategy(2) // resume
)

var strategyMap = map[string]Strategy{
	STRATEGY_BRUTE.String():    STRATEGY_BRUTE,
	STRATEGY_PARALLEL.String(): STRATEGY_PARALLEL,
	STRATEGY_RESUME.String():   STRATEGY_RESUME,
}

// ParseStrategy returns the strategy with the given name.
func ParseStrategy(name string) (strategy Strategy, err error) {
	strategy, ok := strategyMap[name]
	if !ok {
		err = ErrStrategyUnknown
	}
	return
}

// Fix is a single instruction repair.
type Fix struct {
	Ip      int             // Index of the flipped instruction.
	From    cpu.Instruction // Original instruction.
	To      cpu.Instruction // Replacement instruction.
	Acc     int             // Accumulator at termination of the repaired program.
	Program *cpu.Program    // The repaired program.
}

// Searcher finds the lowest-index single flip that terminates a program.
type Searcher struct {
	Verbose  bool     // If set, logs every candidate.
	Strategy Strategy // Candidate evaluation strategy.
	Workers  int      // Concurrent runs for STRATEGY_PARALLEL, GOMAXPROCS if zero.
	Unique   bool     // If set, more than one terminating flip is an error.

	Runs int // CPU runs performed by the last search.
}

// Search finds a repair with the default searcher.
func Search(prog *cpu.Program) (fix Fix, err error) {
	searcher := &Searcher{}
	return searcher.Search(prog)
}

// Search finds the repair for a program.
// Without Unique the lowest terminating index is returned, otherwise every
// candidate is checked and ErrRepairAmbiguous reports multiple repairs.
func (s *Searcher) Search(prog *cpu.Program) (fix Fix, err error) {
	s.Runs = 0

	var candidates iter.Seq2[Fix, cpu.Outcome]
	switch s.Strategy {
	case STRATEGY_BRUTE:
		candidates = s.brute(prog)
	case STRATEGY_PARALLEL:
		candidates = s.parallel(prog)
	case STRATEGY_RESUME:
		candidates = s.resume(prog)
	default:
		err = ErrStrategyUnknown
		return
	}

	var found []Fix
	for candidate, out := range candidates {
		if s.Verbose {
			log.Printf("repair: %04d: %v -> %v: %v", candidate.Ip, candidate.From, candidate.To, out)
		}
		if out.Status != cpu.STATUS_TERMINATED {
			continue
		}
		candidate.Acc = out.Acc
		found = append(found, candidate)
		if !s.Unique {
			break
		}
	}

	switch len(found) {
	case 0:
		err = ErrNoRepairFound
	case 1:
		fix = found[0]
		fix.Program = prog.Patch(fix.Ip, fix.To)
	default:
		ambiguous := &ErrRepairAmbiguous{}
		for _, candidate := range found {
			ambiguous.Ips = append(ambiguous.Ips, candidate.Ip)
		}
		err = ambiguous
	}

	return
}

// flips iterates over every flippable instruction, in IP order.
func flips(prog *cpu.Program) iter.Seq[Fix] {
	return func(yield func(Fix) bool) {
		for ip, code := range prog.Instructions() {
			flipped, ok := code.Flip()
			if !ok {
				continue
			}
			if !yield(Fix{Ip: ip, From: code, To: flipped}) {
				return
			}
		}
	}
}

// brute runs every candidate program from the start.
func (s *Searcher) brute(prog *cpu.Program) iter.Seq2[Fix, cpu.Outcome] {
	return func(yield func(Fix, cpu.Outcome) bool) {
		for candidate := range flips(prog) {
			out := cpu.Run(prog.Patch(candidate.Ip, candidate.To), cpu.State{})
			s.Runs += 1
			if !yield(candidate, out) {
				return
			}
		}
	}
}

// parallel runs every candidate program concurrently, then yields the
// outcomes in IP order.
func (s *Searcher) parallel(prog *cpu.Program) iter.Seq2[Fix, cpu.Outcome] {
	return func(yield func(Fix, cpu.Outcome) bool) {
		var candidates []Fix
		for candidate := range flips(prog) {
			candidates = append(candidates, candidate)
		}

		workers := s.Workers
		if workers <= 0 {
			workers = runtime.GOMAXPROCS(0)
		}

		outcomes := make([]cpu.Outcome, len(candidates))

		var group errgroup.Group
		group.SetLimit(workers)
		for n, candidate := range candidates {
			group.Go(func() error {
				outcomes[n] = cpu.Run(prog.Patch(candidate.Ip, candidate.To), cpu.State{})
				return nil
			})
		}
		_ = group.Wait()

		s.Runs += len(candidates)

		for n, candidate := range candidates {
			if !yield(candidate, outcomes[n]) {
				return
			}
		}
	}
}

// step is the CPU state before an instruction on the original path.
type step struct {
	ip  int
	acc int
}

// resume runs the original program once, then evaluates each flip on its
// path by resuming from the state just before the flipped instruction.
//
// Flips off the path cannot change a looping run, so they are skipped. A
// program that does not loop falls back to brute.
func (s *Searcher) resume(prog *cpu.Program) iter.Seq2[Fix, cpu.Outcome] {
	return func(yield func(Fix, cpu.Outcome) bool) {
		var path []step
		position := map[int]int{}

		cp := cpu.NewCpu(prog)
		cp.Verbose = s.Verbose

		var out cpu.Outcome
		for done := false; !done; {
			here := step{ip: cp.Ip, acc: cp.Acc}
			out, done = cp.Tick()
			if !done {
				position[here.ip] = len(path)
				path = append(path, here)
			}
		}
		s.Runs += 1

		if out.Status != cpu.STATUS_LOOPED {
			if s.Verbose {
				log.Printf("repair: original %v, resume falls back to brute", out.Status)
			}
			for candidate, out := range s.brute(prog) {
				if !yield(candidate, out) {
					return
				}
			}
			return
		}

		for candidate := range flips(prog) {
			k, ok := position[candidate.Ip]
			if !ok {
				continue
			}

			visited := make(map[int]bool, k)
			for _, prior := range path[:k] {
				visited[prior.ip] = true
			}

			state := cpu.State{Ip: candidate.Ip, Acc: path[k].acc, Visited: visited}
			out := cpu.Run(prog.Patch(candidate.Ip, candidate.To), state)
			s.Runs += 1
			if !yield(candidate, out) {
				return
			}
		}
	}
}
