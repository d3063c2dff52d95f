// Package repair searches for the single jmp/nop flip that lets a looping
// boot code program terminate.
//
// Candidates are considered in ascending instruction order, and the lowest
// terminating index wins regardless of the search strategy used.
package repair
