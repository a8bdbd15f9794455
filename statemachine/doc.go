// Package statemachine implements the branching finite-state acceptor that
// backs every grammar input pattern in lvlgen.
//
// A Machine is a small arena of States. Each State holds an ordered list of
// Branches; a Branch fires when the current input symbol is in its accept
// set (or, for reverse branches, when it is not). Run walks the input from a
// start index and reports one of four completions:
//
//	Accepted     the machine reached an accepting state
//	Rejected     a rejecting state, or a reverse branch with no destination
//	NotAccepted  input ran out in a state that has not decided yet
//	OutOfSteps   the step budget reached zero first
//
// States may loop by default: when no branch fires the input is skipped and
// the machine stays where it is. Those skips are reported as "null
// branches" through Result.NullBranches and the WithOnNullBranch hook.
//
// Run is an iterative loop over (state, index, remainingSteps); there is no
// recursion, so input length is bounded only by memory. A negative step
// budget (Unlimited) never runs out.
//
// Complexity:
//
//   - Run: O(min(len(input), steps) × B × A), B = branches per state,
//     A = accept-set size. Memory: O(1).
//
// Errors:
//
//   - ErrNilMachine, ErrStateNotFound, ErrOptionViolation at Run time.
//   - ErrEmptyMachine, ErrDanglingBranch, ErrStateNotFound from Builder.Build.
package statemachine
