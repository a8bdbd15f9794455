package statemachine

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvlgen/symbol"
)

// Sentinel errors for building and running machines.
var (
	// ErrNilMachine is returned when Run receives a nil *Machine.
	ErrNilMachine = errors.New("statemachine: machine is nil")

	// ErrEmptyMachine is returned by Build when no state was added.
	ErrEmptyMachine = errors.New("statemachine: machine has no states")

	// ErrStateNotFound indicates a StateID outside the machine.
	ErrStateNotFound = errors.New("statemachine: state not found")

	// ErrDanglingBranch indicates a non-reverse branch without destination.
	ErrDanglingBranch = errors.New("statemachine: branch has no destination")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("statemachine: invalid option supplied")
)

// StateID indexes a State inside its Machine.
type StateID int

// NoState marks a branch without destination.
const NoState StateID = -1

// Unlimited disables the step budget.
const Unlimited = -1

// Completion is the outcome reported by Run.
type Completion int

const (
	// NotAccepted means input ran out before the machine decided.
	NotAccepted Completion = iota
	// Accepted means the input matched.
	Accepted
	// Rejected means the input did not match.
	Rejected
	// OutOfSteps means the step budget was exhausted.
	OutOfSteps
)

// String returns a readable completion name.
func (c Completion) String() string {
	switch c {
	case NotAccepted:
		return "NotAccepted"
	case Accepted:
		return "Accepted"
	case Rejected:
		return "Rejected"
	case OutOfSteps:
		return "OutOfSteps"
	}
	return fmt.Sprintf("Completion(%d)", int(c))
}

// Coupling is the edge constraint a branch expects from its input element
// when the coupling gate is on.
type Coupling int

const (
	// Any accepts tight and loose inputs.
	Any Coupling = iota
	// Tight accepts only tightly coupled inputs.
	Tight
	// Loose accepts only loosely coupled inputs.
	Loose
)

// Allows reports whether an input with the given tight flag passes c.
func (c Coupling) Allows(tight bool) bool {
	switch c {
	case Tight:
		return tight
	case Loose:
		return !tight
	}
	return true
}

// CouplingOf converts a tight flag into Tight or Loose.
func CouplingOf(tight bool) Coupling {
	if tight {
		return Tight
	}
	return Loose
}

// Input is one element of the sequence a machine consumes: a symbol and
// the coupling of the edge that led to it.
type Input struct {
	Symbol symbol.ID
	Tight  bool
}

// Branch is an outgoing transition of a State.
type Branch struct {
	// Accept is the set of symbols the branch reacts to.
	Accept []symbol.ID

	// Dest is the next state, or NoState. Only reverse branches may omit
	// it; firing such a branch rejects the input.
	Dest StateID

	// Reverse fires the branch when the symbol is NOT in Accept.
	Reverse bool

	// Coupling is checked only when the coupling gate is enabled.
	Coupling Coupling
}

// State is one node of the acceptor.
type State struct {
	Name string

	// Branches are tried in order; the first that fires wins.
	Branches []Branch

	// Completion is reported when the machine stops in this state.
	Completion Completion

	// TerminateImmediately stops the run as soon as the state is entered.
	TerminateImmediately bool

	// LoopByDefault skips the current input when no branch fires.
	LoopByDefault bool
}

// Machine is an immutable, validated acceptor built by Builder.
type Machine struct {
	states []State
	start  StateID
}

// Result is the outcome of one Run.
type Result struct {
	// Final is the state the run stopped in.
	Final StateID
	// Index is the input position at which the run stopped.
	Index int
	// Completion is the reported outcome.
	Completion Completion
	// NullBranches counts default self-loops taken.
	NullBranches int
}

// Option configures Run.
type Option func(*RunOptions)

// RunOptions holds the parameters of one Run.
type RunOptions struct {
	// Start overrides the machine's start state when not NoState.
	Start StateID

	// StartIndex is the first input position consumed.
	StartIndex int

	// MaxSteps bounds the number of transitions; negative means Unlimited.
	MaxSteps int

	// CouplingGate makes branches check Input.Tight against Branch.Coupling.
	CouplingGate bool

	// OnNullBranch is called for every default self-loop with the state
	// and the index of the skipped input.
	OnNullBranch func(state StateID, index int)

	err error
}

// DefaultOptions returns the machine start state, index 0, Unlimited steps,
// no coupling gate and a no-op null-branch hook.
func DefaultOptions() RunOptions {
	return RunOptions{
		Start:        NoState,
		StartIndex:   0,
		MaxSteps:     Unlimited,
		CouplingGate: false,
		OnNullBranch: func(StateID, int) {},
	}
}

// WithStart begins the run in state s instead of the machine start.
func WithStart(s StateID) Option {
	return func(o *RunOptions) { o.Start = s }
}

// WithStartIndex begins consuming input at position i (i >= 0).
func WithStartIndex(i int) Option {
	return func(o *RunOptions) {
		if i < 0 {
			o.err = fmt.Errorf("%w: start index cannot be negative (%d)", ErrOptionViolation, i)
			return
		}
		o.StartIndex = i
	}
}

// WithMaxSteps bounds the run to n transitions. Any negative n means
// Unlimited; 0 stops before the first transition.
func WithMaxSteps(n int) Option {
	return func(o *RunOptions) {
		if n < 0 {
			n = Unlimited
		}
		o.MaxSteps = n
	}
}

// WithCouplingGate enables the coupling check on every branch.
func WithCouplingGate() Option {
	return func(o *RunOptions) { o.CouplingGate = true }
}

// WithOnNullBranch registers a diagnostic hook for default self-loops.
func WithOnNullBranch(fn func(state StateID, index int)) Option {
	return func(o *RunOptions) {
		if fn != nil {
			o.OnNullBranch = fn
		}
	}
}
