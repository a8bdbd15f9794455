package grammar

import (
	"errors"

	"github.com/katalvlaran/lvlgen/statemachine"
	"github.com/katalvlaran/lvlgen/symbol"
)

// Sentinel errors for rule construction.
var (
	// ErrNilPattern indicates a rule without input pattern.
	ErrNilPattern = errors.New("grammar: input pattern is nil")

	// ErrNilOutputHead indicates an output subgraph without head node.
	ErrNilOutputHead = errors.New("grammar: output has no head")

	// ErrHeadNotFirst indicates a head whose local ID is not 1.
	ErrHeadNotFirst = errors.New("grammar: output head must have local id 1")

	// ErrNegativeWeight indicates a weight below zero.
	ErrNegativeWeight = errors.New("grammar: weight must be >= 0")

	// ErrUnknownLocal indicates an output edge to an undeclared local ID.
	ErrUnknownLocal = errors.New("grammar: output edge references unknown local id")

	// ErrDuplicateLocal indicates two output nodes sharing a local ID.
	ErrDuplicateLocal = errors.New("grammar: duplicate output local id")

	// ErrUnreachableLocal indicates an output node not reachable from the head.
	ErrUnreachableLocal = errors.New("grammar: output node unreachable from head")
)

// Local IDs with a fixed binding during a rewrite.
const (
	// HeadLocal binds to the rewritten node.
	HeadLocal = 1
	// ChildLocal binds to the matched child.
	ChildLocal = 2
)

// Outcome is the result of testing a rule against a window.
type Outcome int

const (
	// InProgress means the pattern neither accepted nor rejected.
	InProgress Outcome = iota
	// Accepted means the rule applies.
	Accepted
	// Rejected means the rule does not apply.
	Rejected
)

// String returns a readable outcome name.
func (o Outcome) String() string {
	switch o {
	case Accepted:
		return "Accepted"
	case Rejected:
		return "Rejected"
	}
	return "InProgress"
}

// Window is the input handed to a rule pattern: a node, optionally
// followed by one of its children.
type Window []statemachine.Input

// SingleWindow builds the window for a node on its own.
func SingleWindow(sym symbol.ID, tightToParent bool) Window {
	return Window{{Symbol: sym, Tight: tightToParent}}
}

// PairWindow builds the window for a node and one child reached through an
// edge with the given coupling.
func PairWindow(parent symbol.ID, parentTight bool, child symbol.ID, edgeTight bool) Window {
	return Window{{Symbol: parent, Tight: parentTight}, {Symbol: child, Tight: edgeTight}}
}

// OutputNode is a node of an output subgraph.
type OutputNode struct {
	Local  int
	Symbol symbol.ID
}

// OutputEdge links two output nodes by local ID.
type OutputEdge struct {
	Parent int
	Child  int
	Tight  bool
}

// Output is the replacement subgraph of a rule.
type Output struct {
	Nodes []OutputNode
	Edges []OutputEdge
	// Head is the local ID of the designated head; must be HeadLocal.
	Head int
}

// Rule is one grammar production.
type Rule struct {
	Name    string
	Pattern *statemachine.Machine
	Output  Output
	Weight  float64
	// Pair reports whether the pattern consumes a parent+child window.
	Pair bool
}
