package mission

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/katalvlaran/lvlgen/grammar"
	"github.com/katalvlaran/lvlgen/rng"
	"github.com/katalvlaran/lvlgen/symbol"
)

// Sentinel errors for mission graphs and generation.
var (
	// ErrNilAlphabet is returned when a Generator gets no alphabet.
	ErrNilAlphabet = errors.New("mission: alphabet is nil")

	// ErrNilRules is returned when a Generator gets no rule set.
	ErrNilRules = errors.New("mission: rule set is nil")

	// ErrUnknownSymbol indicates a head symbol outside the alphabet.
	ErrUnknownSymbol = errors.New("mission: unknown head symbol")

	// ErrNodeNotFound indicates a NodeID outside the graph.
	ErrNodeNotFound = errors.New("mission: node not found")

	// ErrSelfLoop indicates an edge from a node to itself.
	ErrSelfLoop = errors.New("mission: self-loop not allowed")

	// ErrCycleDetected indicates a cycle in the mission graph.
	ErrCycleDetected = errors.New("mission: cycle detected")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("mission: invalid option supplied")
)

// Defaults for generation.
const (
	// DefaultMaxSteps bounds node visits across all rewrite passes.
	DefaultMaxSteps = 255

	// DefaultMaxNodes stops rewriting once the graph holds this many nodes.
	DefaultMaxNodes = 4096

	// multiNodeDamping scales single-node candidates when a parent+child
	// candidate exists for the same node.
	multiNodeDamping = 0.25
)

// NodeID indexes a Node in its Graph.
type NodeID int

// NoNode is the absent node.
const NoNode NodeID = -1

// Edge is a parent→child link; Tight requires grid adjacency when placed.
type Edge struct {
	Child NodeID
	Tight bool
}

// Link is a flattened edge used by Graph.Edges.
type Link struct {
	Parent NodeID
	Child  NodeID
	Tight  bool
}

// Node is one mission node.
type Node struct {
	ID     NodeID
	Symbol symbol.ID

	// SymbolID is the 1-based breadth-first number assigned by Renumber;
	// 0 for nodes not reachable from the head.
	SymbolID int

	// TightToParent is set when any incoming edge is tight.
	TightToParent bool

	Parents  []NodeID
	Children []Edge

	// Unresolved marks a nonterminal no rule could rewrite.
	Unresolved bool
}

// Graph is an arena of mission nodes with a designated head.
type Graph struct {
	nodes []Node
	head  NodeID
}

// Option configures Generate.
type Option func(*Options)

// Options holds generation parameters.
type Options struct {
	// Rand is the only source of randomness.
	Rand *rand.Rand

	// MaxSteps bounds node visits over the whole run.
	MaxSteps int

	// MaxNodes stops rewriting once the graph holds this many nodes.
	MaxNodes int

	// OnRewrite is called after rule r rewrote node n.
	OnRewrite func(n NodeID, r *grammar.Rule)

	// OnHook is called when no rule accepted nonterminal node n.
	OnHook func(n NodeID)

	err error
}

// DefaultOptions returns seed-0 randomness, DefaultMaxSteps,
// DefaultMaxNodes and no-op hooks.
func DefaultOptions() Options {
	return Options{
		Rand:      rng.FromSeed(0),
		MaxSteps:  DefaultMaxSteps,
		MaxNodes:  DefaultMaxNodes,
		OnRewrite: func(NodeID, *grammar.Rule) {},
		OnHook:    func(NodeID) {},
	}
}

// WithSeed uses a fresh deterministic stream for seed.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Rand = rng.FromSeed(seed) }
}

// WithRand uses r as the random stream. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("mission: WithRand(nil)")
	}
	return func(o *Options) { o.Rand = r }
}

// WithMaxSteps sets the visit budget (n > 0).
func WithMaxSteps(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: MaxSteps must be positive (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxSteps = n
	}
}

// WithMaxNodes caps the graph size (n > 0).
func WithMaxNodes(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: MaxNodes must be positive (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxNodes = n
	}
}

// WithOnRewrite registers a hook called after each rewrite.
func WithOnRewrite(fn func(n NodeID, r *grammar.Rule)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnRewrite = fn
		}
	}
}

// WithOnHook registers a hook called for each unresolved node visit.
func WithOnHook(fn func(n NodeID)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnHook = fn
		}
	}
}

// Result is the outcome of Generate.
type Result struct {
	Graph *Graph

	// Hooks lists reachable nodes left Unresolved, in SymbolID order.
	Hooks []NodeID

	// Steps is the number of node visits consumed.
	Steps int

	// Rewrites is the number of rules applied.
	Rewrites int

	// Passes is the number of full traversals performed.
	Passes int
}
