package placement

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/katalvlaran/lvlgen/floorgrid"
	"github.com/katalvlaran/lvlgen/mission"
	"github.com/katalvlaran/lvlgen/rng"
)

// Sentinel errors for Place.
var (
	// ErrNilAlphabet indicates a nil symbol alphabet.
	ErrNilAlphabet = errors.New("placement: alphabet is nil")

	// ErrNilMission indicates a nil mission graph.
	ErrNilMission = errors.New("placement: mission graph is nil")

	// ErrNilGrid indicates a nil grid.
	ErrNilGrid = errors.New("placement: grid is nil")

	// ErrStartOutOfBounds indicates a start cell outside the grid.
	ErrStartOutOfBounds = errors.New("placement: start cell out of bounds")

	// ErrCyclicMission indicates a mission graph with a cycle.
	ErrCyclicMission = errors.New("placement: mission graph has a cycle")

	// ErrOptionViolation indicates an invalid option value.
	ErrOptionViolation = errors.New("placement: invalid option")
)

// DefaultMaxDeferAttempts bounds the retries of a deferred node.
const DefaultMaxDeferAttempts = 12

// Option configures Place.
type Option func(*Options)

// Options holds placement parameters.
type Options struct {
	// Rand is the only source of randomness.
	Rand *rand.Rand

	// Start is the cell of the head when HasStart is set; otherwise a
	// random cell is drawn.
	Start    floorgrid.Coord
	HasStart bool

	// MaxDeferAttempts bounds retries of deferred or failed loose nodes.
	MaxDeferAttempts int

	// OnPlace is called when node n is assigned cell c.
	OnPlace func(n mission.NodeID, c floorgrid.Coord)

	// OnBacktrack is called when node n gives up cell c because one of
	// its tight children could not be placed.
	OnBacktrack func(n mission.NodeID, c floorgrid.Coord)

	// OnDrop is called when node n is dropped after attempts retries.
	OnDrop func(n mission.NodeID, attempts int)

	err error
}

// DefaultOptions returns seed-0 randomness, a random start,
// DefaultMaxDeferAttempts and no-op hooks.
func DefaultOptions() Options {
	return Options{
		Rand:             rng.FromSeed(0),
		MaxDeferAttempts: DefaultMaxDeferAttempts,
		OnPlace:          func(mission.NodeID, floorgrid.Coord) {},
		OnBacktrack:      func(mission.NodeID, floorgrid.Coord) {},
		OnDrop:           func(mission.NodeID, int) {},
	}
}

// WithSeed uses a fresh deterministic stream for seed.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Rand = rng.FromSeed(seed) }
}

// WithRand uses r as the random stream. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("placement: WithRand(nil)")
	}
	return func(o *Options) { o.Rand = r }
}

// WithStart pins the head to cell c.
func WithStart(c floorgrid.Coord) Option {
	return func(o *Options) {
		o.Start = c
		o.HasStart = true
	}
}

// WithMaxDeferAttempts sets the retry cap of deferred nodes (n > 0).
func WithMaxDeferAttempts(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: MaxDeferAttempts must be positive (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxDeferAttempts = n
	}
}

// WithOnPlace registers the placement hook.
func WithOnPlace(fn func(n mission.NodeID, c floorgrid.Coord)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnPlace = fn
		}
	}
}

// WithOnBacktrack registers the backtrack hook.
func WithOnBacktrack(fn func(n mission.NodeID, c floorgrid.Coord)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnBacktrack = fn
		}
	}
}

// WithOnDrop registers the drop hook.
func WithOnDrop(fn func(n mission.NodeID, attempts int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnDrop = fn
		}
	}
}

// Result is the outcome of Place.
type Result struct {
	// Success is false when the head could not be placed.
	Success bool

	// Cells maps every placed node to its cell.
	Cells map[mission.NodeID]floorgrid.Coord

	// Dropped lists nodes given up after MaxDeferAttempts retries.
	Dropped []mission.NodeID

	// Skipped lists visited nodes whose symbol has no room types.
	Skipped []mission.NodeID

	// Unplaced lists reachable nodes without a cell, in SymbolID order.
	Unplaced []mission.NodeID

	// Backtracks counts cells given up for failing tight children.
	Backtracks int
}

// Placed returns the number of placed nodes.
func (r *Result) Placed() int { return len(r.Cells) }
