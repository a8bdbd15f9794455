package dungeon

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/katalvlaran/lvlgen/floorgrid"
	"github.com/katalvlaran/lvlgen/grammar"
	"github.com/katalvlaran/lvlgen/mission"
	"github.com/katalvlaran/lvlgen/placement"
	"github.com/katalvlaran/lvlgen/rng"
	"github.com/katalvlaran/lvlgen/tiles"
)

// Sentinel errors for Generate.
var (
	// ErrNilCatalog indicates a nil catalog.
	ErrNilCatalog = errors.New("dungeon: catalog is nil")

	// ErrPlacementFailed is returned when no placement attempt placed the
	// mission head.
	ErrPlacementFailed = errors.New("dungeon: placement failed")

	// ErrOptionViolation indicates an invalid option value.
	ErrOptionViolation = errors.New("dungeon: invalid option")
)

// Random stream identifiers, one per stage.
const (
	streamMission uint64 = iota + 1
	streamTiles
	streamPlacement
)

// Option configures Generate.
type Option func(*Options)

// Options holds pipeline parameters. Zero values fall back to the
// catalog settings.
type Options struct {
	// Rand is the base stream. Nil means rng.FromSeed(Settings.Seed).
	Rand *rand.Rand

	// Attempts overrides Settings.PlacementAttempts when positive.
	Attempts int

	// OnRewrite is forwarded to the mission generator.
	OnRewrite func(n mission.NodeID, r *grammar.Rule)

	// OnAttempt is called after each placement attempt.
	OnAttempt func(attempt int, res *placement.Result)

	err error
}

// DefaultOptions returns options that defer to the catalog.
func DefaultOptions() Options {
	return Options{
		OnRewrite: func(mission.NodeID, *grammar.Rule) {},
		OnAttempt: func(int, *placement.Result) {},
	}
}

// WithSeed overrides the catalog seed.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Rand = rng.FromSeed(seed) }
}

// WithRand uses r as the base stream. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("dungeon: WithRand(nil)")
	}
	return func(o *Options) { o.Rand = r }
}

// WithAttempts overrides the number of placement attempts (n > 0).
func WithAttempts(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: attempts must be positive (%d)", ErrOptionViolation, n)
			return
		}
		o.Attempts = n
	}
}

// WithOnRewrite registers the mission rewrite hook.
func WithOnRewrite(fn func(n mission.NodeID, r *grammar.Rule)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnRewrite = fn
		}
	}
}

// WithOnAttempt registers the placement attempt hook.
func WithOnAttempt(fn func(attempt int, res *placement.Result)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnAttempt = fn
		}
	}
}

// Dungeon is a generated level.
type Dungeon struct {
	// Mission is the generated mission graph.
	Mission *mission.Graph

	// Hooks lists mission nodes left unresolved by the grammar.
	Hooks []mission.NodeID

	// Grid is the room layout of the successful attempt.
	Grid *floorgrid.Grid

	// Placement is the result of the successful attempt.
	Placement *placement.Result

	// Attempts is the number of placement attempts used.
	Attempts int

	// Rooms holds the tile grid of every placed room.
	Rooms map[floorgrid.Coord]*tiles.Grid

	// Floors holds the assembled tile grid of each floor.
	Floors []*tiles.Grid

	// Replacements counts tile pattern replacements by pattern name.
	Replacements map[string]int
}
