package tilepattern

import (
	"math/rand"

	"github.com/katalvlaran/lvlgen/tiles"
)

// Ruleset applies patterns in order.
type Ruleset struct {
	patterns []*Pattern
}

// NewRuleset returns a Ruleset over patterns; nil entries are dropped.
func NewRuleset(patterns ...*Pattern) *Ruleset {
	rs := &Ruleset{}
	for _, p := range patterns {
		if p != nil {
			rs.patterns = append(rs.patterns, p)
		}
	}
	return rs
}

// Len returns the number of patterns.
func (rs *Ruleset) Len() int { return len(rs.patterns) }

// Patterns returns the patterns in order.
func (rs *Ruleset) Patterns() []*Pattern {
	return append([]*Pattern(nil), rs.patterns...)
}

// Apply runs every pattern on g and returns the replacements made per
// pattern name.
func (rs *Ruleset) Apply(g *tiles.Grid, r *rand.Rand, difficulty float64) map[string]int {
	return rs.apply(g, r, difficulty, false)
}

// ApplyFloor is Apply for floor-wide grids.
func (rs *Ruleset) ApplyFloor(g *tiles.Grid, r *rand.Rand, difficulty float64) map[string]int {
	return rs.apply(g, r, difficulty, true)
}

func (rs *Ruleset) apply(g *tiles.Grid, r *rand.Rand, difficulty float64, floor bool) map[string]int {
	out := make(map[string]int, len(rs.patterns))
	for _, p := range rs.patterns {
		if n := apply(p, g, r, difficulty, floor); n > 0 {
			out[p.Name] += n
		}
	}
	return out
}
