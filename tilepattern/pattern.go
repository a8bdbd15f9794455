package tilepattern

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/lvlgen/tiles"
)

// NewPattern validates and builds a pattern. Defaults: SelectionChance 1,
// MaxReplacementCount 1, first-match placement.
// Returns ErrEmptyPattern, ErrShapeMismatch or ErrOptionViolation.
func NewPattern(name string, in, out *tiles.Grid, opts ...Option) (*Pattern, error) {
	if in == nil || out == nil || in.IsEmpty() {
		return nil, fmt.Errorf("%w: %q", ErrEmptyPattern, name)
	}
	if !in.SameShape(out) {
		return nil, fmt.Errorf("%w: %q input %d×%d, output %d×%d",
			ErrShapeMismatch, name, in.Width(), in.Height(), out.Width(), out.Height())
	}
	p := &Pattern{
		Name:                name,
		Input:               in.Clone(),
		Output:              out.Clone(),
		SelectionChance:     1,
		MaxReplacementCount: 1,
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, fmt.Errorf("%w (pattern %q)", err, name)
		}
	}
	return p, nil
}

// MatchesReplacement returns the first orientation under which probe
// equals input, or NoMatch. Flips along a dimension of size 1 are not
// tried, so a 1×1 input only ever matches as Identity.
// Complexity: O(4×W×H).
func MatchesReplacement(probe, input *tiles.Grid) Orientation {
	if probe == nil || input == nil || !probe.SameShape(input) {
		return NoMatch
	}
	w, h := input.Width(), input.Height()
	for _, o := range []Orientation{Identity, FlipY, FlipX, FlipXY} {
		if (o == FlipY || o == FlipXY) && h < 2 {
			continue
		}
		if (o == FlipX || o == FlipXY) && w < 2 {
			continue
		}
		if matchesUnder(probe, input, o) {
			return o
		}
	}
	return NoMatch
}

func matchesUnder(probe, input *tiles.Grid, o Orientation) bool {
	w, h := input.Width(), input.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sx, sy := o.source(x, y, w, h)
			if probe.At(x, y) != input.At(sx, sy) {
				return false
			}
		}
	}
	return true
}

// match is a matching offset and orientation.
type match struct {
	x, y int
	o    Orientation
}

// FindAndReplace replaces one occurrence of p.Input in g and reports
// whether one was found. r is only drawn from when p.RandomlyPlaced.
// Complexity: O((W+2w)×(H+2h)×w×h).
func FindAndReplace(p *Pattern, g *tiles.Grid, r *rand.Rand) bool {
	return findAndReplace(p, g, r, false)
}

// FindAndReplaceFloor is FindAndReplace for floor-wide grids: probes that
// are entirely Null are not tested.
func FindAndReplaceFloor(p *Pattern, g *tiles.Grid, r *rand.Rand) bool {
	return findAndReplace(p, g, r, true)
}

func findAndReplace(p *Pattern, g *tiles.Grid, r *rand.Rand, skipEmpty bool) bool {
	if p == nil || g == nil {
		return false
	}
	m, ok := find(p, g, r, skipEmpty)
	if !ok {
		return false
	}
	write(p.Output, g, m)
	return true
}

func find(p *Pattern, g *tiles.Grid, r *rand.Rand, skipEmpty bool) (match, bool) {
	w, h := p.Input.Width(), p.Input.Height()
	var all []match
	// Sweep every offset, including probes hanging over the border
	for oy := -h; oy < g.Height()+h; oy++ {
		for ox := -w; ox < g.Width()+w; ox++ {
			probe := g.Window(ox, oy, w, h)
			if skipEmpty && probe.IsEmpty() {
				continue
			}
			o := MatchesReplacement(probe, p.Input)
			if o == NoMatch {
				continue
			}
			m := match{x: ox, y: oy, o: o}
			if !p.RandomlyPlaced {
				return m, true
			}
			all = append(all, m)
		}
	}
	// Random placement draws among all matches
	if len(all) == 0 {
		return match{}, false
	}
	return all[r.Intn(len(all))], true
}

// write copies out into g at m, oriented like the match.
func write(out *tiles.Grid, g *tiles.Grid, m match) {
	w, h := out.Width(), out.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sx, sy := m.o.source(x, y, w, h)
			g.Set(m.x+x, m.y+y, out.At(sx, sy))
		}
	}
}

// Apply runs p on g up to MaxReplacementCount times. Before each try a
// draw against SelectionChance + difficulty×DifficultyModifier (clamped
// to [0, 1]) decides whether to continue. Returns the replacements made.
func Apply(p *Pattern, g *tiles.Grid, r *rand.Rand, difficulty float64) int {
	return apply(p, g, r, difficulty, false)
}

// ApplyFloor is Apply with FindAndReplaceFloor.
func ApplyFloor(p *Pattern, g *tiles.Grid, r *rand.Rand, difficulty float64) int {
	return apply(p, g, r, difficulty, true)
}

func apply(p *Pattern, g *tiles.Grid, r *rand.Rand, difficulty float64, floor bool) int {
	if p == nil || g == nil {
		return 0
	}
	chance := p.SelectionChance + difficulty*p.DifficultyModifier
	if chance > 1 {
		chance = 1
	}
	n := 0
	for n < p.MaxReplacementCount {
		if chance <= 0 || r.Float64() >= chance {
			break
		}
		if !findAndReplace(p, g, r, floor) {
			break
		}
		n++
	}
	return n
}
