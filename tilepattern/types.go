package tilepattern

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvlgen/tiles"
)

// Sentinel errors for pattern construction.
var (
	// ErrEmptyPattern indicates a nil or all-Null input grid.
	ErrEmptyPattern = errors.New("tilepattern: input pattern is empty")

	// ErrShapeMismatch indicates Input and Output of different sizes.
	ErrShapeMismatch = errors.New("tilepattern: input and output must have the same shape")

	// ErrOptionViolation indicates an invalid option value.
	ErrOptionViolation = errors.New("tilepattern: invalid option")
)

// Orientation is the symmetry under which a probe matched. NoMatch is 0.
type Orientation int

const (
	NoMatch  Orientation = iota
	Identity             // 1
	FlipY                // 2, rows reversed
	FlipX                // 3, columns reversed
	FlipXY               // 4, both
)

// String returns the orientation name.
func (o Orientation) String() string {
	switch o {
	case Identity:
		return "Identity"
	case FlipY:
		return "FlipY"
	case FlipX:
		return "FlipX"
	case FlipXY:
		return "FlipXY"
	}
	return "NoMatch"
}

// source maps pattern cell (x, y) of a w×h pattern to the cell it is
// compared with under o.
func (o Orientation) source(x, y, w, h int) (int, int) {
	switch o {
	case FlipY:
		return x, h - 1 - y
	case FlipX:
		return w - 1 - x, y
	case FlipXY:
		return w - 1 - x, h - 1 - y
	}
	return x, y
}

// Pattern is a replacement rule for tile grids.
type Pattern struct {
	Name string

	// Input and Output share one shape.
	Input, Output *tiles.Grid

	// SelectionChance is the base probability, in [0, 1], that Apply
	// tries the pattern at all.
	SelectionChance float64

	// DifficultyModifier scales the room difficulty added to the chance.
	DifficultyModifier float64

	// MaxReplacementCount bounds replacements per Apply.
	MaxReplacementCount int

	// RandomlyPlaced picks a random match instead of the first one.
	RandomlyPlaced bool
}

// Option configures NewPattern.
type Option func(*Pattern) error

// WithSelectionChance sets the base chance (0 <= c <= 1).
func WithSelectionChance(c float64) Option {
	return func(p *Pattern) error {
		if c < 0 || c > 1 {
			return fmt.Errorf("%w: SelectionChance %g outside [0,1]", ErrOptionViolation, c)
		}
		p.SelectionChance = c
		return nil
	}
}

// WithDifficultyModifier sets the difficulty scale.
func WithDifficultyModifier(m float64) Option {
	return func(p *Pattern) error {
		p.DifficultyModifier = m
		return nil
	}
}

// WithMaxReplacements sets MaxReplacementCount (n > 0).
func WithMaxReplacements(n int) Option {
	return func(p *Pattern) error {
		if n <= 0 {
			return fmt.Errorf("%w: MaxReplacementCount must be positive (%d)", ErrOptionViolation, n)
		}
		p.MaxReplacementCount = n
		return nil
	}
}

// WithRandomPlacement sets RandomlyPlaced.
func WithRandomPlacement(on bool) Option {
	return func(p *Pattern) error {
		p.RandomlyPlaced = on
		return nil
	}
}
