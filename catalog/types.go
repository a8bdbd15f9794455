package catalog

import (
	"errors"

	"github.com/katalvlaran/lvlgen/grammar"
	"github.com/katalvlaran/lvlgen/symbol"
	"github.com/katalvlaran/lvlgen/tilepattern"
	"github.com/katalvlaran/lvlgen/tiles"
)

// Sentinel errors for catalog loading.
var (
	// ErrInvalidCatalog indicates malformed YAML or an invalid value.
	ErrInvalidCatalog = errors.New("catalog: invalid catalog")

	// ErrUnknownSymbol indicates a reference to an undeclared symbol.
	ErrUnknownSymbol = errors.New("catalog: unknown symbol")

	// ErrUnknownTile indicates a reference to an undeclared tile name.
	ErrUnknownTile = errors.New("catalog: unknown tile")
)

// Settings are the generation parameters of a catalog.
type Settings struct {
	Seed              int64  `yaml:"seed"`
	Head              string `yaml:"head"`
	Floors            int    `yaml:"floors"`
	Width             int    `yaml:"width"`
	Height            int    `yaml:"height"`
	Connectivity      int    `yaml:"connectivity"`
	MaxSteps          int    `yaml:"max_steps"`
	MaxNodes          int    `yaml:"max_nodes"`
	PlacementAttempts int    `yaml:"placement_attempts"`
	MaxDeferAttempts  int    `yaml:"max_defer_attempts"`
	RoomWidth         int    `yaml:"room_width"`
	RoomHeight        int    `yaml:"room_height"`
}

// DefaultSettings returns the values used for omitted settings.
func DefaultSettings() Settings {
	return Settings{
		Floors:            1,
		Width:             5,
		Height:            5,
		Connectivity:      4,
		MaxSteps:          255,
		MaxNodes:          4096,
		PlacementAttempts: 20,
		MaxDeferAttempts:  12,
		RoomWidth:         7,
		RoomHeight:        7,
	}
}

// RoomPattern is a tile pattern restricted to some room types.
type RoomPattern struct {
	*tilepattern.Pattern

	// RoomTypes limits the pattern to these room types; empty means all.
	RoomTypes []string
}

// AppliesTo reports whether the pattern runs on rooms of type rt.
func (p RoomPattern) AppliesTo(rt string) bool {
	if len(p.RoomTypes) == 0 {
		return true
	}
	for _, t := range p.RoomTypes {
		if t == rt {
			return true
		}
	}
	return false
}

// Catalog is a loaded, cross-referenced rule set.
type Catalog struct {
	Settings Settings
	Alphabet *symbol.Alphabet
	Rules    *grammar.Set
	Head     symbol.ID

	// TileNames holds the name of tile i+1 at index i.
	TileNames []string
	Legend    tiles.Legend
	Palette   tiles.Palette

	RoomPatterns  []RoomPattern
	FloorPatterns *tilepattern.Ruleset
}

// Tile returns the tile named name.
func (c *Catalog) Tile(name string) (tiles.Tile, bool) {
	for i, n := range c.TileNames {
		if n == name {
			return tiles.Tile(i + 1), true
		}
	}
	return tiles.Null, false
}

// PatternsFor returns the room patterns that apply to room type rt, in
// catalog order.
func (c *Catalog) PatternsFor(rt string) *tilepattern.Ruleset {
	var ps []*tilepattern.Pattern
	for _, p := range c.RoomPatterns {
		if p.AppliesTo(rt) {
			ps = append(ps, p.Pattern)
		}
	}
	return tilepattern.NewRuleset(ps...)
}

// raw* mirror the YAML document.
type rawCatalog struct {
	Settings Settings     `yaml:"settings"`
	Symbols  []rawSymbol  `yaml:"symbols"`
	Grammars []rawGrammar `yaml:"grammars"`
	Tiles    rawTiles     `yaml:"tiles"`
	Patterns []rawPattern `yaml:"patterns"`
}

type rawSymbol struct {
	Name          string   `yaml:"name"`
	Description   string   `yaml:"description"`
	Terminal      bool     `yaml:"terminal"`
	AllowChildren bool     `yaml:"allow_children"`
	RoomTypes     []string `yaml:"room_types"`
}

type rawGrammar struct {
	Name     string    `yaml:"name"`
	Match    []string  `yaml:"match"`
	Coupling string    `yaml:"coupling"`
	Weight   *float64  `yaml:"weight"`
	Output   rawOutput `yaml:"output"`
}

type rawOutput struct {
	Nodes []rawNode `yaml:"nodes"`
	Edges []rawEdge `yaml:"edges"`
}

type rawNode struct {
	ID     int    `yaml:"id"`
	Symbol string `yaml:"symbol"`
}

type rawEdge struct {
	From  int  `yaml:"from"`
	To    int  `yaml:"to"`
	Tight bool `yaml:"tight"`
}

type rawTiles struct {
	Legend  map[string]string `yaml:"legend"`
	Palette rawPalette        `yaml:"palette"`
}

type rawPalette struct {
	Wall   string `yaml:"wall"`
	Floor  string `yaml:"floor"`
	Door   string `yaml:"door"`
	Stairs string `yaml:"stairs"`
}

type rawPattern struct {
	Name               string   `yaml:"name"`
	Scope              string   `yaml:"scope"`
	Input              []string `yaml:"input"`
	Output             []string `yaml:"output"`
	Chance             *float64 `yaml:"chance"`
	DifficultyModifier float64  `yaml:"difficulty_modifier"`
	MaxReplacements    int      `yaml:"max_replacements"`
	Random             bool     `yaml:"random"`
	RoomTypes          []string `yaml:"room_types"`
}
