package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvlgen/grammar"
	sm "github.com/katalvlaran/lvlgen/statemachine"
	"github.com/katalvlaran/lvlgen/symbol"
	"github.com/katalvlaran/lvlgen/tilepattern"
	"github.com/katalvlaran/lvlgen/tiles"
)

//go:embed default.yaml
var defaultYAML []byte

// Default returns a fresh copy of the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(defaultYAML)
}

// LoadFile reads a catalog from path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Parse reads a catalog from data.
func Parse(data []byte) (*Catalog, error) {
	return Load(bytes.NewReader(data))
}

// Load decodes a catalog from r. Unknown YAML fields are rejected.
func Load(r io.Reader) (*Catalog, error) {
	raw := rawCatalog{Settings: DefaultSettings()}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidCatalog)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return build(&raw)
}

func build(raw *rawCatalog) (*Catalog, error) {
	c := &Catalog{
		Settings: raw.Settings,
		Alphabet: symbol.NewAlphabet(),
		Rules:    grammar.NewSet(),
	}
	if err := validateSettings(c.Settings); err != nil {
		return nil, err
	}
	for _, s := range raw.Symbols {
		_, err := c.Alphabet.Add(symbol.Symbol{
			Name:          s.Name,
			Description:   s.Description,
			Terminal:      s.Terminal,
			AllowChildren: s.AllowChildren,
			RoomTypes:     s.RoomTypes,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
		}
	}
	head, err := c.lookup(c.Settings.Head, "settings.head")
	if err != nil {
		return nil, err
	}
	c.Head = head

	for _, g := range raw.Grammars {
		r, err := c.rule(g)
		if err != nil {
			return nil, err
		}
		c.Rules.Add(r)
	}
	if err := c.resolveTiles(raw.Tiles); err != nil {
		return nil, err
	}
	var floor []*tilepattern.Pattern
	for _, rp := range raw.Patterns {
		p, err := c.pattern(rp)
		if err != nil {
			return nil, err
		}
		switch rp.Scope {
		case "", "room":
			c.RoomPatterns = append(c.RoomPatterns, RoomPattern{Pattern: p, RoomTypes: rp.RoomTypes})
		case "floor":
			floor = append(floor, p)
		default:
			return nil, fmt.Errorf("%w: pattern %q has scope %q, want room or floor", ErrInvalidCatalog, rp.Name, rp.Scope)
		}
	}
	c.FloorPatterns = tilepattern.NewRuleset(floor...)

	return c, nil
}

func validateSettings(s Settings) error {
	positive := []struct {
		name string
		v    int
	}{
		{"floors", s.Floors}, {"width", s.Width}, {"height", s.Height},
		{"max_steps", s.MaxSteps}, {"max_nodes", s.MaxNodes},
		{"placement_attempts", s.PlacementAttempts}, {"max_defer_attempts", s.MaxDeferAttempts},
		{"room_width", s.RoomWidth}, {"room_height", s.RoomHeight},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return fmt.Errorf("%w: settings.%s must be positive (%d)", ErrInvalidCatalog, p.name, p.v)
		}
	}
	if s.Connectivity != 4 && s.Connectivity != 6 {
		return fmt.Errorf("%w: settings.connectivity must be 4 or 6 (%d)", ErrInvalidCatalog, s.Connectivity)
	}
	return nil
}

// lookup resolves a symbol name used at where.
func (c *Catalog) lookup(name, where string) (symbol.ID, error) {
	id, err := c.Alphabet.Lookup(name)
	if err == nil {
		return id, nil
	}
	return symbol.None, unknown(ErrUnknownSymbol, name, where, c.Alphabet.Names())
}

func (c *Catalog) rule(g rawGrammar) (*grammar.Rule, error) {
	where := fmt.Sprintf("grammar %q", g.Name)
	out := grammar.Output{Head: grammar.HeadLocal}
	for _, n := range g.Output.Nodes {
		id, err := c.lookup(n.Symbol, where)
		if err != nil {
			return nil, err
		}
		out.Nodes = append(out.Nodes, grammar.OutputNode{Local: n.ID, Symbol: id})
	}
	for _, e := range g.Output.Edges {
		out.Edges = append(out.Edges, grammar.OutputEdge{Parent: e.From, Child: e.To, Tight: e.Tight})
	}
	weight := 1.0
	if g.Weight != nil {
		weight = *g.Weight
	}

	var (
		r   *grammar.Rule
		err error
	)
	switch len(g.Match) {
	case 1:
		sym, serr := c.lookup(g.Match[0], where)
		if serr != nil {
			return nil, serr
		}
		if g.Coupling != "" {
			return nil, fmt.Errorf("%w: %s: coupling needs a two-symbol match", ErrInvalidCatalog, where)
		}
		r, err = grammar.SingleRule(g.Name, sym, out, weight)
	case 2:
		parent, perr := c.lookup(g.Match[0], where)
		if perr != nil {
			return nil, perr
		}
		child, cerr := c.lookup(g.Match[1], where)
		if cerr != nil {
			return nil, cerr
		}
		cp, cerr := coupling(g.Coupling)
		if cerr != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidCatalog, where, cerr)
		}
		r, err = grammar.PairRule(g.Name, parent, child, cp, out, weight)
	default:
		return nil, fmt.Errorf("%w: %s: match must name 1 or 2 symbols, got %d", ErrInvalidCatalog, where, len(g.Match))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return r, nil
}

func coupling(s string) (sm.Coupling, error) {
	switch s {
	case "", "any":
		return sm.Any, nil
	case "tight":
		return sm.Tight, nil
	case "loose":
		return sm.Loose, nil
	}
	return sm.Any, fmt.Errorf("coupling %q, want tight, loose or any", s)
}

// resolveTiles numbers tile names in sorted order from 1 and resolves the legend
// and palette.
func (c *Catalog) resolveTiles(raw rawTiles) error {
	names := make(map[string]bool)
	for _, n := range raw.Legend {
		names[n] = true
	}
	for n := range names {
		c.TileNames = append(c.TileNames, n)
	}
	sort.Strings(c.TileNames)

	c.Legend = make(tiles.Legend, len(raw.Legend))
	for key, name := range raw.Legend {
		if utf8.RuneCountInString(key) != 1 {
			return fmt.Errorf("%w: legend key %q must be a single rune", ErrInvalidCatalog, key)
		}
		r, _ := utf8.DecodeRuneInString(key)
		t, _ := c.Tile(name)
		c.Legend[r] = t
	}

	slots := []struct {
		name string
		dst  *tiles.Tile
	}{
		{raw.Palette.Wall, &c.Palette.Wall},
		{raw.Palette.Floor, &c.Palette.Floor},
		{raw.Palette.Door, &c.Palette.Door},
		{raw.Palette.Stairs, &c.Palette.Stairs},
	}
	for _, s := range slots {
		if s.name == "" {
			continue
		}
		t, ok := c.Tile(s.name)
		if !ok {
			return unknown(ErrUnknownTile, s.name, "tiles.palette", c.TileNames)
		}
		*s.dst = t
	}
	return nil
}

func (c *Catalog) pattern(rp rawPattern) (*tilepattern.Pattern, error) {
	in, err := tiles.Parse(rp.Input, c.Legend)
	if err != nil {
		return nil, fmt.Errorf("%w: pattern %q input: %v", ErrInvalidCatalog, rp.Name, err)
	}
	out, err := tiles.Parse(rp.Output, c.Legend)
	if err != nil {
		return nil, fmt.Errorf("%w: pattern %q output: %v", ErrInvalidCatalog, rp.Name, err)
	}
	opts := []tilepattern.Option{
		tilepattern.WithDifficultyModifier(rp.DifficultyModifier),
		tilepattern.WithRandomPlacement(rp.Random),
	}
	if rp.Chance != nil {
		opts = append(opts, tilepattern.WithSelectionChance(*rp.Chance))
	}
	if rp.MaxReplacements != 0 {
		opts = append(opts, tilepattern.WithMaxReplacements(rp.MaxReplacements))
	}
	p, err := tilepattern.NewPattern(rp.Name, in, out, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return p, nil
}
