package dungeon

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/katalvlaran/lvlgen/catalog"
	"github.com/katalvlaran/lvlgen/floorgrid"
	"github.com/katalvlaran/lvlgen/mission"
	"github.com/katalvlaran/lvlgen/placement"
	"github.com/katalvlaran/lvlgen/rng"
	"github.com/katalvlaran/lvlgen/tiles"
)

// Generate builds a dungeon from cat.
//
// Returns ErrNilCatalog, ErrOptionViolation, errors of the mission and
// placement packages, or ErrPlacementFailed when every attempt failed to
// place the mission head. Dropped nodes do not fail generation; they are
// reported in Dungeon.Placement.
func Generate(cat *catalog.Catalog, opts ...Option) (*Dungeon, error) {
	if cat == nil {
		return nil, ErrNilCatalog
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	st := cat.Settings
	base := o.Rand
	if base == nil {
		base = rng.FromSeed(st.Seed)
	}
	attempts := st.PlacementAttempts
	if o.Attempts > 0 {
		attempts = o.Attempts
	}

	gen, err := mission.NewGenerator(cat.Alphabet, cat.Rules)
	if err != nil {
		return nil, err
	}
	mres, err := gen.Generate(cat.Head,
		mission.WithRand(rng.Derive(base, streamMission)),
		mission.WithMaxSteps(st.MaxSteps),
		mission.WithMaxNodes(st.MaxNodes),
		mission.WithOnRewrite(o.OnRewrite),
	)
	if err != nil {
		return nil, err
	}

	d := &Dungeon{Mission: mres.Graph, Hooks: mres.Hooks}
	if err := d.layout(cat, base, attempts, o.OnAttempt); err != nil {
		return nil, err
	}
	if err := d.furnish(cat, rng.Derive(base, streamTiles)); err != nil {
		return nil, err
	}
	return d, nil
}

// layout places the mission on fresh grids until the head is placed.
func (d *Dungeon) layout(cat *catalog.Catalog, base *rand.Rand, attempts int, onAttempt func(int, *placement.Result)) error {
	st := cat.Settings
	gopts := floorgrid.DefaultOptions()
	if st.Connectivity == 6 {
		gopts.Conn = floorgrid.Conn6
	}
	for i := 1; i <= attempts; i++ {
		g, err := floorgrid.New(st.Floors, st.Width, st.Height, gopts)
		if err != nil {
			return err
		}
		res, err := placement.Place(cat.Alphabet, d.Mission, g,
			placement.WithRand(rng.Derive(base, streamPlacement+uint64(i))),
			placement.WithMaxDeferAttempts(st.MaxDeferAttempts),
		)
		if err != nil {
			return err
		}
		onAttempt(i, res)
		d.Attempts = i
		if res.Success {
			d.Grid, d.Placement = g, res
			return nil
		}
	}
	return fmt.Errorf("%w: %d attempts on %d×%d×%d", ErrPlacementFailed, attempts, st.Floors, st.Width, st.Height)
}

// furnish carves the placed rooms and runs the tile patterns.
func (d *Dungeon) furnish(cat *catalog.Catalog, r *rand.Rand) error {
	st := cat.Settings
	d.Rooms = make(map[floorgrid.Coord]*tiles.Grid)
	d.Replacements = make(map[string]int)

	for _, room := range d.Grid.PlacedRooms() {
		tg, err := tiles.Carve(room, st.RoomWidth, st.RoomHeight, cat.Palette)
		if err != nil {
			return err
		}
		d.count(cat.PatternsFor(room.RoomType).Apply(tg, r, room.Difficulty))
		d.Rooms[room.Coord] = tg
	}

	d.Floors = make([]*tiles.Grid, st.Floors)
	for z := 0; z < st.Floors; z++ {
		floor, err := tiles.AssembleFloor(d.Grid, z, d.Rooms, st.RoomWidth, st.RoomHeight)
		if err != nil {
			return err
		}
		d.count(cat.FloorPatterns.ApplyFloor(floor, r, d.floorDifficulty(z)))
		tiles.SplitFloor(floor, z, d.Rooms, st.RoomWidth, st.RoomHeight)
		d.Floors[z] = floor
	}
	return nil
}

// floorDifficulty is the mean difficulty of the rooms on floor z.
func (d *Dungeon) floorDifficulty(z int) float64 {
	sum, n := 0.0, 0
	for _, room := range d.Grid.PlacedRooms() {
		if room.Coord.Z == z {
			sum += room.Difficulty
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func (d *Dungeon) count(m map[string]int) {
	for name, n := range m {
		d.Replacements[name] += n
	}
}

// Format renders every floor with legend, floors separated by a blank
// line.
func (d *Dungeon) Format(legend tiles.Legend) string {
	parts := make([]string, len(d.Floors))
	for z, f := range d.Floors {
		parts[z] = f.Format(legend)
	}
	return strings.Join(parts, "\n")
}
