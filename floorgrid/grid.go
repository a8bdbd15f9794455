package floorgrid

import (
	"fmt"
	"strings"

	"github.com/zyedidia/generic/mapset"

	"github.com/katalvlaran/lvlgen/mission"
	"github.com/katalvlaran/lvlgen/symbol"
)

// New allocates an empty grid.
// Returns ErrEmptyGrid if any dimension is not positive.
// Complexity: O(F×W×H) time and memory.
func New(floors, width, height int, opts Options) (*Grid, error) {
	if floors <= 0 || width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %d×%d×%d", ErrEmptyGrid, floors, width, height)
	}
	offsets := []Coord{{0, -1, 0}, {1, 0, 0}, {0, 1, 0}, {-1, 0, 0}}
	if opts.Conn == Conn6 {
		offsets = append(offsets, Coord{0, 0, 1}, Coord{0, 0, -1})
	}
	g := &Grid{
		Floors:  floors,
		Width:   width,
		Height:  height,
		Conn:    opts.Conn,
		rooms:   make([]Room, floors*width*height),
		offsets: offsets,
	}
	for i := range g.rooms {
		g.rooms[i] = emptyRoom(g.Coordinate(i))
	}

	return g, nil
}

func emptyRoom(c Coord) Room {
	return Room{
		Coord:          c,
		Node:           mission.NoNode,
		Neighbors:      mapset.New[Coord](),
		TightNeighbors: mapset.New[Coord](),
	}
}

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.rooms) }

// InBounds reports whether c lies inside the grid.
// Complexity: O(1).
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.Width &&
		c.Y >= 0 && c.Y < g.Height &&
		c.Z >= 0 && c.Z < g.Floors
}

// Index maps c to its arena index, or -1 when out of bounds.
func (g *Grid) Index(c Coord) int {
	if !g.InBounds(c) {
		return -1
	}
	return (c.Z*g.Height+c.Y)*g.Width + c.X
}

// Coordinate converts an arena index back to a Coord.
func (g *Grid) Coordinate(idx int) Coord {
	plane := g.Width * g.Height
	return Coord{X: idx % g.Width, Y: (idx % plane) / g.Width, Z: idx / plane}
}

// Offsets returns the neighbor offsets of the grid connectivity.
func (g *Grid) Offsets() []Coord {
	return append([]Coord(nil), g.offsets...)
}

// Adjacent returns the in-bounds neighbors of c in offset order
// (N, E, S, W, then up, down for Conn6).
// Complexity: O(d).
func (g *Grid) Adjacent(c Coord) []Coord {
	out := make([]Coord, 0, len(g.offsets))
	for _, d := range g.offsets {
		if n := c.Add(d); g.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// AdjacentOnFloor is Adjacent restricted to the floor of c.
func (g *Grid) AdjacentOnFloor(c Coord) []Coord {
	out := make([]Coord, 0, 4)
	for _, d := range g.offsets {
		if d.Z != 0 {
			continue
		}
		if n := c.Add(d); g.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// IsAdjacent reports whether a and b are neighbors under the grid
// connectivity.
func (g *Grid) IsAdjacent(a, b Coord) bool {
	if !g.InBounds(a) || !g.InBounds(b) {
		return false
	}
	for _, d := range g.offsets {
		if a.Add(d) == b {
			return true
		}
	}
	return false
}

// Room returns the cell at c, or nil when out of bounds. The pointer stays
// valid for the lifetime of g.
func (g *Grid) Room(c Coord) *Room {
	i := g.Index(c)
	if i < 0 {
		return nil
	}
	return &g.rooms[i]
}

// Assign writes a mission node into the cell at c and marks it placed.
// Neighbor links are left untouched.
func (g *Grid) Assign(c Coord, a Assignment) error {
	r := g.Room(c)
	if r == nil {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, c)
	}
	r.Node = a.Node
	r.Symbol = a.Symbol
	r.SymbolID = a.SymbolID
	r.RoomType = a.RoomType
	r.Difficulty = a.Difficulty
	r.Placed = true
	return nil
}

// SetIncoming records the cell that proposed c.
func (g *Grid) SetIncoming(c, from Coord) error {
	r := g.Room(c)
	if r == nil || !g.InBounds(from) {
		return fmt.Errorf("%w: %v <- %v", ErrOutOfBounds, c, from)
	}
	r.Incoming = from
	r.HasIncoming = true
	return nil
}

// Clear empties the cell at c and removes every link pointing to it.
func (g *Grid) Clear(c Coord) error {
	r := g.Room(c)
	if r == nil {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, c)
	}
	r.Neighbors.Each(func(n Coord) {
		if o := g.Room(n); o != nil {
			o.Neighbors.Remove(c)
			o.TightNeighbors.Remove(c)
		}
	})
	*r = emptyRoom(c)
	return nil
}

// Reset clears every cell.
func (g *Grid) Reset() {
	for i := range g.rooms {
		g.rooms[i] = emptyRoom(g.rooms[i].Coord)
	}
}

// Link records a and b as neighbors of each other. A tight link also
// records them as tight neighbors.
// Returns ErrOutOfBounds or ErrNotAdjacent.
func (g *Grid) Link(a, b Coord, tight bool) error {
	if !g.InBounds(a) || !g.InBounds(b) {
		return fmt.Errorf("%w: %v - %v", ErrOutOfBounds, a, b)
	}
	if !g.IsAdjacent(a, b) {
		return fmt.Errorf("%w: %v - %v", ErrNotAdjacent, a, b)
	}
	ra, rb := g.Room(a), g.Room(b)
	ra.Neighbors.Put(b)
	rb.Neighbors.Put(a)
	if tight {
		ra.TightNeighbors.Put(b)
		rb.TightNeighbors.Put(a)
	}
	return nil
}

// Symmetrize mirrors every one-sided neighbor entry and returns the number
// of entries it added.
// Complexity: O(F×W×H×d).
func (g *Grid) Symmetrize() int {
	added := 0
	for i := range g.rooms {
		r := &g.rooms[i]
		c := r.Coord
		r.Neighbors.Each(func(n Coord) {
			o := g.Room(n)
			if o == nil {
				return
			}
			if !o.Neighbors.Has(c) {
				o.Neighbors.Put(c)
				added++
			}
		})
		r.TightNeighbors.Each(func(n Coord) {
			o := g.Room(n)
			if o == nil {
				return
			}
			if !r.Neighbors.Has(n) {
				r.Neighbors.Put(n)
				added++
			}
			if !o.TightNeighbors.Has(c) {
				o.TightNeighbors.Put(c)
				added++
			}
			if !o.Neighbors.Has(c) {
				o.Neighbors.Put(c)
				added++
			}
		})
	}
	return added
}

// IsSymmetric reports whether every neighbor entry has its mirror.
func (g *Grid) IsSymmetric() bool {
	ok := true
	for i := range g.rooms {
		r := &g.rooms[i]
		c := r.Coord
		r.Neighbors.Each(func(n Coord) {
			if o := g.Room(n); o == nil || !o.Neighbors.Has(c) {
				ok = false
			}
		})
		r.TightNeighbors.Each(func(n Coord) {
			if o := g.Room(n); o == nil || !o.TightNeighbors.Has(c) {
				ok = false
			}
		})
	}
	return ok
}

// PlacedRooms returns the placed cells in arena order.
func (g *Grid) PlacedRooms() []*Room {
	var out []*Room
	for i := range g.rooms {
		if g.rooms[i].Placed {
			out = append(out, &g.rooms[i])
		}
	}
	return out
}

// SortedNeighbors returns the neighbors of c in arena order, or nil when c
// is out of bounds. Use it wherever iteration order matters.
func (g *Grid) SortedNeighbors(c Coord) []Coord {
	return g.sorted(c, false)
}

// SortedTightNeighbors is SortedNeighbors for tight links.
func (g *Grid) SortedTightNeighbors(c Coord) []Coord {
	return g.sorted(c, true)
}

func (g *Grid) sorted(c Coord, tight bool) []Coord {
	r := g.Room(c)
	if r == nil {
		return nil
	}
	set := r.Neighbors
	if tight {
		set = r.TightNeighbors
	}
	var out []Coord
	for _, n := range g.Adjacent(c) {
		if set.Has(n) {
			out = append(out, n)
		}
	}
	return out
}

// Format renders each floor as rows of one rune per cell: the first
// letter of the placed symbol name (via a), or '.' when empty. Floors are
// separated by a blank line.
func (g *Grid) Format(a *symbol.Alphabet) string {
	var sb strings.Builder
	for z := 0; z < g.Floors; z++ {
		if z > 0 {
			sb.WriteByte('\n')
		}
		for y := 0; y < g.Height; y++ {
			for x := 0; x < g.Width; x++ {
				r := g.Room(Coord{x, y, z})
				ch := byte('.')
				if r.Placed {
					ch = '#'
					if a != nil {
						if name := a.Name(r.Symbol); name != "" {
							ch = name[0]
						}
					}
				}
				sb.WriteByte(ch)
			}
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
