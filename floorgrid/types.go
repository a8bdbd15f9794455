package floorgrid

import (
	"errors"
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"github.com/katalvlaran/lvlgen/mission"
	"github.com/katalvlaran/lvlgen/symbol"
)

// Sentinel errors for grid operations.
var (
	// ErrEmptyGrid indicates a grid with no floors, rows or columns.
	ErrEmptyGrid = errors.New("floorgrid: grid must have at least one floor, row and column")

	// ErrOutOfBounds indicates a coordinate outside the grid.
	ErrOutOfBounds = errors.New("floorgrid: coordinate out of bounds")

	// ErrNotAdjacent indicates a link between cells that are not neighbors.
	ErrNotAdjacent = errors.New("floorgrid: cells are not adjacent")
)

// Connectivity selects which cells count as neighbors.
type Connectivity int

const (
	// Conn4 links the four orthogonal cells of the same floor.
	Conn4 Connectivity = iota
	// Conn6 adds the cells directly above and below.
	Conn6
)

// Coord addresses a cell. Z is the floor index.
type Coord struct {
	X, Y, Z int
}

// Add returns c translated by d.
func (c Coord) Add(d Coord) Coord {
	return Coord{X: c.X + d.X, Y: c.Y + d.Y, Z: c.Z + d.Z}
}

// Manhattan returns the L1 distance between c and o.
func (c Coord) Manhattan(o Coord) int {
	return abs(c.X-o.X) + abs(c.Y-o.Y) + abs(c.Z-o.Z)
}

// String formats c as "(x,y,z)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Room is one grid cell. An empty cell has Placed == false and
// Node == mission.NoNode.
type Room struct {
	Coord Coord

	// Node is the mission node placed here.
	Node mission.NodeID
	// Symbol and SymbolID are copied from the mission node.
	Symbol   symbol.ID
	SymbolID int
	// RoomType is the room class picked from the symbol's room types.
	RoomType string
	// Difficulty is SymbolID divided by the mission size, in (0, 1].
	Difficulty float64

	// Incoming is the cell that proposed this one, valid when HasIncoming.
	Incoming    Coord
	HasIncoming bool

	// Neighbors holds every linked cell; TightNeighbors the subset linked
	// through a tightly coupled mission edge.
	Neighbors      mapset.Set[Coord]
	TightNeighbors mapset.Set[Coord]

	Placed bool

	// Spawned is a free slot for the consumer's spawned room object.
	Spawned any
}

// Assignment carries the mission data written into a cell by Assign.
type Assignment struct {
	Node       mission.NodeID
	Symbol     symbol.ID
	SymbolID   int
	RoomType   string
	Difficulty float64
}

// Options holds grid construction parameters.
type Options struct {
	// Conn chooses 4- or 6-directional adjacency.
	Conn Connectivity
}

// DefaultOptions returns Options with Conn4.
func DefaultOptions() Options {
	return Options{Conn: Conn4}
}

// Grid is a Floors × Height × Width arena of rooms in row-major order per
// floor, floors stacked.
type Grid struct {
	Floors, Width, Height int
	Conn                  Connectivity

	rooms   []Room
	offsets []Coord
}
