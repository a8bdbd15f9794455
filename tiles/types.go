package tiles

import "errors"

// Sentinel errors for tile grids.
var (
	// ErrEmptyGrid indicates a grid with no rows or no columns.
	ErrEmptyGrid = errors.New("tiles: grid must have at least one row and one column")

	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("tiles: all rows must have the same length")

	// ErrUnknownRune indicates a rune missing from the legend.
	ErrUnknownRune = errors.New("tiles: rune not in legend")
)

// Tile identifies a tile kind. Catalogs assign the non-zero values.
type Tile int

// Null is the unset tile, also read for cells outside a grid.
const Null Tile = 0

// Grid is a W×H array of tiles in row-major order.
type Grid struct {
	width, height int
	cells         []Tile
}

// Palette names the tiles Carve writes.
type Palette struct {
	Wall, Floor, Door, Stairs Tile
}

// Legend maps the runes of textual rows to tiles. The rune '.' conventionally
// maps to Null.
type Legend map[rune]Tile
