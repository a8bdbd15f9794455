package tiles

import (
	"fmt"
	"strings"
)

// New returns a w×h grid of Null tiles.
// Returns ErrEmptyGrid if w or h is not positive.
func New(w, h int) (*Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %d×%d", ErrEmptyGrid, w, h)
	}
	return &Grid{width: w, height: h, cells: make([]Tile, w*h)}, nil
}

// FromRows builds a grid from rows[y][x], deep-copying the input.
// Returns ErrEmptyGrid or ErrNonRectangular.
// Complexity: O(W×H).
func FromRows(rows [][]Tile) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	g, _ := New(len(rows[0]), len(rows))
	for y, row := range rows {
		if len(row) != g.width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrNonRectangular, y, len(row), g.width)
		}
		copy(g.cells[y*g.width:], row)
	}
	return g, nil
}

// Parse builds a grid from text rows, one rune per cell, through legend.
// The rune '.' reads as Null unless the legend maps it.
func Parse(rows []string, legend Legend) (*Grid, error) {
	out := make([][]Tile, len(rows))
	for y, line := range rows {
		for _, ch := range line {
			t, ok := legend[ch]
			if !ok {
				if ch != '.' {
					return nil, fmt.Errorf("%w: %q in row %d", ErrUnknownRune, ch, y)
				}
				t = Null
			}
			out[y] = append(out[y], t)
		}
	}
	return FromRows(out)
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether (x, y) lies inside g.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// At returns the tile at (x, y), or Null outside the grid.
func (g *Grid) At(x, y int) Tile {
	if !g.InBounds(x, y) {
		return Null
	}
	return g.cells[y*g.width+x]
}

// Set writes t at (x, y) and reports whether the cell exists.
func (g *Grid) Set(x, y int, t Tile) bool {
	if !g.InBounds(x, y) {
		return false
	}
	g.cells[y*g.width+x] = t
	return true
}

// Window copies the w×h area whose top-left corner is (x, y). Cells
// outside g read as Null.
func (g *Grid) Window(x, y, w, h int) *Grid {
	out := &Grid{width: w, height: h, cells: make([]Tile, w*h)}
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			out.cells[dy*w+dx] = g.At(x+dx, y+dy)
		}
	}
	return out
}

// Paste copies src into g with its top-left corner at (x, y), skipping
// cells that fall outside g.
func (g *Grid) Paste(src *Grid, x, y int) {
	for sy := 0; sy < src.height; sy++ {
		for sx := 0; sx < src.width; sx++ {
			g.Set(x+sx, y+sy, src.cells[sy*src.width+sx])
		}
	}
}

// Clone returns a deep copy of g.
func (g *Grid) Clone() *Grid {
	return &Grid{width: g.width, height: g.height, cells: append([]Tile(nil), g.cells...)}
}

// Equal reports whether g and o have the same shape and tiles.
func (g *Grid) Equal(o *Grid) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.width != o.width || g.height != o.height {
		return false
	}
	for i, t := range g.cells {
		if o.cells[i] != t {
			return false
		}
	}
	return true
}

// SameShape reports whether g and o have equal dimensions.
func (g *Grid) SameShape(o *Grid) bool {
	return g.width == o.width && g.height == o.height
}

// IsEmpty reports whether every cell is Null.
func (g *Grid) IsEmpty() bool {
	for _, t := range g.cells {
		if t != Null {
			return false
		}
	}
	return true
}

// Count returns the number of cells holding t.
func (g *Grid) Count(t Tile) int {
	n := 0
	for _, c := range g.cells {
		if c == t {
			n++
		}
	}
	return n
}

// Rows returns a copy of the tiles as rows[y][x].
func (g *Grid) Rows() [][]Tile {
	out := make([][]Tile, g.height)
	for y := range out {
		out[y] = append([]Tile(nil), g.cells[y*g.width:(y+1)*g.width]...)
	}
	return out
}

// Format renders g with the inverse of legend, one line per row. Null
// and unmapped tiles render as '.' and '?'.
func (g *Grid) Format(legend Legend) string {
	inv := make(map[Tile]rune, len(legend))
	for r, t := range legend {
		if prev, ok := inv[t]; !ok || r < prev {
			inv[t] = r
		}
	}
	var sb strings.Builder
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			t := g.At(x, y)
			switch r, ok := inv[t]; {
			case ok:
				sb.WriteRune(r)
			case t == Null:
				sb.WriteByte('.')
			default:
				sb.WriteByte('?')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
