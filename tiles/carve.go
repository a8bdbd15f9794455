package tiles

import (
	"fmt"

	"github.com/katalvlaran/lvlgen/floorgrid"
)

// Carve lays out a w×h room for r: walls on the border, floor inside, a
// door in the middle of each side facing a neighbor, and stairs in the
// center when a neighbor is on another floor.
// Returns ErrEmptyGrid if w or h is not positive.
func Carve(r *floorgrid.Room, w, h int, p Palette) (*Grid, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: nil room", ErrEmptyGrid)
	}
	g, err := New(w, h)
	if err != nil {
		return nil, err
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			t := p.Floor
			if x == 0 || y == 0 || x == w-1 || y == h-1 {
				t = p.Wall
			}
			g.Set(x, y, t)
		}
	}

	c := r.Coord
	doors := []struct {
		dir  floorgrid.Coord
		x, y int
	}{
		{floorgrid.Coord{Y: -1}, w / 2, 0},
		{floorgrid.Coord{X: 1}, w - 1, h / 2},
		{floorgrid.Coord{Y: 1}, w / 2, h - 1},
		{floorgrid.Coord{X: -1}, 0, h / 2},
	}
	for _, d := range doors {
		if r.Neighbors.Has(c.Add(d.dir)) {
			g.Set(d.x, d.y, p.Door)
		}
	}
	if r.Neighbors.Has(c.Add(floorgrid.Coord{Z: 1})) || r.Neighbors.Has(c.Add(floorgrid.Coord{Z: -1})) {
		g.Set(w/2, h/2, p.Stairs)
	}
	return g, nil
}

// AssembleFloor joins the w×h room grids of floor z into one grid of
// (Width×w)×(Height×h) tiles. Cells without a room grid stay Null.
func AssembleFloor(fg *floorgrid.Grid, z int, rooms map[floorgrid.Coord]*Grid, w, h int) (*Grid, error) {
	out, err := New(fg.Width*w, fg.Height*h)
	if err != nil {
		return nil, err
	}
	for y := 0; y < fg.Height; y++ {
		for x := 0; x < fg.Width; x++ {
			if rg, ok := rooms[floorgrid.Coord{X: x, Y: y, Z: z}]; ok {
				out.Paste(rg, x*w, y*h)
			}
		}
	}
	return out, nil
}

// SplitFloor copies the tiles of a floor grid built by AssembleFloor back
// into the room grids of floor z that exist in rooms.
func SplitFloor(floor *Grid, z int, rooms map[floorgrid.Coord]*Grid, w, h int) {
	for c, rg := range rooms {
		if c.Z != z {
			continue
		}
		rg.Paste(floor.Window(c.X*w, c.Y*h, w, h), 0, 0)
	}
}
