package tiles_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlgen/floorgrid"
	"github.com/katalvlaran/lvlgen/tiles"
)

const (
	wall tiles.Tile = iota + 1
	floor
	door
	stairs
)

var (
	legend  = tiles.Legend{'#': wall, '_': floor, '+': door, '>': stairs}
	palette = tiles.Palette{Wall: wall, Floor: floor, Door: door, Stairs: stairs}
)

func TestFromRows_Errors(t *testing.T) {
	cases := []struct {
		name string
		rows [][]tiles.Tile
		err  error
	}{
		{"EmptyRows", nil, tiles.ErrEmptyGrid},
		{"EmptyCols", [][]tiles.Tile{{}}, tiles.ErrEmptyGrid},
		{"NonRectangular", [][]tiles.Tile{{1, 2}, {3}}, tiles.ErrNonRectangular},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tiles.FromRows(tc.rows)
			assert.ErrorIs(t, err, tc.err)
		})
	}
	_, err := tiles.New(0, 2)
	assert.ErrorIs(t, err, tiles.ErrEmptyGrid)
}

func TestParseAndFormat(t *testing.T) {
	g, err := tiles.Parse([]string{"#+#", "_._"}, legend)
	require.NoError(t, err)
	assert.Equal(t, 3, g.Width())
	assert.Equal(t, 2, g.Height())
	assert.Equal(t, door, g.At(1, 0))
	assert.Equal(t, tiles.Null, g.At(1, 1))
	assert.Equal(t, "#+#\n_._\n", g.Format(legend))

	_, err = tiles.Parse([]string{"#x"}, legend)
	assert.ErrorIs(t, err, tiles.ErrUnknownRune)
}

func TestGrid_AccessAndCopies(t *testing.T) {
	g, _ := tiles.FromRows([][]tiles.Tile{{1, 2}, {3, 4}})

	assert.Equal(t, tiles.Null, g.At(-1, 0))
	assert.Equal(t, tiles.Null, g.At(0, 2))
	assert.False(t, g.Set(2, 0, 9))
	assert.True(t, g.Set(1, 1, 9))

	c := g.Clone()
	require.True(t, c.Equal(g))
	c.Set(0, 0, 7)
	assert.False(t, c.Equal(g))
	assert.Equal(t, tiles.Tile(1), g.At(0, 0))

	w := g.Window(-1, 0, 2, 2)
	assert.Equal(t, [][]tiles.Tile{{0, 1}, {0, 3}}, w.Rows())
	assert.False(t, w.IsEmpty())
	assert.True(t, g.Window(5, 5, 2, 2).IsEmpty())

	g.Paste(w, 1, 1)
	assert.Equal(t, [][]tiles.Tile{{1, 2}, {3, 0}}, g.Rows())
	assert.Equal(t, 1, g.Count(0))
}

func TestCarve(t *testing.T) {
	fg, _ := floorgrid.New(2, 2, 1, floorgrid.Options{Conn: floorgrid.Conn6})
	origin := floorgrid.Coord{}
	require.NoError(t, fg.Link(origin, floorgrid.Coord{X: 1}, false))
	require.NoError(t, fg.Link(origin, floorgrid.Coord{Z: 1}, false))

	g, err := tiles.Carve(fg.Room(origin), 5, 5, palette)
	require.NoError(t, err)
	want := []string{
		"#####",
		"#___#",
		"#_>_+",
		"#___#",
		"#####",
	}
	exp, _ := tiles.Parse(want, legend)
	assert.True(t, exp.Equal(g), "got\n%s", g.Format(legend))

	_, err = tiles.Carve(nil, 5, 5, palette)
	assert.ErrorIs(t, err, tiles.ErrEmptyGrid)
}

func TestAssembleAndSplitFloor(t *testing.T) {
	fg, _ := floorgrid.New(1, 2, 1, floorgrid.DefaultOptions())
	a, _ := tiles.Parse([]string{"##", "#_"}, legend)
	b, _ := tiles.Parse([]string{"++", "_#"}, legend)
	rooms := map[floorgrid.Coord]*tiles.Grid{{X: 0}: a, {X: 1}: b}

	floorGrid, err := tiles.AssembleFloor(fg, 0, rooms, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, "##++\n#__#\n", floorGrid.Format(legend))

	floorGrid.Set(1, 1, door)
	floorGrid.Set(2, 0, wall)
	tiles.SplitFloor(floorGrid, 0, rooms, 2, 2)
	assert.Equal(t, "##\n#+\n", a.Format(legend))
	assert.Equal(t, "#+\n_#\n", b.Format(legend))
}
