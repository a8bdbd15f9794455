package floorgrid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlgen/floorgrid"
	"github.com/katalvlaran/lvlgen/mission"
)

// TestNew_Errors verifies that New rejects empty dimensions.
func TestNew_Errors(t *testing.T) {
	cases := []struct {
		name                  string
		floors, width, height int
	}{
		{"NoFloors", 0, 3, 3},
		{"NoColumns", 1, 0, 3},
		{"NoRows", 1, 3, -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := floorgrid.New(tc.floors, tc.width, tc.height, floorgrid.DefaultOptions())
			assert.ErrorIs(t, err, floorgrid.ErrEmptyGrid)
		})
	}
}

func TestIndexCoordinateRoundTrip(t *testing.T) {
	g, err := floorgrid.New(2, 3, 4, floorgrid.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, 24, g.Len())
	for i := 0; i < g.Len(); i++ {
		c := g.Coordinate(i)
		require.True(t, g.InBounds(c))
		require.Equal(t, i, g.Index(c))
	}
	assert.Equal(t, -1, g.Index(floorgrid.Coord{X: 3}))
	assert.Nil(t, g.Room(floorgrid.Coord{Z: 2}))

	r := g.Room(floorgrid.Coord{X: 1, Y: 2, Z: 1})
	require.NotNil(t, r)
	assert.Equal(t, mission.NoNode, r.Node)
	assert.False(t, r.Placed)
}

func TestAdjacent(t *testing.T) {
	g4, _ := floorgrid.New(2, 3, 3, floorgrid.DefaultOptions())
	g6, _ := floorgrid.New(2, 3, 3, floorgrid.Options{Conn: floorgrid.Conn6})

	corner := floorgrid.Coord{}
	assert.Equal(t, []floorgrid.Coord{{X: 1}, {Y: 1}}, g4.Adjacent(corner))
	assert.Equal(t, []floorgrid.Coord{{X: 1}, {Y: 1}, {Z: 1}}, g6.Adjacent(corner))
	assert.Len(t, g4.Adjacent(floorgrid.Coord{X: 1, Y: 1}), 4)

	assert.Equal(t, g4.Adjacent(corner), g6.AdjacentOnFloor(corner))
	assert.True(t, g4.IsAdjacent(corner, floorgrid.Coord{X: 1}))
	assert.False(t, g4.IsAdjacent(corner, floorgrid.Coord{Z: 1}))
	assert.True(t, g6.IsAdjacent(corner, floorgrid.Coord{Z: 1}))
	assert.False(t, g4.IsAdjacent(corner, floorgrid.Coord{X: 1, Y: 1}))
}

func TestOffsets(t *testing.T) {
	g4, _ := floorgrid.New(1, 2, 2, floorgrid.DefaultOptions())
	g6, _ := floorgrid.New(1, 2, 2, floorgrid.Options{Conn: floorgrid.Conn6})

	planar := []floorgrid.Coord{{Y: -1}, {X: 1}, {Y: 1}, {X: -1}}
	assert.Equal(t, planar, g4.Offsets())
	assert.Equal(t, append(planar, floorgrid.Coord{Z: 1}, floorgrid.Coord{Z: -1}), g6.Offsets())

	off := g6.Offsets()
	off[0] = floorgrid.Coord{X: 9}
	assert.Equal(t, floorgrid.Coord{Y: -1}, g6.Offsets()[0], "Offsets returns a copy")
}

func TestLinkAndClear(t *testing.T) {
	g, _ := floorgrid.New(1, 3, 1, floorgrid.DefaultOptions())
	a, b, c := floorgrid.Coord{X: 0}, floorgrid.Coord{X: 1}, floorgrid.Coord{X: 2}

	assert.ErrorIs(t, g.Link(a, c, false), floorgrid.ErrNotAdjacent)
	assert.ErrorIs(t, g.Link(a, floorgrid.Coord{X: -1}, false), floorgrid.ErrOutOfBounds)

	require.NoError(t, g.Link(a, b, true))
	require.NoError(t, g.Link(b, c, false))
	assert.True(t, g.IsSymmetric())
	assert.True(t, g.Room(a).TightNeighbors.Has(b))
	assert.True(t, g.Room(b).TightNeighbors.Has(a))
	assert.False(t, g.Room(c).TightNeighbors.Has(b))
	assert.Equal(t, []floorgrid.Coord{c, a}, g.SortedNeighbors(b))
	assert.Equal(t, []floorgrid.Coord{a}, g.SortedTightNeighbors(b))

	require.NoError(t, g.Assign(b, floorgrid.Assignment{Node: 3, SymbolID: 2, RoomType: "hall", Difficulty: 0.5}))
	assert.True(t, g.Room(b).Placed)
	require.NoError(t, g.Clear(b))
	assert.False(t, g.Room(b).Placed)
	assert.Equal(t, 0, g.Room(a).Neighbors.Size())
	assert.Equal(t, 0, g.Room(c).Neighbors.Size())
	assert.Equal(t, 0, g.Room(a).TightNeighbors.Size())
	assert.ErrorIs(t, g.Clear(floorgrid.Coord{Y: 1}), floorgrid.ErrOutOfBounds)
}

func TestSymmetrize(t *testing.T) {
	g, _ := floorgrid.New(1, 2, 2, floorgrid.DefaultOptions())
	a, b, c := floorgrid.Coord{}, floorgrid.Coord{X: 1}, floorgrid.Coord{Y: 1}

	// one-sided entries as a frontier walk might leave them
	g.Room(a).Neighbors.Put(b)
	g.Room(c).TightNeighbors.Put(a)
	require.False(t, g.IsSymmetric())

	assert.Equal(t, 4, g.Symmetrize())
	assert.True(t, g.IsSymmetric())
	assert.True(t, g.Room(b).Neighbors.Has(a))
	assert.True(t, g.Room(a).TightNeighbors.Has(c))
	assert.True(t, g.Room(a).Neighbors.Has(c))
	assert.True(t, g.Room(c).Neighbors.Has(a))
	assert.Equal(t, 0, g.Symmetrize())
}

func TestConnectedComponents(t *testing.T) {
	g, _ := floorgrid.New(1, 4, 1, floorgrid.DefaultOptions())
	for x := 0; x < 4; x++ {
		require.NoError(t, g.Assign(floorgrid.Coord{X: x}, floorgrid.Assignment{Node: mission.NodeID(x)}))
	}
	require.NoError(t, g.Link(floorgrid.Coord{X: 0}, floorgrid.Coord{X: 1}, false))
	require.NoError(t, g.Link(floorgrid.Coord{X: 2}, floorgrid.Coord{X: 3}, true))

	comps := g.ConnectedComponents()
	require.Len(t, comps, 2)
	assert.Equal(t, []floorgrid.Coord{{X: 0}, {X: 1}}, comps[0])
	assert.Equal(t, []floorgrid.Coord{{X: 2}, {X: 3}}, comps[1])
	assert.Len(t, g.PlacedRooms(), 4)

	g.Reset()
	assert.Empty(t, g.ConnectedComponents())
	assert.Empty(t, g.PlacedRooms())
}

func TestCoord(t *testing.T) {
	a := floorgrid.Coord{X: 1, Y: 2, Z: 0}
	b := floorgrid.Coord{X: -1, Y: 4, Z: 1}
	assert.Equal(t, 5, a.Manhattan(b))
	assert.Equal(t, floorgrid.Coord{X: 0, Y: 6, Z: 1}, a.Add(b))
	assert.Equal(t, "(1,2,0)", a.String())
}
