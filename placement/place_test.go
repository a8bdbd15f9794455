package placement_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlgen/floorgrid"
	"github.com/katalvlaran/lvlgen/mission"
	"github.com/katalvlaran/lvlgen/placement"
	"github.com/katalvlaran/lvlgen/symbol"
)

// rooms returns an alphabet with a room symbol that opens its neighbors,
// a closed one, and a marker without room types.
func rooms(t *testing.T) (a *symbol.Alphabet, room, closed, marker symbol.ID) {
	t.Helper()
	a = symbol.NewAlphabet()
	room = a.MustAdd(symbol.Symbol{Name: "Room", Terminal: true, AllowChildren: true, RoomTypes: []string{"hall", "cellar"}})
	closed = a.MustAdd(symbol.Symbol{Name: "Closet", Terminal: true, RoomTypes: []string{"closet"}})
	marker = a.MustAdd(symbol.Symbol{Name: "Marker", Terminal: true})
	return a, room, closed, marker
}

func grid(t *testing.T, floors, w, h int, conn floorgrid.Connectivity) *floorgrid.Grid {
	t.Helper()
	g, err := floorgrid.New(floors, w, h, floorgrid.Options{Conn: conn})
	require.NoError(t, err)
	return g
}

func TestPlace_Errors(t *testing.T) {
	a, room, _, _ := rooms(t)
	m := mission.NewGraph(room)
	g := grid(t, 1, 2, 2, floorgrid.Conn4)

	_, err := placement.Place(nil, m, g)
	assert.ErrorIs(t, err, placement.ErrNilAlphabet)
	_, err = placement.Place(a, nil, g)
	assert.ErrorIs(t, err, placement.ErrNilMission)
	_, err = placement.Place(a, m, nil)
	assert.ErrorIs(t, err, placement.ErrNilGrid)
	_, err = placement.Place(a, m, g, placement.WithStart(floorgrid.Coord{X: 2}))
	assert.ErrorIs(t, err, placement.ErrStartOutOfBounds)
	_, err = placement.Place(a, m, g, placement.WithMaxDeferAttempts(0))
	assert.ErrorIs(t, err, placement.ErrOptionViolation)
	assert.Panics(t, func() { placement.WithRand(nil) })
}

// TestPlace_TightChildOnLine: on a 1×3×1 grid with the root pinned to the
// middle, the tight child can only take one of the two ends.
func TestPlace_TightChildOnLine(t *testing.T) {
	a, room, _, _ := rooms(t)
	ends := map[floorgrid.Coord]bool{{X: 0}: true, {X: 2}: true}
	middle := floorgrid.Coord{X: 1}

	for seed := int64(1); seed <= 30; seed++ {
		m := mission.NewGraph(room)
		child := m.AddNode(room)
		require.NoError(t, m.Link(m.Head(), child, true))
		m.Renumber()
		g := grid(t, 1, 3, 1, floorgrid.Conn4)

		res, err := placement.Place(a, m, g, placement.WithSeed(seed), placement.WithStart(middle))
		require.NoError(t, err)
		require.True(t, res.Success)
		require.Equal(t, middle, res.Cells[m.Head()])
		at := res.Cells[child]
		require.True(t, ends[at], "seed %d: child at %v", seed, at)
		assert.True(t, g.Room(at).TightNeighbors.Has(middle))
		assert.True(t, g.Room(middle).TightNeighbors.Has(at))
		assert.Equal(t, 1.0, g.Room(at).Difficulty)
		assert.Equal(t, 0.5, g.Room(middle).Difficulty)
		assert.Empty(t, res.Unplaced)
	}
}

// TestPlace_NeighborPrecheck: two tight children cannot fit next to a
// corner of a 1×3×1 grid.
func TestPlace_NeighborPrecheck(t *testing.T) {
	a, room, _, _ := rooms(t)
	m := mission.NewGraph(room)
	for i := 0; i < 2; i++ {
		require.NoError(t, m.Link(m.Head(), m.AddNode(room), true))
	}
	g := grid(t, 1, 3, 1, floorgrid.Conn4)

	res, err := placement.Place(a, m, g, placement.WithStart(floorgrid.Coord{}))
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Zero(t, res.Placed())
	assert.Zero(t, res.Backtracks)
	assert.Empty(t, g.PlacedRooms())

	g = grid(t, 1, 3, 1, floorgrid.Conn4)
	res, err = placement.Place(a, m, g, placement.WithStart(floorgrid.Coord{X: 1}))
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 3, res.Placed())
}

// TestPlace_BacktrackChain: a tight chain of four rooms on a line of three
// cells passes the neighbor precheck twice and then has to unwind.
func TestPlace_BacktrackChain(t *testing.T) {
	a, room, _, _ := rooms(t)
	m := mission.NewGraph(room)
	prev := m.Head()
	for i := 0; i < 3; i++ {
		next := m.AddNode(room)
		require.NoError(t, m.Link(prev, next, true))
		prev = next
	}
	g := grid(t, 1, 3, 1, floorgrid.Conn4)

	var backtracked []mission.NodeID
	res, err := placement.Place(a, m, g,
		placement.WithStart(floorgrid.Coord{}),
		placement.WithOnBacktrack(func(n mission.NodeID, _ floorgrid.Coord) { backtracked = append(backtracked, n) }),
	)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, 2, res.Backtracks)
	assert.Equal(t, []mission.NodeID{1, m.Head()}, backtracked)
	assert.Zero(t, res.Placed())
	assert.Len(t, res.Unplaced, 4)
	assert.Empty(t, g.PlacedRooms(), "rollback must clear the grid")
}

// TestPlace_DropAfterAttempts: a closed room never opens a frontier, so its
// loose child is retried and dropped.
func TestPlace_DropAfterAttempts(t *testing.T) {
	a, _, closed, _ := rooms(t)
	m := mission.NewGraph(closed)
	child := m.AddNode(closed)
	require.NoError(t, m.Link(m.Head(), child, false))
	g := grid(t, 1, 3, 1, floorgrid.Conn4)

	var drops []int
	res, err := placement.Place(a, m, g,
		placement.WithMaxDeferAttempts(3),
		placement.WithOnDrop(func(n mission.NodeID, attempts int) {
			assert.Equal(t, child, n)
			drops = append(drops, attempts)
		}),
	)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, []mission.NodeID{child}, res.Dropped)
	assert.Equal(t, []mission.NodeID{child}, res.Unplaced)
	assert.Equal(t, []int{3}, drops)
}

// TestPlace_SharedChild: a node with two parents waits for both.
func TestPlace_SharedChild(t *testing.T) {
	a, room, _, _ := rooms(t)
	build := func() (*mission.Graph, mission.NodeID) {
		m := mission.NewGraph(room)
		left, right, shared := m.AddNode(room), m.AddNode(room), m.AddNode(room)
		require.NoError(t, m.Link(m.Head(), left, false))
		require.NoError(t, m.Link(m.Head(), right, false))
		require.NoError(t, m.Link(left, shared, false))
		require.NoError(t, m.Link(right, shared, false))
		m.Renumber()
		return m, shared
	}

	m, _ := build()
	res, err := placement.Place(a, m, grid(t, 1, 4, 4, floorgrid.Conn4), placement.WithSeed(9))
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 4, res.Placed())
	assert.Empty(t, res.Dropped)

	// waiting for the right parent costs no retry
	m, shared := build()
	res, err = placement.Place(a, m, grid(t, 1, 4, 4, floorgrid.Conn4), placement.WithSeed(9), placement.WithMaxDeferAttempts(1))
	require.NoError(t, err)
	assert.Empty(t, res.Dropped)
	assert.Contains(t, res.Cells, shared)
	assert.Equal(t, 4, res.Placed())
}

// TestPlace_SharedChildBehindSiblings: a child of two loose parents waits
// while the second parent places more siblings than MaxDeferAttempts.
func TestPlace_SharedChildBehindSiblings(t *testing.T) {
	a, room, _, _ := rooms(t)
	for seed := int64(1); seed <= 20; seed++ {
		m := mission.NewGraph(room)
		left, right := m.AddNode(room), m.AddNode(room)
		require.NoError(t, m.Link(m.Head(), left, false))
		require.NoError(t, m.Link(m.Head(), right, false))
		for i := 0; i < placement.DefaultMaxDeferAttempts+1; i++ {
			require.NoError(t, m.Link(right, m.AddNode(room), false))
		}
		late, shared := m.AddNode(room), m.AddNode(room)
		require.NoError(t, m.Link(right, late, false))
		require.NoError(t, m.Link(left, shared, false))
		require.NoError(t, m.Link(late, shared, false))
		m.Renumber()

		var drops []mission.NodeID
		res, err := placement.Place(a, m, grid(t, 1, 8, 8, floorgrid.Conn4),
			placement.WithSeed(seed),
			placement.WithOnDrop(func(n mission.NodeID, _ int) { drops = append(drops, n) }),
		)
		require.NoError(t, err)
		require.True(t, res.Success, "seed %d", seed)
		assert.Empty(t, drops, "seed %d", seed)
		assert.Empty(t, res.Unplaced, "seed %d", seed)
		assert.Equal(t, m.Len(), res.Placed(), "seed %d", seed)
	}
}

func TestPlace_SkipsNodesWithoutRoomTypes(t *testing.T) {
	a, room, _, marker := rooms(t)
	m := mission.NewGraph(room)
	mk := m.AddNode(marker)
	below := m.AddNode(room)
	require.NoError(t, m.Link(m.Head(), mk, false))
	require.NoError(t, m.Link(mk, below, false))

	res, err := placement.Place(a, m, grid(t, 1, 3, 3, floorgrid.Conn4))
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, []mission.NodeID{mk}, res.Skipped)
	assert.Equal(t, []mission.NodeID{mk, below}, res.Unplaced)
	assert.Equal(t, 1, res.Placed())
}

// randomMission grows a random tree of n rooms; about a third of the
// edges are tight.
func randomMission(r *rand.Rand, room symbol.ID, n int) *mission.Graph {
	m := mission.NewGraph(room)
	ids := []mission.NodeID{m.Head()}
	for i := 1; i < n; i++ {
		id := m.AddNode(room)
		parent := ids[r.Intn(len(ids))]
		_ = m.Link(parent, id, r.Intn(3) == 0)
		ids = append(ids, id)
	}
	m.Renumber()
	return m
}

// diamondMission links head to two rooms that share one child, every
// edge tight.
func diamondMission(room symbol.ID) *mission.Graph {
	m := mission.NewGraph(room)
	x, y, c := m.AddNode(room), m.AddNode(room), m.AddNode(room)
	_ = m.Link(m.Head(), x, true)
	_ = m.Link(m.Head(), y, true)
	_ = m.Link(x, c, true)
	_ = m.Link(y, c, true)
	m.Renumber()
	return m
}

// TestPlace_Invariants checks symmetry, tight adjacency and cell
// uniqueness over random trees and over a diamond of tight edges.
func TestPlace_Invariants(t *testing.T) {
	a, room, _, _ := rooms(t)
	cases := []struct {
		name    string
		mission func(seed int64) *mission.Graph
		grid    func(t *testing.T) *floorgrid.Grid
		succeed bool
	}{
		{
			name:    "RandomTree",
			mission: func(seed int64) *mission.Graph { return randomMission(rand.New(rand.NewSource(seed)), room, 12) },
			grid:    func(t *testing.T) *floorgrid.Grid { return grid(t, 2, 5, 5, floorgrid.Conn6) },
		},
		{
			name:    "TightDiamond",
			mission: func(int64) *mission.Graph { return diamondMission(room) },
			grid:    func(t *testing.T) *floorgrid.Grid { return grid(t, 1, 6, 6, floorgrid.Conn4) },
			succeed: true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for seed := int64(1); seed <= 40; seed++ {
				checkLayout(t, a, tc.mission(seed), tc.grid(t), seed, tc.succeed)
			}
		})
	}
}

func checkLayout(t *testing.T, a *symbol.Alphabet, m *mission.Graph, g *floorgrid.Grid, seed int64, succeed bool) {
	t.Helper()
	res, err := placement.Place(a, m, g, placement.WithSeed(seed))
	require.NoError(t, err)
	require.True(t, g.IsSymmetric(), "seed %d", seed)
	if succeed {
		require.True(t, res.Success, "seed %d", seed)
		require.Equal(t, m.Len(), res.Placed(), "seed %d", seed)
	}
	if !res.Success {
		return
	}

	used := map[floorgrid.Coord]mission.NodeID{}
	for id, c := range res.Cells {
		other, dup := used[c]
		require.False(t, dup, "seed %d: %d and %d share %v", seed, id, other, c)
		used[c] = id
		require.Equal(t, id, g.Room(c).Node)
	}
	for _, e := range m.Edges() {
		if !e.Tight {
			continue
		}
		pc, ok1 := res.Cells[e.Parent]
		cc, ok2 := res.Cells[e.Child]
		if !ok1 || !ok2 {
			continue
		}
		require.Equal(t, 1, pc.Manhattan(cc), "seed %d: %v -> %v", seed, pc, cc)
		require.Equal(t, pc.Z, cc.Z)
		require.True(t, g.Room(pc).TightNeighbors.Has(cc))
	}
}

func TestPlace_Deterministic(t *testing.T) {
	a, room, _, _ := rooms(t)
	run := func() (*placement.Result, string) {
		m := randomMission(rand.New(rand.NewSource(3)), room, 15)
		g := grid(t, 1, 6, 6, floorgrid.Conn4)
		res, err := placement.Place(a, m, g, placement.WithSeed(11))
		require.NoError(t, err)
		return res, g.Format(a)
	}
	r1, f1 := run()
	r2, f2 := run()
	assert.Equal(t, r1.Cells, r2.Cells)
	assert.Equal(t, f1, f2)
}
