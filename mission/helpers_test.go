package mission_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlgen/grammar"
	sm "github.com/katalvlaran/lvlgen/statemachine"
	"github.com/katalvlaran/lvlgen/symbol"
)

// fixture is a small dungeon alphabet shared by the generator tests.
type fixture struct {
	a                          *symbol.Alphabet
	start, room, x             symbol.ID
	key, lock, entrance, treat symbol.ID
	boss, corridor, branch     symbol.ID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	a := symbol.NewAlphabet()
	f := &fixture{a: a}
	f.start = a.MustAdd(symbol.Symbol{Name: "Start"})
	f.room = a.MustAdd(symbol.Symbol{Name: "Room", AllowChildren: true})
	f.x = a.MustAdd(symbol.Symbol{Name: "X"})
	f.key = a.MustAdd(symbol.Symbol{Name: "Key", Terminal: true, RoomTypes: []string{"key"}})
	f.lock = a.MustAdd(symbol.Symbol{Name: "Lock", Terminal: true, RoomTypes: []string{"lock"}})
	f.entrance = a.MustAdd(symbol.Symbol{Name: "Entrance", Terminal: true, RoomTypes: []string{"entrance"}})
	f.treat = a.MustAdd(symbol.Symbol{Name: "Treasure", Terminal: true, RoomTypes: []string{"treasure"}})
	f.boss = a.MustAdd(symbol.Symbol{Name: "Boss", Terminal: true, RoomTypes: []string{"boss"}})
	f.corridor = a.MustAdd(symbol.Symbol{Name: "Corridor", AllowChildren: true})
	f.branch = a.MustAdd(symbol.Symbol{Name: "Branch", AllowChildren: true})
	return f
}

// out builds an output subgraph from (local, symbol) pairs and edges.
func out(nodes map[int]symbol.ID, edges ...grammar.OutputEdge) grammar.Output {
	o := grammar.Output{Head: grammar.HeadLocal, Edges: edges}
	locals := make([]int, 0, len(nodes))
	for l := range nodes {
		locals = append(locals, l)
	}
	sort.Ints(locals)
	for _, l := range locals {
		o.Nodes = append(o.Nodes, grammar.OutputNode{Local: l, Symbol: nodes[l]})
	}
	return o
}

func single(t *testing.T, name string, sym symbol.ID, o grammar.Output, w float64) *grammar.Rule {
	t.Helper()
	r, err := grammar.SingleRule(name, sym, o, w)
	require.NoError(t, err)
	return r
}

func pair(t *testing.T, name string, p, c symbol.ID, cp sm.Coupling, o grammar.Output, w float64) *grammar.Rule {
	t.Helper()
	r, err := grammar.PairRule(name, p, c, cp, o, w)
	require.NoError(t, err)
	return r
}
